// Package starter is the runtime used by code that starter-generator emits.
//
// A Message is an opaque, string-keyed bag of type-tagged values bound to a
// target type. Generated New*Message functions fill it, generated Start*
// functions hand it to a Context, and generated Fill* functions copy its
// values back into the target's fields.
//
// Messages are not safe for concurrent use. Generated code documents every
// routine with the //starter:mainthread directive: callers run them on the
// host's main (UI) goroutine.
package starter

import (
	"encoding"
	"fmt"
	"sort"
)

// Flags is an opaque set of launch flags attached to a Message.
type Flags int

// Parcelable is implemented by values carried in a Message by reference.
type Parcelable interface {
	ParcelTag() string
}

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind tags the type of a value stored in a Message.
type Kind int

const (
	KindInvalid      Kind = iota // invalid
	KindString                   // string
	KindInt32                    // int32
	KindFloat32                  // float32
	KindBool                     // bool
	KindFloat64                  // float64
	KindRune                     // rune
	KindParcelable               // parcelable
	KindSerializable             // serializable
)

type extra struct {
	kind  Kind
	value any
}

// Message carries launch arguments for a target. Readers accept a nil
// *Message and report every key absent; the Put methods and AddFlags need a
// message, but the zero Message is ready to use.
type Message struct {
	ctx    Context
	target string
	flags  Flags
	extras map[string]extra
}

// NewMessage creates an empty message bound to ctx and to the target type
// identified by its qualified name.
func NewMessage(ctx Context, target string) *Message {
	return &Message{
		ctx:    ctx,
		target: target,
		extras: make(map[string]extra),
	}
}

// Context returns the context the message was created with.
func (m *Message) Context() Context {
	if m == nil {
		return nil
	}

	return m.ctx
}

// Target returns the qualified name of the target type.
func (m *Message) Target() string {
	if m == nil {
		return ""
	}

	return m.target
}

// AddFlags ORs flags into the message flags.
func (m *Message) AddFlags(flags Flags) { m.flags |= flags }

// Flags returns the accumulated flags.
func (m *Message) Flags() Flags {
	if m == nil {
		return 0
	}

	return m.flags
}

// Has reports whether key is present.
func (m *Message) Has(key string) bool {
	if m == nil {
		return false
	}

	_, ok := m.extras[key]

	return ok
}

// KindOf returns the kind stored under key, or KindInvalid when absent.
func (m *Message) KindOf(key string) Kind {
	if m == nil {
		return KindInvalid
	}

	return m.extras[key].kind
}

// Len returns the number of stored values.
func (m *Message) Len() int {
	if m == nil {
		return 0
	}

	return len(m.extras)
}

// Keys returns the stored keys in sorted order.
func (m *Message) Keys() []string {
	if m == nil {
		return nil
	}

	keys := make([]string, 0, len(m.extras))
	for k := range m.extras {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Remove deletes key from the message. Removing from a nil message is a
// no-op.
func (m *Message) Remove(key string) {
	if m == nil {
		return
	}

	delete(m.extras, key)
}

func (m *Message) put(key string, kind Kind, v any) {
	if m.extras == nil {
		m.extras = make(map[string]extra)
	}

	m.extras[key] = extra{kind: kind, value: v}
}

// PutString and the other Put methods store v under key, replacing any
// previous value regardless of its kind.
func (m *Message) PutString(key, v string) { m.put(key, KindString, v) }
func (m *Message) PutInt32(key string, v int32) { m.put(key, KindInt32, v) }
func (m *Message) PutFloat32(key string, v float32) { m.put(key, KindFloat32, v) }
func (m *Message) PutBool(key string, v bool) { m.put(key, KindBool, v) }
func (m *Message) PutFloat64(key string, v float64) { m.put(key, KindFloat64, v) }
func (m *Message) PutRune(key string, v rune) { m.put(key, KindRune, v) }
func (m *Message) PutParcelable(key string, v Parcelable) { m.put(key, KindParcelable, v) }
func (m *Message) PutSerializable(key string, v encoding.BinaryMarshaler) { m.put(key, KindSerializable, v) }

// get returns the value stored under key when its kind matches.
func get[T any](m *Message, key string, kind Kind) (T, bool) {
	var zero T
	if m == nil {
		return zero, false
	}

	e, ok := m.extras[key]
	if !ok || e.kind != kind {
		return zero, false
	}

	v, ok := e.value.(T)

	return v, ok
}

// GetString returns the string under key, or "" when absent.
func (m *Message) GetString(key string) string {
	v, _ := get[string](m, key, KindString)
	return v
}

// GetInt32 returns the int32 under key, or def when absent.
func (m *Message) GetInt32(key string, def int32) int32 {
	if v, ok := get[int32](m, key, KindInt32); ok {
		return v
	}

	return def
}

// GetFloat32 returns the float32 under key, or def when absent.
func (m *Message) GetFloat32(key string, def float32) float32 {
	if v, ok := get[float32](m, key, KindFloat32); ok {
		return v
	}

	return def
}

// GetBool returns the bool under key, or def when absent.
func (m *Message) GetBool(key string, def bool) bool {
	if v, ok := get[bool](m, key, KindBool); ok {
		return v
	}

	return def
}

// GetFloat64 returns the float64 under key, or def when absent.
func (m *Message) GetFloat64(key string, def float64) float64 {
	if v, ok := get[float64](m, key, KindFloat64); ok {
		return v
	}

	return def
}

// GetRune returns the rune under key, or def when absent.
func (m *Message) GetRune(key string, def rune) rune {
	if v, ok := get[rune](m, key, KindRune); ok {
		return v
	}

	return def
}

// GetParcelable returns the reference stored under key, or nil.
func (m *Message) GetParcelable(key string) Parcelable {
	v, _ := get[Parcelable](m, key, KindParcelable)
	return v
}

// GetSerializable returns the value stored under key, or nil.
func (m *Message) GetSerializable(key string) encoding.BinaryMarshaler {
	v, _ := get[encoding.BinaryMarshaler](m, key, KindSerializable)
	return v
}

// String returns a short description for logs.
func (m *Message) String() string {
	if m == nil {
		return "<nil message>"
	}

	return fmt.Sprintf("message(%s, %d extras, flags=%#x)", m.target, len(m.extras), int(m.flags))
}
