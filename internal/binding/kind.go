package binding

//go:generate go tool stringer -type=Kind,AccessKind -output=kind_string.go

// Kind is the marshaling kind of an argument field.
type Kind int

const (
	_ Kind = iota // zero value is invalid

	KindString
	KindInt32
	KindFloat32
	KindBool
	KindFloat64
	KindRune
	// KindReference is a reference-capable type: carried in the message by
	// reference and read back with a cast.
	KindReference
	// KindValue is a value-capable type: carried in the message as a
	// serializable value and read back with a cast.
	KindValue
)

// IsCapability reports whether k is decided by a capability check rather
// than by the field's predeclared type.
func (k Kind) IsCapability() bool {
	return k == KindReference || k == KindValue
}

// primitiveKinds maps predeclared type names to kinds. rune is distinct from
// int32 because go/types keeps the predeclared name on the alias.
var primitiveKinds = map[string]Kind{
	"string":  KindString,
	"int32":   KindInt32,
	"float32": KindFloat32,
	"bool":    KindBool,
	"float64": KindFloat64,
	"rune":    KindRune,
}
