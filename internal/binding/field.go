package binding

import (
	"go/token"
	"go/types"

	"starter-generator/internal/analyze"
	"starter-generator/internal/common"
)

// KeySuffix is appended to a field name to form its message key.
const KeySuffix = "Arg"

// FieldBinding is one compiled argument field. It is immutable once built.
type FieldBinding struct {
	Name     string
	Kind     Kind
	Optional bool
	// GoType is the declared field type, used to spell parameters and casts.
	GoType types.Type
	// ElemType is GoType with generic arguments erased to the origin type.
	// Capability checks use GoType: types.Implements is unspecified for
	// uninstantiated generic types, and the qualified names are the same.
	ElemType types.Type
	Access   AccessDecision
}

// Key returns the message key for the field.
func (f *FieldBinding) Key() string {
	return f.Name + KeySuffix
}

// Param returns the parameter name generated routines use for the field.
// Names that are keywords or that generated bodies use get the key suffix.
func (f *FieldBinding) Param() string {
	p := common.LowerCamel(f.Name)
	if reservedParams[p] || token.IsKeyword(p) {
		return p + KeySuffix
	}

	return p
}

// Strategy returns the field's marshaling strategy.
func (f *FieldBinding) Strategy() Strategy {
	s, _ := StrategyFor(f.Kind)
	return s
}

// reservedParams are identifiers generated bodies use themselves.
var reservedParams = map[string]bool{
	"ctx":     true,
	"flags":   true,
	"m":       true,
	"starter": true,
}

// Erase replaces generic instantiations in t by their origin type.
func Erase(t types.Type) types.Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		if tt.TypeArgs().Len() > 0 {
			return tt.Origin()
		}

		return tt
	case *types.Pointer:
		if e := Erase(tt.Elem()); e != tt.Elem() {
			return types.NewPointer(e)
		}

		return tt
	default:
		return t
	}
}

// classifier resolves field kinds against a pair of capability names.
type classifier struct {
	oracle    *Oracle
	reference string
	value     string
}

// kindOf returns the marshaling kind of t. Only the exact predeclared types
// are primitives; every other type must satisfy a capability, checked
// reference-capable first.
func (c *classifier) kindOf(t types.Type) (Kind, bool) {
	// byte and rune are Basic types of their own name, so aliases resolve
	// to the name they were declared with.
	if b, ok := types.Unalias(t).(*types.Basic); ok {
		k, ok := primitiveKinds[b.Name()]
		return k, ok
	}

	switch {
	case c.oracle.IsCapability(t, c.reference):
		return KindReference, true
	case c.oracle.IsCapability(t, c.value):
		return KindValue, true
	default:
		return 0, false
	}
}

// newFieldBinding classifies f. Access is resolved separately.
func (c *classifier) newFieldBinding(target analyze.TypeID, f analyze.ArgField) (*FieldBinding, error) {
	if f.Err != nil {
		return nil, &FieldError{Target: target, Field: f.Name, Err: ErrMalformedMetadata, Detail: f.Err.Error()}
	}

	kind, ok := c.kindOf(f.Type)
	if !ok {
		return nil, &FieldError{
			Target: target,
			Field:  f.Name,
			Err:    ErrUnsupportedFieldType,
			Detail: "type " + types.TypeString(f.Type, nil) + " is not a supported primitive and satisfies neither " +
				c.reference + " nor " + c.value,
		}
	}

	return &FieldBinding{
		Name:     f.Name,
		Kind:     kind,
		Optional: f.Optional,
		GoType:   f.Type,
		ElemType: Erase(f.Type),
	}, nil
}
