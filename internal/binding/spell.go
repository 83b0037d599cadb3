package binding

import (
	"fmt"
	"go/types"

	"starter-generator/internal/analyze"
)

// spellable reports whether generated code can write t down as a type
// expression. It accepts what the generator's type formatter renders.
func spellable(t types.Type) bool {
	switch tt := t.(type) {
	case *types.Alias:
		if tt.Obj().Pkg() == nil {
			return true
		}

		return spellable(types.Unalias(tt))
	case *types.Basic, *types.TypeParam:
		return true
	case *types.Named:
		for i := range tt.TypeArgs().Len() {
			if !spellable(tt.TypeArgs().At(i)) {
				return false
			}
		}

		return true
	case *types.Pointer:
		return spellable(tt.Elem())
	case *types.Slice:
		return spellable(tt.Elem())
	case *types.Array:
		return spellable(tt.Elem())
	case *types.Map:
		return spellable(tt.Key()) && spellable(tt.Elem())
	case *types.Interface:
		return tt.Empty()
	default:
		return false
	}
}

// ConstraintTerms returns the types a type parameter constraint is written
// with: the constraint itself when it is named or empty, or the terms of an
// implicit union such as ~int | string. ok is false for constraints generated
// code cannot repeat, e.g. inline method sets.
func ConstraintTerms(t types.Type) (terms []types.Type, ok bool) {
	iface, isIface := t.(*types.Interface)
	if !isIface || !iface.IsImplicit() {
		return []types.Type{t}, spellable(t)
	}

	if iface.NumEmbeddeds() != 1 {
		return nil, false
	}

	u, isUnion := iface.EmbeddedType(0).(*types.Union)
	if !isUnion {
		e := iface.EmbeddedType(0)
		return []types.Type{e}, spellable(e)
	}

	for i := range u.Len() {
		term := u.Term(i).Type()
		if !spellable(term) {
			return nil, false
		}

		terms = append(terms, term)
	}

	return terms, true
}

// checkTypeParams makes sure generated routines can redeclare td's type
// parameters in outPkg.
func checkTypeParams(td *analyze.TargetDescriptor, outPkg string) error {
	tparams := td.Named.TypeParams()

	for i := range tparams.Len() {
		tp := tparams.At(i)
		name := tp.Obj().Name()

		if name == "_" {
			return &FieldError{Target: td.ID, Err: ErrUnsupportedTarget, Detail: "blank type parameter cannot be referenced"}
		}

		terms, ok := ConstraintTerms(tp.Constraint())
		if !ok {
			return &FieldError{
				Target: td.ID,
				Err:    ErrUnsupportedTarget,
				Detail: fmt.Sprintf("constraint of %s cannot be written in generated code: %s", name, types.TypeString(tp.Constraint(), nil)),
			}
		}

		for _, term := range terms {
			if !visibleFrom(term, outPkg) {
				return &FieldError{
					Target: td.ID,
					Err:    ErrUnsupportedTarget,
					Detail: fmt.Sprintf("constraint of %s is not visible from %s", name, outPkg),
				}
			}
		}
	}

	return nil
}
