package binding

import (
	"go/types"

	"starter-generator/internal/analyze"
	"starter-generator/internal/common"
)

// AccessKind says how generated code writes a field.
type AccessKind int

const (
	_ AccessKind = iota

	DirectField
	ViaSetter
	Inaccessible
)

// AccessDecision is the resolved write path for one field.
type AccessDecision struct {
	Kind   AccessKind
	Setter string // set when Kind is ViaSetter
}

// ResolveAccess decides how code in package outPkgPath writes field f of
// target. A field is written directly when it is visible from outPkgPath and
// not tagged readonly; otherwise through a Set<Name> method (or set<Name>
// inside the target package) on *target that takes exactly the field type.
func ResolveAccess(target *types.Named, f analyze.ArgField, outPkgPath string) AccessDecision {
	pkg := target.Obj().Pkg()
	samePkg := pkg != nil && pkg.Path() == outPkgPath

	if !f.ReadOnly && (samePkg || f.Exported) {
		return AccessDecision{Kind: DirectField}
	}

	candidates := []string{"Set" + common.Capitalize(f.Name)}
	if samePkg {
		candidates = append(candidates, "set"+common.Capitalize(f.Name))
	}

	for _, name := range candidates {
		if isSetter(target, pkg, name, f.Type, samePkg) {
			return AccessDecision{Kind: ViaSetter, Setter: name}
		}
	}

	return AccessDecision{Kind: Inaccessible}
}

// isSetter reports whether *target has an accessible method name(T) with no
// results and T identical to fieldType.
func isSetter(target *types.Named, pkg *types.Package, name string, fieldType types.Type, samePkg bool) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(target), true, pkg, name)

	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}

	if !fn.Exported() && !samePkg {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Variadic() || sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return false
	}

	return types.Identical(sig.Params().At(0).Type(), fieldType)
}
