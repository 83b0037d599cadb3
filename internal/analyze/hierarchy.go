package analyze

import (
	"go/types"

	"starter-generator/internal/common"
)

// Hierarchy answers supertype and interface lookups over a loaded program:
// the root packages and everything they import transitively.
type Hierarchy struct {
	pkgs map[string]*types.Package
}

// NewHierarchy indexes roots and their transitive imports.
func NewHierarchy(roots ...*types.Package) *Hierarchy {
	h := &Hierarchy{pkgs: make(map[string]*types.Package)}

	var visit func(p *types.Package)
	visit = func(p *types.Package) {
		if p == nil {
			return
		}

		if _, seen := h.pkgs[p.Path()]; seen {
			return
		}

		h.pkgs[p.Path()] = p
		for _, imp := range p.Imports() {
			visit(imp)
		}
	}

	for _, r := range roots {
		visit(r)
	}

	return h
}

// Package returns the loaded package with the given path, if any.
func (h *Hierarchy) Package(path string) (*types.Package, bool) {
	p, ok := h.pkgs[path]
	return p, ok
}

// LookupInterface resolves a qualified name such as "encoding.BinaryMarshaler"
// to an interface type. It returns false when the package was not loaded or
// the name does not denote an interface.
func (h *Hierarchy) LookupInterface(qualified string) (*types.Interface, bool) {
	pkgPath, name := common.SplitQualified(qualified)
	if pkgPath == "" {
		return nil, false
	}

	pkg, ok := h.pkgs[pkgPath]
	if !ok {
		return nil, false
	}

	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	if !ok {
		return nil, false
	}

	iface, ok := obj.Type().Underlying().(*types.Interface)

	return iface, ok
}

// SuperTypes returns the declared supertype edges of t: the element of a
// pointer, the embedded fields of a struct, and the embedded types of an
// interface.
func (h *Hierarchy) SuperTypes(t types.Type) []types.Type {
	return SuperTypes(t)
}

// SuperTypes is the Hierarchy-independent implementation of Hierarchy.SuperTypes.
func SuperTypes(t types.Type) []types.Type {
	switch tt := types.Unalias(t).(type) {
	case *types.Pointer:
		return []types.Type{tt.Elem()}

	case *types.Named:
		return embedded(tt.Underlying())

	default:
		return embedded(tt)
	}
}

func embedded(t types.Type) []types.Type {
	var out []types.Type

	switch u := t.(type) {
	case *types.Struct:
		for i := range u.NumFields() {
			if f := u.Field(i); f.Embedded() {
				out = append(out, f.Type())
			}
		}

	case *types.Interface:
		for i := range u.NumEmbeddeds() {
			out = append(out, u.EmbeddedType(i))
		}
	}

	return out
}

// QualifiedName returns "pkg/path.Name" for named types and t.String()
// otherwise.
func QualifiedName(t types.Type) string {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return obj.Name()
		}

		return obj.Pkg().Path() + "." + obj.Name()
	default:
		return t.String()
	}
}
