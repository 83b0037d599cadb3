package gen

import (
	"fmt"
	"go/types"

	"github.com/dave/jennifer/jen"

	"starter-generator/internal/binding"
)

// typeCode spells t as jennifer code. Named types are qualified by import
// path; jennifer drops the qualifier when the path is the file's own package.
func typeCode(t types.Type) (jen.Code, error) {
	switch tt := t.(type) {
	case *types.Alias:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return jen.Id(obj.Name()), nil
		}

		return typeCode(types.Unalias(tt))

	case *types.Basic:
		return jen.Id(tt.Name()), nil

	case *types.TypeParam:
		return jen.Id(tt.Obj().Name()), nil

	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() == nil {
			return jen.Id(obj.Name()), nil
		}

		stmt := jen.Qual(obj.Pkg().Path(), obj.Name())
		if tt.TypeArgs().Len() == 0 {
			return stmt, nil
		}

		args := make([]jen.Code, 0, tt.TypeArgs().Len())
		for i := range tt.TypeArgs().Len() {
			arg, err := typeCode(tt.TypeArgs().At(i))
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
		}

		return stmt.Types(args...), nil

	case *types.Pointer:
		elem, err := typeCode(tt.Elem())
		if err != nil {
			return nil, err
		}

		return jen.Op("*").Add(elem), nil

	case *types.Slice:
		elem, err := typeCode(tt.Elem())
		if err != nil {
			return nil, err
		}

		return jen.Index().Add(elem), nil

	case *types.Array:
		elem, err := typeCode(tt.Elem())
		if err != nil {
			return nil, err
		}

		return jen.Index(jen.Lit(int(tt.Len()))).Add(elem), nil

	case *types.Map:
		key, err := typeCode(tt.Key())
		if err != nil {
			return nil, err
		}

		elem, err := typeCode(tt.Elem())
		if err != nil {
			return nil, err
		}

		return jen.Map(key).Add(elem), nil

	case *types.Interface:
		if tt.Empty() {
			return jen.Any(), nil
		}
	}

	return nil, fmt.Errorf("cannot spell type %s", t)
}

// typeParamsCode spells a type parameter list twice: as declarations
// ("T any") for routine signatures and as arguments ("T") for the target.
func typeParamsCode(tparams *types.TypeParamList) (decls, args []jen.Code, err error) {
	for i := range tparams.Len() {
		tp := tparams.At(i)

		constraint, cerr := constraintCode(tp.Constraint())
		if cerr != nil {
			return nil, nil, fmt.Errorf("type parameter %s: %w", tp.Obj().Name(), cerr)
		}

		decls = append(decls, jen.Id(tp.Obj().Name()).Add(constraint))
		args = append(args, jen.Id(tp.Obj().Name()))
	}

	return decls, args, nil
}

// constraintCode spells a constraint; implicit unions become "~A | B".
func constraintCode(t types.Type) (jen.Code, error) {
	terms, ok := binding.ConstraintTerms(t)
	if !ok {
		return nil, fmt.Errorf("cannot spell constraint %s", t)
	}

	u, isUnion := implicitUnion(t)
	if !isUnion {
		return typeCode(terms[0])
	}

	codes := make([]jen.Code, 0, u.Len())
	for i := range u.Len() {
		code, err := typeCode(u.Term(i).Type())
		if err != nil {
			return nil, err
		}

		if u.Term(i).Tilde() {
			code = jen.Op("~").Add(code)
		}

		codes = append(codes, code)
	}

	return jen.Union(codes...), nil
}

func implicitUnion(t types.Type) (*types.Union, bool) {
	iface, ok := t.(*types.Interface)
	if !ok || !iface.IsImplicit() || iface.NumEmbeddeds() != 1 {
		return nil, false
	}

	u, ok := iface.EmbeddedType(0).(*types.Union)

	return u, ok
}
