package binding

import (
	"go/types"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

type fieldSummary struct {
	Name     string
	Kind     string
	Type     string
	Optional bool
	Access   string
	Setter   string
}

type bindingSummary struct {
	Target   string
	Name     string
	Output   string
	Fields   []fieldSummary
	Variants [][]string
}

// Dump renders the binding as an indented tree for -dump output and tests.
// go/types values are rendered as strings; spew would otherwise walk the
// whole type graph.
func (b *Binding) Dump() string {
	s := bindingSummary{
		Target: b.Target.ID.String(),
		Name:   b.Name,
		Output: b.OutputPkgPath,
	}

	for _, f := range b.Fields {
		s.Fields = append(s.Fields, fieldSummary{
			Name:     f.Name,
			Kind:     f.Kind.String(),
			Type:     types.TypeString(f.GoType, nil),
			Optional: f.Optional,
			Access:   f.Access.Kind.String(),
			Setter:   f.Access.Setter,
		})
	}

	for _, v := range b.Variants {
		names := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			names[i] = f.Name
		}

		s.Variants = append(s.Variants, names)
	}

	return dumpConfig.Sdump(s)
}
