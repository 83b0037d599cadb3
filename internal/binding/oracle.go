package binding

import (
	"go/types"

	"golang.org/x/tools/go/types/typeutil"

	"starter-generator/internal/analyze"
)

// Default capability names.
const (
	DefaultReferenceCapability = "starter-generator/starter.Parcelable"
	DefaultValueCapability     = "encoding.BinaryMarshaler"
)

// Ancestry is the slice of the host type system the oracle needs.
// *analyze.Hierarchy implements it.
type Ancestry interface {
	SuperTypes(t types.Type) []types.Type
	LookupInterface(qualified string) (*types.Interface, bool)
}

// Oracle decides whether a type satisfies a capability.
type Oracle struct {
	ancestry Ancestry
}

// NewOracle returns an Oracle over a.
func NewOracle(a Ancestry) *Oracle {
	return &Oracle{ancestry: a}
}

// IsCapability reports whether t satisfies the capability named by its fully
// qualified name.
//
// When the capability interface is part of the loaded program the answer is
// types.Implements(t, iface): generated code passes the value to a Message
// writer typed with that interface, so the field type itself must satisfy it.
// Otherwise the oracle walks t's supertype DAG and matches qualified names.
func (o *Oracle) IsCapability(t types.Type, capability string) bool {
	if o.ancestry != nil {
		if iface, ok := o.ancestry.LookupInterface(capability); ok {
			return types.Implements(t, iface)
		}
	}

	return o.reaches(t, capability)
}

// reaches walks t and its supertypes depth-first looking for capability.
func (o *Oracle) reaches(t types.Type, capability string) bool {
	var seen typeutil.Map

	stack := []types.Type{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen.At(n) != nil {
			continue
		}

		seen.Set(n, true)

		if analyze.QualifiedName(n) == capability {
			return true
		}

		stack = append(stack, o.superTypes(n)...)
	}

	return false
}

func (o *Oracle) superTypes(t types.Type) []types.Type {
	if o.ancestry == nil {
		return analyze.SuperTypes(t)
	}

	return o.ancestry.SuperTypes(t)
}
