package binding

import (
	"fmt"
	"strings"

	"starter-generator/internal/common"
)

// MaxOptional bounds the number of optional fields per target: K optional
// fields produce 2^K variants and 3*2^K generated routines.
const MaxOptional = 16

// Variant is one overload: every required field in declaration order, then
// one subset of the optional fields in declaration order.
type Variant struct {
	// Mask has bit i set when optional field i is part of the variant.
	Mask uint32
	// Fields are the parameters of the variant's routines, in order.
	Fields []*FieldBinding
	// Optional is the chosen subset of optional fields.
	Optional []*FieldBinding
}

// Suffix names the variant in Go, which has no overloading: "" for the
// required-only variant, otherwise "With" + the capitalized optional field
// names joined by "And".
func (v Variant) Suffix() string {
	if len(v.Optional) == 0 {
		return ""
	}

	names := make([]string, len(v.Optional))
	for i, f := range v.Optional {
		names[i] = common.Capitalize(f.Name)
	}

	return "With" + strings.Join(names, "And")
}

// FlagsSuffix is Suffix extended for the routine that also takes flags.
func (v Variant) FlagsSuffix() string {
	if s := v.Suffix(); s != "" {
		return s + "AndFlags"
	}

	return "WithFlags"
}

// Variants enumerates the overloads for fields, which must be in declaration
// order. The order is a binary counter over the optional fields, bit i
// selecting optional field i, counting from 0 to 2^K-1; the first variant is
// always the required-only one.
func Variants(fields []*FieldBinding) ([]Variant, error) {
	var required, optional []*FieldBinding

	for _, f := range fields {
		if f.Optional {
			optional = append(optional, f)
		} else {
			required = append(required, f)
		}
	}

	if len(optional) > MaxOptional {
		return nil, fmt.Errorf("%w: %d, at most %d", ErrTooManyOptionals, len(optional), MaxOptional)
	}

	total := uint32(1) << len(optional)
	variants := make([]Variant, 0, total)

	for mask := range total {
		v := Variant{
			Mask:   mask,
			Fields: make([]*FieldBinding, 0, len(required)+len(optional)),
		}

		v.Fields = append(v.Fields, required...)

		for i, f := range optional {
			if mask&(1<<i) != 0 {
				v.Optional = append(v.Optional, f)
				v.Fields = append(v.Fields, f)
			}
		}

		variants = append(variants, v)
	}

	return variants, nil
}
