package analyze

import (
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"starter-generator/internal/match"
)

// ArgTagKey is the struct tag key that marks an argument field.
const ArgTagKey = "arg"

// TargetDirective marks a struct as a target even when it has no arg fields.
const TargetDirective = "//starter:target"

// Tag options understood after the comma in `arg:",..."`.
const (
	OptOptional = "optional"
	OptReadOnly = "readonly"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "starter-generator/examples/profile"
	Name    string // e.g., "Profile"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TargetDescriptor describes one target type.
type TargetDescriptor struct {
	ID      TypeID
	PkgName string // package name, e.g. "profile"
	Dir     string // directory holding the package sources
	// Named is the target type. Generic targets keep their type parameters;
	// see TypeParams.
	Named  *types.Named
	Fields []ArgField // argument fields in declaration order
	// Marked is true when the struct carries the //starter:target directive.
	Marked bool
}

// Pkg returns the package declaring the target.
func (t *TargetDescriptor) Pkg() *types.Package {
	if t.Named == nil {
		return nil
	}

	return t.Named.Obj().Pkg()
}

// TypeParams returns the number of type parameters on the target.
func (t *TargetDescriptor) TypeParams() int {
	if t.Named == nil {
		return 0
	}

	return t.Named.TypeParams().Len()
}

// BindingName returns the generated binding name: the target name plus suffix.
func (t *TargetDescriptor) BindingName(suffix string) string {
	return t.ID.Name + suffix
}

// ArgField describes a struct field tagged with `arg`.
type ArgField struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     types.Type        // Declared field type
	Var      *types.Var        // The field object
	Tag      reflect.StructTag // Raw struct tag
	Index    int               // Field index in the struct
	Optional bool              // `arg:",optional"`
	ReadOnly bool              // `arg:",readonly"`
	// Err is set when the field metadata could not be read, for example an
	// unknown tag option or a type that failed to type-check.
	Err error
}

// ArgOptions holds the parsed options of an `arg` tag.
type ArgOptions struct {
	Optional bool
	ReadOnly bool
}

// ParseArgTag reports whether tag carries the `arg` key and parses its options.
// The part before the first comma is reserved and must be empty.
func ParseArgTag(tag reflect.StructTag) (ArgOptions, bool, error) {
	value, ok := tag.Lookup(ArgTagKey)
	if !ok {
		return ArgOptions{}, false, nil
	}

	var opts ArgOptions

	parts := strings.Split(value, ",")
	if parts[0] != "" {
		return opts, true, fmt.Errorf("arg tag %q: name part must be empty", value)
	}

	for _, p := range parts[1:] {
		switch strings.TrimSpace(p) {
		case OptOptional:
			opts.Optional = true
		case OptReadOnly:
			opts.ReadOnly = true
		case "":
		default:
			return opts, true, fmt.Errorf("arg tag %q: unknown option %q%s", value, p,
				match.Hint(strings.TrimSpace(p), OptOptional, OptReadOnly))
		}
	}

	return opts, true, nil
}
