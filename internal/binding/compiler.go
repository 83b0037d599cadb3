package binding

import (
	"errors"
	"fmt"
	"go/types"

	"starter-generator/internal/analyze"
	"starter-generator/internal/common"
)

// Errors reported by Compile, wrapped in *FieldError.
var (
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	ErrInaccessibleField    = errors.New("inaccessible field")
	ErrMalformedMetadata    = errors.New("malformed metadata")
	ErrNameCollision        = errors.New("generated name collision")
	ErrTooManyOptionals     = errors.New("too many optional fields")
	ErrUnsupportedTarget    = errors.New("unsupported target")
)

// FieldError is a fatal compile error for one target.
type FieldError struct {
	Target analyze.TypeID
	Field  string // empty for target-level errors
	Err    error
	Detail string
}

func (e *FieldError) Error() string {
	msg := e.Target.String()
	if e.Field != "" {
		msg += "." + e.Field
	}

	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

func (e *FieldError) Unwrap() error { return e.Err }

// Options configure a Compiler.
type Options struct {
	// Suffix is appended to the target name to form the binding name.
	Suffix string
	// OutputPkgPath is the import path of the package generated code lives
	// in. Empty means each target's own package.
	OutputPkgPath string
	// Reference and Value are the qualified names of the reference-capable
	// and value-capable interfaces.
	Reference string
	Value     string
}

// DefaultOptions returns the default compiler options.
func DefaultOptions() Options {
	return Options{
		Suffix:    "Starter",
		Reference: DefaultReferenceCapability,
		Value:     DefaultValueCapability,
	}
}

// Compiler turns target descriptors into bindings. It holds no per-target
// state and may be shared between goroutines.
type Compiler struct {
	opts       Options
	classifier classifier
}

// NewCompiler creates a Compiler resolving capabilities through ancestry.
func NewCompiler(opts Options, ancestry Ancestry) *Compiler {
	def := DefaultOptions()
	if opts.Suffix == "" {
		opts.Suffix = def.Suffix
	}

	if opts.Reference == "" {
		opts.Reference = def.Reference
	}

	if opts.Value == "" {
		opts.Value = def.Value
	}

	return &Compiler{
		opts: opts,
		classifier: classifier{
			oracle:    NewOracle(ancestry),
			reference: opts.Reference,
			value:     opts.Value,
		},
	}
}

// Options returns the effective options.
func (c *Compiler) Options() Options { return c.opts }

// Binding is the compiled model of one target's generated file.
type Binding struct {
	Target *analyze.TargetDescriptor
	// Name is the binding name, e.g. "ProfileStarter".
	Name string
	// OutputPkgPath is the package the generated file belongs to.
	OutputPkgPath string
	Fields        []*FieldBinding
	Variants      []Variant
}

// Routines are the generated function names for one variant.
type Routines struct {
	Message    string // builds the message
	Start      string // builds and launches
	StartFlags string // builds, adds flags, launches
}

// FillName returns the name of the population routine.
func (b *Binding) FillName() string {
	return "Fill" + b.Target.ID.Name
}

// RoutinesFor returns the routine names for v.
func (b *Binding) RoutinesFor(v Variant) Routines {
	name := b.Target.ID.Name

	return Routines{
		Message:    "New" + name + "Message" + v.Suffix(),
		Start:      "Start" + name + v.Suffix(),
		StartFlags: "Start" + name + v.FlagsSuffix(),
	}
}

// TypeParams returns the target's type parameters; the list is empty for
// non-generic targets.
func (b *Binding) TypeParams() *types.TypeParamList {
	return b.Target.Named.TypeParams()
}

// Generic reports whether v's routines must declare the target's type
// parameters, i.e. whether any of its parameters mentions one.
func (b *Binding) Generic(v Variant) bool {
	if b.TypeParams().Len() == 0 {
		return false
	}

	for _, f := range v.Fields {
		if mentionsTypeParam(f.GoType) {
			return true
		}
	}

	return false
}

// SamePackage reports whether generated code lives in the target's package.
func (b *Binding) SamePackage() bool {
	return b.OutputPkgPath == b.Target.ID.PkgPath
}

// Compile builds the binding for td. Target checks (visibility, type
// parameters) come first, then checks run per field in declaration order
// (metadata, type, access) before any variant is derived; the first failure
// aborts the target.
//
// Generic targets keep their type parameters: the fill routine and every
// routine whose parameters mention one redeclare the full list.
func (c *Compiler) Compile(td *analyze.TargetDescriptor) (*Binding, error) {
	if td.Named == nil {
		return nil, &FieldError{Target: td.ID, Err: ErrMalformedMetadata, Detail: "no type information"}
	}

	outPkg := c.opts.OutputPkgPath
	if outPkg == "" {
		outPkg = td.ID.PkgPath
	}

	if !visibleFrom(td.Named, outPkg) {
		return nil, &FieldError{Target: td.ID, Err: ErrUnsupportedTarget, Detail: "unexported target is not visible from " + outPkg}
	}

	if err := checkTypeParams(td, outPkg); err != nil {
		return nil, err
	}

	fields := make([]*FieldBinding, 0, len(td.Fields))

	for _, f := range td.Fields {
		fb, err := c.classifier.newFieldBinding(td.ID, f)
		if err != nil {
			return nil, err
		}

		if !spellable(f.Type) {
			return nil, &FieldError{
				Target: td.ID,
				Field:  f.Name,
				Err:    ErrUnsupportedFieldType,
				Detail: "type " + types.TypeString(f.Type, nil) + " cannot be written in generated code",
			}
		}

		if !visibleFrom(f.Type, outPkg) {
			return nil, &FieldError{
				Target: td.ID,
				Field:  f.Name,
				Err:    ErrInaccessibleField,
				Detail: "type " + types.TypeString(f.Type, nil) + " is not visible from " + outPkg,
			}
		}

		fb.Access = ResolveAccess(td.Named, f, outPkg)
		if fb.Access.Kind == Inaccessible {
			return nil, &FieldError{
				Target: td.ID,
				Field:  f.Name,
				Err:    ErrInaccessibleField,
				Detail: fmt.Sprintf("not writable from %s and no Set%s method", outPkg, common.Capitalize(f.Name)),
			}
		}

		fields = append(fields, fb)
	}

	variants, err := Variants(fields)
	if err != nil {
		return nil, &FieldError{Target: td.ID, Err: err}
	}

	b := &Binding{
		Target:        td,
		Name:          td.BindingName(c.opts.Suffix),
		OutputPkgPath: outPkg,
		Fields:        fields,
		Variants:      variants,
	}

	if err := b.checkNames(); err != nil {
		return nil, err
	}

	return b, nil
}

// checkNames rejects bindings whose generated routines or parameters would
// share a name.
func (b *Binding) checkNames() error {
	seen := map[string]string{b.FillName(): "fill routine"}

	claim := func(name, what string) error {
		if prev, ok := seen[name]; ok {
			return &FieldError{
				Target: b.Target.ID,
				Err:    ErrNameCollision,
				Detail: fmt.Sprintf("%s and %s are both named %s", prev, what, name),
			}
		}

		seen[name] = what

		return nil
	}

	for _, v := range b.Variants {
		r := b.RoutinesFor(v)
		for _, n := range []struct{ name, what string }{
			{r.Message, fmt.Sprintf("message builder (variant %d)", v.Mask)},
			{r.Start, fmt.Sprintf("launcher (variant %d)", v.Mask)},
			{r.StartFlags, fmt.Sprintf("flagged launcher (variant %d)", v.Mask)},
		} {
			if err := claim(n.name, n.what); err != nil {
				return err
			}
		}
	}

	params := make(map[string]string, len(b.Fields))
	for _, f := range b.Fields {
		if prev, ok := params[f.Param()]; ok {
			return &FieldError{
				Target: b.Target.ID,
				Field:  f.Name,
				Err:    ErrNameCollision,
				Detail: fmt.Sprintf("fields %s and %s share parameter name %s", prev, f.Name, f.Param()),
			}
		}

		params[f.Param()] = f.Name
	}

	tparams := b.TypeParams()
	for i := range tparams.Len() {
		name := tparams.At(i).Obj().Name()

		clash, ok := params[name]
		switch {
		case ok:
			clash = "parameter of field " + clash
		case reservedParams[name] || bodyLocals[name]:
			clash = "a generated local"
		default:
			continue
		}

		return &FieldError{
			Target: b.Target.ID,
			Err:    ErrNameCollision,
			Detail: fmt.Sprintf("type parameter %s shares its name with %s", name, clash),
		}
	}

	return nil
}

// bodyLocals are the identifiers the fill routine declares.
var bodyLocals = map[string]bool{"t": true, "v": true}

// mentionsTypeParam reports whether t refers to a type parameter.
func mentionsTypeParam(t types.Type) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true
	case *types.Named:
		for i := range tt.TypeArgs().Len() {
			if mentionsTypeParam(tt.TypeArgs().At(i)) {
				return true
			}
		}

		return false
	case *types.Pointer:
		return mentionsTypeParam(tt.Elem())
	case *types.Slice:
		return mentionsTypeParam(tt.Elem())
	case *types.Array:
		return mentionsTypeParam(tt.Elem())
	case *types.Map:
		return mentionsTypeParam(tt.Key()) || mentionsTypeParam(tt.Elem())
	default:
		return false
	}
}

// visibleFrom reports whether t can be spelled in package pkgPath: every
// named type it mentions is exported or declared in pkgPath.
func visibleFrom(t types.Type, pkgPath string) bool {
	switch tt := types.Unalias(t).(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg().Path() != pkgPath && !obj.Exported() {
			return false
		}

		for i := range tt.TypeArgs().Len() {
			if !visibleFrom(tt.TypeArgs().At(i), pkgPath) {
				return false
			}
		}

		return true
	case *types.Pointer:
		return visibleFrom(tt.Elem(), pkgPath)
	case *types.Slice:
		return visibleFrom(tt.Elem(), pkgPath)
	case *types.Array:
		return visibleFrom(tt.Elem(), pkgPath)
	case *types.Map:
		return visibleFrom(tt.Key(), pkgPath) && visibleFrom(tt.Elem(), pkgPath)
	default:
		return true
	}
}
