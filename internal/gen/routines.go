package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"starter-generator/internal/binding"
)

// renderer emits the routines of one binding into a jennifer file.
type renderer struct {
	b        *binding.Binding
	runtime  string
	comments bool
	f        *jen.File

	types map[*binding.FieldBinding]jen.Code
	// tparams declares the target's type parameters; targs instantiates the
	// target with them. Both are empty for non-generic targets.
	tparams []jen.Code
	targs   []jen.Code
}

func (r *renderer) render() error {
	var err error

	r.tparams, r.targs, err = typeParamsCode(r.b.TypeParams())
	if err != nil {
		return err
	}

	r.types = make(map[*binding.FieldBinding]jen.Code, len(r.b.Fields))
	for _, fb := range r.b.Fields {
		code, err := typeCode(fb.GoType)
		if err != nil {
			return fmt.Errorf("field %s: %w", fb.Name, err)
		}

		r.types[fb] = code
	}

	r.fill()

	for _, v := range r.b.Variants {
		routines := r.b.RoutinesFor(v)
		r.message(v, routines)
		r.start(v, routines)
		r.startFlags(v, routines)
	}

	return nil
}

func (r *renderer) rt(name string) *jen.Statement {
	return jen.Qual(r.runtime, name)
}

func (r *renderer) target() *jen.Statement {
	id := r.b.Target.ID
	return jen.Qual(id.PkgPath, id.Name).Types(r.targs...)
}

// typeParams returns the type parameter declarations v's routines need.
func (r *renderer) typeParams(v binding.Variant) []jen.Code {
	if !r.b.Generic(v) {
		return nil
	}

	return r.tparams
}

// doc writes the doc comment and the main-thread directive of a routine.
func (r *renderer) doc(format string, args ...any) {
	r.f.Line()

	if r.comments {
		r.f.Comment(fmt.Sprintf(format, args...))
		r.f.Comment("It must be called on the main thread.")
		r.f.Comment("//")
	}

	r.f.Comment(MainThreadDirective)
}

// fill emits Fill<Target>: one presence-guarded assignment per field.
func (r *renderer) fill() {
	name := r.b.FillName()
	r.doc("%s copies the arguments present in m into t. Fields whose key is absent are left unchanged.", name)

	body := make([]jen.Code, 0, len(r.b.Fields))
	for _, fb := range r.b.Fields {
		body = append(body, jen.If(jen.Id("m").Dot("Has").Call(jen.Lit(fb.Key()))).Block(r.assign(fb)...))
	}

	r.f.Func().Id(name).Types(r.tparams...).Params(
		jen.Id("t").Op("*").Add(r.target()),
		jen.Id("m").Op("*").Add(r.rt("Message")),
	).Block(body...)
}

// read is the reader expression for fb.
func (r *renderer) read(fb *binding.FieldBinding) *jen.Statement {
	s := fb.Strategy()

	args := []jen.Code{jen.Lit(fb.Key())}
	if s.DefaultArg {
		if fb.Kind == binding.KindRune {
			args = append(args, jen.LitRune(s.Default.(rune)))
		} else {
			args = append(args, jen.Lit(s.Default))
		}
	}

	return jen.Id("m").Dot(s.Reader).Call(args...)
}

// assign writes the value read for fb into t, directly or through its setter.
// Cast reads use the comma-ok form so nil or foreign values give the zero value.
func (r *renderer) assign(fb *binding.FieldBinding) []jen.Code {
	var (
		stmts []jen.Code
		value jen.Code = r.read(fb)
	)

	if fb.Strategy().Cast {
		stmts = append(stmts, jen.List(jen.Id("v"), jen.Id("_")).Op(":=").Add(value).Assert(r.types[fb]))
		value = jen.Id("v")
	}

	switch fb.Access.Kind {
	case binding.ViaSetter:
		stmts = append(stmts, jen.Id("t").Dot(fb.Access.Setter).Call(value))
	default:
		stmts = append(stmts, jen.Id("t").Dot(fb.Name).Op("=").Add(value))
	}

	return stmts
}

func (r *renderer) params(v binding.Variant) []jen.Code {
	params := []jen.Code{jen.Id("ctx").Add(r.rt("Context"))}
	for _, fb := range v.Fields {
		params = append(params, jen.Id(fb.Param()).Add(r.types[fb]))
	}

	return params
}

func (r *renderer) args(v binding.Variant) []jen.Code {
	args := []jen.Code{jen.Id("ctx")}
	for _, fb := range v.Fields {
		args = append(args, jen.Id(fb.Param()))
	}

	return args
}

// call invokes the message builder of v. Generic builders are instantiated
// explicitly.
func (r *renderer) call(v binding.Variant, name string) *jen.Statement {
	var targs []jen.Code
	if r.b.Generic(v) {
		targs = r.targs
	}

	return jen.Id(name).Types(targs...).Call(r.args(v)...)
}

// message emits the builder: a new message with one Put per variant field,
// in variant order.
func (r *renderer) message(v binding.Variant, routines binding.Routines) {
	r.doc("%s builds the launch message for %s.", routines.Message, r.b.Target.ID.Name)

	body := []jen.Code{
		jen.Id("m").Op(":=").Add(r.rt("NewMessage")).Call(jen.Id("ctx"), jen.Lit(r.b.Target.ID.String())),
	}

	for _, fb := range v.Fields {
		body = append(body, jen.Id("m").Dot(fb.Strategy().Writer).Call(jen.Lit(fb.Key()), jen.Id(fb.Param())))
	}

	body = append(body, jen.Return(jen.Id("m")))

	r.f.Func().Id(routines.Message).Types(r.typeParams(v)...).Params(r.params(v)...).Op("*").Add(r.rt("Message")).Block(body...)
}

func (r *renderer) start(v binding.Variant, routines binding.Routines) {
	r.doc("%s launches %s.", routines.Start, r.b.Target.ID.Name)

	r.f.Func().Id(routines.Start).Types(r.typeParams(v)...).Params(r.params(v)...).Block(
		jen.Id("ctx").Dot("Start").Call(r.call(v, routines.Message)),
	)
}

func (r *renderer) startFlags(v binding.Variant, routines binding.Routines) {
	r.doc("%s launches %s with flags added to the message.", routines.StartFlags, r.b.Target.ID.Name)

	params := append(r.params(v), jen.Id("flags").Add(r.rt("Flags")))

	r.f.Func().Id(routines.StartFlags).Types(r.typeParams(v)...).Params(params...).Block(
		jen.Id("m").Op(":=").Add(r.call(v, routines.Message)),
		jen.Id("m").Dot("AddFlags").Call(jen.Id("flags")),
		jen.Id("ctx").Dot("Start").Call(jen.Id("m")),
	)
}
