package binding

import (
	"context"
	"errors"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"starter-generator/internal/analyze"
	"starter-generator/internal/diagnostic"
)

var log = commonlog.GetLogger("starter.binding")

// Result is the outcome of compiling one target: exactly one of Binding and
// Err is set.
type Result struct {
	Target  *analyze.TargetDescriptor
	Binding *Binding
	Err     error
}

// CompileAll compiles targets independently, at most jobs at a time
// (jobs <= 0 means unlimited). A failing target is reported to sink and does
// not affect its siblings. Results keep the order of targets. The only
// error returned is ctx's.
func (c *Compiler) CompileAll(ctx context.Context, targets []*analyze.TargetDescriptor, sink diagnostic.Sink, jobs int) ([]Result, error) {
	results := make([]Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, td := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			b, err := c.Compile(td)
			results[i] = Result{Target: td, Binding: b, Err: err}

			if err != nil {
				log.Errorf("%s", err)
				report(sink, td, err)

				return nil
			}

			log.Debugf("%s: %d field(s), %d variant(s)", td.ID, len(b.Fields), len(b.Variants))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// report files err with sink under its diagnostic code.
func report(sink diagnostic.Sink, td *analyze.TargetDescriptor, err error) {
	if sink == nil {
		return
	}

	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     Code(err),
		Message:  err.Error(),
		Target:   td.ID.String(),
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		d.Field = fe.Field
	}

	sink.Report(d)
}

// Code maps a compile error to its diagnostic code.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFieldType):
		return diagnostic.CodeUnsupportedFieldType
	case errors.Is(err, ErrInaccessibleField):
		return diagnostic.CodeInaccessibleField
	case errors.Is(err, ErrNameCollision):
		return diagnostic.CodeNameCollision
	case errors.Is(err, ErrTooManyOptionals):
		return diagnostic.CodeTooManyOptionals
	case errors.Is(err, ErrUnsupportedTarget):
		return diagnostic.CodeUnsupportedTarget
	default:
		return diagnostic.CodeMalformedMetadata
	}
}
