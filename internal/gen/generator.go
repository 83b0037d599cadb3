package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"github.com/tliron/commonlog"

	"starter-generator/internal/binding"
	"starter-generator/internal/common"
	"starter-generator/internal/diagnostic"
)

var log = commonlog.GetLogger("starter.gen")

// DefaultRuntime is the import path of the runtime package generated code uses.
const DefaultRuntime = "starter-generator/starter"

// MainThreadDirective is attached to every generated routine.
const MainThreadDirective = "//starter:mainthread"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Runtime is the import path of the starter runtime package.
	Runtime string
	// PackageName is the name of the output package when bindings are
	// generated outside their target's package. Empty means the last element
	// of the output import path.
	PackageName string
	// OutputDir is where files go when bindings are generated outside their
	// target's package. Same-package files go next to the target sources.
	OutputDir string
	// GenerateComments enables doc comments on generated routines.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Runtime:          DefaultRuntime,
		GenerateComments: true,
	}
}

// Generator renders bindings to Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Runtime == "" {
		config.Runtime = DefaultRuntime
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "profile_starter.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Target is the qualified name of the target type.
	Target string
}

// Path returns Dir joined with Filename.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate renders one file per binding, in order. A binding that fails to
// render is reported to sink and skipped; the others are still rendered.
func (g *Generator) Generate(bindings []*binding.Binding, sink diagnostic.Sink) []GeneratedFile {
	files := make([]GeneratedFile, 0, len(bindings))

	for _, b := range bindings {
		file, err := g.GenerateBinding(b)
		if err != nil {
			log.Errorf("%s: %s", b.Target.ID, err)

			if sink != nil {
				sink.Report(diagnostic.Diagnostic{
					Severity: diagnostic.DiagnosticError,
					Code:     diagnostic.CodeRenderFailed,
					Message:  fmt.Sprintf("generating %s: %s", b.Target.ID, err),
					Target:   b.Target.ID.String(),
				})
			}

			continue
		}

		files = append(files, *file)
	}

	return files
}

// GenerateBinding renders the file for one binding: the fill routine, then
// the message builder, launcher and flagged launcher of every variant.
func (g *Generator) GenerateBinding(b *binding.Binding) (*GeneratedFile, error) {
	dir := b.Target.Dir
	pkgName := b.Target.PkgName

	if !b.SamePackage() {
		dir = g.config.OutputDir
		pkgName = g.config.PackageName

		if pkgName == "" {
			pkgName = common.PkgAlias(b.OutputPkgPath)
		}
	}

	r := &renderer{
		b:        b,
		runtime:  g.config.Runtime,
		comments: g.config.GenerateComments,
		f:        jen.NewFilePathName(b.OutputPkgPath, pkgName),
	}

	r.f.NoFormat = true
	r.f.HeaderComment("Code generated by starter-generator. DO NOT EDIT.")
	r.f.ImportName(g.config.Runtime, "starter")

	if err := r.render(); err != nil {
		return nil, err
	}

	filename := common.SnakeCase(b.Name) + ".go"

	var buf bytes.Buffer
	if err := r.f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort sidecar for debugging; the formatting error is what matters.
		_ = writeDebugUnformatted(dir, filename, buf.Bytes())

		return nil, fmt.Errorf("formatting code: %w", err)
	}

	log.Debugf("%s: rendered %s (%d bytes)", b.Target.ID, filename, len(formatted))

	return &GeneratedFile{
		Dir:      dir,
		Filename: filename,
		Content:  formatted,
		Target:   b.Target.ID.String(),
	}, nil
}
