// Package main provides the CLI entrypoint for starter-generator.
//
// starter-generator reads Go structs whose fields carry `arg` tags and
// generates, next to each struct or into a separate package, typed routines
// that build a starter.Message for it, launch it through a starter.Context,
// and copy a received message back into the struct.
//
// Usage:
//
//	starter-generator gen   [flags]   generate *_starter.go files
//	starter-generator check [flags]   report diagnostics without writing
//
// When invoked via go:generate, "-pkg ." selects the current package.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"starter-generator/internal/analyze"
	"starter-generator/internal/binding"
	"starter-generator/internal/config"
	"starter-generator/internal/diagnostic"
	"starter-generator/internal/gen"
	"starter-generator/internal/match"
)

const usage = `usage: starter-generator <command> [flags]

Commands:
  gen     generate starter routines for every target
  check   compile targets and report diagnostics without writing files

Run "starter-generator <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*s = append(*s, p)
		}
	}

	return nil
}

type options struct {
	configPath string
	pkgs       stringList
	outPkg     string
	outDir     string
	outName    string
	suffix     string
	jobs       int
	verbose    int
	dump       bool
	noComments bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, args := args[0], args[1:]

	switch cmd {
	case "gen", "check":
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q%s\n\n%s", cmd, match.Hint(cmd, "gen", "check"), usage)
		return 2
	}

	var opts options

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML or TOML config file")
	fs.Var(&opts.pkgs, "pkg", "package pattern to scan (repeatable, comma-separated)")
	fs.StringVar(&opts.outPkg, "out-pkg", "", "import path of a separate output package")
	fs.StringVar(&opts.outDir, "out", "", "directory of the output package (with -out-pkg)")
	fs.StringVar(&opts.outName, "out-name", "", "name of the output package (default: last element of -out-pkg)")
	fs.StringVar(&opts.suffix, "suffix", "", "binding name suffix (default \"Starter\")")
	fs.IntVar(&opts.jobs, "jobs", 0, "targets compiled in parallel (0 = unlimited)")
	fs.IntVar(&opts.verbose, "v", 0, "log verbosity (0 = errors only, 4 = debug)")
	fs.BoolVar(&opts.dump, "dump", false, "print the compiled binding of every target")
	fs.BoolVar(&opts.noComments, "no-comments", false, "omit doc comments on generated routines")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}

	commonlog.Configure(cfg.Verbose, nil)

	diags, err := generate(ctx, cfg, cmd == "gen", opts.dump, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return 1
	}

	return report(diags, stdout, stderr)
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(opts.configPath); err != nil {
			return nil, err
		}
	}

	if len(opts.pkgs) > 0 {
		cfg.Packages = opts.pkgs
	}

	if len(cfg.Packages) == 0 {
		cfg.Packages = []string{"."}
	}

	if opts.outPkg != "" {
		cfg.Output.Package = opts.outPkg
	}

	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}

	if opts.outName != "" {
		cfg.Output.Name = opts.outName
	}

	if opts.suffix != "" {
		cfg.Suffix = opts.suffix
	}

	if opts.jobs != 0 {
		cfg.Jobs = opts.jobs
	}

	if opts.verbose != 0 {
		cfg.Verbose = opts.verbose
	}

	if opts.noComments {
		off := false
		cfg.Comments = &off
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// generate loads and compiles every target, then writes the files of the
// targets that compiled when write is set. Per-target failures end up in the
// returned diagnostics; the error is for failures that stop the whole run.
func generate(ctx context.Context, cfg *config.Config, write, dump bool, stdout io.Writer) (*diagnostic.Diagnostics, error) {
	loader := analyze.NewLoader()
	loader.Support = cfg.SupportPackages()

	res, err := loader.Load(cfg.Packages...)
	if err != nil {
		return nil, err
	}

	diags := &diagnostic.Diagnostics{}

	// Fields whose types failed to check are reported per target below.
	for _, e := range res.PackageErrors {
		diags.AddWarning(diagnostic.CodeMalformedMetadata, e.Error(), "", "")
	}

	compiler := binding.NewCompiler(cfg.CompilerOptions(), res.Hierarchy)

	results, err := compiler.CompileAll(ctx, res.Targets, diags, cfg.Jobs)
	if err != nil {
		return nil, err
	}

	bindings := make([]*binding.Binding, 0, len(results))
	for _, r := range results {
		if r.Binding == nil {
			continue
		}

		bindings = append(bindings, r.Binding)

		if dump {
			fmt.Fprint(stdout, r.Binding.Dump())
		}
	}

	if !write {
		return diags, nil
	}

	files := gen.NewGenerator(cfg.GeneratorConfig()).Generate(bindings, diags)

	if err := gen.WriteFiles(files); err != nil {
		return nil, err
	}

	for _, f := range files {
		diags.AddInfo(diagnostic.CodeGenerated, "wrote "+f.Path(), f.Target, "")
	}

	return diags, nil
}

// report prints diagnostics and returns the exit code.
func report(diags *diagnostic.Diagnostics, stdout, stderr io.Writer) int {
	for _, d := range diags.Infos {
		fmt.Fprintln(stdout, d)
	}

	for _, d := range diags.Warnings {
		fmt.Fprintln(stderr, "warning:", d)
	}

	// Targets compile in parallel; sort for stable output.
	errs := slices.SortedFunc(slices.Values(diags.Errors), func(a, b diagnostic.Diagnostic) int {
		return strings.Compare(a.Target, b.Target)
	})

	for _, d := range errs {
		fmt.Fprintln(stderr, "error:", d)
	}

	if diags.HasErrors() {
		fmt.Fprintf(stderr, "%d target(s) failed\n", len(diags.Errors))
		return 1
	}

	return 0
}
