package analyze

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"
)

var log = commonlog.GetLogger("starter.analyze")

// ErrNoTypes is returned when a matched package has no type information.
var ErrNoTypes = errors.New("package has no type information")

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports |
	packages.NeedDeps

// Result is the output of a load: the discovered targets in package order
// and the hierarchy used for capability lookups.
type Result struct {
	Targets   []*TargetDescriptor
	Hierarchy *Hierarchy
	// PackageErrors are type-check or parse errors reported by the loader.
	// Targets in such packages are still returned; fields whose types failed
	// to check carry an Err.
	PackageErrors []error
}

// Loader loads Go packages and discovers targets.
type Loader struct {
	// Dir is the working directory for package patterns. Empty means the
	// current directory.
	Dir string
	// Tests includes test files when true.
	Tests bool
	// Support lists import paths loaded only so that capability interfaces
	// resolve (e.g. the starter runtime, "encoding"). They are not scanned
	// for targets.
	Support []string
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads the packages matched by patterns (e.g., "./...",
// "starter-generator/examples/profile") and returns their targets.
func (l *Loader) Load(patterns ...string) (*Result, error) {
	cfg := &packages.Config{
		Mode:  LoadMode,
		Dir:   l.Dir,
		Tests: l.Tests,
	}

	support := make(map[string]bool, len(l.Support))
	for _, p := range l.Support {
		support[p] = true
	}

	pkgs, err := packages.Load(cfg, append(append([]string{}, patterns...), l.Support...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	res := &Result{}

	var roots []*types.Package

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			log.Warningf("%s: %s", pkg.PkgPath, e)
			res.PackageErrors = append(res.PackageErrors, e)
		}

		if pkg.Types == nil {
			return nil, fmt.Errorf("%s: %w", pkg.PkgPath, ErrNoTypes)
		}

		roots = append(roots, pkg.Types)
		if support[pkg.PkgPath] {
			continue
		}

		targets := discoverTargets(pkg)
		log.Infof("%s: %d target(s)", pkg.PkgPath, len(targets))
		res.Targets = append(res.Targets, targets...)
	}

	res.Hierarchy = NewHierarchy(roots...)

	return res, nil
}

// discoverTargets extracts targets from a loaded package in scope order.
func discoverTargets(pkg *packages.Package) []*TargetDescriptor {
	marked := markedTypes(pkg.Syntax)

	dir := ""
	if len(pkg.GoFiles) > 0 {
		dir = filepath.Dir(pkg.GoFiles[0])
	}

	var targets []*TargetDescriptor

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		td, ok := DescribeTarget(pkg.PkgPath, pkg.Name, named)
		if !ok || (len(td.Fields) == 0 && !marked[name]) {
			continue
		}

		td.Dir = dir
		td.Marked = marked[name]
		targets = append(targets, td)
	}

	return targets
}

// DescribeTarget builds the descriptor of a named struct type. It returns
// false when named is not a struct.
func DescribeTarget(pkgPath, pkgName string, named *types.Named) (*TargetDescriptor, bool) {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, false
	}

	return &TargetDescriptor{
		ID:      TypeID{PkgPath: pkgPath, Name: named.Obj().Name()},
		PkgName: pkgName,
		Named:   named,
		Fields:  argFields(st),
	}, true
}

// argFields returns the struct's `arg` fields in declaration order.
func argFields(st *types.Struct) []ArgField {
	var fields []ArgField

	for i := range st.NumFields() {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		opts, ok, err := ParseArgTag(tag)
		if !ok {
			continue
		}

		f := ArgField{
			Name:     v.Name(),
			Exported: v.Exported(),
			Type:     v.Type(),
			Var:      v,
			Tag:      tag,
			Index:    i,
			Optional: opts.Optional,
			ReadOnly: opts.ReadOnly,
			Err:      err,
		}

		if f.Err == nil && !validType(v.Type()) {
			f.Err = fmt.Errorf("field %s: type did not check", v.Name())
		}

		fields = append(fields, f)
	}

	return fields
}

// validType reports whether t is free of invalid components at the top level.
func validType(t types.Type) bool {
	switch tt := t.(type) {
	case *types.Basic:
		return tt.Kind() != types.Invalid
	case *types.Pointer:
		return validType(tt.Elem())
	case *types.Slice:
		return validType(tt.Elem())
	case *types.Array:
		return validType(tt.Elem())
	case *types.Map:
		return validType(tt.Key()) && validType(tt.Elem())
	default:
		return t != nil
	}
}

// markedTypes collects type names whose doc comment holds TargetDirective.
func markedTypes(files []*ast.File) map[string]bool {
	marked := make(map[string]bool)

	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				if hasDirective(doc) {
					marked[ts.Name.Name] = true
				}
			}
		}
	}

	return marked
}

// hasDirective scans raw comment lines; CommentGroup.Text drops directives.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if strings.TrimSpace(c.Text) == TargetDirective {
			return true
		}
	}

	return false
}
