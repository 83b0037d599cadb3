package binding

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"starter-generator/internal/analyze"
)

const appPath = "example.com/app"

const appSrc = `package app

type Parcelable interface{ ParcelTag() string }

type Snapshot interface{ Snapshot() []byte }

type Photo struct{ ID string }

func (p *Photo) ParcelTag() string { return p.ID }

type Point struct{ X, Y int32 }

func (Point) Snapshot() []byte { return nil }

type Base struct{}

type Derived struct{ Base }

type Age int32

type Profile struct {
	ID    int32  ` + "`arg:\"\"`" + `
	Name  string ` + "`arg:\",optional\"`" + `
	note  string ` + "`arg:\",optional\"`" + `
	Cover *Photo ` + "`arg:\",optional\"`" + `
	Focus Point  ` + "`arg:\"\"`" + `
	count int
}

type Sealed struct {
	secret string ` + "`arg:\",readonly\"`" + `
	Label  string ` + "`arg:\",readonly\"`" + `
}

func (s *Sealed) SetLabel(v string) { s.Label = v }

func (s *Sealed) setSecret(v string) { s.secret = v }

type Primitives struct {
	S  string  ` + "`arg:\"\"`" + `
	I  int32   ` + "`arg:\"\"`" + `
	F  float32 ` + "`arg:\"\"`" + `
	B  bool    ` + "`arg:\"\"`" + `
	D  float64 ` + "`arg:\"\"`" + `
	R  rune    ` + "`arg:\"\"`" + `
}

type Bad struct {
	Ch chan int ` + "`arg:\"\"`" + `
}

type Ages struct {
	A Age ` + "`arg:\"\"`" + `
}

type ByValue struct {
	P Photo ` + "`arg:\"\"`" + `
}

type Odd struct {
	V string ` + "`arg:\"v\"`" + `
}

type Box[T any] struct {
	V string ` + "`arg:\"\"`" + `
	t T
}

type Framed[T interface{ Frame() string }] struct {
	V string ` + "`arg:\"\"`" + `
}

type Shelf[T Parcelable, N ~int32 | ~float64] struct {
	Label string ` + "`arg:\"\"`" + `
	Item  T      ` + "`arg:\",optional\"`" + `
	count N
}

type Shadow[m any] struct {
	V string ` + "`arg:\"\"`" + `
}

type Title = string

type Letter = rune

type Aliased struct {
	T Title  ` + "`arg:\"\"`" + `
	R Letter ` + "`arg:\"\"`" + `
}

type Doc struct {
	Type  string ` + "`arg:\"\"`" + `
	Range int32  ` + "`arg:\",optional\"`" + `
}

type Inline struct {
	P interface{ ParcelTag() string } ` + "`arg:\"\"`" + `
}

type hidden struct {
	V string ` + "`arg:\"\"`" + `
}

type Clash struct {
	UserID string ` + "`arg:\"\"`" + `
	userID string ` + "`arg:\",optional\"`" + `
}

type Twin struct {
	A string ` + "`arg:\",optional\"`" + `
	a string ` + "`arg:\",optional\"`" + `
}

type Reserved struct {
	Ctx   string ` + "`arg:\"\"`" + `
	Flags int32  ` + "`arg:\"\"`" + `
	M     bool   ` + "`arg:\"\"`" + `
}

type Empty struct{}
`

// loadApp type-checks appSrc and returns the package and its hierarchy.
func loadApp(t *testing.T) (*types.Package, *analyze.Hierarchy) {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "app.go", appSrc, parser.ParseComments)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check(appPath, fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	return pkg, analyze.NewHierarchy(pkg)
}

func describe(t *testing.T, pkg *types.Package, name string) *analyze.TargetDescriptor {
	t.Helper()

	obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
	require.True(t, ok, name)

	named, ok := obj.Type().(*types.Named)
	require.True(t, ok, name)

	td, ok := analyze.DescribeTarget(pkg.Path(), pkg.Name(), named)
	require.True(t, ok, name)

	return td
}

func newAppCompiler(h *analyze.Hierarchy, outPkg string) *Compiler {
	return NewCompiler(Options{
		OutputPkgPath: outPkg,
		Reference:     appPath + ".Parcelable",
		Value:         appPath + ".Snapshot",
	}, h)
}

func fieldNames(fields []*FieldBinding) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	return names
}
