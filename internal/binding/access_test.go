package binding

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starter-generator/internal/analyze"
)

func argField(t *testing.T, td *analyze.TargetDescriptor, name string) analyze.ArgField {
	t.Helper()

	for _, f := range td.Fields {
		if f.Name == name {
			return f
		}
	}

	require.Failf(t, "field not found", "%s.%s", td.ID.Name, name)

	return analyze.ArgField{}
}

func TestResolveAccess(t *testing.T) {
	pkg, _ := loadApp(t)

	profile := describe(t, pkg, "Profile")
	sealed := describe(t, pkg, "Sealed")

	const out = "example.com/out"

	tests := []struct {
		name   string
		td     *analyze.TargetDescriptor
		field  string
		outPkg string
		want   AccessDecision
	}{
		{"exported same package", profile, "ID", appPath, AccessDecision{Kind: DirectField}},
		{"exported other package", profile, "ID", out, AccessDecision{Kind: DirectField}},
		{"unexported same package", profile, "note", appPath, AccessDecision{Kind: DirectField}},
		{"unexported other package", profile, "note", out, AccessDecision{Kind: Inaccessible}},
		{"readonly exported setter", sealed, "Label", out, AccessDecision{Kind: ViaSetter, Setter: "SetLabel"}},
		{"readonly unexported setter same package", sealed, "secret", appPath, AccessDecision{Kind: ViaSetter, Setter: "setSecret"}},
		{"readonly unexported setter other package", sealed, "secret", out, AccessDecision{Kind: Inaccessible}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAccess(tt.td.Named, argField(t, tt.td, tt.field), tt.outPkg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAccess_SetterSignature(t *testing.T) {
	pkg, _ := loadApp(t)
	sealed := describe(t, pkg, "Sealed")

	// A setter whose parameter type differs from the field does not count.
	f := argField(t, sealed, "Label")
	f.Type = types.Typ[types.Int32]

	assert.Equal(t, AccessDecision{Kind: Inaccessible}, ResolveAccess(sealed.Named, f, "example.com/out"))
}
