package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	profilePkg = "starter-generator/examples/profile"
	brokenPkg  = "starter-generator/examples/broken"
)

func targetNames(targets []*TargetDescriptor) []string {
	names := make([]string, len(targets))
	for i, td := range targets {
		names[i] = td.ID.Name
	}

	return names
}

func findTarget(t *testing.T, res *Result, name string) *TargetDescriptor {
	t.Helper()

	for _, td := range res.Targets {
		if td.ID.Name == name {
			return td
		}
	}

	require.Failf(t, "target not found", "%s", name)

	return nil
}

func TestLoader_DiscoversTargets(t *testing.T) {
	res, err := NewLoader().Load(profilePkg)
	require.NoError(t, err)
	require.NotNil(t, res.Hierarchy)
	assert.Empty(t, res.PackageErrors)

	// Photo and Point have no arg fields and no marker.
	assert.Equal(t, []string{"Album", "Gallery", "Home", "Profile"}, targetNames(res.Targets))

	for _, td := range res.Targets {
		assert.Equal(t, profilePkg, td.ID.PkgPath)
		assert.Equal(t, "profile", td.PkgName)
		assert.NotEmpty(t, td.Dir)
		assert.Equal(t, "profile", td.Pkg().Name())
	}

	assert.Equal(t, 1, findTarget(t, res, "Album").TypeParams())
	assert.Zero(t, findTarget(t, res, "Gallery").TypeParams())
}

func TestLoader_ArgFieldsInDeclarationOrder(t *testing.T) {
	res, err := NewLoader().Load(profilePkg)
	require.NoError(t, err)

	profile := findTarget(t, res, "Profile")
	require.Len(t, profile.Fields, 2, "untagged fields are not arguments")

	userID := profile.Fields[0]
	assert.Equal(t, "userId", userID.Name)
	assert.False(t, userID.Exported)
	assert.False(t, userID.Optional)
	assert.Equal(t, "int32", userID.Type.String())
	assert.Equal(t, 0, userID.Index)
	assert.NoError(t, userID.Err)

	nickname := profile.Fields[1]
	assert.Equal(t, "nickname", nickname.Name)
	assert.True(t, nickname.Optional)
	assert.Equal(t, reflect.StructTag(`arg:",optional"`), nickname.Tag)

	gallery := findTarget(t, res, "Gallery")

	var names []string
	for _, f := range gallery.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"Title", "Zoom", "Ratio", "Initial", "Public", "Cover", "Focus", "caption"}, names)
	assert.Equal(t, "rune", gallery.Fields[3].Type.String())
	assert.True(t, gallery.Fields[7].ReadOnly)
	assert.False(t, gallery.Fields[7].Optional)
}

func TestLoader_MarkedTargetWithoutFields(t *testing.T) {
	res, err := NewLoader().Load(profilePkg)
	require.NoError(t, err)

	home := findTarget(t, res, "Home")
	assert.True(t, home.Marked)
	assert.Empty(t, home.Fields)
	assert.Equal(t, "HomeStarter", home.BindingName("Starter"))

	assert.False(t, findTarget(t, res, "Profile").Marked)
}

func TestLoader_BrokenTargetsAreStillDescribed(t *testing.T) {
	res, err := NewLoader().Load(brokenPkg)
	require.NoError(t, err)

	assert.Equal(t, []string{"Box", "Channel", "Good", "Locked", "Tagged", "Widths"}, targetNames(res.Targets))

	box := findTarget(t, res, "Box")
	assert.Equal(t, 1, box.TypeParams())

	tagged := findTarget(t, res, "Tagged")
	require.Len(t, tagged.Fields, 1)
	require.Error(t, tagged.Fields[0].Err)
	assert.Contains(t, tagged.Fields[0].Err.Error(), "sometimes")
}

func TestLoader_SupportPackagesAreNotScanned(t *testing.T) {
	l := NewLoader()
	l.Support = []string{"starter-generator/starter", "encoding"}

	res, err := l.Load(profilePkg)
	require.NoError(t, err)

	for _, td := range res.Targets {
		assert.Equal(t, profilePkg, td.ID.PkgPath)
	}

	_, ok := res.Hierarchy.Package("encoding")
	assert.True(t, ok)

	iface, ok := res.Hierarchy.LookupInterface("starter-generator/starter.Parcelable")
	require.True(t, ok)
	assert.Equal(t, 1, iface.NumMethods())
}

func TestParseArgTag(t *testing.T) {
	tests := []struct {
		tag     reflect.StructTag
		present bool
		opts    ArgOptions
		wantErr bool
		hint    string
	}{
		{tag: `json:"x"`},
		{tag: `arg:""`, present: true},
		{tag: `arg:",optional"`, present: true, opts: ArgOptions{Optional: true}},
		{tag: `arg:",readonly"`, present: true, opts: ArgOptions{ReadOnly: true}},
		{tag: `arg:",optional,readonly" json:"x"`, present: true, opts: ArgOptions{Optional: true, ReadOnly: true}},
		{tag: `arg:", optional"`, present: true, opts: ArgOptions{Optional: true}},
		{tag: `arg:"name"`, present: true, wantErr: true},
		{tag: `arg:",maybe"`, present: true, wantErr: true},
		{tag: `arg:",optinal"`, present: true, wantErr: true, hint: `did you mean "optional"?`},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			opts, ok, err := ParseArgTag(tt.tag)
			assert.Equal(t, tt.present, ok)

			if tt.wantErr {
				require.Error(t, err)

				if tt.hint != "" {
					assert.Contains(t, err.Error(), tt.hint)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.opts, opts)
		})
	}
}

func TestTypeID_String(t *testing.T) {
	assert.Equal(t, "Local", TypeID{Name: "Local"}.String())
	assert.Equal(t, profilePkg+".Profile", TypeID{PkgPath: profilePkg, Name: "Profile"}.String())
}
