package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_Profile(t *testing.T) {
	pkg, h := loadApp(t)
	c := newAppCompiler(h, "")

	b, err := c.Compile(describe(t, pkg, "Profile"))
	require.NoError(t, err)

	assert.Equal(t, "ProfileStarter", b.Name)
	assert.Equal(t, appPath, b.OutputPkgPath)
	assert.True(t, b.SamePackage())
	assert.Equal(t, "FillProfile", b.FillName())
	assert.Equal(t, []string{"ID", "Name", "note", "Cover", "Focus"}, fieldNames(b.Fields))

	kinds := make([]Kind, len(b.Fields))
	for i, f := range b.Fields {
		kinds[i] = f.Kind
		assert.Equal(t, DirectField, f.Access.Kind, f.Name)
	}

	assert.Equal(t, []Kind{KindInt32, KindString, KindString, KindReference, KindValue}, kinds)
	assert.Len(t, b.Variants, 8)
}

func TestCompile_PrimitiveKinds(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Primitives"))
	require.NoError(t, err)

	want := []Kind{KindString, KindInt32, KindFloat32, KindBool, KindFloat64, KindRune}
	for i, f := range b.Fields {
		assert.Equal(t, want[i], f.Kind, f.Name)
		assert.False(t, f.Kind.IsCapability())
	}

	assert.Len(t, b.Variants, 1)
}

func TestCompile_RoutineNames(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Profile"))
	require.NoError(t, err)

	assert.Equal(t, Routines{
		Message:    "NewProfileMessage",
		Start:      "StartProfile",
		StartFlags: "StartProfileWithFlags",
	}, b.RoutinesFor(b.Variants[0]))

	assert.Equal(t, Routines{
		Message:    "NewProfileMessageWithNameAndCover",
		Start:      "StartProfileWithNameAndCover",
		StartFlags: "StartProfileWithNameAndCoverAndFlags",
	}, b.RoutinesFor(b.Variants[5]))
}

func TestCompile_EmptyTarget(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Empty"))
	require.NoError(t, err)

	assert.Empty(t, b.Fields)
	require.Len(t, b.Variants, 1)
	assert.Empty(t, b.Variants[0].Fields)
}

func TestCompile_Errors(t *testing.T) {
	pkg, h := loadApp(t)

	tests := []struct {
		target string
		outPkg string
		field  string
		want   error
	}{
		{target: "Bad", field: "Ch", want: ErrUnsupportedFieldType},
		{target: "Ages", field: "A", want: ErrUnsupportedFieldType},
		{target: "ByValue", field: "P", want: ErrUnsupportedFieldType},
		{target: "Odd", field: "V", want: ErrMalformedMetadata},
		{target: "Inline", field: "P", want: ErrUnsupportedFieldType},
		{target: "Framed", want: ErrUnsupportedTarget},
		{target: "Shadow", want: ErrNameCollision},
		{target: "hidden", outPkg: "example.com/out", want: ErrUnsupportedTarget},
		{target: "Profile", outPkg: "example.com/out", field: "note", want: ErrInaccessibleField},
		{target: "Sealed", outPkg: "example.com/out", field: "secret", want: ErrInaccessibleField},
		{target: "Clash", field: "userID", want: ErrNameCollision},
		{target: "Twin", want: ErrNameCollision},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			b, err := newAppCompiler(h, tt.outPkg).Compile(describe(t, pkg, tt.target))
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.want)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.target, fe.Target.Name)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestCompile_FirstFailingFieldWins(t *testing.T) {
	pkg, h := loadApp(t)

	// Cover and Focus would pass; note is the first field that fails.
	_, err := newAppCompiler(h, "example.com/out").Compile(describe(t, pkg, "Profile"))

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "note", fe.Field)
	assert.Contains(t, err.Error(), "example.com/app.Profile.note: inaccessible field")
	assert.Contains(t, err.Error(), "no SetNote method")
}

func TestCompile_SetterAccess(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Sealed"))
	require.NoError(t, err)

	assert.Equal(t, AccessDecision{Kind: ViaSetter, Setter: "setSecret"}, b.Fields[0].Access)
	assert.Equal(t, AccessDecision{Kind: ViaSetter, Setter: "SetLabel"}, b.Fields[1].Access)
}

func TestCompile_ReservedParams(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Reserved"))
	require.NoError(t, err)

	params := make([]string, len(b.Fields))
	for i, f := range b.Fields {
		params[i] = f.Param()
	}

	assert.Equal(t, []string{"ctxArg", "flagsArg", "mArg"}, params)
	assert.Equal(t, "CtxArg", b.Fields[0].Key())
}

func TestCompile_KeywordParams(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Doc"))
	require.NoError(t, err)

	assert.Equal(t, "typeArg", b.Fields[0].Param())
	assert.Equal(t, "rangeArg", b.Fields[1].Param())
	assert.Equal(t, "TypeArg", b.Fields[0].Key())
}

func TestCompile_AliasedPrimitives(t *testing.T) {
	pkg, h := loadApp(t)

	b, err := newAppCompiler(h, "").Compile(describe(t, pkg, "Aliased"))
	require.NoError(t, err)

	assert.Equal(t, KindString, b.Fields[0].Kind)
	assert.Equal(t, KindRune, b.Fields[1].Kind)
}

func TestCompile_GenericTargets(t *testing.T) {
	pkg, h := loadApp(t)
	c := newAppCompiler(h, "")

	b, err := c.Compile(describe(t, pkg, "Shelf"))
	require.NoError(t, err)

	assert.Equal(t, 2, b.TypeParams().Len())
	assert.Equal(t, []string{"Label", "Item"}, fieldNames(b.Fields))
	assert.Equal(t, KindReference, b.Fields[1].Kind)
	require.Len(t, b.Variants, 2)
	assert.False(t, b.Generic(b.Variants[0]), "label only")
	assert.True(t, b.Generic(b.Variants[1]), "item is a T")
	assert.Equal(t, "FillShelf", b.FillName())

	// Box's type parameter appears in no argument.
	b, err = c.Compile(describe(t, pkg, "Box"))
	require.NoError(t, err)
	assert.Equal(t, 1, b.TypeParams().Len())
	assert.False(t, b.Generic(b.Variants[0]))
}

func TestCompile_GenericErrors(t *testing.T) {
	pkg, h := loadApp(t)
	c := newAppCompiler(h, "")

	_, err := c.Compile(describe(t, pkg, "Framed"))
	assert.ErrorContains(t, err, "constraint of T cannot be written")

	_, err = c.Compile(describe(t, pkg, "Shadow"))
	assert.ErrorContains(t, err, "type parameter m shares its name with a generated local")
}

func TestNewCompiler_Defaults(t *testing.T) {
	c := NewCompiler(Options{}, nil)

	assert.Equal(t, DefaultOptions(), c.Options())
	assert.Equal(t, "Starter", c.Options().Suffix)
}

func TestFieldError_Error(t *testing.T) {
	pkg, _ := loadApp(t)
	td := describe(t, pkg, "Profile")

	err := &FieldError{Target: td.ID, Err: ErrUnsupportedTarget}
	assert.Equal(t, "example.com/app.Profile: unsupported target", err.Error())

	err = &FieldError{Target: td.ID, Field: "ID", Err: ErrMalformedMetadata, Detail: "bad tag"}
	assert.Equal(t, "example.com/app.Profile.ID: malformed metadata: bad tag", err.Error())
}
