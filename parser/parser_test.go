package parser

import (
	"testing"

	"github.com/clirouter/clirouter/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_LiteralAndTypedParameters(t *testing.T) {
	cr, errs := Parse("add {x:int} {y:int}")
	require.False(t, errs.HasErrors())
	require.Len(t, cr.Positional, 3)

	lit, ok := cr.Positional[0].(route.LiteralMatcher)
	require.True(t, ok)
	assert.Equal(t, "add", lit.Text)

	x, ok := cr.Positional[1].(route.ParameterMatcher)
	require.True(t, ok)
	assert.Equal(t, "x", x.Name)
	assert.Equal(t, "int", x.Constraint)
	assert.False(t, x.Optional)
}

func TestParse_OptionalParameter(t *testing.T) {
	cr, errs := Parse("deploy {env} {tag?}")
	require.False(t, errs.HasErrors())
	tag, ok := cr.Positional[2].(route.ParameterMatcher)
	require.True(t, ok)
	assert.True(t, tag.Optional)
}

func TestParse_OptionalAfterConstraintParameter(t *testing.T) {
	cr, errs := Parse("add {x:int?}")
	require.False(t, errs.HasErrors())
	x, ok := cr.Positional[1].(route.ParameterMatcher)
	require.True(t, ok)
	assert.Equal(t, "int", x.Constraint)
	assert.True(t, x.Optional)
}

func TestParse_OptionalAfterConstraintOptionValue(t *testing.T) {
	cr, errs := Parse("build --level {l:int?}")
	require.False(t, errs.HasErrors())
	require.Len(t, cr.Options, 1)
	assert.Equal(t, "int", cr.Options[0].Constraint)
	assert.True(t, cr.Options[0].ParameterIsOptional)
}

func TestParse_CatchAllMustBeLast(t *testing.T) {
	_, errs := Parse("docker {*args} extra")
	require.True(t, errs.HasErrors())
	assert.Equal(t, CatchAllNotLast, errs[0].Kind)
}

func TestParse_CatchAllAtEndIsValid(t *testing.T) {
	cr, errs := Parse("docker {*args}")
	require.False(t, errs.HasErrors())
	assert.True(t, cr.HasCatchAll)
}

func TestParse_EndOfOptionsMarker(t *testing.T) {
	cr, errs := Parse("exec -- {*cmd}")
	require.False(t, errs.HasErrors())
	assert.True(t, cr.HasEndOfOptions)
	_, ok := cr.Positional[1].(route.EndOfOptionsMatcher)
	require.True(t, ok)
}

func TestParse_DuplicateEndOfOptionsRejected(t *testing.T) {
	_, errs := Parse("exec -- -- {*cmd}")
	require.True(t, errs.HasErrors())
	assert.Equal(t, MultipleEndOfOptions, errs[0].Kind)
}

func TestParse_OptionWithAlternateForm(t *testing.T) {
	cr, errs := Parse("deploy {app} --env,-e {e} --dry-run")
	require.False(t, errs.HasErrors())
	require.Len(t, cr.Options, 2)
	assert.Equal(t, "--env", cr.Options[0].Primary)
	assert.Equal(t, "-e", cr.Options[0].Alternate)
	assert.True(t, cr.Options[0].ExpectsValue)
	assert.Equal(t, "e", cr.Options[0].ParameterName)
	assert.False(t, cr.Options[1].ExpectsValue)
}

func TestParse_OptionalAndRepeatedOption(t *testing.T) {
	cr, errs := Parse("deploy {app} --env {e}* --force?")
	require.False(t, errs.HasErrors())
	require.Len(t, cr.Options, 2)
	assert.True(t, cr.Options[0].IsRepeated)
	assert.True(t, cr.Options[1].IsOptional)
}

func TestParse_DuplicateOptionRejected(t *testing.T) {
	_, errs := Parse("deploy --env {e} --env {e2}")
	require.True(t, errs.HasErrors())
	assert.Equal(t, DuplicateOption, errs[0].Kind)
}

func TestParse_DuplicateAcrossAlternateForm(t *testing.T) {
	_, errs := Parse("deploy --env,-e {e} --escape,-e")
	require.True(t, errs.HasErrors())
	assert.Equal(t, DuplicateOption, errs[0].Kind)
}

func TestParse_TopLevelDescription(t *testing.T) {
	cr, errs := Parse("status | Shows current status")
	require.False(t, errs.HasErrors())
	assert.Equal(t, "Shows current status", cr.Description)
}

func TestParse_InnerParameterDescription(t *testing.T) {
	cr, errs := Parse("deploy {env|The environment}")
	require.False(t, errs.HasErrors())
	env, ok := cr.Positional[1].(route.ParameterMatcher)
	require.True(t, ok)
	assert.Equal(t, "The environment", env.Description)
}

func TestParse_EmptyPatternRejected(t *testing.T) {
	_, errs := Parse("   ")
	require.True(t, errs.HasErrors())
	assert.Equal(t, EmptyPattern, errs[0].Kind)
}

func TestParse_InvalidTokenSurfaces(t *testing.T) {
	_, errs := Parse("deploy dry--run")
	require.True(t, errs.HasErrors())
	assert.Equal(t, InvalidToken, errs[0].Kind)
}

func TestParse_UnterminatedBraceRejected(t *testing.T) {
	_, errs := Parse("deploy {env")
	require.True(t, errs.HasErrors())
	assert.Equal(t, UnterminatedBrace, errs[0].Kind)
}

func TestParseErrorList_FormatAndCount(t *testing.T) {
	_, errs := Parse("deploy {env --dry-run {*a} x")
	require.True(t, errs.HasErrors())
	assert.Positive(t, errs.Count())
	assert.Contains(t, errs.Format(), "pattern error")
}
