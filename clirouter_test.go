package clirouter

import (
	"testing"

	"github.com/clirouter/clirouter/route"
	"github.com/stretchr/testify/require"
)

func TestRouter_RegisterResolveBind(t *testing.T) {
	r := New()
	_, errs := r.Register("add {x:int} {y:int}", route.InlineHandler{Func: func() {}})
	require.Nil(t, errs)

	res, rerr := r.Resolve([]string{"add", "15", "25"})
	require.Nil(t, rerr)

	var args struct {
		X int `cli:"x"`
		Y int `cli:"y"`
	}
	require.NoError(t, r.Bind(res, &args))
	require.Equal(t, 15, args.X)
	require.Equal(t, 25, args.Y)
}

func TestRouter_RegisterInvalidPatternReturnsErrors(t *testing.T) {
	r := New()
	_, errs := r.Register("docker {*a} extra", route.InlineHandler{Func: func() {}})
	require.True(t, errs.HasErrors())
}

func TestRouter_UnmatchedArgvReturnsNoRouteMatched(t *testing.T) {
	r := New()
	_, _ = r.Register("status", route.InlineHandler{Func: func() {}})

	_, rerr := r.Resolve([]string{"nope"})
	require.NotNil(t, rerr)
}

func TestRouter_CustomConverter(t *testing.T) {
	r := New()
	r.AddEnumConverter("level", map[string]any{"debug": 0, "info": 1})
	_, errs := r.Register("log --level {l:level}", route.InlineHandler{Func: func() {}})
	require.Nil(t, errs)

	res, rerr := r.Resolve([]string{"log", "--level", "INFO"})
	require.Nil(t, rerr)

	var args struct {
		L int `cli:"l"`
	}
	require.NoError(t, r.Bind(res, &args))
	require.Equal(t, 1, args.L)
}

func TestRouter_DescribeAndLookup(t *testing.T) {
	r := New()
	_, _ = r.RegisterDescribed("status", route.InlineHandler{Func: func() {}}, "Shows current status")

	ep, ok := r.Lookup("status")
	require.True(t, ok)
	require.Equal(t, "Shows current status", ep.Description)

	infos := r.Describe()
	require.Len(t, infos, 1)
	require.Equal(t, "Shows current status", infos[0].Description)
}
