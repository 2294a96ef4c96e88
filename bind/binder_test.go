package bind

import (
	"testing"

	"github.com/clirouter/clirouter/convert"
	"github.com/clirouter/clirouter/parser"
	"github.com/clirouter/clirouter/resolve"
	"github.com/clirouter/clirouter/route"
	"github.com/stretchr/testify/require"
)

func resolveFor(t *testing.T, pattern string, argv []string) *resolve.Result {
	t.Helper()
	cr, errs := parser.Parse(pattern)
	require.False(t, errs.HasErrors(), "pattern %q: %s", pattern, errs.Format())
	coll := route.NewEndpointCollection()
	coll.Insert(&route.Endpoint{
		Pattern: pattern,
		Route:   cr,
		Handler: route.InlineHandler{Func: func() {}},
	})
	res, rerr := resolve.Resolve(argv, coll)
	require.Nil(t, rerr)
	return res
}

func TestBind_TypedPositionalParameters(t *testing.T) {
	res := resolveFor(t, "add {x:int} {y:int}", []string{"add", "15", "25"})

	var dest struct {
		X int `cli:"x"`
		Y int `cli:"y"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.Equal(t, 15, dest.X)
	require.Equal(t, 25, dest.Y)
}

func TestBind_OptionalFieldLeftZeroWhenAbsent(t *testing.T) {
	res := resolveFor(t, "deploy {env} {tag?}", []string{"deploy", "prod"})

	var dest struct {
		Env string `cli:"env"`
		Tag string `cli:"tag"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.Equal(t, "prod", dest.Env)
	require.Equal(t, "", dest.Tag)
}

func TestBind_DefaultTagSuppliesFallback(t *testing.T) {
	res := resolveFor(t, "deploy {env} {tag?}", []string{"deploy", "prod"})

	var dest struct {
		Env string `cli:"env"`
		Tag string `cli:"tag" default:"latest"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.Equal(t, "latest", dest.Tag)
}

func TestBind_MissingRequiredFieldFails(t *testing.T) {
	res := resolveFor(t, "deploy {app} --env {e}", []string{"deploy", "api", "--env", "prod"})

	var dest struct {
		App string `cli:"app"`
		Env string `cli:"e"`
	}
	res.Bindings = route.NewBindings() // simulate a gap: app missing entirely
	res.Bindings.Set("e", "prod")

	b := NewBinder(convert.NewRegistry())
	err := b.Bind(res.Endpoint.Route, res.Bindings, &dest)
	require.Error(t, err)
	var missErr *MissingRequiredBindingError
	require.ErrorAs(t, err, &missErr)
	require.Equal(t, "app", missErr.Name)
}

func TestBind_CatchAllBindsToStringSlice(t *testing.T) {
	res := resolveFor(t, "docker {*args}", []string{"docker", "run", "-it", "ubuntu"})

	var dest struct {
		Args []string `cli:"args"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.Equal(t, []string{"run", "-it", "ubuntu"}, dest.Args)
}

func TestBind_RepeatedOptionBindsToStringSlice(t *testing.T) {
	res := resolveFor(t, "build --tag {t}*", []string{"build", "--tag", "a", "--tag", "b"})

	var dest struct {
		Tags []string `cli:"t"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.Equal(t, []string{"a", "b"}, dest.Tags)
}

func TestBind_CatchAllToScalarFieldFails(t *testing.T) {
	res := resolveFor(t, "docker {*args}", []string{"docker", "run", "-it", "ubuntu"})

	var dest struct {
		Args string `cli:"args"`
	}
	b := NewBinder(convert.NewRegistry())
	err := b.Bind(res.Endpoint.Route, res.Bindings, &dest)
	require.Error(t, err)
	var catchErr *CatchAllBindToScalarError
	require.ErrorAs(t, err, &catchErr)
}

func TestBind_ConversionFailureWraps(t *testing.T) {
	res := resolveFor(t, "add {x:int} {y:int}", []string{"add", "15", "25"})
	res.Bindings.Set("x", "not-a-number")

	var dest struct {
		X int `cli:"x"`
		Y int `cli:"y"`
	}
	b := NewBinder(convert.NewRegistry())
	err := b.Bind(res.Endpoint.Route, res.Bindings, &dest)
	require.Error(t, err)
	var convErr *ConversionFailedError
	require.ErrorAs(t, err, &convErr)
	require.Equal(t, "x", convErr.Name)
}

func TestBind_NullablePointerFieldUnwraps(t *testing.T) {
	res := resolveFor(t, "deploy {env} {tag?}", []string{"deploy", "prod"})

	var dest struct {
		Env string  `cli:"env"`
		Tag *string `cli:"tag"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.Nil(t, dest.Tag)
}

func TestBind_BooleanFlagBindsFromPresenceString(t *testing.T) {
	res := resolveFor(t, "deploy {app} --dry-run?", []string{"deploy", "api", "--dry-run"})

	var dest struct {
		App    string `cli:"app"`
		DryRun bool   `cli:"dry-run"`
	}
	b := NewBinder(convert.NewRegistry())
	require.NoError(t, b.Bind(res.Endpoint.Route, res.Bindings, &dest))
	require.True(t, dest.DryRun)
}

func TestBind_UnboundFieldNamesMismatch(t *testing.T) {
	res := resolveFor(t, "status", []string{"status"})

	var dest struct {
		Nonexistent string `cli:"nonexistent"`
	}
	b := NewBinder(convert.NewRegistry())
	err := b.Bind(res.Endpoint.Route, res.Bindings, &dest)
	require.Error(t, err)
	var unboundErr *UnboundFieldError
	require.ErrorAs(t, err, &unboundErr)
}
