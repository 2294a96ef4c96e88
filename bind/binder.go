// Package bind reflects bound argv values (route.Bindings) onto a
// handler's declared parameter struct, converting each value through a
// convert.Registry according to its route constraint.
package bind

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/clirouter/clirouter/convert"
	"github.com/clirouter/clirouter/route"
)

// Binder binds route.Bindings onto a destination struct using a shared
// type-converter registry.
type Binder struct {
	registry *convert.Registry
}

// NewBinder returns a Binder that resolves constraints through registry.
func NewBinder(registry *convert.Registry) *Binder {
	return &Binder{registry: registry}
}

// paramSource describes, for one binding name, what the matched route
// expects of it. catchAll covers both a positional catch-all parameter
// and a repeated option: both arrive in route.Bindings as a single
// space-joined string and bind to a []string field the same way.
type paramSource struct {
	optional   bool
	catchAll   bool
	constraint string
}

// Bind populates dest, which must be a pointer to a struct, from
// bindings using cr to determine each field's optionality, catch-all
// status, and constraint. Each exported field binds by its `cli` struct
// tag, falling back to the field name; a `default` tag supplies a
// fallback raw value when the binding is absent.
func (b *Binder) Bind(cr *route.CompiledRoute, bindings *route.Bindings, dest any) error {
	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Pointer || destVal.IsNil() || destVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: dest must be a non-nil pointer to a struct")
	}
	structVal := destVal.Elem()
	structType := structVal.Type()
	sources := buildSources(cr)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldBindingName(field)
		fieldVal := structVal.Field(i)

		src, known := sources[strings.ToLower(name)]
		if !known {
			return &UnboundFieldError{Name: name}
		}

		if src.catchAll {
			if err := bindCatchAll(fieldVal, name, bindings); err != nil {
				return err
			}
			continue
		}

		raw, present := bindings.Get(name)
		if !present {
			if def, ok := field.Tag.Lookup("default"); ok {
				raw, present = def, true
			} else if src.optional {
				continue
			} else {
				return &MissingRequiredBindingError{Name: name}
			}
		}

		if err := b.setField(fieldVal, name, src.constraint, raw); err != nil {
			return err
		}
	}
	return nil
}

func bindCatchAll(fieldVal reflect.Value, name string, bindings *route.Bindings) error {
	if fieldVal.Kind() != reflect.Slice || fieldVal.Type().Elem().Kind() != reflect.String {
		return &CatchAllBindToScalarError{Name: name}
	}
	var parts []string
	if raw, ok := bindings.Get(name); ok {
		for _, p := range strings.Split(raw, " ") {
			if p != "" {
				parts = append(parts, p)
			}
		}
	}
	fieldVal.Set(reflect.ValueOf(parts))
	return nil
}

// setField converts raw per constraint (or, when constraint is empty,
// per the field's own kind) and assigns it to fieldVal. A pointer field
// is treated as a nullable wrapper: it is allocated and the conversion
// recurses into its element type.
func (b *Binder) setField(fieldVal reflect.Value, name, constraint, raw string) error {
	if fieldVal.Kind() == reflect.Pointer {
		elem := reflect.New(fieldVal.Type().Elem())
		if err := b.setField(elem.Elem(), name, constraint, raw); err != nil {
			return err
		}
		fieldVal.Set(elem)
		return nil
	}

	if constraint == "" {
		switch fieldVal.Kind() {
		case reflect.String:
			fieldVal.SetString(raw)
			return nil
		case reflect.Bool:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return &ConversionFailedError{Name: name, Cause: err}
			}
			fieldVal.SetBool(v)
			return nil
		default:
			return &ConversionFailedError{
				Name:  name,
				Cause: fmt.Errorf("no constraint declared for non-string field of kind %s", fieldVal.Kind()),
			}
		}
	}

	converted, err := b.registry.Convert(constraint, raw)
	if err != nil {
		return &ConversionFailedError{Name: name, Cause: err}
	}

	cv := reflect.ValueOf(converted)
	switch {
	case cv.Type().AssignableTo(fieldVal.Type()):
		fieldVal.Set(cv)
	case cv.Type().ConvertibleTo(fieldVal.Type()):
		fieldVal.Set(cv.Convert(fieldVal.Type()))
	default:
		return &ConversionFailedError{
			Name:  name,
			Cause: fmt.Errorf("converted value of type %s is not assignable to field of type %s", cv.Type(), fieldVal.Type()),
		}
	}
	return nil
}

func fieldBindingName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("cli"); ok && tag != "" {
		return tag
	}
	return field.Name
}

func buildSources(cr *route.CompiledRoute) map[string]paramSource {
	sources := make(map[string]paramSource)
	for _, seg := range cr.Positional {
		if pm, ok := seg.(route.ParameterMatcher); ok {
			sources[strings.ToLower(pm.Name)] = paramSource{
				optional:   pm.Optional,
				catchAll:   pm.CatchAll,
				constraint: pm.Constraint,
			}
		}
	}
	for _, opt := range cr.Options {
		name := opt.ParameterName
		if !opt.ExpectsValue {
			name = strings.TrimLeft(opt.Primary, "-")
		}
		sources[strings.ToLower(name)] = paramSource{
			optional:   opt.IsOptional || opt.ParameterIsOptional,
			catchAll:   opt.IsRepeated,
			constraint: opt.Constraint,
		}
	}
	return sources
}
