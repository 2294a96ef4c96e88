// Package convert implements the constraint type-converter registry: it
// turns a raw argv string plus a constraint name (the text after ':' in
// a pattern parameter, e.g. {id:guid}) into a typed Go value.
package convert

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Converter parses a raw string into a typed value, or reports why it
// could not.
type Converter func(raw string) (any, error)

// Registry resolves a constraint name to a Converter. Built-in
// constraints are dispatched by a static switch with no allocation;
// custom converters registered via Register or RegisterEnum take
// precedence and are looked up case-insensitively.
type Registry struct {
	custom map[string]Converter
}

// NewRegistry returns a Registry with no custom converters registered.
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]Converter)}
}

// Register adds or replaces the converter for constraint name. Names are
// matched case-insensitively; registering the same name twice overwrites
// the previous converter (last writer wins).
func (r *Registry) Register(name string, fn Converter) {
	r.custom[strings.ToLower(name)] = fn
}

// RegisterEnum registers a case-insensitive by-name converter for an enum
// constraint, where members maps each accepted name to the value bound
// when it matches.
func (r *Registry) RegisterEnum(name string, members map[string]any) {
	lowered := make(map[string]any, len(members))
	for k, v := range members {
		lowered[strings.ToLower(k)] = v
	}
	r.Register(name, func(raw string) (any, error) {
		if v, ok := lowered[strings.ToLower(raw)]; ok {
			return v, nil
		}
		return nil, fmt.Errorf("%q is not a member of enum %s", raw, name)
	})
}

// Convert resolves constraint and applies it to raw, trying custom
// converters first and falling back to the built-in set.
func (r *Registry) Convert(constraint, raw string) (any, error) {
	key := strings.ToLower(constraint)
	if fn, ok := r.custom[key]; ok {
		v, err := fn(raw)
		if err != nil {
			return nil, &ConversionError{Constraint: constraint, Value: raw, Cause: err}
		}
		return v, nil
	}

	v, err := convertBuiltin(key, raw)
	if err == errUnknownBuiltin {
		return nil, &UnknownConstraintError{Constraint: constraint}
	}
	if err != nil {
		return nil, &ConversionError{Constraint: constraint, Value: raw, Cause: err}
	}
	return v, nil
}

var errUnknownBuiltin = fmt.Errorf("no built-in converter")

func convertBuiltin(key, raw string) (any, error) {
	switch key {
	case "int":
		i, err := strconv.ParseInt(raw, 10, 32)
		return int(i), err
	case "long":
		return strconv.ParseInt(raw, 10, 64)
	case "uint":
		u, err := strconv.ParseUint(raw, 10, 32)
		return uint(u), err
	case "ulong":
		return strconv.ParseUint(raw, 10, 64)
	case "short":
		i, err := strconv.ParseInt(raw, 10, 16)
		return int16(i), err
	case "ushort":
		u, err := strconv.ParseUint(raw, 10, 16)
		return uint16(u), err
	case "byte":
		u, err := strconv.ParseUint(raw, 10, 8)
		return byte(u), err
	case "sbyte":
		i, err := strconv.ParseInt(raw, 10, 8)
		return int8(i), err
	case "double":
		return strconv.ParseFloat(raw, 64)
	case "float":
		f, err := strconv.ParseFloat(raw, 32)
		return float32(f), err
	case "decimal":
		return strconv.ParseFloat(raw, 64)
	case "bool":
		return strconv.ParseBool(raw)
	case "char":
		runes := []rune(raw)
		if len(runes) != 1 {
			return nil, fmt.Errorf("expected exactly one character")
		}
		return runes[0], nil
	case "guid":
		return uuid.Parse(raw)
	case "datetime":
		return time.Parse(time.RFC3339, raw)
	case "timespan":
		return time.ParseDuration(raw)
	case "dateonly":
		return time.Parse(time.DateOnly, raw)
	case "timeonly":
		return time.Parse(time.TimeOnly, raw)
	case "uri":
		return url.Parse(raw)
	case "ipaddress":
		ip := net.ParseIP(raw)
		if ip == nil {
			return nil, fmt.Errorf("not a valid IP address")
		}
		return ip, nil
	case "file", "directory":
		// Wraps the path the way .NET's FileInfo/DirectoryInfo do: the
		// path need not exist. No filesystem access happens here.
		return raw, nil
	default:
		return nil, errUnknownBuiltin
	}
}
