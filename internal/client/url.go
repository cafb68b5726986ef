package client

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// arrayDelimiter joins slice values into a single query parameter.
const arrayDelimiter = ","

// Param is one query parameter. A nil Value (or nil pointer) means "unset"
// and the key is left out of the URL. Slices are comma joined unless Repeat
// is set, in which case the key is repeated once per element.
type Param struct {
	Key    string
	Value  any
	Repeat bool
}

// Params keeps query parameters in insertion order.
type Params []Param

// Set appends or replaces the parameter named key.
func (p Params) Set(key string, value any) Params {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value
			return p
		}
	}
	return append(p, Param{Key: key, Value: value})
}

// BuildURL resolves path against hostname and attaches every defined param.
// hostname must be an absolute http(s) URL.
func BuildURL(hostname, path string, params Params) (*url.URL, error) {
	base, err := parseHostname(hostname)
	if err != nil {
		return nil, err
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	u := base.ResolveReference(ref)

	existing := u.Query()
	var encoded []string
	for _, p := range params {
		vals, ok := paramValues(p.Value)
		if !ok {
			continue
		}
		existing.Del(p.Key)
		if p.Repeat {
			for _, v := range vals {
				encoded = append(encoded, url.QueryEscape(p.Key)+"="+url.QueryEscape(v))
			}
			continue
		}
		encoded = append(encoded, url.QueryEscape(p.Key)+"="+url.QueryEscape(strings.Join(vals, arrayDelimiter)))
	}

	var parts []string
	if len(existing) > 0 {
		parts = append(parts, existing.Encode())
	}
	parts = append(parts, encoded...)
	u.RawQuery = strings.Join(parts, "&")

	return u, nil
}

func parseHostname(hostname string) (*url.URL, error) {
	trimmed := strings.TrimSpace(hostname)
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &InvalidHostnameError{Hostname: hostname, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &InvalidHostnameError{Hostname: hostname, Err: errors.New("scheme must be http or https")}
	}
	if u.Host == "" {
		return nil, &InvalidHostnameError{Hostname: hostname, Err: errors.New("missing host")}
	}
	return u, nil
}

// paramValues stringifies a scalar or a slice of scalars. It reports false
// for nil values and empty slices so they are never serialized.
func paramValues(v any) ([]string, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return nil, false
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, ok := scalarString(rv.Index(i))
			if ok {
				out = append(out, s)
			}
		}
		return out, true
	}

	s, ok := scalarString(rv)
	if !ok {
		return nil, false
	}
	return []string{s}, true
}

func scalarString(rv reflect.Value) (string, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	default:
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
		return "", false
	}
}
