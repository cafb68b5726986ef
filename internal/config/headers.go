package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const headerDelimiter = ','

// NormalizeHeaders converts one header source into a flat map. Accepted shapes
// are a "Key=Value" string, a comma separated list of such strings, a JSON
// object or array encoded as a string, a decoded object, or an array of any of
// these. Array elements are merged left to right. The source label is carried
// into any InvalidHeaderError so users can tell which layer was malformed.
func NormalizeHeaders(input any, source string) (map[string]string, error) {
	switch v := input.(type) {
	case nil:
		return map[string]string{}, nil

	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return map[string]string{}, nil
		}
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			var parsed any
			if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
				return nil, &InvalidHeaderError{Source: source, Entry: v, Reason: fmt.Sprintf("invalid JSON: %v", err)}
			}
			return NormalizeHeaders(parsed, source)
		}
		return parseHeaderList(trimmed, source)

	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return NormalizeHeaders(items, source)

	case []any:
		out := map[string]string{}
		for i, item := range v {
			m, err := NormalizeHeaders(item, fmt.Sprintf("%s[%d]", source, i))
			if err != nil {
				return nil, err
			}
			mergeInto(out, m)
		}
		return out, nil

	case map[string]string:
		out := make(map[string]string, len(v))
		for _, k := range sortedKeys(v) {
			key := strings.TrimSpace(k)
			if key == "" {
				return nil, &InvalidHeaderError{Source: source, Entry: k, Reason: "header name is empty"}
			}
			mergeInto(out, map[string]string{key: v[k]})
		}
		return out, nil

	case map[string]any:
		out := make(map[string]string, len(v))
		for _, k := range sortedKeys(v) {
			if v[k] == nil {
				continue
			}
			key := strings.TrimSpace(k)
			if key == "" {
				return nil, &InvalidHeaderError{Source: source, Entry: k, Reason: "header name is empty"}
			}
			mergeInto(out, map[string]string{key: headerValueString(v[k])})
		}
		return out, nil

	case map[any]any:
		converted := make(map[string]any, len(v))
		for k, val := range v {
			converted[fmt.Sprint(k)] = val
		}
		return NormalizeHeaders(converted, source)

	default:
		return nil, &InvalidHeaderError{
			Source: source,
			Entry:  fmt.Sprint(v),
			Reason: fmt.Sprintf("unsupported value of type %T", v),
		}
	}
}

// MergeHeaders merges maps in priority order; later maps win. Header names
// are compared case-insensitively and the spelling of the winning source is kept.
func MergeHeaders(sources ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, src := range sources {
		mergeInto(out, src)
	}
	return out
}

func mergeInto(dst, src map[string]string) {
	for _, k := range sortedKeys(src) {
		for existing := range dst {
			if existing != k && strings.EqualFold(existing, k) {
				delete(dst, existing)
			}
		}
		dst[k] = src[k]
	}
}

// parseHeaderList splits on unescaped commas. A backslash before a comma
// keeps the comma inside the current entry.
func parseHeaderList(s, source string) (map[string]string, error) {
	out := map[string]string{}
	for _, segment := range splitUnescaped(s, headerDelimiter) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		key, value, err := parseHeaderEntry(segment, source)
		if err != nil {
			return nil, err
		}
		mergeInto(out, map[string]string{key: value})
	}
	return out, nil
}

// parseHeaderEntry accepts "Key=Value" or "Key:Value". When both separators
// appear, whichever comes first splits the entry.
func parseHeaderEntry(entry, source string) (string, string, error) {
	idx := -1
	for _, sep := range []byte{'=', ':'} {
		if i := strings.IndexByte(entry, sep); i >= 0 && (idx < 0 || i < idx) {
			idx = i
		}
	}
	if idx < 0 {
		return "", "", &InvalidHeaderError{Source: source, Entry: entry, Reason: "expected Key=Value"}
	}

	key := strings.TrimSpace(entry[:idx])
	if key == "" {
		return "", "", &InvalidHeaderError{Source: source, Entry: entry, Reason: "header name is empty"}
	}
	return key, strings.TrimSpace(entry[idx+1:]), nil
}

func splitUnescaped(s string, delim byte) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && s[i+1] == delim {
			cur.WriteByte(delim)
			i++
			continue
		}
		if c == delim {
			parts = append(parts, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteByte(c)
	}
	return append(parts, cur.String())
}

func headerValueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
