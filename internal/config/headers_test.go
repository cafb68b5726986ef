package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeaders_Shapes(t *testing.T) {
	want := map[string]string{"X-Api-Key": "secret", "X-Trace": "1"}

	tests := []struct {
		name  string
		input any
	}{
		{"delimited string", "X-Api-Key=secret, X-Trace=1"},
		{"colon separators", "X-Api-Key: secret,X-Trace:1"},
		{"json object string", `{"X-Api-Key": "secret", "X-Trace": 1}`},
		{"json array string", `["X-Api-Key=secret", {"X-Trace": "1"}]`},
		{"string slice", []string{"X-Api-Key=secret", "X-Trace=1"}},
		{"any slice", []any{"X-Api-Key=secret", map[string]any{"X-Trace": float64(1)}}},
		{"object", map[string]any{"X-Api-Key": "secret", "X-Trace": 1}},
		{"yaml style map", map[any]any{"X-Api-Key": "secret", "X-Trace": "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeHeaders(tt.input, "test")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestNormalizeHeaders_Empty(t *testing.T) {
	for _, input := range []any{nil, "", "   ", " , ,", []any{}, map[string]any{}} {
		got, err := NormalizeHeaders(input, "test")
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestNormalizeHeaders_DropsNullValues(t *testing.T) {
	got, err := NormalizeHeaders(`{"A": null, "B": "b", "C": true}`, "test")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"B": "b", "C": "true"}, got)
}

func TestNormalizeHeaders_EarliestSeparatorWins(t *testing.T) {
	got, err := NormalizeHeaders("Authorization=Bearer a:b,X-Url:http://host/?q=1", "test")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Authorization": "Bearer a:b",
		"X-Url":         "http://host/?q=1",
	}, got)
}

func TestNormalizeHeaders_EscapedDelimiter(t *testing.T) {
	got, err := NormalizeHeaders(`X-List=a\,b,X-Other=c`, "test")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X-List": "a,b", "X-Other": "c"}, got)
}

func TestNormalizeHeaders_ArrayLaterWins(t *testing.T) {
	got, err := NormalizeHeaders([]any{"X-A=1", "x-a=2"}, "test")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x-a": "2"}, got)
}

func TestNormalizeHeaders_Errors(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		source     string
		wantSource string
	}{
		{"missing separator", "X-Api-Key", "PPLS_HEADERS", "PPLS_HEADERS"},
		{"empty key", "=value", "PPLS_HEADERS", "PPLS_HEADERS"},
		{"bad json", `{"X-Api-Key": }`, "config file headers", "config file headers"},
		{"nested bad entry", []any{"A=1", "broken"}, "--header", "--header[1]"},
		{"unsupported type", 42, "config file headers", "config file headers"},
		{"blank object key", map[string]any{" ": "x"}, "config file headers", "config file headers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeHeaders(tt.input, tt.source)
			require.Error(t, err)

			var herr *InvalidHeaderError
			require.True(t, errors.As(err, &herr))
			assert.Equal(t, tt.wantSource, herr.Source)
		})
	}
}

func TestMergeHeaders_Priority(t *testing.T) {
	cfg := map[string]string{"X-Key": "config", "X-Config-Only": "c"}
	env := map[string]string{"x-key": "env"}
	flag := map[string]string{"X-KEY": "flag"}

	got := MergeHeaders(cfg, env, flag)
	assert.Equal(t, map[string]string{"X-KEY": "flag", "X-Config-Only": "c"}, got)

	got = MergeHeaders(cfg, env, nil)
	assert.Equal(t, map[string]string{"x-key": "env", "X-Config-Only": "c"}, got)

	got = MergeHeaders(cfg, nil, nil)
	assert.Equal(t, cfg, got)
}
