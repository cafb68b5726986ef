package client

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	page := 2
	var unset *int

	tests := []struct {
		name     string
		hostname string
		path     string
		params   Params
		want     string
	}{
		{
			name:     "no params",
			hostname: "https://paperless.example.test",
			path:     "/api/tags/",
			want:     "https://paperless.example.test/api/tags/",
		},
		{
			name:     "scalars keep insertion order",
			hostname: "https://paperless.example.test/",
			path:     "/api/documents/",
			params: Params{
				{Key: "title__icontains", Value: "tax return"},
				{Key: "page", Value: &page},
				{Key: "inbox", Value: true},
			},
			want: "https://paperless.example.test/api/documents/?title__icontains=tax+return&page=2&inbox=true",
		},
		{
			name:     "undefined values are omitted",
			hostname: "https://paperless.example.test",
			path:     "/api/tags/",
			params: Params{
				{Key: "ordering", Value: nil},
				{Key: "page", Value: unset},
				{Key: "page_size", Value: 25},
			},
			want: "https://paperless.example.test/api/tags/?page_size=25",
		},
		{
			name:     "arrays are comma joined",
			hostname: "http://localhost:8000",
			path:     "/api/documents/",
			params:   Params{{Key: "tags__id__all", Value: []int{1, 2, 3}}},
			want:     "http://localhost:8000/api/documents/?tags__id__all=1%2C2%2C3",
		},
		{
			name:     "empty arrays are omitted",
			hostname: "http://localhost:8000",
			path:     "/api/documents/",
			params: Params{
				{Key: "tags__id__all", Value: []int{}},
				{Key: "tag", Value: []string{}, Repeat: true},
				{Key: "page", Value: 1},
			},
			want: "http://localhost:8000/api/documents/?page=1",
		},
		{
			name:     "arrays repeat keys on request",
			hostname: "http://localhost:8000",
			path:     "/api/documents/",
			params:   Params{{Key: "tag", Value: []string{"a", "b"}, Repeat: true}},
			want:     "http://localhost:8000/api/documents/?tag=a&tag=b",
		},
		{
			name:     "path query is merged and overridden",
			hostname: "https://paperless.example.test",
			path:     "/api/documents/1/download/?original=false&x=1",
			params:   Params{{Key: "original", Value: "true"}},
			want:     "https://paperless.example.test/api/documents/1/download/?x=1&original=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.hostname, tt.path, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestBuildURL_InvalidHostname(t *testing.T) {
	for _, hostname := range []string{"", "paperless.example.test", "ftp://x.test", "https://", "::bad"} {
		_, err := BuildURL(hostname, "/api/tags/", nil)
		var herr *InvalidHostnameError
		require.True(t, errors.As(err, &herr), "hostname %q", hostname)
		assert.Equal(t, hostname, herr.Hostname)
	}
}

func TestParamsSet(t *testing.T) {
	p := Params{{Key: "a", Value: 1}}
	p = p.Set("b", 2)
	p = p.Set("a", 3)
	assert.Equal(t, Params{{Key: "a", Value: 3}, {Key: "b", Value: 2}}, p)
}
