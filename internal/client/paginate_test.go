package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// pagedServer serves pages of one item each on /api/tags/ and records every
// request URI it sees.
func pagedServer(t *testing.T, pages int) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	var srv *httptest.Server

	r := chi.NewRouter()
	r.Get("/api/tags/", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.RequestURI())
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			page, _ = strconv.Atoi(p)
		}
		body := map[string]any{
			"results": []item{{ID: page, Name: fmt.Sprintf("tag-%d", page)}},
			"next":    nil,
		}
		if page < pages {
			body["next"] = fmt.Sprintf("%s/api/tags/?page=%d&page_size=%d", srv.URL, page+1, AutoPageSize)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	})
	srv = newTestServer(t, r)
	return srv, &seen
}

func TestFetchAll_FollowsNext(t *testing.T) {
	srv, seen := pagedServer(t, 3)
	start, err := BuildURL(srv.URL, "/api/tags/", PageOptions{}.Params())
	require.NoError(t, err)

	items, err := FetchAll[item](context.Background(), New(Config{Token: "t"}), start, true)
	require.NoError(t, err)

	assert.Equal(t, []item{{1, "tag-1"}, {2, "tag-2"}, {3, "tag-3"}}, items)
	require.Len(t, *seen, 3)
	assert.Equal(t, fmt.Sprintf("/api/tags/?page_size=%d", AutoPageSize), (*seen)[0])
	assert.Equal(t, fmt.Sprintf("/api/tags/?page=2&page_size=%d", AutoPageSize), (*seen)[1])
}

func TestFetchAll_BoundedIgnoresNext(t *testing.T) {
	srv, seen := pagedServer(t, 3)
	page, size := 1, 1
	start, err := BuildURL(srv.URL, "/api/tags/", PageOptions{Page: &page, PageSize: &size}.Params())
	require.NoError(t, err)

	items, err := FetchAll[item](context.Background(), New(Config{Token: "t"}), start, false)
	require.NoError(t, err)

	assert.Equal(t, []item{{1, "tag-1"}}, items)
	assert.Len(t, *seen, 1)
}

func TestFetchAll_EmptyResults(t *testing.T) {
	calls := 0
	r := chi.NewRouter()
	r.Get("/api/tags/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"count": 0, "results": [], "next": null}`))
	})
	srv := newTestServer(t, r)

	items, err := FetchAll[item](context.Background(), New(Config{Token: "t"}), mustURL(t, srv.URL+"/api/tags/"), true)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 1, calls)
}

func TestFetchAll_ErrorOnLaterPage(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/tags/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"results": [{"id": 1}], "next": "/api/tags/?page=2"}`))
	})
	srv := newTestServer(t, r)

	items, err := FetchAll[item](context.Background(), New(Config{Token: "t"}), mustURL(t, srv.URL+"/api/tags/"), true)
	require.Error(t, err)
	assert.Nil(t, items)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestFetchAll_InvalidNext(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/tags/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"id": 1}], "next": "::not a url"}`))
	})
	srv := newTestServer(t, r)

	_, err := FetchAll[item](context.Background(), New(Config{Token: "t"}), mustURL(t, srv.URL+"/api/tags/"), true)
	var perr *PaginationError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, `API returned an invalid next URL for pagination: "::not a url"`, err.Error())
}

func TestIterate(t *testing.T) {
	srv, seen := pagedServer(t, 3)
	start := mustURL(t, srv.URL+"/api/tags/")
	seq := Iterate[item](context.Background(), New(Config{Token: "t"}), start, true)

	var first []int
	for it, err := range seq {
		require.NoError(t, err)
		first = append(first, it.ID)
		if it.ID == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, first)
	assert.Len(t, *seen, 2)

	var again []int
	for it, err := range seq {
		require.NoError(t, err)
		again = append(again, it.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, again)
	assert.Len(t, *seen, 5)
}

func TestIterate_YieldsError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/tags/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Invalid token."}`))
	})
	srv := newTestServer(t, r)

	var errs []error
	for _, err := range Iterate[item](context.Background(), New(Config{Token: "t"}), mustURL(t, srv.URL+"/api/tags/"), true) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "Invalid token.")
}

func TestNextURL(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    string
	}{
		{
			name:    "absolute next",
			current: "https://paperless.example.test/api/tags/?page=1",
			next:    "https://paperless.example.test/api/tags/?page=2",
			want:    "https://paperless.example.test/api/tags/?page=2",
		},
		{
			name:    "relative next",
			current: "https://paperless.example.test/api/tags/?page=1",
			next:    "/api/tags/?page=2",
			want:    "https://paperless.example.test/api/tags/?page=2",
		},
		{
			name:    "downgrade on same host keeps scheme and port",
			current: "https://same-host:8443/api/tags/?page=1",
			next:    "http://same-host/api/tags/?page=2",
			want:    "https://same-host:8443/api/tags/?page=2",
		},
		{
			name:    "host comparison ignores case",
			current: "https://Paperless.Example.test/api/tags/",
			next:    "http://paperless.example.test/api/tags/?page=2",
			want:    "https://Paperless.Example.test/api/tags/?page=2",
		},
		{
			name:    "different host is left alone",
			current: "https://paperless.example.test/api/tags/",
			next:    "http://other.example.test/api/tags/?page=2",
			want:    "http://other.example.test/api/tags/?page=2",
		},
		{
			name:    "plain http is left alone",
			current: "http://localhost:8000/api/tags/",
			next:    "http://localhost/api/tags/?page=2",
			want:    "http://localhost/api/tags/?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextURL(mustURL(t, tt.current), tt.next)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func intp(v int) *int { return &v }

func TestPageOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    PageOptions
		auto    bool
		wantErr string
	}{
		{name: "none", opts: PageOptions{}, auto: true},
		{name: "both", opts: PageOptions{Page: intp(2), PageSize: intp(10)}},
		{name: "page only", opts: PageOptions{Page: intp(2)}, wantErr: "page_size: is required when page is set."},
		{name: "size only", opts: PageOptions{PageSize: intp(10)}, wantErr: "page: is required when page_size is set."},
		{name: "zero page", opts: PageOptions{Page: intp(0), PageSize: intp(10)}, wantErr: "page: must be 1 or greater."},
		{name: "negative size", opts: PageOptions{Page: intp(1), PageSize: intp(-5)}, wantErr: "page_size: must be 1 or greater."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.auto, tt.opts.AutoPaginate())
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPageOptions_Params(t *testing.T) {
	assert.Equal(t, Params{{Key: "page_size", Value: AutoPageSize}}, PageOptions{}.Params())

	p := PageOptions{Page: intp(3), PageSize: intp(25)}.Params()
	u, err := BuildURL("https://paperless.example.test", "/api/tags/", p)
	require.NoError(t, err)
	assert.Equal(t, "https://paperless.example.test/api/tags/?page=3&page_size=25", u.String())
}
