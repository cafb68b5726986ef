package command

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetdb/ppls/internal/client"
	"github.com/faucetdb/ppls/internal/model"
)

func TestUpload_SequentialAndNormalized(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/scans/a.pdf", []byte("AAA"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/scans/b.pdf", []byte("BBB"), 0644))

	type upload struct {
		name    string
		content string
		title   string
		tags    []string
		created string
	}
	var got []upload

	r := chi.NewRouter()
	r.Post("/api/documents/post_document/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("document")
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		got = append(got, upload{
			name:    hdr.Filename,
			content: string(data),
			title:   r.FormValue("title"),
			tags:    r.MultipartForm.Value["tags"],
			created: r.FormValue("created"),
		})
		w.Write([]byte(`"task-` + hdr.Filename + `"`))
	})
	s := newSession(t, r)

	title := "Scan"
	created := "2024-01-05"
	var progress []string
	results, err := Upload(context.Background(), s, fsys, []string{"/scans/a.pdf", "/scans/b.pdf"},
		model.DocumentUpload{Title: &title, Created: &created, Tags: []int{1, 2}},
		func(p string) { progress = append(progress, p) })
	require.NoError(t, err)

	assert.Equal(t, []string{"/scans/a.pdf", "/scans/b.pdf"}, progress)
	require.Len(t, got, 2)
	assert.Equal(t, upload{"a.pdf", "AAA", "Scan", []string{"1", "2"}, "2024-01-05"}, got[0])
	assert.Equal(t, "b.pdf", got[1].name)

	assert.Equal(t, []UploadResult{{"result": "task-a.pdf"}, {"result": "task-b.pdf"}}, results)
	assert.Equal(t, "task-a.pdf", UploadPlain(results[0]))
}

func TestUpload_StopsAtFirstFailure(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.pdf", []byte("A"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/c.pdf", []byte("C"), 0644))

	calls := 0
	r := chi.NewRouter()
	r.Post("/api/documents/post_document/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`"ok"`))
	})
	s := newSession(t, r)

	results, err := Upload(context.Background(), s, fsys, []string{"/a.pdf", "/missing.pdf", "/c.pdf"}, model.DocumentUpload{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file at /missing.pdf")
	assert.Len(t, results, 1)
	assert.Equal(t, 1, calls)
}

func TestUpload_APIErrorAborts(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/a.pdf", []byte("A"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/b.pdf", []byte("B"), 0644))

	calls := 0
	r := chi.NewRouter()
	r.Post("/api/documents/post_document/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Unsupported file type"})
	})
	s := newSession(t, r)

	_, err := Upload(context.Background(), s, fsys, []string{"/a.pdf", "/b.pdf"}, model.DocumentUpload{}, nil)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Unsupported file type", apiErr.Message)
	assert.Equal(t, 1, calls)
}

func TestUploadPlain(t *testing.T) {
	assert.Equal(t, "abc", UploadPlain(UploadResult{"result": "abc"}))
	assert.Equal(t, "12", UploadPlain(UploadResult{"id": float64(12)}))
	assert.Equal(t, `{"result":null}`, UploadPlain(normalizeUpload(nil)))
	assert.Equal(t, UploadResult{"id": "x"}, normalizeUpload(map[string]any{"id": "x"}))
}

func downloadServer(t *testing.T, disposition, contentType string, seenQuery *string) *Session {
	r := chi.NewRouter()
	r.Get("/api/documents/{id}/download/", func(w http.ResponseWriter, r *http.Request) {
		if seenQuery != nil {
			*seenQuery = r.URL.RawQuery
		}
		if disposition != "" {
			w.Header().Set("Content-Disposition", disposition)
		}
		w.Header().Set("Content-Type", contentType)
		w.Write([]byte("%PDF-data"))
	})
	return newSession(t, r)
}

func TestDownload(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		contentType string
		output      string
		mkdir       string
		wantPath    string
	}{
		{
			name:        "header filename into working dir",
			disposition: `attachment; filename="invoice.pdf"`,
			contentType: "application/pdf",
			wantPath:    "/work/invoice.pdf",
		},
		{
			name:        "fallback pdf name",
			contentType: "application/pdf",
			wantPath:    "/work/document-42.pdf",
		},
		{
			name:        "fallback without extension",
			contentType: "image/png",
			wantPath:    "/work/document-42",
		},
		{
			name:        "output directory",
			disposition: `attachment; filename="../../etc/invoice.pdf"`,
			contentType: "application/pdf",
			output:      "out",
			mkdir:       "/work/out",
			wantPath:    "/work/out/invoice.pdf",
		},
		{
			name:        "output file",
			disposition: `attachment; filename="invoice.pdf"`,
			contentType: "application/pdf",
			output:      "/tmp/renamed.pdf",
			wantPath:    "/tmp/renamed.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, fsys.MkdirAll("/work", 0755))
			require.NoError(t, fsys.MkdirAll("/tmp", 0755))
			if tt.mkdir != "" {
				require.NoError(t, fsys.MkdirAll(tt.mkdir, 0755))
			}
			s := downloadServer(t, tt.disposition, tt.contentType, nil)

			res, err := Download(context.Background(), s, fsys, 42, DownloadOptions{Output: tt.output, Dir: "/work"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, res.Output)
			assert.Equal(t, 42, res.ID)
			assert.Equal(t, 9, res.Bytes)
			assert.Equal(t, tt.contentType, res.ContentType)

			data, err := afero.ReadFile(fsys, tt.wantPath)
			require.NoError(t, err)
			assert.Equal(t, "%PDF-data", string(data))

			entries, err := afero.ReadDir(fsys, "/work")
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), ".part")
			}
		})
	}
}

func TestDownload_Original(t *testing.T) {
	var query string
	s := downloadServer(t, "", "application/pdf", &query)
	fsys := afero.NewMemMapFs()

	res, err := Download(context.Background(), s, fsys, 7, DownloadOptions{Original: true, Dir: "/"})
	require.NoError(t, err)
	assert.Equal(t, "original=true", query)
	assert.True(t, res.Original)
	assert.Equal(t, "document-7.pdf", res.Filename)

	_, err = Download(context.Background(), s, fsys, 7, DownloadOptions{Dir: "/"})
	require.NoError(t, err)
	assert.Equal(t, "", query)
}
