package command

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/faucetdb/ppls/internal/client"
	"github.com/faucetdb/ppls/internal/model"
)

// Document endpoints.
const (
	DocumentsPath    = "/api/documents/"
	postDocumentPath = "/api/documents/post_document/"
)

// UploadResult is the normalized response of one upload. The service
// answers with a bare task id string, which becomes {"result": "<id>"}.
type UploadResult map[string]any

// UploadPlain returns the task id, or the object id, or the JSON body.
func UploadPlain(r UploadResult) string {
	if s, ok := r["result"].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	switch id := r["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	out, _ := json.Marshal(r)
	return string(out)
}

func normalizeUpload(v any) UploadResult {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return UploadResult{"result": v}
}

// Upload sends each file in paths, one at a time and in order. The first
// failure stops the queue; results holds what was uploaded before it.
// progress, when set, is called before each file.
func Upload(ctx context.Context, s *Session, fsys afero.Fs, paths []string, meta model.DocumentUpload, progress func(path string)) ([]UploadResult, error) {
	u, err := client.BuildURL(s.Hostname, postDocumentPath, nil)
	if err != nil {
		return nil, err
	}

	results := make([]UploadResult, 0, len(paths))
	for _, path := range paths {
		if progress != nil {
			progress(path)
		}
		res, err := uploadOne(ctx, s, fsys, u, path, meta)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func uploadOne(ctx context.Context, s *Session, fsys afero.Fs, u *url.URL, path string, meta model.DocumentUpload) (UploadResult, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at %s: %w", path, err)
	}
	defer f.Close()

	form := &client.Form{FileField: "document", FileName: filepath.Base(path), File: f}
	addUploadFields(form, meta)

	var out any
	if err := s.Client.PostMultipart(ctx, u, form, &out); err != nil {
		return nil, fmt.Errorf("upload %s: %w", path, err)
	}
	if s.Logger != nil {
		s.Logger.Debug("uploaded document", "path", path)
	}
	return normalizeUpload(out), nil
}

func addUploadFields(form *client.Form, meta model.DocumentUpload) {
	if meta.Title != nil {
		form.Add("title", *meta.Title)
	}
	addInt(form, "correspondent", meta.Correspondent)
	addInt(form, "document_type", meta.DocumentType)
	addInt(form, "storage_path", meta.StoragePath)
	if meta.Created != nil {
		form.Add("created", *meta.Created)
	}
	addInt(form, "archive_serial_number", meta.ArchiveSerialNumber)
	for _, tag := range meta.Tags {
		form.Add("tags", strconv.Itoa(tag))
	}
}

func addInt(form *client.Form, name string, v *int) {
	if v != nil {
		form.Add(name, strconv.Itoa(*v))
	}
}

// DownloadOptions controls Download.
type DownloadOptions struct {
	// Original fetches the original upload instead of the archived PDF.
	Original bool

	// Output is a target file or an existing directory. Relative paths
	// are resolved against Dir.
	Output string

	// Dir is the working directory.
	Dir string
}

// DownloadResult describes a saved file.
type DownloadResult struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Output      string `json:"output"`
	Bytes       int    `json:"bytes"`
	ContentType string `json:"contentType,omitempty"`
	Original    bool   `json:"original"`
}

// Download saves document id to disk. The body is written to a temporary
// file next to the target and renamed into place.
func Download(ctx context.Context, s *Session, fsys afero.Fs, id int, opts DownloadOptions) (*DownloadResult, error) {
	var original any
	if opts.Original {
		original = "true"
	}
	u, err := client.BuildURL(s.Hostname, DocumentsPath+strconv.Itoa(id)+"/download/", client.Params{{Key: "original", Value: original}})
	if err != nil {
		return nil, err
	}

	bin, err := s.Client.GetBinary(ctx, u)
	if err != nil {
		return nil, err
	}

	filename := client.FilenameFromDisposition(bin.ContentDisposition)
	if filename == "" {
		filename = fallbackFilename(id, bin.ContentType)
	}

	target := resolveOutput(fsys, opts.Dir, opts.Output, filename)
	if err := writeAtomic(fsys, target, bin.Data); err != nil {
		return nil, err
	}

	return &DownloadResult{
		ID:          id,
		Filename:    filepath.Base(target),
		Output:      target,
		Bytes:       len(bin.Data),
		ContentType: bin.ContentType,
		Original:    opts.Original,
	}, nil
}

func fallbackFilename(id int, contentType string) string {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return fmt.Sprintf("document-%d.pdf", id)
	}
	return fmt.Sprintf("document-%d", id)
}

func resolveOutput(fsys afero.Fs, dir, output, filename string) string {
	if strings.TrimSpace(output) == "" {
		return filepath.Join(dir, filename)
	}
	target := output
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	isDir, err := afero.IsDir(fsys, target)
	if err == nil && isDir {
		return filepath.Join(target, filename)
	}
	return filepath.Clean(target)
}

func writeAtomic(fsys afero.Fs, target string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+"."+uuid.NewString()+".part")
	if err := afero.WriteFile(fsys, tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err := fsys.Rename(tmp, target); err != nil {
		_ = fsys.Remove(tmp)
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
