package client

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path"
	"regexp"
	"strings"
)

// FormField is a scalar multipart field. Repeated names are allowed.
type FormField struct {
	Name  string
	Value string
}

// Form is a multipart upload with one file part and optional fields.
type Form struct {
	FileField string
	FileName  string
	File      io.Reader
	Fields    []FormField
}

// Add appends a field.
func (f *Form) Add(name, value string) {
	f.Fields = append(f.Fields, FormField{Name: name, Value: value})
}

func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(f.FileField, f.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f.File); err != nil {
		return nil, "", fmt.Errorf("write form file: %w", err)
	}
	for _, field := range f.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write form field %s: %w", field.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var dispositionFilename = regexp.MustCompile(`(?i)filename="?([^";]+)"?`)

// FilenameFromDisposition extracts the filename from a Content-Disposition
// header, preferring the RFC 2231 filename* form. Only the base name is
// returned so a hostile header cannot write outside the target directory.
func FilenameFromDisposition(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	var name string
	if _, params, err := mime.ParseMediaType(header); err == nil {
		name = params["filename"]
	}
	if name == "" {
		if m := dispositionFilename.FindStringSubmatch(header); m != nil {
			name = m[1]
		}
	}
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
