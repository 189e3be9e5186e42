package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"deals-service/media"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// maxPartBytes caps every multipart part, files included.
const maxPartBytes = 10 << 20

var (
	errInvalidForm  = errors.New("Invalid multipart form")
	errPartTooLarge = errors.New("Uploaded file is too large")
)

// uploadForm is a request body read part by part into memory. Nothing is
// spooled to disk, unlike http.Request.ParseMultipartForm.
type uploadForm struct {
	values map[string]string
	files  map[string]*media.File
}

// readUploadForm streams a multipart body. Bodies that are not multipart fall
// back to the URL-encoded form so JSON-less partial updates still work.
func readUploadForm(ctx *gin.Context) (*uploadForm, error) {
	form := &uploadForm{values: map[string]string{}, files: map[string]*media.File{}}

	reader, err := ctx.Request.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		if err := ctx.Request.ParseForm(); err != nil {
			return nil, errInvalidForm
		}
		for k := range ctx.Request.PostForm {
			form.values[k] = ctx.Request.PostForm.Get(k)
		}
		return form, nil
	}
	if err != nil {
		return nil, errInvalidForm
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return nil, errInvalidForm
		}
		name := part.FormName()
		body, err := io.ReadAll(io.LimitReader(part, maxPartBytes+1))
		_ = part.Close()
		if err != nil {
			return nil, errInvalidForm
		}
		if len(body) > maxPartBytes {
			return nil, errPartTooLarge
		}
		if name == "" {
			continue
		}
		if part.FileName() == "" {
			if _, seen := form.values[name]; !seen {
				form.values[name] = string(body)
			}
			continue
		}
		if _, seen := form.files[name]; !seen {
			form.files[name] = &media.File{
				Filename:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Body:        bytes.NewReader(body),
			}
		}
	}
}

// String returns the trimmed field, or nil when it was not submitted.
func (f *uploadForm) String(field string) *string {
	v, ok := f.values[field]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

// Int parses a decimal field and drops any fraction, so "010" is 10 and "12.5"
// is 12. A missing or blank field is nil.
func (f *uploadForm) Int(field string) (*int, error) {
	raw := f.String(field)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(*raw)
	if err != nil || math.IsNaN(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return nil, fmt.Errorf("%s must be a number", field)
	}
	n := int(v)
	return &n, nil
}

// File returns the uploaded file for field, or nil when none was sent.
func (f *uploadForm) File(field string) *media.File {
	return f.files[field]
}
