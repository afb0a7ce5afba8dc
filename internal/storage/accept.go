// Package storage checks uploaded image files and persists them on local
// disk or in a MinIO bucket. Stored files are addressed by their public path,
// "/uploads/<dir>/<name>".
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/gabriel-vasile/mimetype"
)

// MaxProductImages caps the files accepted by one product write.
const MaxProductImages = 5

// Rule is the allow-list for one upload field.
type Rule struct {
	MaxBytes   int64
	Extensions []string
	MIMETypes  []string
}

var rasterExtensions = []string{".jpeg", ".jpg", ".png", ".gif", ".webp"}
var rasterMIMETypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var (
	ProductRule  = Rule{MaxBytes: 5 << 20, Extensions: rasterExtensions, MIMETypes: rasterMIMETypes}
	BannerRule   = Rule{MaxBytes: 5 << 20, Extensions: rasterExtensions, MIMETypes: rasterMIMETypes}
	CategoryRule = Rule{MaxBytes: 2 << 20, Extensions: rasterExtensions, MIMETypes: rasterMIMETypes}
	SettingsRule = Rule{
		MaxBytes:   2 << 20,
		Extensions: append(slices.Clone(rasterExtensions), ".svg", ".ico"),
		MIMETypes:  append(slices.Clone(rasterMIMETypes), "image/svg+xml", "image/x-icon"),
	}
)

// Accept reads fh and checks it against rule. Both the file extension and the
// sniffed content type must be allowed; the client's Content-Type header is
// not trusted.
func Accept(field string, fh *multipart.FileHeader, rule Rule) (payload.Upload, error) {
	if fh.Size > rule.MaxBytes {
		return payload.Upload{}, apperr.Validation("%s must be at most %d MB", field, rule.MaxBytes>>20)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(rule.Extensions, ext) {
		return payload.Upload{}, apperr.Validation("Only image files are allowed")
	}

	f, err := fh.Open()
	if err != nil {
		return payload.Upload{}, apperr.Upstream("open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, rule.MaxBytes+1))
	if err != nil {
		return payload.Upload{}, apperr.Upstream("read upload", err)
	}
	if int64(len(data)) > rule.MaxBytes {
		return payload.Upload{}, apperr.Validation("%s must be at most %d MB", field, rule.MaxBytes>>20)
	}

	mt := mimetype.Detect(data)
	if !allowedMIME(mt, rule.MIMETypes) {
		return payload.Upload{}, apperr.Validation("Only image files are allowed")
	}

	return payload.Upload{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

// AcceptAll applies Accept to every file, refusing more than limit files.
func AcceptAll(field string, files []*multipart.FileHeader, rule Rule, limit int) ([]payload.Upload, error) {
	if limit > 0 && len(files) > limit {
		return nil, apperr.Validation("at most %d %s files are allowed", limit, field)
	}
	uploads := make([]payload.Upload, 0, len(files))
	for _, fh := range files {
		u, err := Accept(field, fh, rule)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func allowedMIME(mt *mimetype.MIME, allowed []string) bool {
	for _, m := range allowed {
		if mt.Is(m) {
			return true
		}
	}
	return false
}

// objectName builds "<dir>/<prefix>-<id><ext>" for an upload.
func objectName(dst payload.Destination, u payload.Upload, id string) string {
	prefix := dst.Prefix
	if prefix == "" {
		prefix = u.Field
	}
	ext := strings.ToLower(filepath.Ext(u.Filename))
	return fmt.Sprintf("%s/%s-%s%s", dst.Dir, prefix, id, ext)
}

// publicPath is the URL path a stored object is served under.
func publicPath(object string) string {
	return "/uploads/" + object
}

// objectFromPath reverses publicPath. It rejects anything outside /uploads
// and any path that tries to climb out of it.
func objectFromPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "/uploads/")
	if !ok || rest == "" {
		return "", fmt.Errorf("storage: %q is not an upload path", path)
	}
	clean := filepath.ToSlash(filepath.Clean(rest))
	if clean == "." || strings.HasPrefix(clean, "../") || clean == ".." || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("storage: %q escapes the upload root", path)
	}
	return clean, nil
}
