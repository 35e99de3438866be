package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

// Uploader sends one binary resource to the remote backend.
type Uploader func(ctx context.Context, file wp.MediaFile) (*wp.MediaResult, error)

// FileResolver turns a reference source into file bytes and a filename.
type FileResolver func(source string) (data []byte, name string, err error)

// DirResolver resolves relative sources against dir.
func DirResolver(dir string) FileResolver {
	return func(source string) ([]byte, string, error) {
		path := source
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, source)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(source), nil
	}
}

// Relay uploads every local image referenced in body and rewrites each
// reference to point at its remote URL, preserving size annotations.
// References that are already absolute URLs are left untouched. A failed
// upload never aborts the relay: the occurrence stays unmodified and a
// scoped warning is collected instead.
func Relay(ctx context.Context, body string, resolve FileResolver, upload Uploader) (string, []string) {
	var warnings []string
	done := make(map[string]bool) // original match text -> processed

	for _, ref := range Scan(body) {
		if done[ref.Match] {
			continue
		}
		done[ref.Match] = true

		if ref.Remote() {
			continue
		}

		data, name, err := resolve(ref.Source)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("image %s could not be read: %v", ref.Source, err))
			continue
		}

		res, err := upload(ctx, wp.MediaFile{
			Name:     name,
			MimeType: sniffMime(data),
			Data:     data,
		})
		if err != nil {
			var wpErr *wp.Error
			if errors.As(err, &wpErr) {
				warnings = append(warnings, fmt.Sprintf("server rejected upload of %s: %s", name, wpErr.Message))
			} else {
				warnings = append(warnings, fmt.Sprintf("upload failed for %s", name))
			}
			continue
		}

		body = strings.ReplaceAll(body, ref.Match, ref.Rewrite(res.URL))
	}
	return body, warnings
}

// sniffMime determines the MIME type from content, falling back to a
// generic octet-stream type when unrecognized.
func sniffMime(data []byte) string {
	mime := http.DetectContentType(data)
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	return mime
}
