package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

func mapResolver(files map[string][]byte) FileResolver {
	return func(source string) ([]byte, string, error) {
		data, ok := files[source]
		if !ok {
			return nil, "", fmt.Errorf("no such file: %s", source)
		}
		parts := strings.Split(source, "/")
		return data, parts[len(parts)-1], nil
	}
}

func hostUploader(t *testing.T) Uploader {
	t.Helper()
	return func(ctx context.Context, file wp.MediaFile) (*wp.MediaResult, error) {
		return &wp.MediaResult{URL: "https://media.example.com/" + file.Name}, nil
	}
}

func TestRelay_RoundTripPreservesDimensions(t *testing.T) {
	files := map[string][]byte{"cat.png": []byte("pngdata")}
	body, warnings := Relay(context.Background(), "![[cat.png|300x200]]", mapResolver(files), hostUploader(t))
	if body != "![[https://media.example.com/cat.png|300x200]]" {
		t.Fatalf("body = %q", body)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestRelay_RemoteReferencesUntouched(t *testing.T) {
	in := "![logo](https://cdn.example.com/logo.png)"
	body, warnings := Relay(context.Background(), in, mapResolver(nil), func(ctx context.Context, file wp.MediaFile) (*wp.MediaResult, error) {
		t.Fatal("upload attempted for remote reference")
		return nil, nil
	})
	if body != in {
		t.Fatalf("body = %q", body)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestRelay_ServerFailureIsContained(t *testing.T) {
	files := map[string][]byte{
		"a.png": []byte("a"),
		"b.png": []byte("b"),
		"c.png": []byte("c"),
	}
	upload := func(ctx context.Context, file wp.MediaFile) (*wp.MediaResult, error) {
		if file.Name == "b.png" {
			return nil, &wp.Error{Code: "rest_upload_error", Message: "file type not permitted"}
		}
		return &wp.MediaResult{URL: "https://media.example.com/" + file.Name}, nil
	}

	body, warnings := Relay(context.Background(), "![[a.png]] ![[b.png]] ![[c.png]]", mapResolver(files), upload)
	want := "![[https://media.example.com/a.png]] ![[b.png]] ![[https://media.example.com/c.png]]"
	if body != want {
		t.Fatalf("body = %q, want %q", body, want)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0], "file type not permitted") {
		t.Fatalf("warning %q does not carry the server message", warnings[0])
	}
}

func TestRelay_GenericFailureNamesFile(t *testing.T) {
	files := map[string][]byte{"a.png": []byte("a")}
	upload := func(ctx context.Context, file wp.MediaFile) (*wp.MediaResult, error) {
		return nil, errors.New("connection reset")
	}
	body, warnings := Relay(context.Background(), "![[a.png]]", mapResolver(files), upload)
	if body != "![[a.png]]" {
		t.Fatalf("body = %q", body)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "a.png") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestRelay_UnreadableFileWarns(t *testing.T) {
	body, warnings := Relay(context.Background(), "![[missing.png]]", mapResolver(nil), hostUploader(t))
	if body != "![[missing.png]]" {
		t.Fatalf("body = %q", body)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "missing.png") {
		t.Fatalf("warnings = %v", warnings)
	}
}

func TestRelay_FullBodyRewrite(t *testing.T) {
	files := map[string][]byte{
		"cat.png":       []byte("cat"),
		"shots/one.png": []byte("one"),
	}
	in := `# Trip notes

![[cat.png|300x200]]

Some text with ![inline shot|120](shots/one.png) and a remote
![logo](https://cdn.example.com/logo.svg) image.

![[cat.png|300x200]] appears twice.
`
	body, warnings := Relay(context.Background(), in, mapResolver(files), hostUploader(t))
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v", warnings)
	}
	g := goldie.New(t)
	g.Assert(t, "relay_rewrite", []byte(body))
}

func TestSniffMime_Fallback(t *testing.T) {
	if got := sniffMime([]byte{0x00, 0x01, 0x02}); got != "application/octet-stream" {
		t.Fatalf("sniffMime = %q", got)
	}
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	if got := sniffMime(png); got != "image/png" {
		t.Fatalf("sniffMime = %q", got)
	}
}
