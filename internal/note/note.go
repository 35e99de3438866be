package note

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Note is a vault document: its body text plus the parsed front-matter
// metadata block, if one is present.
type Note struct {
	Path  string
	Title string // basename without extension; the document's own default title
	Body  string
	Meta  *Meta // nil when the note has no front-matter block
}

// Read loads and parses the note at path.
func Read(path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading note: %w", err)
	}
	raw := string(data)

	var meta *Meta
	fm, body, ok := splitFrontMatter(raw)
	if ok {
		meta, err = parseMeta(fm)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", filepath.Base(path), err)
		}
	} else {
		body = raw
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Note{Path: path, Title: title, Body: body, Meta: meta}, nil
}

// Store provides file-backed note access. The zero value is ready to use.
type Store struct{}

func (Store) Read(path string) (*Note, error) {
	return Read(path)
}

// UpdateMeta applies fn to the note's metadata block and persists the
// result atomically. The block is re-read from disk inside the call, so
// concurrent edits to other fields are not lost. A note without a block
// gains one.
func (Store) UpdateMeta(path string, fn func(*Meta)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading note: %w", err)
	}
	raw := string(data)

	meta := &Meta{}
	fm, body, ok := splitFrontMatter(raw)
	if ok {
		meta, err = parseMeta(fm)
		if err != nil {
			return fmt.Errorf("note %s: %w", filepath.Base(path), err)
		}
	} else {
		body = raw
	}

	fn(meta)

	rendered, err := renderMeta(meta)
	if err != nil {
		return fmt.Errorf("rendering metadata: %w", err)
	}
	return writeFileAtomic(path, []byte(rendered+body), 0644)
}

// WriteBody replaces the note's body text, leaving the front-matter block
// byte-for-byte untouched.
func (Store) WriteBody(path string, newBody string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading note: %w", err)
	}
	raw := string(data)

	fm, _, ok := splitFrontMatter(raw)
	if !ok {
		return writeFileAtomic(path, []byte(newBody), 0644)
	}
	return writeFileAtomic(path, []byte("---\n"+fm+"---\n"+newBody), 0644)
}

// splitFrontMatter separates a leading front-matter block from the body.
// The block must open with "---" on the first line and close with a "---"
// line. fm is returned without the delimiters.
func splitFrontMatter(content string) (fm, body string, ok bool) {
	if !strings.HasPrefix(content, "---\n") {
		return "", content, false
	}
	rest := content[len("---\n"):]
	if idx := strings.Index(rest, "\n---\n"); idx >= 0 {
		return rest[:idx+1], rest[idx+len("\n---\n"):], true
	}
	if strings.HasSuffix(rest, "\n---") {
		return rest[:len(rest)-len("---")], "", true
	}
	return "", content, false
}
