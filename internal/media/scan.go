package media

import (
	"net/url"
	"regexp"
	"strconv"
)

// Two reference syntaxes, each optionally annotated with a width or
// width x height after a pipe:
//
//	![[cat.png]]  ![[cat.png|300]]  ![[cat.png|300x200]]
//	![alt](cat.png)  ![alt|300](cat.png)  ![alt|300x200](cat.png)
var (
	reEmbed  = regexp.MustCompile(`!\[\[([^\]|]+?)(?:\|(\d+)(?:x(\d+))?)?\]\]`)
	reInline = regexp.MustCompile(`!\[([^\]|]*)(?:\|(\d+)(?:x(\d+))?)?\]\(([^)\s]+)\)`)
)

// Ref is one parsed image occurrence in a note body. Rebuilt by
// re-scanning on every publish attempt.
type Ref struct {
	Match  string // the full original matched text
	Source string // local path or URL
	Alt    string // inline-style alt text, annotation stripped

	// Annotation is the size annotation exactly as written, without the
	// pipe ("300x200", "300", or ""). Rewrites carry it forward verbatim.
	Annotation string

	Width  int  // 0 when absent
	Height int  // 0 when absent
	Embed  bool // double-bracket embed style
}

// Remote reports whether the source is already an absolute URL, in which
// case no upload is attempted.
func (r Ref) Remote() bool {
	u, err := url.Parse(r.Source)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Rewrite returns the reference text pointing at remoteURL, carrying any
// width/height annotation forward exactly as found.
func (r Ref) Rewrite(remoteURL string) string {
	ann := ""
	if r.Annotation != "" {
		ann = "|" + r.Annotation
	}
	if r.Embed {
		return "![[" + remoteURL + ann + "]]"
	}
	return "![" + r.Alt + ann + "](" + remoteURL + ")"
}

// Scan extracts all image references from body, in order of appearance.
func Scan(body string) []Ref {
	var refs []Ref
	for _, m := range reEmbed.FindAllStringSubmatch(body, -1) {
		refs = append(refs, Ref{
			Match:      m[0],
			Source:     m[1],
			Annotation: annotation(m[2], m[3]),
			Width:      atoiOrZero(m[2]),
			Height:     atoiOrZero(m[3]),
			Embed:      true,
		})
	}
	for _, m := range reInline.FindAllStringSubmatch(body, -1) {
		refs = append(refs, Ref{
			Match:      m[0],
			Alt:        m[1],
			Annotation: annotation(m[2], m[3]),
			Width:      atoiOrZero(m[2]),
			Height:     atoiOrZero(m[3]),
			Source:     m[4],
		})
	}
	return refs
}

// annotation reassembles the raw captured annotation text.
func annotation(w, h string) string {
	if w == "" {
		return ""
	}
	if h != "" {
		return w + "x" + h
	}
	return w
}

// atoiOrZero parses a captured dimension; anything unparseable, including
// a digit run too long for int, reads as 0.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
