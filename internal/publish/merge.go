package publish

import (
	"strings"

	"github.com/ReessKennedy/obsidian-wordpress/internal/note"
	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

// MergeInput carries everything one publish attempt produced that may
// flow into the note's persisted metadata.
type MergeInput struct {
	ProfileName string
	Endpoint    string

	Outgoing wp.PostParams  // the request that was sent
	Result   *wp.PostResult // the server's non-error response

	// NewCategoryNames is the freshly computed name-list for this attempt
	// (from the new-post selection or a legacy-ID conversion). Nil means
	// name conversion did not run or failed.
	NewCategoryNames []string

	// AttemptedCategories reports whether categories were part of this
	// attempt at all. When false, the existing value is preserved.
	AttemptedCategories bool

	// OriginalTags is the caller-supplied tag name list for this attempt.
	// Nil means no tag input; a non-nil empty list is an explicit clear.
	OriginalTags []string

	// OutgoingTagNames is the resolved tag set that was sent.
	OutgoingTagNames []string

	// NoteTitle is the document's own default title (its basename).
	NoteTitle string

	// Override, when set, runs after the built-in policy and may adjust
	// any field.
	Override func(*note.Meta)
}

// Merge computes the new metadata block from the existing one and the
// attempt's results. Fields the attempt did not intend to change are
// carried forward unchanged; the merge is additive and corrective, never
// a blind overwrite. Merge itself performs no I/O — callers apply it
// inside the store's atomic read-modify-write.
func Merge(existing *note.Meta, in MergeInput) *note.Meta {
	m := existing.Clone()
	if m == nil {
		m = &note.Meta{}
	}

	// profile_name reflects who last published, always.
	m.Profile = in.ProfileName

	// remote_url: an existing value is kept unconditionally. Only a note
	// without one accepts the server's canonical URL, constructing one
	// from the endpoint as a last resort.
	if m.RemoteURL == "" {
		switch {
		case in.Result.URL != "":
			m.RemoteURL = in.Result.URL
		case in.Result.PostID != "":
			m.RemoteURL = strings.TrimRight(in.Endpoint, "/") + "/?p=" + in.Result.PostID
		}
	}

	if m.PostType == "" {
		m.PostType = in.Outgoing.PostType
	}

	switch {
	case len(in.NewCategoryNames) > 0:
		cats := make([]any, len(in.NewCategoryNames))
		for i, name := range in.NewCategoryNames {
			cats[i] = name
		}
		m.Categories = cats
	case in.AttemptedCategories && len(in.Outgoing.CategoryIDs) > 0:
		// Name conversion failed; fall back to the raw outgoing IDs.
		cats := make([]any, len(in.Outgoing.CategoryIDs))
		for i, id := range in.Outgoing.CategoryIDs {
			cats[i] = id
		}
		m.Categories = cats
	}

	switch {
	case in.OriginalTags != nil:
		m.Tags = append([]string{}, in.OriginalTags...)
	case in.OutgoingTagNames != nil:
		m.Tags = append([]string{}, in.OutgoingTagNames...)
	}

	// title: never stamp the obvious default over an absent value.
	if m.Title == "" && in.Outgoing.Title != "" && in.Outgoing.Title != in.NoteTitle {
		m.Title = in.Outgoing.Title
	}

	if in.Override != nil {
		in.Override(m)
	}
	return m
}
