package publish

import (
	"reflect"
	"testing"

	"github.com/ReessKennedy/obsidian-wordpress/internal/note"
	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

func baseInput() MergeInput {
	return MergeInput{
		ProfileName: "blog",
		Endpoint:    "https://blog.example.com",
		Outgoing: wp.PostParams{
			Title:       "My Post",
			PostType:    "post",
			CategoryIDs: []int{4},
		},
		Result:              &wp.PostResult{PostID: "42", URL: "https://blog.example.com/?p=42"},
		NewCategoryNames:    []string{"Tools"},
		AttemptedCategories: true,
		NoteTitle:           "my-note",
	}
}

func TestMerge_ExistingRemoteURLNeverChanges(t *testing.T) {
	existing := &note.Meta{RemoteURL: "https://blog.example.com/?p=7"}
	got := Merge(existing, baseInput())
	if got.RemoteURL != "https://blog.example.com/?p=7" {
		t.Fatalf("RemoteURL = %q, want the pre-merge value kept", got.RemoteURL)
	}
}

func TestMerge_AbsentRemoteURLAdoptsServerURL(t *testing.T) {
	got := Merge(&note.Meta{}, baseInput())
	if got.RemoteURL != "https://blog.example.com/?p=42" {
		t.Fatalf("RemoteURL = %q", got.RemoteURL)
	}
}

func TestMerge_RemoteURLConstructedAsLastResort(t *testing.T) {
	in := baseInput()
	in.Result = &wp.PostResult{PostID: "42"}
	got := Merge(&note.Meta{}, in)
	if got.RemoteURL != "https://blog.example.com/?p=42" {
		t.Fatalf("RemoteURL = %q", got.RemoteURL)
	}
}

func TestMerge_ProfileAlwaysReflectsActive(t *testing.T) {
	existing := &note.Meta{Profile: "old-blog"}
	got := Merge(existing, baseInput())
	if got.Profile != "blog" {
		t.Fatalf("Profile = %q, want blog", got.Profile)
	}
}

func TestMerge_PostTypePreservedWhenPresent(t *testing.T) {
	existing := &note.Meta{PostType: "page"}
	got := Merge(existing, baseInput())
	if got.PostType != "page" {
		t.Fatalf("PostType = %q", got.PostType)
	}
}

func TestMerge_PostTypeAdoptedOnFirstPublish(t *testing.T) {
	got := Merge(&note.Meta{}, baseInput())
	if got.PostType != "post" {
		t.Fatalf("PostType = %q", got.PostType)
	}
}

func TestMerge_CategoriesPreferFreshNames(t *testing.T) {
	existing := &note.Meta{Categories: []any{3, 7}}
	got := Merge(existing, baseInput())
	if !reflect.DeepEqual(got.Categories, []any{"Tools"}) {
		t.Fatalf("Categories = %v", got.Categories)
	}
}

func TestMerge_CategoriesFallBackToOutgoingIDs(t *testing.T) {
	in := baseInput()
	in.NewCategoryNames = nil
	got := Merge(&note.Meta{}, in)
	if !reflect.DeepEqual(got.Categories, []any{4}) {
		t.Fatalf("Categories = %v", got.Categories)
	}
}

func TestMerge_CategoriesPreservedWhenNotAttempted(t *testing.T) {
	in := baseInput()
	in.NewCategoryNames = nil
	in.AttemptedCategories = false
	in.Outgoing.CategoryIDs = nil
	existing := &note.Meta{Categories: []any{"Keep", "These"}}
	got := Merge(existing, in)
	if !reflect.DeepEqual(got.Categories, []any{"Keep", "These"}) {
		t.Fatalf("Categories = %v", got.Categories)
	}
}

func TestMerge_ExplicitlyEmptyTagsAreKeptEmpty(t *testing.T) {
	in := baseInput()
	in.OriginalTags = []string{}
	existing := &note.Meta{Tags: []string{"old"}}
	got := Merge(existing, in)
	if got.Tags == nil || len(got.Tags) != 0 {
		t.Fatalf("Tags = %#v, want explicit empty list", got.Tags)
	}
}

func TestMerge_TagsFallBackToOutgoingResolvedSet(t *testing.T) {
	in := baseInput()
	in.OutgoingTagNames = []string{"go", "editors"}
	got := Merge(&note.Meta{}, in)
	if !reflect.DeepEqual(got.Tags, []string{"go", "editors"}) {
		t.Fatalf("Tags = %v", got.Tags)
	}
}

func TestMerge_TagsPreservedWithoutInput(t *testing.T) {
	existing := &note.Meta{Tags: []string{"keep"}}
	got := Merge(existing, baseInput())
	if !reflect.DeepEqual(got.Tags, []string{"keep"}) {
		t.Fatalf("Tags = %v", got.Tags)
	}
}

func TestMerge_TitleNotStampedWhenDefault(t *testing.T) {
	in := baseInput()
	in.Outgoing.Title = "my-note" // equals the note's own title
	got := Merge(&note.Meta{}, in)
	if got.Title != "" {
		t.Fatalf("Title = %q, want unset", got.Title)
	}
}

func TestMerge_TitleAdoptedWhenDistinct(t *testing.T) {
	got := Merge(&note.Meta{}, baseInput())
	if got.Title != "My Post" {
		t.Fatalf("Title = %q", got.Title)
	}
}

func TestMerge_TitlePreserved(t *testing.T) {
	existing := &note.Meta{Title: "Hand Written"}
	got := Merge(existing, baseInput())
	if got.Title != "Hand Written" {
		t.Fatalf("Title = %q", got.Title)
	}
}

func TestMerge_ExtraKeysCarriedForward(t *testing.T) {
	existing := &note.Meta{Extra: map[string]any{"aliases": []any{"x"}}}
	got := Merge(existing, baseInput())
	if _, ok := got.Extra["aliases"]; !ok {
		t.Fatal("extra key dropped by merge")
	}
}

func TestMerge_OverrideRunsLast(t *testing.T) {
	in := baseInput()
	in.Override = func(m *note.Meta) {
		m.PostType = "page"
	}
	got := Merge(&note.Meta{}, in)
	if got.PostType != "page" {
		t.Fatalf("PostType = %q, want override to win", got.PostType)
	}
}

func TestMerge_DoesNotMutateExisting(t *testing.T) {
	existing := &note.Meta{Tags: []string{"keep"}, Categories: []any{"A"}}
	_ = Merge(existing, baseInput())
	if !reflect.DeepEqual(existing.Categories, []any{"A"}) {
		t.Fatalf("existing mutated: %v", existing.Categories)
	}
}
