package terms

import (
	"context"
	"strings"
	"sync"

	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

// CategoryLister fetches the remote category list. The resolver calls it
// at most once per resolution and never caches across attempts.
type CategoryLister func(ctx context.Context) ([]wp.Term, error)

// TagResolver resolves a single tag name to a remote term, creating it on
// the backend if needed.
type TagResolver func(ctx context.Context, name string) (*wp.Term, error)

// ResolveCategoryIDs maps category names to remote IDs by case-insensitive
// match against the full remote list. Names with no match fall back to the
// default category and are returned in unmatched so the caller can surface
// one batched warning. The result is de-duplicated and never empty; the
// whole operation degrades to defaults rather than failing.
func ResolveCategoryIDs(ctx context.Context, names []string, list CategoryLister) (ids []int, unmatched []string) {
	remote, err := list(ctx)
	if err != nil {
		remote = nil
	}

	seen := make(map[int]bool)
	for _, name := range names {
		id, ok := findByName(remote, name)
		if !ok {
			unmatched = append(unmatched, name)
			id = wp.DefaultCategoryID
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = []int{wp.DefaultCategoryID}
	}
	return ids, unmatched
}

// ResolveCategoryNames is the inverse mapping. IDs with no remote match
// are dropped (not defaulted) and returned in dropped. An empty result
// degrades to the default category name.
func ResolveCategoryNames(ctx context.Context, ids []int, list CategoryLister) (names []string, dropped []int) {
	remote, err := list(ctx)
	if err != nil {
		remote = nil
	}

	seen := make(map[string]bool)
	for _, id := range ids {
		name, ok := findByID(remote, id)
		if !ok {
			dropped = append(dropped, id)
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = []string{wp.DefaultCategoryName}
	}
	return names, dropped
}

// ResolveTags issues one resolve-or-create call per name, concurrently,
// and collects only the successful outcomes in input order. A failed
// individual resolution is dropped from the result rather than failing
// the batch.
func ResolveTags(ctx context.Context, names []string, resolve TagResolver) []wp.Term {
	if len(names) == 0 {
		return nil
	}

	results := make([]*wp.Term, len(names))
	var wg sync.WaitGroup
	wg.Add(len(names))
	for i, name := range names {
		go func(i int, name string) {
			defer wg.Done()
			term, err := resolve(ctx, name)
			if err == nil && term != nil {
				results[i] = term
			}
		}(i, name)
	}
	wg.Wait()

	var out []wp.Term
	for _, t := range results {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out
}

func findByName(remote []wp.Term, name string) (int, bool) {
	for _, t := range remote {
		if strings.EqualFold(t.Name, name) {
			return t.ID, true
		}
	}
	return 0, false
}

func findByID(remote []wp.Term, id int) (string, bool) {
	for _, t := range remote {
		if t.ID == id {
			return t.Name, true
		}
	}
	return "", false
}
