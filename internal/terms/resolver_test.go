package terms

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

func fixedLister(ts ...wp.Term) CategoryLister {
	return func(ctx context.Context) ([]wp.Term, error) {
		return ts, nil
	}
}

var siteCategories = fixedLister(
	wp.Term{ID: 1, Name: "Uncategorized"},
	wp.Term{ID: 4, Name: "Tools"},
	wp.Term{ID: 9, Name: "Opinions"},
)

func TestResolveCategoryIDs_CaseInsensitive(t *testing.T) {
	ids, unmatched := ResolveCategoryIDs(context.Background(), []string{"tools", "OPINIONS"}, siteCategories)
	if !reflect.DeepEqual(ids, []int{4, 9}) {
		t.Fatalf("ids = %v", ids)
	}
	if len(unmatched) != 0 {
		t.Fatalf("unmatched = %v", unmatched)
	}
}

func TestResolveCategoryIDs_UnmatchedFallsBackToDefault(t *testing.T) {
	ids, unmatched := ResolveCategoryIDs(context.Background(), []string{"Ghost", "Tools", "Phantom"}, siteCategories)
	if !reflect.DeepEqual(ids, []int{1, 4}) {
		t.Fatalf("ids = %v", ids)
	}
	if !reflect.DeepEqual(unmatched, []string{"Ghost", "Phantom"}) {
		t.Fatalf("unmatched = %v", unmatched)
	}
}

func TestResolveCategoryIDs_Deduplicates(t *testing.T) {
	ids, _ := ResolveCategoryIDs(context.Background(), []string{"Tools", "tools", "Ghost", "Phantom"}, siteCategories)
	if !reflect.DeepEqual(ids, []int{4, 1}) {
		t.Fatalf("ids = %v", ids)
	}
}

func TestResolveCategoryIDs_EmptyInputYieldsDefault(t *testing.T) {
	ids, unmatched := ResolveCategoryIDs(context.Background(), nil, siteCategories)
	if !reflect.DeepEqual(ids, []int{1}) {
		t.Fatalf("ids = %v", ids)
	}
	if len(unmatched) != 0 {
		t.Fatalf("unmatched = %v", unmatched)
	}
}

func TestResolveCategoryIDs_ListerErrorDegrades(t *testing.T) {
	broken := func(ctx context.Context) ([]wp.Term, error) {
		return nil, errors.New("down")
	}
	ids, unmatched := ResolveCategoryIDs(context.Background(), []string{"Tools"}, broken)
	if !reflect.DeepEqual(ids, []int{1}) {
		t.Fatalf("ids = %v", ids)
	}
	if !reflect.DeepEqual(unmatched, []string{"Tools"}) {
		t.Fatalf("unmatched = %v", unmatched)
	}
}

func TestResolveCategoryNames_DropsUnknownIDs(t *testing.T) {
	names, dropped := ResolveCategoryNames(context.Background(), []int{4, 77, 9}, siteCategories)
	if !reflect.DeepEqual(names, []string{"Tools", "Opinions"}) {
		t.Fatalf("names = %v", names)
	}
	if !reflect.DeepEqual(dropped, []int{77}) {
		t.Fatalf("dropped = %v", dropped)
	}
}

func TestResolveCategoryNames_EmptyDegradesToDefault(t *testing.T) {
	names, _ := ResolveCategoryNames(context.Background(), []int{77}, siteCategories)
	if !reflect.DeepEqual(names, []string{"Uncategorized"}) {
		t.Fatalf("names = %v", names)
	}
}

func TestResolveTags_PartialSuccess(t *testing.T) {
	var calls int32
	resolve := func(ctx context.Context, name string) (*wp.Term, error) {
		atomic.AddInt32(&calls, 1)
		if name == "broken" {
			return nil, fmt.Errorf("resolve %s: boom", name)
		}
		return &wp.Term{ID: len(name), Name: name}, nil
	}

	got := ResolveTags(context.Background(), []string{"go", "broken", "editors"}, resolve)
	if !reflect.DeepEqual(got, []wp.Term{{ID: 2, Name: "go"}, {ID: 7, Name: "editors"}}) {
		t.Fatalf("got %v", got)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestResolveTags_EmptyInput(t *testing.T) {
	called := false
	resolve := func(ctx context.Context, name string) (*wp.Term, error) {
		called = true
		return nil, nil
	}
	if got := ResolveTags(context.Background(), nil, resolve); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
	if called {
		t.Fatal("resolver called for empty input")
	}
}
