package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

func seed() ParamsSeed {
	return ParamsSeed{
		Categories: []wp.Term{
			{ID: 1, Name: "Uncategorized"},
			{ID: 4, Name: "Tools"},
			{ID: 9, Name: "Opinions"},
		},
		PostTypes:       []wp.PostType{{Slug: "post"}, {Slug: "page"}},
		SeedCategories:  []string{"Uncategorized"},
		DefaultPostType: "post",
	}
}

func terminal(input string) *Terminal {
	return &Terminal{In: strings.NewReader(input), Out: &bytes.Buffer{}}
}

func TestCollectParams_NumbersAndConfirm(t *testing.T) {
	// categories 2,3 then post type 2, then confirm
	tm := terminal("2, 3\n2\ny\n")
	choice, ok, err := tm.CollectParams(context.Background(), seed())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected confirmation")
	}
	if len(choice.CategoryNames) != 2 || choice.CategoryNames[0] != "Tools" || choice.CategoryNames[1] != "Opinions" {
		t.Fatalf("CategoryNames = %v", choice.CategoryNames)
	}
	if choice.PostType != "page" {
		t.Fatalf("PostType = %q", choice.PostType)
	}
}

func TestCollectParams_LiteralNamesPassThrough(t *testing.T) {
	tm := terminal("Tools, Brand New\n\ny\n")
	choice, ok, err := tm.CollectParams(context.Background(), seed())
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if len(choice.CategoryNames) != 2 || choice.CategoryNames[1] != "Brand New" {
		t.Fatalf("CategoryNames = %v", choice.CategoryNames)
	}
	if choice.PostType != "post" {
		t.Fatalf("PostType = %q, want default kept", choice.PostType)
	}
}

func TestCollectParams_EmptyKeepsSeed(t *testing.T) {
	tm := terminal("\n\ny\n")
	choice, ok, err := tm.CollectParams(context.Background(), seed())
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if len(choice.CategoryNames) != 1 || choice.CategoryNames[0] != "Uncategorized" {
		t.Fatalf("CategoryNames = %v", choice.CategoryNames)
	}
}

func TestCollectParams_QuitCancels(t *testing.T) {
	for _, input := range []string{"q\n", "quit\n", "2\nq\n"} {
		tm := terminal(input)
		_, ok, err := tm.CollectParams(context.Background(), seed())
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatalf("input %q should cancel", input)
		}
	}
}

func TestCollectParams_DeclinedConfirmationCancels(t *testing.T) {
	tm := terminal("2\n\nn\n")
	_, ok, err := tm.CollectParams(context.Background(), seed())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("declined confirmation should cancel")
	}
}

func TestCredentials(t *testing.T) {
	tm := terminal("author\nsecret\n")
	auth, ok, err := tm.Credentials(context.Background(), "")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if auth.Username != "author" || auth.Password != "secret" {
		t.Fatalf("auth = %+v", auth)
	}
}

func TestCredentials_EmptyAcceptsSuggestedUsername(t *testing.T) {
	tm := terminal("\nsecret\n")
	auth, ok, err := tm.Credentials(context.Background(), "author")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if auth.Username != "author" {
		t.Fatalf("Username = %q", auth.Username)
	}
}

func TestCredentials_EmptyUsernameAborts(t *testing.T) {
	tm := terminal("\n")
	_, ok, err := tm.Credentials(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("empty username should abort")
	}
}

func TestReadLineHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tm := &Terminal{In: blockingReader{}, Out: &bytes.Buffer{}}

	done := make(chan error, 1)
	go func() {
		_, _, err := tm.Credentials(ctx, "")
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("err = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("prompt did not unblock on cancellation")
	}
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {}
}
