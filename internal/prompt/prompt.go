package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

// ParamsSeed is what the parameter-collection step starts from: the
// remote taxonomy plus the resolved default selection.
type ParamsSeed struct {
	Categories      []wp.Term     // full remote category list
	PostTypes       []wp.PostType // available content types
	SeedCategories  []string      // default selection, names
	DefaultPostType string
}

// ParamsChoice is a confirmed parameter selection.
type ParamsChoice struct {
	CategoryNames []string
	PostType      string
}

// Terminal collects input interactively from a reader (stdin by default).
// Every method waits indefinitely for user action; cancellation comes
// only from the context or an explicit quit.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stdout
}

// readLine reads one line, honoring context cancellation during the
// blocking read.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if t.reader == nil {
		in := t.In
		if in == nil {
			in = os.Stdin
		}
		t.reader = bufio.NewReader(in)
	}

	type readResult struct {
		line string
		err  error
	}
	ch := make(chan readResult, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		ch <- readResult{line: strings.TrimSpace(line), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", r.err
		}
		return r.line, nil
	}
}

// Credentials prompts for a username and password. The suggested username
// is offered as the default. Returns ok=false when the user aborts with
// an empty username.
func (t *Terminal) Credentials(ctx context.Context, username string) (wp.Auth, bool, error) {
	if username != "" {
		fmt.Fprintf(t.out(), "  Username [%s]: ", username)
	} else {
		fmt.Fprintf(t.out(), "  Username: ")
	}
	user, err := t.readLine(ctx)
	if err != nil {
		return wp.Auth{}, false, err
	}
	if user == "" {
		user = username
	}
	if user == "" {
		return wp.Auth{}, false, nil
	}

	fmt.Fprintf(t.out(), "  Password: ")
	pass, err := t.readLine(ctx)
	if err != nil {
		return wp.Auth{}, false, err
	}
	if pass == "" {
		return wp.Auth{}, false, nil
	}
	return wp.Auth{Username: user, Password: pass}, true, nil
}

// CollectParams runs the interactive category/type selection, seeded with
// resolved defaults, and waits for confirmation. Returns ok=false on
// cancellation ("q").
func (t *Terminal) CollectParams(ctx context.Context, seed ParamsSeed) (ParamsChoice, bool, error) {
	choice := ParamsChoice{
		CategoryNames: seed.SeedCategories,
		PostType:      seed.DefaultPostType,
	}

	fmt.Fprintf(t.out(), "\n  Categories:\n")
	for i, c := range seed.Categories {
		fmt.Fprintf(t.out(), "    %d. %s\n", i+1, c.Name)
	}
	fmt.Fprintf(t.out(), "  Select (comma-separated numbers, empty keeps %v, q cancels): ", choice.CategoryNames)

	line, err := t.readLine(ctx)
	if err != nil {
		return ParamsChoice{}, false, err
	}
	if isQuit(line) {
		return ParamsChoice{}, false, nil
	}
	if line != "" {
		var names []string
		for _, part := range strings.Split(line, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if idx, err := strconv.Atoi(part); err == nil && idx >= 1 && idx <= len(seed.Categories) {
				names = append(names, seed.Categories[idx-1].Name)
			} else {
				names = append(names, part)
			}
		}
		if len(names) > 0 {
			choice.CategoryNames = names
		}
	}

	if len(seed.PostTypes) > 0 {
		fmt.Fprintf(t.out(), "\n  Post types:\n")
		for i, pt := range seed.PostTypes {
			fmt.Fprintf(t.out(), "    %d. %s\n", i+1, pt.Slug)
		}
		fmt.Fprintf(t.out(), "  Select (empty keeps %q, q cancels): ", choice.PostType)

		line, err = t.readLine(ctx)
		if err != nil {
			return ParamsChoice{}, false, err
		}
		if isQuit(line) {
			return ParamsChoice{}, false, nil
		}
		if line != "" {
			if idx, err := strconv.Atoi(line); err == nil && idx >= 1 && idx <= len(seed.PostTypes) {
				choice.PostType = seed.PostTypes[idx-1].Slug
			} else {
				choice.PostType = line
			}
		}
	}

	ok, err := t.Confirm(ctx, fmt.Sprintf("Publish with categories %v as %q?", choice.CategoryNames, choice.PostType))
	if err != nil || !ok {
		return ParamsChoice{}, false, err
	}
	return choice, true, nil
}

// Confirm asks a yes/no question. Anything other than y/yes declines.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	fmt.Fprintf(t.out(), "\n  %s [y/N]: ", message)
	line, err := t.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(line) {
	case "q", "quit", "cancel":
		return true
	}
	return false
}
