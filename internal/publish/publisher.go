// Package publish drives the reconciliation state machine between a
// vault note and its remote counterpart: authenticate, classify
// create-vs-update, resolve terms, relay media, call the backend, and
// merge the result back into the note's metadata.
package publish

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ReessKennedy/obsidian-wordpress/internal/journal"
	"github.com/ReessKennedy/obsidian-wordpress/internal/media"
	"github.com/ReessKennedy/obsidian-wordpress/internal/note"
	"github.com/ReessKennedy/obsidian-wordpress/internal/profile"
	"github.com/ReessKennedy/obsidian-wordpress/internal/prompt"
	"github.com/ReessKennedy/obsidian-wordpress/internal/terms"
	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
)

// ErrInProgress is returned when a second publish is attempted while one
// is in flight. The failing attempt mutates nothing.
var ErrInProgress = errors.New("publish already in progress")

// Notifier surfaces user-visible messages. Tests substitute a recorder.
type Notifier interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Successf(format string, args ...any)
}

// Prompts are the interactive suspension points. Each blocks until user
// action or context cancellation; ok=false means the user cancelled.
type Prompts interface {
	Credentials(ctx context.Context, username string) (wp.Auth, bool, error)
	CollectParams(ctx context.Context, seed prompt.ParamsSeed) (prompt.ParamsChoice, bool, error)
	Confirm(ctx context.Context, message string) (bool, error)
}

// Vault is the document store the publisher reads from and writes back
// to.
type Vault interface {
	Read(path string) (*note.Note, error)
	UpdateMeta(path string, fn func(*note.Meta)) error
	WriteBody(path string, body string) error
}

// Recorder persists attempt history. Best-effort; errors are ignored.
type Recorder interface {
	Record(a journal.Attempt) error
}

// Publisher owns one publish pipeline. Attempts are serialized
// process-wide: the single-slot semaphore admits at most one attempt
// regardless of which note it targets.
type Publisher struct {
	Client  wp.Client
	Vault   Vault
	Prompts Prompts
	Notify  Notifier
	Config  *profile.Config

	// ConfigPath, when set, lets the publisher persist remembered
	// category selections after a success.
	ConfigPath string

	// Recorder, when set, journals attempt outcomes.
	Recorder Recorder

	// Auth holds stored credentials; may be zero, in which case the
	// credential prompt runs when the profile requires login.
	Auth wp.Auth

	// OpenURL, when set, is offered after a success ("open in browser").
	OpenURL func(url string) error

	lockOnce sync.Once
	slot     chan struct{}
}

// Options configures one attempt.
type Options struct {
	NotePath string
	Profile  string // empty selects the config's default profile

	// Preset, when set, supplies parameters up front (programmatic
	// re-publish) and skips the interactive collection step.
	Preset *prompt.ParamsChoice
}

func (p *Publisher) acquire() bool {
	p.lockOnce.Do(func() { p.slot = make(chan struct{}, 1) })
	select {
	case p.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

func (p *Publisher) release() { <-p.slot }

// Publish runs one end-to-end attempt for the note at opts.NotePath.
// A user cancellation at any interactive step returns nil with no remote
// call made and no metadata changed. Warnings for contained per-item
// failures go through the Notifier; fatal conditions are returned as the
// error.
func (p *Publisher) Publish(ctx context.Context, opts Options) error {
	if !p.acquire() {
		return ErrInProgress
	}
	defer p.release()

	nt, err := p.Vault.Read(opts.NotePath)
	if err != nil {
		return fmt.Errorf("no publishable document: %w", err)
	}
	meta := nt.Meta
	if meta == nil {
		meta = &note.Meta{}
	}

	prof, err := p.Config.Get(opts.Profile)
	if err != nil {
		return err
	}
	if meta.Profile != "" && meta.Profile != prof.Name {
		ok, err := p.Prompts.Confirm(ctx, fmt.Sprintf(
			"This note was last published with profile %q; continue with %q?", meta.Profile, prof.Name))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	auth, err := p.authenticate(ctx, prof)
	if err != nil {
		return err
	}

	// Remote terms are fetched at most once per attempt and never cached
	// beyond it.
	var (
		catList    []wp.Term
		catErr     error
		catsLoaded bool
	)
	listCats := func(ctx context.Context) ([]wp.Term, error) {
		if !catsLoaded {
			catList, catErr = p.Client.ListCategories(ctx, auth)
			catsLoaded = true
		}
		return catList, catErr
	}

	isUpdate := meta.RemoteURL != ""
	kind := journal.KindCreate
	if isUpdate {
		kind = journal.KindUpdate
	}
	started := time.Now()
	warnings := 0
	warnf := func(format string, args ...any) {
		warnings++
		p.Notify.Warnf(format, args...)
	}

	// Classify and gather the category selection for this attempt.
	catNames, postType, cancelled, err := p.gatherParams(ctx, nt, meta, prof, opts, isUpdate, auth, listCats)
	if err != nil {
		return err
	}
	if cancelled {
		return nil
	}

	// Resolving terms. Category names degrade to defaults; the batched
	// warning lists every unmatched name at once.
	catIDs, unmatched := terms.ResolveCategoryIDs(ctx, catNames, listCats)
	if len(unmatched) > 0 {
		warnf("categories not found on %s, substituting %q: %s",
			prof.Name, wp.DefaultCategoryName, strings.Join(unmatched, ", "))
	}
	newCatNames, dropped := terms.ResolveCategoryNames(ctx, catIDs, listCats)
	if len(dropped) > 0 {
		p.Notify.Infof("dropping unknown category IDs: %v", dropped)
	}
	// With no remote list there are no real names to store; signal the
	// merge to fall back to the raw outgoing IDs instead.
	if catErr != nil {
		newCatNames = nil
	}

	// Tags: nil means the note never declared any, and the merge must
	// leave the field alone rather than persist an explicit empty list.
	originalTags := meta.Tags
	resolvedTags := terms.ResolveTags(ctx, originalTags, func(ctx context.Context, name string) (*wp.Term, error) {
		return p.Client.ResolveTag(ctx, name, auth)
	})
	var tagIDs []int
	var tagNames []string
	if originalTags != nil {
		tagIDs = make([]int, 0, len(resolvedTags))
		tagNames = make([]string, 0, len(resolvedTags))
		for _, t := range resolvedTags {
			tagIDs = append(tagIDs, t.ID)
			tagNames = append(tagNames, t.Name)
		}
	}

	// Relaying media. The remote call consumes the rewritten body.
	body, mediaWarnings := media.Relay(ctx, nt.Body,
		media.DirResolver(filepath.Dir(nt.Path)),
		func(ctx context.Context, file wp.MediaFile) (*wp.MediaResult, error) {
			return p.Client.UploadMedia(ctx, file, auth)
		})
	for _, w := range mediaWarnings {
		warnf("%s", w)
	}
	if prof.ReplaceMediaLinks && body != nt.Body {
		if err := p.Vault.WriteBody(nt.Path, body); err != nil {
			warnf("could not rewrite media links in %s: %v", filepath.Base(nt.Path), err)
		}
	}

	title := meta.Title
	if title == "" {
		title = nt.Title
	}
	params := wp.PostParams{
		Title:       title,
		Body:        body,
		Status:      wp.PostStatus(prof.DefaultStatus),
		Comments:    wp.CommentPolicy(prof.DefaultComments),
		PostType:    postType,
		CategoryIDs: catIDs,
		TagIDs:      tagIDs,
		Profile:     prof.Name,
		PostURL:     meta.RemoteURL,
	}

	result, err := p.Client.PublishPost(ctx, params, auth)
	if err != nil {
		p.record(journal.Attempt{
			NotePath: nt.Path, Profile: prof.Name, Kind: kind,
			Status: journal.StatusFailed, Warnings: warnings,
			Error: err.Error(), StartedAt: started, Duration: time.Since(started),
		})
		var wpErr *wp.Error
		if errors.As(err, &wpErr) {
			return fmt.Errorf("server rejected %q: %w", title, wpErr)
		}
		return fmt.Errorf("publishing %q: %w", title, err)
	}

	// Merging. Persisted before any post-success side effects; the
	// policy runs against the freshly re-read block so a concurrent edit
	// of other fields is not lost.
	in := MergeInput{
		ProfileName:         prof.Name,
		Endpoint:            prof.Endpoint,
		Outgoing:            params,
		Result:              result,
		NewCategoryNames:    newCatNames,
		AttemptedCategories: true,
		OriginalTags:        originalTags,
		OutgoingTagNames:    tagNames,
		NoteTitle:           nt.Title,
	}
	if err := p.Vault.UpdateMeta(nt.Path, func(m *note.Meta) {
		*m = *Merge(m, in)
	}); err != nil {
		return fmt.Errorf("saving publish metadata: %w", err)
	}

	p.finish(ctx, nt, prof, kind, newCatNames, result, warnings, started)
	return nil
}

// authenticate validates stored credentials, falling back to interactive
// collection when they are missing or rejected.
func (p *Publisher) authenticate(ctx context.Context, prof *profile.Profile) (wp.Auth, error) {
	auth := p.Auth
	if auth.Empty() {
		if !prof.RequireLogin {
			return auth, nil
		}
		return p.collectCredentials(ctx, prof)
	}

	ok, err := p.Client.ValidateCredentials(ctx, auth)
	if err != nil {
		return wp.Auth{}, fmt.Errorf("validating credentials: %w", err)
	}
	if ok {
		return auth, nil
	}
	p.Notify.Infof("stored credentials for %s were rejected, please log in again", prof.Name)
	return p.collectCredentials(ctx, prof)
}

func (p *Publisher) collectCredentials(ctx context.Context, prof *profile.Profile) (wp.Auth, error) {
	auth, ok, err := p.Prompts.Credentials(ctx, prof.Username)
	if err != nil {
		return wp.Auth{}, err
	}
	if !ok {
		return wp.Auth{}, fmt.Errorf("authentication required for profile %q", prof.Name)
	}
	valid, err := p.Client.ValidateCredentials(ctx, auth)
	if err != nil {
		return wp.Auth{}, fmt.Errorf("validating credentials: %w", err)
	}
	if !valid {
		return wp.Auth{}, fmt.Errorf("credentials rejected by %s", prof.Endpoint)
	}
	return auth, nil
}

// gatherParams decides the category names and post type for this attempt.
// Updates read them from metadata; creates either take pre-supplied
// parameters or open the interactive collection step seeded with
// resolved defaults. cancelled is true when the user backed out.
func (p *Publisher) gatherParams(
	ctx context.Context,
	nt *note.Note,
	meta *note.Meta,
	prof *profile.Profile,
	opts Options,
	isUpdate bool,
	auth wp.Auth,
	listCats terms.CategoryLister,
) (catNames []string, postType string, cancelled bool, err error) {
	postType = meta.PostType
	if postType == "" {
		postType = prof.DefaultPostType
	}

	seedNames := p.seedCategories(ctx, meta, prof, listCats)

	if isUpdate {
		return seedNames, postType, false, nil
	}

	if opts.Preset != nil {
		names := opts.Preset.CategoryNames
		if len(names) == 0 {
			names = seedNames
		}
		if opts.Preset.PostType != "" {
			postType = opts.Preset.PostType
		}
		return names, postType, false, nil
	}

	cats, _ := listCats(ctx)
	types, err := p.Client.ListPostTypes(ctx, auth)
	if err != nil {
		p.Notify.Warnf("could not list post types: %v", err)
		types = []wp.PostType{{Slug: postType}}
	}

	choice, ok, err := p.Prompts.CollectParams(ctx, prompt.ParamsSeed{
		Categories:      cats,
		PostTypes:       types,
		SeedCategories:  seedNames,
		DefaultPostType: postType,
	})
	if err != nil {
		return nil, "", false, err
	}
	if !ok {
		return nil, "", true, nil
	}
	if choice.PostType != "" {
		postType = choice.PostType
	}
	return choice.CategoryNames, postType, false, nil
}

// seedCategories resolves the default category selection: the note's own
// stored selection converted to names, then the profile's remembered
// last-used selection, then the system default.
func (p *Publisher) seedCategories(ctx context.Context, meta *note.Meta, prof *profile.Profile, listCats terms.CategoryLister) []string {
	sel := terms.ParseSelection(meta.Categories)
	switch sel.Kind {
	case terms.ByName:
		return sel.Names
	case terms.ByID:
		names, dropped := terms.ResolveCategoryNames(ctx, sel.IDs, listCats)
		if len(dropped) > 0 {
			p.Notify.Infof("dropping unknown category IDs: %v", dropped)
		}
		return names
	}
	if len(prof.LastCategories) > 0 {
		return prof.LastCategories
	}
	return []string{wp.DefaultCategoryName}
}

// finish runs the best-effort post-success side effects: remember the
// selection, journal the attempt, offer the browser, announce success.
// None of them can fail the attempt.
func (p *Publisher) finish(ctx context.Context, nt *note.Note, prof *profile.Profile, kind string, catNames []string, result *wp.PostResult, warnings int, started time.Time) {
	if p.ConfigPath != "" && len(catNames) > 0 {
		prof.LastCategories = append([]string(nil), catNames...)
		if err := profile.Save(p.ConfigPath, p.Config); err != nil {
			p.Notify.Warnf("could not remember category selection: %v", err)
		}
	}

	url := result.URL
	p.record(journal.Attempt{
		NotePath: nt.Path, Profile: prof.Name, Kind: kind,
		Status: journal.StatusOK, PostURL: url, Warnings: warnings,
		StartedAt: started, Duration: time.Since(started),
	})

	p.Notify.Successf("published %q to %s", nt.Title, prof.Name)

	if p.OpenURL != nil && url != "" {
		if ok, err := p.Prompts.Confirm(ctx, fmt.Sprintf("Open %s in your browser?", url)); err == nil && ok {
			if err := p.OpenURL(url); err != nil {
				p.Notify.Warnf("could not open browser: %v", err)
			}
		}
	}
}

func (p *Publisher) record(a journal.Attempt) {
	if p.Recorder == nil {
		return
	}
	_ = p.Recorder.Record(a)
}
