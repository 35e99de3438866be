package note

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Front-matter keys owned by the publisher. Everything else in the block
// is preserved verbatim under Meta.Extra.
const (
	keyRemoteURL = "remote_url"
	keyProfile   = "profile_name"
	keyPostType  = "post_type"
	keyCats      = "categories"
	keyTags      = "tags"
	keyTitle     = "title"
)

// Meta is a note's persisted publish metadata. A non-empty RemoteURL means
// the note has a remote counterpart and subsequent publishes are updates.
type Meta struct {
	RemoteURL string
	Profile   string
	PostType  string

	// Categories is the raw taxonomy selection: either names (current
	// form) or numeric IDs (accepted legacy input). Inspect it through
	// terms.ParseSelection rather than directly.
	Categories []any

	// Tags distinguishes unset (nil) from explicitly empty (non-nil,
	// zero length).
	Tags []string

	Title string

	// Extra holds front-matter keys the publisher does not own.
	Extra map[string]any
}

// Clone returns a deep copy.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	cp := *m
	if m.Categories != nil {
		cp.Categories = append([]any(nil), m.Categories...)
	}
	if m.Tags != nil {
		cp.Tags = append([]string(nil), m.Tags...)
	}
	if m.Extra != nil {
		cp.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

func parseMeta(fm string) (*Meta, error) {
	raw := make(map[string]any)
	if err := yaml.Unmarshal([]byte(fm), &raw); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}

	m := &Meta{}
	for key, val := range raw {
		switch key {
		case keyRemoteURL:
			m.RemoteURL, _ = val.(string)
		case keyProfile:
			m.Profile, _ = val.(string)
		case keyPostType:
			m.PostType, _ = val.(string)
		case keyCats:
			if list, ok := val.([]any); ok {
				m.Categories = list
			}
		case keyTags:
			m.Tags = []string{}
			if list, ok := val.([]any); ok {
				for _, v := range list {
					if s, ok := v.(string); ok {
						m.Tags = append(m.Tags, s)
					}
				}
			}
		case keyTitle:
			m.Title, _ = val.(string)
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = val
		}
	}
	return m, nil
}

// renderMeta serializes the block with publisher-owned keys first in a
// stable order, then extra keys sorted. Returns the full delimited block
// including trailing newline, or "" when there is nothing to write.
func renderMeta(m *Meta) (string, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, val any) error {
		v := &yaml.Node{}
		if err := v.Encode(val); err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		k := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
		doc.Content = append(doc.Content, k, v)
		return nil
	}

	if m.Title != "" {
		if err := add(keyTitle, m.Title); err != nil {
			return "", err
		}
	}
	if m.RemoteURL != "" {
		if err := add(keyRemoteURL, m.RemoteURL); err != nil {
			return "", err
		}
	}
	if m.Profile != "" {
		if err := add(keyProfile, m.Profile); err != nil {
			return "", err
		}
	}
	if m.PostType != "" {
		if err := add(keyPostType, m.PostType); err != nil {
			return "", err
		}
	}
	if m.Categories != nil {
		if err := add(keyCats, m.Categories); err != nil {
			return "", err
		}
	}
	if m.Tags != nil {
		if err := add(keyTags, m.Tags); err != nil {
			return "", err
		}
	}

	extraKeys := make([]string, 0, len(m.Extra))
	for k := range m.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		if err := add(k, m.Extra[k]); err != nil {
			return "", err
		}
	}

	if len(doc.Content) == 0 {
		return "", nil
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return "---\n" + string(out) + "---\n", nil
}
