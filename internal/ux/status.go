package ux

import (
	"fmt"
	"strings"

	"github.com/ReessKennedy/obsidian-wordpress/internal/note"
	"github.com/ReessKennedy/obsidian-wordpress/internal/terms"
)

// RenderStatus prints a note's publish relationship without touching the
// network.
func RenderStatus(n *note.Note) {
	fmt.Printf("\n%s%s%s\n\n", Bold, n.Title, Reset)

	if n.Meta == nil || n.Meta.RemoteURL == "" {
		fmt.Printf("  %snever published%s\n\n", Dim, Reset)
		return
	}
	m := n.Meta

	row := func(label, value string) {
		if value != "" {
			fmt.Printf("  %s%-12s%s %s\n", Cyan, label, Reset, value)
		}
	}
	row("remote", m.RemoteURL)
	row("profile", m.Profile)
	row("post type", m.PostType)
	if m.Title != "" {
		row("title", m.Title)
	}

	sel := terms.ParseSelection(m.Categories)
	switch sel.Kind {
	case terms.ByName:
		row("categories", strings.Join(sel.Names, ", "))
	case terms.ByID:
		ids := make([]string, len(sel.IDs))
		for i, id := range sel.IDs {
			ids[i] = fmt.Sprintf("%d", id)
		}
		row("categories", strings.Join(ids, ", ")+" (legacy IDs)")
	}

	if m.Tags != nil {
		row("tags", strings.Join(m.Tags, ", "))
	}
	fmt.Println()
}
