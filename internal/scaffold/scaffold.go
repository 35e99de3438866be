package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ReessKennedy/obsidian-wordpress/internal/ux"
)

var configTemplate = `default-profile: blog

profiles:
  - name: blog
    endpoint: https://blog.example.com
    api: rest
    username: author
    default-post-type: post
    default-status: publish
    default-comments: open
    require-login: true
    replace-media-links: true
`

// Init creates a new .owp/ directory with an example profile config.
func Init(targetDir string) error {
	owpDir := filepath.Join(targetDir, ".owp")
	configPath := filepath.Join(owpDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf(".owp/config.yaml already exists, not overwriting")
	}

	if err := os.MkdirAll(owpDir, 0755); err != nil {
		return fmt.Errorf("creating .owp directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(owpDir, ".gitignore"), []byte("journal.db*\n"), 0644); err != nil {
		return fmt.Errorf("writing .owp/.gitignore: %w", err)
	}

	fmt.Printf("\n  %sCreated:%s\n", ux.Bold, ux.Reset)
	fmt.Printf("    .owp/config.yaml\n")
	fmt.Printf("    .owp/.gitignore\n")
	fmt.Printf("\n  %sEdit .owp/config.yaml with your site's endpoint and username.%s\n", ux.Dim, ux.Reset)
	fmt.Printf("\n  Next: %sowp publish <note.md>%s\n\n", ux.Cyan, ux.Reset)
	return nil
}
