package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ReessKennedy/obsidian-wordpress/internal/docs"
	"github.com/ReessKennedy/obsidian-wordpress/internal/journal"
	"github.com/ReessKennedy/obsidian-wordpress/internal/note"
	"github.com/ReessKennedy/obsidian-wordpress/internal/profile"
	"github.com/ReessKennedy/obsidian-wordpress/internal/prompt"
	"github.com/ReessKennedy/obsidian-wordpress/internal/publish"
	"github.com/ReessKennedy/obsidian-wordpress/internal/scaffold"
	"github.com/ReessKennedy/obsidian-wordpress/internal/ux"
	"github.com/ReessKennedy/obsidian-wordpress/internal/wp"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:        "owp",
		Usage:       "Publish vault notes to WordPress",
		Description: "Run 'owp docs' for documentation on front matter, profiles, and publishing.",
		Commands: []*cli.Command{
			initCmd(),
			publishCmd(),
			statusCmd(),
			historyCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func publishCmd() *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "Publish a note to the remote site",
		ArgsUsage: "<note.md>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "profile", Usage: "Profile name (default from config)"},
			&cli.StringSliceFlag{Name: "category", Usage: "Category name; repeatable, skips interactive selection"},
			&cli.StringFlag{Name: "type", Usage: "Post type; skips interactive selection"},
			&cli.BoolFlag{Name: "no-browser", Usage: "Never offer to open the published post"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			notePath := cmd.Args().First()
			if notePath == "" {
				return fmt.Errorf("note argument is required")
			}
			notePath, err := filepath.Abs(notePath)
			if err != nil {
				return err
			}

			vaultRoot, err := findVaultRoot()
			if err != nil {
				return err
			}
			configPath := filepath.Join(vaultRoot, ".owp", "config.yaml")
			cfg, err := profile.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			prof, err := cfg.Get(cmd.String("profile"))
			if err != nil {
				return err
			}

			client, err := wp.NewClient(prof.API, prof.Endpoint)
			if err != nil {
				return fmt.Errorf("profile %q: %w", prof.Name, err)
			}

			p := &publish.Publisher{
				Client:     client,
				Vault:      note.Store{},
				Prompts:    &prompt.Terminal{},
				Notify:     &ux.Terminal{},
				Config:     cfg,
				ConfigPath: configPath,
				Auth: wp.Auth{
					Username: envOr("OWP_USERNAME", prof.Username),
					Password: os.Getenv("OWP_PASSWORD"),
				},
			}
			if !cmd.Bool("no-browser") {
				p.OpenURL = openBrowser
			}

			// Journal is best-effort; publish proceeds without it.
			if j, err := journal.Open(filepath.Join(vaultRoot, ".owp", "journal.db")); err == nil {
				defer j.Close()
				p.Recorder = j
			}

			var preset *prompt.ParamsChoice
			if cats := cmd.StringSlice("category"); len(cats) > 0 || cmd.String("type") != "" {
				preset = &prompt.ParamsChoice{CategoryNames: cats, PostType: cmd.String("type")}
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			return p.Publish(ctx, publish.Options{
				NotePath: notePath,
				Profile:  cmd.String("profile"),
				Preset:   preset,
			})
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Show a note's publish relationship",
		ArgsUsage: "<note.md>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			notePath := cmd.Args().First()
			if notePath == "" {
				return fmt.Errorf("note argument is required")
			}
			n, err := note.Read(notePath)
			if err != nil {
				return err
			}
			ux.RenderStatus(n)
			return nil
		},
	}
}

func historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent publish attempts",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum attempts to show"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			vaultRoot, err := findVaultRoot()
			if err != nil {
				return err
			}
			j, err := journal.Open(filepath.Join(vaultRoot, ".owp", "journal.db"))
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer j.Close()

			attempts, err := j.Recent(int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			if len(attempts) == 0 {
				fmt.Println("no publish attempts recorded")
				return nil
			}
			for _, a := range attempts {
				mark := ux.Green + "✓" + ux.Reset
				detail := a.PostURL
				if a.Status != journal.StatusOK {
					mark = ux.Red + "✗" + ux.Reset
					detail = a.Error
				}
				fmt.Printf("  %s %s  %-6s %-10s %s  %s\n",
					mark, a.StartedAt.Local().Format("2006-01-02 15:04"),
					a.Kind, a.Profile, filepath.Base(a.NotePath), detail)
			}
			return nil
		},
	}
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize a .owp/ directory with an example config",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-14s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'owp docs <topic>' to read a topic.")
				return nil
			}
			t, ok := docs.Get(name)
			if !ok {
				return fmt.Errorf("unknown topic %q, run 'owp docs' to list available topics", name)
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}

// findVaultRoot walks up from cwd looking for .owp/config.yaml.
func findVaultRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, ".owp", "config.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no .owp/config.yaml found (searched from cwd to root; run 'owp init')")
		}
		dir = parent
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
