package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/asismo/idea-management-mvp/internal/app"
	"github.com/asismo/idea-management-mvp/internal/config"
	"github.com/asismo/idea-management-mvp/internal/devserver"
	"github.com/asismo/idea-management-mvp/internal/errors"
	"github.com/asismo/idea-management-mvp/internal/export"
	"github.com/asismo/idea-management-mvp/internal/idea"
	"github.com/asismo/idea-management-mvp/internal/store"
	"github.com/asismo/idea-management-mvp/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, log zerolog.Logger) *cli.App {
	app := &cli.App{
		Name:    "ideas",
		Usage:   "Idea capture and organization engine",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(cfg, log),
			listCmd(cfg, log),
			searchCmd(cfg, log),
			updateCmd(cfg, log),
			deleteCmd(cfg, log),
			foldersCmd(cfg, log),
			mergeCmd(cfg, log),
			describeCmd(cfg, log),
			settingsCmd(cfg, log),
			exportCmd(cfg, log),
			webCmd(cfg, log),
			devserverCmd(cfg, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
func captureCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "capture",
		Usage:     "Capture an idea (argument or piped stdin)",
		ArgsUsage: "[content]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Destination folder id (overrides the AI suggestion)"},
		},
		Action: func(c *cli.Context) error {
			content := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if content == "" && stdinHasData() {
				var err error
				content, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			if content == "" {
				return outputError(errors.NewInvalidRequest("content is required (argument or stdin)"))
			}

			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			capture := a.NewCapture()
			capture.SetContent(c.Context, content)
			if folderID := c.String("folder"); folderID != "" {
				capture.SelectFolder(folderID)
			}

			created, err := capture.Submit(c.Context)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(created)
		},
	}
}

// listCmd creates the list command.
func listCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List ideas, most recent first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Only ideas in this folder"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Substring filter over content and tags"},
		},
		Action: func(c *cli.Context) error {
			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			var ideas []idea.Idea
			switch {
			case c.String("folder") != "":
				ideas = a.Ideas.ByFolder(c.String("folder"))
			case c.String("query") != "":
				ideas = a.Ideas.BySubstring(c.String("query"))
			default:
				ideas = a.Ideas.All()
			}
			return outputJSON(map[string]any{"ideas": ideas, "count": len(ideas)})
		},
	}
}

// searchCmd creates the search command.
func searchCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search ideas ranked by relevance",
		ArgsUsage: "<query>",
		Action: func(c *cli.Context) error {
			query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if query == "" {
				return outputError(errors.NewInvalidRequest("query is required"))
			}

			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			matches := a.SearchIdeas(c.Context, query)
			return outputJSON(map[string]any{"matches": matches, "count": len(matches)})
		},
	}
}

// updateCmd creates the update command.
func updateCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an idea's content, tags, or folder",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "content", Usage: "Replacement content"},
			&cli.StringFlag{Name: "tags", Usage: "Replacement comma-separated tags"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Move to this folder id"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("idea id is required"))
			}

			patch := store.IdeaPatch{}
			if content := c.String("content"); content != "" {
				patch.Content = &content
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				patch.Tags = &tags
			}
			if folderID := c.String("folder"); folderID != "" {
				patch.FolderID = &folderID
			}

			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			updated, err := a.UpdateIdea(c.Context, c.Args().First(), patch)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(updated)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete an idea",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("idea id is required"))
			}

			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			id := c.Args().First()
			if err := a.DeleteIdea(c.Context, id); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"deleted": true, "id": id})
		},
	}
}

// foldersCmd creates the folders command.
func foldersCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "folders",
		Usage: "List folders, or create/delete one",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "create", Usage: "Create a folder with this name"},
			&cli.StringFlag{Name: "description", Usage: "Description for --create"},
			&cli.StringFlag{Name: "icon", Usage: "Emoji icon for --create"},
			&cli.StringFlag{Name: "delete", Usage: "Delete the folder with this id"},
		},
		Action: func(c *cli.Context) error {
			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			if name := c.String("create"); name != "" {
				created, err := a.CreateFolder(c.Context, name, c.String("description"), c.String("icon"))
				if err != nil {
					return outputError(err)
				}
				return outputJSON(created)
			}

			if id := c.String("delete"); id != "" {
				if err := a.DeleteFolder(c.Context, id); err != nil {
					return outputError(err)
				}
				return outputJSON(map[string]any{"deleted": true, "id": id})
			}

			type folderView struct {
				idea.Folder
				LiveIdeaCount int `json:"live_idea_count"`
			}
			folders := a.Folders.All()
			views := make([]folderView, len(folders))
			for i, f := range folders {
				views[i] = folderView{Folder: f, LiveIdeaCount: a.FolderIdeaCount(f.ID)}
			}
			return outputJSON(map[string]any{"folders": views, "count": len(views)})
		},
	}
}

// mergeCmd creates the merge command.
func mergeCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "merge",
		Usage: "Merge one folder into another",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Required: true, Usage: "Folder id to merge away"},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Required: true, Usage: "Folder id that absorbs the source"},
		},
		Action: func(c *cli.Context) error {
			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			if err := a.MergeFolders(c.Context, c.String("source"), c.String("target")); err != nil {
				return outputError(err)
			}
			target, _ := a.Folders.Get(c.String("target"))
			return outputJSON(map[string]any{"merged": true, "target": target})
		},
	}
}

// describeCmd creates the describe command.
func describeCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Regenerate a folder's description from its ideas",
		ArgsUsage: "<folder-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("folder id is required"))
			}

			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			updated, err := a.DescribeFolder(c.Context, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(updated)
		},
	}
}

// settingsCmd creates the settings command.
func settingsCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Show or update session settings",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "categorization-mode", Usage: "simple or advanced"},
			&cli.StringFlag{Name: "search-mode", Usage: "simple or advanced"},
			&cli.StringFlag{Name: "theme", Usage: "UI theme preference"},
			&cli.BoolFlag{Name: "auto-update-descriptions", Usage: "Regenerate folder descriptions after each capture"},
			&cli.BoolFlag{Name: "onboarding-completed", Usage: "Mark onboarding as done"},
		},
		Action: func(c *cli.Context) error {
			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			patch := store.SettingsPatch{}
			touched := false
			if c.IsSet("categorization-mode") {
				m := idea.Mode(c.String("categorization-mode"))
				if !idea.ValidMode(m) {
					return outputError(errors.NewInvalidRequest("invalid categorization-mode"))
				}
				patch.CategorizationMode = &m
				touched = true
			}
			if c.IsSet("search-mode") {
				m := idea.Mode(c.String("search-mode"))
				if !idea.ValidMode(m) {
					return outputError(errors.NewInvalidRequest("invalid search-mode"))
				}
				patch.SearchMode = &m
				touched = true
			}
			if c.IsSet("theme") {
				theme := c.String("theme")
				patch.Theme = &theme
				touched = true
			}
			if c.IsSet("auto-update-descriptions") {
				v := c.Bool("auto-update-descriptions")
				patch.AutoUpdateDescriptions = &v
				touched = true
			}
			if c.IsSet("onboarding-completed") {
				v := c.Bool("onboarding-completed")
				patch.OnboardingCompleted = &v
				touched = true
			}

			if touched {
				if err := a.UpdateSettings(c.Context, patch); err != nil {
					return outputError(err)
				}
			}
			settings, _ := a.Settings.Get()
			return outputJSON(settings)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the session's folders and ideas as a document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: "markdown", Usage: "Output format: markdown|html"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Write to this file instead of stdout"},
		},
		Action: func(c *cli.Context) error {
			format := c.String("format")
			if format != "markdown" && format != "html" {
				return outputError(errors.NewInvalidRequest("format must be markdown or html"))
			}

			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			snap := exportSnapshot(a)
			var doc string
			if format == "html" {
				doc = string(export.HTML(snap))
			} else {
				doc = export.Markdown(snap)
			}

			if path := c.String("path"); path != "" {
				if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
					return outputError(errors.NewInternal(err))
				}
				return outputJSON(map[string]any{"written": path, "format": format})
			}
			fmt.Println(doc)
			return nil
		},
	}
}

// webCmd creates the web command.
func webCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "web",
		Usage: "Serve the JSON API and export preview",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 0, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			a, err := bootstrap(c.Context, cfg, log)
			if err != nil {
				return outputError(err)
			}

			port := c.Int("port")
			if port == 0 {
				port = cfg.HTTPPort
			}
			srv := web.NewServer(a, log, Version, c.String("bind"), port)
			return web.Run(srv, log)
		},
	}
}

// devserverCmd creates the devserver command: a local SQLite-backed record
// store implementing the persistence contract, for development.
func devserverCmd(cfg *config.Config, log zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "devserver",
		Usage: "Run a local development record store",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 0, Usage: "Port (default from config)"},
		},
		Action: func(c *cli.Context) error {
			dir, err := baseDir()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			db, err := devserver.Init(dir)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer db.Close()

			port := c.Int("port")
			if port == 0 {
				port = cfg.DevPort
			}
			srv := devserver.NewServer(db, log, c.String("bind"), port)
			return devserver.Run(srv, log)
		},
	}
}

// Helper functions

// exportSnapshot captures the App's current collections for export.
func exportSnapshot(a *app.App) export.Snapshot {
	return export.Snapshot{
		SessionID:  a.SessionID(),
		Folders:    a.Folders.All(),
		Ideas:      a.Ideas.All(),
		ExportedAt: time.Now(),
	}
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
