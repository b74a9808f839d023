// Package export renders a session's folders and ideas as a Markdown
// document, and optionally converts that document to HTML for preview.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/asismo/idea-management-mvp/internal/idea"
)

// Snapshot is the data exported: the session's folders with their ideas
// grouped underneath. Idea counts come from the grouped ideas, not the
// denormalized folder field.
type Snapshot struct {
	SessionID  string
	Folders    []idea.Folder
	Ideas      []idea.Idea
	ExportedAt time.Time
}

// Markdown renders the snapshot as a Markdown document. Folders appear in
// alphabetical order; ideas within a folder keep their display order
// (most recent first). Ideas whose folder no longer exists are grouped
// under an "Unfiled" trailer section.
func Markdown(snap Snapshot) string {
	byFolder := make(map[string][]idea.Idea, len(snap.Folders))
	known := make(map[string]bool, len(snap.Folders))
	for _, f := range snap.Folders {
		known[f.ID] = true
	}

	var unfiled []idea.Idea
	for _, it := range snap.Ideas {
		if known[it.FolderID] {
			byFolder[it.FolderID] = append(byFolder[it.FolderID], it)
		} else {
			unfiled = append(unfiled, it)
		}
	}

	folders := append([]idea.Folder(nil), snap.Folders...)
	sort.Slice(folders, func(i, j int) bool {
		return strings.ToLower(folders[i].Name) < strings.ToLower(folders[j].Name)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "# Ideas for %s\n\n", snap.SessionID)
	fmt.Fprintf(&b, "Exported %s. %d ideas in %d folders.\n",
		snap.ExportedAt.UTC().Format("2006-01-02 15:04"), len(snap.Ideas), len(snap.Folders))

	for _, f := range folders {
		ideas := byFolder[f.ID]
		writeFolder(&b, f, ideas)
	}

	if len(unfiled) > 0 {
		b.WriteString("\n## Unfiled\n")
		for _, it := range unfiled {
			writeIdea(&b, it)
		}
	}

	return b.String()
}

func writeFolder(b *strings.Builder, f idea.Folder, ideas []idea.Idea) {
	title := f.Name
	if f.Icon != "" {
		title = f.Icon + " " + f.Name
	}
	fmt.Fprintf(b, "\n## %s\n", title)
	if f.Description != "" {
		fmt.Fprintf(b, "\n%s\n", f.Description)
	}
	if len(f.Tags) > 0 {
		fmt.Fprintf(b, "\nTags: %s\n", strings.Join(f.Tags, ", "))
	}
	if len(ideas) == 0 {
		b.WriteString("\n_No ideas yet._\n")
		return
	}
	for _, it := range ideas {
		writeIdea(b, it)
	}
}

func writeIdea(b *strings.Builder, it idea.Idea) {
	fmt.Fprintf(b, "\n- %s", it.Content)
	if len(it.Tags) > 0 {
		fmt.Fprintf(b, "\n  - tags: %s", strings.Join(it.Tags, ", "))
	}
	fmt.Fprintf(b, "\n  - captured: %s\n", time.Unix(it.CreatedAt, 0).UTC().Format("2006-01-02 15:04"))
}

// HTML converts the snapshot's Markdown rendering to HTML. On a conversion
// failure the Markdown source is returned escaped, never an error: export is
// a read path and should degrade, not fail.
func HTML(snap Snapshot) template.HTML {
	md := Markdown(snap)
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
