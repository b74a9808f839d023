package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var captureToolDef = mcp.NewTool(
	"idea_capture",
	mcp.WithDescription("Capture a free-form idea. Runs AI categorization and tag generation, then stores the idea in the suggested (or explicitly selected) folder."),
	mcp.WithString("content",
		mcp.Required(),
		mcp.Description("The idea text to capture."),
	),
	mcp.WithString("folder_id",
		mcp.Description("Destination folder id. Overrides the AI suggestion when set."),
	),
)

var ideaListToolDef = mcp.NewTool(
	"idea_list",
	mcp.WithDescription("List the session's ideas, most recent first. Optionally filter by folder or by a case-insensitive substring."),
	mcp.WithString("folder_id",
		mcp.Description("Only return ideas in this folder."),
	),
	mcp.WithString("query",
		mcp.Description("Substring filter over content and tags."),
	),
)

var ideaUpdateToolDef = mcp.NewTool(
	"idea_update",
	mcp.WithDescription("Update an idea's content, tags, or folder. Omitted fields are left unchanged."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Idea id to update."),
	),
	mcp.WithString("content",
		mcp.Description("Replacement content."),
	),
	mcp.WithArray("tags",
		mcp.Description("Replacement tag list."),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithString("folder_id",
		mcp.Description("Move the idea to this folder."),
	),
)

var ideaDeleteToolDef = mcp.NewTool(
	"idea_delete",
	mcp.WithDescription("Delete an idea."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Idea id to delete."),
	),
)

var searchToolDef = mcp.NewTool(
	"idea_search",
	mcp.WithDescription("Search the session's ideas, ranked by relevance. Uses the session's configured search mode (simple keyword or advanced AI)."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query."),
	),
)

var folderListToolDef = mcp.NewTool(
	"folder_list",
	mcp.WithDescription("List the session's folders with live idea counts."),
)

var folderCreateToolDef = mcp.NewTool(
	"folder_create",
	mcp.WithDescription("Create a folder."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Folder name; must be unique within the session (case-insensitive)."),
	),
	mcp.WithString("description",
		mcp.Description("Optional description."),
	),
	mcp.WithString("icon",
		mcp.Description("Optional emoji icon; picked deterministically from the name when omitted."),
	),
)

var folderMergeToolDef = mcp.NewTool(
	"folder_merge",
	mcp.WithDescription("Merge the source folder into the target: moves the source's ideas, unions tags, regenerates the target description, and deletes the source."),
	mcp.WithString("source_id",
		mcp.Required(),
		mcp.Description("Folder to merge away."),
	),
	mcp.WithString("target_id",
		mcp.Required(),
		mcp.Description("Folder that absorbs the source."),
	),
)

var folderDeleteToolDef = mcp.NewTool(
	"folder_delete",
	mcp.WithDescription("Delete a folder. Its ideas are reassigned to the General folder first."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Folder id to delete."),
	),
)

var folderDescribeToolDef = mcp.NewTool(
	"folder_describe",
	mcp.WithDescription("Regenerate a folder's description from its current ideas."),
	mcp.WithString("folder_id",
		mcp.Required(),
		mcp.Description("Folder id to describe."),
	),
)

var settingsGetToolDef = mcp.NewTool(
	"settings_get",
	mcp.WithDescription("Return the session's settings record."),
)

var settingsUpdateToolDef = mcp.NewTool(
	"settings_update",
	mcp.WithDescription("Update session settings. Omitted fields are left unchanged."),
	mcp.WithString("categorization_mode",
		mcp.Description("Categorization mode."),
		mcp.Enum("simple", "advanced"),
	),
	mcp.WithString("search_mode",
		mcp.Description("Search mode."),
		mcp.Enum("simple", "advanced"),
	),
	mcp.WithString("theme",
		mcp.Description("UI theme preference."),
	),
	mcp.WithBoolean("auto_update_descriptions",
		mcp.Description("Regenerate folder descriptions automatically after each capture."),
	),
	mcp.WithBoolean("onboarding_completed",
		mcp.Description("Mark the onboarding walkthrough as done."),
	),
)

var exportToolDef = mcp.NewTool(
	"idea_export",
	mcp.WithDescription("Export the session's folders and ideas as a Markdown (or HTML) document."),
	mcp.WithString("format",
		mcp.Description("Output format."),
		mcp.Enum("markdown", "html"),
	),
)
