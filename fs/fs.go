package appfs

import "embed"

// FS embeds the assets needed at runtime: database migrations and email templates.
//go:embed migrations assets
var FS embed.FS
