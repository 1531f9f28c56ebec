// Package configs embeds the default move tables, engine settings and stages.
package configs

import "embed"

// FS holds moves.json, engine.ini and stages/*.json.
//
//go:embed moves.json engine.ini stages/*.json
var FS embed.FS
