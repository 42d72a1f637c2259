// Package assets resolves visual assets to and from stable identifiers.
package assets

import "embed"

// dataFS embeds the built-in asset catalog at build time.
//
//go:embed *.json
var dataFS embed.FS

// defaultCatalog is the embedded catalog file name.
const defaultCatalog = "catalog.json"
