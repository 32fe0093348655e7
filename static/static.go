package static

import "embed"

// FS holds the assets served under /static.
//
//go:embed js
var FS embed.FS
