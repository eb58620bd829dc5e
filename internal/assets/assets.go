package assets

import (
	"embed"

	"github.com/benbjohnson/hashfs"
)

//go:embed static
var FS embed.FS

var HashFS = hashfs.NewFS(FS)
