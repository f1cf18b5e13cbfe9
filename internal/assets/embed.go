package assets

import (
	"embed"
	"io/fs"
)

// Templates bundled into the binary: the four data seeds and the config template.
//
//go:embed templates/*.json templates/config.properties
var bundled embed.FS

// Templates returns the bundled template tree rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(bundled, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
