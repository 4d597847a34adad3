package assets

import (
	_ "embed"
)

// PlaceholderPNG is shown in the frame area while no video is loaded.
//
//go:embed placeholder.png
var PlaceholderPNG []byte
