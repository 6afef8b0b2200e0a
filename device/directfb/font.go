// SPDX-License-Identifier: Unlicense OR MIT

package directfb

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontHeight is the text height for a surface of the given height.
func fontHeight(surfaceHeight int) int {
	h := surfaceHeight / 10
	if h < 1 {
		h = 1
	}
	return h
}

// loadFace parses the font at path at the given pixel height. An empty
// path selects Go Regular.
func loadFace(path string, height int) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("directfb: parse font %q: %w", path, err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(height),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
