package render

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const fallbackFontName = "goregular"

// loadFont parses the preferred TTF and falls back to the bundled Go font.
// The returned name says which one is in use.
func loadFont(path string) (*truetype.Font, string, error) {
	if path != "" {
		if f, err := parseFontFile(path); err == nil {
			return f, path, nil
		}
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, "", fmt.Errorf("parse fallback font: %w", err)
	}
	return f, fallbackFontName, nil
}

func parseFontFile(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return parsedFont, nil
}

// face is created per render; truetype faces cache glyphs and are not safe
// for concurrent use.
func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
