package canopy

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const asciiGlyphCount = 128

// Kerner is implemented by glyph sources with pair kerning. The writer and
// MeasureText add Kerning(prev, r) before every glyph that follows another
// glyph on the same line.
type Kerner interface {
	Kerning(prev, r rune) float64
}

// BitmapFont is a GlyphSource over a BMFont text-format (.fnt) description
// and its page texture. Only glyphs on page 0 are kept.
type BitmapFont struct {
	texture    *ebiten.Image
	lineHeight float64
	base       float64

	ascii    [asciiGlyphCount]Glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet [asciiGlyphCount]bool
	ext      map[rune]Glyph

	kernings map[[2]rune]float64
}

// LoadBitmapFont parses BMFont .fnt text data. page is the texture the
// glyph rectangles refer to.
func LoadBitmapFont(fntData []byte, page *ebiten.Image) (*BitmapFont, error) {
	if page == nil {
		return nil, errors.New("load bitmap font: nil page texture")
	}
	f := &BitmapFont{texture: page}

	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	var chars, skipped int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "common":
			f.lineHeight = fieldFloat(fields, "lineHeight")
			f.base = fieldFloat(fields, "base")

		case "char":
			chars++
			if fieldFloat(fields, "page") != 0 {
				skipped++
				continue
			}
			x, y := fieldFloat(fields, "x"), fieldFloat(fields, "y")
			g := Glyph{
				Src: Rect{
					MinX: x, MinY: y,
					MaxX: x + fieldFloat(fields, "width"),
					MaxY: y + fieldFloat(fields, "height"),
				},
				Offset:  Vec2{fieldFloat(fields, "xoffset"), fieldFloat(fields, "yoffset")},
				Advance: fieldFloat(fields, "xadvance"),
			}
			f.setGlyph(rune(fieldFloat(fields, "id")), g)

		case "kerning":
			if f.kernings == nil {
				f.kernings = make(map[[2]rune]float64)
			}
			pair := [2]rune{rune(fieldFloat(fields, "first")), rune(fieldFloat(fields, "second"))}
			f.kernings[pair] = fieldFloat(fields, "amount")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "load bitmap font")
	}
	if f.lineHeight == 0 {
		return nil, errors.New("load bitmap font: missing common lineHeight")
	}
	if chars == 0 {
		return nil, errors.New("load bitmap font: no char definitions")
	}
	if skipped > 0 {
		logger.WithFields(logrus.Fields{
			"chars": chars, "skipped": skipped,
		}).Warn("canopy: bitmap font glyphs on extra pages ignored")
	}
	return f, nil
}

func (f *BitmapFont) setGlyph(r rune, g Glyph) {
	if r >= 0 && r < asciiGlyphCount {
		f.ascii[r] = g
		f.asciiSet[r] = true
		return
	}
	if f.ext == nil {
		f.ext = make(map[rune]Glyph)
	}
	f.ext[r] = g
}

// Texture implements GlyphSource.
func (f *BitmapFont) Texture() *ebiten.Image { return f.texture }

// LineHeight implements GlyphSource.
func (f *BitmapFont) LineHeight() float64 { return f.lineHeight }

// Base returns the distance from the top of a line to the baseline.
func (f *BitmapFont) Base() float64 { return f.base }

// Glyph implements GlyphSource.
func (f *BitmapFont) Glyph(r rune) (Glyph, bool) {
	if r >= 0 && r < asciiGlyphCount {
		return f.ascii[r], f.asciiSet[r]
	}
	g, ok := f.ext[r]
	return g, ok
}

// Kerning implements Kerner.
func (f *BitmapFont) Kerning(prev, r rune) float64 {
	return f.kernings[[2]rune{prev, r}]
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map, stripping quotes
// from values like face="Arial".
func parseFields(s string) map[string]string {
	fields := make(map[string]string)
	for _, part := range strings.Fields(s) {
		key, val, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			val = val[1 : len(val)-1]
		}
		fields[key] = val
	}
	return fields
}

// fieldFloat returns the numeric value of key, or 0 when it is missing or
// malformed.
func fieldFloat(fields map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(fields[key], 64)
	if err != nil {
		return 0
	}
	return v
}
