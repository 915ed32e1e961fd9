// Package media renders the display images frames point at: single PNG cards
// for the og endpoint and animated GIF cards for multi-page displays.
package media

import (
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"
)

// Width bounds keep a hostile query from allocating huge images.
const (
	MinWidth     = 200
	MaxWidth     = 1200
	DefaultWidth = 600

	// gifFrameDelay is in hundredths of a second per GIF frame.
	gifFrameDelay = 500
)

// Card is the text content of one rendered image.
type Card struct {
	Title    string
	Subtitle string
	Content  string
	Width    int
}

var (
	background = color.RGBA{R: 0x10, G: 0x12, B: 0x1a, A: 0xff}
	titleInk   = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	subInk     = color.RGBA{R: 0x9a, G: 0xa0, B: 0xb0, A: 0xff}
	accentInk  = color.RGBA{R: 0x6e, G: 0xe7, B: 0xb7, A: 0xff}
)

// Renderer draws cards with a fixed bitmap face. Stateless and safe for
// concurrent use.
type Renderer struct{}

// NewRenderer creates a card renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders a square card. A zero or out-of-range width is clamped into
// the supported range.
func (r *Renderer) Draw(card Card) *image.RGBA {
	width := clampWidth(card.Width)
	img := image.NewRGBA(image.Rect(0, 0, width, width))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	maxChars := (width - 40) / face.Advance
	y := width / 4

	for _, line := range wrap(card.Title, maxChars) {
		drawText(img, 20, y, titleInk, line)
		y += face.Height + 6
	}
	y += face.Height
	for _, line := range wrap(card.Subtitle, maxChars) {
		drawText(img, 20, y, subInk, line)
		y += face.Height + 4
	}
	y += face.Height
	for _, line := range wrap(card.Content, maxChars) {
		drawText(img, 20, y, accentInk, line)
		y += face.Height + 4
	}

	return img
}

// DrawGIF renders the cards as an animated GIF, one page per card, each shown
// for five seconds. Pages render concurrently.
func (r *Renderer) DrawGIF(ctx context.Context, cards []Card) (*gif.GIF, error) {
	frames := make([]*image.Paletted, len(cards))
	group, _ := errgroup.WithContext(ctx)

	for i, card := range cards {
		group.Go(func() error {
			rgba := r.Draw(card)
			paletted := image.NewPaletted(rgba.Bounds(), palette.Plan9)
			draw.Draw(paletted, paletted.Bounds(), rgba, image.Point{}, draw.Src)
			frames[i] = paletted
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	delays := make([]int, len(frames))
	for i := range delays {
		delays[i] = gifFrameDelay
	}
	return &gif.GIF{Image: frames, Delay: delays}, nil
}

func drawText(dst *image.RGBA, x, y int, ink color.Color, text string) {
	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ink),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// wrap breaks text into lines of at most maxChars runes, splitting on rune
// boundaries rather than words; the face is monospace so this stays aligned.
func wrap(text string, maxChars int) []string {
	if text == "" {
		return nil
	}
	if maxChars < 1 {
		maxChars = 1
	}
	runes := []rune(text)
	lines := make([]string, 0, len(runes)/maxChars+1)
	for len(runes) > maxChars {
		lines = append(lines, string(runes[:maxChars]))
		runes = runes[maxChars:]
	}
	return append(lines, string(runes))
}

func clampWidth(width int) int {
	switch {
	case width == 0:
		return DefaultWidth
	case width < MinWidth:
		return MinWidth
	case width > MaxWidth:
		return MaxWidth
	default:
		return width
	}
}
