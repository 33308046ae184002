package engine

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/lixenwraith/cardkit/render"
)

// DefaultText is shown by SimpleGame
const DefaultText = "Make a game!"

// opticalLift raises centered text by this share of the surface height,
// since the eye places the center of a surface above its true center
const opticalLift = 0.02

// SimpleGame is the default game: a white frame with centered text.
// Card games can start from it or replace it.
type SimpleGame struct {
	Text       string
	Face       font.Face
	Ink        color.Color
	Background color.Color

	rendered *image.RGBA
}

// NewSimpleGame returns a SimpleGame showing DefaultText
func NewSimpleGame() *SimpleGame {
	return &SimpleGame{
		Text:       DefaultText,
		Face:       basicfont.Face7x13,
		Ink:        color.Black,
		Background: color.White,
	}
}

// Ready pre-renders the text
func (g *SimpleGame) Ready(*Loop) error {
	g.rendered = render.RenderText(g.Face, g.Text, g.Ink)
	return nil
}

// HandleEvent ignores input
func (g *SimpleGame) HandleEvent(Event) {}

// Draw fills the frame and draws the text centered, lifted to the optical center
func (g *SimpleGame) Draw(frame *image.RGBA) {
	render.Fill(frame, g.Background)
	if g.rendered == nil {
		return
	}
	draw.Draw(frame, g.TextRect(frame.Bounds()), g.rendered, image.Point{}, draw.Over)
}

// TextRect returns where the text lands on a surface with the given bounds
func (g *SimpleGame) TextRect(bounds image.Rectangle) image.Rectangle {
	if g.rendered == nil {
		return image.Rectangle{}
	}
	size := g.rendered.Bounds().Size()
	center := bounds.Min.Add(bounds.Size().Div(2))
	lift := int(float64(bounds.Dy()) * opticalLift)
	topLeft := center.Sub(size.Div(2)).Sub(image.Pt(0, lift))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}
}
