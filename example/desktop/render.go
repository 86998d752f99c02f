package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/oomph-ac/mazeball/game"
	"github.com/oomph-ac/mazeball/scene"
)

var (
	skyColour    = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	wallColour   = color.RGBA{R: 0x8a, G: 0x8f, B: 0x9a, A: 0xff}
	gateColour   = color.RGBA{R: 0x3c, G: 0xd0, B: 0x70, A: 0xcc}
	avatarColour = color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	markColour   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	stickColour  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}
	overlay      = color.RGBA{A: 0x90}
)

var whiteImage = ebiten.NewImage(3, 3)

// whiteSubImage is used as the source of filled triangles.
var whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

func init() {
	whiteImage.Fill(color.White)
}

// Draw paints the maze from back to front, then the avatar, the particles and the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColour)
	frame := g.scene.Frame(g.last, g.state.Avatar().Radius, g.width, g.height)

	var (
		path vector.Path
		vs   []ebiten.Vertex
		is   []uint16
	)
	for _, f := range g.scene.Faces(frame) {
		path = vector.Path{}
		visible := true
		for i, c := range f.Corners {
			x, y, ok := frame.Project(c)
			if !ok {
				visible = false
				break
			}
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
		if !visible {
			continue
		}
		path.Close()

		clr := wallColour
		if f.Gate {
			clr = gateColour
		}
		vs, is = path.AppendVerticesAndIndicesForFilling(vs[:0], is[:0])
		r, gr, b, a := float32(clr.R)/0xff*f.Shade, float32(clr.G)/0xff*f.Shade, float32(clr.B)/0xff*f.Shade, float32(clr.A)/0xff
		for i := range vs {
			vs[i].SrcX, vs[i].SrcY = 1, 1
			vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r*a, gr*a, b*a, a
		}
		screen.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
	}

	if x, y, ok := frame.Project(frame.Avatar); ok {
		radius := frame.ProjectedRadius(frame.Avatar, frame.Radius)
		vector.DrawFilledCircle(screen, x, y, radius, avatarColour, true)

		// A marker on the surface makes the rolling visible.
		mark := frame.Avatar.Add(frame.Orientation.Rotate(mgl32.Vec3{0, 0, frame.Radius * 0.8}))
		if mx, my, ok := frame.Project(mark); ok {
			vector.DrawFilledCircle(screen, mx, my, max(radius*0.15, 2), markColour, true)
		}
	}
	g.drawBursts(screen, frame)

	if ax, ay, ok := g.mapper.Dragging(); ok {
		vector.StrokeCircle(screen, float32(ax), float32(-ay), float32(g.mapper.DragRadius()), 2, stickColour, true)
	}

	if frame.Won {
		vector.DrawFilledRect(screen, 0, float32(g.height)/2-30, float32(g.width), 60, overlay, false)
		ebitenutil.DebugPrintAt(screen, "You escaped the maze!", g.width/2-64, g.height/2-20)
		ebitenutil.DebugPrintAt(screen, "Click or press Enter to play again", g.width/2-102, g.height/2)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f\nTick: %d", ebiten.ActualTPS(), g.last.Tick))
}

func (g *Game) drawBursts(screen *ebiten.Image, frame scene.Frame) {
	for _, b := range g.bursts.Active() {
		clr := b.Colour()
		clr.A = uint8(float64(clr.A) * b.Opacity())
		for _, p := range b.Points() {
			if x, y, ok := frame.Project(game.Vec64To32(p)); ok {
				vector.DrawFilledRect(screen, x-1, y-1, 2, 2, premultiply(clr), false)
			}
		}
	}
}

func premultiply(c color.RGBA) color.RGBA {
	a := uint16(c.A)
	return color.RGBA{R: uint8(uint16(c.R) * a / 0xff), G: uint8(uint16(c.G) * a / 0xff), B: uint8(uint16(c.B) * a / 0xff), A: c.A}
}
