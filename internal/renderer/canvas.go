package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/vector"
)

// DPI is the fixed rasterization resolution; canvas sizes are given in inches
const DPI = 180.0

// savePadInches is the blank border kept around the content when cropping
const savePadInches = 0.1

// Theme holds the fixed colors shared by every diagram
type Theme struct {
	Background color.RGBA
	Foreground color.RGBA
	BoxStroke  color.RGBA
	Arrow      color.RGBA
}

// DefaultTheme is used by all diagram routines
var DefaultTheme = Theme{
	Background: color.RGBA{255, 255, 255, 255},
	Foreground: color.RGBA{26, 26, 26, 255},
	BoxStroke:  color.RGBA{0, 0, 0, 255},
	Arrow:      color.RGBA{0, 0, 0, 255},
}

var (
	loadBold    = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) })
	loadRegular = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) })
)

type faceKey struct {
	bold bool
	size float64
}

// Canvas is an in-memory drawing surface. It must be closed after use.
type Canvas struct {
	img    *image.RGBA
	theme  Theme
	raster *vector.Rasterizer
	faces  map[faceKey]font.Face
}

// NewCanvas creates a canvas of the given size in inches filled with the theme background
func NewCanvas(widthIn, heightIn float64, theme Theme) (*Canvas, error) {
	w := int(math.Round(widthIn * DPI))
	h := int(math.Round(heightIn * DPI))
	if w <= 0 || h <= 0 {
		return nil, goerr.New("canvas size must be positive", goerr.V("width", widthIn), goerr.V("height", heightIn))
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{theme.Background}, image.Point{}, draw.Src)

	return &Canvas{
		img:    img,
		theme:  theme,
		raster: vector.NewRasterizer(w, h),
		faces:  make(map[faceKey]font.Face),
	}, nil
}

// Width returns the canvas width in pixels
func (c *Canvas) Width() float64 { return float64(c.img.Bounds().Dx()) }

// Height returns the canvas height in pixels
func (c *Canvas) Height() float64 { return float64(c.img.Bounds().Dy()) }

// Theme returns the canvas colors
func (c *Canvas) Theme() Theme { return c.theme }

// Image exposes the underlying pixels
func (c *Canvas) Image() *image.RGBA { return c.img }

// Face returns a Go font face of the given point size, cached per canvas
func (c *Canvas) Face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: size}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}

	load := loadRegular
	if bold {
		load = loadBold
	}
	fnt, err := load()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse font")
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create font face", goerr.V("size", size), goerr.V("bold", bold))
	}

	c.faces[key] = face
	return face, nil
}

// Close releases the font faces held by the canvas. It is safe to call more than once.
func (c *Canvas) Close() error {
	var firstErr error
	for key, face := range c.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = goerr.Wrap(err, "failed to close font face")
		}
		delete(c.faces, key)
	}
	return firstErr
}
