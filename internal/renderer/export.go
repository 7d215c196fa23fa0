package renderer

import (
	"image"
	"image/png"
	"io"
	"math"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Save crops the canvas to its content, keeping a small background border,
// and writes it as PNG to path. The parent directory is created if needed.
func (c *Canvas) Save(path string) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	img := c.img.SubImage(c.contentBounds()).(*image.RGBA)

	return writeFileAtomic(path, func(w io.Writer) error {
		if err := png.Encode(w, img); err != nil {
			return goerr.Wrap(err, "failed to encode PNG", goerr.V("path", path))
		}
		return nil
	})
}

// contentBounds returns the bounding box of all pixels that differ from the
// background, grown by the save padding and clipped to the canvas. An empty
// canvas keeps its full bounds.
func (c *Canvas) contentBounds() image.Rectangle {
	b := c.img.Bounds()
	bg := c.theme.Background
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := c.img.Pix[(y-b.Min.Y)*c.img.Stride:]
		for x := b.Min.X; x < b.Max.X; x++ {
			i := (x - b.Min.X) * 4
			if row[i] == bg.R && row[i+1] == bg.G && row[i+2] == bg.B && row[i+3] == bg.A {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX {
		return b
	}

	pad := int(math.Round(savePadInches * DPI))
	return image.Rect(minX-pad, minY-pad, maxX+1+pad, maxY+1+pad).Intersect(b)
}
