// Package texture provides color sources for spatially varying material
// options, sampled by surface UV.
package texture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type ColorSource interface {
	Evaluate(uv mgl32.Vec2) mgl32.Vec3
}

// Solid is the same color everywhere.
type Solid struct {
	Color mgl32.Vec3
}

func (s Solid) Evaluate(uv mgl32.Vec2) mgl32.Vec3 { return s.Color }

// Image is a decoded bitmap sampled bilinearly with wrap addressing.
// 8-bit channel values are taken as linear.
type Image struct {
	Path   string
	width  int
	height int
	texels []mgl32.Vec3
}

// Load decodes PNG, JPEG, GIF, BMP, TIFF or WebP files.
func Load(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	img.Path = path
	return img, nil
}

func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

func FromImage(img image.Image) *Image {
	bounds := img.Bounds()

	// Convert to RGBA if needed
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	texels := make([]mgl32.Vec3, w*h)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride:]
		for x := 0; x < w; x++ {
			p := row[x*4:]
			texels[y*w+x] = mgl32.Vec3{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255}
		}
	}
	return &Image{width: w, height: h, texels: texels}
}

func (i *Image) Size() (int, int) { return i.width, i.height }

// Evaluate samples at uv. v grows upwards, so v=1 is the top row.
func (i *Image) Evaluate(uv mgl32.Vec2) mgl32.Vec3 {
	if len(i.texels) == 0 {
		return mgl32.Vec3{}
	}
	x := float64(uv.X())*float64(i.width) - 0.5
	y := float64(1-uv.Y())*float64(i.height) - 0.5
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := float32(x-x0), float32(y-y0)

	ix, iy := int(x0), int(y0)
	c00 := i.texel(ix, iy)
	c10 := i.texel(ix+1, iy)
	c01 := i.texel(ix, iy+1)
	c11 := i.texel(ix+1, iy+1)

	top := c00.Mul(1 - fx).Add(c10.Mul(fx))
	bottom := c01.Mul(1 - fx).Add(c11.Mul(fx))
	return top.Mul(1 - fy).Add(bottom.Mul(fy))
}

func (i *Image) texel(x, y int) mgl32.Vec3 {
	return i.texels[wrap(y, i.height)*i.width+wrap(x, i.width)]
}

// Close drops the decoded texels.
func (i *Image) Close() error {
	i.texels = nil
	return nil
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Tinted multiplies another source by a constant color.
type Tinted struct {
	Source ColorSource
	Tint   mgl32.Vec3
}

func (t Tinted) Evaluate(uv mgl32.Vec2) mgl32.Vec3 {
	c := t.Source.Evaluate(uv)
	return mgl32.Vec3{c.X() * t.Tint.X(), c.Y() * t.Tint.Y(), c.Z() * t.Tint.Z()}
}
