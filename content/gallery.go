package content

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/giftcard/constants"
)

// Picture is a photo scaled to a terminal cell grid
// Each cell covers two vertically stacked pixels, drawn with a half-block glyph
type Picture struct {
	Cols, Rows int
	// Pixels holds Cols x (Rows*2) colours in row-major order
	Pixels []color.RGBA
}

// At returns the pixel at column x, pixel row y
func (p *Picture) At(x, y int) color.RGBA {
	return p.Pixels[y*p.Cols+x]
}

// PhotoState is the readiness of one gallery image
type PhotoState int

const (
	PhotoPending PhotoState = iota
	PhotoReady
	PhotoFailed
	PhotoPlaceholder
)

type galleryEntry struct {
	state PhotoState
	img   image.Image
	err   error
	// last scaled rendition, keyed by grid size
	pic *Picture
}

// Gallery decodes the card photos in the background and scales them on demand
// Photos without an image reference, or whose image fails to load, get generated placeholder art
type Gallery struct {
	mu      sync.RWMutex
	photos  []Photo
	entries []galleryEntry
	logger  *log.Logger
	client  *http.Client
}

// NewGallery creates a gallery for photos; nothing is decoded until Preload
func NewGallery(photos []Photo, logger *log.Logger) *Gallery {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Gallery{
		photos:  photos,
		entries: make([]galleryEntry, len(photos)),
		logger:  logger,
		client:  &http.Client{Timeout: constants.PhotoFetchTimeout},
	}
	for i, p := range photos {
		if p.Image == "" {
			g.entries[i] = galleryEntry{state: PhotoPlaceholder, img: Placeholder(i, 160, 120)}
		}
	}
	return g
}

// Len returns the number of photos
func (g *Gallery) Len() int {
	return len(g.photos)
}

// Photo returns entry i
func (g *Gallery) Photo(i int) Photo {
	return g.photos[i]
}

// Preload decodes every referenced image concurrently and returns when all have settled
// Decode failures are recorded per photo, not returned
func (g *Gallery) Preload(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for i, p := range g.photos {
		if p.Image == "" {
			continue
		}
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := g.load(ctx, p.Image)

			g.mu.Lock()
			defer g.mu.Unlock()
			if err != nil {
				g.entries[i] = galleryEntry{state: PhotoFailed, err: err, img: Placeholder(i, 160, 120)}
				g.logger.Warn("photo failed to load, using placeholder", "index", i, "image", p.Image, "err", err)
				return nil
			}
			g.entries[i] = galleryEntry{state: PhotoReady, img: img}
			g.logger.Debug("photo loaded", "index", i, "image", p.Image, "bounds", img.Bounds().Size())
			return nil
		})
	}
	return eg.Wait()
}

// State returns the readiness of photo i
func (g *Gallery) State(i int) PhotoState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.entries[i].state
}

// Err returns the load error of photo i, if it failed
func (g *Gallery) Err(i int) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.entries[i].err
}

// Picture returns photo i fitted into cols x rows cells, or nil while it is still loading
func (g *Gallery) Picture(i, cols, rows int) *Picture {
	if i < 0 || i >= len(g.entries) || cols <= 0 || rows <= 0 {
		return nil
	}

	g.mu.RLock()
	e := g.entries[i]
	g.mu.RUnlock()

	if e.img == nil {
		return nil
	}
	if e.pic != nil && e.pic.Cols == cols && e.pic.Rows == rows {
		return e.pic
	}

	pic := Fit(e.img, cols, rows)

	g.mu.Lock()
	if g.entries[i].img == e.img {
		g.entries[i].pic = pic
	}
	g.mu.Unlock()
	return pic
}

// load decodes ref from disk, or downloads it when ref is an http(s) URL
func (g *Gallery) load(ctx context.Context, ref string) (image.Image, error) {
	if !IsRemote(ref) {
		f, err := os.Open(ref)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return DecodeImage(f, ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build photo request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo %s returned %s", ref, resp.Status)
	}
	return DecodeImage(resp.Body, ref)
}

// IsRemote reports whether ref is an http or https URL
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// DecodeImage reads any registered image format from r; name labels errors
func DecodeImage(r io.Reader, name string) (image.Image, error) {
	img, format, err := image.Decode(io.LimitReader(r, constants.MaxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty %s image", name, format)
	}
	return img, nil
}

// Fit scales img into a cols x rows cell grid, preserving aspect ratio and letterboxing
// with the card colour. Cells are two pixels tall and roughly twice as tall as wide,
// so one cell maps to a square pixel pair.
func Fit(img image.Image, cols, rows int) *Picture {
	pw, ph := cols, rows*2
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: letterbox}, image.Point{}, draw.Src)

	src := img.Bounds()
	scale := min(float64(pw)/float64(src.Dx()), float64(ph)/float64(src.Dy()))
	w := max(1, int(float64(src.Dx())*scale))
	h := max(1, int(float64(src.Dy())*scale))
	x0 := (pw - w) / 2
	y0 := (ph - h) / 2

	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), img, src, draw.Over, nil)

	pic := &Picture{Cols: cols, Rows: rows, Pixels: make([]color.RGBA, pw*ph)}
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			pic.Pixels[y*pw+x] = dst.RGBAAt(x, y)
		}
	}
	return pic
}

// letterbox is the card tan behind photos
var letterbox = color.RGBA{R: 0xD2, G: 0xB4, B: 0x8C, A: 0xFF}

// Placeholder draws warm framed art standing in for a missing photo
// The hue of the inner panel shifts with index so consecutive slides differ
func Placeholder(index, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	frame := color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 0xFF}
	shades := []color.RGBA{
		{R: 0xE8, G: 0xD5, B: 0xB0, A: 0xFF},
		{R: 0xDE, G: 0xC3, B: 0x9A, A: 0xFF},
		{R: 0xF0, G: 0xE0, B: 0xC0, A: 0xFF},
		{R: 0xD8, G: 0xBC, B: 0x94, A: 0xFF},
	}
	inner := shades[index%len(shades)]
	border := max(2, min(w, h)/16)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := inner
			if x < border || y < border || x >= w-border || y >= h-border {
				c = frame
			} else if sun(x, y, w, h) {
				c = color.RGBA{R: 0xF4, G: 0xA2, B: 0x3C, A: 0xFF}
			} else if y > h*2/3+(x%(w/4+1))/6 {
				c = color.RGBA{R: 0xA0, G: 0x78, B: 0x50, A: 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// sun reports whether (x,y) lies in the placeholder's sun disc
func sun(x, y, w, h int) bool {
	cx, cy, r := w*3/4, h/3, min(w, h)/8
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
