// Package imaging normalizes uploaded product images: whatever comes in,
// what gets persisted is an 800x600 RGB JPEG at quality 90.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	CanvasWidth  = 800
	CanvasHeight = 600
	jpegQuality  = 90
)

// Bounds enforced only when strict image validation is enabled in config.
const (
	MinWidth     = 400
	MinHeight    = 400
	MaxWidth     = 2000
	MaxHeight    = 2000
	MaxFileBytes = 9 << 20
)

var (
	ErrDecode       = errors.New("image decode failed")
	ErrTooSmall     = errors.New("image resolution below minimum")
	ErrTooLarge     = errors.New("image resolution above maximum")
	ErrFileTooLarge = errors.New("image file exceeds size limit")
)

// Normalize decodes src (any registered format), resamples it to exactly
// 800x600 with no regard for the source aspect ratio, flattens it to RGB and
// re-encodes it as a quality-90 JPEG. It runs on every product save, also
// when only non-image fields changed.
func Normalize(src []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, CanvasWidth, CanvasHeight))
	draw.CatmullRom.Scale(canvas, canvas.Bounds(), img, img.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StoredName derives the persisted filename from an upload name: the stem
// before the first period, with the extension forced to .jpeg. Names without
// a period keep the whole name as stem.
func StoredName(uploadName string) string {
	stem := uploadName
	if i := strings.Index(uploadName, "."); i >= 0 {
		stem = uploadName[:i]
	}
	return stem + ".jpeg"
}

// CheckBounds validates resolution and byte-size limits before any
// normalization happens. Callers opt in; the default save path skips it.
func CheckBounds(src []byte) error {
	if len(src) > MaxFileBytes {
		return ErrFileTooLarge
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return fmt.Errorf("%w: %dx%d", ErrTooSmall, cfg.Width, cfg.Height)
	}
	if cfg.Width > MaxWidth || cfg.Height > MaxHeight {
		return fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return nil
}
