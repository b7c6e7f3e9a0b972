//go:build ocr

// Package content detects the content box of a scanned page: the
// smallest rectangle containing everything that is ink rather than blank
// paper. Its result feeds the page-layout stage, which wraps margins
// around it.
//
// Detection runs the Tesseract engine via gosseract and unions the
// detected text block boxes. Tesseract must be installed on the system.
// On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package content

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	"github.com/xietoby/scantailor-advanced/geom"
)

// ErrNoContent is reported when no content block was detected on the
// page; callers usually fall back to the full page rectangle.
var ErrNoContent = errors.New("content: no content detected")

// minBlockConfidence filters out the speckle and scanner-edge noise
// Tesseract reports as extremely low confidence blocks.
const minBlockConfidence = 30.0

// Detector finds content boxes using Tesseract.
// It should be closed when no longer needed to release engine resources.
type Detector struct {
	client *gosseract.Client
}

// NewDetector creates a detector.
func NewDetector() (*Detector, error) {
	return &Detector{client: gosseract.NewClient()}, nil
}

// Close releases engine resources.
func (d *Detector) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) used for block detection. Multiple
// languages can be specified as a "+" separated string (e.g. "eng+fra").
// Default is "eng".
func (d *Detector) SetLanguage(lang string) error {
	return d.client.SetLanguage(lang)
}

// DetectBox finds the content box of an image, in source pixel
// coordinates.
func (d *Detector) DetectBox(img image.Image) (geom.Rect, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return geom.Rect{}, fmt.Errorf("encode image: %w", err)
	}
	return d.DetectBoxBytes(buf.Bytes())
}

// DetectBoxBytes is DetectBox for already-encoded image data
// (PNG, TIFF, JPEG, etc.).
func (d *Detector) DetectBoxBytes(imageData []byte) (geom.Rect, error) {
	if err := d.client.SetImageFromBytes(imageData); err != nil {
		return geom.Rect{}, fmt.Errorf("set image: %w", err)
	}

	boxes, err := d.client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("detect blocks: %w", err)
	}

	found := false
	var minX, minY, maxX, maxY int
	for _, b := range boxes {
		if b.Confidence < minBlockConfidence {
			continue
		}
		if !found {
			minX, minY = b.Box.Min.X, b.Box.Min.Y
			maxX, maxY = b.Box.Max.X, b.Box.Max.Y
			found = true
			continue
		}
		if b.Box.Min.X < minX {
			minX = b.Box.Min.X
		}
		if b.Box.Min.Y < minY {
			minY = b.Box.Min.Y
		}
		if b.Box.Max.X > maxX {
			maxX = b.Box.Max.X
		}
		if b.Box.Max.Y > maxY {
			maxY = b.Box.Max.Y
		}
	}
	if !found {
		return geom.Rect{}, ErrNoContent
	}

	return geom.NewRect(
		float64(minX), float64(minY),
		float64(maxX-minX), float64(maxY-minY),
	), nil
}
