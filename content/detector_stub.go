//go:build !ocr

// Package content detects the content box of a scanned page: the
// smallest rectangle containing everything that is ink rather than blank
// paper. Its result feeds the page-layout stage, which wraps margins
// around it.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. All detection functions return ErrDetectionNotEnabled, and the
// page-layout stage falls back to treating the full page as content.
//
// To enable detection, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package content

import (
	"errors"
	"image"

	"github.com/xietoby/scantailor-advanced/geom"
)

// ErrDetectionNotEnabled is returned when detection is called but support
// was not compiled in. Rebuild with -tags ocr to enable it.
var ErrDetectionNotEnabled = errors.New("content: detection not enabled; rebuild with -tags ocr")

// ErrNoContent is reported when no content block was detected on the
// page; callers usually fall back to the full page rectangle.
var ErrNoContent = errors.New("content: no content detected")

// Detector is a stub that reports detection as unavailable.
type Detector struct{}

// NewDetector returns an error indicating detection support is not
// enabled. To enable it, rebuild with: go build -tags ocr
func NewDetector() (*Detector, error) {
	return nil, ErrDetectionNotEnabled
}

// Close is a no-op for the stub detector. It is safe to call on a nil
// detector.
func (d *Detector) Close() error {
	return nil
}

// SetLanguage returns ErrDetectionNotEnabled.
func (d *Detector) SetLanguage(lang string) error {
	return ErrDetectionNotEnabled
}

// DetectBox returns ErrDetectionNotEnabled.
func (d *Detector) DetectBox(img image.Image) (geom.Rect, error) {
	return geom.Rect{}, ErrDetectionNotEnabled
}

// DetectBoxBytes returns ErrDetectionNotEnabled.
func (d *Detector) DetectBoxBytes(imageData []byte) (geom.Rect, error) {
	return geom.Rect{}, ErrDetectionNotEnabled
}
