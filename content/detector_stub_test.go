//go:build !ocr

package content

import (
	"errors"
	"testing"
)

func TestNewDetectorReturnsError(t *testing.T) {
	d, err := NewDetector()
	if !errors.Is(err, ErrDetectionNotEnabled) {
		t.Errorf("NewDetector() error = %v, want ErrDetectionNotEnabled", err)
	}
	if d != nil {
		t.Error("NewDetector() returned a detector with detection disabled")
	}
}

func TestCloseOnNilDetector(t *testing.T) {
	var d *Detector
	if err := d.Close(); err != nil {
		t.Errorf("Close() on nil detector: %v", err)
	}
}

func TestStubDetectBox(t *testing.T) {
	var d Detector
	if _, err := d.DetectBoxBytes(nil); !errors.Is(err, ErrDetectionNotEnabled) {
		t.Errorf("DetectBoxBytes() error = %v, want ErrDetectionNotEnabled", err)
	}
}
