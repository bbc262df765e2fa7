package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/netgraph/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`

func TestToPDF(t *testing.T) {
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if !Available() {
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Fatalf("ToPDF without rsvg-convert = %v, want UNSUPPORTED", err)
		}
		return
	}
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
