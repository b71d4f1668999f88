// Package render produces PNG images for the supported symbologies by
// delegating to encoding libraries. No symbol encoding happens here.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/skip2/go-qrcode"
)

// ErrUnknownSymbology is returned for a symbology the generator cannot draw.
var ErrUnknownSymbology = errors.New("render: unknown symbology")

// Options controls output image dimensions
type Options struct {
	QRSize        int
	BarcodeWidth  int
	BarcodeHeight int
}

// DefaultOptions match the application defaults.
var DefaultOptions = Options{
	QRSize:        256,
	BarcodeWidth:  300,
	BarcodeHeight: 120,
}

// Generator renders codes as PNG images
type Generator struct {
	opts Options
}

// NewGenerator creates a new image generator
func NewGenerator(opts Options) *Generator {
	if opts.QRSize <= 0 {
		opts.QRSize = DefaultOptions.QRSize
	}
	if opts.BarcodeWidth <= 0 {
		opts.BarcodeWidth = DefaultOptions.BarcodeWidth
	}
	if opts.BarcodeHeight <= 0 {
		opts.BarcodeHeight = DefaultOptions.BarcodeHeight
	}
	return &Generator{opts: opts}
}

// Render produces PNG bytes for the given symbology and content
func (g *Generator) Render(symbology, content string) ([]byte, error) {
	switch symbology {
	case "qr":
		return g.renderQR(content)
	case "ean13":
		return g.renderEAN13(content)
	case "code128":
		return g.renderCode128(content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbology, symbology)
	}
}

func (g *Generator) renderQR(content string) ([]byte, error) {
	image, err := qrcode.Encode(content, qrcode.Medium, g.opts.QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return image, nil
}

func (g *Generator) renderEAN13(content string) ([]byte, error) {
	bc, err := ean.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode EAN-13: %w", err)
	}
	return g.scaleToPNG(bc)
}

func (g *Generator) renderCode128(content string) ([]byte, error) {
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode Code128: %w", err)
	}
	return g.scaleToPNG(bc)
}

func (g *Generator) scaleToPNG(bc barcode.Barcode) ([]byte, error) {
	scaled, err := barcode.Scale(bc, g.opts.BarcodeWidth, g.opts.BarcodeHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to scale barcode: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode barcode as PNG: %w", err)
	}
	return buf.Bytes(), nil
}
