package assets

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

// QRCodeImage returns a QR code for payload drawn one pixel per module at
// the largest integer scale that fits width x height, centered on black.
// If payload is empty, it returns (nil, nil).
func QRCodeImage(payload string, width, height int) (*image.RGBA, error) {
	if payload == "" {
		return nil, nil
	}
	qr, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr code")
	}
	qr.DisableBorder = true
	bitmap := qr.Bitmap()
	modules := len(bitmap)

	size := width
	if height < size {
		size = height
	}
	scale := size / modules
	if scale < 1 {
		return nil, errors.Errorf("qr code needs %d pixels, have %dx%d", modules, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{A: 0xFF}}, image.Point{}, draw.Src)
	offX := (width - modules*scale) / 2
	offY := (height - modules*scale) / 2
	on := &image.Uniform{C: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}}
	for y, row := range bitmap {
		for x, set := range row {
			if !set {
				continue
			}
			r := image.Rect(offX+x*scale, offY+y*scale, offX+(x+1)*scale, offY+(y+1)*scale)
			draw.Draw(img, r, on, image.Point{}, draw.Src)
		}
	}
	return img, nil
}
