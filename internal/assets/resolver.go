package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// QRPrefix marks icon keys whose remainder is encoded as a QR code.
const QRPrefix = "qr:"

// Logger receives resolver warnings. A nil Logger is allowed.
type Logger interface {
	Warnf(component, format string, args ...interface{})
}

// Resolver turns icon keys into RGB buffers. Keys are looked up in the
// compiled-in table, then as QR payloads, then as image files under Dir.
// Anything that cannot be loaded resolves to the default icon.
type Resolver struct {
	Dir    string
	Logger Logger
}

// IconResolver is implemented by Resolver.
type IconResolver interface {
	Resolve(key string, width, height int) (Icon, error)
}

var fileExtensions = []string{".png", ".gif", ".jpg", ".jpeg"}

// Resolve returns the icon for key scaled to width x height. The only
// error is an invalid size; missing icons fall back with a warning.
func (r *Resolver) Resolve(key string, width, height int) (Icon, error) {
	if width <= 0 || height <= 0 {
		return Icon{}, fmt.Errorf("invalid icon size %dx%d for %q", width, height, key)
	}

	if img, ok := builtin(key); ok {
		return FromImage(fit(img, width, height)), nil
	}

	if strings.HasPrefix(key, QRPrefix) {
		img, err := QRCodeImage(strings.TrimPrefix(key, QRPrefix), width, height)
		if err == nil && img != nil {
			return FromImage(img), nil
		}
		if err == nil {
			err = errors.New("empty payload")
		}
		r.warnf("qr icon unavailable: %v, using default", err)
		return r.fallback(width, height), nil
	}

	img, err := r.load(key)
	if err != nil {
		r.warnf("icon %q: %v, using default", key, err)
		return r.fallback(width, height), nil
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		r.warnf("icon %q is %dx%d, scaling to %dx%d", key, b.Dx(), b.Dy(), width, height)
	}
	return FromImage(fit(img, width, height)), nil
}

func (r *Resolver) fallback(width, height int) Icon {
	img, _ := builtin(IconDefault)
	return FromImage(fit(img, width, height))
}

func (r *Resolver) warnf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Warnf("icons", format, args...)
	}
}

// load decodes the first existing file for key.
func (r *Resolver) load(key string) (image.Image, error) {
	var candidates []string
	path := key
	if !filepath.IsAbs(path) && r.Dir != "" {
		path = filepath.Join(r.Dir, path)
	}
	if filepath.Ext(path) != "" {
		candidates = append(candidates, path)
	} else {
		for _, ext := range fileExtensions {
			candidates = append(candidates, path+ext)
		}
	}

	var lastErr error
	for _, candidate := range candidates {
		f, err := os.Open(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", candidate)
		}
		return img, nil
	}
	return nil, lastErr
}

// fit scales src to width x height with nearest-neighbor sampling.
func fit(src image.Image, width, height int) image.Image {
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
