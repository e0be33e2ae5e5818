// Package share hands a configured product over to a phone: a link that
// carries the product state and a QR code of that link.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/product"
)

var ErrInvalidLink = errors.New("invalid share link")

// DefaultQRSize is the QR image edge in pixels.
const DefaultQRSize = 512

// Link is one shared product. Session identifies the handoff so an AR
// viewer can tell repeated scans apart.
type Link struct {
	Session uuid.UUID
	Product config.Product
}

func NewLink(p config.Product) Link {
	return Link{Session: uuid.New(), Product: p}
}

// URL encodes the link as query parameters of base.
func (l Link) URL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("base url: %w", err)
	}
	p := l.Product
	family, err := p.Family.MarshalText()
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("s", l.Session.String())
	q.Set("f", string(family))
	q.Set("st", p.Style().String())
	q.Set("w", formatFloat(p.Dimensions.Width))
	q.Set("h", formatFloat(p.Dimensions.Height))
	if p.Dimensions.Drop != 0 {
		q.Set("d", formatFloat(p.Dimensions.Drop))
	}
	q.Set("c", p.Color)
	q.Set("t", p.Texture.String())
	q.Set("o", formatFloat(p.Opacity))
	q.Set("open", formatFloat(p.OpenAmount))
	q.Set("n", strconv.Itoa(p.PanelCount))
	q.Set("m", p.MountType.String())
	if p.ShowMeasurements {
		q.Set("mm", "1")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Parse reads a link produced by URL. Missing optional fields keep the
// configurator defaults; a missing session, family or style is an error.
func Parse(raw string) (Link, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	q := u.Query()

	session, err := uuid.Parse(q.Get("s"))
	if err != nil {
		return Link{}, fmt.Errorf("%w: session: %v", ErrInvalidLink, err)
	}
	family, err := product.ParseFamily(q.Get("f"))
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}
	style, err := product.ParseStyle(family, q.Get("st"))
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}

	p := config.Default()
	p.SetStyle(style)
	fields := []struct {
		key string
		dst *float64
	}{
		{"w", &p.Dimensions.Width},
		{"h", &p.Dimensions.Height},
		{"d", &p.Dimensions.Drop},
		{"o", &p.Opacity},
		{"open", &p.OpenAmount},
	}
	for _, f := range fields {
		if v := q.Get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Link{}, fmt.Errorf("%w: %s: %v", ErrInvalidLink, f.key, err)
			}
			*f.dst = x
		}
	}
	if v := q.Get("n"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Link{}, fmt.Errorf("%w: n: %v", ErrInvalidLink, err)
		}
		p.PanelCount = n
	}
	if c := q.Get("c"); c != "" {
		p.Color = product.PresetColor(c)
	}
	if t := q.Get("t"); t != "" {
		p.Texture = product.ParseTexture(t)
	}
	if m := q.Get("m"); m != "" {
		p.MountType = product.ParseMountType(m)
	}
	p.ShowMeasurements = q.Get("mm") == "1"

	return Link{Session: session, Product: p}, nil
}

// QRCode encodes content as a PNG QR code of size pixels.
func QRCode(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	return png, nil
}

// WriteQR writes the QR code of content to path, creating its directory.
func WriteQR(content, path string, size int) error {
	png, err := QRCode(content, size)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, png, 0644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
