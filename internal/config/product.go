package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/drapery/internal/product"
)

// Product is the configurator state pushed to a scene instance every tick.
// Each family remembers its own style so switching back and forth keeps the
// user's choice.
type Product struct {
	Family           product.Family       `yaml:"family"`
	CurtainStyle     product.CurtainStyle `yaml:"curtain_style"`
	BlindStyle       product.BlindStyle   `yaml:"blind_style"`
	ShadeStyle       product.ShadeStyle   `yaml:"shade_style"`
	DrapeStyle       product.DrapeStyle   `yaml:"drape_style"`
	Dimensions       product.Dimensions   `yaml:"dimensions"`
	Color            string               `yaml:"color"`
	Texture          product.Texture      `yaml:"texture"`
	Opacity          float64              `yaml:"opacity"`
	OpenAmount       float64              `yaml:"open_amount"`
	PanelCount       int                  `yaml:"panel_count"`
	ShowMeasurements bool                 `yaml:"show_measurements"`
	MountType        product.MountType    `yaml:"mount_type"`
}

// Default is the configurator's initial state.
func Default() Product {
	return Product{
		Family:       product.Curtain,
		CurtainStyle: product.Sheer,
		BlindStyle:   product.Roller,
		ShadeStyle:   product.Honeycomb,
		DrapeStyle:   product.Classic,
		Dimensions:   product.DefaultDimensions,
		Color:        product.DefaultColor,
		Texture:      product.Fabric,
		Opacity:      0.4,
		OpenAmount:   1,
		PanelCount:   2,
		MountType:    product.OutsideMount,
	}
}

// Style returns the selected style of the active family, falling back to
// the family default for out-of-range values.
func (p Product) Style() product.Style {
	var s product.Style
	switch p.Family {
	case product.Curtain:
		s = p.CurtainStyle
	case product.Blind:
		s = p.BlindStyle
	case product.Shade:
		s = p.ShadeStyle
	case product.Drape:
		s = p.DrapeStyle
	}
	return product.Canonical(s)
}

// SetStyle activates the family of s and selects s within it.
func (p *Product) SetStyle(s product.Style) {
	switch s := product.Canonical(s).(type) {
	case product.CurtainStyle:
		p.Family, p.CurtainStyle = product.Curtain, s
	case product.BlindStyle:
		p.Family, p.BlindStyle = product.Blind, s
	case product.ShadeStyle:
		p.Family, p.ShadeStyle = product.Shade, s
	case product.DrapeStyle:
		p.Family, p.DrapeStyle = product.Drape, s
	}
}

// Quote prices the current configuration.
func (p Product) Quote() product.Quote {
	return product.PriceFor(p.Style(), p.Dimensions)
}

// LoadProduct reads a product file. Fields missing from the file keep
// their Default values.
func LoadProduct(path string) (Product, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read product %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse product %s: %w", path, err)
	}
	return p, nil
}

// SaveProduct writes p as YAML, creating the parent directory.
func SaveProduct(path string, p Product) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
