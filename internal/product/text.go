package product

import "fmt"

// Text encodings let families, styles and finishes appear by name in YAML
// product files, scenarios and share links.

func (f Family) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFamily, int(f))
	}
	return []byte(f.String()), nil
}

func (f *Family) UnmarshalText(b []byte) error {
	v, err := ParseFamily(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func marshalStyle(s Style) ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStyle, s)
	}
	return []byte(s.String()), nil
}

func (s CurtainStyle) MarshalText() ([]byte, error) { return marshalStyle(s) }
func (s BlindStyle) MarshalText() ([]byte, error)   { return marshalStyle(s) }
func (s ShadeStyle) MarshalText() ([]byte, error)   { return marshalStyle(s) }
func (s DrapeStyle) MarshalText() ([]byte, error)   { return marshalStyle(s) }

func (s *CurtainStyle) UnmarshalText(b []byte) error {
	v, err := ParseStyle(Curtain, string(b))
	if err != nil {
		return err
	}
	*s = v.(CurtainStyle)
	return nil
}

func (s *BlindStyle) UnmarshalText(b []byte) error {
	v, err := ParseStyle(Blind, string(b))
	if err != nil {
		return err
	}
	*s = v.(BlindStyle)
	return nil
}

func (s *ShadeStyle) UnmarshalText(b []byte) error {
	v, err := ParseStyle(Shade, string(b))
	if err != nil {
		return err
	}
	*s = v.(ShadeStyle)
	return nil
}

func (s *DrapeStyle) UnmarshalText(b []byte) error {
	v, err := ParseStyle(Drape, string(b))
	if err != nil {
		return err
	}
	*s = v.(DrapeStyle)
	return nil
}

func (t Texture) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText never fails: unknown textures read as fabric.
func (t *Texture) UnmarshalText(b []byte) error {
	*t = ParseTexture(string(b))
	return nil
}

func (m MountType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *MountType) UnmarshalText(b []byte) error {
	*m = ParseMountType(string(b))
	return nil
}
