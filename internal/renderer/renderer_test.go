package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ivlev/drapery/internal/config"
	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
	"github.com/ivlev/drapery/internal/scene"
)

func TestProjectUnproject(t *testing.T) {
	cam := DefaultCamera(640, 360)

	center, depth, ok := cam.Project(geometry.Vec3{})
	if !ok || math.Abs(center.X-320) > 1e-9 || math.Abs(center.Y-180) > 1e-9 || depth != 6 {
		t.Fatalf("origin projects to %+v depth %f ok %v", center, depth, ok)
	}
	if _, _, ok := cam.Project(geometry.V3(0, 0, 7)); ok {
		t.Error("points behind the camera must not project")
	}

	tests := []geometry.Vec3{
		geometry.V3(1, 0.5, 0),
		geometry.V3(-2, -1, -3),
		geometry.V3(0.3, 1.2, 2),
	}
	for _, p := range tests {
		s, _, ok := cam.Project(p)
		if !ok {
			t.Fatalf("%+v should be visible", p)
		}
		back := cam.Unproject(s.X, s.Y, p.Z)
		if back.Sub(p).Len() > 1e-9 {
			t.Errorf("round trip of %+v gave %+v", p, back)
		}
	}
}

func TestFitWindow(t *testing.T) {
	cam := DefaultCamera(640, 360)
	room := product.RoomReference.Scale(product.DefaultDimensions)

	// the screen rectangle of the room window at z=0
	lo, _, _ := cam.Project(geometry.V3(-room.Width/2, -room.Height/2, 0))
	hi, _, _ := cam.Project(geometry.V3(room.Width/2, room.Height/2, 0))
	rect := image.Rect(int(math.Round(lo.X)), int(math.Round(hi.Y)), int(math.Round(hi.X)), int(math.Round(lo.Y)))

	tr := cam.FitWindow(rect)
	if tr.Position.Len() > 0.05 {
		t.Errorf("centered window should not move the product, got %+v", tr.Position)
	}
	if math.Abs(tr.Scale.X-1) > 0.02 {
		t.Errorf("scale %f, want about 1", tr.Scale.X)
	}

	half := cam.FitWindow(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2))
	if half.Scale.X > 0.55 || half.Position.X >= 0 || half.Position.Y <= 0 {
		t.Errorf("top-left quarter should shrink and move up-left, got %+v", half)
	}
}

func TestBoxCulling(t *testing.T) {
	r := New(320, 180)
	root := scene.Box("box", geometry.V3(1, 1, 1), geometry.Vec3{}, product.Painted("#ff0000", 0.5))

	_, st, err := r.Render(Frame{Root: root})
	if err != nil {
		t.Fatal(err)
	}
	if st.Faces != 1 || st.Culled != 5 {
		t.Errorf("a box seen head on shows one face, got %+v", st)
	}

	root.Transform.Rotation = geometry.Euler{X: 0.4, Y: 0.6}
	_, st, _ = r.Render(Frame{Root: root})
	if st.Faces != 3 {
		t.Errorf("a tilted box shows three faces, got %+v", st)
	}
}

func TestRenderPreview(t *testing.T) {
	p := config.Default()
	p.ShowMeasurements = true
	in := scene.NewInstance(p)
	root := in.Update(p, 1.0/30)

	r := New(320, 180)
	r.MeshStep = 4
	img, st, err := r.Render(Frame{Root: root, Caption: "Sheer curtain"})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	t.Logf("faces=%d culled=%d labels=%d", st.Faces, st.Culled, st.Labels)

	if st.Faces == 0 {
		t.Fatal("nothing was drawn")
	}
	if st.Labels != 2 {
		t.Errorf("expected the width and height labels, got %d", st.Labels)
	}
	bg := color.RGBAModel.Convert(r.Background.Color()).(color.RGBA)
	if got := img.RGBAAt(160, 90); got == bg {
		t.Errorf("center pixel is background %v", got)
	}
}

func TestRenderEmptyFrame(t *testing.T) {
	r := New(64, 36)
	img, st, err := r.Render(Frame{})
	if err != nil {
		t.Fatal(err)
	}
	if st.Faces != 0 || st.Labels != 0 {
		t.Errorf("empty frame drew %+v", st)
	}
	want := color.RGBAModel.Convert(r.Background.Color()).(color.RGBA)
	if got := img.RGBAAt(10, 10); !near(got, want, 2) {
		t.Errorf("background %v, want %v", got, want)
	}
}

func TestRenderIntoSizeMismatch(t *testing.T) {
	r := New(64, 36)
	if _, err := r.RenderInto(image.NewRGBA(image.Rect(0, 0, 10, 10)), Frame{}); err == nil {
		t.Error("expected an error for a mismatched frame")
	}
}

func TestBackdrop(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 400; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 255 / 400), G: 40, B: 200, A: 255})
		}
	}

	r := New(100, 100)
	r.SetBackdrop(src)
	if r.Backdrop() == nil || r.Backdrop().Bounds().Dx() != 100 {
		t.Fatal("backdrop should be scaled to the frame")
	}
	img, _, err := r.Render(Frame{})
	if err != nil {
		t.Fatal(err)
	}
	// the wide source is cropped to its middle square
	mid := img.RGBAAt(50, 50)
	if mid.R < 100 || mid.R > 155 || mid.B < 180 {
		t.Errorf("unexpected backdrop center %v", mid)
	}

	r.SetBackdrop(nil)
	if r.Backdrop() != nil {
		t.Error("backdrop should be cleared")
	}
}

func TestCoverRect(t *testing.T) {
	tests := []struct {
		src, dst, want image.Rectangle
	}{
		{image.Rect(0, 0, 400, 100), image.Rect(0, 0, 100, 100), image.Rect(150, 0, 250, 100)},
		{image.Rect(0, 0, 100, 400), image.Rect(0, 0, 200, 100), image.Rect(0, 175, 100, 225)},
		{image.Rect(0, 0, 160, 90), image.Rect(0, 0, 320, 180), image.Rect(0, 0, 160, 90)},
	}
	for _, tt := range tests {
		if got := coverRect(tt.src, tt.dst); got != tt.want {
			t.Errorf("coverRect(%v, %v) = %v, want %v", tt.src, tt.dst, got, tt.want)
		}
	}
}

func near(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool { return abs(int(x)-int(y)) <= tol }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
