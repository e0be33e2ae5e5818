package placement

import (
	"math"
	"testing"

	"github.com/ivlev/drapery/internal/geometry"
)

func TestUnavailableRendersNothing(t *testing.T) {
	c := New(false)
	c.SetHitPose(Pose{Position: geometry.V3(1, 0, -2)})
	c.Step(1.0 / 30)
	if c.Mode() != Unavailable {
		t.Fatalf("expected unavailable, got %v", c.Mode())
	}
	if _, ok := c.Transform(); ok {
		t.Error("no transform should be produced without AR")
	}
	if c.Place() {
		t.Error("place must fail without AR")
	}
}

func TestPreviewFollowsHitPose(t *testing.T) {
	c := New(true)
	if c.Mode() != Searching {
		t.Fatalf("expected searching, got %v", c.Mode())
	}
	if c.Place() {
		t.Error("nothing to place before a hit pose")
	}

	c.SetHitPose(Pose{Position: geometry.V3(0, 0, -2)})
	c.SetHitPose(Pose{Position: geometry.V3(1, 0, -2), Yaw: 0.5})
	for i := 0; i < 120; i++ {
		c.Step(1.0 / 60)
	}
	tr, ok := c.Transform()
	if !ok {
		t.Fatal("preview should render")
	}
	if math.Abs(tr.Position.X-1) > 1e-3 || math.Abs(tr.Rotation.Y-0.5) > 1e-3 {
		t.Errorf("preview did not settle on the hit pose: %+v", tr)
	}
	if math.Abs(tr.Position.Y-PreviewLift) > 1e-3 {
		t.Errorf("preview should float %f above the surface, got %f", PreviewLift, tr.Position.Y)
	}
	if tr.Scale.X != PreviewScale {
		t.Errorf("preview scale %f, want %f", tr.Scale.X, PreviewScale)
	}
	if _, ok := c.Reticle(); !ok {
		t.Error("reticle should show while previewing")
	}
}

func TestPlaceAndAdjust(t *testing.T) {
	c := New(true)
	c.SetHitPose(Pose{Position: geometry.V3(0.5, 0, -1)})
	if !c.Place() {
		t.Fatal("place should succeed")
	}
	c.SetHitPose(Pose{Position: geometry.V3(9, 9, 9)})
	tr, _ := c.Transform()
	if tr.Position != geometry.V3(0.5, 0, -1) {
		t.Errorf("placed pose must be frozen, got %+v", tr.Position)
	}

	c.Rotate()
	c.Rotate()
	for i := 0; i < 30; i++ {
		c.ScaleUp()
	}
	tr, _ = c.Transform()
	if math.Abs(tr.Rotation.Y-math.Pi/2) > 1e-12 {
		t.Errorf("two rotations should turn by pi/2, got %f", tr.Rotation.Y)
	}
	if c.Scale() != MaxScale {
		t.Errorf("scale should clamp to %f, got %f", MaxScale, c.Scale())
	}
	for i := 0; i < 30; i++ {
		c.ScaleDown()
	}
	if c.Scale() != MinScale {
		t.Errorf("scale should clamp to %f, got %f", MinScale, c.Scale())
	}

	c.Reset()
	if c.Mode() != Previewing || c.Scale() != DefaultScale {
		t.Errorf("reset should return to preview at default scale, mode %v scale %f", c.Mode(), c.Scale())
	}
}
