package scene

import (
	"math"

	"github.com/ivlev/drapery/internal/geometry"
	"github.com/ivlev/drapery/internal/product"
)

// WallDepth is where the preview room's back wall stands.
const WallDepth = -3.0

// Environment is the room of the preview mode: a wall with a divided window
// sized by product.RoomReference, a floor and a baseboard.
func Environment() *Node {
	room := product.RoomReference.Scale(product.DefaultDimensions)
	trim := product.Painted("#3d3428", 0.5)
	pane := product.Glass
	pane.Color = product.ParseColor("#e0f2fe")
	pane.Opacity = 0.3

	wall := product.Painted("#534521", 0.9)
	wall.Metalness = 0.1
	floor := product.Painted("#d4c5b0", 0.8)
	floor.Metalness = 0.2

	floorNode := Plane("floor", 20, 10, geometry.V3(0, -6, 3), floor)
	floorNode.Transform.Rotation.X = -math.Pi / 2

	return Group("environment", geometry.V3(0, 0, WallDepth),
		Plane("wall", 20, 12, geometry.Vec3{}, wall),
		Group("room-window", geometry.V3(0, 0.5, 0.1),
			Box("frame", geometry.V3(room.Width+0.4, room.Height+0.4, 0.15), geometry.Vec3{}, trim),
			Plane("glass", room.Width, room.Height, geometry.V3(0, 0, 0.08), pane),
			Box("divider", geometry.V3(0.08, room.Height, 0.05), geometry.V3(0, 0, 0.08), trim),
			Box("divider", geometry.V3(room.Width, 0.08, 0.05), geometry.V3(0, 0, 0.08), trim),
			Box("sill", geometry.V3(room.Width+0.6, 0.15, 0.3), geometry.V3(0, -room.Height/2-0.3, 0.15), trim),
		),
		floorNode,
		Box("baseboard", geometry.V3(20, 0.3, 0.2), geometry.V3(0, -5.85, 0.1), product.Painted("#4a4035", 0.4)),
	)
}

// OverBackdrop drops the preview room from a preview tree and places the
// rest with fit, so the product can be drawn over a photo of a real window.
func OverBackdrop(root *Node, fit geometry.Transform) *Node {
	if root == nil {
		return nil
	}
	out := &Node{Name: root.Name, Kind: root.Kind, Transform: fit}
	for _, c := range root.Children {
		if c.Name != "environment" {
			out.Children = append(out.Children, c)
		}
	}
	return out
}
