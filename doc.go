// Package canopy is a retained-mode UI core for [Ebitengine].
//
// Canopy provides the node tree, anchor layout, resolution and DPI scaling,
// pointer/keyboard/gamepad focus handling, and the texture-batched vertex
// writer that concrete widgets draw through.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	m := canopy.NewManager(canopy.DefaultConfig())
//	// ... add nodes ...
//	canopy.Run(m, canopy.RunConfig{
//		Title: "My UI", Width: 1280, Height: 720,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Manager.Update] and [Manager.Draw] directly:
//
//	type Game struct{ ui *canopy.Manager }
//
//	func (g *Game) Update() error        { g.ui.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.ui.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) {
//		g.ui.SetScreenSize(float64(w), float64(h))
//		return w, h
//	}
//
// # Layout
//
// Every element is a [Node] owned by a [Manager]. A node's position and size
// are [Dim] values: a fraction of the parent rectangle plus a pixel offset.
// Pixel offsets are multiplied by the global scale unless the node is scale
// exempt. The parent anchor picks a point of the parent rectangle on a 3×3
// grid, the local anchor the point of the node that lands on it:
//
//	panel := m.NewNode("panel", canopy.Pixels(0, 0), canopy.Pixels(300, 200),
//		canopy.DefaultFlags(), &canopy.Panel{Material: "window"})
//	panel.SetAnchors(canopy.AnchorCenter, canopy.AnchorCenter)
//	m.Append(nil, panel)
//	m.InsertNamed(panel)
//
// The global scale is interpolated from screen-area breakpoints
// ([Manager.PushScreenScale]) multiplied by DPI breakpoints
// ([Manager.PushDPIScale]).
//
// # Events and focus
//
// Nodes carry a small table of callbacks keyed by [EventCode]. Hover, press,
// release, focus and visibility transitions are dispatched by the core;
// widgets may use codes from [EventUser] up. Focus moves on pointer press,
// Tab / Shift+Tab over tab-able nodes, and directional input over focusable
// nodes.
//
// # Drawing
//
// Widgets implement [Widget] and emit primitives through a [BatchWriter],
// which groups contiguous primitives by texture and submits one
// DrawTriangles32 call per batch. Built-in widgets are [Panel], [Image],
// [Label] and [Line].
//
// Tweens (via [gween]) and an ECS event bridge (via [Donburi] in
// canopy/ecs) are included.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package canopy
