// Package kinetic is a frame-indexed keyframe animation engine.
//
// Kinetic stores sparse keyframes per object property, evaluates every
// property at any frame with pluggable easing curves, and provides a
// declarative composer that expands high-level effects (moves, fades,
// path following, staggered groups, waves, particles, camera shake) into
// concrete keyframe schedules. Drawing is left to the caller: the engine
// writes resolved values onto each [Object] and the renderer reads them.
//
// # Quick start
//
//	scene := kinetic.NewScene(30, 4) // 30 fps, 4 seconds
//	box := kinetic.NewObject("box", kinetic.TypeRect)
//	scene.Add(box)
//
//	c := kinetic.NewComposer(scene)
//	c.Move(box, kinetic.Point{X: 0, Y: 0}, kinetic.Point{X: 200, Y: 80}, 0, 60, "easeInOutCubic")
//	c.FadeIn(box, 0, 15, "linear")
//
//	scene.Clock().SetFrame(30) // box.X, box.Y and box.Opacity now hold frame 30
//
// For real-time playback, the player sub-package drives the clock from the
// [Ebitengine] tick loop:
//
//	player.Run(scene, player.RunConfig{Title: "demo", Width: 640, Height: 480, Draw: draw})
//
// # Values
//
// Keyframe values are a tagged union ([Value]) of scalars, 0-255 RGBA
// colors, points, heterogeneous lists and opaque values. Opaque and
// mismatched pairs step at t = 0.5 instead of interpolating.
//
// # Properties
//
// Each [ObjectType] has a descriptor table mapping property names to typed
// accessors. [Object.SetKeyframe] validates names and value kinds against
// it; unknown names are reported to the scene's diagnostics and ignored.
//
// # Persistence
//
// [SaveScene] and [LoadScene] round-trip the project JSON layout; YAML
// authoring scripts ([LoadScript]) describe objects and effects
// declaratively. [Bake] samples a frame range in parallel for export.
//
// [Ebitengine]: https://ebitengine.org
package kinetic
