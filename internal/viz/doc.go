// Package viz holds the 3D plot model and its terminal renderer.
//
// A [Plot] is a bounding grid plus one or more [PointLayer]s. Back-ends
// implement [Display]:
//
//   - [Terminal]: one static frame, Braille-rendered through a [Camera]
//   - the HTML, SVG and PNG writers in package export
//
// [RenderPlot] projects every point through the camera onto a [Canvas] of
// Braille cells, so each character cell carries 2x4 dots.
package viz
