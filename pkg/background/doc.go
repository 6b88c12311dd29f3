// Package background generates the canvas behind the code window.
//
// The default background is the theme's background color, or a vertical
// two-stop gradient when the theme defines one. Three procedural shaders
// can replace it:
//
//   - halftone: a dot grid whose dot radius follows a noise field
//   - disruptor: two layered noise fields, ordered-dithered with a 4×4
//     Bayer matrix
//   - wave: a sine-distorted vertical gradient through three color bands
//     with ripple, noise dust and a vignette
//
// Shaders are pure functions of the pixel position, the [Uniforms] and an
// explicit time parameter, so identical inputs always produce identical
// images. They share [ValueNoise] and [FBM].
//
// Background failures are cosmetic. [Generator.Render] never returns an
// error: unknown shader names, invalid parameters and panics inside a
// shader all fall back to the flat path and are reported in [Outcome].
package background
