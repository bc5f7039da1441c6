// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ShapeVertexShader places unit meshes from position, rotation and scale
// instance attributes.
//
//go:embed shape.vert
var ShapeVertexShader string

// VectorVertexShader stretches the arrow template between tail and head.
//
//go:embed vector.vert
var VectorVertexShader string

// OverlayFragmentShader is shared by shapes and vectors.
//
//go:embed overlay.frag
var OverlayFragmentShader string

// BoundsVertexShader is the vertex shader for bounds wireframes.
//
//go:embed bounds.vert
var BoundsVertexShader string

// BoundsFragmentShader is the fragment shader for bounds wireframes.
//
//go:embed bounds.frag
var BoundsFragmentShader string
