package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/midgard-overlay/internal/engine/overlay"
	"github.com/Faultbox/midgard-overlay/internal/engine/ui"
	"github.com/Faultbox/midgard-overlay/pkg/batch"
	"github.com/Faultbox/midgard-overlay/pkg/math"
)

func (app *App) renderControls() {
	imgui.Text("Batching")
	changed := imgui.SliderIntV("Capacity", &app.capacity, 1, 1024, "%d", imgui.SliderFlagsNone)
	changed = imgui.SliderIntV("Cylinder slices", &app.slices, 3, 64, "%d", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderIntV("Arrow edges", &app.edges, 3, 32, "%d", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Vector radius", &app.cfg.Overlay.VectorRadius, 0.01, 1, "%.2f", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Tip height", &app.cfg.Overlay.TipHeight, 0.05, 1, "%.2f", imgui.SliderFlagsNone) || changed
	if changed {
		app.applyOverlay()
	}

	imgui.Separator()
	imgui.Text("Scene")
	if imgui.SliderIntV("Grid size", &app.grid, 0, 64, "%d", imgui.SliderFlagsNone) {
		app.scene.GridSize = int(app.grid)
	}
	imgui.Checkbox("Show bounds", &app.cfg.Overlay.ShowBounds)
	imgui.Checkbox("Paused", &app.paused)
	imgui.SameLine()
	imgui.TextDisabled("(space)")

	if imgui.Button("Fit camera") {
		app.camera.FitToBounds(app.shapes.Bounds().Union(app.vectors.Bounds()))
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		app.screenshot()
	}
	imgui.SameLine()
	if imgui.Button("Save config...") {
		app.saveConfigDialog()
	}

	if app.status != "" {
		imgui.TextWrapped(app.status)
	}
}

func (app *App) renderStats() {
	gpu := app.renderer.Stats()
	imgui.Text(fmt.Sprintf("Draw calls: %d  Uploads: %d", gpu.DrawCalls, gpu.Uploads))
	imgui.Text(fmt.Sprintf("Instances: %d", gpu.Instances))

	for _, s := range app.shapes.Stats() {
		poolStats(s)
	}
	poolStats(app.vectors.Stats())
}

func poolStats(s overlay.PoolStats) {
	imgui.Separator()
	ui.ColorText(boundsColor(s.Name), "%s", s.Name)
	imgui.Text(fmt.Sprintf("Instances: %d  Batches: %d/%d", s.Instances, s.Used, s.Batches))
	imgui.Text(fmt.Sprintf("Capacity: %d  Allocations: %d", s.Capacity, s.Allocations))
	imgui.Text(boundsText(s.Bounds))
}

func boundsText(b batch.Bounds) string {
	if !b.Valid {
		return "Bounds: undefined"
	}
	return fmt.Sprintf("Bounds: (%.2f, %.2f, %.2f)\n        (%.2f, %.2f, %.2f)",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func boundsColor(mesh string) math.Color {
	switch mesh {
	case "CubeShape":
		return math.ColorRed
	case "CylinderShape":
		return math.ColorYellow
	default:
		return math.ColorGreen
	}
}
