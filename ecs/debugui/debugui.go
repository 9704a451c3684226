// Package debugui provides Dear ImGui inspector panels for an ecs.World.
// Panels are plain values owned by a DebugUI; call Render once per frame between the
// backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tagecs/ecs"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input this frame.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// DebugUI owns the inspector panels for one World.
type DebugUI struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	timer     *FrameTimer
	input     InputState
	items     []func()

	Browser   *EntityBrowser
	Inspector *ComponentInspector
	Tags      *TagViewer
	Query     *QueryDebugger
	Stats     *PerformanceStats
}

// New creates the inspector panels for world. scheduler may be nil, in which case the
// performance panel omits system statistics.
func New(world *ecs.World, scheduler *ecs.Scheduler) *DebugUI {
	return &DebugUI{
		world:     world,
		scheduler: scheduler,
		timer:     NewFrameTimer(),
		Browser:   NewEntityBrowser(100),
		Inspector: NewComponentInspector(),
		Tags:      NewTagViewer(),
		Query:     NewQueryDebugger(),
		Stats:     NewPerformanceStats(120),
	}
}

// AddItem registers an extra render function that runs after the built-in panels.
func (d *DebugUI) AddItem(render func()) {
	d.items = append(d.items, render)
}

// InputState returns the capture state observed during the last Render.
func (d *DebugUI) InputState() InputState {
	return d.input
}

// Render draws every panel.
func (d *DebugUI) Render() {
	io := imgui.CurrentIO()
	d.input.WantCaptureMouse = io.WantCaptureMouse()
	d.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if tag, ok := d.Tags.Render(d.world); ok {
		d.Browser.SetTagFilter(tag)
	}
	d.Browser.Render(d.world)
	d.Inspector.Render(d.world, d.Browser.SelectedEntity())
	d.Query.Render(d.world)
	d.Stats.Render(d.world, d.scheduler, d.timer.GetDeltaTime())

	for _, item := range d.items {
		item()
	}
}
