package debugui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tagecs/ecs"
)

// QueryDebugger builds a filter from checked tags and shows what it matches.
type QueryDebugger struct {
	selected    map[ecs.ComponentType]bool
	knownTags   []ecs.ComponentType
	lastLen     int
	lastResult  ecs.FilteredEntities
	lastElapsed time.Duration
	maxRows     int
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		selected: make(map[ecs.ComponentType]bool),
		lastLen:  -1,
		maxRows:  50,
	}
}

func (qd *QueryDebugger) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if qd.lastLen != world.Len() {
		qd.knownTags = knownTags(world)
		qd.lastLen = world.Len()
	}

	imgui.Text("Select Component Tags:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = make(map[ecs.ComponentType]bool)
	}

	registry := world.Registry()
	for _, tag := range qd.knownTags {
		selected := qd.selected[tag]
		if imgui.Checkbox(fmt.Sprintf("%s (%d)", registry.Name(tag), tag), &selected) {
			if selected {
				qd.selected[tag] = true
			} else {
				delete(qd.selected, tag)
			}
		}
	}

	imgui.Separator()

	filter := qd.Filter()
	if len(filter.Required) == 0 {
		imgui.Text("No component tags selected")
		imgui.End()
		return
	}

	start := time.Now()
	qd.lastResult = world.Filtered(filter)
	qd.lastElapsed = time.Since(start)

	strategy := "scan"
	if world.Config().IndexQueries {
		strategy = "index"
	}
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(qd.lastResult)))
	imgui.Text(fmt.Sprintf("Evaluated in %v (%s)", qd.lastElapsed, strategy))

	if imgui.TreeNodeStr("Matches") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatchTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, id := range qd.lastResult[:min(len(qd.lastResult), qd.maxRows)] {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id))

				imgui.TableSetColumnIndex(1)
				tags := world.Components(id)
				names := make([]string, len(tags))
				for i, t := range tags {
					names[i] = registry.Name(t)
				}
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}
		if len(qd.lastResult) > qd.maxRows {
			imgui.Text(fmt.Sprintf("... %d more", len(qd.lastResult)-qd.maxRows))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Filter returns the filter for the currently checked tags.
func (qd *QueryDebugger) Filter() ecs.Filter {
	tags := make([]ecs.ComponentType, 0, len(qd.selected))
	for tag := range qd.selected {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return ecs.NewFilter(tags...)
}

// Select checks or unchecks tag.
func (qd *QueryDebugger) Select(tag ecs.ComponentType, selected bool) {
	if selected {
		qd.selected[tag] = true
	} else {
		delete(qd.selected, tag)
	}
}

// knownTags returns the registered tags plus any tag present on a live entity, sorted.
func knownTags(world *ecs.World) []ecs.ComponentType {
	seen := make(map[ecs.ComponentType]bool)
	for _, tag := range world.Registry().Tags() {
		seen[tag] = true
	}
	for id := range world.Entities() {
		for _, tag := range world.Components(id) {
			seen[tag] = true
		}
	}

	tags := make([]ecs.ComponentType, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
