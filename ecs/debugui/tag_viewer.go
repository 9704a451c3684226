package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tagecs/ecs"
)

// TagViewer tabulates component usage per tag. Clicking a row selects the tag.
type TagViewer struct {
	tags          []ecs.TagStats
	selectedTag   *ecs.ComponentType
	sortColumn    int
	sortAscending bool
}

func NewTagViewer() *TagViewer {
	return &TagViewer{
		sortColumn:    3,
		sortAscending: false,
	}
}

// Render draws the table and reports the tag clicked this frame, if any.
func (tv *TagViewer) Render(world *ecs.World) (ecs.ComponentType, bool) {
	if !imgui.BeginV("Tag Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return 0, false
	}

	tv.tags = world.CollectStats().TagBreakdown
	sortTagStats(tv.tags, tv.sortColumn, tv.sortAscending)

	maxEntityCount := 0
	for _, ts := range tv.tags {
		maxEntityCount = max(maxEntityCount, ts.Entities)
	}

	var clicked ecs.ComponentType
	var ok bool

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("TagTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableSetupColumn("Bytes")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			tv.sortColumn = int(spec.ColumnIndex())
			tv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortTagStats(tv.tags, tv.sortColumn, tv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, ts := range tv.tags {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := tv.selectedTag != nil && *tv.selectedTag == ts.Type
			if imgui.SelectableBoolV(fmt.Sprintf("%d", ts.Type), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tag := ts.Type
				tv.selectedTag = &tag
				clicked, ok = tag, true
			}

			imgui.TableNextColumn()
			imgui.Text(ts.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ts.Components))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ts.Entities))

			if maxEntityCount > 0 {
				barWidth := float32(ts.Entities) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ts.PayloadBytes))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked, ok
}

func sortTagStats(tags []ecs.TagStats, column int, ascending bool) {
	sort.SliceStable(tags, func(i, j int) bool {
		a, b := tags[i], tags[j]
		if !ascending {
			a, b = b, a
		}
		var less bool
		switch column {
		case 0:
			less = a.Type < b.Type
		case 1:
			less = a.Name < b.Name
		case 2:
			less = a.Components < b.Components
		case 4:
			less = a.PayloadBytes < b.PayloadBytes
		default:
			less = a.Entities < b.Entities
		}

		return less
	})
}
