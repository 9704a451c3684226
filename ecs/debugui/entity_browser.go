package debugui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tagecs/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	Tags           []ecs.ComponentType
	TagNames       []string
	ComponentCount int
}

// EntityBrowser lists live entities with their component tags.
type EntityBrowser struct {
	entities           []EntityInfo
	framesSinceRebuild int
	lastLen            int
	sortColumn         int
	sortAscending      bool

	selectedEntityId   ecs.EntityId
	filterText         string
	filterTag          *ecs.ComponentType
	maxEntitiesPerPage int
	currentPage        int
}

// refreshFrames bounds how stale the cached rows get while the live count is unchanged.
const refreshFrames = 30

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{
		sortAscending:      true,
		maxEntitiesPerPage: maxEntitiesPerPage,
		lastLen:            -1,
	}
}

func (eb *EntityBrowser) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterTag = nil
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.entities = nil
	}

	filteredEntities := filterEntities(eb.entities, eb.filterText, eb.filterTag)
	if eb.currentPage*eb.maxEntitiesPerPage >= len(filteredEntities) {
		eb.currentPage = 0
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Slot:Gen")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d:%d", entity.ID.Index(), entity.ID.Generation()))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.TagNames, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ComponentCount))
		}

		imgui.EndTable()
	}

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// SetTagFilter restricts the browser to entities carrying tag.
func (eb *EntityBrowser) SetTagFilter(tag ecs.ComponentType) {
	eb.filterTag = &tag
	eb.currentPage = 0
}

// SelectedEntity returns the entity last clicked in the table, or 0.
func (eb *EntityBrowser) SelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

func (eb *EntityBrowser) rebuildCacheIfNeeded(world *ecs.World) {
	eb.framesSinceRebuild++
	if eb.lastLen != world.Len() || eb.framesSinceRebuild >= refreshFrames {
		eb.entities = nil
	}

	if eb.entities == nil {
		eb.entities = collectEntities(world)
		sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
		eb.lastLen = world.Len()
		eb.framesSinceRebuild = 0
	}
}

func collectEntities(world *ecs.World) []EntityInfo {
	registry := world.Registry()
	entities := make([]EntityInfo, 0, world.Len())

	for id := range world.Entities() {
		tags := world.Components(id)
		names := make([]string, len(tags))
		for i, tag := range tags {
			names[i] = registry.Name(tag)
		}
		entities = append(entities, EntityInfo{
			ID:             id,
			Tags:           tags,
			TagNames:       names,
			ComponentCount: len(tags),
		})
	}

	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}
		var less bool
		switch column {
		case 1:
			less = a.ID.Index() < b.ID.Index()
		case 2:
			less = strings.Join(a.TagNames, ",") < strings.Join(b.TagNames, ",")
		case 3:
			less = a.ComponentCount < b.ComponentCount
		default:
			less = a.ID < b.ID
		}

		return less
	})
}

// filterEntities matches text against the entity id, its slot and its tag names.
func filterEntities(entities []EntityInfo, text string, tag *ecs.ComponentType) []EntityInfo {
	if text == "" && tag == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if tag != nil && !hasTag(entity.Tags, *tag) {
			continue
		}

		if text != "" {
			idStr := strconv.FormatUint(uint64(entity.ID), 10)
			slotStr := fmt.Sprintf("%d:%d", entity.ID.Index(), entity.ID.Generation())
			tagsStr := strings.ToLower(strings.Join(entity.TagNames, " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(slotStr, filterLower) &&
				!strings.Contains(tagsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func hasTag(tags []ecs.ComponentType, tag ecs.ComponentType) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
