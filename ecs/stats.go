package ecs

import "sort"

// WorldStats is a point-in-time summary of a World.
type WorldStats struct {
	LiveEntities   int
	EntitySlots    int
	FreeSlots      int
	RetiredSlots   int
	ComponentCount int
	PayloadBytes   int
	TagBreakdown   []TagStats
}

// TagStats summarizes the components carrying one tag.
type TagStats struct {
	Type         ComponentType
	Name         string
	Components   int
	Entities     int
	PayloadBytes int
}

// CollectStats walks every live entity and summarizes component usage per tag.
// TagBreakdown is sorted by tag.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		LiveEntities: w.live,
		EntitySlots:  len(w.records),
		FreeSlots:    len(w.freeSlots),
		RetiredSlots: w.retired,
	}

	byTag := make(map[ComponentType]*TagStats)
	for slot := range w.records {
		rec := &w.records[slot]
		if !rec.alive {
			continue
		}

		stats.ComponentCount += rec.components.len()
		stats.PayloadBytes += rec.components.payloadBytes()

		for i := range rec.components.items {
			comp := &rec.components.items[i]
			ts, ok := byTag[comp.typ]
			if !ok {
				ts = &TagStats{Type: comp.typ, Name: w.registry.Name(comp.typ)}
				byTag[comp.typ] = ts
			}
			ts.Components++
			ts.PayloadBytes += len(comp.payload)
			if rec.components.find(comp.typ) == i {
				ts.Entities++
			}
		}
	}

	stats.TagBreakdown = make([]TagStats, 0, len(byTag))
	for _, ts := range byTag {
		stats.TagBreakdown = append(stats.TagBreakdown, *ts)
	}
	sort.Slice(stats.TagBreakdown, func(i, j int) bool {
		return stats.TagBreakdown[i].Type < stats.TagBreakdown[j].Type
	})

	return stats
}
