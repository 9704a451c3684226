package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tagecs/ecs"
)

// ComponentInspector shows the components of the selected entity. Payloads whose tag is
// registered are decoded field by field and can be edited in place; others are shown as
// a hex dump.
type ComponentInspector struct {
	selectedEntityId ecs.EntityId
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(world *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !world.IsAlive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d is no longer alive", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ci.selectedEntityId))
	imgui.Text(fmt.Sprintf("Slot: %d  Generation: %d", ci.selectedEntityId.Index(), ci.selectedEntityId.Generation()))
	imgui.Separator()

	registry := world.Registry()
	seen := make(map[ecs.ComponentType]bool)
	for i, tag := range world.Components(ci.selectedEntityId) {
		label := fmt.Sprintf("%s (tag %d)##%d", registry.Name(tag), tag, i)
		if seen[tag] {
			imgui.BulletText(fmt.Sprintf("%s (tag %d): shadowed duplicate", registry.Name(tag), tag))
			continue
		}
		seen[tag] = true

		payload, ok := world.GetComponent(ci.selectedEntityId, tag)
		if !ok {
			continue
		}

		if imgui.TreeNodeStr(label) {
			typ, _ := registry.TypeOf(tag)
			ci.renderComponent(payload, typ)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(payload []byte, typ reflect.Type) {
	val, ok := decodePayload(payload, typ)
	if !ok {
		imgui.Text(fmt.Sprintf("%d bytes", len(payload)))
		for _, line := range hexDump(payload) {
			imgui.Text(line)
		}
		return
	}

	if val.Kind() != reflect.Struct {
		ci.renderField("value", val)
		return
	}

	for _, field := range globalReflectionCache.GetFields(typ) {
		ci.renderField(field.Name, val.Field(field.Index))
	}
}

// decodePayload returns an addressable value aliasing payload when typ matches its size.
func decodePayload(payload []byte, typ reflect.Type) (reflect.Value, bool) {
	if typ == nil || typ.Size() != uintptr(len(payload)) {
		return reflect.Value{}, false
	}
	if len(payload) == 0 {
		return reflect.New(typ).Elem(), true
	}
	return reflect.NewAt(typ, unsafe.Pointer(unsafe.SliceData(payload))).Elem(), true
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				ci.renderField(nf.Name, val.Field(nf.Index))
			}
			imgui.TreePop()
		}

	case reflect.Array:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := 0; i < val.Len(); i++ {
				ci.renderField(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// hexDump formats payload as lines of up to 16 bytes prefixed with their offset.
func hexDump(payload []byte) []string {
	lines := make([]string, 0, (len(payload)+15)/16)
	for off := 0; off < len(payload); off += 16 {
		end := min(off+16, len(payload))
		var sb strings.Builder
		fmt.Fprintf(&sb, "%04x ", off)
		for _, b := range payload[off:end] {
			fmt.Fprintf(&sb, " %02x", b)
		}
		lines = append(lines, sb.String())
	}
	return lines
}
