package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spacecourier/ecs"
)

// ComponentInspector shows and edits the components of one entity.
type ComponentInspector struct {
	layouts layoutCache
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{layouts: make(layoutCache)}
}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	mask, ok := storage.Mask(selected)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d/%d no longer exists", selected.Index(), selected.Generation()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Slot: %d  Generation: %d", selected.Index(), selected.Generation()))
	imgui.Separator()

	registry := storage.Registry()
	for _, ct := range mask.Types() {
		component := storage.GetComponent(selected, ct)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(registry.Name(ct)) {
			ci.renderValue(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderValue draws editors for the exported fields of a struct value,
// or a single editor for a non-struct component.
func (ci *ComponentInspector) renderValue(val reflect.Value) {
	if val.Kind() != reflect.Struct {
		ci.renderField("value", val)
		return
	}

	for _, field := range ci.layouts.fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Deref {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal)
	}
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
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setValue(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setValue(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setValue(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setValue(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			setValue(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderValue(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setValue writes v into an addressable field, converting between numeric
// kinds. It reports whether the field was written.
func setValue(field reflect.Value, v any) bool {
	if !field.CanSet() {
		return false
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(int64)
		if !ok || field.OverflowInt(n) {
			return false
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(uint64)
		if !ok || field.OverflowUint(n) {
			return false
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, ok := v.(float64)
		if !ok {
			return false
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, ok := v.(bool)
		if !ok {
			return false
		}
		field.SetBool(b)
	case reflect.String:
		s, ok := v.(string)
		if !ok {
			return false
		}
		field.SetString(s)
	default:
		return false
	}
	return true
}
