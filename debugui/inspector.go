package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/rechthoek/ecs"
)

// FieldInfo describes one exported struct field.
type FieldInfo struct {
	Name      string
	Index     int
	IsPointer bool
}

// FieldCache memoises the exported fields of component types.
type FieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

// NewFieldCache returns an empty cache.
func NewFieldCache() *FieldCache {
	return &FieldCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// Fields returns the exported fields of t, or nil when t is not a struct.
func (c *FieldCache) Fields(t reflect.Type) []FieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:      f.Name,
				Index:     i,
				IsPointer: f.Type.Kind() == reflect.Pointer,
			})
		}
	}
	c.fields[t] = fields
	return fields
}

// EntityInfo is one row of the entity list.
type EntityInfo struct {
	ID         ecs.EntityId
	Archetype  uint32
	Components string
}

// Entities lists entities whose component names contain filter, in
// archetype order. An empty filter matches everything.
func Entities(storage *ecs.Storage, filter string) []EntityInfo {
	filter = strings.ToLower(filter)
	var out []EntityInfo
	for _, a := range storage.Archetypes() {
		names := make([]string, len(a.Types()))
		for i, t := range a.Types() {
			names[i] = t.String()
		}
		components := shortTypes(names)
		if filter != "" && !strings.Contains(strings.ToLower(components), filter) {
			continue
		}
		for id := range a.Iter() {
			out = append(out, EntityInfo{ID: id, Archetype: a.ID(), Components: components})
		}
	}
	return out
}

// shortTypes drops package qualifiers and joins the names.
func shortTypes(names []string) string {
	short := make([]string, len(names))
	for i, name := range names {
		if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
			name = name[dot+1:]
		}
		short[i] = name
	}
	return strings.Join(short, ", ")
}

// Inspector browses entities and edits the numeric and boolean fields of
// the selected one in place.
type Inspector struct {
	Storage *ecs.Storage
	PerPage int

	filter   string
	page     int
	selected *ecs.EntityRef
	cache    *FieldCache
}

// NewInspector returns an inspector over storage with nothing selected.
func NewInspector(storage *ecs.Storage) *Inspector {
	return &Inspector{Storage: storage, PerPage: 100, cache: NewFieldCache()}
}

// Select makes id the inspected entity. The selection follows the entity
// across archetype moves.
func (in *Inspector) Select(id ecs.EntityId) {
	in.selected = in.Storage.CreateEntityRef(id)
}

// Selected returns the inspected entity. Once it is deleted the
// selection is cleared, even if its slot has been reused.
func (in *Inspector) Selected() (ecs.EntityId, bool) {
	id, ok := in.Storage.ResolveEntityRef(in.selected)
	if !ok {
		in.selected = nil
	}
	return id, ok
}

// Render draws the browser and the component panel.
func (in *Inspector) Render() {
	if imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		in.renderBrowser()
	}
	imgui.End()

	if imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		in.renderComponents()
	}
	imgui.End()
}

func (in *Inspector) renderBrowser() {
	imgui.InputTextWithHint("##filter", "Component filter...", &in.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		in.filter = ""
		in.page = 0
	}

	selected, _ := in.Selected()
	entities := Entities(in.Storage, in.filter)
	pages := max(1, (len(entities)+in.PerPage-1)/in.PerPage)
	in.page = min(in.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := in.page * in.PerPage
		end := min(start+in.PerPage, len(entities))
		for _, e := range entities[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID), selected == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				in.Select(e.ID)
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", e.Archetype))
			imgui.TableNextColumn()
			imgui.Text(e.Components)
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", in.page+1, pages, len(entities)))
	imgui.SameLine()
	if imgui.Button("Prev") && in.page > 0 {
		in.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && in.page < pages-1 {
		in.page++
	}
}

func (in *Inspector) renderComponents() {
	id, ok := in.Selected()
	if !ok {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", id.ArchetypeId()))
	imgui.Separator()

	for _, c := range Components(in.Storage, id) {
		if !imgui.TreeNodeStr(c.Name) {
			continue
		}
		if c.Value.Kind() == reflect.Struct {
			in.renderValue(c.Value)
		} else {
			in.renderField(c.Value.Type().Name(), c.Value)
		}
		imgui.TreePop()
	}
}

// Component is one editable component of an entity.
type Component struct {
	Name  string
	Value reflect.Value
}

// Components returns addressable values for every component of id, in
// archetype type order. Writes through Value land in storage.
func Components(storage *ecs.Storage, id ecs.EntityId) []Component {
	if !storage.Exists(id) {
		return nil
	}
	var out []Component
	for _, a := range storage.Archetypes() {
		if a.ID() != id.ArchetypeId() {
			continue
		}
		for _, t := range a.Types() {
			ptr := storage.GetComponent(id, t)
			if ptr == nil {
				continue
			}
			out = append(out, Component{Name: t.String(), Value: reflect.ValueOf(ptr).Elem()})
		}
	}
	return out
}

// renderValue shows the fields of an addressable struct value. Edits are
// written straight into the component.
func (in *Inspector) renderValue(val reflect.Value) {
	for _, field := range in.cache.Fields(val.Type()) {
		fv := val.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fv = fv.Elem()
		}
		in.renderField(field.Name, fv)
	}
}

func (in *Inspector) renderField(name string, val reflect.Value) {
	label := "##" + name
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			in.renderValue(val)
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Func:
		imgui.Text(fmt.Sprintf("%s: func", name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}
