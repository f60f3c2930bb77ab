package debugui

import "reflect"

// fieldDesc describes one exported field the inspector can draw.
type fieldDesc struct {
	Name  string
	Index int
	// Deref is set for pointer fields; Kind is the pointee's kind then.
	Deref bool
	Kind  reflect.Kind
}

// layoutCache memoises the exported field list of component struct types.
// It is only touched from the frame thread.
type layoutCache map[reflect.Type][]fieldDesc

func (c layoutCache) fields(t reflect.Type) []fieldDesc {
	if fields, ok := c[t]; ok {
		return fields
	}

	var fields []fieldDesc
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			desc := fieldDesc{Name: sf.Name, Index: i, Kind: sf.Type.Kind()}
			if desc.Kind == reflect.Pointer {
				desc.Deref = true
				desc.Kind = sf.Type.Elem().Kind()
			}
			fields = append(fields, desc)
		}
	}

	c[t] = fields
	return fields
}
