package path

import (
	"reflect"
	"strconv"
	"strings"
)

// Split turns "a.b[0].c" into ["a", "b", "0", "c"]. Empty segments are dropped.
func Split(p string) []string {
	p = strings.ReplaceAll(p, "[", ".")
	p = strings.ReplaceAll(p, "]", "")
	parts := strings.Split(p, ".")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Get resolves p inside record. Any missing or non-traversable segment
// yields nil; Get never panics on malformed data.
func Get(record any, p string) any {
	cur := reflect.ValueOf(record)
	for _, seg := range Split(p) {
		next, ok := step(cur, seg)
		if !ok {
			return nil
		}
		cur = next
	}
	for cur.IsValid() && cur.Kind() == reflect.Interface && !cur.IsNil() {
		cur = cur.Elem()
	}
	if !cur.IsValid() || !cur.CanInterface() {
		return nil
	}
	switch cur.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		if cur.IsNil() {
			return nil
		}
	}
	return cur.Interface()
}

func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func step(cur reflect.Value, seg string) (reflect.Value, bool) {
	cur = deref(cur)
	if !cur.IsValid() {
		return reflect.Value{}, false
	}
	switch cur.Kind() {
	case reflect.Map:
		if cur.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		v := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
		if !v.IsValid() {
			return reflect.Value{}, false
		}
		return v, true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= cur.Len() {
			return reflect.Value{}, false
		}
		return cur.Index(i), true
	case reflect.Struct:
		f, ok := field(cur, seg)
		return f, ok
	}
	return reflect.Value{}, false
}

// field finds a struct field by json tag first, then by name (case-insensitive).
func field(v reflect.Value, seg string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if tag == seg {
			return v.Field(i), true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, seg) {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func isIndex(seg string) bool {
	_, err := strconv.Atoi(seg)
	return err == nil
}

// Set writes value at p inside record and returns record. Missing
// intermediate containers are created: []any when the following segment is
// numeric, map[string]any otherwise. A nil record is returned untouched.
// Structs are only writable through a pointer.
func Set(record any, p string, value any) any {
	if record == nil {
		return record
	}
	segs := Split(p)
	if len(segs) == 0 {
		return record
	}
	root := reflect.ValueOf(record)
	if out, ok := assign(root, segs, value); ok && out.IsValid() && out.CanInterface() {
		// maps and pointers are updated in place; a grown top-level slice is
		// handed back as the new record.
		if root.Kind() == reflect.Slice {
			return out.Interface()
		}
	}
	return record
}

// assign sets segs inside cur and returns the (possibly replaced) container.
func assign(cur reflect.Value, segs []string, value any) (reflect.Value, bool) {
	for cur.Kind() == reflect.Interface && !cur.IsNil() {
		cur = cur.Elem()
	}
	if cur.Kind() == reflect.Pointer {
		if cur.IsNil() {
			return cur, false
		}
		elem := cur.Elem()
		if elem.Kind() == reflect.Struct {
			ok := assignStruct(elem, segs, value)
			return cur, ok
		}
		nv, ok := assign(elem, segs, value)
		if ok && elem.CanSet() && nv.IsValid() && nv.Type().AssignableTo(elem.Type()) {
			elem.Set(nv)
		}
		return cur, ok
	}
	seg, rest := segs[0], segs[1:]
	switch cur.Kind() {
	case reflect.Map:
		if cur.IsNil() || cur.Type().Key().Kind() != reflect.String {
			return cur, false
		}
		key := reflect.ValueOf(seg).Convert(cur.Type().Key())
		if len(rest) == 0 {
			return cur, setMapEntry(cur, key, value)
		}
		child := cur.MapIndex(key)
		child, ok := ensureContainer(child, rest[0])
		if !ok {
			return cur, false
		}
		nc, ok := assign(child, rest, value)
		if !ok {
			return cur, false
		}
		return cur, setMapEntry(cur, key, nc.Interface())
	case reflect.Slice:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 {
			return cur, false
		}
		if i >= cur.Len() {
			if cur.Type().Elem().Kind() != reflect.Interface {
				return cur, false
			}
			grown := reflect.MakeSlice(cur.Type(), i+1, i+1)
			reflect.Copy(grown, cur)
			cur = grown
		}
		if len(rest) == 0 {
			return cur, setIndex(cur, i, value)
		}
		child, ok := ensureContainer(cur.Index(i), rest[0])
		if !ok {
			return cur, false
		}
		nc, ok := assign(child, rest, value)
		if !ok {
			return cur, false
		}
		return cur, setIndex(cur, i, nc.Interface())
	}
	return cur, false
}

func assignStruct(v reflect.Value, segs []string, value any) bool {
	f, ok := field(v, segs[0])
	if !ok || !f.CanSet() {
		return false
	}
	if len(segs) == 1 {
		return setValue(f, value)
	}
	if f.Kind() == reflect.Struct {
		return assignStruct(f, segs[1:], value)
	}
	if f.Kind() == reflect.Interface && f.IsNil() || f.Kind() == reflect.Map && f.IsNil() {
		nc, ok := ensureContainer(reflect.Value{}, segs[1])
		if !ok || !nc.Type().AssignableTo(f.Type()) {
			return false
		}
		f.Set(nc)
	}
	nc, ok := assign(f, segs[1:], value)
	if !ok {
		return false
	}
	if nc.Kind() == reflect.Slice && nc.Type().AssignableTo(f.Type()) {
		f.Set(nc)
	}
	return true
}

// ensureContainer returns child when it already is a container, or a fresh
// []any / map[string]any chosen by the shape of the next segment.
func ensureContainer(child reflect.Value, next string) (reflect.Value, bool) {
	c := child
	for c.IsValid() && c.Kind() == reflect.Interface && !c.IsNil() {
		c = c.Elem()
	}
	if c.IsValid() {
		switch c.Kind() {
		case reflect.Map, reflect.Slice:
			if !c.IsNil() {
				return c, true
			}
		case reflect.Pointer:
			if !c.IsNil() {
				return c, true
			}
		}
	}
	if isIndex(next) {
		return reflect.ValueOf(make([]any, 0)), true
	}
	return reflect.ValueOf(map[string]any{}), true
}

func setMapEntry(m, key reflect.Value, value any) bool {
	v := reflect.ValueOf(value)
	et := m.Type().Elem()
	if !v.IsValid() {
		m.SetMapIndex(key, reflect.Zero(et))
		return true
	}
	if !v.Type().AssignableTo(et) {
		if !v.Type().ConvertibleTo(et) {
			return false
		}
		v = v.Convert(et)
	}
	m.SetMapIndex(key, v)
	return true
}

func setIndex(s reflect.Value, i int, value any) bool {
	return setValue(s.Index(i), value)
}

func setValue(dst reflect.Value, value any) bool {
	if !dst.CanSet() {
		return false
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		dst.Set(reflect.Zero(dst.Type()))
		return true
	}
	if v.Type().AssignableTo(dst.Type()) {
		dst.Set(v)
		return true
	}
	if v.Type().ConvertibleTo(dst.Type()) {
		dst.Set(v.Convert(dst.Type()))
		return true
	}
	return false
}
