package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

var (
	valueType     = reflect.TypeOf(Value{})
	marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
)

// Normalize converts any Go value into a Value tree. It walks maps, slices,
// arrays, structs (honouring json tags), pointers and interfaces to any
// depth. A Value passed in is returned unchanged, so Normalize is idempotent.
func Normalize(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Value:
		if t == nil {
			return Null()
		}
		return *t
	case json.Number:
		return fromNumber(t)
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromNumber(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return Int(i)
	}
	if f, err := n.Float64(); err == nil {
		return Float(f)
	}
	return String(n.String())
}

func fromReflect(rv reflect.Value) Value {
	if !rv.IsValid() {
		return Null()
	}
	if rv.Type() == valueType {
		return rv.Interface().(Value)
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return fromReflect(rv.Elem())
	}

	if rv.Type().Implements(marshalerType) && rv.CanInterface() {
		return fromMarshaler(rv.Interface().(json.Marshaler))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Float(float64(u))
		}
		return Int(int64(u))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = fromReflect(rv.Index(i))
		}
		return Array(items...)
	case reflect.Map:
		return fromMap(rv)
	case reflect.Struct:
		return Object(structMembers(rv)...)
	}

	return String(fmt.Sprint(rv.Interface()))
}

func fromMap(rv reflect.Value) Value {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	members := make([]Member, len(entries))
	for i, e := range entries {
		members[i] = Member{Key: e.key, Value: fromReflect(e.val)}
	}
	return Object(members...)
}

func fromMarshaler(m json.Marshaler) Value {
	raw, err := m.MarshalJSON()
	if err != nil {
		return Null()
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return Null()
	}
	return Normalize(decoded)
}

func structMembers(rv reflect.Value) []Member {
	rt := rv.Type()
	members := make([]Member, 0, rt.NumField())
	seen := make(map[string]bool, rt.NumField())

	add := func(m Member) {
		if seen[m.Key] {
			return
		}
		seen[m.Key] = true
		members = append(members, m)
	}

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		fv := rv.Field(i)

		name, omitEmpty, skip := parseTag(field)
		if skip {
			continue
		}

		if field.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				for _, m := range structMembers(inner) {
					add(m)
				}
				continue
			}
		}

		if !field.IsExported() {
			continue
		}
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		if name == "" {
			name = field.Name
		}
		add(Member{Key: name, Value: fromReflect(fv)})
	}
	return members
}

func parseTag(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
