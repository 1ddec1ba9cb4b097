package module

import "reflect"

// PortsOf finds a T in m's port bundle. The bundle itself is tried first,
// then each exported field when the bundle is a struct
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	bundle := m.Ports()
	if bundle == nil {
		return zero, false
	}
	if v, ok := bundle.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(bundle)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for _, f := range reflect.VisibleFields(rv.Type()) {
		if !f.IsExported() || len(f.Index) != 1 {
			continue
		}
		if v, ok := rv.Field(f.Index[0]).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for composition code where a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		var zero T
		panic("module " + m.Name() + ": no port of type " + reflect.TypeOf(&zero).Elem().String())
	}
	return v
}
