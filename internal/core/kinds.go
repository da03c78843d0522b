package core

// This file holds the small reflection helpers shared by the checker.

import (
	"reflect"
	"runtime"
	"strings"
)

// funcName gets the function's qualified name.
func funcName(fn reflect.Value) string {
	// docs say to use UnsafePointer explicitly instead of Pointer()
	// https://pkg.go.dev/reflect#Value.Pointer
	rf := runtime.FuncForPC(uintptr(fn.UnsafePointer()))
	if rf == nil {
		return fn.Type().String()
	}

	// this suffix gets appended to method values.
	name := strings.TrimSuffix(rf.Name(), "-fm")

	// drop the module path, keep the package qualifier.
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		name = name[slash+1:]
	}

	return name
}

// isNillableKind returns true if the kind passed is nillable.
// According to https://pkg.go.dev/reflect#Value.IsNil, this is the case for
// chan, func, interface, map, pointer, or slice kinds.
func isNillableKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	case reflect.Invalid, reflect.Bool, reflect.Int,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128, reflect.Array,
		reflect.String, reflect.Struct, reflect.UnsafePointer:
		return false
	default:
		panic("unable to check for nillability for unknown kind " + kind.String())
	}
}

// typeString names a declared type the way it reads in Go source.
func typeString(t reflect.Type) string {
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "" {
		return "any"
	}

	return t.String()
}

// valueTypeString names the runtime type of value, or "nil" for an untyped nil.
func valueTypeString(value any) string {
	if value == nil {
		return "nil"
	}

	return typeString(reflect.TypeOf(value))
}
