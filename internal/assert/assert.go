package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics when value is nil, including typed nil pointers, maps,
// slices, channels and funcs hidden behind an interface.
func NotNil(value any) {
	if isNil(value) {
		panic(fmt.Sprintf("expected value to be not nil, got %T", value))
	}
}

func NotEmptyStr(str string) {
	if str == "" {
		panic("expected string to be non-empty")
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
