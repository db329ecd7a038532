package dbg

import (
	"fmt"
	"reflect"
	"unicode"

	petname "github.com/dustinkirkland/golang-petname"
)

// Readable names for half-edge handles and other comparable values in debug
// output. Handles are small integers that all look alike in a log, and
// "BraveOtter" is easier to follow through a trace than 117. Names are made on
// first use and kept forever, and they differ between runs, so a name only
// means something within one process.

var (
	names = map[interface{}]string{}
	taken = map[string]bool{}
)

func init() {
	petname.NonDeterministicMode()
}

func Name(obj interface{}) string {
	if isNil(obj) {
		return "Ø"
	}
	if name, ok := names[obj]; ok {
		return name
	}

	base := capitalize(petname.Adjective()) + capitalize(petname.Name())
	name := base
	for n := 2; taken[name]; n++ {
		name = fmt.Sprintf("%s%d", base, n)
	}
	taken[name] = true
	names[obj] = name
	return name
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

func isNil(obj interface{}) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
