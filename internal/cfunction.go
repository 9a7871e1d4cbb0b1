package internal

import (
	"reflect"
	"runtime"
	"strings"
)

// An Fn is a statically compiled function which can be executed in the
// context of a Citrine VM. target is the receiver of the message.
type Fn func(vm *VM, target *Object, args Args) (*Object, Stop)

// A CFunction is object value representing a compiled function.
type CFunction struct {
	// Function is the compiled function.
	Function Fn
	// Type is the tag which receivers of the function must have, or nil if
	// any receiver is acceptable.
	Type Tag
	// Name is the name of the function, for diagnostics.
	Name string
}

// tagCFunction is the tag type for CFunctions.
type tagCFunction struct{}

// Activate calls the wrapped function.
func (tagCFunction) Activate(vm *VM, self, target *Object, args Args) (*Object, Stop) {
	f := self.Value.(CFunction)
	if f.Type != nil && target.Tag() != f.Type {
		return vm.Raisef("receiver of %s must be %v, not %s", f.Name, f.Type, vm.TypeName(target))
	}
	return f.Function(vm, target, args)
}

func (tagCFunction) String() string {
	return "CFunction"
}

// CFunctionTag is the tag for CFunctions.
var CFunctionTag Tag = tagCFunction{}

// NewCFunction creates a new CFunction wrapping f. If kind is not nil, then
// the function raises an exception when activated on a receiver with a
// different tag.
func (vm *VM) NewCFunction(f Fn, kind Tag) *Object {
	u := reflect.ValueOf(f).Pointer()
	name := runtime.FuncForPC(u).Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	cf := CFunction{
		Function: f,
		Type:     kind,
		Name:     name,
	}
	return vm.ObjectWith(nil, vm.BlockProto, cf, CFunctionTag)
}
