package internal

import "strings"

// tagArray is the Tag type for Array objects.
type tagArray struct{}

func (tagArray) Activate(vm *VM, self, target *Object, args Args) (*Object, Stop) {
	return self, NoStop
}

func (tagArray) String() string {
	return "Array"
}

// ArrayTag is the Tag for Array objects. Activate returns self.
var ArrayTag tagArray

// NewArray creates an Array with the given items.
func (vm *VM) NewArray(items ...*Object) *Object {
	return vm.ObjectWith(nil, vm.ArrayProto, items, ArrayTag)
}

// NewStringArray creates an Array of Strings.
func (vm *VM) NewStringArray(items []string) *Object {
	l := make([]*Object, len(items))
	for i, s := range items {
		l[i] = vm.NewString(s)
	}
	return vm.NewArray(l...)
}

// ArrayItems returns the items of an Array object, or nil for other objects.
func (vm *VM) ArrayItems(obj *Object) []*Object {
	if obj == nil || obj.tag != ArrayTag {
		return nil
	}
	l, _ := obj.Value.([]*Object)
	return l
}

// initArray initializes Array on this VM.
func (vm *VM) initArray() {
	vm.ArrayProto = vm.ObjectWith(nil, vm.Root, []*Object{}, ArrayTag)
	slots := Slots{
		"at:":      vm.NewCFunction(ArrayAt, ArrayTag),
		"count":    vm.NewCFunction(ArrayCount, ArrayTag),
		"each:":    vm.NewCFunction(ArrayEach, ArrayTag),
		"first":    vm.NewCFunction(ArrayFirst, ArrayTag),
		"join:":    vm.NewCFunction(ArrayJoin, ArrayTag),
		"last":     vm.NewCFunction(ArrayLast, ArrayTag),
		"new":      vm.NewCFunction(ArrayNew, nil),
		"pop":      vm.NewCFunction(ArrayPop, ArrayTag),
		"push:":    vm.NewCFunction(ArrayPush, ArrayTag),
		"toString": vm.NewCFunction(ArrayToString, ArrayTag),
	}
	vm.SetSlots(vm.ArrayProto, slots)
}

// ArrayNew is an Array method.
//
// new creates an empty array.
func ArrayNew(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewArray(), NoStop
}

// ArrayPush is an Array method.
//
// push: adds an item to the end of the array.
func ArrayPush(vm *VM, target *Object, args Args) (*Object, Stop) {
	v := args.At(0)
	if v == nil {
		v = vm.Nil
	}
	target.Value = append(vm.ArrayItems(target), v)
	return target, NoStop
}

// ArrayPop is an Array method.
//
// pop removes and returns the last item, or Nil if the array is empty.
func ArrayPop(vm *VM, target *Object, args Args) (*Object, Stop) {
	l := vm.ArrayItems(target)
	if len(l) == 0 {
		return vm.Nil, NoStop
	}
	r := l[len(l)-1]
	target.Value = l[:len(l)-1]
	return r, NoStop
}

// ArrayAt is an Array method.
//
// at: returns the nth item in the array. All out-of-bounds values are Nil.
func ArrayAt(vm *VM, target *Object, args Args) (*Object, Stop) {
	k, exc, stop := intArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	l := vm.ArrayItems(target)
	if k >= 0 && k < len(l) {
		return l[k], NoStop
	}
	return vm.Nil, NoStop
}

// ArrayFirst is an Array method.
func ArrayFirst(vm *VM, target *Object, args Args) (*Object, Stop) {
	return ArrayAt(vm, target, Args{vm.NewNumber(0)})
}

// ArrayLast is an Array method.
func ArrayLast(vm *VM, target *Object, args Args) (*Object, Stop) {
	return ArrayAt(vm, target, Args{vm.NewNumber(float64(len(vm.ArrayItems(target)) - 1))})
}

// ArrayCount is an Array method.
//
// count is the number of items in the array.
func ArrayCount(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewNumber(float64(len(vm.ArrayItems(target)))), NoStop
}

// ArrayEach is an Array method.
//
// each: runs the block for each item in order, passing the index and the item.
// A break ends the loop.
func ArrayEach(vm *VM, target *Object, args Args) (*Object, Stop) {
	blk := args.At(0)
	if !isRunnable(blk) {
		return vm.Raise("Expected block.")
	}
	var (
		result *Object
		stop   Stop
	)
	l := vm.ArrayItems(target)
	for k := 0; k < len(l); k++ {
		result, stop = vm.Run(blk, Args{vm.NewNumber(float64(k)), l[k]}, blk)
		if stop != NoStop {
			break
		}
		l = vm.ArrayItems(target)
	}
	return loopResult(result, stop, target)
}

// ArrayJoin is an Array method.
//
// join: concatenates the text of each item with the argument between them.
func ArrayJoin(vm *VM, target *Object, args Args) (*Object, Stop) {
	sep, exc, stop := stringArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	b := strings.Builder{}
	for i, v := range vm.ArrayItems(target) {
		if i > 0 {
			b.Write(sep)
		}
		s, stop := vm.ToString(v)
		if stop != NoStop {
			return s, stop
		}
		b.Write(stringBytes(s))
	}
	return vm.NewString(b.String()), NoStop
}

// ArrayToString is an Array method.
//
// toString creates a string representation of the array.
func ArrayToString(vm *VM, target *Object, args Args) (*Object, Stop) {
	b := strings.Builder{}
	b.WriteString("Array ← ")
	for i, v := range vm.ArrayItems(target) {
		if i > 0 {
			b.WriteString(" ; ")
		}
		b.WriteString(vm.AsString(v))
	}
	return vm.NewString(b.String()), NoStop
}
