package internal

// NewBool creates a new Boolean object. Booleans are not shared: each call
// returns a distinct object.
func (vm *VM) NewBool(v bool) *Object {
	return vm.ObjectWith(nil, vm.BooleanProto, v, BooleanTag)
}

// BoolValue returns the truth value of a Boolean object. Other objects are
// false.
func (vm *VM) BoolValue(obj *Object) bool {
	if obj == nil {
		return false
	}
	b, _ := obj.Value.(bool)
	return obj.tag == BooleanTag && b
}

func (vm *VM) initBoolean() {
	slots := Slots{
		"!=":         vm.NewCFunction(BooleanNotEqual, BooleanTag),
		"&&":         vm.NewCFunction(BooleanAnd, BooleanTag),
		"=":          vm.NewCFunction(BooleanEqual, BooleanTag),
		"and:":       vm.NewCFunction(BooleanAnd, BooleanTag),
		"break":      vm.NewCFunction(BooleanBreak, BooleanTag),
		"either:or:": vm.NewCFunction(BooleanEitherOr, BooleanTag),
		"flip":       vm.NewCFunction(BooleanFlip, BooleanTag),
		"ifFalse:":   vm.NewCFunction(BooleanIfFalse, BooleanTag),
		"ifTrue:":    vm.NewCFunction(BooleanIfTrue, BooleanTag),
		"nor:":       vm.NewCFunction(BooleanNor, BooleanTag),
		"not":        vm.NewCFunction(BooleanNot, BooleanTag),
		"or:":        vm.NewCFunction(BooleanOr, BooleanTag),
		"toBoolean":  vm.NewCFunction(BooleanToBoolean, BooleanTag),
		"toNumber":   vm.NewCFunction(BooleanToNumber, BooleanTag),
		"toString":   vm.NewCFunction(BooleanToString, BooleanTag),
		"xor:":       vm.NewCFunction(BooleanXor, BooleanTag),
		"||":         vm.NewCFunction(BooleanOr, BooleanTag),
	}
	vm.SetSlots(vm.BooleanProto, slots)
}

// BooleanIfTrue is a Boolean method.
//
// ifTrue: runs its block argument if the receiver is True. The block receives
// the receiver as its argument and itself as me. A break inside the block
// passes through to the enclosing loop.
func BooleanIfTrue(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBranch(vm, target, args, true)
}

// BooleanIfFalse is a Boolean method.
//
// ifFalse: runs its block argument if the receiver is False.
func BooleanIfFalse(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBranch(vm, target, args, false)
}

func boolBranch(vm *VM, target *Object, args Args, want bool) (*Object, Stop) {
	if vm.BoolValue(target) != want {
		return target, NoStop
	}
	blk := args.At(0)
	if !isRunnable(blk) {
		return vm.Raise("Expected block.")
	}
	return vm.Run(blk, Args{target}, blk)
}

// BooleanBreak is a Boolean method.
//
// break signals a break if the receiver is True and does nothing otherwise.
func BooleanBreak(vm *VM, target *Object, args Args) (*Object, Stop) {
	if vm.BoolValue(target) {
		return target, BreakStop
	}
	return target, NoStop
}

// BooleanNot is a Boolean method.
//
// not returns the opposite of the receiver.
func BooleanNot(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(!vm.BoolValue(target)), NoStop
}

// BooleanEqual is a Boolean method.
//
// = compares the receiver with its argument cast to a Boolean.
func BooleanEqual(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBinary(vm, target, args, func(a, b bool) bool { return a == b })
}

// BooleanNotEqual is a Boolean method.
//
// != is the negation of =.
func BooleanNotEqual(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBinary(vm, target, args, func(a, b bool) bool { return a != b })
}

// BooleanAnd is a Boolean method.
//
// and: returns whether both the receiver and the argument are true.
func BooleanAnd(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBinary(vm, target, args, func(a, b bool) bool { return a && b })
}

// BooleanOr is a Boolean method.
//
// or: returns whether either the receiver or the argument is true.
func BooleanOr(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBinary(vm, target, args, func(a, b bool) bool { return a || b })
}

// BooleanNor is a Boolean method.
func BooleanNor(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBinary(vm, target, args, func(a, b bool) bool { return !a && !b })
}

// BooleanXor is a Boolean method.
func BooleanXor(vm *VM, target *Object, args Args) (*Object, Stop) {
	return boolBinary(vm, target, args, func(a, b bool) bool { return a != b })
}

func boolBinary(vm *VM, target *Object, args Args, op func(a, b bool) bool) (*Object, Stop) {
	other, stop := vm.ToBool(args.At(0))
	if stop != NoStop {
		return other, stop
	}
	return vm.NewBool(op(vm.BoolValue(target), vm.BoolValue(other))), NoStop
}

// BooleanEitherOr is a Boolean method.
//
// either:or: returns the first argument if the receiver is True and the
// second otherwise.
func BooleanEitherOr(vm *VM, target *Object, args Args) (*Object, Stop) {
	var r *Object
	if vm.BoolValue(target) {
		r = args.At(0)
	} else {
		r = args.At(1)
	}
	if r == nil {
		r = vm.Nil
	}
	return r, NoStop
}

// BooleanFlip is a Boolean method.
//
// flip returns a random Boolean.
func BooleanFlip(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(vm.rng.Intn(2) == 1), NoStop
}

// BooleanToNumber is a Boolean method.
//
// toNumber returns 1 for True and 0 for False.
func BooleanToNumber(vm *VM, target *Object, args Args) (*Object, Stop) {
	if vm.BoolValue(target) {
		return vm.NewNumber(1), NoStop
	}
	return vm.NewNumber(0), NoStop
}

// BooleanToString is a Boolean method.
func BooleanToString(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString(boolText(vm.BoolValue(target))), NoStop
}

// BooleanToBoolean is a Boolean method.
func BooleanToBoolean(vm *VM, target *Object, args Args) (*Object, Stop) {
	return target, NoStop
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
