package internal

func (vm *VM) initNil() {
	slots := Slots{
		"isNil":     vm.NewCFunction(NilIsNil, nil),
		"toBoolean": vm.NewCFunction(NilToBoolean, nil),
		"toNumber":  vm.NewCFunction(NilToNumber, nil),
		"toString":  vm.NewCFunction(NilToString, nil),
	}
	vm.SetSlots(vm.Nil, slots)
}

// NilIsNil is a Nil method.
//
// isNil is True for Nil.
func NilIsNil(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(true), NoStop
}

// NilToBoolean is a Nil method.
func NilToBoolean(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(false), NoStop
}

// NilToNumber is a Nil method.
func NilToNumber(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewNumber(0), NoStop
}

// NilToString is a Nil method.
func NilToString(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString("Nil"), NoStop
}
