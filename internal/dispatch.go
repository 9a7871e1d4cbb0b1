package internal

// Send dispatches the message name with args to target. The slot is found on
// target or, if it is searchable, on one of target's ancestors. Handlers
// (CFunctions and Blocks) are activated with target as the receiver; stored
// values are returned as they are.
//
// If no slot is found and target's chain overrides respondTo:, that handler
// receives the message name followed by the original arguments. Otherwise Send
// raises an exception describing the unhandled message.
func (vm *VM) Send(target *Object, name string, args Args) (*Object, Stop) {
	if target == nil {
		target = vm.Nil
	}
	if v, proto := vm.FindProperty(target, name, false); proto != nil {
		return v.Activate(vm, target, args)
	}
	if h, proto := vm.FindProperty(target, "respondTo:", false); proto != nil && h != vm.defaultRespond {
		return h.Activate(vm, target, args.Prepend(vm.NewString(name)))
	}
	vm.Log.Debug("message not understood", "type", vm.TypeName(target), "message", name)
	return vm.Raisef("%s does not understand message '%s'", vm.TypeName(target), name)
}

// Responds reports whether target or an ancestor has a slot for name.
func (vm *VM) Responds(target *Object, name string) bool {
	_, proto := vm.FindProperty(target, name, false)
	return proto != nil
}

// Perform is like Send, but it accepts arguments directly.
func (vm *VM) Perform(target *Object, name string, args ...*Object) (*Object, Stop) {
	return vm.Send(target, name, Args(args))
}
