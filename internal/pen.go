package internal

import "io"

func (vm *VM) initPen() {
	slots := Slots{
		"brk":    vm.NewCFunction(PenBrk, nil),
		"write:": vm.NewCFunction(PenWrite, nil),
	}
	vm.Pen = vm.NewObject(slots)
}

// PenWrite is a Pen method.
//
// write: writes the argument's text to the VM's output.
func PenWrite(vm *VM, target *Object, args Args) (*Object, Stop) {
	s, stop := vm.ToString(args.At(0))
	if stop != NoStop {
		return s, stop
	}
	if _, err := vm.Out.Write(stringBytes(s)); err != nil {
		return vm.Raisef("Pen write: %v", err)
	}
	return target, NoStop
}

// PenBrk is a Pen method.
//
// brk writes a line break.
func PenBrk(vm *VM, target *Object, args Args) (*Object, Stop) {
	if _, err := io.WriteString(vm.Out, "\n"); err != nil {
		return vm.Raisef("Pen brk: %v", err)
	}
	return target, NoStop
}
