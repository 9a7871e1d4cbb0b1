package internal

import "math"

// NewNumber creates a Number object with the given value. Numbers are not
// shared, since the mutating methods change their receivers.
func (vm *VM) NewNumber(value float64) *Object {
	return vm.ObjectWith(nil, vm.NumberProto, value, NumberTag)
}

// NewNumberFromString creates a Number from decimal text. Text which does not
// begin with a number yields 0.
func (vm *VM) NewNumberFromString(s string) *Object {
	return vm.NewNumber(ParseNumber(s))
}

// NumberValue returns the value of a Number object, or 0 for other objects.
func (vm *VM) NumberValue(obj *Object) float64 {
	if obj == nil || obj.tag != NumberTag {
		return 0
	}
	f, _ := obj.Value.(float64)
	return f
}

func (vm *VM) initNumber() {
	slots := Slots{
		"!=":           vm.NewCFunction(NumberNotEqual, NumberTag),
		"%":            vm.NewCFunction(NumberModulo, NumberTag),
		"*":            vm.NewCFunction(NumberMultiply, NumberTag),
		"+":            vm.NewCFunction(NumberAdd, NumberTag),
		"-":            vm.NewCFunction(NumberMinus, NumberTag),
		"/":            vm.NewCFunction(NumberDivide, NumberTag),
		"<":            vm.NewCFunction(NumberLess, NumberTag),
		"<=":           vm.NewCFunction(NumberLessEqual, NumberTag),
		"=":            vm.NewCFunction(NumberEqual, NumberTag),
		">":            vm.NewCFunction(NumberGreater, NumberTag),
		">=":           vm.NewCFunction(NumberGreaterEqual, NumberTag),
		"abs":          vm.NewCFunction(numberMath(math.Abs), NumberTag),
		"atan":         vm.NewCFunction(numberMath(math.Atan), NumberTag),
		"between:and:": vm.NewCFunction(NumberBetween, NumberTag),
		"ceil":         vm.NewCFunction(numberMath(math.Ceil), NumberTag),
		"cos":          vm.NewCFunction(numberMath(math.Cos), NumberTag),
		"dec:":         vm.NewCFunction(NumberDec, NumberTag),
		"div:":         vm.NewCFunction(NumberDiv, NumberTag),
		"exp":          vm.NewCFunction(numberMath(math.Exp), NumberTag),
		"factorial":    vm.NewCFunction(NumberFactorial, NumberTag),
		"floor":        vm.NewCFunction(numberMath(math.Floor), NumberTag),
		"inc:":         vm.NewCFunction(NumberInc, NumberTag),
		"log":          vm.NewCFunction(numberMath(math.Log), NumberTag),
		"max:":         vm.NewCFunction(NumberMax, NumberTag),
		"min:":         vm.NewCFunction(NumberMin, NumberTag),
		"mul:":         vm.NewCFunction(NumberMul, NumberTag),
		"pow:":         vm.NewCFunction(NumberPow, NumberTag),
		"round":        vm.NewCFunction(numberMath(math.Round), NumberTag),
		"sin":          vm.NewCFunction(numberMath(math.Sin), NumberTag),
		"sqrt":         vm.NewCFunction(numberMath(math.Sqrt), NumberTag),
		"tan":          vm.NewCFunction(numberMath(math.Tan), NumberTag),
		"to:by:do:":    vm.NewCFunction(NumberToByDo, NumberTag),
		"toBoolean":    vm.NewCFunction(NumberToBoolean, NumberTag),
		"toNumber":     vm.NewCFunction(NumberToNumber, NumberTag),
		"toString":     vm.NewCFunction(NumberToString, NumberTag),
	}
	vm.SetSlots(vm.NumberProto, slots)
}

// numberArg casts the argument at position i to a float64.
func numberArg(vm *VM, args Args, i int) (float64, *Object, Stop) {
	n, stop := vm.ToNumber(args.At(i))
	if stop != NoStop {
		return 0, n, stop
	}
	return vm.NumberValue(n), nil, NoStop
}

// numberOp builds a Number method which computes a new value from the
// receiver and the argument.
func numberOp(op func(a, b float64) float64) Fn {
	return func(vm *VM, target *Object, args Args) (*Object, Stop) {
		b, exc, stop := numberArg(vm, args, 0)
		if stop != NoStop {
			return exc, stop
		}
		return vm.NewNumber(op(vm.NumberValue(target), b)), NoStop
	}
}

// numberCompare builds a Number comparison method.
func numberCompare(op func(a, b float64) bool) Fn {
	return func(vm *VM, target *Object, args Args) (*Object, Stop) {
		b, exc, stop := numberArg(vm, args, 0)
		if stop != NoStop {
			return exc, stop
		}
		return vm.NewBool(op(vm.NumberValue(target), b)), NoStop
	}
}

// numberMath builds a Number method applying a unary function.
func numberMath(op func(float64) float64) Fn {
	return func(vm *VM, target *Object, args Args) (*Object, Stop) {
		return vm.NewNumber(op(vm.NumberValue(target))), NoStop
	}
}

// numberMutate builds a mutating Number method. The receiver is unchanged
// when the method raises.
func numberMutate(op func(vm *VM, a, b float64) (float64, bool)) Fn {
	return func(vm *VM, target *Object, args Args) (*Object, Stop) {
		b, exc, stop := numberArg(vm, args, 0)
		if stop != NoStop {
			return exc, stop
		}
		r, ok := op(vm, vm.NumberValue(target), b)
		if !ok {
			return vm.Raise("Division by zero.")
		}
		target.Value = r
		return target, NoStop
	}
}

// Comparison methods of Number.
var (
	NumberGreater      = numberCompare(func(a, b float64) bool { return a > b })
	NumberGreaterEqual = numberCompare(func(a, b float64) bool { return a >= b })
	NumberLess         = numberCompare(func(a, b float64) bool { return a < b })
	NumberLessEqual    = numberCompare(func(a, b float64) bool { return a <= b })
	NumberEqual        = numberCompare(func(a, b float64) bool { return a == b })
	NumberNotEqual     = numberCompare(func(a, b float64) bool { return a != b })
)

// Arithmetic methods of Number which produce new values.
var (
	NumberMinus = numberOp(func(a, b float64) float64 { return a - b })
	NumberPow   = numberOp(math.Pow)
	NumberMax   = numberOp(func(a, b float64) float64 {
		if a >= b {
			return a
		}
		return b
	})
	NumberMin = numberOp(func(a, b float64) float64 {
		if a <= b {
			return a
		}
		return b
	})
)

// Mutating methods of Number. These change the receiver and return it.
var (
	NumberInc = numberMutate(func(vm *VM, a, b float64) (float64, bool) { return a + b, true })
	NumberDec = numberMutate(func(vm *VM, a, b float64) (float64, bool) { return a - b, true })
	NumberMul = numberMutate(func(vm *VM, a, b float64) (float64, bool) { return a * b, true })
	NumberDiv = numberMutate(func(vm *VM, a, b float64) (float64, bool) {
		if b == 0 {
			return a, false
		}
		return a / b, true
	})
)

// NumberAdd is a Number method.
//
// + adds two numbers. If the argument is a String, the result is instead the
// receiver's text followed by the argument.
func NumberAdd(vm *VM, target *Object, args Args) (*Object, Stop) {
	if arg := args.At(0); arg != nil && arg.tag == StringTag {
		s, stop := vm.ToString(target)
		if stop != NoStop {
			return s, stop
		}
		return StringConcat(vm, s, args)
	}
	b, exc, stop := numberArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	return vm.NewNumber(vm.NumberValue(target) + b), NoStop
}

// NumberMultiply is a Number method.
//
// * multiplies two numbers. If the argument is a block, the block runs as
// many times as the receiver says.
func NumberMultiply(vm *VM, target *Object, args Args) (*Object, Stop) {
	if arg := args.At(0); isRunnable(arg) {
		return BlockTimes(vm, arg, Args{target})
	}
	b, exc, stop := numberArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	return vm.NewNumber(vm.NumberValue(target) * b), NoStop
}

// NumberDivide is a Number method.
//
// / divides the receiver by the argument. Division by zero raises an exception
// and leaves the receiver unchanged.
func NumberDivide(vm *VM, target *Object, args Args) (*Object, Stop) {
	b, exc, stop := numberArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	if b == 0 {
		return vm.Raise("Division by zero.")
	}
	return vm.NewNumber(vm.NumberValue(target) / b), NoStop
}

// NumberModulo is a Number method.
//
// % returns the floating-point remainder of division. Zero divisors raise like
// in /.
func NumberModulo(vm *VM, target *Object, args Args) (*Object, Stop) {
	b, exc, stop := numberArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	if b == 0 {
		return vm.Raise("Division by zero.")
	}
	return vm.NewNumber(math.Mod(vm.NumberValue(target), b)), NoStop
}

// NumberBetween is a Number method.
//
// between:and: returns whether the receiver lies within the inclusive range.
func NumberBetween(vm *VM, target *Object, args Args) (*Object, Stop) {
	lo, exc, stop := numberArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	hi, exc, stop := numberArg(vm, args, 1)
	if stop != NoStop {
		return exc, stop
	}
	n := vm.NumberValue(target)
	return vm.NewBool(n >= lo && n <= hi), NoStop
}

// NumberFactorial is a Number method.
func NumberFactorial(vm *VM, target *Object, args Args) (*Object, Stop) {
	a := 1.0
	for i := int(vm.NumberValue(target)); i > 0; i-- {
		a *= float64(i)
	}
	return vm.NewNumber(a), NoStop
}

// NumberToByDo is a Number method.
//
// to:by:do: runs the block for each value from the receiver up to, but not
// including, the first argument, stepping by the second. The direction of the
// loop comes from the receiver and the end value. A zero step raises an
// exception, and a step pointing away from the end runs nothing.
func NumberToByDo(vm *VM, target *Object, args Args) (*Object, Stop) {
	end, exc, stop := numberArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	step, exc, stop := numberArg(vm, args, 1)
	if stop != NoStop {
		return exc, stop
	}
	blk := args.At(2)
	if !isRunnable(blk) {
		return vm.Raise("Expected block.")
	}
	start := vm.NumberValue(target)
	forward := start < end
	if step == 0 && start != end {
		return vm.Raise("Step must not be zero.")
	}
	if (forward && step < 0) || (!forward && step > 0) {
		return target, NoStop
	}
	var result *Object
	stop = NoStop
	// Repeated addition stalls past 2^53, so values come from the count.
	for k := 0; ; k++ {
		cur := start + float64(k)*step
		if (forward && cur >= end) || (!forward && cur <= end) {
			break
		}
		result, stop = vm.Run(blk, Args{vm.NewNumber(cur)}, blk)
		if stop != NoStop {
			break
		}
	}
	return loopResult(result, stop, target)
}

// NumberToString is a Number method.
func NumberToString(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString(FormatNumber(vm.NumberValue(target))), NoStop
}

// NumberToBoolean is a Number method.
//
// toBoolean is False for 0 and True otherwise.
func NumberToBoolean(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(vm.NumberValue(target) != 0), NoStop
}

// NumberToNumber is a Number method.
func NumberToNumber(vm *VM, target *Object, args Args) (*Object, Stop) {
	return target, NoStop
}
