package internal

// Body is the code of a block. The core does not evaluate source itself; a
// Body runs against the VM's current context stack, in which the block's
// parameters, me, and thisBlock are bound in the innermost frame. A nil result
// with NoStop means the body produced no value.
type Body interface {
	Eval(vm *VM, ctx *Context) (*Object, Stop)
}

// BodyFunc adapts a Go function to a Body.
type BodyFunc func(vm *VM, ctx *Context) (*Object, Stop)

// Eval calls f.
func (f BodyFunc) Eval(vm *VM, ctx *Context) (*Object, Stop) {
	return f(vm, ctx)
}

// A Block is a reusable, lexically scoped piece of code. Essentially a
// function.
type Block struct {
	// Params is the list of parameter names.
	Params []string
	// Body is the code to run.
	Body Body
	// Scope is the frame which was innermost when the block was created.
	// Names the block's body cannot resolve locally are resolved through it.
	Scope *Frame
}

// tagBlock is the Tag type for Block objects.
type tagBlock struct{}

// Activate runs the block with the message receiver as me.
func (tagBlock) Activate(vm *VM, self, target *Object, args Args) (*Object, Stop) {
	return vm.Run(self, args, target)
}

func (tagBlock) String() string {
	return "Block"
}

// BlockTag is the Tag for Block objects. Activate runs the block with the
// receiver of the message as me.
var BlockTag Tag = tagBlock{}

// NewBlock creates a new Block object capturing the VM's innermost frame.
func (vm *VM) NewBlock(params []string, body Body) *Object {
	blk := &Block{
		Params: params,
		Body:   body,
		Scope:  vm.Context.Top(),
	}
	return vm.ObjectWith(nil, vm.BlockProto, blk, BlockTag)
}

// Run invokes a block: it opens a frame, binds parameters positionally against
// args, binds me and thisBlock, and evaluates the body. A body without a
// result yields me. The frame is closed before Run returns on every path.
//
// If the body raises an exception and the block has a local catch slot, the
// catch block runs with the payload as its sole argument and the same me, and
// Run returns the block itself. Breaks are never caught here.
//
// A CFunction given in place of a block is activated with me as its receiver.
func (vm *VM) Run(blk *Object, args Args, me *Object) (*Object, Stop) {
	if me == nil {
		me = vm.Nil
	}
	if blk != nil && blk.tag == CFunctionTag {
		return blk.Activate(vm, me, args)
	}
	b, ok := blockValue(blk)
	if !ok {
		return vm.Raisef("Expected block, got %s.", vm.TypeName(blk))
	}
	result, stop := vm.runBody(blk, b, args, me)
	if stop != ExceptionStop {
		return result, stop
	}
	catch, ok := vm.GetLocalSlot(blk, "catch")
	if !ok {
		return result, stop
	}
	vm.Log.Debug("catch absorbed exception", "payload", vm.AsString(result))
	if r, s := vm.Run(catch, Args{result}, me); s != NoStop {
		return r, s
	}
	return blk, NoStop
}

func (vm *VM) runBody(blk *Object, b *Block, args Args, me *Object) (result *Object, stop Stop) {
	frame := vm.Context.Open(vm, b.Scope)
	defer vm.Context.Close(frame)
	args.Zip(b.Params, func(name string, value *Object) {
		frame.Define(vm, name, value)
	})
	frame.Define(vm, "me", me)
	frame.Define(vm, "thisBlock", blk)
	if b.Body != nil {
		result, stop = b.Body.Eval(vm, vm.Context)
	}
	if result == nil {
		if stop == ExceptionStop {
			result = vm.Nil
		} else {
			result = me
		}
	}
	return result, stop
}

func blockValue(obj *Object) (*Block, bool) {
	if obj == nil || obj.tag != BlockTag {
		return nil, false
	}
	b, ok := obj.Value.(*Block)
	return b, ok
}

func isRunnable(obj *Object) bool {
	return obj != nil && (obj.tag == BlockTag || obj.tag == CFunctionTag)
}

func (vm *VM) initBlock() {
	slots := Slots{
		"*":           vm.NewCFunction(BlockTimes, nil),
		"catch:":      vm.NewCFunction(BlockCatch, nil),
		"error:":      vm.NewCFunction(BlockError, nil),
		"run":         vm.NewCFunction(BlockRunIt, nil),
		"times:":      vm.NewCFunction(BlockTimes, nil),
		"whileFalse:": vm.NewCFunction(BlockWhileFalse, nil),
		"whileTrue:":  vm.NewCFunction(BlockWhileTrue, nil),
	}
	vm.SetSlots(vm.BlockProto, slots)
}

// BlockRunIt is a Block method.
//
// run runs the block with itself as me. A break inside the block ends here.
func BlockRunIt(vm *VM, target *Object, args Args) (*Object, Stop) {
	result, stop := vm.Run(target, args, target)
	return loopResult(result, stop, result)
}

// BlockTimes is a Block method.
//
// * runs the block as many times as the argument says, passing the index of
// each iteration, starting at 0.
func BlockTimes(vm *VM, target *Object, args Args) (*Object, Stop) {
	if !isRunnable(target) {
		return vm.Raise("Expected code block.")
	}
	n, stop := vm.ToNumber(args.At(0))
	if stop != NoStop {
		return n, stop
	}
	t := int(vm.NumberValue(n))
	var result *Object
	for i := 0; i < t; i++ {
		result, stop = vm.Run(target, Args{vm.NewNumber(float64(i))}, target)
		if stop != NoStop {
			break
		}
	}
	return loopResult(result, stop, target)
}

// BlockWhileTrue is a Block method.
//
// whileTrue: runs the argument block as long as the receiver block yields
// True.
func BlockWhileTrue(vm *VM, target *Object, args Args) (*Object, Stop) {
	return blockWhile(vm, target, args, true)
}

// BlockWhileFalse is a Block method.
//
// whileFalse: runs the argument block as long as the receiver block yields
// False.
func BlockWhileFalse(vm *VM, target *Object, args Args) (*Object, Stop) {
	return blockWhile(vm, target, args, false)
}

func blockWhile(vm *VM, target *Object, args Args, want bool) (*Object, Stop) {
	body := args.At(0)
	if !isRunnable(body) {
		return vm.Raise("Expected block.")
	}
	for {
		cond, stop := vm.Run(target, args, target)
		if stop != NoStop {
			return loopResult(cond, stop, target)
		}
		c, stop := vm.ToBool(cond)
		if stop != NoStop {
			return c, stop
		}
		if vm.BoolValue(c) != want {
			return target, NoStop
		}
		if r, stop := vm.Run(body, args, body); stop != NoStop {
			return loopResult(r, stop, target)
		}
	}
}

// BlockError is a Block method.
//
// error: raises its argument as an exception. Any object may be raised,
// including Nil.
func BlockError(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.RaiseObject(args.At(0))
}

// BlockCatch is a Block method.
//
// catch: installs a handler which runs when the receiver raises an exception.
// The handler belongs to this block alone.
func BlockCatch(vm *VM, target *Object, args Args) (*Object, Stop) {
	if !isRunnable(args.At(0)) {
		return vm.Raise("Expected argument catch: to be of type block.")
	}
	vm.AddProperty(target, "catch", args.At(0), false)
	return target, NoStop
}
