package internal

import "fmt"

// A Frame is one lexical scope. Its variables live in the property table of
// an object with no prototype, so they are never visible through inheritance.
type Frame struct {
	// Vars holds the frame's variables as non-searchable slots.
	Vars *Object
	// Outer is the frame in which the running block was created. It is nil for
	// World's frame and for frames opened without a captured scope, which
	// resolve names directly in World.
	Outer *Frame
}

// Define creates or replaces a variable in the frame.
func (f *Frame) Define(vm *VM, name string, value *Object) {
	if value == nil {
		value = vm.Nil
	}
	vm.AddProperty(f.Vars, name, value, false)
}

// Context is the stack of lexical scopes of a VM. The bottom frame is World.
type Context struct {
	frames []*Frame
}

// newContext creates a context whose only frame holds world.
func newContext(world *Object) *Context {
	return &Context{frames: []*Frame{{Vars: world}}}
}

// World returns the bottom frame.
func (c *Context) World() *Frame {
	return c.frames[0]
}

// Top returns the innermost open frame.
func (c *Context) Top() *Frame {
	return c.frames[len(c.frames)-1]
}

// Depth returns the number of open frames, including World.
func (c *Context) Depth() int {
	return len(c.frames)
}

// Open pushes a fresh frame whose enclosing scope is outer.
func (c *Context) Open(vm *VM, outer *Frame) *Frame {
	f := &Frame{Vars: vm.ObjectWith(nil, nil, nil, nil), Outer: outer}
	c.frames = append(c.frames, f)
	return f
}

// Close pops f, which must be the innermost frame. Panics otherwise, since
// that means a frame leaked out of the invocation that opened it.
func (c *Context) Close(f *Frame) {
	if len(c.frames) <= 1 || c.Top() != f {
		panic(fmt.Sprintf("citrine: closing frame out of order (depth %d)", len(c.frames)))
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
}

// Lookup resolves a variable, searching the innermost frame, then the chain
// of enclosing scopes it was created in, then World.
func (c *Context) Lookup(name string) (*Object, bool) {
	world := c.World()
	for f := c.Top(); f != nil && f != world; f = f.Outer {
		if s, ok := f.Vars.slots.m[name]; ok {
			return s.value, true
		}
	}
	if s, ok := world.Vars.slots.m[name]; ok {
		return s.value, true
	}
	return nil, false
}

// Assign changes the value of an existing variable in the nearest scope which
// defines it. It returns false if no scope does.
func (c *Context) Assign(vm *VM, name string, value *Object) bool {
	world := c.World()
	for f := c.Top(); f != nil; f = f.Outer {
		if _, ok := f.Vars.slots.m[name]; ok {
			f.Define(vm, name, value)
			return true
		}
		if f == world {
			return false
		}
	}
	if _, ok := world.Vars.slots.m[name]; ok {
		world.Define(vm, name, value)
		return true
	}
	return false
}

// Resolve looks up a variable in the VM's context. An unbound name raises an
// exception rather than failing silently.
func (vm *VM) Resolve(name string) (*Object, Stop) {
	if v, ok := vm.Context.Lookup(name); ok {
		return v, NoStop
	}
	return vm.Raisef("Key not found: %s", name)
}
