package internal_test

import (
	"testing"

	"github.com/zephyrtronium/citrine"
	"github.com/zephyrtronium/citrine/testutils"
)

// TestBlockSlots tests that Block has the slots we expect.
func TestBlockSlots(t *testing.T) {
	vm := testutils.VM()
	slots := []string{
		"*",
		"catch:",
		"error:",
		"run",
		"times:",
		"whileFalse:",
		"whileTrue:",
	}
	testutils.CheckSlots(t, vm.BlockProto, slots)
}

// lookup returns a body which produces the value of a variable.
func lookup(name string) citrine.Body {
	return testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		return vm.Resolve(name)
	})
}

// TestRunBinding tests that parameters, me, and thisBlock are bound when a
// block runs.
func TestRunBinding(t *testing.T) {
	vm := testutils.VM()
	me := vm.NewObject(nil)
	a, b := vm.NewNumber(1), vm.NewNumber(2)
	cases := map[string]struct {
		params []string
		args   citrine.Args
		name   string
		pass   func(*citrine.Object, citrine.Stop) bool
	}{
		"First":       {[]string{"x", "y"}, citrine.Args{a, b}, "x", testutils.PassIdentical(a)},
		"Second":      {[]string{"x", "y"}, citrine.Args{a, b}, "y", testutils.PassIdentical(b)},
		"Exhausted":   {[]string{"x", "y"}, citrine.Args{a}, "y", testutils.PassRaised("Key not found: y")},
		"ExtraArgs":   {[]string{"x"}, citrine.Args{a, b}, "x", testutils.PassIdentical(a)},
		"NoArgs":      {[]string{"x"}, nil, "x", testutils.PassRaised("Key not found: x")},
		"Me":          {nil, nil, "me", testutils.PassIdentical(me)},
		"World":       {nil, nil, "Object", testutils.PassIdentical(vm.Root)},
		"NotInWorld":  {nil, nil, "nowhere", testutils.PassRaised("Key not found: nowhere")},
		"ParamShadow": {[]string{"Object"}, citrine.Args{a}, "Object", testutils.PassIdentical(a)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			blk := vm.NewBlock(c.params, lookup(c.name))
			r, stop := vm.Run(blk, c.args, me)
			if !c.pass(r, stop) {
				t.Errorf("%s is %s (%v)", c.name, vm.AsString(r), stop)
			}
		})
	}
	t.Run("ThisBlock", func(t *testing.T) {
		blk := vm.NewBlock(nil, lookup("thisBlock"))
		r, stop := vm.Run(blk, nil, me)
		if !testutils.PassIdentical(blk)(r, stop) {
			t.Errorf("thisBlock is %s (%v)", vm.AsString(r), stop)
		}
	})
	t.Run("NilMe", func(t *testing.T) {
		blk := vm.NewBlock(nil, lookup("me"))
		r, stop := vm.Run(blk, nil, nil)
		if !testutils.PassIdentical(vm.Nil)(r, stop) {
			t.Errorf("me is %s (%v)", vm.AsString(r), stop)
		}
	})
}

// TestRunResult tests the result of a block run for bodies with and without
// values.
func TestRunResult(t *testing.T) {
	vm := testutils.VM()
	me := vm.NewObject(nil)
	v := vm.NewString("value")
	cases := map[string]struct {
		body citrine.Body
		pass func(*citrine.Object, citrine.Stop) bool
	}{
		"Value":  {testutils.Returning(v), testutils.PassIdentical(v)},
		"NoBody": {nil, testutils.PassIdentical(me)},
		"NoValue": {testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return nil, citrine.NoStop
		}), testutils.PassIdentical(me)},
		"Raise": {testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Raise("bad")
		}), testutils.PassRaised("bad")},
		"Break": {testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return nil, citrine.BreakStop
		}), testutils.PassControl(me, citrine.BreakStop)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, stop := vm.Run(vm.NewBlock(nil, c.body), nil, me)
			if !c.pass(r, stop) {
				t.Errorf("wrong result %s (%v)", vm.AsString(r), stop)
			}
		})
	}
}

// TestRunNotBlock tests that running something which is not a block raises,
// and that CFunctions run directly.
func TestRunNotBlock(t *testing.T) {
	vm := testutils.VM()
	cases := map[string]struct {
		o    *citrine.Object
		want string
	}{
		"Number": {vm.NewNumber(1), "Expected block, got Number."},
		"Object": {vm.NewObject(nil), "Expected block, got Object."},
		"Nil":    {nil, "Expected block, got Nil."},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, stop := vm.Run(c.o, nil, nil)
			if !testutils.PassRaised(c.want)(r, stop) {
				t.Errorf("wrong result %s (%v)", vm.AsString(r), stop)
			}
		})
	}
	t.Run("CFunction", func(t *testing.T) {
		me := vm.NewObject(nil)
		f, _ := vm.GetLocalSlot(vm.Root, "myself")
		r, stop := vm.Run(f, nil, me)
		if !testutils.PassIdentical(me)(r, stop) {
			t.Errorf("wrong result %s (%v)", vm.AsString(r), stop)
		}
	})
}

// TestRunDepth tests that the context stack returns to its original depth
// however a block finishes.
func TestRunDepth(t *testing.T) {
	vm := testutils.VM()
	depth := vm.Context.Depth()
	var inner int
	body := func(stop citrine.Stop) citrine.Body {
		return testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			inner = ctx.Depth()
			return vm.Nil, stop
		})
	}
	cases := map[string]*citrine.Object{
		"Normal":    vm.NewBlock(nil, body(citrine.NoStop)),
		"Break":     vm.NewBlock(nil, body(citrine.BreakStop)),
		"Exception": vm.NewBlock(nil, body(citrine.ExceptionStop)),
		"Caught":    vm.NewBlock(nil, body(citrine.ExceptionStop)),
	}
	vm.Perform(cases["Caught"], "catch:", vm.NewBlock([]string{"e"}, nil))
	for name, blk := range cases {
		t.Run(name, func(t *testing.T) {
			inner = 0
			vm.Run(blk, nil, nil)
			if inner != depth+1 {
				t.Errorf("body ran at depth %d, want %d", inner, depth+1)
			}
			if d := vm.Context.Depth(); d != depth {
				t.Errorf("depth after run is %d, want %d", d, depth)
			}
		})
	}
	t.Run("Nested", func(t *testing.T) {
		var deepest int
		innerBlk := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			deepest = ctx.Depth()
			return vm.Raise("deep")
		}))
		outer := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Run(innerBlk, nil, nil)
		}))
		if r, stop := vm.Run(outer, nil, nil); !testutils.PassRaised("deep")(r, stop) {
			t.Errorf("wrong result %s (%v)", vm.AsString(r), stop)
		}
		if deepest != depth+2 {
			t.Errorf("inner body ran at depth %d, want %d", deepest, depth+2)
		}
		if d := vm.Context.Depth(); d != depth {
			t.Errorf("depth after run is %d, want %d", d, depth)
		}
	})
}

// TestClosure tests that blocks resolve names through the scope in which they
// were created rather than the scope in which they run.
func TestClosure(t *testing.T) {
	vm := testutils.VM()
	captured := vm.NewString("captured")
	var made *citrine.Object
	maker := vm.NewBlock([]string{"x"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		made = vm.NewBlock(nil, lookup("x"))
		return made, citrine.NoStop
	}))
	if _, stop := vm.Run(maker, citrine.Args{captured}, nil); stop != citrine.NoStop {
		t.Fatal("maker failed")
	}
	if r, stop := vm.Run(made, nil, nil); !testutils.PassIdentical(captured)(r, stop) {
		t.Errorf("closure produced %s (%v)", vm.AsString(r), stop)
	}

	t.Run("NotDynamic", func(t *testing.T) {
		free := vm.NewBlock(nil, lookup("secret"))
		caller := vm.NewBlock([]string{"secret"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Run(free, nil, nil)
		}))
		r, stop := vm.Run(caller, citrine.Args{vm.NewString("leaked")}, nil)
		if !testutils.PassRaised("Key not found: secret")(r, stop) {
			t.Errorf("caller variable visible: %s (%v)", vm.AsString(r), stop)
		}
	})
	t.Run("Assign", func(t *testing.T) {
		counter := vm.NewBlock([]string{"n"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			inc := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
				n, _ := ctx.Lookup("n")
				if !ctx.Assign(vm, "n", vm.NewNumber(vm.NumberValue(n)+1)) {
					return vm.Raise("n not assignable")
				}
				return nil, citrine.NoStop
			}))
			for i := 0; i < 3; i++ {
				if r, stop := vm.Run(inc, nil, nil); stop != citrine.NoStop {
					return r, stop
				}
			}
			return vm.Resolve("n")
		}))
		r, stop := vm.Run(counter, citrine.Args{vm.NewNumber(0)}, nil)
		if !testutils.PassNumber(3)(r, stop) {
			t.Errorf("counter produced %s (%v)", vm.AsString(r), stop)
		}
	})
}

// TestCatch tests that a catch handler absorbs exceptions raised in its block.
func TestCatch(t *testing.T) {
	vm := testutils.VM()
	var payload, handlerMe *citrine.Object
	handler := vm.NewBlock([]string{"e"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		payload, _ = ctx.Lookup("e")
		handlerMe, _ = ctx.Lookup("me")
		return vm.NewString("ignored"), citrine.NoStop
	}))
	raising := func(msg string) *citrine.Object {
		return vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Raise(msg)
		}))
	}

	blk := raising("oops")
	if r, stop := vm.Perform(blk, "catch:", handler); !testutils.PassIdentical(blk)(r, stop) {
		t.Fatalf("catch: produced %s (%v)", vm.AsString(r), stop)
	}
	if s, ok := vm.IsSearchable(blk, "catch"); !ok || s {
		t.Errorf("catch slot searchable=%v ok=%v", s, ok)
	}
	me := vm.NewObject(nil)
	r, stop := vm.Run(blk, nil, me)
	if !testutils.PassIdentical(blk)(r, stop) {
		t.Errorf("caught run produced %s (%v)", vm.AsString(r), stop)
	}
	if vm.AsString(payload) != "oops" {
		t.Errorf("handler got payload %s", vm.AsString(payload))
	}
	if handlerMe != me {
		t.Errorf("handler ran with me %v, want %v", handlerMe, me)
	}

	t.Run("Local", func(t *testing.T) {
		other := raising("uncaught")
		if r, stop := vm.Run(other, nil, nil); !testutils.PassRaised("uncaught")(r, stop) {
			t.Errorf("other block produced %s (%v)", vm.AsString(r), stop)
		}
		child, _ := vm.Send(blk, "make", nil)
		if _, ok := vm.GetLocalSlot(child, "catch"); ok {
			t.Error("catch visible on child")
		}
	})
	t.Run("Rethrow", func(t *testing.T) {
		b := raising("first")
		rethrow := vm.NewBlock([]string{"e"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Raise("second")
		}))
		vm.Perform(b, "catch:", rethrow)
		if r, stop := vm.Run(b, nil, nil); !testutils.PassRaised("second")(r, stop) {
			t.Errorf("rethrow produced %s (%v)", vm.AsString(r), stop)
		}
	})
	t.Run("Outer", func(t *testing.T) {
		inner := raising("inner")
		var got *citrine.Object
		outer := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Run(inner, nil, nil)
		}))
		vm.Perform(outer, "catch:", vm.NewBlock([]string{"e"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			got, _ = ctx.Lookup("e")
			return nil, citrine.NoStop
		})))
		if r, stop := vm.Run(outer, nil, nil); !testutils.PassIdentical(outer)(r, stop) {
			t.Errorf("outer produced %s (%v)", vm.AsString(r), stop)
		}
		if vm.AsString(got) != "inner" {
			t.Errorf("outer handler got %s", vm.AsString(got))
		}
	})
	t.Run("BreakNotCaught", func(t *testing.T) {
		ran := false
		b := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			return vm.Perform(vm.NewBool(true), "break")
		}))
		vm.Perform(b, "catch:", vm.NewBlock([]string{"e"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			ran = true
			return nil, citrine.NoStop
		})))
		if _, stop := vm.Run(b, nil, nil); stop != citrine.BreakStop {
			t.Errorf("break became %v", stop)
		}
		if ran {
			t.Error("handler ran for a break")
		}
	})
	t.Run("NotBlock", func(t *testing.T) {
		r, stop := vm.Perform(raising("x"), "catch:", vm.NewNumber(1))
		if !testutils.PassRaised("Expected argument catch: to be of type block.")(r, stop) {
			t.Errorf("catch: produced %s (%v)", vm.AsString(r), stop)
		}
	})
}

// TestBlockError tests that error: raises any object, Nil included, and that
// such exceptions stay distinct from breaks.
func TestBlockError(t *testing.T) {
	vm := testutils.VM()
	obj := vm.NewObject(nil)
	cases := map[string]struct {
		payload *citrine.Object
		want    *citrine.Object
	}{
		"String":  {vm.NewString("err"), nil},
		"Object":  {obj, obj},
		"Nil":     {vm.Nil, vm.Nil},
		"Missing": {nil, vm.Nil},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			want := c.want
			if want == nil {
				want = c.payload
			}
			var args citrine.Args
			if c.payload != nil {
				args = citrine.Args{c.payload}
			}
			r, stop := vm.Send(vm.NewBlock(nil, nil), "error:", args)
			if stop != citrine.ExceptionStop || r != want {
				t.Errorf("error: produced %s (%v)", vm.AsString(r), stop)
			}
		})
	}
	t.Run("NilCaught", func(t *testing.T) {
		var got *citrine.Object
		b := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			this, _ := ctx.Lookup("thisBlock")
			return vm.Perform(this, "error:", vm.Nil)
		}))
		vm.Perform(b, "catch:", vm.NewBlock([]string{"e"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
			got, _ = ctx.Lookup("e")
			return nil, citrine.NoStop
		})))
		if r, stop := vm.Run(b, nil, nil); !testutils.PassIdentical(b)(r, stop) {
			t.Errorf("run produced %s (%v)", vm.AsString(r), stop)
		}
		if got != vm.Nil {
			t.Errorf("handler got %s, want Nil", vm.AsString(got))
		}
	})
}

// TestBlockRun tests that run runs a block with itself as me and consumes
// breaks.
func TestBlockRun(t *testing.T) {
	vm := testutils.VM()
	blk := vm.NewBlock(nil, lookup("me"))
	if r, stop := vm.Send(blk, "run", nil); !testutils.PassIdentical(blk)(r, stop) {
		t.Errorf("run produced %s (%v)", vm.AsString(r), stop)
	}
	brk := vm.NewBlock(nil, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		return vm.Perform(vm.NewBool(true), "break")
	}))
	if _, stop := vm.Send(brk, "run", nil); stop != citrine.NoStop {
		t.Errorf("break escaped run: %v", stop)
	}
}

func BenchmarkRun(b *testing.B) {
	vm := testutils.VM()
	blk := vm.NewBlock([]string{"x"}, lookup("x"))
	args := citrine.Args{vm.Nil}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		testutils.BenchDummy, _ = vm.Run(blk, args, nil)
	}
}
