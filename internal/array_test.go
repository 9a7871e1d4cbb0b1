package internal_test

import (
	"bytes"
	"testing"

	"github.com/zephyrtronium/citrine"
	"github.com/zephyrtronium/citrine/testutils"
)

// TestArraySlots tests that Array has the slots we expect.
func TestArraySlots(t *testing.T) {
	vm := testutils.VM()
	slots := []string{
		"at:",
		"count",
		"each:",
		"first",
		"join:",
		"last",
		"new",
		"pop",
		"push:",
		"toString",
	}
	testutils.CheckSlots(t, vm.ArrayProto, slots)
}

// TestArrayMethods tests Array methods which do not modify the array.
func TestArrayMethods(t *testing.T) {
	vm := testutils.VM()
	a, b, c := vm.NewString("a"), vm.NewNumber(2), vm.NewBool(true)
	arr := vm.NewArray(a, b, c)
	empty := vm.NewArray()
	n := func(f float64) *citrine.Object { return vm.NewNumber(f) }
	cases := map[string]testutils.SendTestCase{
		"At":         {Receiver: arr, Message: "at:", Args: citrine.Args{n(1)}, Pass: testutils.PassIdentical(b)},
		"AtPast":     {Receiver: arr, Message: "at:", Args: citrine.Args{n(3)}, Pass: testutils.PassIdentical(vm.Nil)},
		"AtNegative": {Receiver: arr, Message: "at:", Args: citrine.Args{n(-1)}, Pass: testutils.PassIdentical(vm.Nil)},
		"First":      {Receiver: arr, Message: "first", Pass: testutils.PassIdentical(a)},
		"Last":       {Receiver: arr, Message: "last", Pass: testutils.PassIdentical(c)},
		"FirstEmpty": {Receiver: empty, Message: "first", Pass: testutils.PassIdentical(vm.Nil)},
		"LastEmpty":  {Receiver: empty, Message: "last", Pass: testutils.PassIdentical(vm.Nil)},
		"Count":      {Receiver: arr, Message: "count", Pass: testutils.PassNumber(3)},
		"CountEmpty": {Receiver: empty, Message: "count", Pass: testutils.PassNumber(0)},
		"Join":       {Receiver: arr, Message: "join:", Args: citrine.Args{vm.NewString(", ")}, Pass: testutils.PassString("a, 2, True")},
		"JoinEmpty":  {Receiver: empty, Message: "join:", Args: citrine.Args{vm.NewString(", ")}, Pass: testutils.PassString("")},
		"ToString":   {Receiver: arr, Message: "toString", Pass: testutils.PassString("Array ← a ; 2 ; True")},
		"New":        {Receiver: vm.ArrayProto, Message: "new", Pass: testutils.PassTag(citrine.ArrayTag)},
		"PopEmpty":   {Receiver: vm.NewArray(), Message: "pop", Pass: testutils.PassIdentical(vm.Nil)},
		"NotArray":   {Receiver: vm.NewObject(nil), Message: "count", Pass: testutils.PassFailure()},
	}
	for name, c := range cases {
		t.Run(name, c.TestFunc(name))
	}
}

// TestArrayPushPop tests that push: and pop modify the array in place.
func TestArrayPushPop(t *testing.T) {
	vm := testutils.VM()
	arr, stop := vm.Send(vm.ArrayProto, "new", nil)
	if stop != citrine.NoStop {
		t.Fatal(vm.AsString(arr))
	}
	x, y := vm.NewNumber(1), vm.NewNumber(2)
	for _, v := range []*citrine.Object{x, y} {
		if r, stop := vm.Perform(arr, "push:", v); !testutils.PassIdentical(arr)(r, stop) {
			t.Fatalf("push: produced %s (%v)", vm.AsString(r), stop)
		}
	}
	if items := vm.ArrayItems(arr); len(items) != 2 || items[0] != x || items[1] != y {
		t.Errorf("wrong items after push: %v", items)
	}
	if r, stop := vm.Send(arr, "pop", nil); !testutils.PassIdentical(y)(r, stop) {
		t.Errorf("pop produced %s (%v)", vm.AsString(r), stop)
	}
	if items := vm.ArrayItems(arr); len(items) != 1 || items[0] != x {
		t.Errorf("wrong items after pop: %v", items)
	}
	if n := len(vm.ArrayItems(vm.ArrayProto)); n != 0 {
		t.Errorf("Array proto has %d items", n)
	}
}

// TestArrayEach tests that each: visits items in order and stops on break.
func TestArrayEach(t *testing.T) {
	vm := testutils.VM()
	arr := vm.NewArray(vm.NewString("x"), vm.NewString("y"), vm.NewString("z"))
	var idx []float64
	var items []string
	brk := ""
	blk := vm.NewBlock([]string{"i", "v"}, testutils.Body(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		i, _ := ctx.Lookup("i")
		v, _ := ctx.Lookup("v")
		idx = append(idx, vm.NumberValue(i))
		items = append(items, vm.AsString(v))
		return vm.Perform(vm.NewBool(vm.AsString(v) == brk), "break")
	}))
	if r, stop := vm.Perform(arr, "each:", blk); !testutils.PassIdentical(arr)(r, stop) {
		t.Fatalf("each: produced %s (%v)", vm.AsString(r), stop)
	}
	if len(idx) != 3 || idx[0] != 0 || idx[2] != 2 {
		t.Errorf("wrong indices %v", idx)
	}
	if len(items) != 3 || items[0] != "x" || items[2] != "z" {
		t.Errorf("wrong items %v", items)
	}

	idx, items, brk = nil, nil, "y"
	if _, stop := vm.Perform(arr, "each:", blk); stop != citrine.NoStop {
		t.Errorf("break escaped each: %v", stop)
	}
	if len(items) != 2 {
		t.Errorf("each: ran %d times after break, want 2", len(items))
	}
}

// TestPen tests that Pen writes text to the VM's output.
func TestPen(t *testing.T) {
	vm := testutils.VM()
	var buf bytes.Buffer
	out := vm.Out
	vm.Out = &buf
	defer func() { vm.Out = out }()
	testutils.CheckSlots(t, vm.Pen, []string{"brk", "write:"})
	writes := []*citrine.Object{
		vm.NewString("héllo "),
		vm.NewNumber(3),
		vm.NewBool(false),
		vm.Nil,
		vm.NewArray(vm.NewNumber(1)),
	}
	for _, w := range writes {
		if r, stop := vm.Perform(vm.Pen, "write:", w); !testutils.PassIdentical(vm.Pen)(r, stop) {
			t.Fatalf("write: produced %s (%v)", vm.AsString(r), stop)
		}
	}
	if r, stop := vm.Send(vm.Pen, "brk", nil); !testutils.PassIdentical(vm.Pen)(r, stop) {
		t.Fatalf("brk produced %s (%v)", vm.AsString(r), stop)
	}
	if got, want := buf.String(), "héllo 3FalseNilArray ← 1\n"; got != want {
		t.Errorf("wrong output: want %q, have %q", want, got)
	}

	t.Run("Raising", func(t *testing.T) {
		buf.Reset()
		bad := vm.NewObject(nil)
		vm.SetSlot(bad, "toString", vm.NewCFunction(func(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
			return vm.Raise("no text")
		}, nil))
		r, stop := vm.Perform(vm.Pen, "write:", bad)
		if !testutils.PassRaised("no text")(r, stop) {
			t.Errorf("write: produced %s (%v)", vm.AsString(r), stop)
		}
		if buf.Len() != 0 {
			t.Errorf("raising write: wrote %q", buf.String())
		}
	})
}
