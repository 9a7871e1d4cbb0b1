// Package testutils provides utilities for testing Citrine objects in Go.
package testutils

import (
	"bytes"
	"sync"
	"testing"

	"github.com/zephyrtronium/citrine"
)

// testVM is the VM used for all tests.
var testVM *citrine.VM

var testVMInit sync.Once

// TestingVM returns a VM for testing. The VM is shared by all tests that use
// this package. Since a VM is single-threaded, tests using it must not run in
// parallel.
func TestingVM() *citrine.VM {
	testVMInit.Do(ResetTestingVM)
	return testVM
}

// VM is shorthand for TestingVM.
func VM() *citrine.VM {
	return TestingVM()
}

// ResetTestingVM reinitializes the VM returned by TestingVM. It is not safe to
// call this in parallel tests.
func ResetTestingVM() {
	testVM = citrine.NewVM()
}

// BenchDummy is a dummy variable to prevent dead code elimination in
// benchmarks.
var BenchDummy *citrine.Object

// Body builds a block body from a Go function.
func Body(f func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop)) citrine.Body {
	return citrine.BodyFunc(f)
}

// Returning is a block body that produces obj.
func Returning(obj *citrine.Object) citrine.Body {
	return citrine.BodyFunc(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		return obj, citrine.NoStop
	})
}

// Sending is a block body that sends a message to the value of a variable.
// Arguments are resolved as variable names when they are strings and used
// directly when they are objects.
func Sending(receiver, msg string, args ...interface{}) citrine.Body {
	return citrine.BodyFunc(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		r, stop := vm.Resolve(receiver)
		if stop != citrine.NoStop {
			return r, stop
		}
		a := make(citrine.Args, len(args))
		for i, v := range args {
			switch v := v.(type) {
			case string:
				x, stop := vm.Resolve(v)
				if stop != citrine.NoStop {
					return x, stop
				}
				a[i] = x
			case *citrine.Object:
				a[i] = v
			default:
				panic("testutils: Sending argument must be a name or an object")
			}
		}
		return vm.Send(r, msg, a)
	})
}

// A SendTestCase is a test case sending a message and checking the result.
type SendTestCase struct {
	// Receiver is the object which receives the message.
	Receiver *citrine.Object
	// Message is the message name.
	Message string
	// Args are the message arguments.
	Args citrine.Args
	// Pass is a predicate taking the result of the send. If Pass returns false,
	// then the test fails.
	Pass func(result *citrine.Object, control citrine.Stop) bool
}

// TestFunc returns a test function for the test case.
func (c SendTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		vm := TestingVM()
		if r, s := vm.Send(c.Receiver, c.Message, c.Args); !c.Pass(r, s) {
			t.Errorf("%s %s produced wrong result; got %s@%p (%s)", vm.TypeName(c.Receiver), c.Message, vm.AsString(r), r, s)
		}
	}
}

// Equal reports whether two objects are identical or are primitives of the
// same type with equal values.
func Equal(want, result *citrine.Object) bool {
	if want == result {
		return true
	}
	if want == nil || result == nil || want.Tag() != result.Tag() {
		return false
	}
	switch w := want.Value.(type) {
	case bool, float64:
		return w == result.Value
	case []byte:
		r, ok := result.Value.([]byte)
		return ok && bytes.Equal(w, r)
	}
	return false
}

// PassEqual returns a Pass function that predicates on equality per Equal. If
// the Stop is not NoStop, then the predicate returns false.
func PassEqual(want *citrine.Object) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		if control != citrine.NoStop {
			return false
		}
		return Equal(want, result)
	}
}

// PassIdentical returns a Pass function that predicates on identity equality,
// i.e. the result must be exactly the given object. If the Stop is not NoStop,
// then the predicate returns false.
func PassIdentical(want *citrine.Object) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		if control != citrine.NoStop {
			return false
		}
		return want == result
	}
}

// PassControl returns a Pass function that predicates on equality with a
// certain control flow status. The control flow check precedes the value
// check. Equality here has the same semantics as in PassEqual.
func PassControl(want *citrine.Object, stop citrine.Stop) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		if control != stop {
			return false
		}
		return Equal(want, result)
	}
}

// PassTag returns a Pass function that predicates on equality of the Tag of
// the result. If the Stop is not NoStop, then the predicate returns false.
func PassTag(want citrine.Tag) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		if control != citrine.NoStop {
			return false
		}
		return result.Tag() == want
	}
}

// PassFailure returns a Pass function that returns true iff the result is a
// raised exception.
func PassFailure() func(*citrine.Object, citrine.Stop) bool {
	// This doesn't need to be a function returning a function, but it's nice to
	// stay consistent with the other predicate generators.
	return func(result *citrine.Object, control citrine.Stop) bool {
		return control == citrine.ExceptionStop
	}
}

// PassSuccess returns a Pass function that returns true iff the control flow
// status is NoStop.
func PassSuccess() func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		return control == citrine.NoStop
	}
}

// PassString returns a Pass function that returns true iff the result is a
// String with the given text and the control flow status is NoStop.
func PassString(want string) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		return control == citrine.NoStop && result.Tag() == citrine.StringTag && TestingVM().StringValue(result) == want
	}
}

// PassNumber returns a Pass function that returns true iff the result is a
// Number with the given value and the control flow status is NoStop.
func PassNumber(want float64) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		return control == citrine.NoStop && result.Tag() == citrine.NumberTag && TestingVM().NumberValue(result) == want
	}
}

// PassBool returns a Pass function that returns true iff the result is a
// Boolean with the given value and the control flow status is NoStop.
func PassBool(want bool) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		return control == citrine.NoStop && result.Tag() == citrine.BooleanTag && TestingVM().BoolValue(result) == want
	}
}

// PassRaised returns a Pass function that returns true iff the result is a
// raised exception whose payload is a String with the given text.
func PassRaised(want string) func(*citrine.Object, citrine.Stop) bool {
	return func(result *citrine.Object, control citrine.Stop) bool {
		return control == citrine.ExceptionStop && result.Tag() == citrine.StringTag && TestingVM().StringValue(result) == want
	}
}

// CheckSlots is a testing helper to check whether an object has exactly the
// slots we expect.
func CheckSlots(t *testing.T, obj *citrine.Object, slots []string) {
	t.Helper()
	vm := TestingVM()
	checked := make(map[string]bool, len(slots))
	for _, name := range slots {
		checked[name] = true
		t.Run("Have_"+name, func(t *testing.T) {
			slot, ok := vm.GetLocalSlot(obj, name)
			if !ok {
				t.Fatal("no slot", name)
			}
			if slot == nil {
				t.Fatal("slot", name, "is nil")
			}
		})
	}
	for _, name := range vm.SlotNames(obj) {
		t.Run("Want_"+name, func(t *testing.T) {
			if !checked[name] {
				t.Fatal("unexpected slot", name)
			}
		})
	}
}

// CheckLink is a testing helper to check that an object's prototype is the
// expected one.
func CheckLink(t *testing.T, obj, proto *citrine.Object) {
	t.Helper()
	if obj.Link() != proto {
		t.Errorf("wrong prototype: want %v, have %v", proto, obj.Link())
	}
}
