/*
Package citrine implements the object and execution core of Citrine, a small
prototype-based language in which every value is an object and everything
happens by sending messages.

The runtime can easily be embedded in another program. To start, use the NewVM
function to create and initialize the runtime. World, the global namespace,
holds the core prototypes (Object, Nil, Boolean, Number, String, Block, Array,
Pen) and anything the host installs with VM.Install. Use the VM's NewNumber,
NewString, NewBlock, or any other object creation methods to create objects,
then AddProperty or SetSlot to make them respond to messages.

Objects and Messages

Every object has exactly one prototype, its link. When an object receives a
message, it checks its own property table for a slot with the same name. If
it has none, the search continues along the chain of prototypes, where only
searchable slots are visible. The Root object ends every chain.

A slot holds either a stored value or a handler. Handlers are Blocks or
CFunctions, compiled Go functions; dispatch activates them with the original
receiver. Stored values are simply returned.

	obj := vm.NewObject(nil)
	vm.AddProperty(obj, "greeting", vm.NewString("hello"), false)
	r, stop := vm.Send(obj, "greeting", nil)

The Root object's on:do: installs a searchable handler, so every object
inheriting from the receiver answers the new message. set:value: installs
storage which belongs to the receiver alone.

If no slot answers a message, dispatch looks for an overriding respondTo:
handler, which receives the message name followed by the arguments. Without
one, the message raises an exception naming the receiver's type.

Blocks

A Block is the closure of Citrine. Its Body is supplied by the host: the
runtime itself does not parse or evaluate source text. Running a block opens a
new frame on the VM's Context, binds parameters positionally, binds me (the
receiver) and thisBlock (the block itself), and evaluates the body. Names the
body cannot find in its own frame are resolved in the frame the block was
created in, and finally in World.

	sq := vm.NewBlock([]string{"x"}, citrine.BodyFunc(func(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
		x, _ := ctx.Lookup("x")
		return vm.Send(x, "*", citrine.Args{x})
	}))
	r, stop := vm.Run(sq, citrine.Args{vm.NewNumber(7)}, sq)

Breaks and Exceptions

Every dispatch and every block run returns a Stop with its result. NoStop is
normal completion. ExceptionStop means the result is a raised payload; it
passes up through block runs until a block with a catch: handler absorbs it,
or until it reaches the host. BreakStop comes from sending break to True and
ends the nearest enclosing loop (*, whileTrue:, whileFalse:, to:by:do:, each:)
or run. Conditionals pass breaks through to their loop, and catch: never sees
them.

Because a break is its own Stop, any object, Nil included, can be raised as an
exception.
*/
package citrine

import (
	"github.com/zephyrtronium/citrine/internal"
)

// A VM runs Citrine code. A VM is single-threaded.
type VM = internal.VM

// Object is the basic type of Citrine. Every value is an Object.
//
// Always use NewObject, ObjectWith, or a type-specific constructor to obtain
// new objects. Creating objects directly will result in arbitrary failures.
type Object = internal.Object

// Slots represents the set of messages to which an object responds.
type Slots = internal.Slots

// Tag is a type indicator for Citrine objects. Tag values must be comparable.
type Tag = internal.Tag

// BasicTag is a special Tag type for primitive types which do not have special
// activation.
type BasicTag = internal.BasicTag

// A Stop represents a reason for flow control.
type Stop = internal.Stop

// Args is the ordered list of values passed to a dispatch.
type Args = internal.Args

// A Block is a reusable, lexically scoped piece of code.
type Block = internal.Block

// Body is the code of a block.
type Body = internal.Body

// BodyFunc adapts a Go function to a Body.
type BodyFunc = internal.BodyFunc

// A CFunction is an object value representing a compiled function.
type CFunction = internal.CFunction

// An Fn is a statically compiled function which can be executed in a VM.
type Fn = internal.Fn

// Context is the stack of lexical scopes of a VM.
type Context = internal.Context

// A Frame is one lexical scope.
type Frame = internal.Frame

// ExceptionError is the Go error describing an exception which reached the
// host.
type ExceptionError = internal.ExceptionError

// Version is the runtime version.
const Version = internal.Version

// Tag variables for core types.
var (
	BlockTag     = internal.BlockTag
	CFunctionTag = internal.CFunctionTag
	ArrayTag     = internal.ArrayTag
)

// Tag constants for core types.
const (
	NilTag     = internal.NilTag
	BooleanTag = internal.BooleanTag
	NumberTag  = internal.NumberTag
	StringTag  = internal.StringTag
)

// Control flow reasons.
const (
	NoStop        = internal.NoStop
	BreakStop     = internal.BreakStop
	ExceptionStop = internal.ExceptionStop
)

// ErrLinkCycle is returned by VM.SetLink when the new prototype would make an
// object its own ancestor.
var ErrLinkCycle = internal.ErrLinkCycle

// NewVM prepares a new VM with every registered core extension installed.
func NewVM() *VM {
	return internal.NewVM()
}

// ArgList builds an argument list.
func ArgList(objs ...*Object) Args {
	return internal.ArgList(objs...)
}

// ParseNumber interprets the longest prefix of s which is a decimal number.
func ParseNumber(s string) float64 {
	return internal.ParseNumber(s)
}

// FormatNumber renders a number the way Number toString does.
func FormatNumber(f float64) string {
	return internal.FormatNumber(f)
}
