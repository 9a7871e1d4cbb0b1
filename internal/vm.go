package internal

import (
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/zephyrtronium/contains"
)

// Version is the runtime version, reported by hosts.
const Version = "0.1.0"

// VM is an object for running Citrine code. A VM is single-threaded: hosts
// that call into it from multiple goroutines must serialize those calls.
type VM struct {
	// World is the global namespace and the bottom frame of Context.
	World *Object
	// Context is the stack of lexical scopes.
	Context *Context

	// Root is the ancestor of every other object.
	Root *Object
	// Nil is the only Nil object.
	Nil *Object

	// Prototypes of the primitive types.
	BooleanProto *Object
	NumberProto  *Object
	StringProto  *Object
	BlockProto   *Object
	ArrayProto   *Object

	// Pen writes text to Out.
	Pen *Object
	// Out is the destination of Pen. It defaults to standard output.
	Out io.Writer

	// Log receives diagnostics. It defaults to slog.Default().
	Log *slog.Logger

	// StartTime is the time at which VM initialization began.
	StartTime time.Time

	// protoSet is the set of protos checked during FindProperty.
	protoSet contains.Set
	// defaultRespond is Root's respondTo:, which dispatch ignores.
	defaultRespond *Object
	// rng backs Boolean flip.
	rng *rand.Rand
}

// NewVM prepares a new VM, installs the core types into World, and runs every
// registered core extension.
func NewVM() *VM {
	haveVM = true

	vm := VM{
		World: &Object{id: nextObject()},
		Root:  &Object{id: nextObject()},
		Nil:   &Object{id: nextObject(), tag: NilTag},

		Out:       os.Stdout,
		Log:       slog.Default(),
		StartTime: time.Now(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	vm.World.link = vm.Root
	vm.Nil.link = vm.Root
	vm.Context = newContext(vm.World)

	// Prototypes must exist before any CFunction is created, since
	// CFunctions link to BlockProto.
	vm.BooleanProto = vm.ObjectWith(nil, vm.Root, false, BooleanTag)
	vm.NumberProto = vm.ObjectWith(nil, vm.Root, 0.0, NumberTag)
	vm.StringProto = vm.ObjectWith(nil, vm.Root, []byte{}, StringTag)
	vm.BlockProto = vm.ObjectWith(nil, vm.Root, &Block{}, BlockTag)
	vm.BlockProto.Value.(*Block).Scope = vm.Context.World()

	vm.initRoot()
	vm.initNil()
	vm.initBoolean()
	vm.initNumber()
	vm.initString()
	vm.initBlock()
	vm.initArray()
	vm.initPen()
	vm.initWorld()

	for _, ext := range coreExt {
		ext(&vm)
	}
	return &vm
}

// initWorld installs the core objects into World. World entries are not
// searchable, so they are reachable only by name resolution.
func (vm *VM) initWorld() {
	core := Slots{
		"Object":  vm.Root,
		"Nil":     vm.Nil,
		"Boolean": vm.BooleanProto,
		"Number":  vm.NumberProto,
		"String":  vm.StringProto,
		"Block":   vm.BlockProto,
		"Array":   vm.ArrayProto,
		"Pen":     vm.Pen,
	}
	for name, obj := range core {
		vm.Install(name, obj)
	}
}

// Install makes obj addressable by name from code running in the VM.
func (vm *VM) Install(name string, obj *Object) {
	vm.AddProperty(vm.World, name, obj, false)
}

// Global returns the World entry with the given name.
func (vm *VM) Global(name string) (*Object, bool) {
	return vm.GetLocalSlot(vm.World, name)
}

// Register registers a core extension. Each function is called in the order it
// is registered; extensions that depend on other extensions need only import
// them. Register should be called from within init funcs. Panics if NewVM has
// been called.
func Register(f func(*VM)) {
	if haveVM {
		panic("citrine/internal: Register must be called before any VM is created")
	}
	coreExt = append(coreExt, f)
}

// coreExt is a list of core extensions that have been registered.
var coreExt = make([]func(*VM), 0, 10)

// haveVM becomes true once NewVM has been called.
var haveVM = false
