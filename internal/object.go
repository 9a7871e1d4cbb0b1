package internal

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/zephyrtronium/contains"
)

// Object is the basic type of Citrine. Every value is an Object.
//
// Always use NewObject, ObjectWith, or a type-specific constructor to obtain
// new objects. Creating objects directly will result in arbitrary failures.
type Object struct {
	// slots is the property table of the object.
	slots properties
	// link is the object consulted when a message is not found locally. It is
	// nil only for the Root object and for Context frames.
	link *Object

	// Value is the object's type-specific primitive value: bool for
	// Booleans, float64 for Numbers, []byte for Strings, *Block for Blocks,
	// CFunction for native handlers, and nil otherwise.
	Value interface{}
	// tag is the type indicator of the object.
	tag Tag

	// id is the object's unique ID.
	id uintptr
}

// Tag is a type indicator for Citrine objects. Tag values must be comparable.
type Tag interface {
	// Activate activates an object that has this tag. The self argument is
	// the object which has this tag and target is the object that received
	// the message.
	Activate(vm *VM, self, target *Object, args Args) (*Object, Stop)

	// String returns the name of the type associated with this tag.
	String() string
}

// Activate activates the object. Objects without a tag, and objects whose tag
// is a BasicTag, are stored values and activate to themselves.
func (o *Object) Activate(vm *VM, target *Object, args Args) (*Object, Stop) {
	if o.tag == nil {
		return o, NoStop
	}
	return o.tag.Activate(vm, o, target, args)
}

// Tag returns the object's type indicator.
func (o *Object) Tag() Tag {
	return o.tag
}

// Link returns the object's prototype, or nil if it has none.
func (o *Object) Link() *Object {
	return o.link
}

// UniqueID returns the object's unique ID.
func (o *Object) UniqueID() uintptr {
	return o.id
}

// BasicTag is a special Tag type for primitive types which do not have
// special activation.
type BasicTag string

// Activate returns self.
func (t BasicTag) Activate(vm *VM, self, target *Object, args Args) (*Object, Stop) {
	return self, NoStop
}

// String returns the receiver.
func (t BasicTag) String() string {
	return string(t)
}

// Tags for the primitive variants.
const (
	NilTag     BasicTag = "Nil"
	BooleanTag BasicTag = "Boolean"
	NumberTag  BasicTag = "Number"
	StringTag  BasicTag = "String"
)

// objcounter is the global counter for object IDs. All accesses to this must
// be atomic.
var objcounter uintptr

// nextObject increments the object counter and returns its value as a unique
// ID for a new object.
func nextObject() uintptr {
	return atomic.AddUintptr(&objcounter, 1)
}

// ErrLinkCycle is returned by SetLink when the new prototype would make an
// object its own ancestor.
var ErrLinkCycle = errors.New("citrine: prototype link would create a cycle")

// ObjectWith creates a new object with the given slots, prototype, value, and
// tag. Slots given this way are searchable.
func (vm *VM) ObjectWith(slots Slots, link *Object, value interface{}, tag Tag) *Object {
	r := &Object{
		link:  link,
		Value: value,
		tag:   tag,
		id:    nextObject(),
	}
	vm.SetSlots(r, slots)
	return r
}

// NewObject creates a new generic object with the given slots and with the
// Root object as its prototype.
func (vm *VM) NewObject(slots Slots) *Object {
	return vm.ObjectWith(slots, vm.Root, nil, nil)
}

// SetLink changes the prototype of obj. It refuses, without modifying obj, any
// prototype that already has obj as an ancestor.
func (vm *VM) SetLink(obj, proto *Object) error {
	if proto != nil && vm.InheritsFrom(proto, obj) {
		return fmt.Errorf("%w: %s", ErrLinkCycle, vm.TypeName(obj))
	}
	obj.link = proto
	return nil
}

// InheritsFrom returns whether kind is obj or any of its ancestors.
func (vm *VM) InheritsFrom(obj, kind *Object) bool {
	set := contains.Set{}
	for obj != nil {
		if obj == kind {
			return true
		}
		if !set.Add(obj.UniqueID()) {
			return false
		}
		obj = obj.link
	}
	return false
}

// TypeName returns the name of the type of an object. The result is always one
// of Nil, Boolean, Number, String, Block, or Object.
func (vm *VM) TypeName(o *Object) string {
	if o == nil {
		return NilTag.String()
	}
	switch o.tag {
	case nil:
		return "Object"
	case NilTag, BooleanTag, NumberTag, StringTag:
		return o.tag.String()
	case BlockTag, CFunctionTag:
		return "Block"
	}
	return "Object"
}

// initRoot sets up the Root object, the ancestor of all other built-in types.
func (vm *VM) initRoot() {
	slots := Slots{
		"=":          vm.NewCFunction(ObjectEquals, nil),
		"equals:":    vm.NewCFunction(ObjectEquals, nil),
		"isNil":      vm.NewCFunction(ObjectIsNil, nil),
		"make":       vm.NewCFunction(ObjectMake, nil),
		"myself":     vm.NewCFunction(ObjectMyself, nil),
		"on:do:":     vm.NewCFunction(ObjectOnDo, nil),
		"respondTo:": vm.NewCFunction(ObjectRespondTo, nil),
		"set:value:": vm.NewCFunction(ObjectSetValue, nil),
		"toString":   vm.NewCFunction(ObjectToString, nil),
		"type":       vm.NewCFunction(ObjectType, nil),
	}
	vm.SetSlots(vm.Root, slots)
	vm.defaultRespond, _ = vm.GetLocalSlot(vm.Root, "respondTo:")
}

// ObjectMake is a Root method.
//
// make creates a new instance of the receiver: a generic object with no
// properties whose prototype is the receiver.
func ObjectMake(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.ObjectWith(nil, target, nil, nil), NoStop
}

// ObjectType is a Root method.
//
// type returns a string representation of the type of the object.
func ObjectType(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString(vm.TypeName(target)), NoStop
}

// ObjectEquals is a Root method.
//
// equals: tests whether the receiver is the same object as the argument.
func ObjectEquals(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(args.At(0) == target), NoStop
}

// ObjectOnDo is a Root method.
//
// on:do: makes the object respond to a new kind of message. The handler is
// searchable, so every object inheriting from the receiver responds as well.
func ObjectOnDo(vm *VM, target *Object, args Args) (*Object, Stop) {
	name := args.At(0)
	if name == nil || name.tag != StringTag {
		return vm.Raise("Expected on: argument to be of type string.")
	}
	blk := args.At(1)
	if blk == nil || blk.tag != BlockTag {
		return vm.Raise("Expected argument do: to be of type block.")
	}
	vm.AddProperty(target, vm.StringValue(name), blk, true)
	return target, NoStop
}

// ObjectRespondTo is a Root method.
//
// respondTo: is the fallback for messages the object does not understand. The
// default does nothing; an object overriding it intercepts unhandled messages
// instead of raising an exception.
func ObjectRespondTo(vm *VM, target *Object, args Args) (*Object, Stop) {
	return target, NoStop
}

// ObjectIsNil is a Root method.
//
// isNil returns False for every object except Nil.
func ObjectIsNil(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(target == vm.Nil), NoStop
}

// ObjectMyself is a Root method.
//
// myself returns the receiver.
func ObjectMyself(vm *VM, target *Object, args Args) (*Object, Stop) {
	return target, NoStop
}

// ObjectSetValue is a Root method.
//
// set:value: stores a value on the receiver. The property is instance-local:
// objects inheriting from the receiver do not see it.
func ObjectSetValue(vm *VM, target *Object, args Args) (*Object, Stop) {
	vm.AddProperty(target, vm.AsString(args.At(0)), args.At(1), false)
	return target, NoStop
}

// ObjectToString is a Root method.
//
// toString describes the object by its type.
func ObjectToString(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString(fmt.Sprintf("[%s]", vm.TypeName(target))), NoStop
}
