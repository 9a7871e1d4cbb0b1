package internal

/*
This file contains the property table. Every object owns one table mapping a
message name to a slot. A slot holds either a stored value or a handler (a
CFunction or a Block); both are simply objects, and the difference appears only
when the slot is activated by dispatch.

Lookup first checks the receiver's own table, where every slot is visible, and
then walks the prototype chain, where only searchable slots are visible. The
walk uses the VM's proto set so that it terminates even if some host code
managed to build a cycle behind SetLink's back.
*/

import "sort"

// Slots represents the set of messages to which an object responds.
type Slots = map[string]*Object

// slot is a single entry in a property table.
type slot struct {
	value      *Object
	searchable bool
}

// properties is the property table of an object. The zero value is an empty
// table.
type properties struct {
	m map[string]slot
}

// AddProperty sets the slot name on obj, replacing any existing slot with the
// same name. Searchable slots are visible to objects inheriting from obj.
func (vm *VM) AddProperty(obj *Object, name string, value *Object, searchable bool) {
	if obj.slots.m == nil {
		obj.slots.m = make(map[string]slot)
	}
	delete(obj.slots.m, name)
	obj.slots.m[name] = slot{value: value, searchable: searchable}
}

// SetSlot sets a searchable slot on obj.
func (vm *VM) SetSlot(obj *Object, name string, value *Object) {
	vm.AddProperty(obj, name, value, true)
}

// SetSlots sets multiple searchable slots on obj.
func (vm *VM) SetSlots(obj *Object, slots Slots) {
	for name, value := range slots {
		vm.AddProperty(obj, name, value, true)
	}
}

// DeleteProperty removes the slot name from obj. Removing a slot which does
// not exist does nothing.
func (vm *VM) DeleteProperty(obj *Object, name string) {
	delete(obj.slots.m, name)
}

// FindProperty looks up name on obj and, unless searchOnlyLocal is true, on
// its ancestors. Every slot on obj is visible; on ancestors, only searchable
// slots are. proto is the object which had the slot, or nil if the lookup
// failed.
func (vm *VM) FindProperty(obj *Object, name string, searchOnlyLocal bool) (value, proto *Object) {
	if obj == nil {
		return nil, nil
	}
	if s, ok := obj.slots.m[name]; ok {
		return s.value, obj
	}
	if searchOnlyLocal {
		return nil, nil
	}
	vm.protoSet.Reset()
	vm.protoSet.Add(obj.UniqueID())
	for p := obj.link; p != nil; p = p.link {
		if !vm.protoSet.Add(p.UniqueID()) {
			break
		}
		if s, ok := p.slots.m[name]; ok && s.searchable {
			return s.value, p
		}
	}
	return nil, nil
}

// GetSlot checks obj and its ancestors for a slot, returning the slot value
// and the object which had it. proto is nil if and only if the slot was not
// found.
func (vm *VM) GetSlot(obj *Object, name string) (value, proto *Object) {
	return vm.FindProperty(obj, name, false)
}

// GetLocalSlot checks only obj's own slots for a slot.
func (vm *VM) GetLocalSlot(obj *Object, name string) (value *Object, ok bool) {
	value, proto := vm.FindProperty(obj, name, true)
	return value, proto != nil
}

// IsSearchable reports whether obj has a local slot name and whether that slot
// is visible to inheriting objects.
func (vm *VM) IsSearchable(obj *Object, name string) (searchable, ok bool) {
	s, ok := obj.slots.m[name]
	return s.searchable, ok
}

// SlotNames returns the names of obj's local slots in sorted order.
func (vm *VM) SlotNames(obj *Object) []string {
	names := make([]string, 0, len(obj.slots.m))
	for name := range obj.slots.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForeachSlot executes a function for each slot on obj in sorted name order.
// Iteration stops if exec returns false.
func (vm *VM) ForeachSlot(obj *Object, exec func(name string, value *Object, searchable bool) bool) {
	for _, name := range vm.SlotNames(obj) {
		s := obj.slots.m[name]
		if !exec(name, s.value, s.searchable) {
			return
		}
	}
}
