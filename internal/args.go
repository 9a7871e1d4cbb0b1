package internal

// Args is the ordered list of values passed to a dispatch. Values are
// consumed positionally; there are no named or default arguments.
type Args []*Object

// ArgList builds an argument list.
func ArgList(objs ...*Object) Args {
	return Args(objs)
}

// At returns the argument at position i, or nil if there are not that many
// arguments.
func (a Args) At(i int) *Object {
	if i < 0 || i >= len(a) {
		return nil
	}
	return a[i]
}

// Count returns the number of arguments.
func (a Args) Count() int {
	return len(a)
}

// Prepend returns a new argument list with obj in the first position followed
// by the arguments of a.
func (a Args) Prepend(obj *Object) Args {
	r := make(Args, 0, len(a)+1)
	r = append(r, obj)
	return append(r, a...)
}

// ArgIter walks an argument list one value at a time.
type ArgIter struct {
	args Args
	i    int
}

// Iter returns an iterator over a.
func (a Args) Iter() *ArgIter {
	return &ArgIter{args: a}
}

// HasNext reports whether another argument remains.
func (it *ArgIter) HasNext() bool {
	return it.i < len(it.args)
}

// Next returns the next argument and advances the iterator. It returns nil
// once the arguments are exhausted.
func (it *ArgIter) Next() *Object {
	if !it.HasNext() {
		return nil
	}
	r := it.args[it.i]
	it.i++
	return r
}

// Zip pairs each name with the argument at the same position, calling bind for
// each pair. Binding stops as soon as either list is exhausted.
func (a Args) Zip(names []string, bind func(name string, value *Object)) {
	it := a.Iter()
	for _, name := range names {
		if !it.HasNext() {
			return
		}
		bind(name, it.Next())
	}
}
