package internal

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewString creates a String object with the given text.
func (vm *VM) NewString(s string) *Object {
	return vm.ObjectWith(nil, vm.StringProto, []byte(s), StringTag)
}

// NewStringBytes creates a String object holding a copy of b. Later changes to
// b do not affect the String.
func (vm *VM) NewStringBytes(b []byte) *Object {
	c := make([]byte, len(b))
	copy(c, b)
	return vm.ObjectWith(nil, vm.StringProto, c, StringTag)
}

// StringValue returns the text of a String object, or "" for other objects.
func (vm *VM) StringValue(obj *Object) string {
	return string(stringBytes(obj))
}

func stringBytes(obj *Object) []byte {
	if obj == nil || obj.tag != StringTag {
		return nil
	}
	b, _ := obj.Value.([]byte)
	return b
}

// byteOffset returns the byte offset in b at which the code point with index
// pos begins, starting from byte start. Positions past the end clamp to
// len(b).
func byteOffset(b []byte, start, pos int) int {
	i := start
	for ; pos > 0 && i < len(b); pos-- {
		_, n := utf8.DecodeRune(b[i:])
		i += n
	}
	return i
}

// runeIndex returns the number of code points in b before byte offset off.
func runeIndex(b []byte, off int) int {
	return utf8.RuneCount(b[:off])
}

// runeSlice returns the bytes of the code points [a, a+n) of b.
func runeSlice(b []byte, a, n int) []byte {
	ua := byteOffset(b, 0, a)
	ub := byteOffset(b, ua, n)
	return b[ua:ub]
}

func (vm *VM) initString() {
	slots := Slots{
		"!=":            vm.NewCFunction(StringNotEqual, StringTag),
		"+":             vm.NewCFunction(StringConcat, StringTag),
		"=":             vm.NewCFunction(StringEqual, StringTag),
		"at:":           vm.NewCFunction(StringAt, StringTag),
		"byteAt:":       vm.NewCFunction(StringByteAt, StringTag),
		"bytes":         vm.NewCFunction(StringBytes, StringTag),
		"from:length:":  vm.NewCFunction(StringFromLength, StringTag),
		"from:to:":      vm.NewCFunction(StringFromTo, StringTag),
		"htmlEscape":    vm.NewCFunction(StringHTMLEscape, StringTag),
		"indexOf:":      vm.NewCFunction(StringIndexOf, StringTag),
		"lastIndexOf:":  vm.NewCFunction(StringLastIndexOf, StringTag),
		"leftTrim":      vm.NewCFunction(StringLeftTrim, StringTag),
		"length":        vm.NewCFunction(StringLength, StringTag),
		"replace:with:": vm.NewCFunction(StringReplaceWith, StringTag),
		"rightTrim":     vm.NewCFunction(StringRightTrim, StringTag),
		"skip:":         vm.NewCFunction(StringSkip, StringTag),
		"toBoolean":     vm.NewCFunction(StringToBoolean, StringTag),
		"toLower":       vm.NewCFunction(StringToLower, StringTag),
		"toNumber":      vm.NewCFunction(StringToNumber, StringTag),
		"toString":      vm.NewCFunction(StringToString, StringTag),
		"toUpper":       vm.NewCFunction(StringToUpper, StringTag),
		"trim":          vm.NewCFunction(StringTrim, StringTag),
	}
	vm.SetSlots(vm.StringProto, slots)
}

// stringArg casts the argument at position i to a String's bytes.
func stringArg(vm *VM, args Args, i int) ([]byte, *Object, Stop) {
	s, stop := vm.ToString(args.At(i))
	if stop != NoStop {
		return nil, s, stop
	}
	return stringBytes(s), nil, NoStop
}

// intArg casts the argument at position i to an integer, truncating.
func intArg(vm *VM, args Args, i int) (int, *Object, Stop) {
	f, exc, stop := numberArg(vm, args, i)
	return int(f), exc, stop
}

// StringBytes is a String method.
//
// bytes returns the length of the string in bytes.
func StringBytes(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewNumber(float64(len(stringBytes(target)))), NoStop
}

// StringLength is a String method.
//
// length returns the number of code points in the string.
func StringLength(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewNumber(float64(utf8.RuneCount(stringBytes(target)))), NoStop
}

// StringEqual is a String method.
//
// = compares the bytes of two strings. Arguments which are not Strings are
// never equal.
func StringEqual(vm *VM, target *Object, args Args) (*Object, Stop) {
	arg := args.At(0)
	eq := arg != nil && arg.tag == StringTag && bytes.Equal(stringBytes(target), stringBytes(arg))
	return vm.NewBool(eq), NoStop
}

// StringNotEqual is a String method.
func StringNotEqual(vm *VM, target *Object, args Args) (*Object, Stop) {
	arg := args.At(0)
	eq := arg != nil && arg.tag == StringTag && bytes.Equal(stringBytes(target), stringBytes(arg))
	return vm.NewBool(!eq), NoStop
}

// StringConcat is a String method.
//
// + returns a new string with the argument's text appended.
func StringConcat(vm *VM, target *Object, args Args) (*Object, Stop) {
	other, exc, stop := stringArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	b := make([]byte, 0, len(s)+len(other))
	b = append(b, s...)
	b = append(b, other...)
	return vm.ObjectWith(nil, vm.StringProto, b, StringTag), NoStop
}

// StringFromTo is a String method.
//
// from:to: returns the code points between two positions. The positions may
// be given in either order and are clamped to the string.
func StringFromTo(vm *VM, target *Object, args Args) (*Object, Stop) {
	a, exc, stop := intArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	b, exc, stop := intArg(vm, args, 1)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	n := utf8.RuneCount(s)
	if a == b {
		return vm.NewString(""), NoStop
	}
	if a > b {
		a, b = b, a
	}
	if a > n || b < 0 {
		return vm.NewString(""), NoStop
	}
	if b > n {
		b = n
	}
	if a < 0 {
		a = 0
	}
	return vm.NewStringBytes(runeSlice(s, a, b-a)), NoStop
}

// StringFromLength is a String method.
//
// from:length: returns length code points starting at a position. A negative
// length counts backward from the position.
func StringFromLength(vm *VM, target *Object, args Args) (*Object, Stop) {
	a, exc, stop := intArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	l, exc, stop := intArg(vm, args, 1)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	return vm.NewStringBytes(fromLength(s, a, l)), NoStop
}

func fromLength(s []byte, a, l int) []byte {
	n := utf8.RuneCount(s)
	if l == 0 {
		return nil
	}
	if l < 0 {
		a += l
		l = -l
	}
	if a < 0 {
		l += a
		a = 0
	}
	if a > n {
		a = n
	}
	if a+l > n {
		l = n - a
	}
	if l <= 0 {
		return nil
	}
	return runeSlice(s, a, l)
}

// StringSkip is a String method.
//
// skip: returns the string without its first code points.
func StringSkip(vm *VM, target *Object, args Args) (*Object, Stop) {
	a, exc, stop := intArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	n := utf8.RuneCount(s)
	if a >= n {
		return vm.NewString(""), NoStop
	}
	return vm.NewStringBytes(fromLength(s, a, n-a)), NoStop
}

// StringAt is a String method.
//
// at: returns the code point at a position as a string, or the empty string
// if the position is outside the string.
func StringAt(vm *VM, target *Object, args Args) (*Object, Stop) {
	a, exc, stop := intArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	if a < 0 {
		return vm.NewString(""), NoStop
	}
	return vm.NewStringBytes(runeSlice(stringBytes(target), a, 1)), NoStop
}

// StringByteAt is a String method.
//
// byteAt: returns the byte at a byte offset as a Number, or Nil if the offset
// is outside the string.
func StringByteAt(vm *VM, target *Object, args Args) (*Object, Stop) {
	a, exc, stop := intArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	if a < 0 || a >= len(s) {
		return vm.Nil, NoStop
	}
	return vm.NewNumber(float64(s[a])), NoStop
}

// StringIndexOf is a String method.
//
// indexOf: returns the code point position of the first occurrence of the
// argument, or -1 if there is none.
func StringIndexOf(vm *VM, target *Object, args Args) (*Object, Stop) {
	sub, exc, stop := stringArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	i := bytes.Index(s, sub)
	if i < 0 {
		return vm.NewNumber(-1), NoStop
	}
	return vm.NewNumber(float64(runeIndex(s, i))), NoStop
}

// StringLastIndexOf is a String method.
//
// lastIndexOf: returns the code point position of the last occurrence of the
// argument, or -1 if there is none.
func StringLastIndexOf(vm *VM, target *Object, args Args) (*Object, Stop) {
	sub, exc, stop := stringArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	i := bytes.LastIndex(s, sub)
	if i < 0 {
		return vm.NewNumber(-1), NoStop
	}
	return vm.NewNumber(float64(runeIndex(s, i))), NoStop
}

// StringReplaceWith is a String method.
//
// replace:with: replaces every occurrence of the first argument with the
// second.
func StringReplaceWith(vm *VM, target *Object, args Args) (*Object, Stop) {
	needle, exc, stop := stringArg(vm, args, 0)
	if stop != NoStop {
		return exc, stop
	}
	rpl, exc, stop := stringArg(vm, args, 1)
	if stop != NoStop {
		return exc, stop
	}
	s := stringBytes(target)
	if len(needle) == 0 || len(s) == 0 {
		return vm.NewStringBytes(s), NoStop
	}
	var buf bytes.Buffer
	buf.Grow(len(s))
	for {
		i := bytes.Index(s, needle)
		if i < 0 {
			break
		}
		buf.Write(s[:i])
		buf.Write(rpl)
		s = s[i+len(needle):]
	}
	buf.Write(s)
	return vm.ObjectWith(nil, vm.StringProto, buf.Bytes(), StringTag), NoStop
}

// isSpace matches the C locale's white space.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// StringTrim is a String method.
//
// trim removes leading and trailing white space.
func StringTrim(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewStringBytes(bytes.TrimFunc(stringBytes(target), isSpace)), NoStop
}

// StringLeftTrim is a String method.
func StringLeftTrim(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewStringBytes(bytes.TrimLeftFunc(stringBytes(target), isSpace)), NoStop
}

// StringRightTrim is a String method.
func StringRightTrim(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewStringBytes(bytes.TrimRightFunc(stringBytes(target), isSpace)), NoStop
}

// StringToUpper is a String method.
//
// toUpper converts the string to upper case using Unicode case mapping.
func StringToUpper(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString(cases.Upper(language.Und).String(vm.StringValue(target))), NoStop
}

// StringToLower is a String method.
func StringToLower(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewString(cases.Lower(language.Und).String(vm.StringValue(target))), NoStop
}

// StringToNumber is a String method.
//
// toNumber interprets the leading decimal number of the string. Strings which
// do not begin with a number are 0.
func StringToNumber(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewNumberFromString(vm.StringValue(target)), NoStop
}

// StringToBoolean is a String method.
//
// toBoolean is False for the empty string and True otherwise.
func StringToBoolean(vm *VM, target *Object, args Args) (*Object, Stop) {
	return vm.NewBool(len(stringBytes(target)) > 0), NoStop
}

// StringToString is a String method.
func StringToString(vm *VM, target *Object, args Args) (*Object, Stop) {
	return target, NoStop
}

// StringHTMLEscape is a String method.
//
// htmlEscape replaces <, >, & and " with HTML entities.
func StringHTMLEscape(vm *VM, target *Object, args Args) (*Object, Stop) {
	s := stringBytes(target)
	var buf bytes.Buffer
	buf.Grow(len(s))
	for _, c := range s {
		switch c {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteByte(c)
		}
	}
	return vm.ObjectWith(nil, vm.StringProto, buf.Bytes(), StringTag), NoStop
}
