package internal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToBool casts obj to a Boolean. Booleans are returned as they are, Nil is
// False, and other objects are asked for toBoolean. Objects which cannot
// answer are True.
func (vm *VM) ToBool(obj *Object) (*Object, Stop) {
	if obj == nil {
		obj = vm.Nil
	}
	if obj.tag == BooleanTag {
		return obj, NoStop
	}
	if !vm.Responds(obj, "toBoolean") {
		return vm.NewBool(true), NoStop
	}
	r, stop := vm.Send(obj, "toBoolean", nil)
	if stop != NoStop {
		return r, stop
	}
	if r.tag != BooleanTag {
		return vm.NewBool(true), NoStop
	}
	return r, NoStop
}

// ToNumber casts obj to a Number. Numbers are returned as they are; other
// objects are asked for toNumber, and objects which cannot answer are 0.
func (vm *VM) ToNumber(obj *Object) (*Object, Stop) {
	if obj == nil {
		obj = vm.Nil
	}
	if obj.tag == NumberTag {
		return obj, NoStop
	}
	if !vm.Responds(obj, "toNumber") {
		return vm.NewNumber(0), NoStop
	}
	r, stop := vm.Send(obj, "toNumber", nil)
	if stop != NoStop {
		return r, stop
	}
	if r.tag != NumberTag {
		return vm.NewNumber(0), NoStop
	}
	return r, NoStop
}

// ToString casts obj to a String. Strings are returned as they are; other
// objects are asked for toString.
func (vm *VM) ToString(obj *Object) (*Object, Stop) {
	if obj == nil {
		obj = vm.Nil
	}
	if obj.tag == StringTag {
		return obj, NoStop
	}
	r, stop := vm.Send(obj, "toString", nil)
	if stop != NoStop {
		return r, stop
	}
	if r.tag != StringTag {
		return vm.NewString(fmt.Sprintf("[%s]", vm.TypeName(obj))), NoStop
	}
	return r, NoStop
}

// AsString converts obj to a Go string for host code. If the conversion
// raises, the result describes the object by its type.
func (vm *VM) AsString(obj *Object) string {
	s, stop := vm.ToString(obj)
	if stop != NoStop {
		return fmt.Sprintf("[%s]", vm.TypeName(obj))
	}
	return vm.StringValue(s)
}

// AsBool converts obj to a Go bool for host code. Exceptions make the result
// false.
func (vm *VM) AsBool(obj *Object) bool {
	b, stop := vm.ToBool(obj)
	return stop == NoStop && vm.BoolValue(b)
}

// AsNumber converts obj to a float64 for host code. Exceptions make the
// result NaN.
func (vm *VM) AsNumber(obj *Object) float64 {
	n, stop := vm.ToNumber(obj)
	if stop != NoStop {
		return math.NaN()
	}
	return vm.NumberValue(n)
}

// ParseNumber interprets the longest prefix of s which is a decimal number,
// ignoring leading white space. Text without such a prefix is 0.
func ParseNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	digits := false
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && '0' <= s[end] && s[end] <= '9' {
		end++
		digits = true
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && '0' <= s[end] && s[end] <= '9' {
			end++
			digits = true
		}
	}
	if !digits {
		return 0
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		if exp < len(s) && '0' <= s[exp] && s[exp] <= '9' {
			for exp < len(s) && '0' <= s[exp] && s[exp] <= '9' {
				exp++
			}
			end = exp
		}
	}
	// Out of range values parse to ±Inf along with an error.
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

// FormatNumber renders a number the way toString does.
func FormatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
