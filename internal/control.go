package internal

import "fmt"

// Stop represents the reason for flow control. Every dispatch and every block
// run returns a Stop alongside its result; there is no other channel through
// which breaks and exceptions travel.
type Stop int

// Control flow reasons.
const (
	// NoStop indicates normal execution.
	NoStop Stop = iota
	// BreakStop should be interpreted by loops as a signal to exit the loop.
	// The accompanying result carries no meaning.
	BreakStop
	// ExceptionStop should be interpreted by loops, blocks, and CFunctions as
	// a signal to exit. The accompanying result is the exception payload.
	ExceptionStop
)

var stopNames = [...]string{"normal", "break", "exception"}

// String returns a string representation of the Stop.
func (s Stop) String() string {
	if s < NoStop || s > ExceptionStop {
		return fmt.Sprintf("Stop(%d)", s)
	}
	return stopNames[s]
}

// Err returns nil if s is NoStop or an error value if s is BreakStop or
// ExceptionStop. Panics otherwise.
func (s Stop) Err() error {
	switch s {
	case NoStop:
		return nil
	case BreakStop, ExceptionStop:
		return stopError(s)
	default:
		panic(fmt.Sprintf("citrine: invalid Stop: %v", s))
	}
}

type stopError Stop

func (err stopError) Error() string {
	return Stop(err).String()
}

// Is allows errors.Is(err, ExceptionStop.Err()) for wrapped stop errors.
func (err stopError) Is(target error) bool {
	t, ok := target.(stopError)
	return ok && t == err
}

// ExceptionError is the Go error describing an exception which reached the
// host.
type ExceptionError struct {
	// Payload is the raised object.
	Payload *Object
	// Message is the payload's text.
	Message string
}

func (err *ExceptionError) Error() string {
	return "citrine: unhandled exception: " + err.Message
}

// Unwrap returns ExceptionStop's error.
func (err *ExceptionError) Unwrap() error {
	return ExceptionStop.Err()
}

// Error converts the outcome of a dispatch or block run into a Go error for
// host code. It returns nil for NoStop. An escaped break is reported as
// BreakStop's error.
func (vm *VM) Error(result *Object, stop Stop) error {
	if stop != ExceptionStop {
		return stop.Err()
	}
	return &ExceptionError{Payload: result, Message: vm.AsString(result)}
}

// Raise returns an exception whose payload is a String with the given text.
func (vm *VM) Raise(msg string) (*Object, Stop) {
	return vm.NewString(msg), ExceptionStop
}

// Raisef returns an exception whose payload is a String formatted per
// fmt.Sprintf.
func (vm *VM) Raisef(format string, args ...interface{}) (*Object, Stop) {
	return vm.Raise(fmt.Sprintf(format, args...))
}

// RaiseObject returns an exception carrying an arbitrary payload. Nil is a
// valid payload and remains distinct from a break.
func (vm *VM) RaiseObject(payload *Object) (*Object, Stop) {
	if payload == nil {
		payload = vm.Nil
	}
	return payload, ExceptionStop
}

// loopResult finishes a loop or other construct which is the target of
// breaks. A break ends at this construct and becomes result; any other stop
// propagates with its own result.
func loopResult(result *Object, stop Stop, out *Object) (*Object, Stop) {
	switch stop {
	case NoStop, BreakStop:
		return out, NoStop
	case ExceptionStop:
		return result, stop
	default:
		panic(fmt.Sprintf("citrine: invalid Stop: %v", stop))
	}
}
