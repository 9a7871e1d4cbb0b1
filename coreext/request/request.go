// Package request installs Request, which serves HTTP by handing each request
// to a callback block.
//
// Inside the callback, Request get: and Request post: read query and form
// values of the current request, and everything written with Pen becomes the
// response body. An exception escaping the callback is logged and answered
// with status 500.
package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"gitlab.com/variadico/lctime"

	"github.com/zephyrtronium/citrine"
	"github.com/zephyrtronium/citrine/config"
	"github.com/zephyrtronium/citrine/internal"
)

func init() {
	internal.Register(initRequest)
}

// state is the current request as seen by code running in the VM.
type state struct {
	query   url.Values
	form    url.Values
	id      string
	arrived time.Time
}

func initRequest(vm *citrine.VM) {
	slots := citrine.Slots{
		"get:":                      vm.NewCFunction(get, nil),
		"getArray:":                 vm.NewCFunction(getArray, nil),
		"host:listen:pid:callback:": vm.NewCFunction(hostListen, nil),
		"id":                        vm.NewCFunction(id, nil),
		"post:":                     vm.NewCFunction(post, nil),
		"postArray:":                vm.NewCFunction(postArray, nil),
		"time:":                     vm.NewCFunction(timeFormat, nil),
	}
	vm.Install("Request", vm.ObjectWith(slots, vm.Root, &state{}, nil))
}

// stateOf returns the request state of a VM.
func stateOf(vm *citrine.VM) *state {
	obj, ok := vm.Global("Request")
	if !ok {
		panic("citrine/request: Request is not installed")
	}
	return obj.Value.(*state)
}

func lookup(vm *citrine.VM, vals url.Values, args citrine.Args) *citrine.Object {
	key := vm.AsString(args.At(0))
	v, ok := vals[key]
	if !ok || len(v) == 0 {
		return vm.Nil
	}
	return vm.NewString(v[0])
}

func lookupAll(vm *citrine.VM, vals url.Values, args citrine.Args) *citrine.Object {
	return vm.NewStringArray(vals[vm.AsString(args.At(0))])
}

// get is a Request method.
//
// get: returns the first query value with the given name, or Nil.
func get(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	return lookup(vm, stateOf(vm).query, args), citrine.NoStop
}

// getArray is a Request method.
//
// getArray: returns an Array of every query value with the given name.
func getArray(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	return lookupAll(vm, stateOf(vm).query, args), citrine.NoStop
}

// post is a Request method.
//
// post: returns the first form value with the given name, or Nil.
func post(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	return lookup(vm, stateOf(vm).form, args), citrine.NoStop
}

// postArray is a Request method.
//
// postArray: returns an Array of every form value with the given name.
func postArray(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	return lookupAll(vm, stateOf(vm).form, args), citrine.NoStop
}

// id is a Request method.
//
// id returns the unique identifier of the current request, or Nil outside of
// a request.
func id(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	s := stateOf(vm)
	if s.id == "" {
		return vm.Nil, citrine.NoStop
	}
	return vm.NewString(s.id), citrine.NoStop
}

// timeFormat is a Request method.
//
// time: formats the arrival time of the current request with a strftime
// format, e.g. Request time: '%Y-%m-%d %H:%M:%S'.
func timeFormat(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	s := stateOf(vm)
	if s.arrived.IsZero() {
		return vm.Nil, citrine.NoStop
	}
	return vm.NewString(lctime.Strftime(vm.AsString(args.At(0)), s.arrived)), citrine.NoStop
}

// hostListen is a Request method.
//
// host:listen:pid:callback: serves HTTP on the given host and port, writing
// the process ID to the pid file, and runs the callback block for each
// request. It does not return until the server stops.
func hostListen(vm *citrine.VM, target *citrine.Object, args citrine.Args) (*citrine.Object, citrine.Stop) {
	cfg := config.Default()
	cfg.Host = vm.AsString(args.At(0))
	port := vm.AsNumber(args.At(1))
	if math.IsNaN(port) {
		return vm.Raise("Expected port number.")
	}
	cfg.Port = int(math.Round(port))
	cfg.PidFile = vm.AsString(args.At(2))
	if err := cfg.Validate(); err != nil {
		return vm.Raise(err.Error())
	}
	cb := args.At(3)
	if cb == nil || (cb.Tag() != citrine.BlockTag && cb.Tag() != citrine.CFunctionTag) {
		return vm.Raise("Expected callback block.")
	}
	srv := NewServer(vm, cb, cfg)
	if err := srv.ListenAndServe(context.Background()); err != nil {
		return vm.Raise(err.Error())
	}
	return target, citrine.NoStop
}

// Server runs a callback block for each HTTP request. Calls into the VM are
// serialized, so a Server may be used with a VM that is otherwise idle.
type Server struct {
	vm       *citrine.VM
	callback *citrine.Object
	cfg      config.Config

	// mu serializes calls into the VM.
	mu     sync.Mutex
	served int
	done   chan struct{}
	once   sync.Once
}

// NewServer creates a server which runs cb for each request.
func NewServer(vm *citrine.VM, cb *citrine.Object, cfg config.Config) *Server {
	return &Server{
		vm:       vm,
		callback: cb,
		cfg:      cfg,
		done:     make(chan struct{}),
	}
}

// Done is closed once the server has handled its maximum number of requests.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// ServeHTTP parses the request, installs it as the current request, and runs
// the callback with its own identity as me. Pen output becomes the response.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBody)
	if err := r.ParseForm(); err != nil {
		s.vm.Log.Warn("bad request", "method", r.Method, "path", r.URL.Path, "err", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	vm := s.vm
	st := stateOf(vm)
	*st = state{
		query:   r.URL.Query(),
		form:    r.PostForm,
		id:      uuid.NewString(),
		arrived: time.Now(),
	}
	reqID := st.id
	var buf bytes.Buffer
	out := vm.Out
	vm.Out = &buf
	defer func() {
		vm.Out = out
		*st = state{}
	}()
	result, stop := vm.Run(s.callback, nil, s.callback)

	w.Header().Set("X-Request-Id", reqID)
	if stop == citrine.ExceptionStop {
		vm.Log.Error("unhandled exception", "id", reqID, "path", r.URL.Path, "err", vm.Error(result, stop))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	} else {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
		vm.Log.Info("request", "id", reqID, "method", r.Method, "path", r.URL.Path, "bytes", buf.Len())
	}

	s.served++
	if s.cfg.MaxRequests > 0 && s.served >= s.cfg.MaxRequests {
		s.once.Do(func() { close(s.done) })
	}
}

// ListenAndServe serves until ctx is canceled or the server has handled its
// maximum number of requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("citrine: request server: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe, but it accepts connections on ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.PidFile != "" {
		release, err := writePidFile(s.cfg.PidFile)
		if err != nil {
			ln.Close()
			return fmt.Errorf("citrine: request server: %w", err)
		}
		defer release()
	}
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout.Std(),
		WriteTimeout: s.cfg.WriteTimeout.Std(),
	}
	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		case <-stopped:
			return
		}
		srv.Shutdown(context.Background())
	}()
	s.vm.Log.Info("request server listening", "addr", ln.Addr().String())
	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	s.vm.Log.Info("request server stopped", "served", s.servedCount())
	return err
}

func (s *Server) servedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.served
}
