// Command citrine serves HTTP with a Citrine VM. Each request runs a status
// callback which greets the name query parameter and reports the request ID.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/zephyrtronium/citrine"
	// import for side effects
	_ "github.com/zephyrtronium/citrine/coreext"

	"github.com/zephyrtronium/citrine/config"
	"github.com/zephyrtronium/citrine/coreext/request"
)

func main() {
	cfgPath := flag.String("config", "", "TOML or YAML server configuration")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()
	if *version {
		fmt.Println("citrine", citrine.Version)
		return
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	vm := citrine.NewVM()
	vm.Log = log
	cb := vm.NewBlock(nil, citrine.BodyFunc(status))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := request.NewServer(vm, cb, cfg).ListenAndServe(ctx); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

// status writes a short page for the current request.
func status(vm *citrine.VM, ctx *citrine.Context) (*citrine.Object, citrine.Stop) {
	req, stop := vm.Resolve("Request")
	if stop != citrine.NoStop {
		return req, stop
	}
	name, stop := vm.Perform(req, "get:", vm.NewString("name"))
	if stop != citrine.NoStop {
		return name, stop
	}
	if name == vm.Nil {
		name = vm.NewString("world")
	}
	name, stop = vm.Send(name, "htmlEscape", nil)
	if stop != citrine.NoStop {
		return name, stop
	}
	id, stop := vm.Send(req, "id", nil)
	if stop != citrine.NoStop {
		return id, stop
	}
	page := fmt.Sprintf("<p>Hello, %s!</p>\n<p>Request %s, Citrine %s</p>\n", vm.AsString(name), vm.AsString(id), citrine.Version)
	return vm.Perform(vm.Pen, "write:", vm.NewString(page))
}
