package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kardianos/service"
)

// daemon runs the server under a system service manager.
type daemon struct {
	ctx    context.Context
	cancel context.CancelFunc
	run    func(ctx context.Context) error
	done   chan error
}

func newDaemon(parent context.Context, run func(ctx context.Context) error) *daemon {
	ctx, cancel := context.WithCancel(parent)
	return &daemon{ctx: ctx, cancel: cancel, run: run, done: make(chan error, 1)}
}

// Start must not block.
func (d *daemon) Start(s service.Service) error {
	go func() {
		d.done <- d.run(d.ctx)
	}()
	return nil
}

func (d *daemon) Stop(s service.Service) error {
	log.Println("Stopping service...")
	d.cancel()
	if err := <-d.done; err != nil {
		log.Printf("Server stopped with error: %v\n", err)
	}
	return nil
}

// serviceConfig describes the service. args are handed back to the binary
// when the service manager starts it.
func serviceConfig(args []string) *service.Config {
	return &service.Config{
		Name:        "picam",
		DisplayName: "picam picture api",
		Description: "Captures, syncs and cleans up camera pictures over HTTP",
		Arguments:   args,
	}
}

// serviceArguments strips the --service flag from the server's command line.
func serviceArguments(args []string) []string {
	out := []string{"server"}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--service" || arg == "-service" {
			i++
			continue
		}
		if strings.HasPrefix(arg, "--service=") || strings.HasPrefix(arg, "-service=") {
			continue
		}
		out = append(out, arg)
	}
	return out
}

// controlService performs install, uninstall, start, stop or restart.
func controlService(action string, args []string) error {
	s, err := service.New(newDaemon(context.Background(), nil), serviceConfig(serviceArguments(args)))
	if err != nil {
		return fmt.Errorf("failed to create service: %v", err)
	}
	if err := service.Control(s, action); err != nil {
		return fmt.Errorf("failed to %s service: %v", action, err)
	}
	fmt.Printf("Service action '%s' completed successfully.\n", action)
	return nil
}

// runManaged hands run over to the service manager. Interactive sessions
// run it directly.
func runManaged(ctx context.Context, run func(ctx context.Context) error) error {
	if service.Interactive() {
		return run(ctx)
	}

	s, err := service.New(newDaemon(ctx, run), serviceConfig(nil))
	if err != nil {
		return fmt.Errorf("failed to create service: %v", err)
	}
	return s.Run()
}
