package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	cobra "github.com/spf13/cobra"
	clientcmd "picam.api/v0/cmd/client_cmd"
	"picam.api/v0/internal/config"
	"picam.api/v0/pkg/command"
)

// RootContext is a shared cancellation context for which is shared up
// the call hierarchy.
type RootContext struct {
	Context *context.Context
	Cancel  *context.CancelFunc
}

// Shared among all commands.
var (
	rootCtx RootContext
)

// GetRootContext simply returns the constructed root context instance.
func GetRootContext() RootContext {
	return rootCtx
}

// initRootContext instantiates a root context for which to be
// used in sub-commands.
func initRootContext() error {
	ctx, cancel := context.WithCancel(context.Background())
	rootCtx.Context = &ctx
	rootCtx.Cancel = &cancel

	// Register termination signals to clean up.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Spin up clean up listener. The first signal cancels the root context
	// so the server can drain, a second one exits right away.
	go func() {
		sig := <-sigChan
		log.Printf("%v: Cleaning up...\n", sig)
		cancel()

		<-sigChan
		os.Exit(1)
	}()

	return nil
}

// Execute initializes all of the commands, then runs the main cobra command
// execution function.
// The application version is passed into the execution from the main package.
func Execute(version string) error {
	// Set the version.
	binVersion = version

	var verbose bool
	rootCmd := &cobra.Command{
		Use:           "picam",
		Short:         "picam is a REST api that captures, syncs and cleans up camera pictures",
		SilenceUsage:  true,
		SilenceErrors: true,

		// Create a post-hook to nominally clean up.
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			// Shutdown the root context so that upstream threads can clean up.
			if config.Verbose {
				log.Println("Shutting down root context")
			}
			(*rootCtx.Cancel)()
			<-(*rootCtx.Context).Done()
			return nil
		},
	}

	// Instantiate a root cancellation deadline.
	if err := initRootContext(); err != nil {
		return err
	}

	// Global args.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")

	// Set global configuration once flags are parsed.
	cobra.OnInitialize(func() {
		config.Verbose = verbose
		command.Verbose = verbose
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		}
	})

	rootCmd.AddCommand(NewServerCommand())
	rootCmd.AddCommand(NewPurgeCommand())
	rootCmd.AddCommand(clientcmd.NewClientCommand())
	rootCmd.AddCommand(NewVersionCommand())

	// Give in-flight commands a moment to log their shutdown.
	defer func() { <-time.NewTimer(100 * time.Millisecond).C }()
	return rootCmd.ExecuteContext(*rootCtx.Context)
}
