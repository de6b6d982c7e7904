package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/restic/dirpack/internal/debug"
)

func createGlobalContext(gopts *GlobalOptions) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	go cleanupHandler(ch, cancel, gopts)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	return ctx
}

// cleanupHandler handles the SIGINT and SIGTERM signals.
func cleanupHandler(c <-chan os.Signal, cancel context.CancelFunc, gopts *GlobalOptions) {
	s := <-c
	debug.Log("signal %v received, cleaning up", s)
	gopts.Warnf("signal %v received, cleaning up\n", s)

	cancel()
}

// Exit terminates the process with the given exit code.
func Exit(code int) {
	debug.Log("exiting with status code %d", code)
	os.Exit(code)
}
