package launcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/modpack-installer/internal/logger"
)

// ProcessLister returns the processes running on the machine.
type ProcessLister func() ([]ps.Process, error)

// Process is a running launcher process.
type Process struct {
	PID  int
	Name string
}

// Guard matches running processes against launcher executable names.
type Guard struct {
	// names holds lower-cased executable names.
	names map[string]struct{}
	// list enumerates processes.
	list ProcessLister
}

// Option configures a Guard.
type Option func(*Guard)

// WithProcessLister replaces the process enumeration, mainly for tests.
func WithProcessLister(list ProcessLister) Option {
	return func(g *Guard) {
		if list != nil {
			g.list = list
		}
	}
}

// NewGuard returns a guard looking for the given executable names.
func NewGuard(names []string, opts ...Option) *Guard {
	g := &Guard{
		names: make(map[string]struct{}, len(names)),
		list:  ps.Processes,
	}

	for _, name := range names {
		g.names[strings.ToLower(name)] = struct{}{}
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Running returns launcher processes other than the current one.
func (g *Guard) Running(ctx context.Context) ([]Process, error) {
	if len(g.names) == 0 {
		return nil, nil
	}

	processList, err := g.list()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	var running []Process

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		name := process.Executable()
		if _, found := g.names[strings.ToLower(name)]; !found {
			continue
		}

		running = append(running, Process{PID: process.Pid(), Name: name})
	}

	if len(running) > 0 {
		logger.DebugKV(ctx, "Launcher processes detected", "processes", running)
	}

	return running, nil
}
