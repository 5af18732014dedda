package installer

import (
	"runtime"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/payload"
	"github.com/oshokin/modpack-installer/internal/service/launcher"
	"github.com/oshokin/modpack-installer/internal/service/loader"
)

// Options are inputs accepted by Run.
type Options struct {
	// Config describes the pack. Required.
	Config *config.Config
	// Payload locates bundled assets. Required.
	Payload *payload.Payload
	// TargetDir overrides the detected game directory.
	TargetDir string
	// StepPause is slept after each completed step.
	StepPause time.Duration
	// Observer receives status events. Optional.
	Observer Observer
}

// LoaderFactory builds the loader installer for a runtime and an artifact.
type LoaderFactory func(runtime, artifact string) loader.Installer

// Option replaces a dependency of the run, mainly for tests.
type Option func(*runner)

// WithLoaderFactory replaces the external Fabric installer.
func WithLoaderFactory(factory LoaderFactory) Option {
	return func(r *runner) {
		if factory != nil {
			r.newLoader = factory
		}
	}
}

// WithProcessLister replaces process enumeration of the launcher guard.
func WithProcessLister(list launcher.ProcessLister) Option {
	return func(r *runner) {
		if list != nil {
			r.listProcesses = list
		}
	}
}

// WithHomeDir sets the home directory used to locate the game directory.
func WithHomeDir(dir string) Option {
	return func(r *runner) {
		if dir != "" {
			r.homeDir = dir
		}
	}
}

// WithGOOS sets the platform used for path conventions.
func WithGOOS(goos string) Option {
	return func(r *runner) {
		if goos != "" {
			r.goos = goos
		}
	}
}

func defaultLoaderFactory(runtimePath, artifact string) loader.Installer {
	return loader.NewExternal(runtimePath, artifact)
}

func newRunner(opts *Options, extras ...Option) *runner {
	r := &runner{
		opts:          opts,
		goos:          runtime.GOOS,
		newLoader:     defaultLoaderFactory,
		listProcesses: ps.Processes,
		result:        &Result{},
	}

	for _, extra := range extras {
		extra(r)
	}

	return r
}
