package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/domain/install"
	"github.com/oshokin/modpack-installer/internal/icon"
	"github.com/oshokin/modpack-installer/internal/logger"
	"github.com/oshokin/modpack-installer/internal/platform"
	"github.com/oshokin/modpack-installer/internal/repository/profiles"
	"github.com/oshokin/modpack-installer/internal/service/launcher"
	"github.com/oshokin/modpack-installer/internal/service/settings"
	"github.com/oshokin/modpack-installer/internal/service/stager"
)

// Progress percentages reported when a step starts.
const (
	percentLocateTarget  = 20
	percentInstallLoader = 40
	percentStageContent  = 60
	percentMergeProfile  = 80
	percentApplySettings = 100
)

// runner holds the state of a single installation.
type runner struct {
	opts *Options
	cfg  *config.Config

	goos          string
	homeDir       string
	newLoader     LoaderFactory
	listProcesses launcher.ProcessLister

	target install.TargetInstallation
	record *install.VersionRecord
	result *Result
}

// Run installs the pack and returns a summary. Any error is a *FatalError,
// except for invalid options which are rejected before the first step.
func Run(ctx context.Context, opts *Options, extras ...Option) (*Result, error) {
	if opts == nil || opts.Config == nil || opts.Payload == nil {
		return nil, errOptionsNotSet
	}

	// Fill defaults and reject a broken pack description before touching disk.
	if err := config.Validate(opts.Config); err != nil {
		return nil, err
	}

	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "installer")

	r := newRunner(opts, extras...)
	r.cfg = opts.Config

	logger.InfoKV(ctx, "Installing pack",
		"pack", install.ProfileName(r.cfg.ProductName, r.cfg.BaseVersion, r.cfg.PackType),
		"loader", r.cfg.LoaderVersion,
		"payload", opts.Payload.Base(),
		"payload_mode", opts.Payload.Mode())

	// Run the steps; the first failure ends the installation.
	if err := r.run(ctx); err != nil {
		var fatal *FatalError
		if errors.As(err, &fatal) {
			logger.ErrorKV(ctx, "Installation failed", "step", fatal.Step, "error", fatal.Err)
			r.emit(Event{Kind: EventFailed, Step: fatal.Step, Status: StatusFailed, Err: fatal})
		}

		return nil, err
	}

	logger.InfoKV(ctx, "Installation completed",
		"version", r.result.VersionID,
		"profile_merged", r.result.ProfileMerged,
		"settings_applied", r.result.SettingsApplied)

	// The success event carries the summary for the final banner.
	r.emit(Event{
		Kind:    EventSucceeded,
		Step:    StepApplySettings,
		Status:  StatusSucceeded,
		Percent: percentApplySettings,
		Result:  r.result,
	})

	return r.result, nil
}

// run executes the steps. Each helper returns a *FatalError on failure.
func (r *runner) run(ctx context.Context) error {
	steps := []func(context.Context) error{
		r.locateTarget,
		r.installLoader,
		r.stageContent,
		r.mergeProfile,
		r.applySettings,
	}

	// Each step is followed by a pause so the status stays readable.
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}

		r.pause(ctx)
	}

	return nil
}

func (r *runner) locateTarget(ctx context.Context) error {
	r.progress(StepLocateTarget, StatusLocateTarget, percentLocateTarget)

	dir := r.opts.TargetDir
	if dir == "" {
		home, err := r.home()
		if err != nil {
			return fatal(StepLocateTarget, fmt.Errorf("%w: %w", ErrTargetNotFound, err))
		}

		dir = platform.GameDirectory(r.goos, home)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fatal(StepLocateTarget, fmt.Errorf("%s: %w", dir, ErrTargetNotFound))
	}

	r.target = install.TargetInstallation{Path: dir}
	r.result.TargetDir = dir

	logger.InfoKV(ctx, "Game directory found", "path", dir)

	return nil
}

// installLoader covers both runtime resolution and the loader installer run;
// the player sees them as one status.
func (r *runner) installLoader(ctx context.Context) error {
	r.progress(StepResolveRuntime, StatusInstallLoader, percentInstallLoader)

	runtime, found := r.opts.Payload.Runtime(r.goos)
	if !found {
		return fatal(StepResolveRuntime, ErrRuntimeNotFound)
	}

	logger.DebugKV(ctx, "Bundled runtime resolved", "path", runtime)

	fabric := r.newLoader(runtime, r.opts.Payload.LoaderInstaller())

	record, err := fabric.Install(ctx, r.target.Path, r.cfg.BaseVersion, r.cfg.LoaderVersion)
	if err != nil {
		return fatal(StepInstallLoader, err)
	}

	r.record = record
	r.result.VersionID = record.ID
	r.result.VersionDir = record.Dir

	logger.InfoKV(ctx, "Fabric loader installed", "version", record.ID, "path", record.Dir)

	return nil
}

func (r *runner) stageContent(ctx context.Context) error {
	r.progress(StepStageContent, StatusStageContent, percentStageContent)

	reports, err := stager.Stage(ctx, r.opts.Payload.ContentRoot(), r.record.Dir, r.cfg.ContentFolders)
	r.result.Reports = reports

	if err != nil {
		return fatal(StepStageContent, err)
	}

	return nil
}

func (r *runner) mergeProfile(ctx context.Context) error {
	r.progress(StepMergeProfile, StatusMergeProfile, percentMergeProfile)

	name := install.ProfileName(r.cfg.ProductName, r.cfg.BaseVersion, r.cfg.PackType)
	r.result.ProfileName = name

	store := profiles.NewFileRepository(filepath.Join(r.target.Path, r.cfg.ProfilesFile))
	if _, err := os.Stat(store.Path()); errors.Is(err, os.ErrNotExist) {
		logger.InfoKV(ctx, "Launcher profile store not found, skipping profile", "path", store.Path())

		return nil
	}

	r.checkLauncher(ctx)

	iconURI, err := icon.Load(r.opts.Payload.IconFile())
	if err != nil {
		logger.WarnKV(ctx, "Custom icon rejected, using the built-in icon", "error", err)
		r.warn(StepMergeProfile, "Warning: custom icon could not be read, using the Fabric icon")
	}

	javaArgs := shellquote.Join(r.cfg.RuntimeArgList()...)
	profile := install.NewLaunchProfile(name, r.record, iconURI, javaArgs)

	if err = store.Upsert(ctx, profile); err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			// Removed between the check and the read.
			return nil
		}

		return fatal(StepMergeProfile, err)
	}

	r.result.ProfileMerged = true

	return nil
}

// checkLauncher warns when the launcher is running: it rewrites the profile
// store on exit.
func (r *runner) checkLauncher(ctx context.Context) {
	guard := launcher.NewGuard(r.cfg.LauncherProcesses, launcher.WithProcessLister(r.listProcesses))

	running, err := guard.Running(ctx)
	if err != nil {
		logger.WarnKV(ctx, "Unable to check for a running launcher", "error", err)

		return
	}

	if len(running) == 0 {
		return
	}

	names := make([]string, 0, len(running))
	for _, process := range running {
		names = append(names, process.Name)
	}

	r.warn(StepMergeProfile, fmt.Sprintf(
		"Warning: %s is running, restart it to see the new profile", strings.Join(names, ", ")))
}

func (r *runner) applySettings(ctx context.Context) error {
	r.progress(StepApplySettings, StatusApplySettings, percentApplySettings)

	_, err := settings.Apply(ctx, r.opts.Payload.SettingsFile(), r.record.Dir)
	if err != nil {
		if errors.Is(err, settings.ErrOverlayNotFound) {
			logger.WarnKV(ctx, "Settings overlay not bundled", "error", err)
			r.warn(StepApplySettings, StatusOverlayMissing)

			return nil
		}

		return fatal(StepApplySettings, err)
	}

	r.result.SettingsApplied = true

	return nil
}

func (r *runner) home() (string, error) {
	if r.homeDir != "" {
		return r.homeDir, nil
	}

	return os.UserHomeDir()
}

func (r *runner) pause(ctx context.Context) {
	if r.opts.StepPause <= 0 {
		return
	}

	timer := time.NewTimer(r.opts.StepPause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (r *runner) progress(step Step, status string, percent int) {
	r.emit(Event{Kind: EventProgress, Step: step, Status: status, Percent: percent})
}

func (r *runner) warn(step Step, status string) {
	r.result.Warnings = append(r.result.Warnings, status)
	r.emit(Event{Kind: EventWarning, Step: step, Status: status, Percent: percentOf(step)})
}

func (r *runner) emit(event Event) {
	if r.opts.Observer != nil {
		r.opts.Observer(event)
	}
}

func percentOf(step Step) int {
	switch step {
	case StepLocateTarget:
		return percentLocateTarget
	case StepResolveRuntime, StepInstallLoader:
		return percentInstallLoader
	case StepStageContent:
		return percentStageContent
	case StepMergeProfile:
		return percentMergeProfile
	case StepApplySettings:
		return percentApplySettings
	default:
		return 0
	}
}

func fatal(step Step, err error) *FatalError {
	return &FatalError{Step: step, Err: err}
}
