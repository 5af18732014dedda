package installer

import (
	"github.com/oshokin/modpack-installer/internal/service/stager"
)

// Step identifies one stage of the installation.
type Step int

const (
	// StepLocateTarget finds the game directory.
	StepLocateTarget Step = iota + 1
	// StepResolveRuntime finds the bundled Java runtime.
	StepResolveRuntime
	// StepInstallLoader runs the Fabric installer.
	StepInstallLoader
	// StepStageContent copies mods, packs and configs.
	StepStageContent
	// StepMergeProfile writes the launcher profile.
	StepMergeProfile
	// StepApplySettings copies options.txt.
	StepApplySettings
)

// String returns a short name of the step, used in logs.
func (s Step) String() string {
	switch s {
	case StepLocateTarget:
		return "locate-target"
	case StepResolveRuntime:
		return "resolve-runtime"
	case StepInstallLoader:
		return "install-loader"
	case StepStageContent:
		return "stage-content"
	case StepMergeProfile:
		return "merge-profile"
	case StepApplySettings:
		return "apply-settings"
	default:
		return "unknown"
	}
}

// Status texts shown to the player.
const (
	StatusLocateTarget  = "Finding Minecraft directory..."
	StatusInstallLoader = "Installing Fabric loader..."
	StatusStageContent  = "Copying mods, packs, and configs..."
	StatusMergeProfile  = "Creating optimized launcher profile..."
	StatusApplySettings = "Applying your perfect settings..."
	StatusSucceeded     = "Your mods have been installed!"
	StatusFailed        = "Installation Failed"

	// StatusOverlayMissing is shown when the payload has no options.txt.
	StatusOverlayMissing = "Warning: options.txt not found – using Minecraft defaults"
)

// EventKind distinguishes events delivered to an Observer.
type EventKind int

const (
	// EventProgress announces that a step started.
	EventProgress EventKind = iota
	// EventWarning reports a non-fatal problem; the run continues.
	EventWarning
	// EventSucceeded is the last event of a successful run.
	EventSucceeded
	// EventFailed is the last event of a failed run.
	EventFailed
)

// Event is a status update.
type Event struct {
	Kind    EventKind
	Step    Step
	Status  string
	Percent int
	// Err is set for EventFailed.
	Err error
	// Result is set for EventSucceeded.
	Result *Result
}

// Observer receives events in order. It must not block for long: the next
// step starts only after it returns.
type Observer func(Event)

// Result summarizes a successful run.
type Result struct {
	// TargetDir is the game directory.
	TargetDir string
	// VersionID is the loader version, e.g. fabric-loader-0.18.3-1.21.10.
	VersionID string
	// VersionDir is versions/<VersionID> inside TargetDir.
	VersionDir string
	// ProfileName is the launcher profile display name.
	ProfileName string
	// ProfileMerged is false when the launcher profile store was absent.
	ProfileMerged bool
	// SettingsApplied is false when the payload had no options.txt.
	SettingsApplied bool
	// Reports describe staged content folders.
	Reports []stager.Report
	// Warnings lists the status texts of warning events.
	Warnings []string
}
