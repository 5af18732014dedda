package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/logger"
	"github.com/oshokin/modpack-installer/internal/payload"
	"github.com/oshokin/modpack-installer/internal/service/installer"
	"github.com/oshokin/modpack-installer/internal/version"
)

var errUnknownLogLevel = errors.New("unknown log level")

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// payloadPath overrides the directory holding java/, fabric/ and minecraftfiles/.
	payloadPath string
	// minecraftDir overrides the detected game directory.
	minecraftDir string
	// logLevel is one of debug, info, warn, error.
	logLevel string
	// stepPause is slept after each step so the status stays readable.
	stepPause time.Duration

	// rootCmd represents the installer command.
	rootCmd = &cobra.Command{
		Use:   "modpack-installer",
		Short: "Install the bundled Fabric modpack into Minecraft.",
		Long: `Installs the bundled modpack into the local Minecraft Java Edition directory.

Runs the bundled Fabric installer with the bundled Java runtime, copies mods,
resource packs, shader packs and configs into the new version directory,
adds a launcher profile and applies the tuned options.txt.

The Minecraft directory must already exist. Close the launcher before running.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Apply the requested verbosity before anything logs.
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("%w: %s", errUnknownLogLevel, logLevel)
			}

			logger.SetLevel(level)
			defer logger.Sync()

			// Progress goes to stdout, logs stay on stderr.
			return runInstall(context.Background(), newRenderer(cmd.OutOrStdout()))
		},
	}
)

// runInstall resolves the payload and its configuration and runs the installer.
func runInstall(ctx context.Context, r *renderer) error {
	// Locate the payload next to the executable unless a path was given.
	base, mode, err := payload.ResolveBase(payloadPath)
	if err != nil {
		return err
	}

	var cfg *config.Config

	// An explicit config must exist; the bundled one falls back to defaults.
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault(payload.ConfigFile(base))
	}

	if err != nil {
		return err
	}

	r.header(cfg)

	// Create installer options with the command line overrides.
	opts := &installer.Options{
		Config:    cfg,
		Payload:   payload.New(base, mode, cfg),
		TargetDir: minecraftDir,
		StepPause: stepPause,
		Observer:  r.observe,
	}

	_, err = installer.Run(ctx, opts)

	return err
}

// Execute runs the installer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		// Fatal install errors were already rendered.
		var fatal *installer.FatalError
		if !errors.As(err, &fatal) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}

		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (default: "+config.DefaultConfigFilename+" next to the payload)")
	rootCmd.Flags().StringVarP(&payloadPath, "payload", "p", "",
		"payload directory (default: directory of the executable)")

	// Overrides for non-standard game installations.
	rootCmd.Flags().StringVarP(&minecraftDir, "minecraft-dir", "m", "", "Minecraft directory (default: detected)")

	// Presentation tuning.
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "warn", "log level: debug, info, warn, error")
	rootCmd.Flags().DurationVar(&stepPause, "step-pause", 0, "pause after each installation step")
}
