package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/service/installer"
	"github.com/oshokin/modpack-installer/internal/service/stager"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	m.Run()
}

// TestBar clamps and scales the percentage.
func TestBar(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[....................]   0%", bar(0))
	require.Equal(t, "[########............]  40%", bar(40))
	require.Equal(t, "[####################] 100%", bar(100))
	require.Equal(t, "[####################] 100%", bar(150))
	require.Equal(t, "[....................]   0%", bar(-5))
}

// TestRenderer_Success prints the steps and the banner.
func TestRenderer_Success(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	r := newRenderer(&out)
	r.header(config.Default())
	r.observe(installer.Event{Kind: installer.EventProgress, Status: installer.StatusLocateTarget, Percent: 20})
	r.observe(installer.Event{Kind: installer.EventWarning, Status: installer.StatusOverlayMissing, Percent: 100})
	r.observe(installer.Event{
		Kind:    installer.EventSucceeded,
		Status:  installer.StatusSucceeded,
		Percent: 100,
		Result: &installer.Result{
			VersionID:     "fabric-loader-0.18.3-1.21.10",
			VersionDir:    "/home/steve/.minecraft/versions/fabric-loader-0.18.3-1.21.10",
			ProfileName:   "GGStudios 1.21.10 Performance",
			ProfileMerged: true,
			Reports:       []stager.Report{{Folder: "mods", Files: 2, Bytes: 2048}},
		},
	})

	text := out.String()
	require.Contains(t, text, "GGStudios Installer")
	require.Contains(t, text, "1.21.10 - Performance Edition")
	require.Contains(t, text, "[####................]  20% Finding Minecraft directory...")
	require.Contains(t, text, installer.StatusOverlayMissing)
	require.Contains(t, text, "Success! Your pack is ready.")
	require.Contains(t, text, "2 files, 2.0 kB")
	require.Contains(t, text, "Select 'GGStudios 1.21.10 Performance'")
}

// TestRenderer_Failure prints the cause.
func TestRenderer_Failure(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	newRenderer(&out).observe(installer.Event{
		Kind:   installer.EventFailed,
		Status: installer.StatusFailed,
		Err:    &installer.FatalError{Step: installer.StepLocateTarget, Err: installer.ErrTargetNotFound},
	})

	require.Contains(t, out.String(), "Installation Failed")
	require.Contains(t, out.String(), installer.ErrTargetNotFound.Error())
	require.True(t, errors.Is(&installer.FatalError{Err: installer.ErrTargetNotFound}, installer.ErrTargetNotFound))
}
