package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/oshokin/modpack-installer/internal/config"
	"github.com/oshokin/modpack-installer/internal/domain/install"
	"github.com/oshokin/modpack-installer/internal/service/installer"
)

// renderer prints installer events to a terminal.
type renderer struct {
	out io.Writer

	title   *color.Color
	warning *color.Color
	failure *color.Color
	success *color.Color
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{
		out:     out,
		title:   color.New(color.FgMagenta, color.Bold),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen, color.Bold),
	}
}

func (r *renderer) header(cfg *config.Config) {
	r.title.Fprintf(r.out, "%s Installer\n", cfg.ProductName)
	fmt.Fprintf(r.out, "%s - %s Edition\n\n", cfg.BaseVersion, install.Capitalize(cfg.PackType))
}

func (r *renderer) observe(event installer.Event) {
	switch event.Kind {
	case installer.EventProgress:
		fmt.Fprintf(r.out, "%s %s\n", bar(event.Percent), event.Status)
	case installer.EventWarning:
		r.warning.Fprintf(r.out, "%s %s\n", bar(event.Percent), event.Status)
	case installer.EventFailed:
		r.failure.Fprintf(r.out, "%s %s\n", bar(event.Percent), event.Status)
		fmt.Fprintf(r.out, "\n%v\n", event.Err)
	case installer.EventSucceeded:
		r.success.Fprintf(r.out, "%s %s\n", bar(event.Percent), event.Status)
		r.banner(event.Result)
	}
}

func (r *renderer) banner(result *installer.Result) {
	if result == nil {
		return
	}

	var files int

	var size int64

	for _, report := range result.Reports {
		files += report.Files
		size += report.Bytes
	}

	r.success.Fprintln(r.out, "\nSuccess! Your pack is ready.")
	fmt.Fprintf(r.out, "Installed %s (%d files, %s) into %s\n\n",
		result.VersionID, files, humanize.Bytes(uint64(size)), result.VersionDir) //nolint:gosec // Sizes are never negative.

	if result.ProfileMerged {
		fmt.Fprintln(r.out, "Open Minecraft Launcher -> Installations tab")
		fmt.Fprintf(r.out, "Select '%s'\n", result.ProfileName)
		fmt.Fprintln(r.out, "-> Click Play!")
	} else {
		fmt.Fprintln(r.out, "Launcher profiles were not found, add an installation for",
			result.VersionID, "in the launcher.")
	}

	fmt.Fprintln(r.out, "\nAll your mods and custom settings have been installed.")
}

const barWidth = 20

// bar renders percent as a fixed-width progress bar.
func bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100

	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), percent)
}
