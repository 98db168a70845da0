// Package upgrade replaces the running cells binary with the latest GitHub release.
package upgrade

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/creativeprojects/go-selfupdate"
)

// Slug is the GitHub repository releases are published to.
const Slug = "sungur/cells"

// devVersion marks a build without release metadata; it is always outdated.
const devVersion = "dev"

// ErrNoRelease is returned by PerformUpdate when CheckUpdate found nothing to install.
var ErrNoRelease = errors.New("no update information available")

// Release describes a newer published version.
type Release struct {
	Version string
	Notes   string
	release *selfupdate.Release
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}
	return updater, nil
}

// CheckUpdate returns the latest release if it is newer than currentVersion, or nil.
func CheckUpdate(ctx context.Context, currentVersion string) (*Release, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, err
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(Slug))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found || !IsOutdated(currentVersion, latest.GreaterThan) {
		return nil, nil
	}

	return &Release{
		Version: latest.Version(),
		Notes:   latest.ReleaseNotes,
		release: latest,
	}, nil
}

// IsOutdated reports whether currentVersion should be replaced, given a
// comparison against the latest release. Development builds always are.
func IsOutdated(currentVersion string, latestGreaterThan func(string) bool) bool {
	if currentVersion == devVersion || currentVersion == "" {
		return true
	}
	return latestGreaterThan(currentVersion)
}

// PerformUpdate downloads rel and replaces the running executable.
func PerformUpdate(ctx context.Context, rel *Release) error {
	if rel == nil || rel.release == nil {
		return ErrNoRelease
	}

	updater, err := newUpdater()
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, rel.release, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}
	return nil
}

// VersionString returns "cells <version> (<commit>) built <date> <os>/<arch>",
// omitting the parts that were not set at build time.
func VersionString(version, commit, date string) string {
	s := "cells " + version
	if commit != "" {
		short := commit
		if len(short) > 7 {
			short = short[:7]
		}
		s += " (" + short + ")"
	}
	if date != "" {
		s += " built " + date
	}
	return s + " " + runtime.GOOS + "/" + runtime.GOARCH
}
