// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build-time identity strings sad prints for
// --version, and GetSystemBanner, which adds uname-style system info to
// them.
package version

import (
	"fmt"
	"os"
	"path/filepath"
)

// Overridden at build time via:
//
//	-ldflags "-X github.com/sad-cli/sad/pkg/version.version=... \
//	          -X github.com/sad-cli/sad/pkg/version.buildCommit=... \
//	          -X github.com/sad-cli/sad/pkg/version.buildTime=..."
var (
	version     string
	buildCommit string
	buildTime   string
)

// GetVersionString returns the one-line banner `sad --version` prints:
// program name, semver, short commit, build time.
func GetVersionString() string {
	return fmt.Sprintf("%s %v (%s), built %v", filepath.Base(os.Args[0]), version, buildCommit, buildTime)
}

// GetVersion returns the semver-compatible version number.
func GetVersion() string {
	return version
}

func GetBuildCommit() string {
	return buildCommit
}

// GetBuildTime returns the time at which the build took place.
func GetBuildTime() string {
	return buildTime
}

// GetSystemBanner appends uname-style system info to the version
// string. cmd/sad does not call it: `sad --version` prints
// GetVersionString alone, with or without --verbose.
func GetSystemBanner() string {
	u, err := Uname()
	if err != nil {
		return GetVersionString()
	}
	return fmt.Sprintf("%s (%s; %s; %s)", GetVersionString(), u.Name, u.Machine, u.Release)
}
