//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Build targets for drafts.
//
//	mage build       compile bin/drafts
//	mage install     copy bin/drafts to GOPATH/bin
//	mage test:all    run every test
//	mage test:unit   run tests without the SQLite-backed packages
//	mage test:cover  write coverage.out and print the summary
//	mage vet         run go vet
//	mage lint        run go vet and golangci-lint
//	mage stats       print line counts per package
//	mage clean       remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "drafts"
	binaryDir  = "bin"
	cmdDir     = "./cmd/drafts"
	versionVar = "github.com/mesh-intelligence/drafts/pkg/drafts.Version"
)

// ldflags stamps DRAFTS_VERSION into the binary when it is set.
func ldflags() []string {
	v := os.Getenv("DRAFTS_VERSION")
	if v == "" {
		return nil
	}
	return []string{"-ldflags", "-X " + versionVar + "=" + v}
}

// Build compiles bin/drafts.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := append([]string{"build", "-o", filepath.Join(binaryDir, binaryName)}, ldflags()...)
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}
