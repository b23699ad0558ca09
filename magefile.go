//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the lugli CLI into ./bin/lugli.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/lugli", "./cmd/lugli")
}

// Test runs the full test suite with race detection.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Run builds the CLI and executes it against the given script.
func Run(script string) error {
	mg.Deps(Build)
	return sh.RunV("./bin/lugli", "run", script)
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
