//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Mine mines papers/text into records/extracted with every profile.
func Mine() error {
	mg.SerialDeps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "mine")
}

// Remine mines every paper again, ignoring up-to-date records.
func Remine() error {
	mg.SerialDeps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "mine", "--rewrite")
}
