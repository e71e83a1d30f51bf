//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Index loads mined records into the record store.
func Index() error {
	mg.Deps(Mine)
	return sh.RunV(filepath.Join(binDir, binName), "records", "store")
}

// Export writes the record store to records/index/export.csv.
func Export() error {
	mg.Deps(Index)
	return sh.RunV(filepath.Join(binDir, binName), "records", "export", "--format", "csv")
}
