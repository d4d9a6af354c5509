//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Index records the outline of every PDF in static/ in the outline index.
func Index() error {
	mg.Deps(Build, Init)

	pdfs, err := filepath.Glob(filepath.Join("static", "*.pdf"))
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Println("[index] No PDFs in static/.")
		return nil
	}
	return sh.RunV(binPath(), append([]string{"index", "add"}, pdfs...)...)
}
