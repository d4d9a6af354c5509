//go:build mage

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Outlines writes output/<name>.json for every PDF in static/.
func Outlines() error {
	mg.Deps(Build, Init)

	pdfs, err := filepath.Glob(filepath.Join("static", "*.pdf"))
	if err != nil {
		return err
	}
	if len(pdfs) == 0 {
		fmt.Println("[outlines] No PDFs in static/.")
		return nil
	}

	var failed int
	for _, pdf := range pdfs {
		name := strings.TrimSuffix(filepath.Base(pdf), filepath.Ext(pdf))
		out := filepath.Join("output", name+".json")
		if err := sh.RunV(binPath(), pdf, out); err != nil {
			fmt.Printf("[outlines] %s: %v\n", pdf, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d PDF(s) failed", failed, len(pdfs))
	}
	return nil
}
