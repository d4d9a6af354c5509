// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

const (
	binPdftotext = "pdftotext"
	binPdfinfo   = "pdfinfo"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// PopplerSource extracts text with pdftotext and the title with pdfinfo.
// Pages are split on form feeds and blocks on blank lines.
type PopplerSource struct {
	exec executor
}

// NewPopplerSource returns a PopplerSource backed by os/exec.
func NewPopplerSource() *PopplerSource {
	return &PopplerSource{exec: &osExecutor{}}
}

func (s *PopplerSource) Name() string { return string(types.BackendPdftotext) }

// Available reports whether pdftotext is on PATH.
func (s *PopplerSource) Available() bool {
	_, err := s.exec.LookPath(binPdftotext)
	return err == nil
}

func (s *PopplerSource) Read(path string) (*types.Document, error) {
	out, err := s.exec.Output(binPdftotext, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", binPdftotext, path, err)
	}

	doc := &types.Document{Title: s.title(path)}
	for _, page := range splitPages(string(out)) {
		doc.Pages = append(doc.Pages, splitBlocks(page))
	}
	return doc, nil
}

// title runs pdfinfo and returns its Title field. Failures yield "" since
// a missing title is not an error.
func (s *PopplerSource) title(path string) string {
	out, err := s.exec.Output(binPdfinfo, "-enc", "UTF-8", path)
	if err != nil {
		return ""
	}
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		if v, ok := strings.CutPrefix(sc.Text(), "Title:"); ok {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// splitPages splits pdftotext output on form feeds. pdftotext terminates
// every page, including the last, with a form feed.
func splitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// splitBlocks groups consecutive non-blank lines into blocks.
func splitBlocks(page string) []string {
	var blocks []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range strings.Split(page, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return blocks
}
