// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small uncompressed PDF files for tests. Each
// line of text is placed with an absolute text matrix in Helvetica.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Line is one line of text at vertical position Y (points from the
// bottom of a 612x792 page).
type Line struct {
	Y    float64
	Text string
}

// Doc describes the document to write.
type Doc struct {
	// Title goes into the document information dictionary when non-empty.
	Title string

	// Pages lists the lines of each page.
	Pages [][]Line
}

// Build renders doc as PDF bytes with a valid cross-reference table.
func Build(doc Doc) []byte {
	// Object numbers: 1 catalog, 2 pages, 3 font, 4 info, then a
	// page/content pair per page.
	const firstPage = 5
	n := len(doc.Pages)

	objs := make([]string, firstPage-1+2*n)
	kids := make([]string, n)
	for i := range doc.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}
	objs[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)
	objs[2] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
	objs[3] = fmt.Sprintf("<< /Title (%s) /Producer (pdftest) >>", escape(doc.Title))

	for i, lines := range doc.Pages {
		pageNum := firstPage + 2*i
		var content bytes.Buffer
		for _, l := range lines {
			fmt.Fprintf(&content, "BT /F1 12 Tf 1 0 0 1 72 %.2f Tm (%s) Tj ET\n", l.Y, escape(l.Text))
		}
		objs[pageNum-1] = fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			pageNum+1)
		objs[pageNum] = fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String())
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	trailer := fmt.Sprintf("<< /Size %d /Root 1 0 R", len(objs)+1)
	if doc.Title != "" {
		trailer += " /Info 4 0 R"
	}
	fmt.Fprintf(&buf, "trailer\n%s >>\nstartxref\n%d\n%%%%EOF\n", trailer, xref)
	return buf.Bytes()
}

// Write renders doc to path.
func Write(path string, doc Doc) error {
	return os.WriteFile(path, Build(doc), 0o644)
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
