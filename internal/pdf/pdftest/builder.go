// Package pdftest builds small, well-formed PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Options control the generated document.
type Options struct {
	// Pages is the number of pages; values below 1 become 1.
	Pages int
	// Info entries are written into the document information dictionary.
	Info map[string]string
	// Repeat is how often each page's drawing operators are repeated; larger
	// values produce larger, highly compressible content streams.
	Repeat int
}

// Build returns an uncompressed PDF 1.4 document with one content stream per
// page and a correct cross-reference table.
func Build(opts Options) []byte {
	if opts.Pages < 1 {
		opts.Pages = 1
	}
	if opts.Repeat < 1 {
		opts.Repeat = 1
	}

	// Object layout: 1 catalog, 2 page tree, then page/content pairs, then info.
	pageObj := func(i int) int { return 3 + 2*i }
	contentObj := func(i int) int { return 4 + 2*i }
	infoObj := 3 + 2*opts.Pages
	size := infoObj + 1

	var buf bytes.Buffer
	offsets := make([]int, size)
	writeObj := func(nr int, body string) {
		offsets[nr] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", nr, body)
	}

	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, opts.Pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", pageObj(i))
	}
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), opts.Pages))

	for i := 0; i < opts.Pages; i++ {
		writeObj(pageObj(i), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents %d 0 R >>",
			contentObj(i)))

		content := pageContent(i+1, opts.Repeat)
		writeObj(contentObj(i), fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	writeObj(infoObj, infoDict(opts.Info))

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for nr := 1; nr < size; nr++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[nr])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, infoObj, xref)

	return buf.Bytes()
}

// pageContent draws a grid of filled rectangles whose colour depends on page.
func pageContent(page, repeat int) string {
	var sb strings.Builder
	shade := float64(page%10) / 10
	for r := 0; r < repeat; r++ {
		fmt.Fprintf(&sb, "%.1f 0 0 rg %d %d 50 50 re f\n", shade, 50+(r%8)*60, 50+(r/8%10)*60)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func infoDict(info map[string]string) string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<<")
	for _, k := range keys {
		fmt.Fprintf(&sb, " /%s (%s)", k, escape(info[k]))
	}
	sb.WriteString(" >>")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	return r.Replace(s)
}

// DefaultInfo is a typical set of descriptive metadata.
func DefaultInfo() map[string]string {
	return map[string]string{
		"Title":    "Quarterly Report",
		"Author":   "Finance Team",
		"Subject":  "Numbers",
		"Keywords": "report, q3",
		"Creator":  "Report Generator 2.1",
		"Producer": "Legacy PDF Writer",
	}
}
