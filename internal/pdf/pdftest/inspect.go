package pdftest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DescriptiveKeys are the info dictionary entries authored by people rather
// than stamped by the writing library.
var DescriptiveKeys = []string{"Title", "Author", "Subject", "Keywords", "Creator"}

// Report summarizes a parsed document.
type Report struct {
	Pages int
	// Info holds the info dictionary entries in PDF syntax.
	Info map[string]string
	// HasXMP reports whether the catalog references an XMP metadata stream.
	HasXMP bool
	// ContentDigest hashes the decoded content of every non-structural
	// stream, independent of object numbering and stream filters.
	ContentDigest string
}

// HasDescriptiveMetadata reports whether any of DescriptiveKeys is present.
func (r *Report) HasDescriptiveMetadata() bool {
	for _, k := range DescriptiveKeys {
		if _, ok := r.Info[k]; ok {
			return true
		}
	}
	return r.HasXMP
}

// Inspect parses and validates data with pdfcpu.
func Inspect(data []byte) (*Report, error) {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("validating: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	report := &Report{Pages: ctx.PageCount, Info: map[string]string{}}

	if ctx.Info != nil {
		d, err := ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return nil, fmt.Errorf("info dict: %w", err)
		}
		for k, v := range d {
			if v != nil {
				report.Info[k] = v.String()
			}
		}
	}

	catalog, err := ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	_, report.HasXMP = catalog["Metadata"]

	digest, err := contentDigest(ctx)
	if err != nil {
		return nil, err
	}
	report.ContentDigest = digest
	return report, nil
}

func contentDigest(ctx *model.Context) (string, error) {
	var contents []string
	for objNr, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if t := sd.Type(); t != nil && (*t == "XRef" || *t == "ObjStm" || *t == "Metadata") {
			continue
		}
		if err := sd.Decode(); err != nil {
			return "", fmt.Errorf("decoding object %d: %w", objNr, err)
		}
		contents = append(contents, string(sd.Content))
	}
	sort.Strings(contents)

	h := sha256.New()
	for _, c := range contents {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
