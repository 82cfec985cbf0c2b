package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/filter"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"pdfcompress/internal/domain"
)

func init() {
	// Keep pdfcpu from creating a config directory in the user's home.
	api.DisableConfigDir()
}

// Stream types left as they are when deflating.
var keepUncompressed = map[string]bool{
	"Metadata": true,
	"XRef":     true,
	"ObjStm":   true,
}

// Reducer implements port.PDFReducer on top of pdfcpu.
type Reducer struct {
	logger log.Logger
}

// NewReducer creates a Reducer that logs page decisions to logger.
func NewReducer(logger log.Logger) *Reducer {
	return &Reducer{logger: logger}
}

// Configuration returns the pdfcpu configuration used for reading and writing.
func Configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.OPTIMIZE
	conf.ValidationMode = model.ValidationRelaxed
	conf.Optimize = true
	conf.OptimizeDuplicateContentStreams = true
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	return conf
}

// Reduce opens the document at path, clears its metadata and re-serializes
// it with duplicate elimination, unreferenced-object removal and deflated
// streams. The selector is only used to log which pages would be skipped.
func (r *Reducer) Reduce(ctx context.Context, path string, sel domain.PageSelector) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	pdfCtx, err := api.ReadValidateAndOptimize(f, Configuration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}
	if err := pdfCtx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPDF, err)
	}

	r.logDecisions(PlanPages(pdfCtx.PageCount, sel))

	if err := stripMetadata(pdfCtx); err != nil {
		return nil, err
	}
	deflated, err := deflateStreams(pdfCtx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.WriteContext(pdfCtx, &buf); err != nil {
		return nil, fmt.Errorf("serializing pdf: %w", err)
	}

	level.Debug(r.logger).Log(
		"msg", "document re-serialized",
		"pages", pdfCtx.PageCount,
		"deflated_streams", deflated,
		"bytes", buf.Len(),
	)
	return buf.Bytes(), nil
}

func (r *Reducer) logDecisions(decisions []domain.PageDecision) {
	skipped := 0
	for _, d := range decisions {
		if !d.Skip {
			continue
		}
		skipped++
		level.Debug(r.logger).Log("msg", "skip page", "page", d.Page, "reason", d.Reason)
	}
	level.Info(r.logger).Log("msg", "page plan", "pages", len(decisions), "skipped", skipped)
}

// stripMetadata drops the document information dictionary and the catalog's
// XMP metadata stream. The writer adds a fresh info dictionary holding only
// Producer, CreationDate and ModDate.
func stripMetadata(pdfCtx *model.Context) error {
	pdfCtx.Info = nil

	catalog, err := pdfCtx.Catalog()
	if err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	catalog.Delete("Metadata")
	return nil
}

// deflateStreams applies FlateDecode to every stream stored without a filter.
func deflateStreams(pdfCtx *model.Context) (int, error) {
	n := 0
	for objNr, entry := range pdfCtx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok || len(sd.FilterPipeline) > 0 {
			continue
		}
		if t := sd.Type(); t != nil && keepUncompressed[*t] {
			continue
		}
		if sd.Content == nil {
			sd.Content = sd.Raw
		}
		if len(sd.Content) == 0 {
			continue
		}

		sd.FilterPipeline = []types.PDFFilter{{Name: filter.Flate}}
		sd.Dict["Filter"] = types.Name(filter.Flate)
		if err := sd.Encode(); err != nil {
			return n, fmt.Errorf("deflating object %d: %w", objNr, err)
		}
		entry.Object = sd
		n++
	}
	return n, nil
}
