package mdpress

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// countPages parses the rendered PDF and returns its page count. A PDF that
// pdfcpu cannot read is treated as a failed render.
func countPages(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, fmt.Errorf("%w: empty output", ErrPDFInspect)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPDFInspect, err)
	}
	if ctx.PageCount < 1 {
		return 0, fmt.Errorf("%w: no pages", ErrPDFInspect)
	}
	return ctx.PageCount, nil
}
