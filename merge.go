package main

import (
	"errors"
	"fmt"
	"os"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// mergeParts concatenates parts in order into outPath and returns the page
// count of the result. The merge goes to a temp file that is renamed over
// outPath, so a failed merge leaves any previous book in place.
//
// The bytes are not stable across runs: pdfcpu stamps ModDate and the
// trailer /ID from the clock. Page content and order are.
func mergeParts(parts []string, outPath string) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	tmp := outPath + ".tmp"
	if err := pdfapi.MergeCreateFile(parts, tmp, false, conf); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: %s: %v", ErrMerge, outPath, err)
	}
	pages, err := pdfapi.PageCountFile(tmp)
	if err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: count pages of %s: %v", ErrMerge, outPath, err)
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return pages, nil
}

// clearCache removes every cached part. All removals are attempted; any
// failure is reported.
func clearCache(parts []string) error {
	var errs []error
	for _, p := range parts {
		if err := os.Remove(p); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrFileDeletion, errors.Join(errs...))
	}
	return nil
}
