package cli

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/andrew-torda/nmrstar/pkg/logger"
	"github.com/andrew-torda/nmrstar/pkg/star"
	"github.com/andrew-torda/nmrstar/pkg/views"
)

// parsed is one input file after parsing.
type parsed struct {
	fname string
	entry *star.Entry
}

// parseAll parses the files in parallel. Results come back in the
// order of fnames. The first error, in that order, is returned.
func parseAll(fnames []string) ([]parsed, error) {
	ret := make([]parsed, len(fnames))
	errs := make([]error, len(fnames))
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup
	for i, fname := range fnames {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			e, err := star.ParseFile(fname)
			ret[i], errs[i] = parsed{fname: fname, entry: e}, err
			if err == nil {
				logger.Debug("parsed", "file", fname, "saveframes", e.Len())
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// entryID is the ID tag of the entry_information saveframe. If there
// is none, we guess from a name like bmr15000_3.str.
func entryID(p parsed) string {
	for _, sf := range p.entry.Saveframes() {
		if cat, _ := sf.Tag("Sf_category"); cat != "entry_information" {
			continue
		}
		if id, ok := sf.Tag("ID"); ok && id != "" {
			return id
		}
	}
	base := filepath.Base(p.fname)
	for _, suffix := range []string{".gz", ".str", "_3"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return strings.TrimPrefix(base, "bmr")
}

// allViews pulls every view out of an entry.
func allViews(e *star.Entry) ([]views.Sequence, []views.SampleComponent, []views.ChemShift, error) {
	seqs, err := views.Sequences(e)
	if err != nil {
		return nil, nil, nil, err
	}
	samples, err := views.SampleComponents(e)
	if err != nil {
		return nil, nil, nil, err
	}
	shifts, err := views.ChemShifts(e)
	if err != nil {
		return nil, nil, nil, err
	}
	return seqs, samples, shifts, nil
}

// fileErr says which file a view failed on.
func fileErr(fname string, err error) error {
	return fmt.Errorf("%s: %w", fname, err)
}
