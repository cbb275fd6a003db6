package testutil

import (
	"context"
	"sync"

	ierr "github.com/opsdesk/portal/internal/errors"
)

// FakeSheetsReader serves registered ranges of fake spreadsheets
type FakeSheetsReader struct {
	mu     sync.RWMutex
	ranges map[string][][]string
	errs   map[string]error
	reads  []string
}

func NewFakeSheetsReader() *FakeSheetsReader {
	return &FakeSheetsReader{
		ranges: make(map[string][][]string),
		errs:   make(map[string]error),
	}
}

func rangeKey(spreadsheetID, rng string) string {
	return spreadsheetID + "!" + rng
}

// SetRange registers the rows returned for a range
func (f *FakeSheetsReader) SetRange(spreadsheetID, rng string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges[rangeKey(spreadsheetID, rng)] = rows
}

// FailSpreadsheet makes every read of the spreadsheet fail with err
func (f *FakeSheetsReader) FailSpreadsheet(spreadsheetID string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[spreadsheetID] = err
}

// Reads returns the ranges read so far
func (f *FakeSheetsReader) Reads() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.reads...)
}

func (f *FakeSheetsReader) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reads = append(f.reads, rangeKey(spreadsheetID, rng))
	if err, ok := f.errs[spreadsheetID]; ok {
		return nil, err
	}
	rows, ok := f.ranges[rangeKey(spreadsheetID, rng)]
	if !ok {
		return nil, ierr.NewError("range not found").
			WithHintf("No data registered for %s", rangeKey(spreadsheetID, rng)).
			Mark(ierr.ErrHTTPClient)
	}
	return rows, nil
}

// Clear drops registered ranges, failures and the read log
func (f *FakeSheetsReader) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ranges = make(map[string][][]string)
	f.errs = make(map[string]error)
	f.reads = nil
}
