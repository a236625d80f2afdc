package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Output file names inside the output directory.
const (
	TicksFile   = "ticks.csv"
	SummaryFile = "runs.csv"
)

// Output writes simulation CSV files into a directory. A nil *Output is a
// valid no-op writer, so callers need not check whether output is enabled.
type Output struct {
	dir         string
	ticksFile   *os.File
	summaryFile *os.File

	ticksHeaderWritten   bool
	summaryHeaderWritten bool
}

// NewOutput creates the output directory and its files. It returns nil if
// dir is empty (output disabled). When traceTicks is false no tick trace is
// written.
func NewOutput(dir string, traceTicks bool) (*Output, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	out := &Output{dir: dir}

	if traceTicks {
		f, err := os.Create(filepath.Join(dir, TicksFile))
		if err != nil {
			return nil, fmt.Errorf("telemetry: creating %s: %w", TicksFile, err)
		}
		out.ticksFile = f
	}

	f, err := os.Create(filepath.Join(dir, SummaryFile))
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("telemetry: creating %s: %w", SummaryFile, err)
	}
	out.summaryFile = f

	return out, nil
}

// Dir returns the output directory.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// WriteTicks appends tick rows to the trace.
func (o *Output) WriteTicks(records []TickRecord) error {
	if o == nil || o.ticksFile == nil || len(records) == 0 {
		return nil
	}
	if err := writeCSV(records, o.ticksFile, &o.ticksHeaderWritten); err != nil {
		return fmt.Errorf("telemetry: writing ticks: %w", err)
	}
	return nil
}

// WriteSummary appends one run summary.
func (o *Output) WriteSummary(r RunSummary) error {
	if o == nil {
		return nil
	}
	if err := writeCSV([]RunSummary{r}, o.summaryFile, &o.summaryHeaderWritten); err != nil {
		return fmt.Errorf("telemetry: writing summary: %w", err)
	}
	return nil
}

// writeCSV writes the header only on the first call for a file.
func writeCSV(records any, w io.Writer, headerWritten *bool) error {
	if *headerWritten {
		return gocsv.MarshalWithoutHeaders(records, w)
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return err
	}
	*headerWritten = true
	return nil
}

// Close closes all open files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{o.ticksFile, o.summaryFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReadSummaries parses a run summary CSV.
func ReadSummaries(r io.Reader) ([]RunSummary, error) {
	var runs []RunSummary
	if err := gocsv.Unmarshal(r, &runs); err != nil {
		return nil, fmt.Errorf("telemetry: reading summaries: %w", err)
	}
	return runs, nil
}
