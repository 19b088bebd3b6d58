package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/zone-renamer/internal/batch"
	"github.com/ironsheep/zone-renamer/internal/naming"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

// reportMode is the permission of a written report.
const reportMode = 0o644

// Report is the serialized form of a batch run.
type Report struct {
	Started     time.Time      `yaml:"started"`
	Duration    string         `yaml:"duration"`
	Destination string         `yaml:"destination"`
	Options     naming.Options `yaml:"options"`
	Zones       []zone.Rect    `yaml:"zones"`
	Summary     Summary        `yaml:"summary"`
	Files       []File         `yaml:"files"`
}

// Summary holds the counters shown to the operator at the end of a run.
type Summary struct {
	Total     int  `yaml:"total"`
	Processed int  `yaml:"processed"`
	Errors    int  `yaml:"errors"`
	Aborted   bool `yaml:"aborted,omitempty"`
}

// File is one source file's entry.
type File struct {
	Index       int      `yaml:"index"`
	Source      string   `yaml:"source"`
	Destination string   `yaml:"destination,omitempty"`
	Stem        string   `yaml:"stem,omitempty"`
	Texts       []string `yaml:"texts,omitempty"`
	Kind        string   `yaml:"kind,omitempty"`
	Error       string   `yaml:"error,omitempty"`
}

// New builds a Report from a request and its result. A run that stopped
// early (cancellation, lost destination) is marked aborted.
func New(req batch.Request, res *batch.Result) *Report {
	r := &Report{
		Destination: req.Destination,
		Options:     req.Options,
		Zones:       req.Zones,
		Summary:     Summary{Total: len(req.Sources)},
	}
	if res == nil {
		r.Summary.Aborted = true
		return r
	}

	r.Started = res.Started
	r.Duration = res.Duration.Round(time.Millisecond).String()
	r.Summary.Processed = res.Processed
	r.Summary.Errors = res.Errors
	r.Summary.Aborted = len(res.Outcomes) < len(req.Sources)

	r.Files = make([]File, 0, len(res.Outcomes))
	for _, o := range res.Outcomes {
		f := File{
			Index:       o.Index,
			Source:      o.Source,
			Destination: o.Destination,
			Stem:        o.Stem,
			Texts:       o.Texts,
		}
		if o.Err != nil {
			f.Kind = string(batch.KindOf(o.Err))
			f.Error = o.Err.Error()
		}
		r.Files = append(r.Files, f)
	}
	return r
}

// Encode writes r as YAML.
func (r *Report) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// WriteFile writes r to path. The report is written to a temporary file in
// the same directory and renamed into place, so a reader never sees a
// partial report.
func (r *Report) WriteFile(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = r.Encode(tmp); err != nil {
		return err
	}
	// CreateTemp makes the file owner-only; reports are meant to be shared.
	if err = tmp.Chmod(reportMode); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Read loads a report written by WriteFile.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &r, nil
}
