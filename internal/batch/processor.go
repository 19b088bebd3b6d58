package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/ironsheep/zone-renamer/internal/imaging"
	"github.com/ironsheep/zone-renamer/internal/naming"
	"github.com/ironsheep/zone-renamer/internal/ocr"
	"github.com/ironsheep/zone-renamer/internal/zone"
)

// maxCreateAttempts bounds how often a file is re-resolved after losing its
// destination name to another writer.
const maxCreateAttempts = 5

// State is the lifecycle state of a Processor.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Request describes one batch run.
type Request struct {
	// Sources are the files to rename, in order. The 1-based position of a
	// file is used in counters and fallback names.
	Sources []string

	// Destination is the directory copies are written to.
	Destination string

	// Zones are read in order; their texts are joined in the same order.
	Zones []zone.Rect

	Options naming.Options
}

// Progress is reported before and after every file.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	File      string  `json:"file,omitempty"`
	Status    string  `json:"status"`

	// FileDone marks the event sent after a file, successful or not.
	FileDone bool `json:"file_done,omitempty"`

	// Done marks the final event of a run, which resets progress to zero.
	Done bool `json:"done,omitempty"`
}

// ProgressFunc receives progress updates on the goroutine running the batch.
type ProgressFunc func(Progress)

// Outcome is the result for one source file.
type Outcome struct {
	Index       int
	Source      string
	Destination string
	Stem        string
	Texts       []string
	Err         error
}

// Result summarizes a run.
type Result struct {
	Processed int
	Errors    int
	Outcomes  []Outcome
	Started   time.Time
	Duration  time.Duration
}

// Summary is the terminal message shown to the operator.
func (r *Result) Summary() string {
	return fmt.Sprintf("Processing complete!\nProcessed: %d\nErrors: %d", r.Processed, r.Errors)
}

// Processor runs batches. The zero value is not usable; call New.
type Processor struct {
	ocr    ocr.Recognizer
	loader imaging.Loader
	fs     FileSystem
	log    *slog.Logger

	mu    sync.Mutex
	state State
}

// New creates a Processor. Nil loader, filesystem or logger select the
// on-disk loader, the local filesystem and slog.Default().
func New(rec ocr.Recognizer, loader imaging.Loader, fsys FileSystem, logger *slog.Logger) *Processor {
	if loader == nil {
		loader = imaging.FileLoader
	}
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{ocr: rec, loader: loader, fs: fsys, log: logger, state: StateIdle}
}

// State returns the current lifecycle state.
func (p *Processor) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Check validates the preconditions of req without running it.
func Check(req Request) error {
	switch {
	case len(req.Sources) == 0:
		return &PreconditionError{Reason: ErrNoSources}
	case req.Destination == "":
		return &PreconditionError{Reason: ErrNoDestination}
	case len(req.Zones) == 0:
		return &PreconditionError{Reason: ErrNoZones}
	}
	return nil
}

// Run processes every source in req.
//
// Per-file failures never make Run return an error; they are counted in the
// Result. Run returns an error for missing preconditions, an unavailable
// destination, a concurrent run, or cancellation. On cancellation and on a
// destination lost mid-run the partial Result is returned with the error.
func (p *Processor) Run(ctx context.Context, req Request, progress ProgressFunc) (*Result, error) {
	if err := Check(req); err != nil {
		return nil, err
	}
	if !p.fs.IsDir(req.Destination) {
		return nil, fmt.Errorf("%w: %s", ErrDestinationUnavailable, req.Destination)
	}

	p.mu.Lock()
	if p.state == StateRunning {
		p.mu.Unlock()
		return nil, ErrBusy
	}
	p.state = StateRunning
	p.mu.Unlock()

	if progress == nil {
		progress = func(Progress) {}
	}

	total := len(req.Sources)
	res := &Result{Started: time.Now(), Outcomes: make([]Outcome, 0, total)}

	defer func() {
		res.Duration = time.Since(res.Started)
		progress(Progress{Total: total, Status: "Ready", Done: true})

		p.mu.Lock()
		p.state = StateIdle
		p.mu.Unlock()
	}()

	p.log.Info("Starting batch", "files", total, "zones", len(req.Zones), "destination", req.Destination,
		"clean_text", req.Options.CleanText, "add_counter", req.Options.AddCounter)

	for i, src := range req.Sources {
		if err := ctx.Err(); err != nil {
			p.log.Warn("Batch cancelled", "completed", i, "total", total)
			return res, err
		}

		progress(Progress{
			Completed: i,
			Total:     total,
			Percent:   percent(i, total),
			File:      src,
			Status:    fmt.Sprintf("Processing %s...", filepath.Base(src)),
		})

		out := p.processFile(i+1, src, req)
		res.Outcomes = append(res.Outcomes, out)

		if out.Err != nil {
			res.Errors++
			p.log.Error("Error processing file", "index", out.Index, "path", src,
				"kind", KindOf(out.Err), "error", out.Err)
		} else {
			res.Processed++
			p.log.Debug("Copied file", "index", out.Index, "path", src, "destination", out.Destination)
		}

		progress(Progress{
			Completed: i + 1,
			Total:     total,
			Percent:   percent(i+1, total),
			File:      src,
			Status:    fmt.Sprintf("Processed %d of %d", i+1, total),
			FileDone:  true,
		})

		if KindOf(out.Err) == KindFilesystem && !p.fs.IsDir(req.Destination) {
			p.log.Error("Destination disappeared, aborting batch", "destination", req.Destination)
			return res, fmt.Errorf("%w: %s", ErrDestinationUnavailable, req.Destination)
		}
	}

	p.log.Info("Batch complete", "processed", res.Processed, "errors", res.Errors)
	return res, nil
}

// processFile handles one source. Every failure, including a panic, comes
// back as a *FileError in Outcome.Err.
func (p *Processor) processFile(index int, src string, req Request) (out Outcome) {
	out = Outcome{Index: index, Source: src}

	fail := func(kind Kind, err error) Outcome {
		out.Err = &FileError{Kind: kind, Index: index, Path: src, Err: err}
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			out.Destination = ""
			out = fail(KindUnexpected, fmt.Errorf("panic: %v", r))
		}
	}()

	img, err := p.loader.Load(src)
	if err != nil {
		return fail(KindDecode, err)
	}

	texts := make([]string, 0, len(req.Zones))
	for zi, z := range req.Zones {
		text, err := ExtractText(p.ocr, img, z, req.Options.CleanText)
		if err != nil {
			return fail(KindOCR, fmt.Errorf("zone %d: %w", zi+1, err))
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	out.Texts = texts
	out.Stem = naming.DeriveStem(texts, index, req.Options)

	ext := filepath.Ext(src)
	for attempt := 1; ; attempt++ {
		dst, err := naming.Resolve(req.Destination, out.Stem, ext, p.fs.Exists)
		if err != nil {
			return fail(KindFilesystem, err)
		}

		err = p.fs.CopyPreservingMetadata(src, dst)
		if err == nil {
			out.Destination = dst
			return out
		}
		if !errors.Is(err, fs.ErrExist) || attempt == maxCreateAttempts {
			return fail(KindFilesystem, err)
		}
		p.log.Debug("Destination taken during copy, resolving again", "destination", dst)
	}
}

func percent(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) * 100 / float64(total)
}
