package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"rill/internal/diag"
	"rill/internal/diagfmt"
	"rill/internal/infer"
	"rill/internal/observ"
	"rill/internal/source"
	"rill/internal/trace"
)

// Options controls a Diagnose run.
type Options struct {
	// Jobs caps worker parallelism; <=0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the per-unit bag.
	MaxDiagnostics int
	// IgnoreWarnings drops warnings before rendering.
	IgnoreWarnings bool
	// BaseDir, when non-empty, anchors relative path rendering for every
	// decoded unit.
	BaseDir string
	// Pretty configures the rendered report attached to each result.
	Pretty diagfmt.PrettyOpts
	// Cache, when non-nil, serves rendered reports for unchanged batches.
	Cache *DiskCache
	// Events, when non-nil, receives progress notifications; Diagnose
	// closes it when the run ends.
	Events chan Event
	// Timings attaches per-stage durations to each result.
	Timings bool
}

// Result is the outcome of diagnosing one batch file. When served from
// cache only the rendered fields are populated; Unit and Bag are nil.
type Result struct {
	Path      string
	Unit      *Unit
	Bag       *diag.Bag
	Rendered  string
	Errors    int
	Warnings  int
	FromCache bool
	Timing    *observ.Report
	Err       error
}

// Metrics is a snapshot of run counters.
type Metrics struct {
	Units     int64
	Conflicts int64
	Emitted   int64
	CacheHits int64
	Failures  int64
}

type runMetrics struct {
	units     atomic.Int64
	conflicts atomic.Int64
	emitted   atomic.Int64
	cacheHits atomic.Int64
	failures  atomic.Int64
}

func (m *runMetrics) snapshot() Metrics {
	return Metrics{
		Units:     m.units.Load(),
		Conflicts: m.conflicts.Load(),
		Emitted:   m.emitted.Load(),
		CacheHits: m.cacheHits.Load(),
		Failures:  m.failures.Load(),
	}
}

// Diagnose loads each batch file, runs region error reporting over its
// conflict records, and renders the resulting diagnostics. Results come
// back in input order regardless of which worker finished first. Per-file
// load and decode failures land in Result.Err; the returned error is
// reserved for cancellation.
func Diagnose(ctx context.Context, paths []string, opts Options) ([]Result, Metrics, error) {
	var metrics runMetrics
	if opts.Events != nil {
		defer close(opts.Events)
	}
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, metrics.snapshot(), nil
	}
	for _, path := range paths {
		notify(opts.Events, Event{Path: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = 256
	}

	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeRun, "diag", 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				results[i] = diagnoseOne(path, maxDiags, opts, &metrics, tracer, run.ID())
				return nil
			}
		}(i, path))
	}
	err := g.Wait()
	run.End(fmt.Sprintf("%d batches", len(paths)))
	if err != nil {
		return nil, metrics.snapshot(), err
	}
	return results, metrics.snapshot(), nil
}

func diagnoseOne(path string, maxDiags int, opts Options, metrics *runMetrics, tracer trace.Tracer, parent uint64) Result {
	res := Result{Path: path}
	span := trace.Begin(tracer, trace.ScopeBatch, "batch:"+path, parent)
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	stage := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	finish := func() {
		if timer != nil {
			report := timer.Report()
			res.Timing = &report
		}
	}
	notify(opts.Events, Event{Path: path, Stage: StageLoad, Status: StatusWorking})

	loadStage := stage("load")
	raw, key, cached := lookupCached(path, opts)
	if cached != nil {
		timer.End(loadStage, "cache hit")
		metrics.units.Add(1)
		metrics.cacheHits.Add(1)
		res.Rendered = cached.Rendered
		res.Errors = cached.Errors
		res.Warnings = cached.Warnings
		res.FromCache = true
		finish()
		notify(opts.Events, Event{Path: path, Stage: StageRender, Status: StatusCached})
		span.End("cached")
		return res
	}

	unit, err := loadUnit(path, raw)
	timer.End(loadStage, "")
	if err != nil {
		metrics.failures.Add(1)
		res.Err = err
		finish()
		notify(opts.Events, Event{Path: path, Stage: StageLoad, Status: StatusError})
		span.End("load failed")
		return res
	}
	if opts.BaseDir != "" {
		unit.Files.SetBaseDir(opts.BaseDir)
	}
	metrics.units.Add(1)
	metrics.conflicts.Add(int64(len(unit.Errors)))
	notify(opts.Events, Event{Path: path, Stage: StageReport, Status: StatusWorking})

	reportStage := stage("report")
	bag := diag.NewBag(maxDiags)
	cx := infer.NewContext(unit.Files, unit.Names, unit.Types, unit.Tree, diag.BagReporter{Bag: bag})
	if err := cx.ReportRegionErrors(unit.Errors); err != nil {
		timer.End(reportStage, "")
		metrics.failures.Add(1)
		res.Err = err
		finish()
		notify(opts.Events, Event{Path: path, Stage: StageReport, Status: StatusError})
		span.End("report failed")
		return res
	}
	if opts.IgnoreWarnings {
		bag.DropBelow(diag.SevError)
	}
	bag.Sort()
	bag.Dedup()
	timer.End(reportStage, fmt.Sprintf("%d diagnostics", bag.Len()))
	metrics.emitted.Add(int64(bag.Len()))
	notify(opts.Events, Event{Path: path, Stage: StageRender, Status: StatusWorking})

	renderStage := stage("render")
	res.Unit = unit
	res.Bag = bag
	res.Rendered = render(bag, unit.Files, opts.Pretty)
	for _, d := range bag.Items() {
		switch d.Severity {
		case diag.SevError:
			res.Errors++
		case diag.SevWarning:
			res.Warnings++
		}
	}
	timer.End(renderStage, "")

	if opts.Cache != nil && raw != nil {
		entry := CachedReport{
			Rendered: res.Rendered,
			Errors:   res.Errors,
			Warnings: res.Warnings,
			Codes:    bagCodes(bag),
		}
		// Best effort; a full cache directory must not fail the run.
		_ = opts.Cache.Put(key, &entry)
	}
	finish()
	notify(opts.Events, Event{Path: path, Stage: StageRender, Status: StatusDone})
	span.End(fmt.Sprintf("%d error(s)", res.Errors))
	return res
}

// lookupCached reads the batch bytes and consults the cache. The raw
// bytes are returned so a miss does not read the file twice. Rendering
// options are folded into the key: the same batch rendered with color
// and without are different entries.
func lookupCached(path string, opts Options) (raw []byte, key Digest, hit *CachedReport) {
	if opts.Cache == nil {
		return nil, Digest{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Digest{}, nil
	}
	key = DigestBytes(append(raw, renderFingerprint(opts)...))
	var entry CachedReport
	ok, err := opts.Cache.Get(key, &entry)
	if err != nil || !ok {
		return raw, key, nil
	}
	return raw, key, &entry
}

func renderFingerprint(opts Options) []byte {
	b := func(v bool) byte {
		if v {
			return 1
		}
		return 0
	}
	p := opts.Pretty
	fp := []byte{
		b(p.Color), byte(p.Context), byte(p.PathMode),
		b(p.ShowNotes), b(p.ShowHelps), b(opts.IgnoreWarnings),
	}
	// The base dir changes rendered paths, so it keys the cache too.
	return append(fp, opts.BaseDir...)
}

func loadUnit(path string, raw []byte) (*Unit, error) {
	if raw != nil {
		return Decode(bytes.NewReader(raw))
	}
	return Load(path)
}

func render(bag *diag.Bag, fs *source.FileSet, opts diagfmt.PrettyOpts) string {
	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, opts)
	return sb.String()
}

func bagCodes(bag *diag.Bag) []string {
	items := bag.Items()
	codes := make([]string, 0, len(items))
	for _, d := range items {
		codes = append(codes, d.Code.ID())
	}
	sort.Strings(codes)
	return codes
}
