// Command reproj reprojects x,y[,z] CSV records between two named CRSs. It
// reads stdin or a file, fans the rows out over a worker pool sharing one
// transform pipeline, and writes results in input order.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/geodesyworks/reproj/core"
	"github.com/geodesyworks/reproj/internal/logging"
	"github.com/geodesyworks/reproj/internal/observability"
	"github.com/geodesyworks/reproj/model"
	"github.com/geodesyworks/reproj/registry"
)

const tracerName = "github.com/geodesyworks/reproj/cmd/reproj"

func main() {
	srcName := flag.String("s", "", "Source CRS name, e.g. EPSG:4326")
	tgtName := flag.String("t", "", "Target CRS name, e.g. EPSG:3857")
	inPath := flag.String("i", "-", "Input CSV of x,y[,z] rows ('-' for stdin)")
	outPath := flag.String("o", "-", "Output CSV ('-' for stdout)")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of transform workers")
	skipErrors := flag.Bool("skip-errors", false, "Drop rows that fail instead of aborting")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	if *srcName == "" || *tgtName == "" {
		fmt.Fprintln(os.Stderr, "both -s and -t are required")
		flag.Usage()
		os.Exit(2)
	}

	in := os.Stdin
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			log.Error(ctx, "cannot open input", logging.Err(err))
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Error(ctx, "cannot create output", logging.Err(err))
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	collector, err := observability.NewBatchCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.Err(err))
		os.Exit(1)
	}

	job := Job{
		SourceCRS:  *srcName,
		TargetCRS:  *tgtName,
		Workers:    *workers,
		SkipErrors: *skipErrors,
	}
	summary, err := job.Run(ctx, registry.NewWithBuiltins(), in, out, collector, log)
	if err != nil {
		log.Error(ctx, "batch job failed", logging.Err(err))
		os.Exit(1)
	}
	log.Info(ctx, "batch job finished",
		logging.Int("rows", summary.Rows),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed),
	)
}

// Job is one batch reprojection run.
type Job struct {
	SourceCRS  string
	TargetCRS  string
	Workers    int
	SkipErrors bool
}

// Summary reports what a finished job did.
type Summary struct {
	Rows    int
	Failed  int
	Elapsed time.Duration
}

type row struct {
	index  int
	record []string
}

type result struct {
	out []string
	err error
}

// Run streams rows through a pool of workers sharing one Transform and
// writes results in input order. With SkipErrors false the first failing row
// aborts the job.
func (j *Job) Run(ctx context.Context, reg *registry.Registry, in io.Reader, out io.Writer, collector *observability.BatchCollector, log logging.Logger) (Summary, error) {
	if log == nil {
		log = logging.Noop()
	}
	start := time.Now()

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "reproj.batch")
	span.SetAttributes(
		attribute.String("source_crs", j.SourceCRS),
		attribute.String("target_crs", j.TargetCRS),
		attribute.Int("workers", j.Workers),
	)
	defer span.End()

	src, ok := reg.Get(j.SourceCRS)
	if !ok {
		return Summary{}, fmt.Errorf("unknown source CRS %s", j.SourceCRS)
	}
	tgt, ok := reg.Get(j.TargetCRS)
	if !ok {
		return Summary{}, fmt.Errorf("unknown target CRS %s", j.TargetCRS)
	}
	tr, err := core.NewTransform(src, tgt)
	if err != nil {
		return Summary{}, err
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Summary{}, fmt.Errorf("reading input: %w", err)
		}
		records = append(records, rec)
	}

	workers := j.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(records) && len(records) > 0 {
		workers = len(records)
	}
	collector.SetWorkers(workers)
	defer collector.SetWorkers(0)

	jobs := make(chan row)
	results := make([]result, len(records))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var c model.Coordinate
			for r := range jobs {
				results[r.index] = transformRecord(tr, &c, r.record)
			}
		}()
	}
	for i, rec := range records {
		jobs <- row{index: i, record: rec}
	}
	close(jobs)
	wg.Wait()

	writer := csv.NewWriter(out)
	failed := 0
	for i, res := range results {
		if res.err != nil {
			failed++
			collector.IncRowError()
			if !j.SkipErrors {
				span.RecordError(res.err)
				return Summary{}, fmt.Errorf("row %d: %w", i+1, res.err)
			}
			log.Warn(ctx, "dropping row", logging.Int("row", i+1), logging.Err(res.err))
			continue
		}
		if err := writer.Write(res.out); err != nil {
			return Summary{}, fmt.Errorf("writing output: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return Summary{}, fmt.Errorf("writing output: %w", err)
	}

	summary := Summary{Rows: len(records), Failed: failed, Elapsed: time.Since(start)}
	collector.AddRows(summary.Rows)
	collector.ObserveJob(summary.Elapsed)
	span.SetAttributes(attribute.Int("rows", summary.Rows), attribute.Int("failed", summary.Failed))
	return summary, nil
}

func transformRecord(tr *core.Transform, c *model.Coordinate, record []string) result {
	switch len(record) {
	case 2, 3:
	default:
		return result{err: fmt.Errorf("want 2 or 3 fields, got %d", len(record))}
	}

	vals := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return result{err: fmt.Errorf("field %d: %w", i+1, err)}
		}
		vals[i] = v
	}

	if len(vals) == 3 {
		*c = model.NewCoordinate(vals[0], vals[1], vals[2])
	} else {
		*c = model.NewCoordinate2D(vals[0], vals[1])
	}
	if _, err := tr.Transform(c, c); err != nil {
		return result{err: err}
	}

	out := make([]string, 0, 3)
	out = append(out,
		strconv.FormatFloat(c.X, 'f', -1, 64),
		strconv.FormatFloat(c.Y, 'f', -1, 64),
	)
	if c.HasZ() {
		out = append(out, strconv.FormatFloat(c.Z, 'f', -1, 64))
	}
	return result{out: out}
}
