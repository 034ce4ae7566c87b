package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// Failure records one document that could not be processed.
type Failure struct {
	Ref string
	Err error
}

// BatchReport is the outcome of a batch run. Results keep the submission
// order of their refs; a failed document appears in Failures instead and
// never aborts the rest of the batch.
type BatchReport struct {
	Results  []Result
	Failures []Failure
}

// Batch runs many documents through one processor on a bounded worker pool.
// Documents are independent (each pipeline invocation is a pure function of
// its own fragments), so the only shared state is the per-slot result array
// merged after the pool drains.
type Batch struct {
	processor *Processor
	source    Source
	sink      Sink
	workers   int
}

// NewBatch creates a batch runner. A nil sink skips persistence, which is
// useful for dry runs and tests. Worker counts below one are clamped to one.
func NewBatch(processor *Processor, source Source, sink Sink, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{processor: processor, source: source, sink: sink, workers: workers}
}

// Run processes every ref and reports results in submission order. When the
// context is cancelled, unstarted documents are reported as failures with the
// context's error.
func (b *Batch) Run(ctx context.Context, refs []string) BatchReport {
	type slot struct {
		result Result
		err    error
		done   bool
	}
	slots := make([]slot, len(refs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := b.runOne(ctx, refs[i])
				if err != nil {
					slots[i] = slot{err: err}
					continue
				}
				slots[i] = slot{result: res, done: true}
			}
		}()
	}

	for i := range refs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			slots[i] = slot{err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	var report BatchReport
	for i, s := range slots {
		if s.done {
			report.Results = append(report.Results, s.result)
			continue
		}
		report.Failures = append(report.Failures, Failure{Ref: refs[i], Err: s.err})
	}
	return report
}

func (b *Batch) runOne(ctx context.Context, ref string) (Result, error) {
	doc, err := b.source.Load(ctx, ref)
	if err != nil {
		return Result{}, fmt.Errorf("load %s: %w", ref, err)
	}
	res := b.processor.Process(doc)
	if b.sink != nil {
		if err := b.sink.Write(ctx, res.Name, res.Tables); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", res.Name, err)
		}
	}
	return res, nil
}
