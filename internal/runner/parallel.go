package runner

import (
	"fmt"
	"sync"

	"github.com/mgijax/snpcacheload/internal/output"
)

// chromItem is one chromosome queued for a worker.
type chromItem struct {
	Seq        int
	Chromosome string
}

// chromResult is a finished chromosome.
type chromResult struct {
	Seq        int
	Chromosome string
	Rows       int64
	Err        error
}

// runParallel fans chromosomes over a worker pool. Each worker writes its
// output file with local primary keys starting at 1; results are collected in
// sequence order and each file is renumbered onto the run-global key sequence
// as soon as every earlier chromosome has been rebased.
func (r *Runner) runParallel(workers int) error {
	if workers > len(r.cfg.Chromosomes) {
		workers = len(r.cfg.Chromosomes)
	}

	items := make(chan chromItem)
	results := make(chan chromResult, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				rows, err := r.processToFile(item.Chromosome)
				results <- chromResult{
					Seq:        item.Seq,
					Chromosome: item.Chromosome,
					Rows:       rows,
					Err:        err,
				}
			}
		}()
	}

	go func() {
		for i, chromosome := range r.cfg.Chromosomes {
			items <- chromItem{Seq: i, Chromosome: chromosome}
		}
		close(items)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Rebase in chromosome-list order. Out-of-order completions wait in the
	// pending map until the next expected sequence number arrives.
	keys := output.NewKeyGen(1)
	pending := make(map[int]chromResult)
	nextSeq := 0
	var firstErr error

	for res := range results {
		pending[res.Seq] = res
		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++

			if rr.Err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("chr %s: %w", rr.Chromosome, rr.Err)
				}
				continue
			}
			if firstErr != nil {
				continue
			}
			if err := output.Renumber(r.cfg.OutputPath(rr.Chromosome), keys); err != nil {
				firstErr = fmt.Errorf("chr %s: %w", rr.Chromosome, err)
				continue
			}
			r.log.Infow("chromosome complete", "chr", rr.Chromosome, "rows", rr.Rows)
		}
	}

	return firstErr
}

// processToFile runs one chromosome into its output file with a local key
// generator.
func (r *Runner) processToFile(chromosome string) (int64, error) {
	w, err := output.NewBCPWriter(r.cfg.OutputPath(chromosome), output.NewKeyGen(1))
	if err != nil {
		return 0, err
	}
	err = r.processChromosome(chromosome, w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return w.Rows(), err
}
