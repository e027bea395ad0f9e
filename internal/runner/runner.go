// Package runner orchestrates the per-chromosome proximity join.
package runner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mgijax/snpcacheload/internal/config"
	"github.com/mgijax/snpcacheload/internal/output"
	"github.com/mgijax/snpcacheload/internal/overlay"
	"github.com/mgijax/snpcacheload/internal/proximity"
	"github.com/mgijax/snpcacheload/internal/store"
	"github.com/mgijax/snpcacheload/internal/vocab"
)

// Runner drives a full cache load: one pass per configured chromosome, each
// producing one association bcp file.
type Runner struct {
	store       *store.Store
	cfg         config.Config
	log         *zap.SugaredLogger
	withinCoord vocab.TermKey
	withinDist  vocab.TermKey
}

// New creates a runner, resolving the function class terms the classifier
// needs up front.
func New(st *store.Store, terms *vocab.Lookup, cfg config.Config, log *zap.SugaredLogger) (*Runner, error) {
	withinCoord, err := terms.Resolve(vocab.WithinCoordinates)
	if err != nil {
		return nil, err
	}
	withinDist, err := terms.Resolve(vocab.WithinDistance)
	if err != nil {
		return nil, err
	}
	return &Runner{
		store:       st,
		cfg:         cfg,
		log:         log,
		withinCoord: withinCoord,
		withinDist:  withinDist,
	}, nil
}

// Run processes every configured chromosome. With WORKERS > 1 chromosomes
// are fanned over a worker pool and primary keys rebased afterwards;
// otherwise chromosomes run sequentially with a single key generator.
func (r *Runner) Run() error {
	if r.cfg.Workers > 1 {
		return r.runParallel(r.cfg.Workers)
	}
	return r.runSequential()
}

func (r *Runner) runSequential() error {
	keys := output.NewKeyGen(1)
	for _, chromosome := range r.cfg.Chromosomes {
		w, err := output.NewBCPWriter(r.cfg.OutputPath(chromosome), keys)
		if err != nil {
			return err
		}
		err = r.processChromosome(chromosome, w)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("chr %s: %w", chromosome, err)
		}
		r.log.Infow("chromosome complete", "chr", chromosome, "rows", w.Rows())
	}
	return nil
}

// processChromosome loads the overlay, SNP list, and marker set for one
// chromosome and streams the join into the writer.
func (r *Runner) processChromosome(chromosome string, w *output.BCPWriter) error {
	ov, err := overlay.Load(r.cfg.OverlayPath(chromosome))
	if err != nil {
		return err
	}

	maxCoord, err := r.store.MaxSNPCoord(chromosome)
	if err != nil {
		return err
	}
	r.log.Infow("max snp coordinate", "chr", chromosome, "coord", maxCoord)
	if maxCoord == 0 {
		// No SNPs on this chromosome; the output file stays empty.
		return nil
	}

	snps, err := r.store.SNPsInRange(chromosome, 1, maxCoord)
	if err != nil {
		return err
	}
	markers, err := r.store.MarkersInRange(chromosome, 1-r.cfg.Pad, maxCoord+r.cfg.Pad)
	if err != nil {
		return err
	}
	r.log.Infow("loaded chromosome inputs",
		"chr", chromosome, "snps", len(snps), "markers", len(markers), "overlayPairs", len(ov))

	classifier := proximity.NewClassifier(r.withinCoord, r.withinDist, ov, r.log)
	joiner := proximity.NewJoiner(r.cfg.Pad, classifier)
	return joiner.Join(snps, markers, w.Write)
}
