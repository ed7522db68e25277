package bulklink

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/infrastructure/recordtext"
	"go.uber.org/zap"
)

// ProgressFunc is invoked after every record with the number of records
// completed so far and the batch total.
type ProgressFunc func(completed, total int)

// RunnerOptions tunes a batch run
type RunnerOptions struct {
	// Delay is the pause inserted between consecutive records. Zero means
	// no pause.
	Delay time.Duration
	// OnProgress, when set, is called after each record
	OnProgress ProgressFunc
}

// Runner drives a batch of candidate records through resolution and linkage,
// strictly one at a time. Records are independent: a failure is recorded and
// the run moves on.
type Runner struct {
	linkage *LinkageService
	logger  *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(linkage *LinkageService, logger *zap.Logger) *Runner {
	return &Runner{linkage: linkage, logger: logger}
}

// Run processes the records in order against the snapshot. Cancellation is
// honored between records, never mid-record: the returned result covers
// exactly the records completed before ctx was done, and the context error
// is returned alongside it.
func (r *Runner) Run(
	ctx context.Context,
	snap *Snapshot,
	operatorID uuid.UUID,
	records []recordtext.CandidateRecord,
	opts RunnerOptions,
) (*Result, error) {
	result := &Result{
		Outcomes: make([]Outcome, 0, len(records)),
		Total:    len(records),
	}

	for i, rec := range records {
		if i > 0 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(opts.Delay):
			}
		} else if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome := r.processOne(ctx, snap, operatorID, rec)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Success {
			result.Succeeded++
		} else {
			result.Failed++
			r.logger.Warn("record failed",
				zap.String("code", outcome.Code),
				zap.String("name", rec.Name),
				zap.String("message", outcome.Message))
		}

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, result.Total)
		}
	}

	return result, nil
}

func (r *Runner) processOne(ctx context.Context, snap *Snapshot, operatorID uuid.UUID, rec recordtext.CandidateRecord) Outcome {
	res, err := snap.Resolve(rec)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return failureOutcome(rec, domainErr.Code, domainErr.Message)
		}
		return failureOutcome(rec, CodeLinkageError, err.Error())
	}
	return r.linkage.Link(ctx, operatorID, res, rec)
}
