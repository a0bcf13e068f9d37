package bookingflow

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// AvailabilityWindow is how far ahead availability is fetched.
const AvailabilityWindow = 14 * 24 * time.Hour

// Aggregator merges the SPOC directory with per-SPOC availability.
// Availability is a best-effort enrichment: a SPOC whose availability call
// fails is still included, with an empty slot list, so one flaky dependency
// cannot hide an otherwise-bookable SPOC.
type Aggregator struct {
	dir    Directory
	logger *zap.Logger
	now    func() time.Time
}

// NewAggregator constructs an aggregator.
func NewAggregator(dir Directory, logger *zap.Logger) *Aggregator {
	return &Aggregator{dir: dir, logger: logger, now: time.Now}
}

// Collect returns the SPOCs matching solutionType, each annotated with its
// open slots in [now, now+AvailabilityWindow). The result preserves the
// directory's candidate order regardless of fetch completion order, and
// all availability fetches are awaited before returning. A directory
// listing failure fails the whole aggregation.
func (a *Aggregator) Collect(ctx context.Context, solutionType string) ([]domain.SpocAvailability, error) {
	spocs, err := a.dir.ListSpocs(ctx, solutionType)
	if err != nil {
		return nil, err
	}

	from := a.now()
	to := from.Add(AvailabilityWindow)

	results := make([]domain.SpocAvailability, len(spocs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spoc := range spocs {
		i, spoc := i, spoc
		results[i].Spoc = spoc
		results[i].Slots = []domain.Slot{}
		g.Go(func() error {
			slots, err := a.dir.GetAvailability(gctx, spoc.ID, from, to)
			if err != nil {
				a.logger.Warn("availability fetch failed; showing SPOC without slots",
					zap.Int("spoc_id", spoc.ID),
					zap.Error(err))
				return nil
			}
			results[i].Slots = slots
			return nil
		})
	}
	// Goroutines absorb their own errors, so Wait only synchronizes.
	_ = g.Wait()

	return results, nil
}
