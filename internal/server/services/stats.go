package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/Berkcanaskin/stellar/internal/logging"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/campaigns"
	"github.com/rif/cache2go"
)

// statsPageSize is how many recent payments are summed per key. Matches
// Horizon's maximum page size so one request covers the whole window.
const statsPageSize = 200

const totalsCacheKey = "per-key-totals"

// TotalsResult carries per-key donation totals. Cached reports whether the
// snapshot came from the cache; AgeMs is its age then, 0 for a fresh fetch.
type TotalsResult struct {
	Totals map[string]float64 `json:"totals"`
	Cached bool               `json:"cached"`
	AgeMs  int64              `json:"ageMs"`
}

type totalsSnapshot struct {
	totals    map[string]float64
	fetchedAt time.Time
}

// StatsService aggregates incoming payments per campaign key. The whole
// aggregation is one cache entry; a force refresh recomputes every key.
type StatsService struct {
	campaigns campaigns.Repository
	ledger    Ledger
	cache     *cache2go.Cache
	logger    logging.Logger

	now func() time.Time
}

func NewStatsService(repo campaigns.Repository, l Ledger, ttl time.Duration, logger logging.Logger) *StatsService {
	return &StatsService{
		campaigns: repo,
		ledger:    l,
		cache:     cache2go.New(1, ttl),
		logger:    logger,
		now:       time.Now,
	}
}

// Totals sums received payments for every campaign key, fanning the fetches
// out concurrently. A key whose fetch fails reports 0 without affecting the
// others. force bypasses the cached snapshot.
func (s *StatsService) Totals(ctx context.Context, force bool) (*TotalsResult, error) {

	if !force {
		if v, ok := s.cache.Get(totalsCacheKey); ok {
			snap := v.(totalsSnapshot)
			return &TotalsResult{
				Totals: snap.totals,
				Cached: true,
				AgeMs:  s.now().Sub(snap.fetchedAt).Milliseconds(),
			}, nil
		}
	}

	list, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(list))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	seen := make(map[string]bool, len(list))
	for _, c := range list {
		if seen[c.PublicKey] {
			continue
		}
		seen[c.PublicKey] = true

		wg.Add(1)
		go func(publicKey string) {
			defer wg.Done()

			total, err := s.fetchTotal(ctx, publicKey)
			if err != nil {
				s.logger.Warn(ctx, "totals fetch failed", "publicKey", publicKey, "error", err)
				total = 0
			}

			mu.Lock()
			totals[publicKey] = total
			mu.Unlock()
		}(c.PublicKey)
	}
	wg.Wait()

	s.cache.Set(totalsCacheKey, totalsSnapshot{totals: totals, fetchedAt: s.now()})

	return &TotalsResult{Totals: totals, Cached: false, AgeMs: 0}, nil
}

func (s *StatsService) fetchTotal(ctx context.Context, publicKey string) (float64, error) {

	records, err := s.ledger.Payments(ctx, publicKey, statsPageSize, "desc")
	if err != nil {
		return 0, err
	}

	var total float64
	for _, r := range records {
		if r.Type != "payment" || r.To != publicKey {
			continue
		}
		amount, err := strconv.ParseFloat(r.Amount, 64)
		if err != nil {
			continue
		}
		total += amount
	}
	return total, nil
}
