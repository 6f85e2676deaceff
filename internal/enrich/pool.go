package enrich

import (
	"context"
	"log"
	"sync"

	"github.com/lucasfdcampos/dealer-api/internal/domain"
)

// EnrichAll runs Single for every lead with a fixed-size worker pool.
//
// Workers claim indices from a shared queue, so each lead is processed by
// exactly one worker and each worker writes only to its own claimed index.
// Per-lead failures are logged and leave the lead unchanged; the returned
// slice preserves the input ordering.
func (e *Enricher) EnrichAll(ctx context.Context, leads []domain.Lead, lang, country string) []domain.Lead {
	enriched := make([]domain.Lead, len(leads))
	copy(enriched, leads)

	queue := make(chan int, len(enriched))
	for i := range enriched {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				res, err := e.Single(ctx, enriched[idx].Website, lang, country)
				if err != nil {
					log.Printf("WARN: enrich failed for %s: %v", enriched[idx].Website, err)
					continue
				}
				if res.Email != "" {
					enriched[idx].Email = res.Email
				}
				if res.Phone != "" {
					enriched[idx].Phone = res.Phone
				}
				enriched[idx].EmailScore = res.EmailScore
				enriched[idx].PhoneScore = res.PhoneScore
			}
		}()
	}
	wg.Wait()

	return enriched
}
