// Package gainers ranks market records by their 24h percentage change.
package gainers

import (
	"sort"

	"github.com/songzhibin97/cryptogainers/internal/models"
)

// Select drops records without a 24h change, stable-sorts the rest by change
// (largest first), keeps the first topN and projects them to GainerEntry.
// records is not modified. The result is never nil.
func Select(records []models.CoinRecord, topN int) []models.GainerEntry {
	known := make([]models.CoinRecord, 0, len(records))
	for _, r := range records {
		if r.HasChange() {
			known = append(known, r)
		}
	}

	sort.SliceStable(known, func(i, j int) bool {
		return *known[i].PriceChangePercentage24h > *known[j].PriceChangePercentage24h
	})

	if topN < 0 {
		topN = 0
	}
	if len(known) > topN {
		known = known[:topN]
	}

	entries := make([]models.GainerEntry, len(known))
	for i, r := range known {
		entries[i] = models.GainerEntry{
			Name:                     r.Name,
			Symbol:                   r.Symbol,
			CurrentPrice:             r.CurrentPrice,
			PriceChangePercentage24h: *r.PriceChangePercentage24h,
			MarketCap:                r.MarketCap,
		}
	}
	return entries
}
