// internal/analytics/analytics.go
package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/campaignlens/campaignlens-backend/internal/model"
)

// View is the derived aggregate computed from a campaign's posts on demand.
// It is never stored; every call recomputes from scratch.
type View struct {
	TotalFollowersGained  int      `json:"totalFollowersGained"`
	OverallEngagementRate float64  `json:"overallEngagementRate"`
	Top5ByEngagement      []string `json:"top5ByEngagement"`
	Top5ByShares          []string `json:"top5ByShares"`
	BestMediaType         string   `json:"bestMediaType"`
	MediaTypes            []string `json:"mediaTypes"`
}

// Compute derives the full analytics view from a non-empty post list. Each
// output is computed independently; the result is deterministic for the
// same input order.
func Compute(posts []model.Post) (*View, error) {
	if len(posts) == 0 {
		return nil, fmt.Errorf("cannot compute analytics for an empty post list")
	}

	return &View{
		TotalFollowersGained:  totalFollowersGained(posts),
		OverallEngagementRate: OverallEngagementRate(posts),
		Top5ByEngagement:      topNIDs(posts, 5, func(p model.Post) float64 { return p.EngagementRate }),
		Top5ByShares:          topNIDs(posts, 5, func(p model.Post) float64 { return float64(p.Shares) }),
		BestMediaType:         bestMediaType(posts),
		MediaTypes:            MediaTypes(posts),
	}, nil
}

// OverallEngagementRate is the arithmetic mean of engagement_rate, rounded
// half away from zero at the 4th decimal.
func OverallEngagementRate(posts []model.Post) float64 {
	var sum float64
	for _, p := range posts {
		sum += p.EngagementRate
	}
	return round4(sum / float64(len(posts)))
}

// MediaTypes lists the distinct media_type values in first-seen order.
func MediaTypes(posts []model.Post) []string {
	seen := make(map[string]bool)
	types := []string{}
	for _, p := range posts {
		if !seen[p.MediaType] {
			seen[p.MediaType] = true
			types = append(types, p.MediaType)
		}
	}
	return types
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}

func totalFollowersGained(posts []model.Post) int {
	total := 0
	for _, p := range posts {
		total += p.FollowersGained
	}
	return total
}

// topNIDs sorts a copy descending by key and returns the first min(n, len)
// post IDs. The sort is stable so ties keep their original row order.
func topNIDs(posts []model.Post, n int, key func(model.Post) float64) []string {
	sorted := make([]model.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = sorted[i].ID
	}
	return ids
}

// bestMediaType wins on strictly highest average engagement rate; the
// comparison uses > so the first-seen media type keeps ties.
func bestMediaType(posts []model.Post) string {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, p := range posts {
		b, ok := buckets[p.MediaType]
		if !ok {
			b = &bucket{}
			buckets[p.MediaType] = b
			order = append(order, p.MediaType)
		}
		b.sum += p.EngagementRate
		b.count++
	}

	best := ""
	bestAvg := math.Inf(-1)
	for _, mt := range order {
		b := buckets[mt]
		if avg := b.sum / float64(b.count); avg > bestAvg {
			best = mt
			bestAvg = avg
		}
	}
	return best
}
