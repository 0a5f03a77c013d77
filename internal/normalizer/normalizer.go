// internal/normalizer/normalizer.go
package normalizer

import (
	"strconv"
	"strings"

	appErrors "github.com/campaignlens/campaignlens-backend/internal/errors"
	"github.com/campaignlens/campaignlens-backend/internal/model"
	"github.com/campaignlens/campaignlens-backend/internal/parser"
)

// RequiredColumns are the canonical fields every upload must provide.
var RequiredColumns = []string{"engagement_rate", "media_type", "followers_gained", "shares", "saves"}

// ValidateHeaders checks that the header row, after case/whitespace
// normalization, covers every required canonical column. On failure the
// returned error names the missing canonical columns and the raw columns
// that were actually present.
func ValidateHeaders(rawHeaders []string) error {
	seen := make(map[string]bool, len(rawHeaders))
	for _, h := range rawHeaders {
		seen[parser.NormalizeKey(h)] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	present := make([]string, 0, len(rawHeaders))
	for _, h := range rawHeaders {
		if trimmed := strings.TrimSpace(h); trimmed != "" {
			present = append(present, trimmed)
		}
	}
	return appErrors.NewMissingColumns(missing, present)
}

// NormalizePost maps one raw record to a typed Post. index is the 1-based
// position of the row in the file and becomes the post ID when the record
// carries no usable post_id.
func NormalizePost(rec parser.RawRecord, index int) model.Post {
	p := model.Post{
		UploadDate:      rec["upload_date"],
		MediaType:       rec["media_type"],
		TrafficSource:   rec["traffic_source"],
		ContentCategory: rec["content_category"],
		Likes:           parseInt(rec["likes"]),
		Comments:        parseInt(rec["comments"]),
		Shares:          parseInt(rec["shares"]),
		Saves:           parseInt(rec["saves"]),
		Reach:           parseInt(rec["reach"]),
		Impressions:     parseInt(rec["impressions"]),
		CaptionLength:   parseInt(rec["caption_length"]),
		HashtagsCount:   parseInt(rec["hashtags_count"]),
		FollowersGained: parseInt(rec["followers_gained"]),
		EngagementRate:  parseFloat(rec["engagement_rate"]),
	}

	id := strings.TrimSpace(rec["post_id"])
	if id == "" {
		id = strconv.Itoa(index)
	}
	p.ID = id

	return p
}

// NormalizeAll maps every raw record in file order.
func NormalizeAll(records []parser.RawRecord) []model.Post {
	posts := make([]model.Post, len(records))
	for i, rec := range records {
		posts[i] = NormalizePost(rec, i+1)
	}
	return posts
}

// Bad numeric data is a silent zero, never an error.
func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
