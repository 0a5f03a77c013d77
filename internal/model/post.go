// internal/model/post.go
package model

// Post is one row of campaign performance data, normalized to typed fields.
// ID is the CSV-supplied post_id when present, otherwise the 1-based row
// position in the uploaded file; it is unique only within its campaign.
type Post struct {
	ID              string  `json:"id"`
	UploadDate      string  `json:"upload_date"`
	MediaType       string  `json:"media_type"`
	Likes           int     `json:"likes"`
	Comments        int     `json:"comments"`
	Shares          int     `json:"shares"`
	Saves           int     `json:"saves"`
	Reach           int     `json:"reach"`
	Impressions     int     `json:"impressions"`
	CaptionLength   int     `json:"caption_length"`
	HashtagsCount   int     `json:"hashtags_count"`
	FollowersGained int     `json:"followers_gained"`
	TrafficSource   string  `json:"traffic_source"`
	EngagementRate  float64 `json:"engagement_rate"`
	ContentCategory string  `json:"content_category"`
}
