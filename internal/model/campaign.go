// internal/model/campaign.go
package model

import "time"

// Campaign is one uploaded CSV file's worth of posts. Posts keep the CSV
// row order and the campaign is immutable once stored.
type Campaign struct {
	ID        int       `json:"id"`
	Posts     []Post    `json:"posts"`
	CreatedAt time.Time `json:"created_at"`
}
