// internal/repository/campaign_repository.go
package repository

import (
	"sync"
	"time"

	appErrors "github.com/campaignlens/campaignlens-backend/internal/errors"
	"github.com/campaignlens/campaignlens-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(posts []model.Post) (*model.Campaign, error)
	GetByID(id int) (*model.Campaign, error)
	GetAll() []*model.Campaign
	Count() int
}

// CampaignRepository keeps every uploaded campaign in memory for the
// process lifetime. The slice is append-only and campaigns are immutable
// once stored, so the lock only guards id assignment and appends.
type CampaignRepository struct {
	mu        sync.Mutex
	campaigns []*model.Campaign
}

func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{}
}

// Create builds and stores a campaign from a non-empty post list. The id
// is count+1, assigned under the lock so the count read and the append
// cannot interleave.
func (r *CampaignRepository) Create(posts []model.Post) (*model.Campaign, error) {
	if len(posts) == 0 {
		return nil, appErrors.NewEmptyCampaign()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := &model.Campaign{
		ID:        len(r.campaigns) + 1,
		Posts:     posts,
		CreatedAt: time.Now(),
	}
	r.campaigns = append(r.campaigns, c)
	return c, nil
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ids are dense: campaign N lives at index N-1
	if id < 1 || id > len(r.campaigns) {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	return r.campaigns[id-1], nil
}

func (r *CampaignRepository) GetAll() []*model.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Campaign, len(r.campaigns))
	copy(out, r.campaigns)
	return out
}

func (r *CampaignRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.campaigns)
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
