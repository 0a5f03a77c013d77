// internal/service/campaign_service.go
package service

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campaignlens/campaignlens-backend/internal/analytics"
	appErrors "github.com/campaignlens/campaignlens-backend/internal/errors"
	"github.com/campaignlens/campaignlens-backend/internal/model"
	"github.com/campaignlens/campaignlens-backend/internal/normalizer"
	"github.com/campaignlens/campaignlens-backend/internal/parser"
	"github.com/campaignlens/campaignlens-backend/internal/queue"
	"github.com/campaignlens/campaignlens-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	Queue        queue.Queue
	Logger       *logrus.Logger
}

// CreateCampaignFromCSV reads the whole upload, validates the header row,
// normalizes every data row and stores the result as a new campaign.
// Validation failures come back as typed errors for the handler to map.
func (s *CampaignService) CreateCampaignFromCSV(r io.Reader) (*model.Campaign, error) {
	file, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	if len(file.Headers) == 0 {
		return nil, appErrors.NewEmptyCSV()
	}
	if err := normalizer.ValidateHeaders(file.Headers); err != nil {
		return nil, err
	}
	if len(file.Records) == 0 {
		return nil, appErrors.NewEmptyCSV()
	}

	posts := normalizer.NormalizeAll(file.Records)
	campaign, err := s.CampaignRepo.Create(posts)
	if err != nil {
		return nil, err
	}

	s.publishUploadEvent(campaign)
	return campaign, nil
}

func (s *CampaignService) ListCampaigns() []*model.Campaign {
	return s.CampaignRepo.GetAll()
}

func (s *CampaignService) GetCampaign(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

// GetAnalytics recomputes the full view from the stored posts on every call.
func (s *CampaignService) GetAnalytics(id int) (*analytics.View, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return analytics.Compute(campaign.Posts)
}

// AverageEngagementRate returns just the 4-decimal overall engagement rate.
func (s *CampaignService) AverageEngagementRate(id int) (float64, error) {
	campaign, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return 0, err
	}
	return analytics.OverallEngagementRate(campaign.Posts), nil
}

// publishUploadEvent is best-effort: a dead queue never fails an upload.
func (s *CampaignService) publishUploadEvent(c *model.Campaign) {
	if s.Queue == nil {
		return
	}

	event := queue.CampaignUploaded{
		CampaignID: c.ID,
		PostCount:  len(c.Posts),
		MediaTypes: analytics.MediaTypes(c.Posts),
		UploadedAt: time.Now(),
	}
	if err := s.Queue.Publish(queue.TopicCampaignUploads, event); err != nil && s.Logger != nil {
		s.Logger.Warnf("failed to publish upload event for campaign %d: %v", c.ID, err)
	}
}
