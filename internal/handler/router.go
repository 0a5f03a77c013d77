// internal/handler/router.go
package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the HTTP surface. Kept separate from main so tests can
// exercise the exact same routing.
func NewRouter(campaigns *CampaignHandler, health *HealthHandler, corsOrigin string, logger *logrus.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(CORSMiddleware(corsOrigin))
	r.Use(RequestLogger(logger))

	r.Get("/health", health.Health)

	r.Route("/campaigns", func(r chi.Router) {
		r.Post("/", campaigns.UploadCampaign)
		r.Get("/", campaigns.ListCampaigns)
		r.Get("/{id}", campaigns.GetCampaign)
		r.Get("/{id}/analytics", campaigns.GetAnalytics)
		r.Get("/{id}/average-engagement-rate", campaigns.GetAverageEngagementRate)
	})

	return r
}
