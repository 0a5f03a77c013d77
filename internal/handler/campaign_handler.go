// internal/handler/campaign_handler.go
package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appErrors "github.com/campaignlens/campaignlens-backend/internal/errors"
	"github.com/campaignlens/campaignlens-backend/internal/service"
)

// CampaignHandler holds the dependencies for campaign-related HTTP handlers
type CampaignHandler struct {
	Service        *service.CampaignService
	Logger         *logrus.Logger
	MaxUploadBytes int64
	TempDir        string
}

// UploadCampaign handles POST /campaigns/: a multipart CSV upload under the
// "file" field. The upload is spooled to a temp file that is removed on
// every path, success or failure.
func (h *CampaignHandler) UploadCampaign(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)

	if err := r.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusBadRequest, appErrors.NewFileTooLarge(h.MaxUploadBytes).Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// the form parsed, so a FormFile failure means the field is missing
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, appErrors.NewNoFile().Error())
		return
	}
	defer file.Close()

	if !isCSVUpload(header) {
		writeError(w, http.StatusBadRequest, appErrors.NewInvalidFileType(header.Filename).Error())
		return
	}

	tmpPath, err := h.spoolUpload(file)
	if err != nil {
		h.Logger.Errorf("failed to spool upload: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		h.Logger.Errorf("failed to reopen upload: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer f.Close()

	campaign, err := h.Service.CreateCampaignFromCSV(f)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.Logger.Infof("campaign %d created with %d posts from %s", campaign.ID, len(campaign.Posts), header.Filename)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Campaign created successfully",
		"campaign": campaign,
	})
}

// ListCampaigns returns every stored campaign in upload order
func (h *CampaignHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.ListCampaigns())
}

// GetCampaign returns a single campaign by integer id
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	campaign, err := h.Service.GetCampaign(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaign)
}

// GetAnalytics returns the full derived view for one campaign
func (h *CampaignHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	view, err := h.Service.GetAnalytics(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetAverageEngagementRate returns only the 4-decimal mean engagement rate
func (h *CampaignHandler) GetAverageEngagementRate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	rate, err := h.Service.AverageEngagementRate(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"averageEngagementRate": rate})
}

func (h *CampaignHandler) campaignID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid campaign id")
		return 0, false
	}
	return id, true
}

// spoolUpload copies the multipart part to a uuid-named temp file and
// returns its path. The caller owns removal.
func (h *CampaignHandler) spoolUpload(src multipart.File) (string, error) {
	dir := h.TempDir
	if dir == "" {
		dir = os.TempDir()
	}

	path := filepath.Join(dir, "upload-"+uuid.NewString()+".csv")
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// writeServiceError maps typed service errors onto the HTTP taxonomy:
// client input problems are 400, unknown campaigns 404, the rest 500.
func (h *CampaignHandler) writeServiceError(w http.ResponseWriter, err error) {
	var notFound *appErrors.ErrCampaignNotFound
	var emptyCSV *appErrors.ErrEmptyCSV
	var missingCols *appErrors.ErrMissingColumns
	var emptyCampaign *appErrors.ErrEmptyCampaign

	switch {
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "Campaign not found")
	case errors.As(err, &emptyCSV), errors.As(err, &missingCols), errors.As(err, &emptyCampaign):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Errorf("unexpected error handling campaign request: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// isCSVUpload accepts by extension or by the part's declared media type.
func isCSVUpload(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		return true
	}
	contentType := header.Header.Get("Content-Type")
	return contentType == "text/csv" || contentType == "application/csv"
}
