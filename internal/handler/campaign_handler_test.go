package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/campaignlens/campaignlens-backend/internal/handler"
	"github.com/campaignlens/campaignlens-backend/internal/repository"
	"github.com/campaignlens/campaignlens-backend/internal/service"
)

const scenarioCSV = `post_id,media_type,engagement_rate,followers_gained,shares,saves
r1,image,1,10,6,0
r2,image,2,10,5,0
r3,video,3,10,4,0
r4,video,4,10,3,0
r5,reel,5,10,2,0
r6,reel,6,10,1,0
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := &service.CampaignService{
		CampaignRepo: repository.NewCampaignRepository(),
		Logger:       log,
	}
	campaigns := &handler.CampaignHandler{
		Service:        svc,
		Logger:         log,
		MaxUploadBytes: 10 * 1024 * 1024,
		TempDir:        t.TempDir(),
	}

	srv := httptest.NewServer(handler.NewRouter(campaigns, handler.NewHealthHandler(), "*", log))
	t.Cleanup(srv.Close)
	return srv
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func uploadCSV(t *testing.T, srv *httptest.Server, filename, content string) *http.Response {
	t.Helper()

	body, contentType := multipartUpload(t, filename, content)
	resp, err := http.Post(srv.URL+"/campaigns/", contentType, body)
	if err != nil {
		t.Fatalf("upload request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]any
	decodeJSON(t, resp, &body)
	for _, key := range []string{"status", "message", "timestamp", "uptime"} {
		if _, ok := body[key]; !ok {
			t.Errorf("health response missing %q", key)
		}
	}
}

func TestUploadAndGetRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "posts.csv", scenarioCSV)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created struct {
		Message  string `json:"message"`
		Campaign struct {
			ID    int `json:"id"`
			Posts []struct {
				ID string `json:"id"`
			} `json:"posts"`
		} `json:"campaign"`
	}
	decodeJSON(t, resp, &created)

	if created.Message == "" {
		t.Error("expected a success message")
	}
	if created.Campaign.ID != 1 {
		t.Errorf("expected campaign ID 1, got %d", created.Campaign.ID)
	}
	if len(created.Campaign.Posts) != 6 {
		t.Fatalf("expected 6 posts, got %d", len(created.Campaign.Posts))
	}
	for i, want := range []string{"r1", "r2", "r3", "r4", "r5", "r6"} {
		if created.Campaign.Posts[i].ID != want {
			t.Errorf("post %d: expected %s, got %s", i, want, created.Campaign.Posts[i].ID)
		}
	}

	getResp, err := http.Get(srv.URL + "/campaigns/1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer getResp.Body.Close()

	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.StatusCode)
	}
	var fetched struct {
		ID    int              `json:"id"`
		Posts []map[string]any `json:"posts"`
	}
	decodeJSON(t, getResp, &fetched)
	if fetched.ID != 1 || len(fetched.Posts) != 6 {
		t.Errorf("round trip mismatch: id=%d posts=%d", fetched.ID, len(fetched.Posts))
	}
}

func TestAverageEngagementRate(t *testing.T) {
	srv := newTestServer(t)
	uploadCSV(t, srv, "posts.csv", scenarioCSV)

	resp, err := http.Get(srv.URL + "/campaigns/1/average-engagement-rate")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		AverageEngagementRate float64 `json:"averageEngagementRate"`
	}
	decodeJSON(t, resp, &body)
	if body.AverageEngagementRate != 3.5 {
		t.Errorf("expected 3.5, got %v", body.AverageEngagementRate)
	}
}

func TestAnalyticsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	uploadCSV(t, srv, "posts.csv", scenarioCSV)

	resp, err := http.Get(srv.URL + "/campaigns/1/analytics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var view struct {
		TotalFollowersGained  int      `json:"totalFollowersGained"`
		OverallEngagementRate float64  `json:"overallEngagementRate"`
		Top5ByEngagement      []string `json:"top5ByEngagement"`
		Top5ByShares          []string `json:"top5ByShares"`
		BestMediaType         string   `json:"bestMediaType"`
		MediaTypes            []string `json:"mediaTypes"`
	}
	decodeJSON(t, resp, &view)

	if view.TotalFollowersGained != 60 {
		t.Errorf("expected 60 followers gained, got %d", view.TotalFollowersGained)
	}
	if len(view.Top5ByEngagement) != 5 || view.Top5ByEngagement[0] != "r6" {
		t.Errorf("unexpected top5 by engagement: %v", view.Top5ByEngagement)
	}
	if len(view.Top5ByShares) != 5 || view.Top5ByShares[0] != "r1" {
		t.Errorf("unexpected top5 by shares: %v", view.Top5ByShares)
	}
	if view.BestMediaType != "reel" {
		t.Errorf("expected best media type reel, got %q", view.BestMediaType)
	}
	if len(view.MediaTypes) != 3 {
		t.Errorf("expected 3 media types, got %v", view.MediaTypes)
	}
}

func TestListCampaigns(t *testing.T) {
	srv := newTestServer(t)
	uploadCSV(t, srv, "a.csv", scenarioCSV)
	uploadCSV(t, srv, "b.csv", scenarioCSV)

	resp, err := http.Get(srv.URL + "/campaigns/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var campaigns []struct {
		ID int `json:"id"`
	}
	decodeJSON(t, resp, &campaigns)
	if len(campaigns) != 2 || campaigns[0].ID != 1 || campaigns[1].ID != 2 {
		t.Errorf("expected campaigns [1 2], got %+v", campaigns)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/campaigns/99")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["error"] != "Campaign not found" {
		t.Errorf("expected 'Campaign not found', got %q", body["error"])
	}
}

func TestUploadNoFile(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("other", "value")
	mw.Close()

	resp, err := http.Post(srv.URL+"/campaigns/", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body2 map[string]string
	decodeJSON(t, resp, &body2)
	if body2["error"] != "no file provided" {
		t.Errorf("expected 'no file provided', got %q", body2["error"])
	}
}

func TestUploadMalformedMultipartBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/campaigns/",
		"multipart/form-data; boundary=deadbeef",
		strings.NewReader("this is not a multipart body"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if !strings.Contains(body["error"], "invalid request body") {
		t.Errorf("expected an invalid body error, got %q", body["error"])
	}
	if body["error"] == "no file provided" {
		t.Error("a malformed body must not be reported as a missing file")
	}
}

func TestUploadWrongFileType(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "posts.txt", scenarioCSV)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if !strings.Contains(body["error"], "file type") {
		t.Errorf("expected a file type error, got %q", body["error"])
	}
}

func TestUploadHeaderOnlyCSV(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "posts.csv", "post_id,media_type,engagement_rate,followers_gained,shares,saves\n")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["error"] != "CSV file is empty" {
		t.Errorf("expected 'CSV file is empty', got %q", body["error"])
	}
}

func TestUploadMissingRequiredColumn(t *testing.T) {
	srv := newTestServer(t)

	csv := "post_id,engagement_rate,followers_gained,shares,saves\np1,1.0,5,2,1\n"
	resp := uploadCSV(t, srv, "posts.csv", csv)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if !strings.Contains(body["error"], "media_type") {
		t.Errorf("error should name the missing column, got %q", body["error"])
	}
	if !strings.Contains(body["error"], "post_id") {
		t.Errorf("error should list the present columns, got %q", body["error"])
	}
}

func TestUploadTooLarge(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := &service.CampaignService{CampaignRepo: repository.NewCampaignRepository(), Logger: log}
	campaigns := &handler.CampaignHandler{
		Service:        svc,
		Logger:         log,
		MaxUploadBytes: 64,
		TempDir:        t.TempDir(),
	}
	srv := httptest.NewServer(handler.NewRouter(campaigns, handler.NewHealthHandler(), "*", log))
	defer srv.Close()

	resp := uploadCSV(t, srv, "posts.csv", scenarioCSV)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if !strings.Contains(body["error"], "upload limit") {
		t.Errorf("expected an upload limit error, got %q", body["error"])
	}
}

func TestUploadInvalidCampaignID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/campaigns/abc")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
