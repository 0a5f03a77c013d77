// cmd/seeder/main.go
package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
)

// Seeds a running server with one generated campaign so the table client
// has something to render.
func main() {
	serverURL := os.Getenv("SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	postCount := 25
	if v := os.Getenv("SEED_POSTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			postCount = n
		}
	}

	body, contentType, err := buildUpload(postCount)
	if err != nil {
		log.Fatalf("failed to build upload: %v", err)
	}

	resp, err := http.Post(serverURL+"/campaigns/", contentType, body)
	if err != nil {
		log.Fatalf("failed to upload seed campaign: %v", err)
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		log.Fatalf("server rejected seed upload (%d): %s", resp.StatusCode, out)
	}

	fmt.Printf("Seeded %d posts: %s\n", postCount, out)
}

func buildUpload(postCount int) (*bytes.Buffer, string, error) {
	var csvBuf bytes.Buffer
	w := csv.NewWriter(&csvBuf)

	header := []string{
		"post_id", "upload_date", "media_type", "likes", "comments", "shares",
		"saves", "reach", "impressions", "caption_length", "hashtags_count",
		"followers_gained", "traffic_source", "engagement_rate", "content_category",
	}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	mediaTypes := []string{"image", "video", "carousel", "reel"}
	trafficSources := []string{"organic", "paid", "explore", "hashtags"}
	categories := []string{"lifestyle", "tech", "food", "travel", "fitness"}

	for i := 1; i <= postCount; i++ {
		reach := 500 + rand.Intn(20000)
		row := []string{
			fmt.Sprintf("post-%03d", i),
			fmt.Sprintf("2026-0%d-%02d", 1+rand.Intn(8), 1+rand.Intn(28)),
			mediaTypes[rand.Intn(len(mediaTypes))],
			strconv.Itoa(rand.Intn(5000)),
			strconv.Itoa(rand.Intn(800)),
			strconv.Itoa(rand.Intn(400)),
			strconv.Itoa(rand.Intn(300)),
			strconv.Itoa(reach),
			strconv.Itoa(reach + rand.Intn(5000)),
			strconv.Itoa(20 + rand.Intn(300)),
			strconv.Itoa(rand.Intn(15)),
			strconv.Itoa(rand.Intn(500) - 50),
			trafficSources[rand.Intn(len(trafficSources))],
			fmt.Sprintf("%.4f", rand.Float64()*12),
			categories[rand.Intn(len(categories))],
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "seed_posts.csv")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(csvBuf.Bytes()); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &body, mw.FormDataContentType(), nil
}
