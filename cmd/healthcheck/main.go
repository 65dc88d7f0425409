package main

import (
	"net/http"
	"os"
	"time"
)

// Minimal health probe for container HEALTHCHECK use: exits 0 when the
// server answers the healthz endpoint, 1 otherwise.
func main() {
	url := os.Getenv("BEASTBRAWL_HEALTH_URL")
	if url == "" {
		url = "http://127.0.0.1:8080/api/healthz"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
