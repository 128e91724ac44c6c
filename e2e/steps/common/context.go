// Package common carries the shared test context and the generic HTTP steps
// every feature uses.
package common

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// TestContext holds per-scenario state: the target service and the last
// response observed.
type TestContext struct {
	BaseURL    string
	SigningKey string
	Client     *http.Client

	LastStatus int
	LastType   string
	LastBody   []byte

	// AuthToken, when set, is attached as a bearer token to requests.
	AuthToken string
}

// NewTestContext targets the service named by COVIDBOARD_BASE_URL, defaulting
// to a local instance.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("COVIDBOARD_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		signingKey = "dev-secret-key-change-in-production"
	}
	return &TestContext{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		SigningKey: signingKey,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.LastStatus = 0
	tc.LastType = ""
	tc.LastBody = nil
	tc.AuthToken = ""
}

// Do issues a request against the service and records the response.
func (tc *TestContext) Do(method, path string) error {
	req, err := http.NewRequest(method, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	if tc.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.AuthToken)
	}
	resp, err := tc.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.LastStatus = resp.StatusCode
	tc.LastType = resp.Header.Get("Content-Type")
	tc.LastBody = body
	return nil
}

// RegisterSteps wires the generic request and assertion steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the dashboard service is running$`, func() error {
		if err := tc.Do(http.MethodGet, "/healthz"); err != nil {
			return err
		}
		if tc.LastStatus != http.StatusOK {
			return fmt.Errorf("service not healthy: status %d", tc.LastStatus)
		}
		return nil
	})

	ctx.Step(`^I GET "([^"]*)"$`, func(path string) error {
		return tc.Do(http.MethodGet, path)
	})

	ctx.Step(`^I POST "([^"]*)"$`, func(path string) error {
		return tc.Do(http.MethodPost, path)
	})

	ctx.Step(`^the response status should be (\d+)$`, func(status int) error {
		if tc.LastStatus != status {
			return fmt.Errorf("expected status %d, got %d (body: %s)", status, tc.LastStatus, tc.LastBody)
		}
		return nil
	})

	ctx.Step(`^the response content type should be "([^"]*)"$`, func(contentType string) error {
		if !strings.HasPrefix(tc.LastType, contentType) {
			return fmt.Errorf("expected content type %q, got %q", contentType, tc.LastType)
		}
		return nil
	})

	ctx.Step(`^the response should contain "([^"]*)"$`, func(needle string) error {
		if !strings.Contains(string(tc.LastBody), needle) {
			return fmt.Errorf("response does not contain %q", needle)
		}
		return nil
	})
}
