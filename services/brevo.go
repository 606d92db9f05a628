package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const brevoContactsPath = "/v3/contacts"

// BrevoConfig is resolved once at startup and handed to NewBrevoClient.
type BrevoConfig struct {
	APIKey        string
	DefaultListID int64
	BaseURL       string
	HTTPClient    *http.Client
}

// BrevoContact is the lead as the contact list knows it
type BrevoContact struct {
	Email   string
	Name    string
	Company string
}

// ListResult is the outcome of one contact-list call. A non-2xx answer is
// reported here with OK=false rather than as an error.
type ListResult struct {
	OK     bool
	Status int
	Data   any
}

// ContactLister adds contacts to a remote marketing list
type ContactLister interface {
	SubmitContact(ctx context.Context, contact BrevoContact, listIDs ...int64) (*ListResult, error)
}

type brevoAttributes struct {
	Username string `json:"USERNAME"`
	Company  string `json:"COMPANY"`
}

type brevoContactPayload struct {
	Email         string          `json:"email"`
	Attributes    brevoAttributes `json:"attributes"`
	ListIDs       []int64         `json:"listIds"`
	UpdateEnabled bool            `json:"updateEnabled"`
}

// BrevoClient talks to the Brevo contacts API
type BrevoClient struct {
	apiKey        string
	defaultListID int64
	endpoint      string
	httpClient    *http.Client
}

// NewBrevoClient creates a client from explicit configuration
func NewBrevoClient(cfg BrevoConfig) *BrevoClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.brevo.com"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &BrevoClient{
		apiKey:        cfg.APIKey,
		defaultListID: cfg.DefaultListID,
		endpoint:      baseURL + brevoContactsPath,
		httpClient:    httpClient,
	}
}

// SubmitContact creates (or updates, thanks to updateEnabled) a contact in the
// given lists, or in the configured default list when none are given.
// Exactly one request is made; transport failures are returned as errors.
func (c *BrevoClient) SubmitContact(ctx context.Context, contact BrevoContact, listIDs ...int64) (*ListResult, error) {
	if len(listIDs) == 0 {
		listIDs = []int64{c.defaultListID}
	}

	payload := brevoContactPayload{
		Email: contact.Email,
		Attributes: brevoAttributes{
			Username: contact.Name,
			Company:  contact.Company,
		},
		ListIDs:       listIDs,
		UpdateEnabled: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create brevo request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach brevo: %w", err)
	}
	defer resp.Body.Close()

	return &ListResult{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Data:   decodeLenient(resp.Body),
	}, nil
}

// decodeLenient parses a JSON body, substituting an empty object for anything
// that is missing or not JSON.
func decodeLenient(r io.Reader) any {
	raw, err := io.ReadAll(r)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]any{}
	}
	return data
}
