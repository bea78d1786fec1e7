// Package engine provides the synthesizer implementations and the
// synthesis pipeline. Inference itself lives outside this repository, in
// the model weights executed by an external runner binary or a
// standalone inference server; this package prepares requests for those
// and packages their audio output.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// API endpoints and paths.
const (
	apiSynthesize = "/v1/synthesize"
	apiHealth     = "/health"
)

// HTTP headers.
const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	contentTypeJSON   = "application/json"
	contentTypeWAV    = "audio/wav"
)

// Static errors.
var (
	// ErrPhonemesEmpty indicates an empty phoneme payload.
	ErrPhonemesEmpty = errors.New("phonemes cannot be empty")
	// ErrEmptyAudio indicates the server returned no audio data.
	ErrEmptyAudio = errors.New("received empty audio data")
	// ErrUnexpectedContentType indicates a non-WAV response body.
	ErrUnexpectedContentType = errors.New("unexpected response content type")
)

// Client talks to a standalone inference server that holds the model
// weights. The server accepts a phoneme rendering plus synthesis
// parameters and answers with WAV audio.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Request is the JSON payload for a synthesis call.
type Request struct {
	// Phonemes is the IPA rendering of the text, already filtered to
	// the model's symbol inventory.
	Phonemes string `json:"phonemes"`

	// Voice selects the speaker model. Empty means the server default.
	Voice string `json:"voice,omitempty"`

	// Alpha controls speech speed; 1.0 is the natural rate.
	Alpha float64 `json:"alpha"`

	// Temperature controls sampling randomness in the vocoder, when
	// the server supports it. 0.0 is deterministic.
	Temperature float64 `json:"temperature"`

	// TopP bounds nucleus sampling. Zero omits the field and keeps the
	// server default.
	TopP float64 `json:"top_p,omitempty"`
}

// ErrorResponse is the structured error body the server returns on failure.
type ErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
}

// NewClient creates a client for the inference server. The baseURL
// includes protocol and port (e.g. "http://localhost:8124"). The timeout
// applies to every request made by this client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Synthesize sends a synthesis request and returns the raw WAV data.
func (c *Client) Synthesize(ctx context.Context, req Request) ([]byte, error) {
	if req.Phonemes == "" {
		return nil, ErrPhonemesEmpty
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + apiSynthesize

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewBuffer(requestBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set(headerContentType, contentTypeJSON)
	httpReq.Header.Set(headerAccept, contentTypeWAV)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to send request to inference server at %s: %w",
			c.baseURL,
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.parseErrorResponse(resp)
	}

	contentType := resp.Header.Get(headerContentType)
	if contentType != contentTypeWAV {
		return nil, fmt.Errorf(
			"%w: expected %s, got %s",
			ErrUnexpectedContentType, contentTypeWAV, contentType,
		)
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	if len(audioData) == 0 {
		return nil, ErrEmptyAudio
	}

	return audioData, nil
}

// HealthCheck verifies that the inference server is up. It is run before
// large workloads to fail fast with a clear diagnostic.
func (c *Client) HealthCheck(ctx context.Context) error {
	url := c.baseURL + apiHealth

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(
			"health check failed for server at %s: %w",
			c.baseURL,
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %s", resp.Status)
	}

	return nil
}

// parseErrorResponse decodes a structured JSON error from the server,
// falling back to the raw body so diagnostics are never lost.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	var errorResp ErrorResponse

	err := json.NewDecoder(resp.Body).Decode(&errorResp)
	if err == nil {
		return fmt.Errorf(
			"inference server error (%s): %s (code: %s)",
			resp.Status, errorResp.Detail, errorResp.ErrorCode,
		)
	}

	body, _ := io.ReadAll(resp.Body)

	return fmt.Errorf(
		"inference server returned non-OK status: %s, body: %s",
		resp.Status,
		string(body),
	)
}
