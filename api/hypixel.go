package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// HypixelClient talks to the Hypixel API.
type HypixelClient struct {
	client  *http.Client
	baseURL string
	key     string
}

// NewHypixelClient creates a client with the given API key.
func NewHypixelClient(key string) *HypixelClient {
	utils.Debug("Creating new Hypixel API client")
	return &HypixelClient{
		client: &http.Client{
			Timeout: constants.APITimeout,
		},
		baseURL: constants.HypixelBaseURL,
		key:     key,
	}
}

// doRequest performs a GET with retry on server errors and rate limits.
func (client *HypixelClient) doRequest(ctx context.Context, url, requestType, subject string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < constants.MaxRetries; attempt++ {
		if attempt > 0 {
			utils.Debug("Retrying %s fetch for %s (attempt %d/%d)", requestType, subject, attempt+1, constants.MaxRetries)
			time.Sleep(constants.RetryDelay * time.Duration(attempt))
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			lastErr = fmt.Errorf("failed to build request: %w", err)
			continue
		}

		resp, err := client.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%s fetch failed: %w", requestType, err)
			utils.Warn("Attempt %d failed for %s %s: %v", attempt+1, requestType, subject, err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limited")
			utils.Warn("Rate limited for %s %s, attempt %d", requestType, subject, attempt+1)
			time.Sleep(constants.RetryDelay * constants.APIRetryMultiplier)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("API returned status code %d", resp.StatusCode)
			utils.Warn("API returned non-200 status for %s %s: %d", requestType, subject, resp.StatusCode)
			if resp.StatusCode >= constants.HTTPServerErrorThreshold {
				continue
			}
			break
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			utils.Error("Failed to read %s response body for %s: %v", requestType, subject, err)
			continue
		}

		return body, nil
	}

	utils.Error("Failed to fetch %s for %s after %d attempts: %v", requestType, subject, constants.MaxRetries, lastErr)
	return nil, lastErr
}

// FetchPlayerRaw fetches the raw /player payload for a UUID. The body is
// returned verbatim, success flag and all; the snapshot store persists
// whatever came back.
func (client *HypixelClient) FetchPlayerRaw(ctx context.Context, uuid string) ([]byte, error) {
	if !utils.IsValidUUID(uuid) {
		return nil, errors.NewValidationError("HYPIXEL_BAD_UUID",
			fmt.Sprintf("invalid UUID format: %s", uuid),
			fmt.Sprintf("`%s` is not a valid player UUID.", uuid))
	}

	url := fmt.Sprintf("%s/player?key=%s&uuid=%s", client.baseURL, client.key, uuid)
	body, err := client.doRequest(ctx, url, "player stats", uuid)
	if err != nil {
		return nil, errors.NewUpstreamError("HYPIXEL_FETCH_FAILED",
			fmt.Sprintf("failed to fetch player stats for %s", uuid), err)
	}
	return body, nil
}

// GetPlayer fetches and parses the /player payload. A parseable response
// with success=false is an upstream failure from the caller's view.
func (client *HypixelClient) GetPlayer(ctx context.Context, uuid string) (*PlayerResponse, error) {
	body, err := client.FetchPlayerRaw(ctx, uuid)
	if err != nil {
		return nil, err
	}

	resp, err := ParsePlayerResponse(body)
	if err != nil {
		utils.Error("Failed to parse player stats for %s: %v", uuid, err)
		return nil, errors.NewUpstreamError("HYPIXEL_PARSE_FAILED",
			fmt.Sprintf("failed to parse player stats for %s", uuid), err)
	}

	if !resp.Success {
		return nil, errors.NewUpstreamError("HYPIXEL_NOT_SUCCESS",
			fmt.Sprintf("Hypixel returned success=false for %s: %s", uuid, resp.Cause), nil)
	}

	utils.Debug("Successfully fetched player stats for %s", uuid)
	return resp, nil
}

// ValidateKey probes the API with a known UUID. A 403 means the key is
// bad; 200 and 429 both mean it works.
func (client *HypixelClient) ValidateKey(ctx context.Context) error {
	url := fmt.Sprintf("%s/player?key=%s&uuid=%s", client.baseURL, client.key, constants.KeyProbeUUID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return errors.NewSystemError("HYPIXEL_PROBE_FAILED", "failed to build key probe request", err)
	}

	resp, err := client.client.Do(req)
	if err != nil {
		return errors.NewUpstreamError("HYPIXEL_PROBE_FAILED", "key probe request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return errors.NewConfigurationError("HYPIXEL_BAD_KEY",
			"invalid Hypixel API key", nil)
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusTooManyRequests:
		utils.Info("Hypixel API key is valid")
		return nil
	default:
		return errors.NewUpstreamError("HYPIXEL_PROBE_UNEXPECTED",
			fmt.Sprintf("unexpected status %d during key probe", resp.StatusCode), nil)
	}
}
