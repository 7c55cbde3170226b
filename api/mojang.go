package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// MojangClient resolves Minecraft usernames to UUIDs.
type MojangClient struct {
	client  *http.Client
	baseURL string
}

// NewMojangClient creates a Mojang profile API client.
func NewMojangClient() *MojangClient {
	return &MojangClient{
		client: &http.Client{
			Timeout: constants.APITimeout,
		},
		baseURL: constants.MojangProfileURL,
	}
}

type mojangProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolveUUID turns a username or UUID into the undashed 32-hex storage
// form. UUID input (dashed or not) never hits the network.
func (client *MojangClient) ResolveUUID(ctx context.Context, username string) (string, error) {
	if utils.IsValidUUID(username) {
		return strings.ToLower(username), nil
	}
	if normalized, ok := utils.NormalizeUUID(username); ok {
		return normalized, nil
	}

	if !utils.IsValidUsername(username) {
		return "", errors.NewValidationError("MOJANG_BAD_USERNAME",
			fmt.Sprintf("invalid username: %s", username),
			fmt.Sprintf(constants.MsgBadUsername, username))
	}

	url := fmt.Sprintf("%s/%s", client.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", errors.NewSystemError("MOJANG_REQUEST_FAILED", "failed to build profile request", err)
	}

	resp, err := client.client.Do(req)
	if err != nil {
		return "", errors.NewUpstreamError("MOJANG_REQUEST_FAILED",
			fmt.Sprintf("profile lookup failed for %s", username), err)
	}
	defer resp.Body.Close()

	// Mojang answers unknown names with 204 or 404 depending on endpoint
	// version.
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return "", errors.NewNotFoundError("MOJANG_UNKNOWN_NAME",
			fmt.Sprintf("no profile for username %s", username),
			fmt.Sprintf(constants.MsgBadUsername, username))
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewUpstreamError("MOJANG_BAD_STATUS",
			fmt.Sprintf("profile lookup returned status %d for %s", resp.StatusCode, username), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewUpstreamError("MOJANG_READ_FAILED",
			fmt.Sprintf("failed to read profile response for %s", username), err)
	}

	var profile mojangProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return "", errors.NewUpstreamError("MOJANG_PARSE_FAILED",
			fmt.Sprintf("failed to parse profile response for %s", username), err)
	}

	utils.Debug("Resolved username %s to UUID %s", username, profile.ID)
	return strings.ToLower(profile.ID), nil
}
