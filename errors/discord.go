package errors

import (
	stderrors "errors"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// HandleDiscordError logs err and sends its user-facing message to the
// channel. NotFound and Upstream become plain "no data" style messages
// rather than scary errors.
func HandleDiscordError(s *discordgo.Session, channelID string, err error) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		if appErr.Internal != nil {
			utils.Error("%s - %s: %v", appErr.Code, appErr.Message, appErr.Internal)
		} else {
			utils.Error("%s - %s", appErr.Code, appErr.Message)
		}

		if sendErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" "+appErr.GetUserMessage()); sendErr != nil {
			utils.Error("DISCORD API ERROR: Failed to send error message after retries: %v", sendErr)
		}
		return
	}

	utils.Error("UNEXPECTED ERROR: %v", err)
	if sendErr := SendDiscordMessageWithRetry(s, channelID, constants.EmojiError+" An unexpected error occurred."); sendErr != nil {
		utils.Error("DISCORD API ERROR: Failed to send error message after retries: %v", sendErr)
	}
}

// SendDiscordSuccess sends a success message to the channel.
func SendDiscordSuccess(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiSuccess+" "+message)
}

// SendDiscordInfo sends an informational message to the channel.
func SendDiscordInfo(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiInfo+" "+message)
}

// SendDiscordWarning sends a warning message to the channel.
func SendDiscordWarning(s *discordgo.Session, channelID, message string) error {
	return SendDiscordMessageWithRetry(s, channelID, constants.EmojiWarning+" "+message)
}

// SendDiscordMessageWithRetry sends a channel message with exponential
// backoff: 1s, 2s, 4s.
func SendDiscordMessageWithRetry(s *discordgo.Session, channelID, message string) error {
	const maxRetries = constants.MaxDiscordRetries
	const baseDelay = constants.BaseRetryDelay

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := s.ChannelMessageSend(channelID, message)
		if err == nil {
			if attempt > 0 {
				utils.Info("Discord message sent successfully after %d retries", attempt)
			}
			return nil
		}

		lastErr = err
		if attempt < maxRetries-1 {
			delay := time.Duration(1<<attempt) * baseDelay
			utils.Warn("Discord API call failed (attempt %d/%d): %v. Retrying in %v...",
				attempt+1, maxRetries, err, delay)
			time.Sleep(delay)
		}
	}

	utils.Error("DISCORD API ERROR: All retry attempts failed: %v", lastErr)
	return lastErr
}
