package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

type CommandHandler struct {
	deps         *CommandDependencies
	statsHandler *StatsHandler
	graphHandler *GraphHandler
}

func NewCommandHandler(deps *CommandDependencies) *CommandHandler {
	ch := &CommandHandler{deps: deps}
	ch.statsHandler = NewStatsHandler(ch)
	ch.graphHandler = NewGraphHandler(ch)
	return ch
}

// HandleMessage processes one Discord message.
func (ch *CommandHandler) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.shouldIgnoreMessage(s, m) {
		return
	}

	command, params := ch.parseMessage(m)
	if command == "" {
		return
	}

	ch.routeCommand(s, m, command, params)
}

func (ch *CommandHandler) shouldIgnoreMessage(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if m.Author.ID == s.State.User.ID {
		return true
	}
	if m.GuildID == "" {
		utils.Debug("DM received from %s", m.Author.Username)
	}
	return false
}

func (ch *CommandHandler) parseMessage(m *discordgo.MessageCreate) (command string, params []string) {
	content := strings.TrimSpace(m.Content)
	if !strings.HasPrefix(content, constants.CommandPrefix) {
		return "", nil
	}

	args := strings.Fields(content)
	if len(args) == 0 {
		return "", nil
	}

	return strings.ToLower(args[0][constants.CommandPrefixLength:]), args[1:]
}

func (ch *CommandHandler) routeCommand(s *discordgo.Session, m *discordgo.MessageCreate, command string, params []string) {
	if ch.deps.Metrics != nil {
		ch.deps.Metrics.RecordCommand(command)
	}

	switch command {
	case "help":
		ch.handleHelp(s, m)
	case "bw", "bedwars":
		ch.statsHandler.HandleBedwars(s, m, params)
	case "duels":
		ch.statsHandler.HandleDuels(s, m, params)
	case "today":
		ch.statsHandler.HandleToday(s, m, params)
	case "yesterday":
		ch.statsHandler.HandleYesterday(s, m, params)
	case "track":
		ch.handleTrack(s, m, params)
	case "untrack":
		ch.handleUntrack(s, m, params)
	case "tracked":
		ch.handleTracked(s, m)
	case "graph":
		ch.graphHandler.HandleGraph(s, m, params)
	case "map":
		ch.handleMap(s, m, params)
	case "cache":
		ch.handleCacheStats(s, m)
	case "ping":
		ch.handlePing(s, m)
	}
}

func (ch *CommandHandler) handlePing(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := errors.SendDiscordInfo(s, m.ChannelID, constants.MsgPong); err != nil {
		utils.Error("Failed to send ping response: %v", err)
	}
}

func (ch *CommandHandler) handleHelp(s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := s.ChannelMessageSend(m.ChannelID, constants.HelpMessage); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send help message: %v", err)
	}
}

// resolveTarget turns the optional username argument into a UUID,
// falling back to the caller's linked account when no name was given.
func (ch *CommandHandler) resolveTarget(ctx context.Context, m *discordgo.MessageCreate, username string) (string, error) {
	if username == "" {
		uuid, ok, err := ch.deps.Links.Resolve(m.Author.ID)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errors.NewValidationError("TARGET_MISSING",
				"no username given and no linked account", constants.MsgNeedUsername)
		}
		return uuid, nil
	}
	uuid, err := ch.deps.APIClient.ResolveUUID(ctx, username)
	if err != nil {
		return "", err
	}
	return uuid, nil
}

func (ch *CommandHandler) handleTrack(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if !ch.deps.Config.Tracking.Enabled {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgTrackingDisabled)
		return
	}
	if len(params) < 1 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNeedUsername)
		return
	}

	ctx := context.Background()
	uuid, err := ch.deps.APIClient.ResolveUUID(ctx, params[0])
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	tracked, err := ch.deps.Roster.Contains(uuid)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if tracked {
		errors.SendDiscordInfo(s, m.ChannelID, fmt.Sprintf(constants.MsgAlreadyTracked, params[0]))
		return
	}

	if err := ch.deps.Roster.Add(uuid); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if err := errors.SendDiscordSuccess(s, m.ChannelID, fmt.Sprintf(constants.MsgTrackAdded, params[0])); err != nil {
		utils.Error("Failed to send track response: %v", err)
	}
}

func (ch *CommandHandler) handleUntrack(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 1 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNeedUsername)
		return
	}

	ctx := context.Background()
	uuid, err := ch.deps.APIClient.ResolveUUID(ctx, params[0])
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	tracked, err := ch.deps.Roster.Contains(uuid)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if !tracked {
		errors.SendDiscordWarning(s, m.ChannelID, fmt.Sprintf(constants.MsgNotTracked, params[0]))
		return
	}

	if err := ch.deps.Roster.Remove(uuid); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if err := errors.SendDiscordSuccess(s, m.ChannelID, fmt.Sprintf(constants.MsgTrackRemoved, params[0])); err != nil {
		utils.Error("Failed to send untrack response: %v", err)
	}
}

func (ch *CommandHandler) handleTracked(s *discordgo.Session, m *discordgo.MessageCreate) {
	players, err := ch.deps.Roster.List()
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if len(players) == 0 {
		errors.SendDiscordInfo(s, m.ChannelID, constants.MsgNoTrackedPlayers)
		return
	}

	var sb strings.Builder
	sb.WriteString("**Tracked players**\n```\n")
	for i, p := range players {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, p))
	}
	sb.WriteString("```")
	if _, err := s.ChannelMessageSend(m.ChannelID, sb.String()); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send tracked list: %v", err)
	}
}

func (ch *CommandHandler) handleMap(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 1 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNeedUsername)
		return
	}

	ctx := context.Background()
	uuid, err := ch.deps.APIClient.ResolveUUID(ctx, params[0])
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	if _, exists, err := ch.deps.Links.Resolve(m.Author.ID); err == nil && exists {
		errors.SendDiscordInfo(s, m.ChannelID, constants.MsgMapExists)
		return
	}

	if err := ch.deps.Links.Link(m.Author.ID, uuid); err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	if err := errors.SendDiscordSuccess(s, m.ChannelID, constants.MsgMapSuccess); err != nil {
		utils.Error("Failed to send map response: %v", err)
	}
}

func (ch *CommandHandler) handleCacheStats(s *discordgo.Session, m *discordgo.MessageCreate) {
	if ch.deps.Cache == nil {
		errors.SendDiscordWarning(s, m.ChannelID, "The cache is disabled.")
		return
	}

	stats := ch.deps.Cache.GetCacheStats()
	message := fmt.Sprintf("```\n%s API Cache Statistics\n\n"+
		"Total API Calls: %d\n"+
		"Cache Hits: %d\n"+
		"Cache Misses: %d\n"+
		"Hit Rate: %.2f%%\n\n"+
		"Cached Items:\n"+
		"  - Players: %d\n"+
		"  - UUIDs: %d\n```",
		constants.EmojiStats,
		stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate,
		stats.PlayerCount, stats.UUIDCount)

	if err := errors.SendDiscordInfo(s, m.ChannelID, message); err != nil {
		utils.Error("Failed to send cache stats response: %v", err)
	}

	if ch.deps.Metrics != nil {
		ch.deps.Metrics.RecordCacheMetrics(stats.TotalCalls, stats.CacheHits, stats.CacheMisses, stats.HitRate)
	}
}
