package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// todayToken is the date argument that means "since this morning's
// snapshot".
const todayToken = "t"

// StatsHandler answers the stat lookup commands: live stats, per-date
// progress, date ranges, and today-so-far.
type StatsHandler struct {
	parent *CommandHandler
}

func NewStatsHandler(parent *CommandHandler) *StatsHandler {
	return &StatsHandler{parent: parent}
}

// statsQuery is a parsed stat command: which player, and which date
// window if any.
type statsQuery struct {
	username string
	dates    []string
	today    bool
}

// parseStatsParams classifies free-order arguments into dates and a
// username. Anything that parses as DD-MM-YY is a date; the literal
// "t" means today; the rest is the username.
func parseStatsParams(params []string) (statsQuery, error) {
	var q statsQuery
	for _, p := range params {
		if p == todayToken {
			q.today = true
			continue
		}
		if _, err := utils.ParseDateKey(p); err == nil {
			q.dates = append(q.dates, p)
			continue
		}
		if q.username != "" {
			return q, errors.NewValidationError("STATS_BAD_ARG",
				fmt.Sprintf("unrecognized argument %q", p),
				fmt.Sprintf(constants.MsgBadDate, p))
		}
		q.username = p
	}
	if len(q.dates) > 2 {
		return q, errors.NewValidationError("STATS_TOO_MANY_DATES",
			"more than two dates given",
			fmt.Sprintf(constants.MsgBadDate, q.dates[2]))
	}
	return q, nil
}

func (h *StatsHandler) HandleBedwars(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	mode, _ := gamemodes.ByName("bedwars")
	h.runQuery(s, m, mode, params)
}

func (h *StatsHandler) HandleDuels(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 1 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNeedDuelMode)
		return
	}
	mode, ok := gamemodes.ByName(params[0])
	if !ok || mode.Name() == "bedwars" {
		errors.SendDiscordWarning(s, m.ChannelID, fmt.Sprintf(constants.MsgBadDuelMode, params[0]))
		return
	}
	h.runQuery(s, m, mode, params[1:])
}

func (h *StatsHandler) HandleToday(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 1 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNeedDuelMode)
		return
	}
	mode, ok := gamemodes.ByName(params[0])
	if !ok {
		errors.SendDiscordWarning(s, m.ChannelID, fmt.Sprintf(constants.MsgBadDuelMode, params[0]))
		return
	}
	h.runQuery(s, m, mode, append([]string{todayToken}, params[1:]...))
}

func (h *StatsHandler) HandleYesterday(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 1 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNeedDuelMode)
		return
	}
	mode, ok := gamemodes.ByName(params[0])
	if !ok {
		errors.SendDiscordWarning(s, m.ChannelID, fmt.Sprintf(constants.MsgBadDuelMode, params[0]))
		return
	}
	h.runQuery(s, m, mode, append([]string{utils.YesterdayKey()}, params[1:]...))
}

// runQuery resolves the target player and dispatches on the parsed
// date window: none (live stats), today-so-far, one date (that day's
// progress), or two dates (range delta).
func (h *StatsHandler) runQuery(s *discordgo.Session, m *discordgo.MessageCreate, mode gamemodes.Normalizer, params []string) {
	q, err := parseStatsParams(params)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	ctx := context.Background()
	uuid, err := h.parent.resolveTarget(ctx, m, q.username)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	switch {
	case q.today:
		h.sendToday(ctx, s, m, mode, uuid, q.username)
	case len(q.dates) == 0:
		h.sendLive(ctx, s, m, mode, uuid)
	case len(q.dates) == 1:
		h.sendOn(s, m, mode, uuid, q.username, q.dates[0])
	default:
		h.sendRange(s, m, mode, uuid, q.username, q.dates[0], q.dates[1])
	}
}

func (h *StatsHandler) sendLive(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, mode gamemodes.Normalizer, uuid string) {
	resp, err := h.parent.deps.APIClient.GetPlayer(ctx, uuid)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}
	rec, err := mode.Normalize(utils.TodayKey(), resp)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	embed := statsEmbed(mode, rec, statsEmbedOptions{
		Title:    fmt.Sprintf("%s %s - %s", modeEmoji(mode), resp.Player.Displayname, modeTitle(mode)),
		Color:    constants.ColorStats,
		Prestige: prestigeLine(mode, rec),
	})
	h.sendEmbed(s, m.ChannelID, embed)
}

func (h *StatsHandler) sendToday(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, mode gamemodes.Normalizer, uuid, username string) {
	if !h.requireTracked(s, m, uuid, username) {
		return
	}
	rec, err := h.parent.deps.Engine.Today(ctx, uuid, mode)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	embed := statsEmbed(mode, rec, statsEmbedOptions{
		Title: fmt.Sprintf("%s %s - %s Today", constants.EmojiCalendar, h.displayname(uuid, username), modeTitle(mode)),
		Color: constants.ColorToday,
	})
	h.sendEmbed(s, m.ChannelID, embed)
}

func (h *StatsHandler) sendOn(s *discordgo.Session, m *discordgo.MessageCreate, mode gamemodes.Normalizer, uuid, username, date string) {
	if !h.requireTracked(s, m, uuid, username) {
		return
	}
	rec, err := h.parent.deps.Engine.On(uuid, mode, date)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	embed := statsEmbed(mode, rec, statsEmbedOptions{
		Title: fmt.Sprintf("%s %s - %s on %s", constants.EmojiCalendar, h.displayname(uuid, username),
			modeTitle(mode), utils.FormatDisplayDate(date)),
		Color: constants.ColorDate,
	})
	h.sendEmbed(s, m.ChannelID, embed)
}

func (h *StatsHandler) sendRange(s *discordgo.Session, m *discordgo.MessageCreate, mode gamemodes.Normalizer, uuid, username, start, end string) {
	if !h.requireTracked(s, m, uuid, username) {
		return
	}
	rec, err := h.parent.deps.Engine.Delta(uuid, mode, start, end)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	embed := statsEmbed(mode, rec, statsEmbedOptions{
		Title: fmt.Sprintf("%s %s - %s from %s to %s", constants.EmojiCalendar, h.displayname(uuid, username),
			modeTitle(mode), utils.FormatDisplayDate(start), utils.FormatDisplayDate(end)),
		Color: constants.ColorDateRange,
	})
	h.sendEmbed(s, m.ChannelID, embed)
}

// requireTracked rejects snapshot-backed queries for players that are
// not on the roster, which reads better than a bare "no data".
func (h *StatsHandler) requireTracked(s *discordgo.Session, m *discordgo.MessageCreate, uuid, username string) bool {
	tracked, err := h.parent.deps.Roster.Contains(uuid)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return false
	}
	if !tracked {
		name := username
		if name == "" {
			name = uuid
		}
		errors.SendDiscordWarning(s, m.ChannelID, fmt.Sprintf(constants.MsgNotTracked, name))
		return false
	}
	return true
}

// displayname prefers the name stored in the latest snapshot, falling
// back to whatever the caller typed.
func (h *StatsHandler) displayname(uuid, username string) string {
	if name, err := h.parent.deps.Engine.DisplaynameAt(uuid, utils.TodayKey()); err == nil {
		return name
	}
	if name, err := h.parent.deps.Engine.DisplaynameAt(uuid, utils.YesterdayKey()); err == nil {
		return name
	}
	if username != "" {
		return username
	}
	return uuid
}

func (h *StatsHandler) sendEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send stats embed: %v", err)
	}
}

func modeTitle(mode gamemodes.Normalizer) string {
	switch mode.Name() {
	case "bedwars":
		return "Bedwars"
	case "bridge":
		return "Bridge Duels"
	case "uhc":
		return "UHC Duels"
	}
	return mode.Name()
}

func modeEmoji(mode gamemodes.Normalizer) string {
	if mode.Name() == "bedwars" {
		return constants.EmojiBed
	}
	return constants.EmojiSword
}

// prestigeLine renders the prestige footer for live stats. Bridge uses
// the halved thresholds.
func prestigeLine(mode gamemodes.Normalizer, rec models.Record) string {
	wins, ok := rec.Number("Wins")
	if !ok {
		return ""
	}
	halved := mode.Name() == "bridge"
	current := models.GetPrestige(int(wins), halved)
	next, needed := models.NextPrestige(int(wins), halved)
	if needed == 0 {
		return fmt.Sprintf("Prestige: %s", current)
	}
	return fmt.Sprintf("Prestige: %s (%d wins to %s)", current, needed, next)
}
