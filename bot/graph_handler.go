package bot

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
	"github.com/SamOutabrae/Sprocket-hypixel/errors"
	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/graph"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

// GraphHandler renders stat-history charts from the aggregate tables.
type GraphHandler struct {
	parent *CommandHandler
}

func NewGraphHandler(parent *CommandHandler) *GraphHandler {
	return &GraphHandler{parent: parent}
}

// HandleGraph serves `!graph <mode> <y-axis> [x-axis] [username]
// [days=N|n=N]`. The x axis defaults to Date.
func (h *GraphHandler) HandleGraph(s *discordgo.Session, m *discordgo.MessageCreate, params []string) {
	if len(params) < 2 {
		errors.SendDiscordWarning(s, m.ChannelID, constants.MsgGraphBadAxes)
		return
	}

	mode, ok := gamemodes.ByName(params[0])
	if !ok {
		errors.SendDiscordWarning(s, m.ChannelID, fmt.Sprintf(constants.MsgBadDuelMode, params[0]))
		return
	}

	yName := params[1]
	xName, username, opts, err := parseGraphArgs(mode, params[2:])
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	yField, okY := graph.ResolveAxis(mode, yName)
	xField, okX := graph.ResolveAxis(mode, xName)
	if !okX || !okY {
		h.sendAxisHelp(s, m.ChannelID, mode)
		return
	}

	ctx := context.Background()
	uuid, err := h.parent.resolveTarget(ctx, m, username)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	records, ok := h.parent.deps.Aggregates.Table(uuid, mode.Name())
	if !ok {
		if err := h.parent.deps.Aggregates.Rebuild(uuid); err != nil {
			errors.HandleDiscordError(s, m.ChannelID, err)
			return
		}
		records, ok = h.parent.deps.Aggregates.Table(uuid, mode.Name())
		if !ok {
			errors.SendDiscordWarning(s, m.ChannelID, constants.MsgNoData)
			return
		}
	}

	png, err := graph.Render(mode, records, xField, yField, opts)
	if err != nil {
		errors.HandleDiscordError(s, m.ChannelID, err)
		return
	}

	_, err = s.ChannelFileSend(m.ChannelID, fmt.Sprintf("%s_%s.png", mode.Name(), uuid), bytes.NewReader(png))
	if err != nil {
		utils.Error("DISCORD API ERROR: Failed to send graph image: %v", err)
	}
}

// parseGraphArgs classifies the arguments after the mode and y axis:
// days=/n= options, an optional x axis, and an optional username. The
// x axis defaults to Date. Malformed or non-positive counts are
// rejected rather than silently ignored.
func parseGraphArgs(mode gamemodes.Normalizer, args []string) (xName, username string, opts graph.Options, err error) {
	xName = graph.DateAxis
	opts = graph.Options{SinceStart: true}

	for _, p := range args {
		lower := strings.ToLower(p)
		switch {
		case strings.HasPrefix(lower, "days="):
			opts.Days, err = parseGraphCount(p, lower[len("days="):])
			if err != nil {
				return
			}
		case strings.HasPrefix(lower, "n="):
			opts.N, err = parseGraphCount(p, lower[len("n="):])
			if err != nil {
				return
			}
		default:
			if _, ok := graph.ResolveAxis(mode, p); ok && xName == graph.DateAxis {
				xName = p
			} else if username == "" {
				username = p
			}
		}
	}
	if opts.Days > 0 && opts.N > 0 {
		err = errors.NewValidationError("GRAPH_DAYS_AND_N",
			"both days= and n= given", constants.MsgGraphDaysAndN)
	}
	return
}

func parseGraphCount(arg, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, errors.NewValidationError("GRAPH_BAD_COUNT",
			fmt.Sprintf("unparseable count %q", arg),
			fmt.Sprintf(constants.MsgGraphBadCount, arg))
	}
	return n, nil
}

// sendAxisHelp lists the valid axis names for a mode.
func (h *GraphHandler) sendAxisHelp(s *discordgo.Session, channelID string, mode gamemodes.Normalizer) {
	embed := &discordgo.MessageEmbed{
		Title:       "Invalid Axis Names",
		Description: "Valid axis names for " + modeTitle(mode) + ":",
		Color:       constants.ColorErrorHint,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Fields",
				Value: strings.Join(graph.AxisNames(mode), ", "),
			},
		},
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		utils.Error("DISCORD API ERROR: Failed to send axis help: %v", err)
	}
}
