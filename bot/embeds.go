package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/SamOutabrae/Sprocket-hypixel/gamemodes"
	"github.com/SamOutabrae/Sprocket-hypixel/models"
)

type statsEmbedOptions struct {
	Title    string
	Color    int
	Prestige string
}

// statsEmbed lays a record out as an embed, one inline field per stat
// in schema order. Missing fields are skipped rather than rendered as
// zeros so partial records stay honest.
func statsEmbed(mode gamemodes.Normalizer, rec models.Record, opts statsEmbedOptions) *discordgo.MessageEmbed {
	schema := mode.Schema()

	fields := make([]*discordgo.MessageEmbedField, 0, len(schema.Fields))
	for _, spec := range schema.Fields {
		v, exists := rec.Fields[spec.Name]
		if !exists {
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   spec.Name,
			Value:  v.String(),
			Inline: true,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:  opts.Title,
		Color:  opts.Color,
		Fields: fields,
	}
	if opts.Prestige != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: opts.Prestige}
	}
	return embed
}
