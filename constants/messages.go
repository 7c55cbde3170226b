package constants

// User-facing messages
const (
	MsgPong             = "Pong!"
	MsgNoData           = "No data available for that date. Make sure the player has been tracked long enough."
	MsgNoDataToday      = "No tracking data for this player yet today."
	MsgUpstreamError    = "Error while getting stats from Hypixel. Please try again in a moment."
	MsgBadUsername      = "There was an error getting the UUID for %s. Are you sure you typed it correctly?"
	MsgNotTracked       = "The player %s is not being tracked."
	MsgAlreadyTracked   = "The player %s is already being tracked."
	MsgTrackingDisabled = "Tracking must be enabled to use this command."
	MsgTrackAdded       = "Now tracking %s. The first snapshot will be taken on the next daily update."
	MsgTrackRemoved     = "Stopped tracking %s. Existing snapshots are kept."
	MsgNoTrackedPlayers = "No players are currently being tracked."
	MsgNeedUsername     = "Please provide a username or UUID, or link your account with !map."
	MsgNeedDuelMode     = "You must provide a duel mode (bridge or uhc)."
	MsgBadDuelMode      = "No duel mode %s. Please enter a valid duel mode."
	MsgBadDate          = "Could not parse the date %s. Use DD-MM-YY."
	MsgMapSuccess       = "Successfully linked your account."
	MsgMapExists        = "You already have a linked account."
	MsgGraphBadAxes     = "Invalid axis names. Use !help for the list of valid fields."
	MsgGraphDaysAndN    = "Provide either days or n, not both."
	MsgGraphBadCount    = "Could not parse %s. days= and n= take a positive number."
)

// HelpMessage lists available commands.
const HelpMessage = "**Sprocket Hypixel Bot**\n" +
	"`!bw [username] [date]` - bedwars stats, optionally for a tracked date (DD-MM-YY)\n" +
	"`!duels <bridge|uhc> [start] [end] [username]` - duels stats; `t` for today, one date for that day's progress, two dates for a range\n" +
	"`!today <bw|bridge|uhc> [username]` - stats gained so far today\n" +
	"`!yesterday bw [username]` - stats gained yesterday\n" +
	"`!track <username>` / `!untrack <username>` / `!tracked` - manage daily tracking\n" +
	"`!graph <bw|bridge> <y-axis> [x-axis] [username] [days=N|n=N]` - graph tracked stats\n" +
	"`!map <minecraft username>` - link your Discord account to a player\n" +
	"`!cache` - cache statistics\n" +
	"`!ping` - check the bot is alive"
