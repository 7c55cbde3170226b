package constants

import "time"

// API constants
const (
	HypixelBaseURL        = "https://api.hypixel.net"
	MojangProfileURL      = "https://api.mojang.com/users/profiles/minecraft"
	APITimeout            = 30 * time.Second
	MaxRetries            = 3
	RetryDelay            = 1 * time.Second
	APIRetryMultiplier    = 2
	MaxConcurrentRequests = 5

	// UUID used to probe the API key at startup. Any real player works;
	// this one belongs to the Hypixel account itself.
	KeyProbeUUID = "f7c77d999f154a66a87dc4a51ef30d19"

	HTTPServerErrorThreshold = 500
)

// Scheduling constants
const (
	DailyUpdateHour   = 6
	DailyUpdateMinute = 0
	SchedulerInterval = 24 * time.Hour
)

// Tracking constants
const (
	// TrackingDateFormat is both the display format and the on-disk key
	// space for snapshots: one file per <uuid>/<DD-MM-YY>.json.
	TrackingDateFormat = "02-01-06"

	TrackedPlayersFile = "trackedplayers.txt"
	MappingFile        = "mapping.json"
	AccountLinksFile   = "mappedusernames.csv"
	TrackedPlayersDir  = "trackedplayers"
)

// Discord constants
const (
	CommandPrefix       = "!"
	CommandPrefixLength = 1
	BotStatusMessage    = "!help | Hypixel stats"
	MaxDiscordRetries   = 3
	BaseRetryDelay      = 1 * time.Second
)

// Emoji constants
const (
	EmojiSuccess  = "✅"
	EmojiError    = "❌"
	EmojiInfo     = "ℹ️"
	EmojiWarning  = "⚠️"
	EmojiStats    = "📊"
	EmojiCalendar = "📅"
	EmojiBed      = "🛏️"
	EmojiSword    = "⚔️"
)

// Embed colors
const (
	ColorStats     = 0x00FF00
	ColorToday     = 0x3498DB
	ColorDate      = 0x206694
	ColorDateRange = 0x1ABC9C
	ColorGraph     = 0x2E86C1
	ColorErrorHint = 0x992D22
)

// Date/time display formats
const (
	DisplayDateFormat = "01/02/06"
	DateTimeFormat    = "2006-01-02 15:04:05"
)

// Log level names
const (
	LogLevelDebug = "DEBUG"
	LogLevelInfo  = "INFO"
	LogLevelWarn  = "WARN"
	LogLevelError = "ERROR"
)

// Environment variable keys
const (
	EnvDiscordToken    = "DISCORD_BOT_TOKEN"
	EnvChannelID       = "DISCORD_CHANNEL_ID"
	EnvHypixelAPIKey   = "HYPIXEL_API_KEY"
	EnvDataPath        = "DATA_PATH"
	EnvTrackingEnabled = "TRACKING_ENABLED"
	EnvLogLevel        = "LOG_LEVEL"
	EnvDebugMode       = "DEBUG_MODE"
)

// Cache TTLs
const (
	PlayerStatsCacheTTL  = 5 * time.Minute
	UUIDCacheTTL         = 24 * time.Hour
	CacheCleanupInterval = 10 * time.Minute
)

const DefaultHTTPPort = "8080"
