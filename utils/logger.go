package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/SamOutabrae/Sprocket-hypixel/constants"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	level  LogLevel
	logger *log.Logger
}

var globalLogger *Logger

func init() {
	globalLogger = NewLogger()
}

func NewLogger() *Logger {
	level := getLogLevelFromEnv()
	logger := log.New(os.Stdout, "", 0)

	return &Logger{
		level:  level,
		logger: logger,
	}
}

func getLogLevelFromEnv() LogLevel {
	levelStr := strings.ToUpper(os.Getenv(constants.EnvLogLevel))
	switch levelStr {
	case constants.LogLevelDebug:
		return DEBUG
	case constants.LogLevelInfo:
		return INFO
	case constants.LogLevelWarn:
		return WARN
	case constants.LogLevelError:
		return ERROR
	default:
		return INFO
	}
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	levelStr := l.getLevelString(level)
	timestamp := time.Now().Format(constants.DateTimeFormat)
	message := fmt.Sprintf(format, args...)

	// Keep the Hypixel API key and the bot token out of log lines.
	filteredMessage := l.filterSensitiveInfo(message)

	l.logger.Printf("[%s] %s %s", timestamp, levelStr, filteredMessage)
}

// filterSensitiveInfo masks credentials that leak into log messages,
// typically via request URLs.
func (l *Logger) filterSensitiveInfo(message string) string {
	// Hypixel API keys ride in a ?key= query parameter.
	if idx := strings.Index(message, "key="); idx != -1 {
		end := idx + len("key=")
		for end < len(message) && message[end] != '&' && message[end] != ' ' && message[end] != '"' {
			end++
		}
		message = message[:idx] + "key=***MASKED***" + message[end:]
	}

	// Discord bot tokens start with "Bot " followed by a long dotted string.
	if strings.Contains(message, "Bot ") && len(message) > 60 {
		words := strings.Fields(message)
		for i, word := range words {
			if len(word) > 50 && strings.Contains(word, ".") {
				words[i] = "***DISCORD_TOKEN***"
			}
		}
		message = strings.Join(words, " ")
	}

	sensitiveKeywords := []string{"token", "secret", "password", "api_key"}
	lowerMessage := strings.ToLower(message)

	for _, keyword := range sensitiveKeywords {
		if idx := strings.Index(lowerMessage, keyword); idx != -1 {
			before := message[:idx+len(keyword)]
			remaining := message[idx+len(keyword):]

			for _, sep := range []string{"=", ":", "\""} {
				if strings.HasPrefix(remaining, sep) {
					message = before + sep + "***MASKED***"
					break
				}
			}
		}
	}

	return message
}

func (l *Logger) getLevelString(level LogLevel) string {
	switch level {
	case DEBUG:
		return constants.LogLevelDebug
	case INFO:
		return constants.LogLevelInfo
	case WARN:
		return constants.LogLevelWarn
	case ERROR:
		return constants.LogLevelError
	default:
		return "UNKNOWN"
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Global logger functions
func Debug(format string, args ...interface{}) {
	globalLogger.Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	globalLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	globalLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	globalLogger.Error(format, args...)
}
