package cmd

import (
	"fmt"
	"strings"

	"coinbot/config"

	log "github.com/sirupsen/logrus"
)

// configureLogging applies the configured level and format to the standard logger
func configureLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}
	return nil
}
