package bot

import (
	"regexp"
	"strings"
)

// commandAliases maps every prefix spelling to its command name
var commandAliases = map[string]string{
	"balance":     "balance",
	"bal":         "balance",
	"wallet":      "balance",
	"daily":       "daily",
	"day":         "daily",
	"weekly":      "weekly",
	"deposit":     "deposit",
	"dep":         "deposit",
	"withdraw":    "withdraw",
	"with":        "withdraw",
	"ping":        "ping",
	"latency":     "ping",
	"pong":        "ping",
	"leaderboard": "leaderboard",
	"lb":          "leaderboard",
	"rich":        "leaderboard",
}

var mentionPattern = regexp.MustCompile(`^<@!?\d+>$`)

// parsePrefixCommand splits "<prefix> <command> args..." into the command
// name and its arguments. The prefix and the command are matched without
// case. Mention tokens are dropped from the arguments.
func parsePrefixCommand(content, prefix string) (string, []string, bool) {
	fields := strings.Fields(content)
	if len(fields) < 2 || !strings.EqualFold(fields[0], prefix) {
		return "", nil, false
	}

	command, ok := commandAliases[strings.ToLower(fields[1])]
	if !ok {
		return "", nil, false
	}

	args := make([]string, 0, len(fields)-2)
	for _, field := range fields[2:] {
		if mentionPattern.MatchString(field) {
			continue
		}
		args = append(args, field)
	}
	return command, args, true
}
