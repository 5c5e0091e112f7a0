package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrefixCommand(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantCommand string
		wantArgs    []string
		wantOK      bool
	}{
		{"plain", "pls daily", "daily", []string{}, true},
		{"mixed case prefix and alias", "PLS Bal", "balance", []string{}, true},
		{"alias with amount", "pls dep 1,000", "deposit", []string{"1,000"}, true},
		{"all keyword", "pls with all", "withdraw", []string{"all"}, true},
		{"mention dropped", "pls bal <@!123456>", "balance", []string{}, true},
		{"extra whitespace", "  pls   lb  ", "leaderboard", []string{}, true},
		{"pong alias", "pls pong", "ping", []string{}, true},
		{"prefix only", "pls", "", nil, false},
		{"unknown command", "pls rob <@1>", "", nil, false},
		{"other prefix", "!daily", "", nil, false},
		{"prefix must be its own word", "plsdaily now", "", nil, false},
		{"empty", "", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			command, args, ok := parsePrefixCommand(tt.content, "pls")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCommand, command)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCommandAliasesCoverSlashCommands(t *testing.T) {
	for _, cmd := range slashCommands() {
		assert.Equal(t, cmd.Name, commandAliases[cmd.Name], "slash command %s has no prefix spelling", cmd.Name)
	}
}
