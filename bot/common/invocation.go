package common

import (
	"github.com/bwmarrin/discordgo"
)

// Invocation is one command call, from a prefix message or a slash command
type Invocation struct {
	Command string
	User    *discordgo.User
	UserID  int64
	GuildID string
	// Args holds the words after the command, or the string option values
	Args []string
	// Target is the first mentioned or selected user, if any
	Target *discordgo.User
}

// Arg returns the nth argument or ""
func (inv *Invocation) Arg(n int) string {
	if n < 0 || n >= len(inv.Args) {
		return ""
	}
	return inv.Args[n]
}
