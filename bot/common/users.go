package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// NameResolver returns the name to show for a user in a guild
type NameResolver func(guildID, userID string) string

// SessionNameResolver resolves names through the Discord API
func SessionNameResolver(s *discordgo.Session) NameResolver {
	return func(guildID, userID string) string {
		return GetDisplayName(s, guildID, userID)
	}
}

// GetDisplayName returns the server-specific display name for a user
// Falls back to username if nickname is not set or if there's an error
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	if guildID != "" {
		member, err := s.GuildMember(guildID, userID)
		if err == nil && member != nil {
			if member.Nick != "" {
				return member.Nick
			}
			if member.User != nil {
				return DisplayName(member.User)
			}
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return DisplayName(user)
	}

	return "Unknown"
}

// DisplayName prefers the global display name over the username
func DisplayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// ParseUserID converts a Discord user ID string to int64
func ParseUserID(userID string) (int64, error) {
	return strconv.ParseInt(userID, 10, 64)
}

// FormatUserID converts an int64 user ID to string
func FormatUserID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID int64) string {
	return "<@" + FormatUserID(userID) + ">"
}

// InteractionUser returns the invoking user of a guild or DM interaction
func InteractionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
