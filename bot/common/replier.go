package common

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Reply is a response to a command, independent of how the command arrived
type Reply struct {
	Content    string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

// Replier sends the response for one command invocation. Edit replaces the
// content of the response already sent.
type Replier interface {
	Reply(reply *Reply) error
	Edit(reply *Reply) error
}

// MessageReplier answers a prefix command by replying to its message.
// Ephemeral has no meaning for channel messages and is ignored.
type MessageReplier struct {
	Session *discordgo.Session
	Message *discordgo.Message

	sent *discordgo.Message
}

func (r *MessageReplier) Reply(reply *Reply) error {
	send := &discordgo.MessageSend{
		Content:    reply.Content,
		Components: reply.Components,
		Reference:  r.Message.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			RepliedUser: false,
		},
	}
	if reply.Embed != nil {
		send.Embeds = []*discordgo.MessageEmbed{reply.Embed}
	}

	sent, err := r.Session.ChannelMessageSendComplex(r.Message.ChannelID, send)
	if err != nil {
		return err
	}
	r.sent = sent
	return nil
}

func (r *MessageReplier) Edit(reply *Reply) error {
	if r.sent == nil {
		return fmt.Errorf("no reply to edit")
	}

	embeds := []*discordgo.MessageEmbed{}
	if reply.Embed != nil {
		embeds = append(embeds, reply.Embed)
	}
	edit := discordgo.NewMessageEdit(r.sent.ChannelID, r.sent.ID)
	edit.Content = &reply.Content
	edit.Embeds = &embeds

	_, err := r.Session.ChannelMessageEditComplex(edit)
	return err
}

// InteractionReplier answers a slash command or component interaction
type InteractionReplier struct {
	Session     *discordgo.Session
	Interaction *discordgo.Interaction
}

func (r *InteractionReplier) Reply(reply *Reply) error {
	data := &discordgo.InteractionResponseData{
		Content:    reply.Content,
		Components: reply.Components,
	}
	if reply.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{reply.Embed}
	}
	if reply.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return r.Session.InteractionRespond(r.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (r *InteractionReplier) Edit(reply *Reply) error {
	embeds := []*discordgo.MessageEmbed{}
	if reply.Embed != nil {
		embeds = append(embeds, reply.Embed)
	}

	_, err := r.Session.InteractionResponseEdit(r.Interaction, &discordgo.WebhookEdit{
		Content: &reply.Content,
		Embeds:  &embeds,
	})
	return err
}

// RecordingReplier keeps replies in memory
type RecordingReplier struct {
	Replies []*Reply
	Edits   []*Reply
	Err     error
}

func (r *RecordingReplier) Reply(reply *Reply) error {
	r.Replies = append(r.Replies, reply)
	return r.Err
}

func (r *RecordingReplier) Edit(reply *Reply) error {
	r.Edits = append(r.Edits, reply)
	return r.Err
}

// Last returns the most recent reply, or nil
func (r *RecordingReplier) Last() *Reply {
	if len(r.Replies) == 0 {
		return nil
	}
	return r.Replies[len(r.Replies)-1]
}
