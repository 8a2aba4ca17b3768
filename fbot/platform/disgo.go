package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// DisgoClient adapts a disgo bot.Client to the Client interface. REST
// failures are translated into the platform error taxonomy so feature
// packages never inspect HTTP status codes.
type DisgoClient struct {
	client bot.Client
}

func NewDisgoClient(client bot.Client) *DisgoClient {
	return &DisgoClient{client: client}
}

var _ Client = (*DisgoClient)(nil)

func (c *DisgoClient) BotUserID() snowflake.ID {
	return c.client.ID()
}

func (c *DisgoClient) SendMessage(ctx context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
	sent, err := c.client.Rest().CreateMessage(channelID, msg, rest.WithCtx(ctx))
	if err != nil {
		return 0, mapRestError(err)
	}
	return sent.ID, nil
}

func (c *DisgoClient) DeleteMessage(ctx context.Context, channelID, messageID snowflake.ID) error {
	return mapRestError(c.client.Rest().DeleteMessage(channelID, messageID, rest.WithCtx(ctx)))
}

func (c *DisgoClient) FetchMessage(ctx context.Context, channelID, messageID snowflake.ID) (*Message, error) {
	msg, err := c.client.Rest().GetMessage(channelID, messageID, rest.WithCtx(ctx))
	if err != nil {
		return nil, mapRestError(err)
	}
	converted := convertMessage(*msg)
	return &converted, nil
}

func (c *DisgoClient) MessagesBefore(ctx context.Context, channelID snowflake.ID, before time.Time, limit int) ([]Message, error) {
	msgs, err := c.client.Rest().GetMessages(channelID, 0, snowflake.New(before), 0, limit, rest.WithCtx(ctx))
	if err != nil {
		return nil, mapRestError(err)
	}
	out := make([]Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, convertMessage(msg))
	}
	return out, nil
}

func (c *DisgoClient) AddReaction(ctx context.Context, channelID, messageID snowflake.ID, emoji string) error {
	return mapRestError(c.client.Rest().AddReaction(channelID, messageID, emoji, rest.WithCtx(ctx)))
}

func (c *DisgoClient) FetchUser(ctx context.Context, userID snowflake.ID) (*User, error) {
	user, err := c.client.Rest().GetUser(userID, rest.WithCtx(ctx))
	if err != nil {
		return nil, mapRestError(err)
	}
	return &User{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.EffectiveAvatarURL(),
		IsBot:     user.Bot,
	}, nil
}

func (c *DisgoClient) GrantRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	return mapRestError(c.client.Rest().AddMemberRole(guildID, userID, roleID, rest.WithCtx(ctx)))
}

func (c *DisgoClient) RevokeRole(ctx context.Context, guildID, userID, roleID snowflake.ID) error {
	return mapRestError(c.client.Rest().RemoveMemberRole(guildID, userID, roleID, rest.WithCtx(ctx)))
}

func (c *DisgoClient) KickMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	return mapRestError(c.client.Rest().RemoveMember(guildID, userID, rest.WithCtx(ctx), rest.WithReason(reason)))
}

func (c *DisgoClient) BanMember(ctx context.Context, guildID, userID snowflake.ID, reason string) error {
	return mapRestError(c.client.Rest().AddBan(guildID, userID, 0, rest.WithCtx(ctx), rest.WithReason(reason)))
}

func (c *DisgoClient) MoveMember(ctx context.Context, guildID, userID, channelID snowflake.ID) error {
	_, err := c.client.Rest().UpdateMember(guildID, userID, discord.MemberUpdate{
		ChannelID: &channelID,
	}, rest.WithCtx(ctx))
	return mapRestError(err)
}

func (c *DisgoClient) CreateVoiceChannel(ctx context.Context, guildID snowflake.ID, spec VoiceChannelSpec) (snowflake.ID, error) {
	var overwrites []discord.PermissionOverwrite
	if spec.Hidden {
		overwrites = append(overwrites, discord.RolePermissionOverwrite{
			RoleID: guildID, // @everyone role shares the guild id
			Deny:   discord.PermissionConnect,
		})
	}
	if spec.OwnerID != 0 {
		overwrites = append(overwrites, discord.MemberPermissionOverwrite{
			UserID: spec.OwnerID,
			Allow: discord.PermissionConnect |
				discord.PermissionSpeak |
				discord.PermissionManageChannels |
				discord.PermissionMoveMembers |
				discord.PermissionMuteMembers |
				discord.PermissionDeafenMembers,
		})
	}

	channel, err := c.client.Rest().CreateGuildChannel(guildID, discord.GuildVoiceChannelCreate{
		Name:                 spec.Name,
		ParentID:             spec.CategoryID,
		UserLimit:            spec.UserLimit,
		PermissionOverwrites: overwrites,
	}, rest.WithCtx(ctx))
	if err != nil {
		return 0, mapRestError(err)
	}
	return channel.ID(), nil
}

func (c *DisgoClient) CreateTextChannel(ctx context.Context, guildID snowflake.ID, spec TextChannelSpec) (snowflake.ID, error) {
	var overwrites []discord.PermissionOverwrite
	if spec.Private {
		overwrites = append(overwrites,
			discord.RolePermissionOverwrite{
				RoleID: guildID,
				Deny:   discord.PermissionViewChannel,
			},
			discord.MemberPermissionOverwrite{
				UserID: c.BotUserID(),
				Allow:  discord.PermissionViewChannel | discord.PermissionSendMessages,
			},
		)
	}

	channel, err := c.client.Rest().CreateGuildChannel(guildID, discord.GuildTextChannelCreate{
		Name:                 spec.Name,
		Topic:                spec.Topic,
		ParentID:             spec.CategoryID,
		PermissionOverwrites: overwrites,
	}, rest.WithCtx(ctx))
	if err != nil {
		return 0, mapRestError(err)
	}
	return channel.ID(), nil
}

func (c *DisgoClient) CreateCategory(ctx context.Context, guildID snowflake.ID, name string) (snowflake.ID, error) {
	channel, err := c.client.Rest().CreateGuildChannel(guildID, discord.GuildCategoryChannelCreate{
		Name: name,
	}, rest.WithCtx(ctx))
	if err != nil {
		return 0, mapRestError(err)
	}
	return channel.ID(), nil
}

func (c *DisgoClient) DeleteChannel(ctx context.Context, channelID snowflake.ID) error {
	return mapRestError(c.client.Rest().DeleteChannel(channelID, rest.WithCtx(ctx)))
}

func (c *DisgoClient) RenameChannel(ctx context.Context, channelID snowflake.ID, name string) error {
	_, err := c.client.Rest().UpdateChannel(channelID, discord.GuildVoiceChannelUpdate{
		Name: &name,
	}, rest.WithCtx(ctx))
	return mapRestError(err)
}

func (c *DisgoClient) VoiceOccupancy(guildID, channelID snowflake.ID) int {
	count := 0
	c.client.Caches().VoiceStatesForEach(guildID, func(state discord.VoiceState) {
		if state.ChannelID != nil && *state.ChannelID == channelID {
			count++
		}
	})
	return count
}

func (c *DisgoClient) TextChannels(guildID snowflake.ID) []Channel {
	var channels []Channel
	c.client.Caches().ChannelsForEach(func(channel discord.GuildChannel) {
		if channel.GuildID() == guildID && channel.Type() == discord.ChannelTypeGuildText {
			channels = append(channels, Channel{ID: channel.ID(), Name: channel.Name()})
		}
	})
	return channels
}

func (c *DisgoClient) Members(guildID snowflake.ID) []User {
	var members []User
	c.client.Caches().MembersForEach(guildID, func(member discord.Member) {
		members = append(members, User{
			ID:        member.User.ID,
			Username:  member.User.Username,
			AvatarURL: member.User.EffectiveAvatarURL(),
			IsBot:     member.User.Bot,
		})
	})
	return members
}

func (c *DisgoClient) GuildCounts(guildID snowflake.ID) (GuildCounts, bool) {
	guild, ok := c.client.Caches().Guild(guildID)
	if !ok {
		return GuildCounts{}, false
	}

	counts := GuildCounts{
		Members: guild.MemberCount,
		Boosts:  guild.PremiumSubscriptionCount,
	}
	c.client.Caches().MembersForEach(guildID, func(member discord.Member) {
		if member.User.Bot {
			counts.Bots++
		}
	})
	c.client.Caches().PresenceForEach(guildID, func(presence discord.Presence) {
		if presence.Status != discord.OnlineStatusOffline {
			counts.Online++
		}
	})
	c.client.Caches().ChannelsForEach(func(channel discord.GuildChannel) {
		if channel.GuildID() == guildID {
			counts.Channels++
		}
	})
	c.client.Caches().RolesForEach(guildID, func(discord.Role) {
		counts.Roles++
	})
	return counts, true
}

func convertMessage(msg discord.Message) Message {
	var guildID snowflake.ID
	if msg.GuildID != nil {
		guildID = *msg.GuildID
	}
	return FromDiscord(guildID, msg)
}

// FromDiscord converts a gateway message into the engine's view. The
// guild id is passed separately because gateway payloads do not always
// carry it on the message itself.
func FromDiscord(guildID snowflake.ID, msg discord.Message) Message {
	converted := Message{
		GuildID:         guildID,
		ID:              msg.ID,
		ChannelID:       msg.ChannelID,
		AuthorID:        msg.Author.ID,
		AuthorName:      msg.Author.Username,
		AuthorAvatarURL: msg.Author.EffectiveAvatarURL(),
		AuthorIsBot:     msg.Author.Bot,
		Content:         msg.Content,
		CreatedAt:       msg.CreatedAt,
	}
	for _, attachment := range msg.Attachments {
		converted.AttachmentURLs = append(converted.AttachmentURLs, attachment.URL)
	}
	if len(msg.Reactions) > 0 {
		converted.Reactions = make(map[string]int, len(msg.Reactions))
		for _, reaction := range msg.Reactions {
			converted.Reactions[reaction.Emoji.Reaction()] = reaction.Count
		}
	}
	return converted
}

func mapRestError(err error) error {
	if err == nil {
		return nil
	}
	var restErr rest.Error
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, err)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrPermissionDenied, err)
		}
	}
	return err
}
