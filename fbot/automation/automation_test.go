package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/mock/gomock"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
	"github.com/fbotlabs/fbot/fbot/platform"
	"github.com/fbotlabs/fbot/fbot/platform/mock"
)

const (
	testGuild      = snowflake.ID(100)
	testChannel    = snowflake.ID(150)
	testUser       = snowflake.ID(200)
	welcomeChannel = snowflake.ID(700)
)

func newTestEngine(t *testing.T, seed func(*guildconfig.GuildConfig)) (*Engine, *mock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	store := guildconfig.NewStore(nil)
	if seed != nil {
		if err := store.Mutate(context.Background(), testGuild, seed); err != nil {
			t.Fatalf("seed config: %v", err)
		}
	}
	return NewEngine(store, client), client
}

func testMessage(content string, isBot bool) platform.Message {
	return platform.Message{
		GuildID:     testGuild,
		ChannelID:   testChannel,
		AuthorID:    testUser,
		Content:     content,
		AuthorIsBot: isBot,
	}
}

func TestOnMessageCustomCommandWinsOverAutoResponse(t *testing.T) {
	e, client := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.CustomCommands = map[string]string{"rules": "read the rules"}
		cfg.AutoResponses = []guildconfig.AutoResponse{
			{Trigger: "rules", Response: "auto reply"},
		}
	})

	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, discord.MessageCreate{Content: "read the rules"}).
		Return(snowflake.ID(1), nil)

	if err := e.OnMessage(context.Background(), testMessage("!rules", false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnMessageCustomCommandIsCaseInsensitiveExactMatch(t *testing.T) {
	e, client := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.CustomCommands = map[string]string{"rules": "read the rules"}
	})

	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, discord.MessageCreate{Content: "read the rules"}).
		Return(snowflake.ID(1), nil)

	if err := e.OnMessage(context.Background(), testMessage("  !RULES  ", false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnMessageFirstAutoResponseWins(t *testing.T) {
	e, client := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.AutoResponses = []guildconfig.AutoResponse{
			{Trigger: "hello", Response: "hi there"},
			{Trigger: "hell", Response: "other"},
		}
	})

	// Exactly one reply even though both triggers match.
	client.EXPECT().
		SendMessage(gomock.Any(), testChannel, discord.MessageCreate{Content: "hi there"}).
		Return(snowflake.ID(1), nil)

	if err := e.OnMessage(context.Background(), testMessage("well HELLO friend", false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnMessageIgnoresBots(t *testing.T) {
	e, _ := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.AutoResponses = []guildconfig.AutoResponse{
			{Trigger: "hello", Response: "hi there"},
		}
	})

	if err := e.OnMessage(context.Background(), testMessage("hello", true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnMessageNoMatchIsSilent(t *testing.T) {
	e, _ := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.CustomCommands = map[string]string{"rules": "read the rules"}
	})

	if err := e.OnMessage(context.Background(), testMessage("!unknown", false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOnMemberJoinSendsWelcomeAndRoles(t *testing.T) {
	roleA, roleB := snowflake.ID(401), snowflake.ID(402)
	e, client := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.Welcome = &guildconfig.WelcomeConfig{
			Channel:  welcomeChannel,
			Template: "Hey {user}, welcome to {server}!",
		}
		cfg.AutoRoles = []snowflake.ID{roleA, roleB}
	})

	client.EXPECT().
		SendMessage(gomock.Any(), welcomeChannel, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
			if got := msg.Embeds[0].Description; got != "Hey alice, welcome to Testland!" {
				t.Errorf("welcome text = %q", got)
			}
			return snowflake.ID(1), nil
		})
	client.EXPECT().GrantRole(gomock.Any(), testGuild, testUser, roleA).Return(nil)
	// A stale role is tolerated; the next role is still granted.
	client.EXPECT().GrantRole(gomock.Any(), testGuild, testUser, roleB).Return(platform.ErrNotFound)

	if err := e.OnMemberJoin(context.Background(), testGuild, testUser, "alice", "Testland"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRenderWelcomeDefaultTemplate(t *testing.T) {
	got := renderWelcome("", "alice", "Testland")
	if got != "Welcome alice to Testland!" {
		t.Errorf("rendered = %q", got)
	}
}

func TestSubmitSuggestionUnconfigured(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	_, err := e.SubmitSuggestion(context.Background(), testGuild, "alice", "", "add a music bot")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSubmitSuggestionPostsAndSeedsVotes(t *testing.T) {
	suggestChannel := snowflake.ID(750)
	e, client := newTestEngine(t, func(cfg *guildconfig.GuildConfig) {
		cfg.Suggestions = &guildconfig.SuggestionsConfig{Channel: suggestChannel}
	})

	posted := snowflake.ID(900)
	client.EXPECT().
		SendMessage(gomock.Any(), suggestChannel, gomock.Any()).
		Return(posted, nil)
	client.EXPECT().AddReaction(gomock.Any(), suggestChannel, posted, "👍").Return(nil)
	client.EXPECT().AddReaction(gomock.Any(), suggestChannel, posted, "👎").Return(nil)

	got, err := e.SubmitSuggestion(context.Background(), testGuild, "alice", "", "add a music bot")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != posted {
		t.Errorf("message id = %s, want %s", got, posted)
	}
}
