package commands

import (
	"testing"

	"github.com/fbotlabs/fbot/fbot/guildconfig"
)

func TestApplyAutomodRule(t *testing.T) {
	cfg := &guildconfig.GuildConfig{}

	applyAutomodRule(cfg, "spam", "delete")
	applyAutomodRule(cfg, "spam", "kick")
	applyAutomodRule(cfg, "links", "warn")

	if cfg.Automod["spam"] != "kick" {
		t.Errorf("spam action = %q, want the latest setting", cfg.Automod["spam"])
	}
	if cfg.Automod["links"] != "warn" {
		t.Errorf("links action = %q, want %q", cfg.Automod["links"], "warn")
	}
}

func TestRemoveAutomodRule(t *testing.T) {
	cfg := &guildconfig.GuildConfig{}

	if removeAutomodRule(cfg, "spam") {
		t.Error("removing an unconfigured rule must report false")
	}

	applyAutomodRule(cfg, "spam", "delete")
	if !removeAutomodRule(cfg, "spam") {
		t.Error("removing a configured rule must report true")
	}
	if _, ok := cfg.Automod["spam"]; ok {
		t.Error("rule still present after removal")
	}
}
