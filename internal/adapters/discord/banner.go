package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Banner ejecuta el ban real sobre el transporte. Implementa
// service.Banner.
type Banner struct{ s *discordgo.Session }

func NewBanner(s *discordgo.Session) *Banner { return &Banner{s: s} }

func (b *Banner) BanUser(ctx context.Context, chatID, userID, reason string) error {
	return b.s.GuildBanCreateWithReason(chatID, userID, reason, 0)
}
