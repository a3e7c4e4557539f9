package discord

import (
	"context"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/jose-valero/lounge-hub/internal/app/service"
)

type Router struct {
	s       *discordgo.Session
	guildID string

	registry *service.RegistryService
	mod      *service.ModerationService
	members  *service.MembershipService // nil en el hub (no monitorea chat)

	adminRoleIDs []string
}

func NewRouter(
	s *discordgo.Session,
	guildID string,
	registry *service.RegistryService,
	mod *service.ModerationService,
	members *service.MembershipService,
	adminRoleIDs []string,
) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		registry:     registry,
		mod:          mod,
		members:      members,
		adminRoleIDs: adminRoleIDs,
	}
}

func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

const helpText = "Comandos disponibles:\n" +
	"• `/start` — lounges activos del hub\n" +
	"• `/help` — este mensaje\n" +
	"• `/modban term [lista]` — agrega un término de moderación (admins)\n" +
	"• `/modunban term [lista]` — saca un término (admins)\n" +
	"• `/modterms` — ver listas compartidas (admins)\n" +
	"• `/modlog [limit]` — audit de membresía (admins)"

func (r *Router) Handlers() {
	// Slash commands
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		data := ic.ApplicationCommandData()

		// el recover va antes de tocar cualquier campo opcional de la
		// interacción (Member es nil en DMs)
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in slash /%s: %v", data.Name, rec)
				ReplyEphemeral(s, ic, "⚠️ Ocurrió un error inesperado.")
			}
		}()

		log.Printf("slash: /%s by=%s guild=%s", data.Name, invokerID(ic), ic.GuildID)

		_ = DeferEphemeral(s, ic)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		switch data.Name {
		case "start":
			ReplyEphemeral(s, ic, r.registry.StartMessage(ctx))

		case "help":
			ReplyEphemeral(s, ic, helpText)

		case "modban":
			if !r.requireAdminOrRoles(s, ic) {
				return
			}
			term, _ := optStr(ic, "term")
			kind, _ := optStr(ic, "lista")
			msg, err := r.mod.Ban(ctx, term, kind)
			if err != nil {
				msg = "⚠️ No pude agregar el término: " + err.Error()
			}
			ReplyEphemeral(s, ic, msg)

		case "modunban":
			if !r.requireAdminOrRoles(s, ic) {
				return
			}
			term, _ := optStr(ic, "term")
			kind, _ := optStr(ic, "lista")
			msg, err := r.mod.Unban(ctx, term, kind)
			if err != nil {
				msg = "⚠️ No pude sacar el término: " + err.Error()
			}
			ReplyEphemeral(s, ic, msg)

		case "modterms":
			if !r.requireAdminOrRoles(s, ic) {
				return
			}
			ReplyEphemeral(s, ic, r.mod.TermList(ctx))

		case "modlog":
			if !r.requireAdminOrRoles(s, ic) {
				return
			}
			if r.members == nil {
				ReplyEphemeral(s, ic, "ℹ️ Este proceso no registra membresías.")
				return
			}
			limit, _ := optInt(ic, "limit")
			ReplyEphemeral(s, ic, r.members.RecentLog(ctx, limit))
		}
	})

	// Member add/remove → recorder (sólo los lounges; el hub no tiene chat)
	if r.members == nil {
		return
	}

	r.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
		if e.GuildID != r.guildID {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		name := memberDisplayName(e.Member)
		if banned := r.members.HandleJoin(ctx, e.GuildID, e.User.ID, name); banned {
			log.Printf("🔨 baneado al entrar: %q (%s)", name, e.User.ID)
		}
	})

	r.s.AddHandler(func(s *discordgo.Session, e *discordgo.GuildMemberRemove) {
		if e.GuildID != r.guildID {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		r.members.HandleLeave(ctx, e.GuildID, e.User.ID, memberDisplayName(e.Member))
	})
}
