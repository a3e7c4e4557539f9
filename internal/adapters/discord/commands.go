package discord

import "github.com/bwmarrin/discordgo"

var kindChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "blacklist", Value: "blacklist"},
	{Name: "whitelist", Value: "whitelist"},
}

var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "start",
		Description: "Lista los lounges activos del hub",
	},
	{
		Name:        "help",
		Description: "Muestra los comandos disponibles",
	},
	{
		Name:        "modban",
		Description: "Agrega un término de moderación de nombres (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "term",
				Description: "Substring a bloquear o eximir en display names",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "lista",
				Description: "blacklist (default) o whitelist",
				Choices:     kindChoices,
			},
		},
	},
	{
		Name:        "modunban",
		Description: "Saca un término de moderación (admins)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "term",
				Description: "Substring a remover",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "lista",
				Description: "blacklist (default) o whitelist",
				Choices:     kindChoices,
			},
		},
	},
	{
		Name:        "modterms",
		Description: "Ver las listas de moderación compartidas (admins)",
	},
	{
		Name:        "modlog",
		Description: "Últimos eventos de membresía de este lounge (admins)",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "limit",
			Description: "Cantidad de eventos (default 10)",
		}},
	},
}
