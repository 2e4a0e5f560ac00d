package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func guildInteraction(guildID string, perms int64) *discordgo.InteractionCreate {
	i := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: guildID,
		},
	}
	if guildID != "" {
		i.Member = &discordgo.Member{
			User:        &discordgo.User{ID: "user-1"},
			Permissions: perms,
		}
	} else {
		i.User = &discordgo.User{ID: "user-1"}
	}
	return i
}

func TestValidateInvocationGuildOnly(t *testing.T) {
	cmd := NewCommand("warn", "Advierte a un usuario", "mod", func(ctx *CommandContext) error {
		return nil
	}).RequiresGuild()

	// Outside a guild: terminate before permissions are even considered
	err := validateInvocation(cmd, guildInteraction("", 0))
	if !errors.Is(err, ErrGuildOnly) {
		t.Errorf("validateInvocation() = %v, want ErrGuildOnly", err)
	}

	// Inside a guild: passes
	if err := validateInvocation(cmd, guildInteraction("guild-1", 0)); err != nil {
		t.Errorf("validateInvocation() = %v, want nil", err)
	}
}

func TestValidateInvocationPermissions(t *testing.T) {
	cmd := NewCommand("warn", "Advierte a un usuario", "mod", func(ctx *CommandContext) error {
		return nil
	}).RequiresGuild().WithUserPermissions(discordgo.PermissionModerateMembers)

	tests := []struct {
		name  string
		perms int64
		want  error
	}{
		{"sin permisos", 0, ErrMissingPermission},
		{"permiso distinto", discordgo.PermissionSendMessages, ErrMissingPermission},
		{"moderate members", discordgo.PermissionModerateMembers, nil},
		{"administrador", discordgo.PermissionAdministrator, nil},
		{"varios permisos", discordgo.PermissionModerateMembers | discordgo.PermissionSendMessages, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInvocation(cmd, guildInteraction("guild-1", tt.perms))
			if !errors.Is(err, tt.want) {
				t.Errorf("validateInvocation() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateInvocationOrder(t *testing.T) {
	// Guild check runs before the permission check: outside a guild the
	// caller must see the guild-only message, never the permission one.
	cmd := NewCommand("warn", "Advierte a un usuario", "mod", func(ctx *CommandContext) error {
		return nil
	}).RequiresGuild().WithUserPermissions(discordgo.PermissionModerateMembers)

	err := validateInvocation(cmd, guildInteraction("", 0))
	if !errors.Is(err, ErrGuildOnly) {
		t.Errorf("validateInvocation() = %v, want ErrGuildOnly before permission check", err)
	}
}

func TestValidateInvocationNoRequirements(t *testing.T) {
	cmd := NewCommand("ping", "Comprueba la latencia", "utils", func(ctx *CommandContext) error {
		return nil
	})

	// A command without requirements runs anywhere, even in DMs
	if err := validateInvocation(cmd, guildInteraction("", 0)); err != nil {
		t.Errorf("validateInvocation() = %v, want nil", err)
	}
	if err := validateInvocation(cmd, guildInteraction("guild-1", 0)); err != nil {
		t.Errorf("validateInvocation() = %v, want nil", err)
	}
}
