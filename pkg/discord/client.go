// Package discord provides the Discord bot client and related structures.
// It wraps discordgo with additional functionality for command handling and
// an ordered precondition pipeline (guild context, permissions) that runs
// before every command handler.
package discord

import (
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/ModBotGo/pkg/config"
	"github.com/PancyStudios/ModBotGo/pkg/errors"
	"github.com/PancyStudios/ModBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// DiscordGoLogger wraps the custom logger to implement discordgo.Logger interface
// Note: discordgo.Logger is a function, not an interface
func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// Precondition failures. These are expected, user-visible outcomes handled
// entirely inside the dispatch pipeline; they are never logged as faults.
var (
	// ErrGuildOnly indicates a guild-only command was invoked outside a server
	ErrGuildOnly = stderrors.New("discord: command requires a guild context")
	// ErrMissingPermission indicates the caller lacks the required permissions
	ErrMissingPermission = stderrors.New("discord: caller lacks required permissions")
)

const (
	msgGuildOnly         = "❌ Este comando solo puede usarse en un servidor."
	msgMissingPermission = "❌ No tienes permiso para usar este comando."
	msgGenericFailure    = "❌ Algo salió mal al ejecutar el comando."
)

// ExtendedClient wraps discordgo.Session with additional functionality
type ExtendedClient struct {
	Session        *discordgo.Session
	Commands       *CommandCollection
	CommandHandler *CommandHandler
	StartTime      time.Time
	mu             sync.RWMutex
	isReady        bool
}

// CommandCollection holds registered commands
type CommandCollection struct {
	commands map[string]*Command
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
	}
}

// Set adds or updates a command
func (cc *CommandCollection) Set(name string, cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.commands[name] = cmd
}

// Get retrieves a command by name
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.commands[name]
	return cmd, ok
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns all commands
func (cc *CommandCollection) All() map[string]*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	result := make(map[string]*Command)
	for k, v := range cc.commands {
		result[k] = v
	}
	return result
}

var (
	client *ExtendedClient
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token string) (*ExtendedClient, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *ExtendedClient {
	return client
}

// NewClient creates a new ExtendedClient
func NewClient(token string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	// Set intents
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers

	// Configure session
	session.ShardCount = 1
	session.SyncEvents = false
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	c := &ExtendedClient{
		Session:  session,
		Commands: NewCommandCollection(),
		isReady:  false,
	}

	c.CommandHandler = NewCommandHandler(c)

	return c, nil
}

// Start initializes and starts the bot
func (c *ExtendedClient) Start() error {
	// Add ready handler
	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Bot conectado como: "+r.User.Username, "Client")

		// Register commands with Discord
		c.CommandHandler.RegisterCommands()
	})

	// Add interaction handler
	c.Session.AddHandler(c.handleInteraction)

	// Set start time
	c.StartTime = time.Now()

	// Open connection
	return c.Session.Open()
}

// validateInvocation runs the ordered preconditions for a command invocation:
// guild context first, then user permissions. Returns ErrGuildOnly or
// ErrMissingPermission; nil means the command may execute.
func validateInvocation(cmd *Command, i *discordgo.InteractionCreate) error {
	if cmd.GuildOnly && i.GuildID == "" {
		return ErrGuildOnly
	}

	if cmd.UserPermissions != 0 {
		// Fuera de un guild no hay permisos que evaluar
		if i.Member == nil {
			return ErrMissingPermission
		}
		perms := i.Member.Permissions
		if perms&discordgo.PermissionAdministrator == 0 && perms&cmd.UserPermissions != cmd.UserPermissions {
			return ErrMissingPermission
		}
	}

	return nil
}

// handleInteraction handles incoming Discord interactions
func (c *ExtendedClient) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	commandName := i.ApplicationCommandData().Name

	cmd, ok := c.Commands.Get(commandName)
	if !ok {
		logger.Warn("Command not found: "+commandName, "Client")
		return
	}

	ctx := &CommandContext{
		Session:     s,
		Interaction: i,
		Client:      c,
	}

	// Precondition pipeline: expected failures get a specific ephemeral
	// message and stop here, without touching the store.
	if err := validateInvocation(cmd, i); err != nil {
		switch {
		case stderrors.Is(err, ErrGuildOnly):
			deliverEphemeral(ctx.ReplyEphemeral, commandName, msgGuildOnly)
		case stderrors.Is(err, ErrMissingPermission):
			deliverEphemeral(ctx.ReplyEphemeral, commandName, msgMissingPermission)
		}
		return
	}

	if err := cmd.Run(ctx); err != nil {
		c.replyCommandError(ctx, commandName, err)
	}
}

// replyCommandError logs an unexpected handler failure and sends the generic
// failure message. The user must always get a reply; if even the error reply
// cannot be delivered, that secondary failure is logged and swallowed.
func (c *ExtendedClient) replyCommandError(ctx *CommandContext, commandName string, err error) {
	logger.Error(fmt.Sprintf("Error executing command %s: %v", commandName, err), "Client")

	if replyErr := ctx.ReplyEphemeral(msgGenericFailure); replyErr != nil {
		// Initial response may already be sent or deferred; retry as follow-up
		if followErr := ctx.FollowUpEphemeral(msgGenericFailure); followErr != nil {
			logger.Error(fmt.Sprintf("Failed to deliver error reply for %s: %v", commandName, followErr), "Client")
		}
	}
}

// deliverEphemeral sends a precondition message to the invoker. A failed
// delivery is logged and swallowed; precondition outcomes never escalate.
func deliverEphemeral(reply func(string) error, commandName, msg string) {
	if err := reply(msg); err != nil {
		logger.Error(fmt.Sprintf("No se pudo entregar el mensaje de precondición de %s: %v", commandName, err), "Client")
	}
}

// RecoverReply returns a deferred recovery function for command handler
// goroutines. The invoker still receives the generic failure message before
// the panic is handed to the anti-crash counter; a crashed handler must
// never end in a silent interaction timeout.
func RecoverReply(ctx *CommandContext) func() {
	return func() {
		if r := recover(); r != nil {
			notifyPanic(r, ctx.ReplyEphemeral, ctx.FollowUpEphemeral)
		}
	}
}

// notifyPanic reports a recovered handler panic. Reply first, follow-up when
// the initial response was already consumed; a reply that cannot be
// delivered at all is logged and swallowed.
func notifyPanic(recovered interface{}, reply, followUp func(string) error) {
	logger.Error(fmt.Sprintf("Pánico en handler de comando: %v", recovered), "Client")

	if err := reply(msgGenericFailure); err != nil {
		if err := followUp(msgGenericFailure); err != nil {
			logger.Error(fmt.Sprintf("No se pudo entregar la respuesta de error: %v", err), "Client")
		}
	}

	if h := errors.Get(); h != nil {
		h.HandlePanic(recovered)
	}
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// MemberCount returns the approximate total member count across all guilds
func (c *ExtendedClient) MemberCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()

	total := 0
	for _, g := range c.Session.State.Guilds {
		total += g.MemberCount
	}
	return total
}

// GetConfig returns the bot configuration
func (c *ExtendedClient) GetConfig() *config.Config {
	return config.Get()
}
