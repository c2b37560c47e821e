package reminder

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/akfldk1028/chatnote/internal/kakao"
	"github.com/akfldk1028/chatnote/internal/store"
)

// UserResolver maps an internal user ID back to the stored user.
type UserResolver interface {
	UserByID(ctx context.Context, userID string) (*store.User, error)
}

// KakaoNotifier delivers reminders through 나에게 보내기, which needs
// the user's own access token.
type KakaoNotifier struct {
	client *kakao.Client
	users  UserResolver
	logger *zap.Logger
}

func NewKakaoNotifier(client *kakao.Client, users UserResolver, logger *zap.Logger) *KakaoNotifier {
	return &KakaoNotifier{client: client, users: users, logger: logger}
}

func (n *KakaoNotifier) Platform() string { return "kakao" }

func (n *KakaoNotifier) Notify(ctx context.Context, userID, message string) error {
	user, err := n.users.UserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	if user == nil || user.AccessToken == "" {
		return fmt.Errorf("user %s has no access token", userID)
	}
	return n.client.SendToMe(ctx, user.AccessToken, message, "")
}

// DiscordNotifier posts reminders to a fixed channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	logger    *zap.Logger
}

func NewDiscordNotifier(botToken, channelID string, logger *zap.Logger) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID, logger: logger}, nil
}

func (n *DiscordNotifier) Platform() string { return "discord" }

func (n *DiscordNotifier) Notify(_ context.Context, _, message string) error {
	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		return fmt.Errorf("discord send: %w", err)
	}
	return nil
}

// SlackNotifier posts reminders to a fixed channel.
type SlackNotifier struct {
	client    *slack.Client
	channelID string
	logger    *zap.Logger
}

func NewSlackNotifier(botToken, channelID string, logger *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:    slack.New(botToken),
		channelID: channelID,
		logger:    logger,
	}
}

func (n *SlackNotifier) Platform() string { return "slack" }

func (n *SlackNotifier) Notify(_ context.Context, _, message string) error {
	if _, _, err := n.client.PostMessage(n.channelID, slack.MsgOptionText(message, false)); err != nil {
		return fmt.Errorf("slack post: %w", err)
	}
	return nil
}
