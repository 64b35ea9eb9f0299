package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/virgidrex/sentinela-bot/service"
)

// Sender is the part of *tgbotapi.BotAPI the handler needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	s      *service.Service
	sender Sender
	logger *zap.Logger
}

func NewHandler(s *service.Service, sender Sender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{s: s, sender: sender, logger: logger}
}

// HandleUpdate answers one update. Every message gets exactly one reply.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil { // ignore non-Message updates
		return
	}

	msg := h.reply(ctx, update.Message)
	msg.ReplyToMessageID = update.Message.MessageID
	if _, err := h.sender.Send(msg); err != nil {
		h.logger.Error("send reply failed", zap.Int64("chat_id", msg.ChatID), zap.Error(err))
	}
}

func (h *Handler) reply(ctx context.Context, m *tgbotapi.Message) tgbotapi.MessageConfig {
	chatId := m.Chat.ID
	log := h.logger.With(zap.Int64("chat_id", chatId), zap.String("command", m.Command()))

	switch m.Command() {
	case "start":
		if m.From != nil && h.s.DB != nil {
			if _, err := h.s.GetOrCreateUser(m.From.ID, m.From.UserName); err != nil {
				log.Warn("record user failed", zap.Error(err))
			}
		}
		msg := tgbotapi.NewMessage(chatId, service.StartText)
		msg.ReplyMarkup = service.GetHelperButtons()
		return msg
	case "help":
		return tgbotapi.NewMessage(chatId, service.HelpText)
	case "check":
		return h.s.RenderOutcome(chatId, h.s.Check(ctx, m.CommandArguments()))
	case "":
		return h.s.RenderOutcome(chatId, h.s.Check(ctx, m.Text))
	default:
		log.Debug("unknown command")
		return tgbotapi.NewMessage(chatId, service.UnknownCommandText)
	}
}

func (h *Handler) handleCallback(q *tgbotapi.CallbackQuery) {
	if _, err := h.sender.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		h.logger.Warn("answer callback failed", zap.Error(err))
	}
	if q.Message == nil || q.Data != "/help" {
		return
	}
	if _, err := h.sender.Send(tgbotapi.NewMessage(q.Message.Chat.ID, service.HelpText)); err != nil {
		h.logger.Error("send help failed", zap.Int64("chat_id", q.Message.Chat.ID), zap.Error(err))
	}
}
