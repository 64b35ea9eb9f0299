package service

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/virgidrex/sentinela-bot/models"
)

const (
	StartText = "🛡️ Sentinela online!\n\n" +
		"Envie o endereço da sua carteira (0x...) para verificar seu saldo e receber o link do grupo."
	HelpText = "Comandos:\n" +
		"/start - boas-vindas\n" +
		"/check 0x... - verificar uma carteira\n" +
		"/help - esta mensagem\n\n" +
		"Você também pode enviar apenas o endereço da carteira."
	UnknownCommandText = "Comando desconhecido. Envie /help para ver os comandos."
	InvalidAddressText = "❌ Endereço inválido. Reenvie um endereço de carteira válido (0x seguido de 40 caracteres)."
	LookupFailedText   = "⚠️ Não foi possível consultar o saldo agora. Tente novamente mais tarde."
)

// RenderOutcome builds the reply for one checked address.
func (s *Service) RenderOutcome(chatId int64, outcome models.Outcome) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatId, "")
	symbol := tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s.TokenSymbol)

	switch outcome.Kind {
	case models.OutcomeHolder:
		msg.Text = fmt.Sprintf("✅ Saldo: `%s` $%s\n\nVocê tem até %s $%s e tem acesso ao grupo dos holders.",
			FormatBalance(outcome.Balance), symbol, FormatBalance(s.Classifier.Threshold()), symbol)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = GetInviteButton("🔓 Entrar no grupo", s.Links.Holder)
	case models.OutcomeWaiting:
		msg.Text = fmt.Sprintf("⏳ Saldo: `%s` $%s\n\nSeu saldo passa de %s $%s. Entre no grupo de espera.",
			FormatBalance(outcome.Balance), symbol, FormatBalance(s.Classifier.Threshold()), symbol)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = GetInviteButton("⏳ Grupo de espera", s.Links.Waiting)
	case models.OutcomeInvalidAddress:
		msg.Text = InvalidAddressText
	default:
		msg.Text = LookupFailedText
	}
	return msg
}
