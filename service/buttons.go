package service

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func GetInviteButton(label string, link string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(label, link),
		),
	)
}

func GetHelperButtons() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Ajuda", "/help"),
		),
	)
}
