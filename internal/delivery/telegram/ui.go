package telegram

import (
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/alef-phonics-bot/internal/domain/entities"
)

const optionsPerRow = 2

// buildLobbyKeyboard builds one button per category. Completed categories are marked.
func buildLobbyKeyboard(completed []entities.Category) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range entities.Categories() {
		label := categoryTitle(c)
		if slices.Contains(completed, c) {
			label += " ✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildPlayCallback(c)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📊 ההיסטוריה שלי", buildStatsCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnswerKeyboard builds the answer buttons of a question plus a way home.
func buildAnswerKeyboard(q entities.Question, generation uint64, cursor int) tgbotapi.InlineKeyboardMarkup {
	var (
		rows [][]tgbotapi.InlineKeyboardButton
		row  []tgbotapi.InlineKeyboardButton
	)
	for i, option := range q.Options {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(option, buildAnswerCallback(generation, cursor, i)))
		if len(row) == optionsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 בית", buildHomeCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCompletionKeyboard builds the keyboard of the end-of-round screen.
func buildCompletionKeyboard(category entities.Category) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 עוד סיבוב", buildPlayCallback(category)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 למסך הבית", buildHomeCallback()),
		),
	)
}

// buildResetKeyboard asks to confirm erasing the history.
func buildResetKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 כן, למחוק", buildResetConfirmCallback()),
			tgbotapi.NewInlineKeyboardButtonData("ביטול", buildResetCancelCallback()),
		),
	)
}

// emptyKeyboard removes the inline keyboard of an edited message.
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
