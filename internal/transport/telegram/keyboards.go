package telegram

import (
	"fmt"

	"totem-quiz-bot/internal/app"
)

const (
	actionStartQuiz    = "start_quiz"
	actionGuardianship = "guardianship"
	actionContact      = "contact"
	actionBackToStart  = "back_to_start"
	actionShareResult  = "share_result"
)

func menuData(action string) string {
	return "menu_" + action
}

func answerData(questionIndex, optionIndex int) string {
	return fmt.Sprintf("answer_%d_%d", questionIndex, optionIndex)
}

func button(text, action string) []InlineKeyboardButton {
	return []InlineKeyboardButton{{Text: text, CallbackData: menuData(action)}}
}

func StartMenuKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("🎮 Начать викторину", actionStartQuiz),
		button("ℹ️ О программе опеки", actionGuardianship),
		button("📞 Связаться с зоопарком", actionContact),
	}}
}

func QuestionKeyboard(q app.QuestionView) *InlineKeyboardMarkup {
	rows := make([][]InlineKeyboardButton, 0, len(q.Options))
	for i, text := range q.Options {
		rows = append(rows, []InlineKeyboardButton{
			{Text: text, CallbackData: answerData(q.Index, i)},
		})
	}
	return &InlineKeyboardMarkup{InlineKeyboard: rows}
}

func ResultKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("🐾 Узнать о программе опеки", actionGuardianship),
		button("📤 Поделиться результатом", actionShareResult),
		button("📞 Связаться с зоопарком", actionContact),
		button("🔄 Пройти викторину еще раз", actionStartQuiz),
	}}
}

func GuardianshipKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("📞 Связаться с зоопарком", actionContact),
		button("🔙 Вернуться к началу", actionBackToStart),
	}}
}

func ContactKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("🐾 Узнать о программе опеки", actionGuardianship),
		button("🔙 Вернуться к началу", actionBackToStart),
	}}
}

func ShareKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("🔄 Пройти викторину еще раз", actionStartQuiz),
		button("🐾 О программе опеки", actionGuardianship),
		button("🔙 Вернуться к началу", actionBackToStart),
	}}
}

func FeedbackKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("🔄 Пройти викторину", actionStartQuiz),
		button("🐾 О программе опеки", actionGuardianship),
		button("🔙 В главное меню", actionBackToStart),
	}}
}

func BackKeyboard() *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{InlineKeyboard: [][]InlineKeyboardButton{
		button("🔙 Вернуться к началу", actionBackToStart),
	}}
}
