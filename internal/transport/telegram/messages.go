package telegram

import (
	"fmt"
	"html"
	"strings"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
)

const (
	helpText = `🆘 <b>Справка по боту</b>

📋 <b>Доступные команды:</b>
/start - Начать викторину
/restart - Перезапустить викторину
/current - Показать текущий вопрос или результат
/help - Показать эту справку

🎯 <b>Как пройти викторину:</b>
1. Нажми "Начать викторину"
2. Отвечай на вопросы, выбирая один из вариантов
3. Узнай свое тотемное животное
4. Поделись результатом с друзьями

🐾 <b>О программе опеки:</b>
Узнай, как стать опекуном животного в Московском зоопарке и внести свой вклад в сохранение видов!

❓ <b>Нужна помощь?</b>
Используй кнопку "Связаться с зоопарком" для получения дополнительной информации.`

	feedbackThanksText = `💬 <b>Спасибо за твой отзыв!</b>

Мы ценим твое мнение и обязательно учтем его при развитии бота.

🎯 <b>Что дальше?</b>
• Пройди викторину еще раз
• Узнай больше о программе опеки
• Свяжись с зоопарком`

	noResultText = `❌ <b>Нет результата для публикации</b>

Сначала пройди викторину, чтобы узнать свое тотемное животное!

🎯 <b>Что делать:</b>
• Нажми "Начать викторину"
• Ответь на все вопросы
• Узнай свое тотемное животное
• Тогда сможешь поделиться результатом`

	invalidActionText = "❌ Произошла ошибка. Попробуйте начать викторину заново командой /restart."

	errorText = `❌ <b>Произошла ошибка</b>

К сожалению, что-то пошло не так. Попробуй:
• Перезапустить бота командой /restart
• Обратиться к справке командой /help
• Начать заново командой /start`

	unknownCommandText = "Неизвестная команда. Используй /help, чтобы увидеть список команд."
)

func welcomeText(firstName string, questions int) string {
	return fmt.Sprintf(`🦁 <b>Добро пожаловать в викторину "Какое у вас тотемное животное?"</b> 🦁

Привет, %s!

Я помогу тебе узнать, какое животное из Московского зоопарка больше всего подходит твоему характеру!

🎯 <b>Как это работает:</b>
• Ответь на %d интересных вопросов
• Узнай свое тотемное животное
• Познакомься с программой опеки зоопарка
• Поделись результатом с друзьями

Готов начать увлекательное путешествие? 🚀`, html.EscapeString(firstName), questions)
}

func questionText(q app.QuestionView) string {
	return fmt.Sprintf("❓ <b>Вопрос %d из %d</b>\n\n%s", q.Index+1, q.Total, html.EscapeString(q.Prompt))
}

func resultText(o domain.OutcomeDefinition) string {
	var b strings.Builder
	b.WriteString("🎉 <b>Викторина завершена!</b> 🎉\n\n")
	fmt.Fprintf(&b, "%s <b>Твое тотемное животное: %s</b> %s\n\n", o.Emoji, html.EscapeString(o.DisplayName), o.Emoji)
	fmt.Fprintf(&b, "📝 <b>Описание:</b>\n%s\n\n", html.EscapeString(o.Description))
	if o.ExtraFacts != "" {
		fmt.Fprintf(&b, "🐾 <b>Интересные факты:</b>\n%s\n\n", html.EscapeString(o.ExtraFacts))
	}
	if o.GuardianInfo != "" {
		fmt.Fprintf(&b, "💝 <b>О программе опеки:</b>\n%s\n\n", html.EscapeString(o.GuardianInfo))
	}
	b.WriteString("🎯 <b>Хочешь узнать больше о программе опеки или поделиться результатом?</b>")
	return b.String()
}

func contactText(c domain.Contact) string {
	return fmt.Sprintf(`📞 <b>Свяжись с Московским зоопарком</b>

💌 <b>Email:</b> %s
📱 <b>Телефон:</b> %s

🌐 <b>Веб-сайт:</b> https://moscowzoo.ru

💬 <b>Сотрудники зоопарка готовы ответить на все твои вопросы о:</b>
• Программе опеки над животными
• Условиях участия
• Выборе животного для опеки
• Специальных мероприятиях

📋 <b>При обращении можешь упомянуть:</b>
• Результат прохождения викторины
• Интересующее тебя животное
• Желаемый уровень участия в программе

🕐 <b>Время работы:</b> Пн-Вс 9:00-18:00`, html.EscapeString(c.Email), html.EscapeString(c.Phone))
}

func shareText(o domain.OutcomeDefinition) string {
	name := html.EscapeString(o.DisplayName)
	return fmt.Sprintf(`📤 <b>Поделись своим результатом!</b>

%[1]s <b>Твое тотемное животное: %[2]s</b> %[1]s

📝 <b>Текст для публикации:</b>
"Я прошел викторину Московского зоопарка и узнал, что мое тотемное животное - %[2]s! %[1]s"`, o.Emoji, name)
}

// displayName is what we print on cards: first and last name when both are set.
func displayName(u User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
