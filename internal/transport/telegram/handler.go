package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/pkg/logger"
)

// UpdateHandler turns Telegram updates into quiz flow calls and replies.
type UpdateHandler struct {
	client   *Client
	flow     *app.QuizFlow
	feedback *app.FeedbackService
	log      *logger.Logger
}

func NewUpdateHandler(client *Client, flow *app.QuizFlow, feedback *app.FeedbackService, log *logger.Logger) *UpdateHandler {
	return &UpdateHandler{
		client:   client,
		flow:     flow,
		feedback: feedback,
		log:      log.With("component", "UpdateHandler"),
	}
}

// Handle processes one update. Failures are logged and answered with a
// generic error message; they never propagate to the caller.
func (h *UpdateHandler) Handle(ctx context.Context, upd Update) {
	var (
		err    error
		chatID int64
	)
	switch {
	case upd.CallbackQuery != nil:
		if upd.CallbackQuery.Message != nil {
			chatID = upd.CallbackQuery.Message.Chat.ID
		}
		err = h.handleCallback(ctx, upd.CallbackQuery)
	case upd.Message != nil:
		chatID = upd.Message.Chat.ID
		err = h.handleMessage(ctx, upd.Message)
	default:
		return
	}
	if err == nil {
		return
	}

	h.log.Error("handle update failed", "updateId", upd.UpdateID, "error", err)
	if chatID == 0 {
		return
	}
	if _, sendErr := h.client.SendMessage(ctx, chatID, errorText, ParseModeHTML, nil); sendErr != nil {
		h.log.Warn("send error reply failed", "chatId", chatID, "error", sendErr)
	}
}

func (h *UpdateHandler) handleMessage(ctx context.Context, msg *Message) error {
	if msg.From == nil {
		return nil
	}
	user := *msg.From
	chatID := msg.Chat.ID

	cmd, ok := command(msg)
	if !ok {
		return h.onFeedback(ctx, user, chatID, msg.Text)
	}

	h.log.Info("command received", "userId", user.ID, "command", cmd)
	switch cmd {
	case "start", "restart":
		if _, err := h.flow.Start(ctx, user.ID, displayName(user)); err != nil {
			return err
		}
		_, err := h.client.SendMessage(ctx, chatID, welcomeText(user.FirstName, h.flow.Questions()), ParseModeHTML, StartMenuKeyboard())
		return err
	case "help":
		_, err := h.client.SendMessage(ctx, chatID, helpText, ParseModeHTML, BackKeyboard())
		return err
	case "current":
		reply, err := h.flow.Current(ctx, user.ID)
		if err != nil {
			return err
		}
		return h.sendReply(ctx, chatID, 0, reply)
	default:
		_, err := h.client.SendMessage(ctx, chatID, unknownCommandText, "", nil)
		return err
	}
}

func (h *UpdateHandler) onFeedback(ctx context.Context, user User, chatID int64, text string) error {
	fb, err := h.feedback.Submit(ctx, user.ID, text)
	if errors.Is(err, domain.ErrEmptyFeedback) {
		return nil
	}
	if err != nil {
		return err
	}
	h.log.Info("feedback received", "userId", user.ID, "feedbackId", fb.ID)
	_, err = h.client.SendMessage(ctx, chatID, feedbackThanksText, ParseModeHTML, FeedbackKeyboard())
	return err
}

func (h *UpdateHandler) handleCallback(ctx context.Context, cb *CallbackQuery) error {
	if err := h.client.AnswerCallbackQuery(ctx, cb.ID, "", false); err != nil {
		h.log.Warn("answer callback failed", "callbackId", cb.ID, "error", err)
	}

	var chatID, messageID int64
	if cb.Message != nil {
		chatID, messageID = cb.Message.Chat.ID, cb.Message.MessageID
	}
	if chatID == 0 {
		chatID = cb.From.ID
	}

	switch {
	case strings.HasPrefix(cb.Data, "answer_"):
		q, o, ok := parseAnswer(cb.Data)
		if !ok {
			return h.show(ctx, chatID, messageID, invalidActionText, "", nil)
		}
		reply, err := h.flow.Answer(ctx, cb.From.ID, q, o)
		if err != nil {
			return err
		}
		if err := h.sendReply(ctx, chatID, messageID, reply); err != nil {
			return err
		}
		if reply.Kind == app.ReplyOutcome {
			h.sendCard(ctx, chatID, cb.From.ID)
		}
		return nil
	case strings.HasPrefix(cb.Data, "menu_"):
		return h.onMenu(ctx, cb, chatID, messageID, strings.TrimPrefix(cb.Data, "menu_"))
	default:
		return h.client.AnswerCallbackQuery(ctx, cb.ID, "Неверные данные", true)
	}
}

func (h *UpdateHandler) onMenu(ctx context.Context, cb *CallbackQuery, chatID, messageID int64, action string) error {
	user := cb.From
	switch action {
	case actionStartQuiz:
		view, err := h.flow.Start(ctx, user.ID, displayName(user))
		if err != nil {
			return err
		}
		return h.show(ctx, chatID, messageID, questionText(view), ParseModeHTML, QuestionKeyboard(view))
	case actionBackToStart:
		if _, err := h.flow.Start(ctx, user.ID, displayName(user)); err != nil {
			return err
		}
		return h.show(ctx, chatID, messageID, welcomeText(user.FirstName, h.flow.Questions()), ParseModeHTML, StartMenuKeyboard())
	case actionGuardianship:
		return h.show(ctx, chatID, messageID, h.flow.Guardianship(), "", GuardianshipKeyboard())
	case actionContact:
		return h.show(ctx, chatID, messageID, contactText(h.flow.Contact()), ParseModeHTML, ContactKeyboard())
	case actionShareResult:
		return h.onShare(ctx, chatID, messageID, user.ID)
	default:
		h.log.Warn("unknown menu action", "action", action)
		return h.client.AnswerCallbackQuery(ctx, cb.ID, "Неизвестное действие: "+action, false)
	}
}

func (h *UpdateHandler) onShare(ctx context.Context, chatID, messageID, userID int64) error {
	res, err := h.flow.Share(ctx, userID)
	if res.Kind == app.ReplyNoResult {
		return h.show(ctx, chatID, messageID, noResultText, ParseModeHTML, ShareKeyboard())
	}
	if err != nil && res.Outcome.Key == "" {
		return err
	}
	if err != nil {
		// card is optional, the share text is enough
		h.log.Warn("share card unavailable", "userId", userID, "error", err)
		return h.show(ctx, chatID, messageID, shareText(res.Outcome), ParseModeHTML, ShareKeyboard())
	}
	_, err = h.client.SendPhoto(ctx, chatID, res.Artifact.Name, res.Artifact.Data, shareText(res.Outcome), ParseModeHTML, ShareKeyboard())
	return err
}

// sendCard posts the detailed result image after the result text. Failures
// only cost the picture.
func (h *UpdateHandler) sendCard(ctx context.Context, chatID, userID int64) {
	res, err := h.flow.ResultCard(ctx, userID)
	if err != nil || res.Kind != app.ReplyOutcome {
		h.log.Warn("result card unavailable", "userId", userID, "error", err)
		return
	}
	if _, err := h.client.SendPhoto(ctx, chatID, res.Artifact.Name, res.Artifact.Data, "", "", nil); err != nil {
		h.log.Warn("send result card failed", "userId", userID, "path", res.Path, "error", err)
	}
}

func (h *UpdateHandler) sendReply(ctx context.Context, chatID, messageID int64, reply app.Reply) error {
	switch reply.Kind {
	case app.ReplyQuestion:
		return h.show(ctx, chatID, messageID, questionText(reply.Question), ParseModeHTML, QuestionKeyboard(reply.Question))
	case app.ReplyOutcome:
		return h.show(ctx, chatID, messageID, resultText(reply.Result.Outcome), ParseModeHTML, ResultKeyboard())
	case app.ReplyNoResult:
		return h.show(ctx, chatID, messageID, noResultText, ParseModeHTML, StartMenuKeyboard())
	default:
		return h.show(ctx, chatID, messageID, invalidActionText, "", nil)
	}
}

// show edits the message the button belongs to, or sends a new one.
func (h *UpdateHandler) show(ctx context.Context, chatID, messageID int64, text, parseMode string, markup *InlineKeyboardMarkup) error {
	var rm interface{}
	if markup != nil {
		rm = markup
	}
	if messageID != 0 {
		return h.client.EditMessageText(ctx, chatID, messageID, text, parseMode, rm)
	}
	_, err := h.client.SendMessage(ctx, chatID, text, parseMode, rm)
	return err
}

// command returns the bot command at the start of msg without the leading
// slash or @botname suffix.
func command(msg *Message) (string, bool) {
	for _, e := range msg.Entities {
		if e.Type == "bot_command" && e.Offset == 0 && e.Length <= len(msg.Text) {
			cmdText := msg.Text[e.Offset : e.Offset+e.Length]
			cmdText = strings.Split(cmdText, "@")[0]
			return strings.TrimPrefix(cmdText, "/"), true
		}
	}
	return "", false
}

func parseAnswer(data string) (int, int, bool) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return 0, 0, false
	}
	q, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	o, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, false
	}
	return q, o, true
}
