package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/pkg/logger"
)

// WSHandler exposes the quiz flow over a websocket, one connection per user.
type WSHandler struct {
	flow     *app.QuizFlow
	log      *logger.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(flow *app.QuizFlow, log *logger.Logger) *WSHandler {
	return &WSHandler{
		flow: flow,
		log:  log.With("component", "WSHandler"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionIndex int `json:"questionIndex"`
	OptionIndex   int `json:"optionIndex"`
}

type readyPayload struct {
	UserID    int64 `json:"userId"`
	Questions int   `json:"questions"`
}

type outcomePayload struct {
	Outcome domain.OutcomeDefinition `json:"outcome"`
	Score   int                      `json:"score"`
	Scores  []domain.OutcomeScore    `json:"scores"`
}

type sharePayload struct {
	Outcome string `json:"outcome"`
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Image   []byte `json:"image"`
}

type textPayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

const (
	msgNoResult      = "no result yet, finish the quiz first"
	msgInvalidAction = "invalid action, send start to restart the quiz"
)

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	displayName := r.URL.Query().Get("name")
	if err != nil || displayName == "" {
		http.Error(w, "missing or invalid userId, or missing name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := func(typ string, payload any) bool {
		if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
			h.log.Warn("ws write error", "userId", userID, "error", err)
			return false
		}
		return true
	}
	fail := func(msg string) bool {
		return send("error", errorPayload{Message: msg})
	}

	if !send("ready", readyPayload{UserID: userID, Questions: h.flow.Questions()}) {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		ok := true
		switch inbound.Type {
		case "start":
			view, err := h.flow.Start(ctx, userID, displayName)
			if err != nil {
				ok = h.internal(fail, userID, err)
				break
			}
			ok = send("question", view)
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				ok = fail("invalid answer payload")
				break
			}
			reply, err := h.flow.Answer(ctx, userID, payload.QuestionIndex, payload.OptionIndex)
			if err != nil {
				ok = h.internal(fail, userID, err)
				break
			}
			ok = h.sendReply(send, fail, reply)
		case "current":
			reply, err := h.flow.Current(ctx, userID)
			if err != nil {
				ok = h.internal(fail, userID, err)
				break
			}
			ok = h.sendReply(send, fail, reply)
		case "share":
			res, err := h.flow.Share(ctx, userID)
			switch {
			case res.Kind == app.ReplyNoResult:
				ok = fail(msgNoResult)
			case err != nil:
				ok = h.internal(fail, userID, err)
			default:
				ok = send("share", sharePayload{Outcome: res.Outcome.Key, Name: res.Artifact.Name, Path: res.Path, Image: res.Artifact.Data})
			}
		case "guardianship":
			ok = send("guardianship", textPayload{Text: h.flow.Guardianship()})
		default:
			ok = fail("unsupported message type")
		}
		if !ok {
			return
		}
	}
}

func (h *WSHandler) sendReply(send func(string, any) bool, fail func(string) bool, reply app.Reply) bool {
	switch reply.Kind {
	case app.ReplyQuestion:
		return send("question", reply.Question)
	case app.ReplyOutcome:
		return send("outcome", outcomePayload{
			Outcome: reply.Result.Outcome,
			Score:   reply.Result.Score,
			Scores:  reply.Result.Scores,
		})
	case app.ReplyNoResult:
		return fail(msgNoResult)
	default:
		return fail(msgInvalidAction)
	}
}

func (h *WSHandler) internal(fail func(string) bool, userID int64, err error) bool {
	h.log.Error("ws request failed", "userId", userID, "error", err)
	return fail("something went wrong, try again")
}
