package websocket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/hanifmaulana/aivoicebot/internal/chatlog"
	"github.com/hanifmaulana/aivoicebot/internal/flatten"
	"github.com/hanifmaulana/aivoicebot/usecase"
)

// AudioPlayer plays synthesized audio on the server host, implemented by
// playback.Player.
type AudioPlayer interface {
	Play(ctx context.Context, audioData []byte) error
}

// minTranscriptionConfidence is the acceptance threshold for voice uploads.
const minTranscriptionConfidence = 0.7

const (
	chatPreamble    = "You are a helpful AI assistant. Be concise, friendly, and helpful in your responses.\n\n"
	fallbackReply   = "I apologize, but I encountered an error while processing your request. Please try again."
	summarizeFailed = "Sorry, I couldn't summarize that right now. Please try again."
)

// command pairs a chat-text prefix with its handler. The table is checked in
// order before a chat message falls through to plain completion. Matching is
// case-sensitive and greedy: any text starting with the prefix is treated as
// that command.
type command struct {
	prefix string
	handle func(client *Client, frame *InboundFrame, argument string)
}

// Router parses each inbound frame, classifies it and invokes the matching
// handler. Nothing a single frame does may terminate the connection or touch
// another session.
type Router struct {
	hub      *Hub
	gateway  *usecase.Gateway
	voice    *usecase.VoiceService
	player   AudioPlayer
	chatLog  *chatlog.ChatLogger
	logger   *zap.Logger
	commands []command
}

// NewRouter wires the dispatcher over the session registry and the backend
// services.
func NewRouter(
	hub *Hub,
	gateway *usecase.Gateway,
	voice *usecase.VoiceService,
	player AudioPlayer,
	chatLog *chatlog.ChatLogger,
	logger *zap.Logger,
) *Router {
	r := &Router{
		hub:     hub,
		gateway: gateway,
		voice:   voice,
		player:  player,
		chatLog: chatLog,
		logger:  logger,
	}
	r.commands = []command{
		{prefix: "/summarize", handle: r.handleSummarize},
		{prefix: "/flatten", handle: r.handleFlatten},
		{prefix: "/play", handle: r.handlePlay},
	}
	return r
}

// ServeWS upgrades the HTTP request and starts the session's pumps.
func (r *Router) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		r.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return err
	}

	client := r.hub.OpenSession(conn, c.RealIP())

	go client.writePump()
	go client.readPump(r)

	return nil
}

// HandleFrame dispatches one inbound frame. Handler failures are contained
// here: the sender gets an error frame and the connection lives on.
func (r *Router) HandleFrame(client *Client, raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Handler panic contained",
				zap.String("sessionID", client.sessionID),
				zap.Any("panic", rec))
			client.Enqueue(encodeFrame(CreateErrorMessage("An error occurred while processing your message", "")))
		}
	}()

	frame, err := DecodeInbound(raw)
	if err != nil {
		// Malformed frames get an error reply but no activity record.
		client.Enqueue(encodeFrame(CreateErrorMessage("Invalid JSON format", "")))
		return
	}

	switch frame.Kind() {
	case KindChat:
		r.handleChat(client, frame)
	case KindVoiceRequest:
		r.handleVoiceRequest(client, frame)
	case KindVoiceUpload:
		r.handleVoiceUpload(client, frame)
	default:
		r.logger.Warn("Unknown message type",
			zap.String("sessionID", client.sessionID),
			zap.String("type", frame.Type))
		client.Enqueue(encodeFrame(CreateErrorMessage(
			fmt.Sprintf("Unknown message type: %s", frame.Type), frame.MessageID)))
	}
}

// handleChat routes chat text through the command table, falling through to
// plain completion. Blank input is ignored entirely: no reply, no record.
func (r *Router) handleChat(client *Client, frame *InboundFrame) {
	text := strings.TrimSpace(frame.Message)
	if text == "" {
		return
	}

	for _, cmd := range r.commands {
		if strings.HasPrefix(text, cmd.prefix) {
			argument := strings.TrimSpace(strings.TrimPrefix(text, cmd.prefix))
			cmd.handle(client, frame, argument)
			return
		}
	}

	r.completeChat(client, frame, text, MessageTypeAssistant, "chat")
}

// completeChat builds the prompt from recent history, calls the completion
// backend and replies. Backend failures turn into an apologetic reply for
// the client while the record keeps the real error.
func (r *Router) completeChat(client *Client, frame *InboundFrame, text string, replyType MessageType, recordType string) {
	start := time.Now()
	history := r.hub.RecentHistory(client.sessionID, HistoryWindow)
	prompt := buildPrompt(history, text)

	reply, err := r.gateway.Complete(context.Background(), prompt)
	status, errMessage := "success", ""
	if err != nil {
		r.logger.Error("Chat completion failed",
			zap.String("sessionID", client.sessionID),
			zap.Error(err))
		reply = fallbackReply
		status = "error"
		errMessage = err.Error()
	}
	elapsed := elapsedMs(start)

	r.hub.AppendTurn(client.sessionID, text, reply)
	client.Enqueue(encodeFrame(CreateAssistantReply(replyType, reply, elapsed)))

	r.chatLog.Append(chatlog.Record{
		SessionID:         client.sessionID,
		MessageType:       recordType,
		UserMessage:       text,
		AssistantResponse: reply,
		ResponseTimeMs:    elapsed,
		UserIP:            client.remoteAddr,
		MessageLength:     len(text),
		ErrorMessage:      errMessage,
		ClientAgent:       frame.Agent(),
		ProcessingStatus:  status,
	})
}

// handleSummarize runs the multi-call summarization pipeline. Any backend
// failure aborts the sequence; partial results are never sent.
func (r *Router) handleSummarize(client *Client, frame *InboundFrame, argument string) {
	if argument == "" {
		client.Enqueue(encodeFrame(CreateErrorMessage("No text provided to summarize", frame.MessageID)))
		return
	}

	start := time.Now()
	result, err := r.gateway.Summarize(context.Background(), argument)
	elapsed := elapsedMs(start)

	if err != nil {
		r.logger.Error("Summarization pipeline failed",
			zap.String("sessionID", client.sessionID),
			zap.Error(err))
		client.Enqueue(encodeFrame(CreateAssistantReply(MessageTypeAssistant, summarizeFailed, elapsed)))
		r.appendRecord(client, frame, "summarize", argument, "", elapsed, err.Error())
		return
	}

	reply := fmt.Sprintf("Sentiment: %s\n\nKey facts:\n%s\n\nSummary:\n%s",
		result.Sentiment, result.KeyFacts, result.Summary)
	client.Enqueue(encodeFrame(CreateAssistantReply(MessageTypeAssistant, reply, elapsed)))
	r.appendRecord(client, frame, "summarize", argument, reply, elapsed, "")
}

// handleFlatten parses the argument as a JSON object and returns DFS and BFS
// flattenings side by side. Bad input is reported inside a normal reply, not
// as a protocol-level error frame.
func (r *Router) handleFlatten(client *Client, frame *InboundFrame, argument string) {
	start := time.Now()

	if argument == "" {
		client.Enqueue(encodeFrame(CreateErrorMessage("No JSON provided to flatten", frame.MessageID)))
		return
	}

	parsed, err := flatten.Parse(argument)
	if err != nil {
		reply := fmt.Sprintf("Flatten error: %s", err.Error())
		client.Enqueue(encodeFrame(CreateAssistantReply(MessageTypeAssistant, reply, elapsedMs(start))))
		r.appendRecord(client, frame, "flatten", argument, reply, elapsedMs(start), err.Error())
		return
	}

	dfsJSON, _ := json.Marshal(flatten.DFS(parsed))
	bfsJSON, _ := json.Marshal(flatten.BFS(parsed))

	reply := fmt.Sprintf("Flatten results:\nDFS: %s\nBFS: %s", dfsJSON, bfsJSON)
	elapsed := elapsedMs(start)
	client.Enqueue(encodeFrame(CreateAssistantReply(MessageTypeAssistant, reply, elapsed)))
	r.appendRecord(client, frame, "flatten", argument, reply, elapsed, "")
}

// handleVoiceRequest synthesizes speech for the request text, consulting the
// shared cache first, and returns the framed audio with the caller's
// correlation id.
func (r *Router) handleVoiceRequest(client *Client, frame *InboundFrame) {
	text := strings.TrimSpace(frame.Text)
	voice := frame.Voice
	if voice == "" {
		voice = "Kore"
	}
	if text == "" {
		client.Enqueue(encodeFrame(CreateErrorMessage("No text provided for voice generation", frame.MessageID)))
		return
	}

	start := time.Now()
	wav, cached, err := r.voice.GenerateSpeech(context.Background(), text, voice)
	elapsed := elapsedMs(start)

	if err != nil {
		r.logger.Error("Voice generation failed",
			zap.String("sessionID", client.sessionID),
			zap.Error(err))
		client.Enqueue(encodeFrame(CreateErrorMessage("Failed to generate voice", frame.MessageID)))
		r.chatLog.Append(chatlog.Record{
			SessionID:         client.sessionID,
			MessageType:       "voice_request",
			AssistantResponse: text,
			ResponseTimeMs:    elapsed,
			UserIP:            client.remoteAddr,
			MessageLength:     len(text),
			VoiceName:         voice,
			ErrorMessage:      err.Error(),
			ClientAgent:       frame.Agent(),
			ProcessingStatus:  "error",
		})
		return
	}

	audioBase64 := base64.StdEncoding.EncodeToString(wav)
	client.Enqueue(encodeFrame(CreateVoiceResponse(audioBase64, text, voice, frame.MessageID)))

	r.logger.Info("Voice response sent",
		zap.String("sessionID", client.sessionID),
		zap.Bool("cached", cached),
		zap.Int("audioBytes", len(wav)))

	r.chatLog.Append(chatlog.Record{
		SessionID:         client.sessionID,
		MessageType:       "voice_request",
		AssistantResponse: text,
		ResponseTimeMs:    elapsed,
		UserIP:            client.remoteAddr,
		MessageLength:     len(text),
		VoiceGenerated:    true,
		VoiceName:         voice,
		ClientAgent:       frame.Agent(),
		ProcessingStatus:  "success",
	})
}

// handleVoiceUpload transcribes uploaded audio, rejects unclear speech, then
// re-enters the chat path with a voice-tagged reply type.
func (r *Router) handleVoiceUpload(client *Client, frame *InboundFrame) {
	if frame.AudioData == "" {
		client.Enqueue(encodeFrame(CreateErrorMessage("No audio data provided", frame.MessageID)))
		return
	}
	audioData, err := base64.StdEncoding.DecodeString(frame.AudioData)
	if err != nil {
		client.Enqueue(encodeFrame(CreateErrorMessage("Invalid audio payload", frame.MessageID)))
		return
	}

	transcription, err := r.gateway.Transcribe(context.Background(), audioData)
	if err != nil {
		r.logger.Error("Transcription failed",
			zap.String("sessionID", client.sessionID),
			zap.Error(err))
		client.Enqueue(encodeFrame(CreateErrorMessage("Failed to transcribe audio", frame.MessageID)))
		r.appendRecord(client, frame, "voice_message", "", "", 0, err.Error())
		return
	}

	if transcription.CleanedText == "" || transcription.Confidence < minTranscriptionConfidence {
		r.logger.Warn("Transcription rejected",
			zap.String("sessionID", client.sessionID),
			zap.Float64("confidence", transcription.Confidence))
		client.Enqueue(encodeFrame(CreateErrorMessage(
			"Could not understand the audio clearly. Please try again.", frame.MessageID)))
		r.appendRecord(client, frame, "voice_message", transcription.RawText, "", 0,
			fmt.Sprintf("low confidence transcription: %.2f", transcription.Confidence))
		return
	}

	client.Enqueue(encodeFrame(CreateTranscriptionEcho(transcription.CleanedText, transcription.Confidence)))
	r.completeChat(client, frame, transcription.CleanedText, MessageTypeVoiceReply, "voice_message")
}

// handlePlay synthesizes speech like a voice request and plays it on the
// server host instead of returning the audio.
func (r *Router) handlePlay(client *Client, frame *InboundFrame, argument string) {
	if argument == "" {
		client.Enqueue(encodeFrame(CreateErrorMessage("No text provided for playback", frame.MessageID)))
		return
	}

	start := time.Now()
	wav, _, err := r.voice.GenerateSpeech(context.Background(), argument, "Kore")
	if err != nil {
		r.logger.Error("Playback synthesis failed",
			zap.String("sessionID", client.sessionID),
			zap.Error(err))
		client.Enqueue(encodeFrame(CreateErrorMessage("Failed to generate audio for playback", frame.MessageID)))
		r.appendRecord(client, frame, "play", argument, "", elapsedMs(start), err.Error())
		return
	}

	if err := r.player.Play(context.Background(), wav); err != nil {
		client.Enqueue(encodeFrame(CreateErrorMessage("Failed to play audio on server", frame.MessageID)))
		r.appendRecord(client, frame, "play", argument, "", elapsedMs(start), err.Error())
		return
	}

	client.Enqueue(encodeFrame(CreateSystemNotice("Played audio on server")))
	r.appendRecord(client, frame, "play", argument, "", elapsedMs(start), "")
}

// appendRecord writes one activity record with the shared defaults filled in.
func (r *Router) appendRecord(client *Client, frame *InboundFrame, messageType, userMessage, response string, elapsed float64, errMessage string) {
	status := "success"
	if errMessage != "" {
		status = "error"
	}
	r.chatLog.Append(chatlog.Record{
		SessionID:         client.sessionID,
		MessageType:       messageType,
		UserMessage:       userMessage,
		AssistantResponse: response,
		ResponseTimeMs:    elapsed,
		UserIP:            client.remoteAddr,
		MessageLength:     len(userMessage),
		ErrorMessage:      errMessage,
		ClientAgent:       frame.Agent(),
		ProcessingStatus:  status,
	})
}

// buildPrompt concatenates the recent history and the new utterance in the
// fixed completion format.
func buildPrompt(history []Turn, userMessage string) string {
	var b strings.Builder
	b.WriteString(chatPreamble)
	for _, turn := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", turn.User, turn.Assistant)
	}
	if len(history) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", userMessage)
	return b.String()
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
