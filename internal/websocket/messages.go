package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// MessageType defines the type discriminator of a WebSocket frame
type MessageType string

// Inbound frame types
const (
	MessageTypeChat         MessageType = "message"
	MessageTypeVoiceRequest MessageType = "voice_request"
	MessageTypeVoiceUpload  MessageType = "voice_message"
)

// Outbound frame types
const (
	MessageTypeSystem        MessageType = "system"
	MessageTypeAssistant     MessageType = "assistant"
	MessageTypeVoiceReply    MessageType = "voice_message_response"
	MessageTypeTranscription MessageType = "transcription"
	MessageTypeVoiceResponse MessageType = "voice_response"
	MessageTypeError         MessageType = "error"
)

// InboundKind is the closed classification of an inbound frame.
type InboundKind int

const (
	KindChat InboundKind = iota
	KindVoiceRequest
	KindVoiceUpload
	KindUnrecognized
)

// InboundFrame is one decoded message from a client. Which fields are
// meaningful depends on Kind.
type InboundFrame struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	Text        string `json:"text"`
	Voice       string `json:"voice"`
	AudioData   string `json:"audio_data"`
	MessageID   string `json:"messageId"`
	ClientAgent string `json:"client_agent"`
}

// DecodeInbound parses a raw text frame. A missing type field means a plain
// chat message; only unparseable JSON is an error.
func DecodeInbound(raw []byte) (*InboundFrame, error) {
	var frame InboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	if frame.Type == "" {
		frame.Type = string(MessageTypeChat)
	}
	return &frame, nil
}

// Kind classifies the frame for dispatch, with an explicit fallback for
// types this server does not speak.
func (f *InboundFrame) Kind() InboundKind {
	switch MessageType(f.Type) {
	case MessageTypeChat:
		return KindChat
	case MessageTypeVoiceRequest:
		return KindVoiceRequest
	case MessageTypeVoiceUpload:
		return KindVoiceUpload
	default:
		return KindUnrecognized
	}
}

// Agent returns the reported client agent, defaulting like the log schema
// expects.
func (f *InboundFrame) Agent() string {
	if f.ClientAgent == "" {
		return "unknown"
	}
	return f.ClientAgent
}

// BaseMessage defines the fields common to all outbound frames
type BaseMessage struct {
	Type      MessageType `json:"type"`
	Timestamp string      `json:"timestamp"`
}

func newBase(t MessageType) BaseMessage {
	return BaseMessage{Type: t, Timestamp: time.Now().Format(time.RFC3339)}
}

// SystemMessage carries notices; the welcome variant also announces the
// session id.
type SystemMessage struct {
	BaseMessage
	Message  string `json:"message"`
	ClientID string `json:"client_id,omitempty"`
}

// AssistantMessage is a completed reply. Type distinguishes typed chat from
// voice-originated replies.
type AssistantMessage struct {
	BaseMessage
	Message        string  `json:"message"`
	ResponseTimeMs float64 `json:"response_time_ms"`
}

// TranscriptionMessage echoes recognized speech back to its sender.
type TranscriptionMessage struct {
	BaseMessage
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// VoiceResponseMessage carries synthesized audio, base64 encoded.
type VoiceResponseMessage struct {
	BaseMessage
	AudioData string `json:"audio_data"`
	Text      string `json:"text"`
	Voice     string `json:"voice"`
	MessageID string `json:"messageId,omitempty"`
}

// ErrorMessage reports a failure for one frame. MessageID echoes the
// request's correlation id when the request carried one.
type ErrorMessage struct {
	BaseMessage
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

// CreateWelcomeMessage builds the notice sent right after connect
func CreateWelcomeMessage(clientID string) *SystemMessage {
	return &SystemMessage{
		BaseMessage: newBase(MessageTypeSystem),
		Message:     "Welcome to AI Voice Bot! I'm powered by Google's Gemini AI. How can I help you today?",
		ClientID:    clientID,
	}
}

// CreateSystemNotice builds a plain system notice
func CreateSystemNotice(message string) *SystemMessage {
	return &SystemMessage{
		BaseMessage: newBase(MessageTypeSystem),
		Message:     message,
	}
}

// CreateAssistantReply builds a reply frame of the given type
func CreateAssistantReply(replyType MessageType, message string, responseTimeMs float64) *AssistantMessage {
	return &AssistantMessage{
		BaseMessage:    newBase(replyType),
		Message:        message,
		ResponseTimeMs: responseTimeMs,
	}
}

// CreateTranscriptionEcho builds the recognized-text echo frame
func CreateTranscriptionEcho(text string, confidence float64) *TranscriptionMessage {
	return &TranscriptionMessage{
		BaseMessage: newBase(MessageTypeTranscription),
		Message:     text,
		Confidence:  confidence,
	}
}

// CreateVoiceResponse builds an audio payload frame
func CreateVoiceResponse(audioBase64, text, voice, messageID string) *VoiceResponseMessage {
	return &VoiceResponseMessage{
		BaseMessage: newBase(MessageTypeVoiceResponse),
		AudioData:   audioBase64,
		Text:        text,
		Voice:       voice,
		MessageID:   messageID,
	}
}

// CreateErrorMessage builds an error frame
func CreateErrorMessage(message, messageID string) *ErrorMessage {
	return &ErrorMessage{
		BaseMessage: newBase(MessageTypeError),
		Message:     message,
		MessageID:   messageID,
	}
}

// encodeFrame marshals an outbound frame. The frame structs only hold
// marshalable fields, so failures cannot happen in practice.
func encodeFrame(frame interface{}) []byte {
	payload, _ := json.Marshal(frame)
	return payload
}
