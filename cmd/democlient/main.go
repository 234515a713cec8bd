// Command democlient is a small interactive WebSocket client for talking to
// a running AI Voice Bot server from the terminal.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type outbound struct {
	Type        string `json:"type"`
	Message     string `json:"message,omitempty"`
	Text        string `json:"text,omitempty"`
	Voice       string `json:"voice,omitempty"`
	MessageID   string `json:"messageId,omitempty"`
	ClientAgent string `json:"client_agent,omitempty"`
}

type inbound struct {
	Type           string  `json:"type"`
	Message        string  `json:"message"`
	Text           string  `json:"text"`
	Voice          string  `json:"voice"`
	AudioData      string  `json:"audio_data"`
	ClientID       string  `json:"client_id"`
	ResponseTimeMs float64 `json:"response_time_ms"`
	Confidence     float64 `json:"confidence"`
}

func main() {
	addr := flag.String("addr", "localhost:8765", "server websocket address")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	go readLoop(conn)

	fmt.Println("Type a message and press enter. Commands:")
	fmt.Println("  /voice <text>   request synthesized audio")
	fmt.Println("  /quit           exit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "/quit" {
			return
		}

		frame := outbound{Type: "message", Message: line, ClientAgent: "democlient"}
		if rest, ok := strings.CutPrefix(line, "/voice "); ok {
			frame = outbound{Type: "voice_request", Text: rest, Voice: "Kore", ClientAgent: "democlient"}
		}

		payload, _ := json.Marshal(frame)
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Fatal("write:", err)
		}
	}
}

func readLoop(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			os.Exit(0)
		}

		var frame inbound
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Printf("unparseable frame: %s", message)
			continue
		}

		switch frame.Type {
		case "system":
			fmt.Printf("[system] %s\n", frame.Message)
			if frame.ClientID != "" {
				fmt.Printf("[system] session id: %s\n", frame.ClientID)
			}
		case "assistant", "voice_message_response":
			fmt.Printf("[assistant] %s (%.0fms)\n", frame.Message, frame.ResponseTimeMs)
		case "transcription":
			fmt.Printf("[heard] %s (confidence %.2f)\n", frame.Message, frame.Confidence)
		case "voice_response":
			fmt.Printf("[audio] %d base64 bytes for %q (voice %s)\n", len(frame.AudioData), frame.Text, frame.Voice)
		case "error":
			fmt.Printf("[error] %s\n", frame.Message)
		default:
			fmt.Printf("[%s] %s\n", frame.Type, message)
		}
	}
}
