// Package chatlog persists one append-only CSV record per processed frame
// and answers the dashboard's recent/summary queries over the same file.
package chatlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// headers is the fixed column set. Every record fills every column, with an
// explicit empty value where nothing applies, so the file replays stably.
var headers = []string{
	"timestamp", "session_id", "message_type", "user_message", "assistant_response",
	"response_time_ms", "user_ip", "message_length", "voice_generated", "voice_voice_name",
	"error_message", "client_agent", "processing_status", "audio_filename",
}

// Record is one activity log entry.
type Record struct {
	Timestamp         time.Time
	SessionID         string
	MessageType       string
	UserMessage       string
	AssistantResponse string
	ResponseTimeMs    float64
	UserIP            string
	MessageLength     int
	VoiceGenerated    bool
	VoiceName         string
	ErrorMessage      string
	ClientAgent       string
	ProcessingStatus  string
	AudioFilename     string
}

func (r Record) row() []string {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	sessionID := r.SessionID
	if sessionID == "" {
		sessionID = "unknown"
	}
	messageType := r.MessageType
	if messageType == "" {
		messageType = "chat"
	}
	voiceGenerated := "False"
	if r.VoiceGenerated {
		voiceGenerated = "True"
	}
	return []string{
		ts.Format(time.RFC3339),
		sessionID,
		messageType,
		r.UserMessage,
		r.AssistantResponse,
		strconv.FormatFloat(r.ResponseTimeMs, 'f', 2, 64),
		r.UserIP,
		strconv.Itoa(r.MessageLength),
		voiceGenerated,
		r.VoiceName,
		r.ErrorMessage,
		r.ClientAgent,
		r.ProcessingStatus,
		r.AudioFilename,
	}
}

// Summary aggregates the whole log file.
type Summary struct {
	TotalMessages         int     `json:"total_messages"`
	UniqueSessions        int     `json:"unique_sessions"`
	AverageResponseTimeMs float64 `json:"average_response_time_ms"`
	VoiceRequests         int     `json:"voice_requests"`
	Errors                int     `json:"errors"`
	SuccessRate           float64 `json:"success_rate"`
}

// ChatLogger appends activity records to a CSV file. Appends are serialized
// with a mutex; each append is one self-contained O_APPEND write.
type ChatLogger struct {
	mu      sync.Mutex
	logFile string
	logger  *zap.Logger
}

// NewChatLogger opens (or creates, with a header row) the log file at path.
func NewChatLogger(path string, logger *zap.Logger) (*ChatLogger, error) {
	cl := &ChatLogger{logFile: path, logger: logger}
	if err := cl.ensureFile(); err != nil {
		return nil, err
	}
	return cl, nil
}

func (cl *ChatLogger) ensureFile() error {
	if _, err := os.Stat(cl.logFile); err == nil {
		return nil
	}
	f, err := os.OpenFile(cl.logFile, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write log header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Append writes one record. Logging failures are reported via zap only; a
// broken log must never take a handler down with it.
func (cl *ChatLogger) Append(record Record) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	f, err := os.OpenFile(cl.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		cl.logger.Error("Failed to open chat log for append", zap.Error(err))
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(record.row()); err != nil {
		cl.logger.Error("Failed to append chat log record", zap.Error(err))
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		cl.logger.Error("Failed to flush chat log record", zap.Error(err))
	}
}

// readRows returns every data row currently in the file.
func (cl *ChatLogger) readRows() ([][]string, error) {
	f, err := os.Open(cl.logFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Skip rows a crashed writer may have left behind
			continue
		}
		if first {
			first = false
			continue
		}
		// Pad rows written before columns were added
		for len(row) < len(headers) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Recent returns up to limit records, most recent first, as column maps.
func (cl *ChatLogger) Recent(limit int) ([]map[string]string, error) {
	rows, err := cl.readRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat log: %w", err)
	}

	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}

	logs := make([]map[string]string, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		entry := make(map[string]string, len(headers))
		for j, h := range headers {
			entry[h] = rows[i][j]
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

// Summarize aggregates message counts, latency, voice usage and error rate.
func (cl *ChatLogger) Summarize() (Summary, error) {
	rows, err := cl.readRows()
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read chat log: %w", err)
	}

	var summary Summary
	var totalResponseTime float64
	sessions := make(map[string]struct{})

	for _, row := range rows {
		summary.TotalMessages++
		if ms, err := strconv.ParseFloat(row[5], 64); err == nil {
			totalResponseTime += ms
		}
		sessions[row[1]] = struct{}{}
		if row[8] == "True" {
			summary.VoiceRequests++
		}
		if row[12] == "error" {
			summary.Errors++
		}
	}

	summary.UniqueSessions = len(sessions)
	if summary.TotalMessages > 0 {
		summary.AverageResponseTimeMs = roundTwo(totalResponseTime / float64(summary.TotalMessages))
		summary.SuccessRate = roundTwo(float64(summary.TotalMessages-summary.Errors) / float64(summary.TotalMessages) * 100)
	}
	return summary, nil
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clear truncates the log back to just the header row.
func (cl *ChatLogger) Clear() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	f, err := os.OpenFile(cl.logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to truncate log file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to rewrite log header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// ExportCSV returns the raw log file contents for download.
func (cl *ChatLogger) ExportCSV() ([]byte, error) {
	return os.ReadFile(cl.logFile)
}

// FilePath returns the absolute path of the log file.
func (cl *ChatLogger) FilePath() string {
	abs, err := filepath.Abs(cl.logFile)
	if err != nil {
		return cl.logFile
	}
	return abs
}

// Headers exposes the fixed column set for exporters and tests.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}
