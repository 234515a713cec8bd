// Package playback plays synthesized audio on the server host itself,
// used by the /play chat command.
package playback

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"go.uber.org/zap"
)

// Player hands audio bytes to an out-of-process player binary.
type Player struct {
	command string
	args    []string
	logger  *zap.Logger
}

// NewPlayer creates a Player using ffplay, which must be installed on the
// server (part of the ffmpeg suite).
func NewPlayer(logger *zap.Logger) *Player {
	return &Player{
		command: "ffplay",
		args:    []string{"-nodisp", "-autoexit", "-"},
		logger:  logger,
	}
}

// Play pipes audioData to the player's stdin and waits for it to finish.
func (p *Player) Play(ctx context.Context, audioData []byte) error {
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Stdin = bytes.NewReader(audioData)

	if err := cmd.Run(); err != nil {
		p.logger.Error("Server-side playback failed",
			zap.String("command", p.command),
			zap.Error(err))
		return fmt.Errorf("playback with %s failed: %w", p.command, err)
	}

	p.logger.Info("Played audio on server", zap.Int("bytes", len(audioData)))
	return nil
}
