// Package player plays rendered WAV audio through the operating system's
// audio command: aplay on Linux, afplay on macOS, PowerShell on Windows.
package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/james-see/muco/pkg/logger"
)

// ErrUnsupportedPlatform is returned when no playback command is known
var ErrUnsupportedPlatform = errors.New("no audio player for this platform")

// Player runs an external command to play WAV files
type Player struct {
	command string
	args    []string
	tempDir string
}

// New returns a player for the current platform. A non-empty override
// replaces the platform command; it may carry its own arguments, and the
// file path is appended last.
func New(override string) (*Player, error) {
	return newForOS(runtime.GOOS, override)
}

func newForOS(goos, override string) (*Player, error) {
	if fields := strings.Fields(override); len(fields) > 0 {
		return &Player{command: fields[0], args: fields[1:], tempDir: os.TempDir()}, nil
	}
	switch goos {
	case "linux":
		return &Player{command: "aplay", args: []string{"-q"}, tempDir: os.TempDir()}, nil
	case "darwin":
		return &Player{command: "afplay", tempDir: os.TempDir()}, nil
	case "windows":
		return &Player{command: "powershell", args: []string{"-NoProfile", "-Command"}, tempDir: os.TempDir()}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}

// Command returns the program and arguments used to play path
func (p *Player) Command(path string) (string, []string) {
	args := append([]string(nil), p.args...)
	if p.command == "powershell" {
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", strings.ReplaceAll(path, "'", "''"))
		return p.command, append(args, script)
	}
	return p.command, append(args, path)
}

// PlayFile plays a WAV file and blocks until playback ends or ctx is done
func (p *Player) PlayFile(ctx context.Context, path string) error {
	name, args := p.Command(path)
	cmd := exec.CommandContext(ctx, name, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to play %s with %s: %w: %s", path, name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Play writes WAV data to a temporary file, plays it and removes the file
func (p *Player) Play(ctx context.Context, wavData []byte) error {
	path := filepath.Join(p.tempDir, "muco-"+uuid.New().String()+".wav")
	if err := os.WriteFile(path, wavData, 0600); err != nil {
		return fmt.Errorf("failed to write temporary audio file: %w", err)
	}
	defer os.Remove(path)

	logger.Debug("Playing audio", logger.Fields{"path": path, "bytes": len(wavData), "command": p.command})
	return p.PlayFile(ctx, path)
}
