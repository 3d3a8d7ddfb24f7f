// ABOUTME: Audio player that writes clips to temp files and plays them with an external command
// ABOUTME: Used by the reader CLI; pause and resume suspend the player process

package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"yomu-news-api/core/playback"
)

// ErrReleased is returned when a released handle is used
var ErrReleased = errors.New("audio handle released")

// DefaultCommand plays MP3 files quietly
var DefaultCommand = []string{"mpg123", "-q"}

// Player implements playback.Player. The clip path is appended to Command.
type Player struct {
	Command []string
	TempDir string
}

// NewPlayer creates a player for command, falling back to DefaultCommand
func NewPlayer(command []string) *Player {
	if len(command) == 0 {
		command = DefaultCommand
	}
	return &Player{Command: command}
}

// Load writes audio to a temp file
func (p *Player) Load(ctx context.Context, audio []byte) (playback.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.Command) == 0 {
		return nil, errors.New("no player command configured")
	}
	f, err := os.CreateTemp(p.TempDir, "yomu-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("create audio file: %w", err)
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("write audio file: %w", err)
	}
	return &handle{command: p.Command, path: f.Name()}, nil
}

type handle struct {
	command []string
	path    string

	mu       sync.Mutex
	cmd      *exec.Cmd
	run      int
	released bool
}

func (h *handle) Play(onEnded func()) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return ErrReleased
	}
	h.stopLocked()

	args := append(append([]string(nil), h.command[1:]...), h.path)
	cmd := exec.Command(h.command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start player: %w", err)
	}
	h.run++
	run := h.run
	h.cmd = cmd

	go func() {
		err := cmd.Wait()
		h.mu.Lock()
		current := h.run == run && !h.released
		if current {
			h.cmd = nil
		}
		h.mu.Unlock()
		if current && err == nil && onEnded != nil {
			onEnded()
		}
	}()
	return nil
}

func (h *handle) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd == nil {
		return nil
	}
	return suspend(h.cmd.Process)
}

func (h *handle) Resume() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd == nil {
		return nil
	}
	return resume(h.cmd.Process)
}

func (h *handle) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
	return nil
}

func (h *handle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil
	}
	h.stopLocked()
	h.released = true
	if err := os.Remove(h.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// stopLocked kills the running process; its Wait goroutine sees a newer run and stays silent
func (h *handle) stopLocked() {
	h.run++
	if h.cmd == nil {
		return
	}
	_ = resume(h.cmd.Process)
	_ = h.cmd.Process.Kill()
	h.cmd = nil
}
