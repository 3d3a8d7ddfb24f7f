//go:build !windows

package exec

import (
	"context"
	"os"
	osexec "os/exec"
	"testing"
	"time"
)

func shellPlayer(t *testing.T, script string) *Player {
	t.Helper()
	if _, err := osexec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return &Player{Command: []string{"sh", "-c", script}, TempDir: t.TempDir()}
}

func TestPlayer_PlayReportsEnd(t *testing.T) {
	p := shellPlayer(t, "exit 0")
	h, err := p.Load(context.Background(), []byte("mp3"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer h.Release()

	ended := make(chan struct{})
	if err := h.Play(func() { close(ended) }); err != nil {
		t.Fatalf("Play: %v", err)
	}
	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("onEnded not called")
	}
}

func TestPlayer_StopSuppressesEnd(t *testing.T) {
	p := shellPlayer(t, "sleep 5")
	h, err := p.Load(context.Background(), []byte("mp3"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	ended := make(chan struct{}, 1)
	if err := h.Play(func() { ended <- struct{}{} }); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if err := h.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if err := h.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if err := h.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case <-ended:
		t.Fatal("onEnded called after Stop")
	case <-time.After(200 * time.Millisecond):
	}
	if err := h.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestPlayer_ReleaseRemovesFileOnce(t *testing.T) {
	p := shellPlayer(t, "exit 0")
	h, err := p.Load(context.Background(), []byte("mp3"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	path := h.(*handle).path
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("audio file missing: %v", err)
	}

	if err := h.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("audio file still present: %v", err)
	}
	if err := h.Play(nil); err != ErrReleased {
		t.Errorf("Play after Release = %v, want ErrReleased", err)
	}
}

func TestNewPlayer_DefaultCommand(t *testing.T) {
	if got := NewPlayer(nil).Command; got[0] != "mpg123" {
		t.Errorf("Command = %v", got)
	}
}
