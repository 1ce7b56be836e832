// Package sound plays the alarm sound by shelling out to the platform
// audio player. A missing sound file or player degrades to silence; the
// visual notification still occurs.
package sound

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
)

// Player locates and plays a single alarm sound file.
type Player struct {
	path string
	log  *zap.Logger
}

// NewPlayer resolves the sound file once: the configured path first, then
// a few conventional locations. An unresolved path yields a silent player.
func NewPlayer(configured string, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	return &Player{path: locate(configured), log: log}
}

func locate(configured string) string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		configured,
		"alarm.wav",
		"sound.wav",
		filepath.Join(home, "Documents", "glint", "alarm.wav"),
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Enabled reports whether a playable sound file was found.
func (p *Player) Enabled() bool {
	return p.path != ""
}

// Play starts one playback without waiting for it to finish. Failures are
// logged and swallowed.
func (p *Player) Play() {
	if p.path == "" {
		return
	}
	name, args := playerCommand(runtime.GOOS, p.path)
	if name == "" {
		return
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		p.log.Warn("starting audio player", zap.Error(err))
	}
}

// playerCommand picks the platform player binary. Returns an empty name
// when none is available on PATH.
func playerCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "afplay", []string{path}
	case "windows":
		script := "(New-Object Media.SoundPlayer '" + path + "').PlaySync()"
		return "powershell", []string{"-NoProfile", "-Command", script}
	default:
		for _, name := range []string{"paplay", "aplay"} {
			if _, err := exec.LookPath(name); err == nil {
				return name, []string{path}
			}
		}
		return "", nil
	}
}
