// Package integration holds the adapters between focustick and the host
// system, currently the external audio player used for phase-complete
// alerts.
package integration

import (
	"fmt"
	"os/exec"
	"runtime"
)

// EventLogger is the subset of the observability event log the audio
// player needs for recording playback failures.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// AudioPlayer plays alert sounds through the platform's command-line
// player. Playback is fire-and-forget: failures are written to the event
// log and never propagate to the caller, so a missing player or a bad
// sound file cannot abort a phase transition.
type AudioPlayer struct {
	log EventLogger
	// run is swapped out in tests to avoid spawning real processes.
	run func(name string, args ...string) error
}

// NewAudioPlayer creates an AudioPlayer. log may be nil, in which case
// failures are silently dropped.
func NewAudioPlayer(log EventLogger) *AudioPlayer {
	return &AudioPlayer{
		log: log,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// PlayAlert plays the sound file at soundPath in the background. An empty
// path is a no-op (no sound configured).
func (p *AudioPlayer) PlayAlert(soundPath string) {
	if soundPath == "" {
		return
	}
	go func() {
		name, args, err := playerCommand(runtime.GOOS, soundPath)
		if err == nil {
			err = p.run(name, args...)
		}
		if err != nil {
			p.logError(soundPath, err)
		}
	}()
}

// playerCommand picks the platform audio player for the given GOOS.
func playerCommand(goos, soundPath string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "afplay", []string{soundPath}, nil
	case "windows":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", soundPath)
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	case "linux":
		if _, err := exec.LookPath("paplay"); err == nil {
			return "paplay", []string{soundPath}, nil
		}
		if _, err := exec.LookPath("aplay"); err == nil {
			return "aplay", []string{soundPath}, nil
		}
		return "", nil, fmt.Errorf("no audio player found (tried paplay, aplay)")
	default:
		return "", nil, fmt.Errorf("audio playback not supported on %s", goos)
	}
}

func (p *AudioPlayer) logError(soundPath string, err error) {
	if p.log == nil {
		return
	}
	_ = p.log.LogEvent("audio.error", map[string]any{
		"sound": soundPath,
		"error": err.Error(),
	})
}
