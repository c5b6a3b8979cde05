package audio

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// playbackCommands are probed in order for a usable system audio player.
var playbackCommands = [][]string{
	{"afplay"},
	{"paplay"},
	{"aplay", "-q"},
	{"ffplay", "-autoexit", "-nodisp", "-loglevel", "quiet"},
}

// ExecOutput plays buffers by writing a WAV file and shelling out to the
// first available system player.
type ExecOutput struct {
	command []string
}

// NewExecOutput probes for a system audio player. Returns an error when no
// player is installed; callers degrade to narration-unavailable.
func NewExecOutput() (*ExecOutput, error) {
	for _, c := range playbackCommands {
		if _, err := exec.LookPath(c[0]); err == nil {
			return &ExecOutput{command: c}, nil
		}
	}
	return nil, fmt.Errorf("no system audio player found (tried afplay, paplay, aplay, ffplay)")
}

// Start writes the buffer to a temp WAV file and launches the player.
func (o *ExecOutput) Start(buf *Buffer, onDone func()) (func(), error) {
	f, err := os.CreateTemp("", "manyora-narration-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create temp wav: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(EncodeWAV(buf)); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("write temp wav: %w", err)
	}
	f.Close()

	args := append(append([]string{}, o.command[1:]...), path)
	cmd := exec.Command(o.command[0], args...)
	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("start %s: %w", o.command[0], err)
	}

	var once sync.Once
	stopped := false
	var mu sync.Mutex

	go func() {
		cmd.Wait()
		os.Remove(path)
		mu.Lock()
		wasStopped := stopped
		mu.Unlock()
		if !wasStopped {
			once.Do(onDone)
		}
	}()

	stop := func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
		if cmd.Process != nil {
			cmd.Process.Kill()
		}
	}
	return stop, nil
}
