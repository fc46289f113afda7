package sound

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate beep.SampleRate = 44100
	resampleQuality            = 4
)

// Player plays a cue.
type Player interface {
	Play(cue Cue) error
}

// Options configures a BeepPlayer.
type Options struct {
	// Volume is linear in [0, 1]; 0 mutes.
	Volume float64
	// Files maps a cue to a .wav or .ogg file. Missing or undecodable files
	// fall back to the built-in tone for that cue.
	Files map[Cue]string
}

// BeepPlayer decodes cue sounds once and mixes them through the speaker.
type BeepPlayer struct {
	mu      sync.Mutex
	logger  *slog.Logger
	ready   bool
	volume  float64
	tones   map[Cue]*beep.Buffer
	buffers map[Cue]*beep.Buffer
	output  func(beep.Streamer)
}

// NewBeepPlayer opens the speaker and loads the configured cue files. A
// player whose speaker failed to open still exists; Play then returns
// ErrAudioUnavailable.
func NewBeepPlayer(logger *slog.Logger, options Options) *BeepPlayer {
	return newBeepPlayer(logger, options, func() error {
		return speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	}, func(streamer beep.Streamer) {
		speaker.Play(streamer)
	})
}

func newBeepPlayer(logger *slog.Logger, options Options, open func() error, output func(beep.Streamer)) *BeepPlayer {
	if logger == nil {
		logger = slog.Default()
	}
	player := &BeepPlayer{
		logger: logger,
		output: output,
		tones:  defaultTones(),
	}
	if err := open(); err != nil {
		logger.Warn("audio disabled", "error", err)
	} else {
		player.ready = true
	}
	player.Configure(options)
	return player
}

// Configure replaces the volume and cue files.
func (player *BeepPlayer) Configure(options Options) {
	buffers := make(map[Cue]*beep.Buffer, len(options.Files))
	for cue, path := range options.Files {
		if path == "" || !cue.Valid() {
			continue
		}
		buffer, err := decodeFile(path)
		if err != nil {
			player.logger.Warn("using built-in tone", "cue", cue, "path", path, "error", err)
			continue
		}
		buffers[cue] = buffer
	}

	player.mu.Lock()
	player.volume = clampVolume(options.Volume)
	player.buffers = buffers
	player.mu.Unlock()
}

// Play starts cue and returns without waiting for it to finish.
func (player *BeepPlayer) Play(cue Cue) error {
	if !cue.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.ready {
		return ErrAudioUnavailable
	}
	if player.volume <= 0 {
		return nil
	}

	buffer, ok := player.buffers[cue]
	if !ok {
		buffer = player.tones[cue]
	}
	player.output(withVolume(buffer.Streamer(0, buffer.Len()), player.volume))
	return nil
}

// Preview plays cue from path at volume without changing the configuration.
// An empty path plays the built-in tone. Decode errors are returned.
func (player *BeepPlayer) Preview(cue Cue, path string, volume float64) error {
	if !cue.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}
	buffer := player.tones[cue]
	if path != "" {
		decoded, err := decodeFile(path)
		if err != nil {
			return err
		}
		buffer = decoded
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.ready {
		return ErrAudioUnavailable
	}
	if volume = clampVolume(volume); volume <= 0 {
		return nil
	}
	player.output(withVolume(buffer.Streamer(0, buffer.Len()), volume))
	return nil
}

// HasCustomSound reports whether cue is served from a user file.
func (player *BeepPlayer) HasCustomSound(cue Cue) bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	_, ok := player.buffers[cue]
	return ok
}

func withVolume(streamer beep.Streamer, volume float64) beep.Streamer {
	if volume >= 1 {
		return streamer
	}
	return &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   math.Log2(volume),
	}
}

func clampVolume(volume float64) float64 {
	return math.Max(0, math.Min(volume, 1))
}

func decodeFile(path string) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(file)
	case ".ogg":
		streamer, format, err = vorbis.Decode(file)
	default:
		return nil, fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer)
	}
	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(source)
	if buffer.Len() == 0 {
		return nil, fmt.Errorf("decode %s: no audio", filepath.Base(path))
	}
	return buffer, nil
}
