package sound

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

type note struct {
	freq float64
	dur  time.Duration
}

var toneSheet = map[Cue][]note{
	CuePrep:     {{660, 120 * time.Millisecond}},
	CueWork:     {{880, 150 * time.Millisecond}, {0, 60 * time.Millisecond}, {880, 150 * time.Millisecond}},
	CueRest:     {{523, 300 * time.Millisecond}},
	CueCooldown: {{440, 200 * time.Millisecond}, {0, 60 * time.Millisecond}, {330, 300 * time.Millisecond}},
	CueFinish: {
		{523, 150 * time.Millisecond}, {0, 40 * time.Millisecond},
		{659, 150 * time.Millisecond}, {0, 40 * time.Millisecond},
		{784, 400 * time.Millisecond},
	},
}

func defaultTones() map[Cue]*beep.Buffer {
	tones := make(map[Cue]*beep.Buffer, len(toneSheet))
	for cue, notes := range toneSheet {
		tones[cue] = renderNotes(notes)
	}
	return tones
}

func renderNotes(notes []note) *beep.Buffer {
	buffer := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	for _, n := range notes {
		samples := sampleRate.N(n.dur)
		if n.freq <= 0 {
			buffer.Append(beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			buffer.Append(beep.Silence(samples))
			continue
		}
		buffer.Append(beep.Take(samples, tone))
	}
	return buffer
}
