// Package animation drives short colour animations for the timer display.
package animation

import (
	"context"
	"image/color"
	"sync"
	"time"
)

// Config contains animation timing values.
type Config struct {
	// Flash is shown on every phase change: Blinks on/off pulses of the
	// highlight colour, then a fade back to the phase colour.
	Blinks    int
	BlinkOn   time.Duration
	BlinkOff  time.Duration
	FadeSteps int
	FadeStep  time.Duration

	// CelebrateStep is the time each palette colour stays on screen after
	// the session finishes; CelebrateRounds is how often the palette repeats.
	CelebrateStep   time.Duration
	CelebrateRounds int
}

// Engine paints background colours from a goroutine. Starting a new
// animation cancels the previous one.
type Engine struct {
	mu     sync.Mutex
	config Config
	paint  func(color.Color)
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a new animation engine. paint is called from the animation
// goroutine; UI code must marshal it onto the main thread.
func New(config Config, paint func(color.Color)) *Engine {
	return &Engine{
		config: config,
		paint:  paint,
	}
}

// Flash blinks highlight over base and settles on base.
func (engine *Engine) Flash(ctx context.Context, base, highlight color.Color) {
	engine.start(ctx, func(runCtx context.Context) {
		for blink := 0; blink < engine.config.Blinks; blink++ {
			engine.paint(highlight)
			if !sleepWithContext(runCtx, engine.config.BlinkOn) {
				return
			}
			engine.paint(base)
			if !sleepWithContext(runCtx, engine.config.BlinkOff) {
				return
			}
		}
		engine.paint(highlight)
		for step := 1; step <= engine.config.FadeSteps; step++ {
			if !sleepWithContext(runCtx, engine.config.FadeStep) {
				return
			}
			engine.paint(Blend(highlight, base, float64(step)/float64(engine.config.FadeSteps)))
		}
		engine.paint(base)
	})
}

// Celebrate walks palette CelebrateRounds times and settles on its first
// colour. Without a step duration only the first colour is painted.
func (engine *Engine) Celebrate(ctx context.Context, palette []color.Color) {
	if len(palette) == 0 {
		return
	}
	rounds := engine.config.CelebrateRounds
	if rounds < 1 {
		rounds = 1
	}
	engine.start(ctx, func(runCtx context.Context) {
		if engine.config.CelebrateStep <= 0 {
			engine.paint(palette[0])
			return
		}
		for step := 0; step < rounds*len(palette); step++ {
			engine.paint(palette[step%len(palette)])
			if !sleepWithContext(runCtx, engine.config.CelebrateStep) {
				return
			}
		}
		engine.paint(palette[0])
	})
}

// Stop terminates any active animation and waits for it to exit.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Wait blocks until the current animation ends on its own or is stopped.
func (engine *Engine) Wait() {
	engine.mu.Lock()
	done := engine.done
	engine.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

// Blend mixes from and to; t=0 is from and t=1 is to.
func Blend(from, to color.Color, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	a := color.NRGBAModel.Convert(from).(color.NRGBA)
	b := color.NRGBAModel.Convert(to).(color.NRGBA)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
