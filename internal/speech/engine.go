// Package speech dispatches text to an ordered chain of TTS engines. The
// first engine that succeeds wins; every failure is logged and the next
// engine is tried. Nothing in here is fatal to the caller.
package speech

import "context"

// Options carries per-utterance synthesis parameters. Engines use the
// fields they understand and ignore the rest.
type Options struct {
	// Voice is an Edge TTS voice identifier (e.g. "en-US-AriaNeural").
	Voice string
	// Rate and Volume use Edge TTS percentage syntax ("+10%").
	Rate   string
	Volume string
	// SAPIRate is the System.Speech rate (-10 to 10).
	SAPIRate int
	// EspeakRate is words per minute.
	EspeakRate int
}

// Engine is one synthesis capability in the fallback chain.
type Engine interface {
	Name() string
	// Available reports whether the engine can run at all (binary on
	// PATH, API key set). Unavailable engines are skipped silently.
	Available() bool
	// Speak synthesizes and plays text, blocking until playback is done.
	Speak(ctx context.Context, text string, opts Options) error
}
