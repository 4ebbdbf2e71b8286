package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/blacktop/talkback/internal/audio"
	"github.com/blacktop/talkback/internal/config"
	"github.com/blacktop/talkback/internal/platform"
)

// Dispatcher runs text through the engine fallback chain.
type Dispatcher struct {
	cfg     *config.Config
	engines []Engine
	offline []Engine // low-latency subset used for announcements
}

// New builds a dispatcher with the default chain for the environment:
// edge first, then the cloud engines that have credentials, then SAPI
// (when fallback_to_sapi and Windows interop is present), then espeak.
// cfg.Engines overrides the ordering when set.
func New(cfg *config.Config, info platform.Info) *Dispatcher {
	player := audio.NewPlayer(info)
	tempDir := info.SharedTempDir()

	available := map[string]Engine{
		"edge":   &EdgeEngine{Command: cfg.EdgeCommand, TempDir: tempDir, Player: player},
		"openai": &OpenAIEngine{Voice: cfg.OpenAIVoice, TempDir: tempDir, Player: player},
		"google": &GoogleEngine{Voice: cfg.GoogleVoice, TempDir: tempDir, Player: player},
		"sapi":   &SAPIEngine{},
		"espeak": &EspeakEngine{},
	}

	var order []string
	if len(cfg.Engines) > 0 {
		order = cfg.Engines
	} else {
		order = []string{"edge", "openai", "google"}
		if cfg.FallbackToSAPI && info.WindowsInterop() {
			order = append(order, "sapi")
		}
		if info.Kind != platform.KindWindows {
			order = append(order, "espeak")
		}
	}

	var engines []Engine
	for _, name := range order {
		engine, ok := available[name]
		if !ok {
			log.Warn("Unknown engine in config, skipping", "engine", name)
			continue
		}
		engines = append(engines, engine)
	}

	var offline []Engine
	if cfg.FallbackToSAPI && info.WindowsInterop() {
		offline = append(offline, &SAPIEngine{})
	}
	if info.Kind != platform.KindWindows {
		offline = append(offline, &EspeakEngine{})
	}

	return &Dispatcher{cfg: cfg, engines: engines, offline: offline}
}

// NewWithEngines builds a dispatcher over an explicit chain. Used by tests
// and anywhere the environment-derived chain isn't wanted.
func NewWithEngines(cfg *config.Config, engines []Engine) *Dispatcher {
	return &Dispatcher{cfg: cfg, engines: engines, offline: engines}
}

// Speak cleans, truncates, and dispatches text down the chain. Disabled
// config or empty post-cleaning text is a successful no-op. The returned
// error is non-nil only when every engine failed or none was available;
// callers at hook boundaries log it and exit zero regardless.
func (d *Dispatcher) Speak(ctx context.Context, text string) error {
	if !d.cfg.Enabled {
		log.Debug("Speech disabled in config")
		return nil
	}

	text = Clean(text)
	if text == "" {
		return nil
	}
	text = Truncate(text, d.cfg.MaxSpeakLength)

	if d.cfg.SequentialSpeech {
		release, err := acquireSpeechLock(ctx)
		if err != nil {
			log.Warn("Could not acquire speech lock, speaking anyway", "error", err)
		} else {
			defer release()
		}
	}

	opts := Options{
		Voice:      d.cfg.Voice,
		Rate:       d.cfg.Rate,
		Volume:     d.cfg.Volume,
		SAPIRate:   2, // slightly faster than default
		EspeakRate: 175,
	}
	return d.dispatch(ctx, d.engines, text, opts)
}

// Announce speaks a short status line through the offline engines only,
// since their startup latency is far lower than neural synthesis. Falls
// back to the full chain when no offline engine exists.
func (d *Dispatcher) Announce(ctx context.Context, text string) error {
	if !d.cfg.Enabled {
		return nil
	}
	if text == "" {
		return nil
	}

	opts := Options{
		Voice:      d.cfg.Voice,
		Rate:       d.cfg.Rate,
		Volume:     d.cfg.Volume,
		SAPIRate:   3,
		EspeakRate: 200,
	}
	engines := d.offline
	if len(engines) == 0 {
		engines = d.engines
	}
	return d.dispatch(ctx, engines, text, opts)
}

func (d *Dispatcher) dispatch(ctx context.Context, engines []Engine, text string, opts Options) error {
	var errs []error
	for _, engine := range engines {
		if !engine.Available() {
			log.Debug("Engine unavailable, skipping", "engine", engine.Name())
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug("Trying engine", "engine", engine.Name(), "chars", len(text))
		if err := engine.Speak(ctx, text, opts); err != nil {
			log.Warn("Engine failed, falling through", "engine", engine.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", engine.Name(), err))
			continue
		}
		log.Debug("Spoke successfully", "engine", engine.Name())
		return nil
	}
	if len(errs) == 0 {
		return errors.New("no speech engine available")
	}
	return fmt.Errorf("all speech engines failed: %w", errors.Join(errs...))
}
