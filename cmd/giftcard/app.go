package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/giftcard/audio"
	"github.com/lixenwraith/giftcard/card"
	"github.com/lixenwraith/giftcard/config"
	"github.com/lixenwraith/giftcard/constants"
	"github.com/lixenwraith/giftcard/content"
	"github.com/lixenwraith/giftcard/core"
	"github.com/lixenwraith/giftcard/engine"
	"github.com/lixenwraith/giftcard/engine/status"
	"github.com/lixenwraith/giftcard/input"
	"github.com/lixenwraith/giftcard/render"
)

// newScreen opens the terminal with mouse reporting on
func newScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

// openAudio starts the music player; without a device the card runs silent
func openAudio(cfg *config.Config, c *content.Content, logger *log.Logger) (*audio.Player, card.MediaHandle, card.EffectPlayer) {
	acfg := cfg.AudioConfig()
	if acfg.Music == "" {
		acfg.Music = c.Music
	}
	player := audio.NewPlayer(acfg, nil, logger)
	if err := player.Initialize(); err != nil {
		if errors.Is(err, audio.ErrDisabled) {
			logger.Info("audio disabled")
		} else {
			logger.Warn("audio unavailable, continuing without music", "err", err)
		}
		return player, card.NoMedia{}, nil
	}
	return player, player, player
}

type appOptions struct {
	ID      string
	Config  *config.Config
	Content *content.Content
	Media   card.MediaHandle
	Effects card.EffectPlayer
	Logger  *log.Logger
}

// app wires one session to a screen
// Only the loop goroutine touches the session, renderer and router
type app struct {
	screen   tcell.Screen
	session  *card.Session
	renderer *render.Renderer
	router   *input.Router
	gallery  *content.Gallery
	reg      *status.Registry
	logger   *log.Logger

	watchPath string
	reloads   chan *content.Content

	// crash restores the terminal and exits; the default is core.HandleCrash
	crash func(any)
}

func newApp(screen tcell.Screen, opts appOptions) (*app, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	cfg := opts.Config
	mc, err := cfg.MachineConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	reg := status.NewRegistry()
	sched := engine.NewScheduler(engine.NewMonotonicTimeProvider(), reg)
	session, err := card.NewSession(opts.ID, opts.Content, sched, card.Options{
		Machine:            mc,
		TypewriterInterval: cfg.Card.TypewriterInterval,
		Media:              opts.Media,
		Effects:            opts.Effects,
		Logger:             opts.Logger,
		Registry:           reg,
	})
	if err != nil {
		return nil, err
	}

	gallery := content.NewGallery(session.Content().Photos, opts.Logger)
	renderer := render.NewRenderer(screen, gallery, reg)

	a := &app{
		screen:   screen,
		session:  session,
		renderer: renderer,
		router:   input.NewRouter(keys, renderer),
		gallery:  gallery,
		reg:      reg,
		logger:   opts.Logger,
		reloads:  make(chan *content.Content, 1),
		crash:    core.HandleCrash,
	}
	if cfg.Card.Watch {
		if src := session.Content().Source; src != "" {
			a.watchPath = src
		} else {
			opts.Logger.Warn("watch ignored: the built-in script has no file")
		}
	}
	return a, nil
}

// run drives the card until quit or ctx is cancelled, then releases the screen
func (a *app) run(ctx context.Context) (err error) {
	core.SetCrashScreen(a.screen)
	defer core.SetCrashScreen(nil)
	defer func() {
		if r := recover(); r != nil {
			a.crash(r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, constants.EventChannelSize)

	g.Go(core.Guard(func() error { return a.poll(gctx, events) }))
	g.Go(core.Guard(func() error { return a.gallery.Preload(gctx) }))
	if a.watchPath != "" {
		g.Go(core.Guard(func() error { return a.watch(gctx) }))
	}

	started := time.Now()
	err = a.loop(gctx, g, events)

	cancel()
	a.session.Close()
	a.screen.Fini()
	if werr := g.Wait(); err == nil && werr != nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}

	a.logger.Info("card closed", append([]any{"elapsed", time.Since(started).Round(time.Millisecond)}, a.reg.KeyValues()...)...)
	return err
}

// poll forwards terminal events; PollEvent returns nil once the screen is finalized
func (a *app) poll(ctx context.Context, events chan<- tcell.Event) error {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}

// watch reloads the content file; a watcher that cannot start only costs the preview
func (a *app) watch(ctx context.Context) error {
	err := content.Watch(ctx, a.watchPath, a.logger, func(c *content.Content) {
		select {
		case a.reloads <- c:
		case <-ctx.Done():
		}
	})
	if err != nil {
		a.logger.Warn("content watcher failed", "path", a.watchPath, "err", err)
	}
	return nil
}

func (a *app) loop(ctx context.Context, g *errgroup.Group, events <-chan tcell.Event) error {
	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	a.frame()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			if !a.handle(ev) {
				return nil
			}

		case c := <-a.reloads:
			a.reload(ctx, g, c)

		case <-ticker.C:
			a.frame()
		}
	}
}

// handle applies one event and reports whether the card keeps running
func (a *app) handle(ev tcell.Event) bool {
	intent := a.router.Handle(ev)
	switch intent.Type {
	case input.IntentQuit:
		a.logger.Info("quit requested", "layer", a.session.Layer())
		return false
	case input.IntentToggleDiagnostics:
		a.renderer.ToggleDiagnostics()
	case input.IntentResize:
		a.screen.Sync()
	case input.IntentAction:
		a.session.Dispatch(intent.Action)
	}
	return true
}

func (a *app) frame() {
	a.session.Update()
	a.renderer.Frame(a.session)
}

// reload swaps in edited content and starts decoding its photos
func (a *app) reload(ctx context.Context, g *errgroup.Group, c *content.Content) {
	if err := a.session.Reload(c); err != nil {
		a.logger.Warn("reload rejected", "err", err)
		return
	}
	gallery := content.NewGallery(c.Photos, a.logger)
	a.gallery = gallery
	a.renderer.SetGallery(gallery)
	g.Go(core.Guard(func() error { return gallery.Preload(ctx) }))
}
