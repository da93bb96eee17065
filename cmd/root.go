package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"atelier/internal/catalog"
	"atelier/internal/config"
	"atelier/internal/eventbus"
	"atelier/internal/logging"
	"atelier/internal/ui"
)

var (
	cfgFile       string
	dataDir       string
	seedFile      string
	reducedMotion bool
	coarsePointer bool
	verbose       bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "A terminal gallery of paintings, drawings and built work",
	Long: `Atelier presents an artist's catalogue as a scrolling page with a
gesture-driven gallery: scroll the gallery into view and the wheel, a mouse
drag or the arrow keys move one work at a time until you scroll past the
first or last piece.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogPath(), cfg.Log.Level, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runGallery,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "catalogue directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&seedFile, "seed", "", "YAML seed file to import and watch (overrides config)")
	rootCmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "jump instead of animating scrolls")
	rootCmd.Flags().BoolVar(&coarsePointer, "coarse", false, "tune gestures for touchpads and touch screens")
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		c.Catalog.DataDir = dataDir
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		c.Catalog.Seed = seedFile
	}
	if flags.Lookup("reduced-motion") != nil && flags.Changed("reduced-motion") {
		c.Display.ReducedMotion = reducedMotion
	}
	if flags.Lookup("coarse") != nil && flags.Changed("coarse") {
		c.Display.CoarsePointer = coarsePointer
	}
	return c, c.Validate()
}

func runGallery(cmd *cobra.Command, args []string) error {
	store, err := catalog.Init(cfg.Catalog.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := eventbus.New(logger)
	defer bus.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	watcher, err := syncSeed(ctx, store, bus)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	model := ui.NewModel(ui.Options{Config: cfg, Source: store, Bus: bus, Logger: logger})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx))
	model.SetProgram(p)

	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	defer bus.Subscribe(eventbus.EventCatalogChanged, forward)()
	defer bus.Subscribe(eventbus.EventError, forward)()
	defer subscribeActivity(bus, logger)()

	if watcher != nil {
		g.Go(func() error { return watcher.Run(gctx) })
	}
	g.Go(func() error {
		defer cancel()
		logger.Info("starting UI")
		_, err := p.Run()
		model.Close()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("running gallery: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}

// syncSeed imports the configured seed file. With watching enabled it
// returns a watcher for the caller to run.
func syncSeed(ctx context.Context, store *catalog.Store, bus eventbus.EventBus) (*catalog.Watcher, error) {
	seed := cfg.Catalog.Seed
	if seed == "" {
		return nil, nil
	}
	if !cfg.Catalog.Watch {
		artworks, err := catalog.LoadSeed(seed)
		if err != nil {
			return nil, err
		}
		_, err = catalog.Import(ctx, store, artworks, true, nil)
		return nil, err
	}

	w, err := catalog.NewWatcher(seed, store, bus, catalog.DefaultDebounce, logger)
	if err != nil {
		return nil, err
	}
	if _, err := w.Reload(ctx); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("importing seed: %w", err)
	}
	return w, nil
}

// subscribeActivity logs carousel activity. It returns the unsubscribe func.
func subscribeActivity(bus eventbus.EventBus, log *zap.Logger) func() {
	log = log.Named("activity")
	handler := func(e eventbus.DomainEvent) {
		switch ev := e.(type) {
		case eventbus.SlideChangedEvent:
			log.Debug("slide changed", zap.Int("from", ev.OldIndex), zap.Int("to", ev.NewIndex), zap.String("id", ev.SlideID))
		case eventbus.SectionExitedEvent:
			log.Info("left gallery", zap.String("direction", ev.Direction))
		case eventbus.CarouselActivatedEvent:
			log.Info("gallery active", zap.Int("index", ev.Index))
		case eventbus.CarouselDeactivatedEvent:
			log.Info("gallery released", zap.Int("index", ev.Index))
		case eventbus.SlidesLoadedEvent:
			log.Info("slides loaded", zap.Int("count", ev.Count))
		}
	}
	var unsubs []func()
	for _, t := range []eventbus.EventType{
		eventbus.EventSlideChanged,
		eventbus.EventSectionExited,
		eventbus.EventCarouselActivated,
		eventbus.EventCarouselDeactivated,
		eventbus.EventSlidesLoaded,
	} {
		unsubs = append(unsubs, bus.Subscribe(t, handler))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
