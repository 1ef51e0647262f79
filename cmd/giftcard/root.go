package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/giftcard/config"
	"github.com/lixenwraith/giftcard/content"
)

// rootOptions holds the flags shared by the card and print commands
type rootOptions struct {
	configPath  string
	contentPath string
	variant     string
	logFile     string
	watch       bool
	noAudio     bool
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "giftcard",
		Short: "A Father's Day greeting card for the terminal",
		Long: `giftcard unwraps a gift box, types out a letter, shows a few old photos and
ends on a blessing, with a lullaby playing in the background.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runCard(ctx, cfg)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("giftcard %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	opts.bindFlags(root)

	root.AddCommand(newPrintCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// bindFlags registers the persistent and card-only flags on cmd
func (o *rootOptions) bindFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "configuration file (default ./"+config.DefaultFile+" when present)")
	pf.StringVar(&o.contentPath, "content", "", "card script YAML (default built-in script)")
	pf.StringVar(&o.variant, "variant", "", "choreography: enhanced or baseline")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	f := cmd.Flags()
	f.BoolVar(&o.watch, "watch", false, "reload the content file when it changes")
	f.BoolVar(&o.noAudio, "no-audio", false, "disable the music")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file (default discarded)")
}

// load reads the configuration and lays the flags that were set over it
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.Card.Content = o.contentPath
	}
	if flags.Changed("variant") {
		cfg.Card.Variant = o.variant
	}
	if flags.Changed("watch") {
		cfg.Card.Watch = o.watch
	}
	if flags.Changed("no-audio") {
		cfg.Audio.Enabled = !o.noAudio
	}
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// loadContent returns the script at path, the built-in one when path is empty
func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default(), nil
	}
	c, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return c, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "giftcard %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
			return err
		},
	}
}

// runCard opens the terminal and plays one session until the user quits
func runCard(ctx context.Context, cfg *config.Config) error {
	w, closeLog, err := openLogFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	id := newSessionID()
	logger := newLogger(w, cfg.LogLevel()).With("session", id)

	c, err := loadContent(cfg.Card.Content)
	if err != nil {
		return err
	}

	player, media, effects := openAudio(cfg, c, logger)
	defer player.Close()

	screen, err := newScreen()
	if err != nil {
		return err
	}

	a, err := newApp(screen, appOptions{
		ID:      id,
		Config:  cfg,
		Content: c,
		Media:   media,
		Effects: effects,
		Logger:  logger,
	})
	if err != nil {
		screen.Fini()
		return err
	}
	return a.run(ctx)
}
