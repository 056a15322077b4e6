// Command pancakes runs the colour-screen navigation demo on top of the
// stack engine.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pancakes/internal/config"
	"pancakes/internal/demo"
	"pancakes/internal/logging"
	"pancakes/internal/pancakes"
	"pancakes/internal/slice"
	"pancakes/internal/store"
	"pancakes/internal/telemetry"
	"pancakes/internal/ui"
)

type flags struct {
	configPath string
	stateDir   string
	logLevel   string
	fresh      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "pancakes",
		Short: "Stacked colour screens with animated push and pop",
		Long: `pancakes shows a stack of colour screens. Enter pushes the next
colour, esc or b pops, and the stack is restored on the next run.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default ~/.pancakes/config.toml)")
	cmd.Flags().StringVar(&f.stateDir, "state-dir", "", "directory for the saved stack and log")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	cmd.Flags().BoolVar(&f.fresh, "fresh", false, "ignore any saved stack and start at the root")
	return cmd
}

// loadConfig layers flags over the file and environment settings.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.stateDir != "" {
		cfg.StateDir = f.stateDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.ResolvePaths(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func animationConfig(cfg config.Config) ui.AnimationConfig {
	return ui.AnimationConfig{
		FPS:       cfg.FPS,
		Duration:  cfg.Transition.Duration.Duration,
		Frequency: cfg.Transition.Frequency,
		Damping:   cfg.Transition.Damping,
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger, err := logging.Setup(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	tel, err := telemetry.Init(ctx, telemetry.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	st := store.NewStore(cfg.StateDir)
	app := ui.NewAppModel(ui.AppOptions{
		Root:      demo.Root,
		Store:     st,
		Animation: animationConfig(cfg),
		Logger:    logger.Logger,
		Stack: []pancakes.Option{
			pancakes.WithRegistry(demo.Register(slice.NewRegistry())),
			pancakes.WithTracer(tel.Tracer),
			pancakes.WithMeter(tel.Meter),
		},
	})

	b, found, err := st.Load()
	switch {
	case f.fresh:
		logger.Info("fresh start requested")
		b = nil
	case err != nil:
		logger.Warn("saved stack unreadable", "error", err)
		b = nil
	case found:
		logger.Info("restoring saved stack", "path", st.Path())
	}
	app.Start(b)

	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("exit", "depth", app.Stack.Size())
	return nil
}
