package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"clinote/internal/bootstrap"
	"clinote/internal/platform/config"
	"clinote/internal/platform/logging"
)

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "clinote",
		Short:         "Turn clinical session observations into tidy notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&cfg.APIURL, "api", cfg.APIURL, "session notes API base URL")
	flags.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML file overriding durations and session types")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout (0 waits for the server)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "append logs to this file")

	root.AddCommand(newTUICmd(&cfg))
	root.AddCommand(newGenerateCmd(&cfg))
	root.AddCommand(newCatalogCmd(&cfg))
	root.AddCommand(newServeCmd(&cfg))
	return root
}

func newTUICmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive note form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// the alt screen owns the terminal, so logs only go to --log-file
			app, err := bootstrap.New(cmd.Context(), *cfg, io.Discard)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newGenerateCmd(cfg *config.Config) *cobra.Command {
	var notes, duration, sessionType, final string

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a note from an observation, optionally saving a final text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if notes == "-" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read notes from stdin: %w", err)
				}
				notes = string(raw)
			}
			app, err := bootstrap.New(cmd.Context(), *cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()

			// unset flags fall back to the first catalog entries
			initial, err := app.NotesCLI.State(cmd.Context())
			if err != nil {
				return err
			}
			if duration == "" {
				duration = initial.Duration
			}
			if sessionType == "" {
				sessionType = initial.SessionType
			}

			out, err := app.NotesCLI.Submit(cmd.Context(), notes, duration, sessionType)
			if err != nil {
				return fmt.Errorf("generate note: %w", err)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "note %s (%d min)\n%s\n", out.NoteID, out.DurationMinutes, out.GeneratedNote)

			if cmd.Flags().Changed("final") {
				saved, err := app.NotesCLI.Save(cmd.Context(), final)
				if err != nil {
					return fmt.Errorf("save note: %w", err)
				}
				if saved.Skipped {
					_, _ = fmt.Fprintln(w, "final note empty, nothing saved")
				} else {
					_, _ = fmt.Fprintf(w, "saved note %s %s\n", saved.NoteID, saved.Message)
				}
			}

			state, err := app.NotesCLI.State(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, "history:")
			for _, h := range state.History {
				_, _ = fmt.Fprintf(w, "[%s] %s: %s\n", h.At.Local().Format("15:04:05"), h.Kind, h.Text)
			}
			return nil
		},
	}
	generate.Flags().StringVar(&notes, "notes", "", "observation text, or - to read stdin")
	generate.Flags().StringVar(&duration, "duration", "", "session duration label (default: first catalog duration)")
	generate.Flags().StringVar(&sessionType, "type", "", "session type (default: first catalog session type)")
	generate.Flags().StringVar(&final, "final", "", "final note text to save after generation")
	_ = generate.MarkFlagRequired("notes")
	return generate
}

func newCatalogCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List session durations and types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := bootstrap.New(cmd.Context(), *cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			catalog, err := app.NotesCLI.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "durations:")
			for _, d := range catalog.Durations {
				_, _ = fmt.Fprintf(w, "  %s\t%d\n", d.Label, d.Minutes)
			}
			_, _ = fmt.Fprintf(w, "session types: %s\n", strings.Join(catalog.SessionTypes, ", "))
			return nil
		},
	}
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the local session-notes service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, closeLog, err := logging.Open(cfg.LogFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()
			log, err := logging.New(w, cfg.LogLevel)
			if err != nil {
				return err
			}
			srv, err := bootstrap.NewServer(cfg.Server, log)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
	flags := serve.Flags()
	flags.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "listen address")
	flags.StringVar(&cfg.Server.DBPath, "db", cfg.Server.DBPath, "sqlite database path")
	flags.StringVar(&cfg.Server.Generator, "generator", cfg.Server.Generator, "note generator: mock|openai")
	flags.StringVar(&cfg.Server.CORSOrigin, "cors-origin", cfg.Server.CORSOrigin, "allowed browser origin (empty disables CORS)")
	flags.DurationVar(&cfg.Server.MockDelay, "mock-delay", cfg.Server.MockDelay, "artificial latency of the mock generator")
	flags.StringVar(&cfg.Server.OpenAI.Model, "model", cfg.Server.OpenAI.Model, "OpenAI chat model")
	return serve
}

