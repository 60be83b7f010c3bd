package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	notesinadapter "clinote/internal/modules/notes/adapter/in"
	notesoutadapter "clinote/internal/modules/notes/adapter/out"
	notesservice "clinote/internal/modules/notes/service"
	notesusecase "clinote/internal/modules/notes/usecase"
	notesvcinadapter "clinote/internal/modules/notesvc/adapter/in"
	notesvcoutadapter "clinote/internal/modules/notesvc/adapter/out"
	notesvcout "clinote/internal/modules/notesvc/port/out"
	notesvcservice "clinote/internal/modules/notesvc/service"
	notesvcusecase "clinote/internal/modules/notesvc/usecase"
	"clinote/internal/platform/clock"
	"clinote/internal/platform/config"
	"clinote/internal/platform/id"
	"clinote/internal/platform/logging"
	uiapp "clinote/internal/ui/app"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	NotesCLI notesinadapter.CLIHandler
	Log      zerolog.Logger
	closeLog func() error
}

// New wires one note session against the configured API. Logs go to cfg.LogFile,
// or to logOut when no file is set.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w, closeLog, err := logging.Open(cfg.LogFile, logOut)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(w, cfg.LogLevel)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	catalog, err := notesoutadapter.NewFileCatalogStore(afero.NewOsFs(), cfg.CatalogPath).Load(ctx)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	noteService, err := notesoutadapter.NewHTTPNoteService(cfg.APIURL, cfg.Timeout)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	ctrl, err := notesservice.NewController(
		catalog,
		noteService,
		notesoutadapter.NewZerologReporter(log),
		clock.SystemClock{},
		&id.ULID{},
	)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("new controller: %w", err)
	}
	log.Debug().Str("session_id", ctrl.SessionID()).Str("api", cfg.APIURL).Msg("session started")

	return &App{
		NotesCLI: notesinadapter.NewCLIHandler(notesusecase.NewInteractor(ctrl)),
		Log:      log,
		closeLog: closeLog,
	}, nil
}

func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

func RunTUI(app *App) error {
	program := tea.NewProgram(uiapp.NewModel(app.NotesCLI), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

// Server is the local reference session-notes service.
type Server struct {
	http  *http.Server
	store notesvcout.NoteStore
	log   zerolog.Logger
}

func NewServer(cfg config.ServerConfig, log zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	generator, err := newGenerator(cfg)
	if err != nil {
		return nil, err
	}
	store, err := notesvcoutadapter.NewSQLiteNoteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new note store: %w", err)
	}
	svc := notesvcservice.NewNoteService(clock.SystemClock{}, store, generator)
	handler := notesvcinadapter.NewHTTPHandler(notesvcusecase.NewInteractor(svc), log, cfg.CORSOrigin)
	return &Server{
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		store: store,
		log:   log,
	}, nil
}

func newGenerator(cfg config.ServerConfig) (notesvcout.Generator, error) {
	switch cfg.Generator {
	case config.GeneratorOpenAI:
		return notesvcoutadapter.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
	default:
		return notesvcoutadapter.NewMockGenerator(cfg.MockDelay), nil
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.http.Addr).Msg("serving session notes")
		errCh <- s.http.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errCh:
		serveErr = err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		serveErr = s.http.Shutdown(shutdownCtx)
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) && serveErr == nil {
			serveErr = err
		}
	}
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}
	if err := s.store.Close(); err != nil && serveErr == nil {
		serveErr = fmt.Errorf("close note store: %w", err)
	}
	return serveErr
}
