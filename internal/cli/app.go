package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/parroquia/contentadmin/internal/blob"
	"github.com/parroquia/contentadmin/internal/config"
	"github.com/parroquia/contentadmin/internal/logging"
	"github.com/parroquia/contentadmin/internal/presence"
	"github.com/parroquia/contentadmin/internal/recordsync"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	watcher     *presence.Watcher
	pages       []Page
	current     Page
	reader      *bufio.Reader
	out         io.Writer
	prompts     io.Writer
	interactive bool
}

// NewApp wires the database, the reachability watcher, the image bucket and
// the five content pages from c. A missing DSN is not an error: the pages
// then report that the database is not configured.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()

	var (
		db     *sql.DB
		pinger presence.Pinger
	)
	if c.DatabaseConfigured() {
		db, err = sql.Open("pgx", c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		pinger = db
	} else {
		logger.Warn(ctx, "DATABASE_DSN is not set")
	}

	var blobStore recordsync.BlobStore
	if c.BlobConfigured() {
		blobStore = blob.NewS3Storage(blob.Settings{
			Region:        c.S3Region,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			BaseEndpoint:  c.S3BaseEndpoint,
			PublicBaseURL: c.S3PublicBaseURL,
		})
	} else {
		logger.Warn(ctx, "S3 storage is not configured, image uploads will fail")
	}

	watcher := presence.NewWatcher(pinger, logger)
	opts := recordsync.Options{
		Presence:  watcher,
		Blob:      blobStore,
		Logger:    logger,
		StatusTTL: c.StatusTTL,
		Timeout:   c.RemoteTimeout,
	}

	a := newApp(BuildPages(db, opts, c.S3Bucket), os.Stdin, os.Stdout, isTerminal(int(os.Stdin.Fd())))
	a.config = c
	a.logger = logger
	a.db = db
	a.watcher = watcher
	return a, nil
}

func newApp(pages []Page, in io.Reader, out io.Writer, interactive bool) *App {
	a := &App{
		config:      &config.Config{},
		logger:      logging.Discard(),
		pages:       pages,
		reader:      bufio.NewReader(in),
		out:         out,
		prompts:     out,
		interactive: interactive,
	}
	if !interactive {
		a.prompts = io.Discard
	}
	return a
}

// Run starts the reachability watcher and the REPL. It returns when the
// operator quits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if a.watcher != nil {
		a.watcher.Check(ctx)
		go a.watcher.Run(ctx, a.config.OnlineCheckInterval)
	}

	fmt.Fprintln(a.prompts, "Administracion de contenidos parroquiales (escribe 'help' para ver los comandos)")
	runREPL(ctx, a, a.prompt, a.reader)
}

// Close releases the database handle.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	page := "-"
	if a.current != nil {
		page = a.current.Name()
		if id := a.current.Editing(); id != "" {
			page += " editando " + id
		}
	}
	mode := "sin conexion"
	if a.watcher != nil && a.watcher.Available() {
		mode = "en linea"
	}
	return fmt.Sprintf("admin [%s] (%s)> ", page, mode)
}
