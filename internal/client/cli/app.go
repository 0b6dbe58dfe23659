// Package cli is the interactive console for Wayfarer: a thin command layer
// over the local store and the sync engine. Reads always come from the local
// cache; writes go through the optimistic write path and reach the remote in
// the background.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/pvilks/wayfarer/internal/client/config"
	"github.com/pvilks/wayfarer/internal/client/remote"
	"github.com/pvilks/wayfarer/internal/client/services"
	"github.com/pvilks/wayfarer/internal/client/session"
	"github.com/pvilks/wayfarer/internal/client/store"
	"github.com/pvilks/wayfarer/internal/logging"
)

type App struct {
	config  *config.Config
	store   *store.Store
	sess    *session.Session
	backend remote.Backend
	writer  *services.Writer
	syncer  *services.Syncer
	monitor *services.Monitor
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	sess, err := session.New(c.AccessToken)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "failed to open local store", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	backend, err := remote.NewPostgresBackend(ctx, c.RemoteDSN)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	uploader, err := remote.NewS3Uploader(ctx, remote.S3Config{
		BaseEndpoint: c.S3BaseEndpoint,
		Region:       c.S3Region,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	})
	if err != nil {
		backend.Close()
		_ = st.Close()
		return nil, err
	}

	syncer := services.NewSyncer(st, backend, uploader, sess, log)
	monitor := services.NewMonitor(backend, c.OnlineCheckInterval, log)
	monitor.OnOnline(syncer.TriggerSync)
	syncer.SetOnline(monitor.Online)

	writer := services.NewWriter(st, sess, log)
	writer.SetSyncHook(monitor.Online, syncer.TriggerSync)

	return &App{
		config:  c,
		store:   st,
		sess:    sess,
		backend: backend,
		writer:  writer,
		syncer:  syncer,
		monitor: monitor,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run starts the background sync loops and hands the terminal to the REPL.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.syncer.Run(ctx)
	go a.monitor.Run(ctx)

	a.Root(ctx)

	a.backend.Close()
	if err := a.store.Close(); err != nil {
		a.log.Error(ctx, "failed to close local store", "error", err)
	}
}
