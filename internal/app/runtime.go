package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/easy-qfnu/portal-client/internal/config"
	"github.com/easy-qfnu/portal-client/internal/logger"
	"github.com/easy-qfnu/portal-client/internal/session"
	"github.com/easy-qfnu/portal-client/internal/storage"
	"github.com/easy-qfnu/portal-client/pkg/httpclient"
	"github.com/easy-qfnu/portal-client/pkg/portal"
	"github.com/easy-qfnu/portal-client/pkg/reporters"
	"github.com/easy-qfnu/portal-client/pkg/toast"
)

// Runtime bundles the long-lived components every front end shares: the
// credential session, the toast center, the portal client and its reporters.
type Runtime struct {
	Config    *config.Config
	Log       logger.Logger
	Store     storage.Store
	Local     *storage.Local
	Session   *session.Session
	Toasts    *toast.Center
	Surface   *toast.TerminalSurface
	Reporters *reporters.Dispatcher
	Client    *httpclient.Client
	API       *portal.API
	Stats     *portal.StatsClient
}

// Option customizes New.
type Option func(*options)

type options struct {
	toastOut  io.Writer
	source    string
	scheduler toast.Scheduler
}

// WithToastOutput sets where toasts are printed as they appear. nil keeps
// them in the surface only, for front ends that draw the surface themselves.
func WithToastOutput(w io.Writer) Option {
	return func(o *options) { o.toastOut = w }
}

// WithSource tags failure reports with the front end that produced them.
func WithSource(name string) Option {
	return func(o *options) { o.source = name }
}

// WithScheduler drives toast timers from s.
func WithScheduler(s toast.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

// New builds a runtime from config.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.Ensure(log)

	o := options{toastOut: os.Stderr, source: cfg.AppName}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type": cfg.StorageType,
		"path": cfg.BBoltPath,
	})

	local := storage.NewLocal(store, log)
	sess := session.New(local, cfg.CredentialCookie, cfg.CredentialCookieDays)
	sess.Restore()

	surface := toast.NewTerminalSurface(o.toastOut)
	centerOpts := []toast.Option{
		toast.WithSurface(func() toast.Surface { return surface }),
		toast.WithVariant(toast.ParseVariant(cfg.ToastVariant)),
		toast.WithDefaultDuration(cfg.ToastDuration),
		toast.WithLeaveDelay(cfg.ToastLeave),
	}
	if o.scheduler != nil {
		centerOpts = append(centerOpts, toast.WithScheduler(o.scheduler))
	}
	center := toast.NewCenter(centerOpts...)

	var dispatcher *reporters.Dispatcher
	if cfg.ReportersFile != "" {
		dispatcher, err = reporters.Open(ctx, cfg.ReportersFile, log)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("init reporters: %w", err)
		}
		log.InfoObj("reporters initialized", "reporters_meta", map[string]any{
			"file":  cfg.ReportersFile,
			"count": dispatcher.Size(),
		})
	}

	clientCfg := httpclient.Config{
		BaseURL: cfg.BaseURL(),
		Timeout: cfg.RequestTimeout,
	}
	if logger.S != nil {
		clientCfg.Logger = logger.S
	}
	var clientOpts []httpclient.Option
	if dispatcher != nil {
		clientOpts = append(clientOpts, httpclient.WithFailureHook(dispatcher.Hook(o.source)))
	}
	client := httpclient.New(clientCfg, sess, center, clientOpts...)

	log.InfoObj("portal client ready", "client_config", map[string]any{
		"base_url":      clientCfg.BaseURL,
		"timeout_ms":    cfg.RequestTimeout.Milliseconds(),
		"authenticated": sess.Authenticated(),
	})

	return &Runtime{
		Config:    cfg,
		Log:       log,
		Store:     store,
		Local:     local,
		Session:   sess,
		Toasts:    center,
		Surface:   surface,
		Reporters: dispatcher,
		Client:    client,
		API:       portal.NewAPI(client),
		Stats:     portal.NewStatsClient(clientCfg.BaseURL, cfg.RequestTimeout),
	}, nil
}

// Close drains pending reports and closes storage.
func (r *Runtime) Close(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	if err := r.Reporters.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close reporters: %w", err))
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}
