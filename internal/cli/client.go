package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/authstore"
	"github.com/dlehdeod1/newcornerkicks/internal/clubapi"
	"github.com/dlehdeod1/newcornerkicks/internal/config"
	"github.com/dlehdeod1/newcornerkicks/internal/httpclient"
	"github.com/dlehdeod1/newcornerkicks/internal/logging"
)

// runtime is what every command needs: resolved config, logger, the
// persisted login and the API client. It is built in PersistentPreRunE.
type runtime struct {
	opts  Options
	flags globalFlags

	cfg     *config.Config
	logger  *zap.Logger
	auth    *authstore.Store
	api     *clubapi.API
	closers []func() error
}

func newRuntime(opts Options) *runtime {
	return &runtime{opts: opts, logger: zap.NewNop()}
}

func (rt *runtime) setup(cmd *cobra.Command) error {
	cfg, err := rt.loadConfig(cmd)
	if err != nil {
		return err
	}
	rt.cfg = cfg

	logger, closeLog, err := logging.New(logging.Options{
		Verbose: cfg.Verbose,
		File:    cfg.LogFile,
		Console: rt.opts.Stderr,
	})
	if err != nil {
		return err
	}
	rt.logger = logger
	rt.closers = append(rt.closers, closeLog)

	persister, closePersister, err := openPersister(cmd.Context(), cfg.Auth)
	if err != nil {
		return err
	}
	if closePersister != nil {
		rt.closers = append(rt.closers, closePersister)
	}

	store, err := authstore.Open(cmd.Context(), persister, logger.Named("auth"))
	if err != nil {
		return err
	}
	rt.auth = store
	rt.warnIfExpired()

	client := httpclient.New(cfg.APIURL,
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithLogger(logger.Named("http")),
	)
	rt.api = clubapi.New(client)

	logger.Debug("cli ready",
		zap.String("api_url", cfg.APIURL),
		zap.String("auth_backend", cfg.Auth.Backend),
		zap.Bool("logged_in", store.State().IsLoggedIn),
	)
	return nil
}

// teardown runs the closers in reverse. Safe to call more than once.
func (rt *runtime) teardown() error {
	var first error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	rt.closers = nil
	return first
}

func openPersister(ctx context.Context, cfg config.AuthConfig) (authstore.Persister, func() error, error) {
	switch cfg.Backend {
	case config.AuthBackendRedis:
		redisCfg := authstore.DefaultRedisConfig()
		redisCfg.URL = cfg.RedisURL
		if cfg.RedisKey != "" {
			redisCfg.Key = cfg.RedisKey
		}
		redisCfg.TTL = cfg.RedisTTL
		p, err := authstore.NewRedisPersister(ctx, redisCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect auth store: %w", err)
		}
		return p, p.Close, nil
	default:
		return authstore.NewFilePersister(cfg.File), nil, nil
	}
}

// warnIfExpired only logs; the server has the final say on the token
func (rt *runtime) warnIfExpired() {
	token := rt.auth.Token()
	if token != "" && authstore.Expired(token, rt.opts.Clock.Now()) {
		rt.logger.Warn("saved login has expired; run `cornerkicks auth login` again")
	}
}

// token returns the saved bearer token or ErrNotLoggedIn
func (rt *runtime) token() (string, error) {
	token := rt.auth.Token()
	if token == "" {
		return "", authstore.ErrNotLoggedIn
	}
	return token, nil
}

func (rt *runtime) output() *Output {
	format := config.OutputText
	if rt.cfg != nil {
		format = rt.cfg.Output
	} else if rt.flags.output != "" {
		format = rt.flags.output
	}
	return NewOutput(format, rt.opts.Stdout, rt.opts.Stderr)
}
