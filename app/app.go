package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/forkapi/log"
	"github.com/kochabx/forkapi/transport"
)

var (
	ErrAlreadyStarted = errors.New("application already started")
	ErrClosePanic     = errors.New("close function panicked")
)

// Application 管理服务器和关闭函数的生命周期
type Application struct {
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownTimeout time.Duration
	signals         []os.Signal
	servers         []transport.Server
	closers         []closer
	logger          *log.Logger
	mu              sync.Mutex
	started         bool
}

type closer struct {
	name string
	fn   func(context.Context) error
}

type Option func(*Application)

// WithContext 设置应用的根上下文，取消时应用退出
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

// WithShutdownTimeout 设置服务器关闭与关闭函数的超时时间
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.shutdownTimeout = timeout
		}
	}
}

// WithSignals 设置触发优雅关闭的信号
func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		app.signals = append([]os.Signal(nil), signals...)
	}
}

// WithServer 添加服务器，nil 被忽略
func WithServer(servers ...transport.Server) Option {
	return func(app *Application) {
		for _, s := range servers {
			if s != nil {
				app.servers = append(app.servers, s)
			}
		}
	}
}

// WithClose 添加在所有服务器停止后执行的关闭函数
func WithClose(name string, fn func(context.Context) error) Option {
	return func(app *Application) {
		if fn != nil {
			app.closers = append(app.closers, closer{name: name, fn: fn})
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(app *Application) {
		if l != nil {
			app.logger = l
		}
	}
}

// New 使用给定选项创建应用实例
func New(opts ...Option) *Application {
	app := &Application{
		shutdownTimeout: 30 * time.Second,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT},
		logger:          log.G,
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Start 启动所有服务器并阻塞，直到收到信号、Stop 被调用或某个服务器出错
func (app *Application) Start() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	app.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	if len(app.signals) > 0 {
		signal.Notify(sigCh, app.signals...)
		defer signal.Stop(sigCh)
	}

	eg, ctx := errgroup.WithContext(app.ctx)

	for _, server := range app.servers {
		eg.Go(func() error {
			if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		eg.Go(func() error {
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	eg.Go(func() error {
		select {
		case sig := <-sigCh:
			app.logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-ctx.Done():
		}
		return nil
	})

	err := eg.Wait()
	app.runClosers()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Stop 优雅地停止应用
func (app *Application) Stop() {
	app.cancel()
}

// runClosers 并发执行关闭函数，错误只记录日志
func (app *Application) runClosers() {
	if len(app.closers) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, c := range app.closers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.runCloser(ctx, c); err != nil {
				app.logger.Error().Err(err).Str("close", c.name).Msg("close function failed")
			}
		}()
	}
	wg.Wait()
}

func (app *Application) runCloser(ctx context.Context, c closer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			app.logger.Error().Interface("panic", r).Str("close", c.name).Send()
			err = ErrClosePanic
		}
	}()
	return c.fn(ctx)
}
