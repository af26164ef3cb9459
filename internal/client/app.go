package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-pass-keeper-vault/internal/adapter"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/config"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/device"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/logger"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/rotation"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/service"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/session"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/store"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/tui"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/vault"
	"github.com/MKhiriev/go-pass-keeper-vault/internal/workers"
	"github.com/MKhiriev/go-pass-keeper-vault/models"
)

type App struct {
	args []string
	info models.AppBuildInfo

	session  *session.Store
	services *service.Services
	ui       *tui.TUI
	idle     *workers.IdleLock
	workers  *workers.Workers

	prompt    device.SecretReader
	in        io.Reader
	out       io.Writer
	clipboard func(string) error

	closers []func() error
	logger  *logger.Logger
}

// NewApp wires the client from cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, info models.AppBuildInfo, log *logger.Logger) (*App, error) {
	terminal := device.NewTerminal()

	auth, err := device.NewPasscodeAuthenticator(cfg.Device.PasscodeVerifier, terminal, log)
	if err != nil {
		return nil, fmt.Errorf("create device authenticator: %w", err)
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, cfg.Device.Key, auth, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		_ = storages.Close()
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	deriver := crypto.NewKeyDeriver()
	cipher := crypto.NewFieldCipher()
	sess := session.NewStore(log)

	services := service.NewServices(service.Deps{
		Deriver:       deriver,
		Cipher:        cipher,
		Session:       sess,
		Vault:         vault.NewKeyVault(storages.SecureItems, auth, log),
		SecureStorage: storages.SecureItems,
		Cache:         storages.Credentials,
		Adapter:       serverAdapter,
		Pipeline:      rotation.NewPipeline(deriver, cipher, cfg.Crypto.RotationBatchSize, log),
		Logger:        log,
	})

	app := newApp(cfg.Args, info, sess, services, terminal, log)
	app.ui = tui.New(services.Password, log)
	app.idle = workers.NewIdleLock(sess, cfg.Session.IdleTimeout, log)
	app.workers = workers.NewWorkers(app.idle)
	app.closers = append(app.closers, storages.Close)
	return app, nil
}

func newApp(args []string, info models.AppBuildInfo, sess *session.Store, services *service.Services, prompt device.SecretReader, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{
		args:      args,
		info:      info,
		session:   sess,
		services:  services,
		prompt:    prompt,
		in:        os.Stdin,
		out:       os.Stdout,
		clipboard: clipboard.WriteAll,
		logger:    log,
	}
}

// Run executes the command named by the first argument. Without arguments
// the interactive shell is started.
func (a *App) Run(ctx context.Context) error {
	if len(a.args) == 0 {
		return a.shell(ctx)
	}
	return a.exec(ctx, a.args)
}

func (a *App) Close() error {
	a.session.Clear()

	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
