package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/staffdesk/internal/auth"
	"github.com/UnknownOlympus/staffdesk/internal/client"
	"github.com/UnknownOlympus/staffdesk/internal/config"
	"github.com/UnknownOlympus/staffdesk/internal/gateway"
	"github.com/UnknownOlympus/staffdesk/internal/lib/logger/sl"
	"github.com/UnknownOlympus/staffdesk/internal/metrics"
	"github.com/UnknownOlympus/staffdesk/internal/services/employees"
	"github.com/UnknownOlympus/staffdesk/internal/session"
	"github.com/UnknownOlympus/staffdesk/internal/store"
)

// app holds what every command shares. It is filled in by setup once flags
// are parsed.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	apiURL string

	cfg     *config.Config
	log     *slog.Logger
	logFile *os.File
	reg     *prometheus.Registry
	metrics *metrics.Metrics

	gw        *gateway.Gateway
	gate      *auth.Gate
	directory *employees.Directory
}

func (a *app) setup(logToStdout bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.API.URL = a.apiURL
	}
	a.cfg = cfg

	var logOut io.Writer = a.out
	if !logToStdout {
		if a.logFile, err = openLogFile(cfg.UI.LogPath); err != nil {
			return err
		}
		logOut = a.logFile
	}
	a.log = sl.New(cfg.Env, logOut)

	a.reg = prometheus.NewRegistry()
	a.reg.MustRegister(collectors.NewGoCollector())
	a.reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.NewMetrics(a.reg)

	a.gw = gateway.New(client.CreateHTTPClient(a.log, a.metrics), cfg.API.URL)
	a.gate = auth.NewGate(a.log, a.gw, session.NewFileStore(cfg.Session.Path), a.metrics)
	a.directory = employees.NewDirectory(a.log, a.gw, store.New(a.log, a.metrics))

	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

// requireSession returns the signed-in session or an error telling the user to log in.
func (a *app) requireSession() (session.Session, error) {
	sess, err := a.gate.Current()
	if err != nil {
		return session.Session{}, err //nolint:wrapcheck // already descriptive
	}
	if !sess.Authenticated() {
		return session.Session{}, errNotSignedIn
	}
	return sess, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}
