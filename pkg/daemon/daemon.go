// Package daemon is the privileged BatFi helper: it samples the power
// subsystem, derives and actuates the charging mode, records history, and
// serves the control API over a unix socket.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kusaanko/BatFi/pkg/history"
	"github.com/kusaanko/BatFi/pkg/notify"
	"github.com/kusaanko/BatFi/pkg/powersource"
	"github.com/kusaanko/BatFi/pkg/sampler"
	"github.com/kusaanko/BatFi/pkg/settings"
	"github.com/kusaanko/BatFi/pkg/smc"
)

const (
	// resampleInterval forces a periodic snapshot fetch so the control
	// loop keeps up even when the OS stays quiet.
	resampleInterval = time.Minute
	// retentionWindow is how much history is kept.
	retentionWindow = 30 * 24 * time.Hour
	// retentionSweepInterval is how often old points are trimmed.
	retentionSweepInterval = time.Hour
)

// Options configures the helper daemon.
type Options struct {
	SocketPath   string
	DatabasePath string
	SettingsPath string
}

// Daemon wires the observation core together and serves the control API.
type Daemon struct {
	smc      *smc.AppleSMC
	bridge   *notify.Bridge
	store    *history.Store
	settings *settings.Settings
	ctl      *controller
}

// Run starts the helper and blocks until SIGINT or SIGTERM.
func Run(opts Options) error {
	st, err := settings.NewFile(opts.SettingsPath)
	if err != nil {
		return err
	}

	store, err := history.Open(opts.DatabasePath)
	if err != nil {
		return err
	}

	smcConn := smc.New()
	if err := smcConn.Open(); err != nil {
		return err
	}

	bridge := notify.NewBridge()
	go func() {
		if err := notify.ListenPowerSourceChanges(bridge); err != nil {
			logrus.Errorf("failed to listen for power source changes: %v", err)
		}
	}()

	samp := sampler.New(bridge, powersource.NewAppleSource(smcConn), powersource.NewSystemProfilerHealth())
	ctl := newController(smcConn, store, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go ctl.run(samp.Subscribe(ctx))

	go func() {
		ticker := time.NewTicker(resampleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bridge.Notify()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(retentionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := store.DeleteOlderThan(time.Now().Add(-retentionWindow)); err != nil {
					logrus.Errorf("failed to trim history: %v", err)
				}
			}
		}
	}()

	d := &Daemon{
		smc:      smcConn,
		bridge:   bridge,
		store:    store,
		settings: st,
		ctl:      ctl,
	}

	srv := &http.Server{Handler: d.setupRoutes()}

	// A previous unclean shutdown may have left the socket behind.
	_ = os.Remove(opts.SocketPath)
	l, err := net.Listen("unix", opts.SocketPath)
	if err != nil {
		return err
	}

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Receive SIGHUP to reload settings
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			if err := st.Reload(); err != nil {
				logrus.Errorf("failed to reload settings: %v", err)
				continue
			}
			logrus.Info("settings reloaded")
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal %q: shutting down.", sig)

	logrus.Info("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	shutdownCancel()

	logrus.Info("stopping power source notifications")
	notify.StopListeningPowerSourceChanges()

	cancel()

	logrus.Info("closing smc connection")
	if err := smcConn.Close(); err != nil {
		logrus.Errorf("failed to close smc connection: %v", err)
	}

	logrus.Info("closing history store")
	if err := store.Close(); err != nil {
		logrus.Errorf("failed to close history store: %v", err)
	}

	logrus.Info("exiting")
	return nil
}

func (d *Daemon) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/power-distribution", d.getPowerDistribution)
	router.GET("/snapshot", d.getSnapshot)
	router.GET("/charging-mode", d.getChargingMode)
	router.PUT("/charging-mode", d.setChargingMode)
	router.GET("/limit", d.getLimit)
	router.PUT("/limit", d.setLimit)
	router.GET("/charge-management", d.getChargeManagement)
	router.PUT("/charge-management", d.setChargeManagement)
	router.GET("/history", d.getHistory)

	return router
}
