package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/chrissnell/radarcurve/internal/log"
	"github.com/chrissnell/radarcurve/pkg/config"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx          context.Context
	wg           *sync.WaitGroup
	serverConfig config.ServerData
	Server       http.Server
	logger       *zap.SugaredLogger
	handlers     *Handlers
	errc         chan error
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfgData *config.ConfigData, logger *zap.SugaredLogger) (*Controller, error) {
	if cfgData == nil {
		return nil, fmt.Errorf("no configuration provided")
	}

	sc := cfgData.Server

	// If a ListenAddr was not provided, listen on all interfaces
	if sc.ListenAddr == "" {
		logger.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		sc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if sc.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		sc.Port = 8080
	}

	ctrl := &Controller{
		ctx:          ctx,
		wg:           wg,
		serverConfig: sc,
		logger:       logger,
		errc:         make(chan error, 1),
	}
	ctrl.handlers = NewHandlers(cfgData.Scenarios, logger)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", sc.ListenAddr, sc.Port)
	ctrl.Server.Handler = ctrl.Handler()

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		var err error
		if c.serverConfig.TLSCertPath != "" && c.serverConfig.TLSKeyPath != "" {
			err = c.Server.ListenAndServeTLS(c.serverConfig.TLSCertPath, c.serverConfig.TLSKeyPath)
		} else {
			err = c.Server.ListenAndServe()
		}
		if err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
			c.errc <- fmt.Errorf("REST server on %s: %w", c.Server.Addr, err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// Err delivers the error that stopped the server, if it stopped on its own
func (c *Controller) Err() <-chan error {
	return c.errc
}

// Handler returns the fully wrapped HTTP handler
func (c *Controller) Handler() http.Handler {
	return handlers.CompressHandler(c.setupRouter())
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{c.logger})))
	router.Use(log.HTTPMiddleware(c.logger))

	router.HandleFunc("/healthz", c.handlers.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/range", c.handlers.GetRangeCurve).Methods(http.MethodGet)
	api.HandleFunc("/detection", c.handlers.GetDetectionCurve).Methods(http.MethodGet)
	api.HandleFunc("/required-snr", c.handlers.GetRequiredSNR).Methods(http.MethodGet)
	api.HandleFunc("/target-types", c.handlers.GetTargetTypes).Methods(http.MethodGet)
	api.HandleFunc("/scenarios", c.handlers.GetScenarios).Methods(http.MethodGet)
	api.HandleFunc("/scenarios/{name}/curve", c.handlers.GetScenarioCurve).Methods(http.MethodGet)

	return router
}

// recoveryLogger adapts zap to the gorilla/handlers recovery logger
type recoveryLogger struct {
	logger *zap.SugaredLogger
}

func (r recoveryLogger) Println(args ...interface{}) {
	r.logger.Error(args...)
}
