package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	nats "github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ktan-wolf/Indexer/config"
	"github.com/ktan-wolf/Indexer/pkg/api"
	"github.com/ktan-wolf/Indexer/pkg/indexer"
	"github.com/ktan-wolf/Indexer/pkg/ledger/solanarpc"
	"github.com/ktan-wolf/Indexer/pkg/storage"
	"github.com/ktan-wolf/Indexer/pkg/storage/postgres"
)

type indexerServer struct {
	c *config.Config

	quitCh chan bool
	doneCh chan bool

	db    *sqlx.DB
	nc    *nats.Conn
	store storage.Interface
	loop  *indexer.Loop
}

func init() {
	formatter := &logrus.TextFormatter{
		FullTimestamp: true,
	}
	logrus.SetFormatter(formatter)

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	log.SetLevel(log.InfoLevel)
}

func newIndexerServer(c *config.Config) (*indexerServer, error) {
	s := &indexerServer{
		c:      c,
		quitCh: make(chan bool),
		doneCh: make(chan bool),
	}

	// Connect to PostgreSQL. The pool is shared by the poll loop and
	// the read API, both check connections out per operation.
	db, err := sqlx.Open("postgres", c.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s.db = db
	s.store = postgres.NewStore(db)

	program, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program id %q: %s", c.ProgramID, err)
	}

	client := solanarpc.NewClient(c.RPCServerURL)
	if slot, err := client.Slot(context.Background()); err != nil {
		log.Warn("failed to fetch current ledger slot: ", err)
	} else {
		log.WithFields(log.Fields{"slot": slot}).Info("Connected to ledger")
	}

	// Cycle events are optional, the indexer runs without NATS.
	if c.NATSServerURL != "" {
		nc, err := nats.Connect(c.NATSServerURL,
			nats.DrainTimeout(10*time.Second))
		if err != nil {
			log.Warn("failed to connect to NATS, cycle events disabled: ", err)
		} else {
			s.nc = nc
		}
	}

	reconciler := indexer.NewReconciler(client, s.store, program)
	s.loop = indexer.NewLoop(reconciler, s.nc, time.Duration(c.PollInterval)*time.Second)

	return s, nil
}

func (s *indexerServer) Serve() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(logger())

	// Register API endpoints
	handler := api.NewHandler(s.nc, s.store)
	handler.RegisterRoutes(e)

	// Start the poll loop; cancellation takes effect between cycles
	ctx, cancel := context.WithCancel(context.Background())
	go s.loop.Run(ctx)

	go func() {
		log.WithFields(log.Fields{
			"host": s.c.BindHost,
			"port": s.c.BindPort,
		}).Info("Starting server")

		if err := e.Start(fmt.Sprintf("%s:%d", s.c.BindHost, s.c.BindPort)); err != nil {
			e.Logger.Info("Shutting down the server")
		}
	}()

	// Wait until receiving the quit signal
	<-s.quitCh
	log.Info("Shutdown signal received")

	// Stop scheduling reconciliation cycles
	cancel()

	// Create a 10 second timeout context
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Shutdown the echo web server
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}

	// We've done!
	s.doneCh <- true
}

// Logger returns a middleware that logs HTTP requests.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			var err error
			if err = next(c); err != nil {
				c.Error(err)
			}
			stop := time.Now()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}
			reqSizeStr := req.Header.Get(echo.HeaderContentLength)
			if reqSizeStr == "" {
				reqSizeStr = "0"
			}
			reqSize, err := strconv.ParseInt(reqSizeStr, 10, 0)
			if err != nil {
				reqSize = -1
			}
			errMsg := ""
			if err != nil {
				errMsg = err.Error()
			}

			log.WithFields(log.Fields{
				"timestamp":     stop.Format(time.RFC3339),
				"id":            id,
				"remote_ip":     c.RealIP(),
				"host":          req.Host,
				"method":        req.Method,
				"uri":           req.RequestURI,
				"protocol":      req.Proto,
				"user_agent":    req.UserAgent(),
				"status":        res.Status,
				"status_text":   http.StatusText(res.Status),
				"referer":       req.Referer(),
				"error":         errMsg,
				"bytes_in":      reqSize,
				"bytes_out":     res.Size,
				"latency":       stop.Sub(start).Nanoseconds(),
				"latency_human": stop.Sub(start).String(),
			}).Infof("%s %s %s %d %s", req.Method, req.RequestURI, req.Proto,
				res.Status, strconv.FormatInt(res.Size, 10))

			return err
		}
	}
}

func (s *indexerServer) Shutdown() {
	if s.nc != nil {
		s.nc.Drain()
	}

	// Send the quit signal to the server.Serve() routine
	s.quitCh <- true

	// Wait up to 10 seconds
	select {
	case <-s.doneCh:
		log.Info("Shutdown server successful")
	case <-time.After(10 * time.Second):
		log.Error("Shutdown server failed")
	}

	if s.db != nil {
		s.db.Close()
	}
}

func RunServeIndexer(c *config.Config) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		s, err := newIndexerServer(c)
		if err != nil {
			log.Error("failed to create new server instance: ", err)
			os.Exit(1)
		}

		go s.Serve()

		// Wait for interrupt signal to gracefully shutdown the server
		quitCh := make(chan os.Signal, 1)
		signal.Notify(quitCh, os.Interrupt)
		<-quitCh

		// Shutdown the server
		s.Shutdown()
	}
}
