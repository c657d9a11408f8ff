package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draftbox/draftbox/config"
)

const (
	gracefulEnvKey = "DRAFTBOX_GRACEFUL"
	gracefulEnv    = gracefulEnvKey + "=1"

	// A restarted child inherits the listener right after stdin,
	// stdout and stderr.
	gracefulListenerFD = 3
)

// Server wraps http.Server with graceful shutdown on SIGTERM and
// zero-downtime restart on SIGUSR2. A restart forks a new process that
// inherits the listening socket, so in-flight requests finish on the
// old process while new connections land on the fresh one.
type Server struct {
	*http.Server

	listener     net.Listener
	shutdownWait time.Duration
	inherited    bool
	signalChan   chan os.Signal
	shutdownChan chan struct{}
}

// NewServer builds a Server whose read/write and shutdown timeouts come
// from the application configuration.
func NewServer(addr string, handler http.Handler) *Server {
	cfg := config.Get()
	return &Server{
		Server: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		},
		shutdownWait: time.Duration(cfg.ShutdownTimeoutSec) * time.Second,
		inherited:    os.Getenv(gracefulEnvKey) != "",
		signalChan:   make(chan os.Signal, 1),
		shutdownChan: make(chan struct{}),
	}
}

// ListenAndServe binds the address (or adopts the inherited listener
// after a graceful restart) and serves until shutdown completes.
func (srv *Server) ListenAndServe() error {
	addr := srv.Addr
	if addr == "" {
		addr = ":http"
	}
	ln, err := srv.acquireListener(addr)
	if err != nil {
		return err
	}
	srv.listener = ln

	Sugar.Infow("http server listening",
		"addr", ln.Addr().String(),
		"pid", os.Getpid(),
		"inherited_listener", srv.inherited,
		"read_timeout", srv.ReadTimeout,
		"write_timeout", srv.WriteTimeout,
	)

	go srv.handleSignals()
	err = srv.Server.Serve(srv.listener)
	// Serve returns as soon as the listener closes; wait for Shutdown
	// to drain in-flight requests before letting main exit.
	<-srv.shutdownChan
	return err
}

func (srv *Server) acquireListener(addr string) (net.Listener, error) {
	if srv.inherited {
		file := os.NewFile(gracefulListenerFD, "")
		ln, err := net.FileListener(file)
		if err != nil {
			return nil, fmt.Errorf("inherit listener: %w", err)
		}
		return ln, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

func (srv *Server) handleSignals() {
	signal.Notify(srv.signalChan, syscall.SIGTERM, syscall.SIGUSR2)

	for sig := range srv.signalChan {
		switch sig {
		case syscall.SIGTERM:
			Sugar.Infow("shutting down http server", "signal", "SIGTERM", "pid", os.Getpid())
			srv.drainAndClose()
		case syscall.SIGUSR2:
			Sugar.Infow("restarting http server", "signal", "SIGUSR2", "pid", os.Getpid())
			pid, err := srv.forkChild()
			if err != nil {
				Sugar.Errorw("restart failed, old process keeps serving", "error", err)
				continue
			}
			Sugar.Infow("child process started, draining old process", "child_pid", pid)
			srv.drainAndClose()
		}
	}
}

// drainAndClose stops accepting connections and waits up to the
// configured shutdown timeout for in-flight requests.
func (srv *Server) drainAndClose() {
	ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownWait)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Sugar.Errorw("http server shutdown incomplete", "error", err, "timeout", srv.shutdownWait)
	} else {
		Sugar.Infow("http server drained", "pid", os.Getpid())
	}
	close(srv.shutdownChan)
}

// forkChild re-executes the current binary, handing it the listening
// socket as an inherited file descriptor.
func (srv *Server) forkChild() (int, error) {
	tcpLn, ok := srv.listener.(*net.TCPListener)
	if !ok {
		return 0, fmt.Errorf("listener %T does not expose a file descriptor", srv.listener)
	}
	file, err := tcpLn.File()
	if err != nil {
		return 0, fmt.Errorf("dup listener fd: %w", err)
	}

	env := make([]string, 0, len(os.Environ())+1)
	for _, e := range os.Environ() {
		if e != gracefulEnv {
			env = append(env, e)
		}
	}
	env = append(env, gracefulEnv)

	attr := &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{os.Stdin.Fd(), os.Stdout.Fd(), os.Stderr.Fd(), file.Fd()},
	}
	pid, err := syscall.ForkExec(os.Args[0], os.Args, attr)
	if err != nil {
		return 0, fmt.Errorf("fork child: %w", err)
	}
	return pid, nil
}

// GraceServer serves handler on addr with graceful shutdown and restart.
func GraceServer(addr string, handler http.Handler) error {
	return NewServer(addr, handler).ListenAndServe()
}
