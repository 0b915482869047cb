// CLASSIFICATION: COMMUNITY
// Filename: main.go v0.7
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"corsserve/internal/devserver"
	"corsserve/internal/tooling"
	"corsserve/internal/watch"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	cmd := tooling.NewRootCommand(func(cmd *cobra.Command, opts tooling.Options) error {
		return run(cmd.Context(), opts, log, cmd.OutOrStdout())
	})
	ctx, stop := newSignalContext(context.Background())
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// run serves the working directory until ctx is done.
func run(ctx context.Context, opts tooling.Options, log *logrus.Logger, out io.Writer) error {
	if opts.Debug {
		log.SetLevel(logrus.DebugLevel)
	}
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	cfg := devserver.Config{
		Port:      opts.Port,
		Root:      root,
		AccessLog: opts.AccessLog,
		RateLimit: rate.Limit(opts.RateLimit),
		RateBurst: opts.RateBurst,
	}
	var reg *prometheus.Registry
	if opts.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		cfg.Metrics = devserver.NewMetrics(reg)
	}

	srv, err := devserver.New(cfg, log)
	if err != nil {
		return err
	}
	defer srv.Close()
	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	// Helpers stop with the server, whatever the reason it returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if reg != nil {
		mln, err := net.Listen("tcp", opts.MetricsAddr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("metrics listener: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := devserver.ServeMetrics(ctx, mln, reg); err != nil {
				log.WithError(err).Error("metrics server")
			}
		}()
		log.WithField("addr", mln.Addr().String()).Info("metrics enabled")
	}

	if opts.Watch {
		w, err := watch.New(root, log)
		if err != nil {
			ln.Close()
			return err
		}
		w.OnEvent(func(ev fsnotify.Event) { cfg.Metrics.ObserveFSEvent(ev.Op.String()) })
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Run(ctx); err != nil {
				log.WithError(err).Error("watcher")
			}
		}()
	}

	printBanner(out, ln.Addr(), root)
	return serve(ctx, srv, ln, out)
}

// serve runs srv on ln. The stop notice is printed only for a clean
// shutdown.
func serve(ctx context.Context, srv *devserver.Server, ln net.Listener, out io.Writer) error {
	if err := srv.Serve(ctx, ln); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nserver stopped")
	return nil
}

func printBanner(out io.Writer, addr net.Addr, root string) {
	port := 0
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	fmt.Fprintf(out, "serving on http://localhost:%d\n", port)
	fmt.Fprintf(out, "serving files from: %s\n", root)
	fmt.Fprintf(out, "admin panel: http://localhost:%d/panel/\n", port)
	fmt.Fprintln(out, "press Ctrl+C to stop the server")
}

// report prints a startup failure. A busy port gets a suggested
// alternative.
func report(w io.Writer, err error) {
	var bindErr *devserver.BindError
	if errors.As(err, &bindErr) {
		fmt.Fprintf(w, "error: port %d is already in use\n", bindErr.Port)
		fmt.Fprintf(w, "try another port: corsserve %d\n", bindErr.Suggest())
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}
