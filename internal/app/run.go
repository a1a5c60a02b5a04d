package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vk/plotmod/internal/ctxlog"
	"github.com/vk/plotmod/internal/stream"
)

// Run executes the main application logic: serve the change stream when a
// listen port is configured, otherwise print the serialized document.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.ListenPort > 0 {
		return a.serve(ctx, appConfig.ListenPort)
	}

	out, err := a.doc.Serialize(a.roots...)
	if err != nil {
		return fmt.Errorf("serializing document: %w", err)
	}
	if _, err := fmt.Fprintln(a.outW, string(out)); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// serve exposes the document over a websocket until the context ends.
func (a *App) serve(ctx context.Context, port int) error {
	srv := stream.New(a.doc, a.roots)
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", srv.Handler(ctx))

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Change-stream server starting.", "address", fmt.Sprintf("ws://localhost%s/stream", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.logger.Debug("Context done, shutting down server.")
		return httpServer.Close()
	case err := <-errCh:
		return err
	}
}
