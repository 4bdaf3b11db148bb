/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeb26/chessclub-swiss/api"
	"github.com/mikeb26/chessclub-swiss/store"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pairing and tournament HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = rootOpts.cfg.ListenAddr
			}
			return withStore(rootOpts, func(st *store.Store) error {
				ctx := cmd.Context()
				srv := api.NewServer(st, newPublisher(ctx, rootOpts.cfg))
				return serve(ctx, &http.Server{
					Addr:         addr,
					Handler:      srv.Routes(),
					ReadTimeout:  10 * time.Second,
					WriteTimeout: 60 * time.Second,
					IdleTimeout:  120 * time.Second,
				})
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "",
		"listen address (default $SWISS_LISTEN_ADDR or :8080)")

	return cmd
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("serve: listening on %v", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("serve: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		_ = server.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	return nil
}
