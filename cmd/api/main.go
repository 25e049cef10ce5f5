package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"eco-fashion-api/internal/config"
	"eco-fashion-api/internal/identity"
	"eco-fashion-api/internal/routes"
	"eco-fashion-api/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eco-fashion-api",
		Short:         "REST backend for the Eco Fashion shop",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the binary with no subcommand starts the API.
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.AddCommand(newServeCmd(), newSeedCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Rebuild the data file from the bundled sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()

			seed, err := store.Seed()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.DataFile)
			if err != nil {
				return err
			}
			if err := st.Reset(seed); err != nil {
				return err
			}
			if err := identity.New(st).EnsureAdmin(); err != nil {
				return err
			}
			log.Println("sample data written to", st.Path())
			return nil
		},
	}
}

func serve() error {
	cfg := config.LoadConfig()

	st, err := store.Open(cfg.DataFile)
	if err != nil {
		// Cannot serve traffic without a dataset.
		log.Fatal("store:", err)
	}
	if err := identity.New(st).EnsureAdmin(); err != nil {
		log.Fatal("seed admin:", err)
	}

	token := cfg.AuthToken
	if token == "" {
		token = identity.DefaultToken
	}

	router := gin.Default()
	routes.RegisterRoutes(router, st, token)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Println("server running on port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Println("server stopped")
	return nil
}
