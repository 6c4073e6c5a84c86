package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "casebackend/internal/config"
	intdb "casebackend/internal/db"
	router "casebackend/internal/http"
	"casebackend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

The store is MySQL unless CASES_STORE=memory, which keeps everything in
process memory and seeds the type/region lookups.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides APP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	env := intconfig.LoadEnv()
	if serveAddr != "" {
		env.AppAddr = serveAddr
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	deps, closeStore, err := buildDeps(env)
	if err != nil {
		return err
	}
	defer closeStore()

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(env, deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s (store=%s)", env.AppAddr, env.Store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("server stopped")
	return nil
}

func buildDeps(env intconfig.Env) (router.Deps, func(), error) {
	if env.Store == intconfig.StoreMemory {
		mem := repositories.NewMemoryStore()
		for _, name := range intdb.DefaultTypes {
			mem.AddType(name)
		}
		for _, name := range intdb.DefaultRegions {
			mem.AddRegion(name)
		}
		return router.Deps{Cases: mem, Lookups: mem, Users: mem, Pinger: mem}, func() {}, nil
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		return router.Deps{}, nil, err
	}
	cases := repositories.CaseRepository{DB: db}
	return router.Deps{
		Cases:   cases,
		Lookups: repositories.LookupRepository{DB: db},
		Users:   repositories.UserRepository{DB: db},
		Pinger:  cases,
	}, intconfig.CloseDB, nil
}
