package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/3liantte/grocery-list-app/internal/config"
	"github.com/3liantte/grocery-list-app/internal/database"
	"github.com/3liantte/grocery-list-app/internal/grocery"
	"github.com/3liantte/grocery-list-app/internal/logging"
	"github.com/3liantte/grocery-list-app/internal/persist"
	"github.com/3liantte/grocery-list-app/internal/server"
	"github.com/3liantte/grocery-list-app/internal/store"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	table, err := loadCategoryTable(cfg.CategoryTable)
	if err != nil {
		log.Fatalf("failed to load category table: %v", err)
	}

	groceryStore := store.NewGroceryStore(
		persist.NewSQLiteStore(db), table, logger.With("component", "store"))
	groceryStore.Hydrate(context.Background())

	srv := server.New(groceryStore, table, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Grocery list running at http://localhost%s\n", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}

	// Final write-through after the last request has drained.
	groceryStore.Close()
}

// loadCategoryTable reads a JSON category table override, falling back to the
// built-in table when no path is configured.
func loadCategoryTable(path string) (grocery.Table, error) {
	if path == "" {
		return grocery.DefaultTable, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	var table grocery.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	return table, nil
}
