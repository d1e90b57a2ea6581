package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"storefront/internal/cart"
	"storefront/internal/config"
	"storefront/internal/model"
	"storefront/internal/storage"
)

// check_storage verifies the configured cart storage backend by writing,
// reading and deleting a scratch snapshot, then prints the stored cart.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snapshots, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s storage: %v\n", cfg.Storage.Backend, err)
		os.Exit(1)
	}
	defer snapshots.Close()

	scratchKey := cfg.Storage.Key + "-check"
	scratch := []byte(`{"items":[],"total":0,"item_count":0}`)

	if err := snapshots.Save(ctx, scratchKey, scratch); err != nil {
		fmt.Fprintf(os.Stderr, "Save failed: %v\n", err)
		os.Exit(1)
	}
	if _, err := snapshots.Load(ctx, scratchKey); err != nil {
		fmt.Fprintf(os.Stderr, "Load failed: %v\n", err)
		os.Exit(1)
	}
	if err := snapshots.Delete(ctx, scratchKey); err != nil {
		fmt.Fprintf(os.Stderr, "Delete failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully round-tripped a snapshot through %s storage\n", cfg.Storage.Backend)

	data, err := snapshots.Load(ctx, cfg.Storage.Key)
	if errors.Is(err, model.ErrSnapshotNotFound) {
		fmt.Printf("No cart stored under %q\n", cfg.Storage.Key)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Load of %q failed: %v\n", cfg.Storage.Key, err)
		os.Exit(1)
	}

	items, err := cart.DecodeSnapshot(data)
	if err != nil {
		fmt.Printf("Cart under %q is malformed and would restore empty: %v\n", cfg.Storage.Key, err)
		return
	}

	stored := model.NewCart(items)
	fmt.Printf("Cart under %q: %d lines, %d items, total %s\n",
		cfg.Storage.Key, len(stored.Items), stored.ItemCount, stored.Total.StringFixed(2))
}
