package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ladder/cmd"
	"ladder/database"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Check for migration subcommands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := handleMigrationCommand(os.Args[2:]); err != nil {
			log.WithError(err).Fatal("Migration error")
		}
		return
	}

	// Normal bot operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ladder migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
