package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"tourney/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := cmd.Migrate(os.Args[2:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Serving stops on SIGINT or SIGTERM and drains in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}
