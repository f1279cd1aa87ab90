package main

import (
	"context"
	"github.com/cirruslabs/rawmv/internal/command"
	"log"
	"os"
	"os/signal"
)

func main() {
	// Set up a signal-interruptible context
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Disable log timestamping
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))

	// Run the command
	if err := command.NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatal(err)
	}
}
