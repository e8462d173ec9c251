package main

import (
	"os"
	"os/signal"

	"github.com/decoutkhanqindev/motelctl/cmd"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// main is the entry point of the application.
// It sets up logging based on the DEBUG_MOTELCTL environment variable,
// starts a goroutine to listen for interrupt signals, and executes the main command.
func main() {
	// If the DEBUG_MOTELCTL environment variable is set, enable debug logging to stdout, otherwise disable logging
	if os.Getenv("DEBUG_MOTELCTL") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	go listenForInterrupt(stopChan)

	cmd.Execute()
}

// listenForInterrupt listens for an interrupt signal and exits the program when it is received.
func listenForInterrupt(stopChan chan os.Signal) {
	<-stopChan
	log.Fatal().Msg("Interrupt signal received. Exiting...")
}
