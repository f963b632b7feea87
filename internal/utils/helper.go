package utils

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

func WaitForGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	log.Println("Shutting down...")
}
