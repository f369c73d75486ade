// Package main is the entry point for the muco API server
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/james-see/muco/pkg/api"
	"github.com/james-see/muco/pkg/config"
)

var version = "dev"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	port := flag.Int("port", cfg.Port, "Server port")
	flag.Parse()
	cfg.Port = *port

	flush, err := api.InitSentry(cfg, version)
	if err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
	}

	fmt.Printf("Starting muco API server on port %d...\n", cfg.Port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", cfg.Port)

	if err := api.StartServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		flush()
		os.Exit(1)
	}
	flush()
}
