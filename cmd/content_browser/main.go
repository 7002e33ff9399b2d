package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mapforge/content-browser/api"
	"github.com/mapforge/content-browser/internal/engine"
)

const maxRequestBodyBytes = 10 << 20 // 10 MB

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./browser_data", "Directory to store library data")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Content Browser - A tabletop content library with free-text search\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                          # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000              # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/browser  # Use custom data directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Content Browser v1.0.0\n")
		fmt.Printf("Library scanning, boolean search queries, and background jobs\n")
		return
	}

	// Initialize the content browser engine
	log.Printf("Using data directory: %s", *dataDir)
	browserEngine := engine.NewEngine(*dataDir)
	defer browserEngine.Stop()

	// Initialize Gin router
	router := gin.Default()
	router.Use(api.CORSMiddleware())
	router.Use(api.RequestSizeLimitMiddleware(maxRequestBodyBytes))

	// Setup API routes
	api.SetupRoutes(router, browserEngine)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
