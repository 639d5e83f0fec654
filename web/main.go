package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", -1, "Render goroutines per request: 0 = serial, -1 = one per CPU")
	scenesDir := flag.String("scenes", "../scenes", "Directory of JSON scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port)
	webServer.SetWorkers(*workers)
	webServer.SetScenesDir(*scenesDir)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
