package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/editkit/mdsurface/internal/app"
	"github.com/editkit/mdsurface/internal/config"
)

func main() {
	logFile, err := os.Create("mdsurface.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	debug := flag.Bool("debug", false, "Enable debug mode (logs key events, F12 dumps the document tree)")
	configPath := flag.String("config", "", "Path to config file (default ~/.config/mdsurface/config.toml)")
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}
	// filePath may be empty: the app starts on an unsaved document

	application, err := app.NewApp(filePath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}
