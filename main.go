package main

import (
	"errors"
	"io/fs"
	"log"

	dotenv "github.com/joho/godotenv"
	"picam.api/v0/cmd"
)

// Set during compile time via ldflags.
// ie. go build -ldflags "-X 'main.version=1.2.3'"
var version = "dev"

func main() {
	// A .env file is optional, the environment may already be set.
	if err := dotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env file: %v", err)
	}

	if err := cmd.Execute(version); err != nil {
		log.Fatal(err)
	}
}
