package main

import (
	"errors"
	"github.com/joho/godotenv"
	"log"
	"os"
	"signupform/internal/app"
	"signupform/internal/config"
	"signupform/static"
)

func main() {
	// .env is optional, the environment may already be set
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg := config.NewConfigFromEnvironment(static.FS)

	a := app.New(&cfg)

	log.Fatal(a.Listen(cfg.Addr()))
}
