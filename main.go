package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/talentscout/screener/cmd"
)

func main() {
	// A missing .env file is fine; keys can come from the environment or config.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
