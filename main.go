package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"

	"github.com/packsmith/minecraft-pack-manager/cmd/mpm"
)

func main() {
	if err := mpm.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}
