package main

import (
	"log"

	"github.com/chromawave/lookvault/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ lookvault failed to start: %v", err)
	}
}
