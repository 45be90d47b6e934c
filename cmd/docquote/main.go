package main

import (
	"log"
	"os"

	"github.com/davidbz/docquote/internal/cli"
	"github.com/davidbz/docquote/internal/document"
	"github.com/davidbz/docquote/internal/pricing"
)

func main() {
	counters, err := document.NewDefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to register page counters: %v", err)
	}

	app := cli.NewApp(pricing.NewCalculator(pricing.DefaultConfig()), counters)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
