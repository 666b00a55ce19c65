package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/aussiebroadwan/recipebox/internal/client/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := cli.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	code := app.Run(ctx, os.Args[1:])
	_ = app.Close()
	os.Exit(code)
}
