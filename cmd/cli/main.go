package main

import (
	"context"
	"log"
	"os"

	"github.com/gymfitness/membership/internal/client/cli"
	"github.com/gymfitness/membership/internal/client/config"
	"github.com/gymfitness/membership/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx, flagx.Positional(os.Args[1:])); err != nil {
		os.Exit(1)
	}

}
