package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/panelkeeper/internal/client/cli"
	"github.com/dmitrijs2005/panelkeeper/internal/client/config"
	"github.com/dmitrijs2005/panelkeeper/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())
}
