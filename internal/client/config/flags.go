package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/panelkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the admin-panel API (default from Config)
//	-d string   path to the local state database (default from Config)
//	-t int      request timeout in seconds (default from Config)
//	-m int      refresh margin in seconds (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the admin-panel API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local state database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	refreshMargin := fs.Int("m", int(cfg.RefreshMargin.Seconds()), "refresh margin (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.RefreshMargin = time.Duration(*refreshMargin) * time.Second
}
