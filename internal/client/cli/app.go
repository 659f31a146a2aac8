package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/panelkeeper/internal/client/api"
	"github.com/dmitrijs2005/panelkeeper/internal/client/config"
	"github.com/dmitrijs2005/panelkeeper/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/panelkeeper/internal/client/services"
	"github.com/dmitrijs2005/panelkeeper/internal/client/storage"
	"github.com/dmitrijs2005/panelkeeper/internal/filex"
	"github.com/dmitrijs2005/panelkeeper/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the session coordinator and admin services behind an
// interactive command loop. All dependencies are constructed here, once,
// and injected explicitly.
type App struct {
	config  *config.Config
	session *services.SessionService
	admin   services.AdminService
	reader  *bufio.Reader
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	dsn := c.DatabasePath
	if !filepath.IsAbs(dsn) {
		dir, err := filex.EnsureSubDir("state")
		if err != nil {
			return nil, err
		}
		dsn = filepath.Join(dir, dsn)
	}

	db, err := storage.InitDatabase(ctx, dsn)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewRESTClient(c.APIBaseURL, c.RequestTimeout)
	repo := tokens.NewSQLiteRepository(db)

	tokenService := services.NewTokenService(repo, apiClient, logger, c.RefreshMargin)
	sessionService := services.NewSessionService(tokenService, apiClient, logger, func(route string) {
		logger.Debug(ctx, "navigate", "route", route)
	})
	adminService := services.NewAdminService(tokenService, apiClient)

	return &App{
		config:  c,
		session: sessionService,
		admin:   adminService,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated
}
