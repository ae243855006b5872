package provider

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/longrun/config"
	"github.com/ncobase/longrun/data"
	"github.com/ncobase/longrun/job/service"
	"github.com/ncobase/longrun/logging/logger"
)

// App is the assembled service.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Data    *data.Data
	Service *service.LongRunning
	Router  *gin.Engine
}

func NewApp(cfg *config.Config, l *logger.Logger, _ *Observability, d *data.Data, svc *service.LongRunning, r *gin.Engine) *App {
	return &App{Config: cfg, Logger: l, Data: d, Service: svc, Router: r}
}

// Ping checks the backing stores.
func (a *App) Ping(ctx context.Context) error {
	if a.Data == nil {
		return nil
	}
	return a.Data.Ping(ctx)
}
