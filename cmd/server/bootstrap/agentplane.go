// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"context"
	"fmt"
	rawLog "log"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/config"
	"github.com/agentplane/agentplane/logstore"
	"github.com/agentplane/agentplane/orchestrator"
	"github.com/agentplane/agentplane/permission"
	"github.com/agentplane/agentplane/service/api"
	"github.com/agentplane/agentplane/visibility"
)

const ApiServiceName = "api"

const FlagConfig = "config"

func StartAgentPlaneServerCli(c *cli.Context) {
	// register interrupt signal for graceful shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configPath := c.String(FlagConfig)

	cfg, err := config.NewConfig(configPath)
	if err != nil {
		rawLog.Fatalf("Unable to load config for path %v because of error %v", configPath, err)
	}
	shutdownFunc := StartAgentPlaneServer(rootCtx, cfg)
	// wait for os signals
	<-rootCtx.Done()

	ctx, cancF := context.WithTimeout(context.Background(), time.Second*10)
	defer cancF()
	err = shutdownFunc(ctx)
	if err != nil {
		fmt.Println("shutdown error:", err)
	}
}

type GracefulShutdown func(ctx context.Context) error

func StartAgentPlaneServer(rootCtx context.Context, cfg *config.Config) GracefulShutdown {
	zapLogger, err := cfg.Log.NewZapLogger()
	if err != nil {
		rawLog.Fatalf("Unable to create a new zap logger %v", err)
	}
	logger := log.NewLogger(zapLogger)
	logger.Info("config is loaded", tag.Value(cfg.String()))
	err = cfg.ValidateAndSetDefaults()
	if err != nil {
		logger.Fatal("config is invalid", tag.Error(err))
	}

	orcClient := orchestrator.NewHTTPClient(cfg.Orchestrator, logger)

	permissionStore, err := permission.NewSQLStore(*cfg.Database.SQL, logger)
	if err != nil {
		logger.Fatal("error on permission store setup", tag.Error(err))
	}

	logStore, err := logstore.NewSQLStore(*cfg.Database.SQL, logger)
	if err != nil {
		logger.Fatal("error on log store setup", tag.Error(err))
	}

	visEngine := visibility.NewEngine(cfg.Visibility, orcClient, permissionStore, logStore, logger)

	apiServer := api.NewDefaultAPIServerWithGin(
		rootCtx, *cfg, visEngine, logger.WithTags(tag.Service(ApiServiceName)))
	err = apiServer.Start()
	if err != nil {
		logger.Fatal("Failed to start api server", tag.Error(err))
	}

	return func(ctx context.Context) error {
		// graceful shutdown
		var errs error
		// first stop api server
		err := apiServer.Stop(ctx)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		// then close the stores
		err = permissionStore.Close()
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		err = logStore.Close()
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		return errs
	}
}
