// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/config"
	"github.com/agentplane/agentplane/visibility"
)

const PathGetExecution = "/api/v1/agentplane/service/execution/get"
const PathListExecutions = "/api/v1/agentplane/service/execution/list"
const PathGetDistinctTagValues = "/api/v1/agentplane/service/execution/distinct-tag-values"
const PathHealth = "/health"

type defaultSever struct {
	rootCtx    context.Context
	cfg        config.Config
	logger     log.Logger
	engine     *gin.Engine
	httpServer *http.Server
}

func NewDefaultAPIServerWithGin(
	rootCtx context.Context, cfg config.Config, visEngine visibility.Engine, logger log.Logger,
) Server {
	engine := gin.Default()

	handler := newGinHandler(cfg, visEngine, logger)

	engine.POST(PathGetExecution, handler.GetExecution)
	engine.POST(PathListExecutions, handler.ListExecutions)
	engine.POST(PathGetDistinctTagValues, handler.GetDistinctTagValues)
	engine.GET(PathHealth, handler.Health)

	svrCfg := cfg.ApiService.HttpServer
	httpServer := &http.Server{
		Addr:              svrCfg.Address,
		ReadTimeout:       svrCfg.ReadTimeout,
		WriteTimeout:      svrCfg.WriteTimeout,
		ReadHeaderTimeout: svrCfg.ReadHeaderTimeout,
		IdleTimeout:       svrCfg.IdleTimeout,
		MaxHeaderBytes:    svrCfg.MaxHeaderBytes,
		TLSConfig:         svrCfg.TLSConfig,
		Handler:           engine,
		BaseContext: func(listener net.Listener) context.Context {
			// for graceful shutdown
			return rootCtx
		},
	}

	return &defaultSever{
		rootCtx:    rootCtx,
		cfg:        cfg,
		logger:     logger,
		engine:     engine,
		httpServer: httpServer,
	}
}

func (s defaultSever) Start() error {
	go func() {
		err := s.httpServer.ListenAndServe()
		s.logger.Info("Http Server for API service is closed", tag.Error(err))
	}()

	return nil
}

func (s defaultSever) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
