// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/common/log/tag"
	"github.com/agentplane/agentplane/config"
	"github.com/agentplane/agentplane/visibility"
)

type ginHandler struct {
	config config.Config
	logger log.Logger
	svc    Service
}

func newGinHandler(cfg config.Config, engine visibility.Engine, logger log.Logger) *ginHandler {
	svc := NewServiceImpl(cfg, engine, logger)
	return &ginHandler{
		config: cfg,
		logger: logger,
		svc:    svc,
	}
}

func (h *ginHandler) GetExecution(c *gin.Context) {
	var req ExecutionGetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestSchema(c)
		return
	}
	h.logger.Debug("received GetExecution API request",
		tag.RequestId(uuid.NewString()), tag.Value(h.toJson(req)))

	resp, errResp := h.svc.GetExecution(c.Request.Context(), req)

	if errResp != nil {
		c.JSON(errResp.StatusCode, errResp.Error)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ginHandler) ListExecutions(c *gin.Context) {
	var req ExecutionListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestSchema(c)
		return
	}
	h.logger.Debug("received ListExecutions API request",
		tag.RequestId(uuid.NewString()), tag.Value(h.toJson(req)))

	resp, errResp := h.svc.ListExecutions(c.Request.Context(), req)

	if errResp != nil {
		c.JSON(errResp.StatusCode, errResp.Error)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ginHandler) GetDistinctTagValues(c *gin.Context) {
	var req DistinctTagValuesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequestSchema(c)
		return
	}
	h.logger.Debug("received GetDistinctTagValues API request",
		tag.RequestId(uuid.NewString()), tag.Value(h.toJson(req)))

	resp, errResp := h.svc.GetDistinctTagValues(c.Request.Context(), req)

	if errResp != nil {
		c.JSON(errResp.StatusCode, errResp.Error)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ginHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "api",
		"status":  "ok",
	})
}

func (h *ginHandler) toJson(req any) string {
	str, err := json.Marshal(req)
	if err != nil {
		h.logger.Error("error when serializing request", tag.Error(err), tag.DefaultValue(req))
		return ""
	}
	return string(str)
}

func invalidRequestSchema(c *gin.Context) {
	detail := "invalid request schema"
	c.JSON(http.StatusBadRequest, ApiErrorResponse{
		Detail: &detail,
	})
}
