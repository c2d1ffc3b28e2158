// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // load the SQL driver for postgres

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/config"
)

const dsnFmt = "postgres://%v:%v@%v/%v?sslmode=disable"

const hasReadPermissionQuery = `SELECT EXISTS (
SELECT 1 FROM agent_read_grants
WHERE tenant_id = $1 AND user_id = $2 AND agent_name = $3)`

const listReadableAgentsQuery = `SELECT agent_name FROM agent_read_grants
WHERE tenant_id = $1 AND user_id = $2
ORDER BY agent_name`

type sqlStoreImpl struct {
	db     *sqlx.DB
	logger log.Logger
}

func NewSQLStore(cfg config.SQL, logger log.Logger) (Store, error) {
	db, err := sqlx.Connect("postgres",
		fmt.Sprintf(dsnFmt, cfg.User, cfg.Password, cfg.ConnectAddr, cfg.DatabaseName))
	if err != nil {
		return nil, err
	}
	return &sqlStoreImpl{
		db:     db,
		logger: logger,
	}, nil
}

func (s *sqlStoreImpl) HasReadPermission(
	ctx context.Context, tenantId string, userId string, agentName string,
) (bool, error) {
	var allowed bool
	err := s.db.GetContext(ctx, &allowed, hasReadPermissionQuery, tenantId, userId, agentName)
	if err != nil {
		return false, err
	}
	return allowed, nil
}

func (s *sqlStoreImpl) ListReadableAgents(
	ctx context.Context, tenantId string, userId string,
) ([]string, error) {
	var agents []string
	err := s.db.SelectContext(ctx, &agents, listReadableAgentsQuery, tenantId, userId)
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (s *sqlStoreImpl) Close() error {
	return s.db.Close()
}
