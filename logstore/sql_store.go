// Copyright (c) 2025 AgentPlane Organization
// SPDX-License-Identifier: Apache-2.0

package logstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/lib/pq" // load the SQL driver for postgres

	"github.com/agentplane/agentplane/common/log"
	"github.com/agentplane/agentplane/config"
)

const dsnFmt = "postgres://%v:%v@%v/%v?sslmode=disable"

const lastLogPerRunQuery = `SELECT DISTINCT ON (run_id) run_id, level, message, created_at
FROM execution_logs
WHERE tenant_id = $1 AND run_id = ANY($2)
ORDER BY run_id, created_at DESC`

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

func (s *sqlStoreImpl) LastLogPerRun(
	ctx context.Context, tenantId string, runIds []string,
) (map[string]LogEntry, error) {
	if len(runIds) == 0 {
		return map[string]LogEntry{}, nil
	}

	var rows []LogEntry
	err := s.db.SelectContext(ctx, &rows, lastLogPerRunQuery, tenantId, pq.Array(runIds))
	if err != nil {
		return nil, err
	}

	result := make(map[string]LogEntry, len(rows))
	for _, row := range rows {
		result[row.RunId] = row
	}
	return result, nil
}

func (s *sqlStoreImpl) Close() error {
	return s.db.Close()
}
