package database

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS job_runs (
		id            VARCHAR(32)  PRIMARY KEY,
		job_id        VARCHAR(64)  NOT NULL,
		trigger_type  VARCHAR(16)  NOT NULL,
		status        VARCHAR(16)  NOT NULL,
		scheduled_for TIMESTAMP    NOT NULL,
		started_at    TIMESTAMP    NOT NULL,
		finished_at   TIMESTAMP    NULL,
		error         TEXT         NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_job_runs_job_started ON job_runs (job_id, started_at)`,
}

// Migrate cria as tabelas do ledger de execuções. Todas as instruções são idempotentes.
func Migrate(ctx context.Context, conn Conn) error {
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range migrations {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logrus.Infof("Migração concluída: %d instruções aplicadas", len(migrations))
	return nil
}
