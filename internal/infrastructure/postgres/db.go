// Package postgres implementa os portos de persistência sobre PostgreSQL
// (pgx). Toda consulta a tabela com escopo de organização carrega o filtro
// tenant_id; o controle otimista de concorrência usa a coluna row_version.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstrai pool e transação pgx: os mesmos repositórios servem uso
// avulso (pool) e unidade de trabalho (tx).
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
