package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
)

// mapUniqueViolation traduz uma violação de constraint único (23505) para o
// sentinela de duplicidade do constraint violado; devolve nil se o erro não
// for 23505. Os serviços de aplicação pré-checam unicidade, mas a corrida
// entre o check e o insert ainda pode estourar aqui.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "slug"):
		return domain.ErrDuplicateSlug
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrDuplicateEmail
	case strings.Contains(pgErr.ConstraintName, "login"):
		return domain.ErrDuplicateLogin
	case strings.Contains(pgErr.ConstraintName, "storage_key"):
		return domain.ErrDuplicateStorageKey
	case strings.Contains(pgErr.ConstraintName, "name"):
		return domain.ErrDuplicateName
	default:
		return domain.ErrDuplicateName
	}
}

// staleOrMissing classifica um UPDATE/DELETE que não afetou linhas:
// conflito otimista se a linha ainda existe, não encontrado se sumiu.
// existsQuery deve ser um SELECT EXISTS sobre a chave da entidade.
func staleOrMissing(ctx context.Context, db DBTX, existsQuery string, args ...any) error {
	var exists bool
	if err := db.QueryRow(ctx, existsQuery, args...).Scan(&exists); err != nil {
		return fmt.Errorf("verificar existência: %w", err)
	}
	if exists {
		return domain.ErrConcurrency
	}
	return domain.ErrNotFound
}
