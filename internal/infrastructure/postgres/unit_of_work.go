package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

var _ repository.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork executa uma função de negócio dentro de uma transação pgx.
// Mutações de agregado e registros de auditoria confirmam ou revertem
// juntos.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork constrói a unidade de trabalho sobre o pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Run abre a transação, entrega repositórios ligados a ela e confirma se fn
// devolve nil; qualquer erro reverte tudo.
func (u *UnitOfWork) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// NewRepos liga o conjunto completo de repositórios a um executor (pool ou
// transação).
func NewRepos(db DBTX) repository.Repos {
	return repository.Repos{
		Tenants:       NewTenantRepository(db),
		Users:         NewUserRepository(db),
		OwnerTypes:    NewOwnerTypeRepository(db),
		DocumentTypes: NewDocumentTypeRepository(db),
		Owners:        NewOwnerRepository(db),
		Documents:     NewDocumentRepository(db),
		Audit:         NewAuditRepository(db),
	}
}
