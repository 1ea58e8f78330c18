package repository

import "context"

// Repos conjunto de repositórios atados à mesma transação.
type Repos struct {
	Tenants       TenantRepository
	Users         UserRepository
	OwnerTypes    OwnerTypeRepository
	DocumentTypes DocumentTypeRepository
	Owners        OwnerRepository
	Documents     DocumentRepository
	Audit         AuditRepository
}

// UnitOfWork demarca a fronteira atômica de um caso de uso: as mutações de
// agregados e seus registros de auditoria persistem juntos ou nenhum
// persiste. fn devolvendo erro causa rollback; caso contrário commit.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
