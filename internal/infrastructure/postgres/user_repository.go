package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db DBTX
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, tenant_id, name, email, login, password_hash, role, status, last_access_at,
	created_at, created_by, updated_at, updated_by, row_version`

// Create persiste um usuário novo na organização informada.
func (r *UserRepo) Create(ctx context.Context, tenantID identifier.TenantID, u *entity.User) error {
	u.StampTenant(tenantID)
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		u.ID.UUID(), u.TenantID.UUID(), u.Name, u.Email, u.Login, u.PasswordHash,
		string(u.Role), string(u.Status), u.LastAccessAt,
		u.CreatedAt, u.CreatedBy.UUID(), u.UpdatedAt, u.UpdatedBy.UUID(), u.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário da organização por ID.
func (r *UserRepo) GetByID(ctx context.Context, tenantID identifier.TenantID, id identifier.UserID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND id = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), id.UUID()), "get user by id")
}

// GetByEmail obtém um usuário da organização pelo email normalizado.
func (r *UserRepo) GetByEmail(ctx context.Context, tenantID identifier.TenantID, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND email = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), email), "get user by email")
}

// GetByLogin obtém um usuário da organização pelo login normalizado.
func (r *UserRepo) GetByLogin(ctx context.Context, tenantID identifier.TenantID, login string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 AND login = $2`
	return r.scanOne(r.db.QueryRow(ctx, query, tenantID.UUID(), login), "get user by login")
}

// ExistsByEmail verifica a unicidade do email dentro da organização.
func (r *UserRepo) ExistsByEmail(ctx context.Context, tenantID identifier.TenantID, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND email = $2)`,
		tenantID.UUID(), email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user by email: %w", err)
	}
	return exists, nil
}

// ExistsByLogin verifica a unicidade do login dentro da organização.
func (r *UserRepo) ExistsByLogin(ctx context.Context, tenantID identifier.TenantID, login string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND login = $2)`,
		tenantID.UUID(), login,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user by login: %w", err)
	}
	return exists, nil
}

// Update persiste um usuário mutado, guardado por row_version.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET name = $3, email = $4, login = $5, password_hash = $6, role = $7,
		    status = $8, last_access_at = $9, updated_at = $10, updated_by = $11,
		    row_version = row_version + 1
		WHERE tenant_id = $1 AND id = $2 AND row_version = $12`
	tag, err := r.db.Exec(ctx, query,
		u.TenantID.UUID(), u.ID.UUID(), u.Name, u.Email, u.Login, u.PasswordHash,
		string(u.Role), string(u.Status), u.LastAccessAt,
		u.UpdatedAt, u.UpdatedBy.UUID(), u.RowVersion,
	)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.db,
			`SELECT EXISTS (SELECT 1 FROM users WHERE tenant_id = $1 AND id = $2)`,
			u.TenantID.UUID(), u.ID.UUID())
	}
	u.RowVersion++
	return nil
}

// ListByTenant lista usuários da organização com paginação.
func (r *UserRepo) ListByTenant(ctx context.Context, tenantID identifier.TenantID, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, tenantID.UUID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete remove fisicamente um usuário da organização.
func (r *UserRepo) Delete(ctx context.Context, tenantID identifier.TenantID, id identifier.UserID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM users WHERE tenant_id = $1 AND id = $2`,
		tenantID.UUID(), id.UUID())
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role, status string
	err := row.Scan(&u.ID, &u.TenantID, &u.Name, &u.Email, &u.Login, &u.PasswordHash,
		&role, &status, &u.LastAccessAt,
		&u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy, &u.RowVersion)
	if err != nil {
		return nil, err
	}
	u.Role = entity.UserRole(role)
	u.Status = entity.UserStatus(status)
	return &u, nil
}
