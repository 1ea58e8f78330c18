package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tiagosilvacosta/gestao-documentos/internal/application/dto"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

const minPasswordLen = 8

// UserUseCase serviço de aplicação para usuários.
type UserUseCase struct {
	uow   repository.UnitOfWork
	users repository.UserRepository
}

// NewUserUseCase constrói o serviço com a unidade de trabalho e o
// repositório de leitura.
func NewUserUseCase(uow repository.UnitOfWork, users repository.UserRepository) *UserUseCase {
	return &UserUseCase{uow: uow, users: users}
}

// Create cria um usuário na organização. Pré-checa unicidade de email e
// login (normalizados para minúsculas) e converte a senha em hash bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(in.Actor)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: senha deve ter ao menos %d caracteres", domain.ErrValidation, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("gerar hash de senha: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	login := strings.ToLower(strings.TrimSpace(in.Login))

	var out *dto.UserResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		if exists, err := r.Users.ExistsByEmail(ctx, tenantID, email); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateEmail
		}
		if exists, err := r.Users.ExistsByLogin(ctx, tenantID, login); err != nil {
			return err
		} else if exists {
			return domain.ErrDuplicateLogin
		}
		now := time.Now().UTC()
		user, err := entity.NewUser(tenantID, in.Name, in.Email, in.Login, string(hash), entity.UserRole(in.Role), actorID, now)
		if err != nil {
			return err
		}
		if err := r.Users.Create(ctx, tenantID, user); err != nil {
			return err
		}
		after, err := encodeSnapshot(user.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tenantID, actorID, in.Actor, entity.KindUser, user.ID.String(), entity.OperationCreate, "", after, now); err != nil {
			return err
		}
		out = toUserResponse(user)
		return nil
	})
	return out, err
}

// ChangeStatus ativa ou inativa um usuário.
func (uc *UserUseCase) ChangeStatus(ctx context.Context, in dto.ChangeUserStatusRequest) (*dto.UserResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.UserID, in.Actor, func(u *entity.User, by identifier.UserID, now time.Time) error {
		return u.ChangeStatus(entity.UserStatus(in.Status), by, now)
	})
}

// ChangeRole troca o papel de um usuário.
func (uc *UserUseCase) ChangeRole(ctx context.Context, in dto.ChangeUserRoleRequest) (*dto.UserResponse, error) {
	return uc.mutate(ctx, in.TenantID, in.UserID, in.Actor, func(u *entity.User, by identifier.UserID, now time.Time) error {
		return u.ChangeRole(entity.UserRole(in.Role), by, now)
	})
}

// RecordAccess marca o último acesso do usuário. Não gera auditoria: o
// login em si é registrado por RecordLogin.
func (uc *UserUseCase) RecordAccess(ctx context.Context, tenantID, userID string) error {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return err
	}
	uid, err := identifier.ParseUserID(userID)
	if err != nil {
		return err
	}
	user, err := uc.users.GetByID(ctx, tid, uid)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	user.RecordAccess(time.Now().UTC())
	return uc.users.Update(ctx, user)
}

// RecordLogin registra a entrada do usuário na trilha de auditoria.
func (uc *UserUseCase) RecordLogin(ctx context.Context, in dto.SessionRequest) error {
	return uc.recordSession(ctx, in, entity.NewLoginEntry)
}

// RecordLogout registra a saída do usuário na trilha de auditoria.
func (uc *UserUseCase) RecordLogout(ctx context.Context, in dto.SessionRequest) error {
	return uc.recordSession(ctx, in, entity.NewLogoutEntry)
}

func (uc *UserUseCase) recordSession(ctx context.Context, in dto.SessionRequest, build func(identifier.TenantID, identifier.UserID, string, string, time.Time) (*entity.AuditEntry, error)) error {
	tenantID, err := identifier.ParseTenantID(in.TenantID)
	if err != nil {
		return err
	}
	userID, err := identifier.ParseUserID(in.UserID)
	if err != nil {
		return err
	}
	return uc.uow.Run(ctx, func(r repository.Repos) error {
		e, err := build(tenantID, userID, in.Actor.ClientIP, in.Actor.UserAgent, time.Now().UTC())
		if err != nil {
			return err
		}
		return r.Audit.Append(ctx, e)
	})
}

func (uc *UserUseCase) mutate(ctx context.Context, tenantID, userID string, actor dto.Actor, fn func(*entity.User, identifier.UserID, time.Time) error) (*dto.UserResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	uid, err := identifier.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	actorID, err := parseActor(actor)
	if err != nil {
		return nil, err
	}
	var out *dto.UserResponse
	err = uc.uow.Run(ctx, func(r repository.Repos) error {
		user, err := r.Users.GetByID(ctx, tid, uid)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		before, err := encodeSnapshot(user.Snapshot())
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if err := fn(user, actorID, now); err != nil {
			return err
		}
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}
		after, err := encodeSnapshot(user.Snapshot())
		if err != nil {
			return err
		}
		if err := appendAudit(ctx, r, tid, actorID, actor, entity.KindUser, user.ID.String(), entity.OperationUpdate, before, after, now); err != nil {
			return err
		}
		out = toUserResponse(user)
		return nil
	})
	return out, err
}

// GetByID obtém um usuário por ID dentro da organização.
func (uc *UserUseCase) GetByID(ctx context.Context, tenantID, userID string) (*dto.UserResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	uid, err := identifier.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, tid, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

// ListByTenant lista usuários da organização com paginação.
func (uc *UserUseCase) ListByTenant(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	page = page.Normalized()
	list, err := uc.users.ListByTenant(ctx, tid, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID.String(),
		TenantID:     u.TenantID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Login:        u.Login,
		Role:         string(u.Role),
		Status:       string(u.Status),
		LastAccessAt: u.LastAccessAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
