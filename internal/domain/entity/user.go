package entity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/domain"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
)

// Papéis válidos para User.
const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserRole papel do usuário dentro da organização.
type UserRole string

func (r UserRole) valid() bool { return r == RoleAdmin || r == RoleUser }

// Status possíveis de um usuário.
const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// UserStatus estado de um usuário.
type UserStatus string

func (s UserStatus) valid() bool { return s == UserActive || s == UserInactive }

const (
	maxUserName  = 120
	maxUserEmail = 254
	minUserLogin = 3
	maxUserLogin = 50
)

// User é o ator das mutações; toda operação do domínio é atribuída a um
// usuário. Email e login são únicos por organização, sempre minúsculos.
type User struct {
	ID identifier.UserID
	TenantScoped
	Name         string
	Email        string
	Login        string
	PasswordHash string // hash opaco; o domínio nunca vê a senha em claro
	Role         UserRole
	Status       UserStatus
	LastAccessAt *time.Time
}

// NewUser cria um usuário ativo na organização informada. Email e login são
// aparados e normalizados para minúsculas; a unicidade por organização é
// pré-checada pelo serviço de aplicação.
func NewUser(tenantID identifier.TenantID, name, email, login, passwordHash string, role UserRole, createdBy identifier.UserID, now time.Time) (*User, error) {
	if err := requireID("organização", tenantID); err != nil {
		return nil, err
	}
	name, err := requireText("nome", name, maxUserName)
	if err != nil {
		return nil, err
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	login, err = requireText("login", login, maxUserLogin)
	if err != nil {
		return nil, err
	}
	login = strings.ToLower(login)
	if len(login) < minUserLogin {
		return nil, fmt.Errorf("%w: login deve ter ao menos %d caracteres", domain.ErrValidation, minUserLogin)
	}
	if _, err := requireText("hash de senha", passwordHash, 0); err != nil {
		return nil, err
	}
	if !role.valid() {
		return nil, fmt.Errorf("%w: papel desconhecido: %q", domain.ErrValidation, role)
	}
	if err := requireID("usuário criador", createdBy); err != nil {
		return nil, err
	}
	return &User{
		ID: identifier.NewUserID(),
		TenantScoped: TenantScoped{
			TenantID:  tenantID,
			CreatedAt: now,
			CreatedBy: createdBy,
			UpdatedAt: now,
			UpdatedBy: createdBy,
		},
		Name:         name,
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       UserActive,
	}, nil
}

// ChangeStatus ativa ou inativa o usuário.
func (u *User) ChangeStatus(status UserStatus, by identifier.UserID, now time.Time) error {
	if !status.valid() {
		return fmt.Errorf("%w: status de usuário desconhecido: %q", domain.ErrValidation, status)
	}
	u.Status = status
	u.Touch(by, now)
	return nil
}

// ChangeRole altera o papel do usuário.
func (u *User) ChangeRole(role UserRole, by identifier.UserID, now time.Time) error {
	if !role.valid() {
		return fmt.Errorf("%w: papel desconhecido: %q", domain.ErrValidation, role)
	}
	u.Role = role
	u.Touch(by, now)
	return nil
}

// RecordAccess marca o último acesso. Não toca autoria de atualização nem
// gera auditoria por si; o registro de login é responsabilidade do
// componente de auditoria.
func (u *User) RecordAccess(now time.Time) {
	u.LastAccessAt = &now
}

// normalizeEmail apara, valida forma RFC e devolve em minúsculas.
// Endereços com display name ("Fulano <a@b>") são rejeitados.
func normalizeEmail(email string) (string, error) {
	email, err := requireText("email", email, maxUserEmail)
	if err != nil {
		return "", err
	}
	email = strings.ToLower(email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("%w: email malformado", domain.ErrValidation)
	}
	return email, nil
}
