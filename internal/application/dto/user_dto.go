package dto

import "time"

// CreateUserRequest criação de usuário numa organização. Password chega em
// claro e é convertida em hash bcrypt pelo serviço; nunca é persistida.
type CreateUserRequest struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Actor    Actor  `json:"actor"`
}

// ChangeUserStatusRequest ativação/inativação de usuário.
type ChangeUserStatusRequest struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Status   string `json:"status"`
	Actor    Actor  `json:"actor"`
}

// ChangeUserRoleRequest troca de papel.
type ChangeUserRoleRequest struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Actor    Actor  `json:"actor"`
}

// SessionRequest registro de login/logout na trilha de auditoria.
type SessionRequest struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Actor    Actor  `json:"actor"`
}

// UserResponse representação externa de um usuário (sem hash de senha).
type UserResponse struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenant_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Login        string     `json:"login"`
	Role         string     `json:"role"`
	Status       string     `json:"status"`
	LastAccessAt *time.Time `json:"last_access_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserListResponse listagem paginada de usuários.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
