package dto

import "time"

// RegisterTenantRequest registro de uma nova organização.
type RegisterTenantRequest struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Actor Actor  `json:"actor"`
}

// RenameTenantRequest troca do nome de exibição.
type RenameTenantRequest struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Actor    Actor  `json:"actor"`
}

// ChangeTenantStatusRequest mutação administrativa de status.
type ChangeTenantStatusRequest struct {
	TenantID string `json:"tenant_id"`
	Status   string `json:"status"`
	Actor    Actor  `json:"actor"`
}

// SetTenantExpirationRequest define ou limpa (nil) a expiração.
type SetTenantExpirationRequest struct {
	TenantID  string     `json:"tenant_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Actor     Actor      `json:"actor"`
}

// TenantResponse representação externa de uma organização.
type TenantResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TenantListResponse listagem paginada de organizações.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
