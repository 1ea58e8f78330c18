package dto

import "time"

// RegisterOwnerRequest criação de um dono de documentos.
type RegisterOwnerRequest struct {
	TenantID     string `json:"tenant_id"`
	FriendlyName string `json:"friendly_name"`
	OwnerTypeID  string `json:"owner_type_id"`
	Actor        Actor  `json:"actor"`
}

// RenameOwnerRequest troca do nome de exibição do dono.
type RenameOwnerRequest struct {
	TenantID     string `json:"tenant_id"`
	OwnerID      string `json:"owner_id"`
	FriendlyName string `json:"friendly_name"`
	Actor        Actor  `json:"actor"`
}

// OwnershipRequest vínculo (ou desvínculo) entre documento e dono.
type OwnershipRequest struct {
	TenantID   string `json:"tenant_id"`
	OwnerID    string `json:"owner_id"`
	DocumentID string `json:"document_id"`
	Actor      Actor  `json:"actor"`
}

// OwnerResponse representação externa de um dono.
type OwnerResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	FriendlyName string    `json:"friendly_name"`
	OwnerTypeID  string    `json:"owner_type_id"`
	DocumentIDs  []string  `json:"document_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnerListResponse listagem paginada de donos.
type OwnerListResponse struct {
	Items []OwnerResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
