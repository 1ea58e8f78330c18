package dto

import "time"

// CreateOwnerTypeRequest criação de tipo de dono.
type CreateOwnerTypeRequest struct {
	TenantID string `json:"tenant_id"`
	Name     string `json:"name"`
	Actor    Actor  `json:"actor"`
}

// CreateDocumentTypeRequest criação de tipo de documento.
type CreateDocumentTypeRequest struct {
	TenantID                string `json:"tenant_id"`
	Name                    string `json:"name"`
	AllowsMultipleDocuments bool   `json:"allows_multiple_documents"`
	Actor                   Actor  `json:"actor"`
}

// RenameCatalogEntryRequest renomeação de tipo de dono ou de documento.
type RenameCatalogEntryRequest struct {
	TenantID string `json:"tenant_id"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Actor    Actor  `json:"actor"`
}

// ChangeAllowsMultipleRequest alterna a política de documento único.
type ChangeAllowsMultipleRequest struct {
	TenantID                string `json:"tenant_id"`
	DocumentTypeID          string `json:"document_type_id"`
	AllowsMultipleDocuments bool   `json:"allows_multiple_documents"`
	Actor                   Actor  `json:"actor"`
}

// TypeLinkRequest vínculo (ou desvínculo) de compatibilidade entre um tipo
// de dono e um tipo de documento.
type TypeLinkRequest struct {
	TenantID       string `json:"tenant_id"`
	OwnerTypeID    string `json:"owner_type_id"`
	DocumentTypeID string `json:"document_type_id"`
	Actor          Actor  `json:"actor"`
}

// OwnerTypeResponse representação externa de um tipo de dono.
type OwnerTypeResponse struct {
	ID              string    `json:"id"`
	TenantID        string    `json:"tenant_id"`
	Name            string    `json:"name"`
	DocumentTypeIDs []string  `json:"document_type_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DocumentTypeResponse representação externa de um tipo de documento.
type DocumentTypeResponse struct {
	ID                      string    `json:"id"`
	TenantID                string    `json:"tenant_id"`
	Name                    string    `json:"name"`
	AllowsMultipleDocuments bool      `json:"allows_multiple_documents"`
	OwnerTypeIDs            []string  `json:"owner_type_ids"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
