package dto

import "time"

// RegisterDocumentRequest registro de um documento já gravado no blob store
// (StorageKey aponta para o conteúdo; o upload em si é colaborador externo).
type RegisterDocumentRequest struct {
	TenantID       string `json:"tenant_id"`
	FileName       string `json:"file_name"`
	StorageKey     string `json:"storage_key"`
	SizeBytes      int64  `json:"size_bytes"`
	FileKind       string `json:"file_kind"`
	DocumentTypeID string `json:"document_type_id"`
	Actor          Actor  `json:"actor"`
}

// ChangeDocumentStatusRequest alterna Active ⇄ Inactive.
type ChangeDocumentStatusRequest struct {
	TenantID   string `json:"tenant_id"`
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	Actor      Actor  `json:"actor"`
}

// SetDocumentVersionRequest define a versão do conteúdo.
type SetDocumentVersionRequest struct {
	TenantID   string `json:"tenant_id"`
	DocumentID string `json:"document_id"`
	Version    int    `json:"version"`
	Actor      Actor  `json:"actor"`
}

// DownloadDocumentRequest registro de download na trilha de auditoria.
type DownloadDocumentRequest struct {
	TenantID   string `json:"tenant_id"`
	DocumentID string `json:"document_id"`
	Actor      Actor  `json:"actor"`
}

// DocumentResponse representação externa de um documento.
type DocumentResponse struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	FileName       string    `json:"file_name"`
	StorageKey     string    `json:"storage_key"`
	UploadedAt     time.Time `json:"uploaded_at"`
	SizeBytes      int64     `json:"size_bytes"`
	FileKind       string    `json:"file_kind"`
	Version        int       `json:"version"`
	Status         string    `json:"status"`
	DocumentTypeID string    `json:"document_type_id"`
	OwnerIDs       []string  `json:"owner_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DocumentListResponse listagem paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
