package entity

import "time"

// Snapshots explícitos e versionados para os payloads before/after da trilha
// de auditoria. Cada tipo captura exatamente os campos relevantes — nada de
// serialização genérica por reflexão. SchemaVersion permite evoluir o formato
// sem quebrar leitores de registros antigos.

const snapshotSchemaVersion = 1

// TenantSnapshot estado auditável de uma organização.
type TenantSnapshot struct {
	SchemaVersion int        `json:"schema_version"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Status        string     `json:"status"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// Snapshot captura o estado auditável da organização.
func (t *Tenant) Snapshot() TenantSnapshot {
	return TenantSnapshot{
		SchemaVersion: snapshotSchemaVersion,
		Name:          t.Name,
		Slug:          t.Slug,
		Status:        string(t.Status),
		ExpiresAt:     t.ExpiresAt,
	}
}

// UserSnapshot estado auditável de um usuário. O hash de senha fica de fora
// por princípio: a trilha de auditoria não guarda credenciais.
type UserSnapshot struct {
	SchemaVersion int        `json:"schema_version"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Login         string     `json:"login"`
	Role          string     `json:"role"`
	Status        string     `json:"status"`
	LastAccessAt  *time.Time `json:"last_access_at,omitempty"`
}

// Snapshot captura o estado auditável do usuário.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		SchemaVersion: snapshotSchemaVersion,
		Name:          u.Name,
		Email:         u.Email,
		Login:         u.Login,
		Role:          string(u.Role),
		Status:        string(u.Status),
		LastAccessAt:  u.LastAccessAt,
	}
}

// OwnerTypeSnapshot estado auditável de um tipo de dono.
type OwnerTypeSnapshot struct {
	SchemaVersion   int      `json:"schema_version"`
	Name            string   `json:"name"`
	DocumentTypeIDs []string `json:"document_type_ids"`
}

// Snapshot captura o estado auditável do tipo de dono, incluindo as
// categorias de documento compatíveis.
func (ot *OwnerType) Snapshot() OwnerTypeSnapshot {
	ids := make([]string, 0, len(ot.links))
	for _, l := range ot.links {
		ids = append(ids, l.DocumentTypeID.String())
	}
	return OwnerTypeSnapshot{
		SchemaVersion:   snapshotSchemaVersion,
		Name:            ot.Name,
		DocumentTypeIDs: ids,
	}
}

// DocumentTypeSnapshot estado auditável de um tipo de documento.
type DocumentTypeSnapshot struct {
	SchemaVersion           int      `json:"schema_version"`
	Name                    string   `json:"name"`
	AllowsMultipleDocuments bool     `json:"allows_multiple_documents"`
	OwnerTypeIDs            []string `json:"owner_type_ids"`
}

// Snapshot captura o estado auditável do tipo de documento.
func (dt *DocumentType) Snapshot() DocumentTypeSnapshot {
	ids := make([]string, 0, len(dt.links))
	for _, l := range dt.links {
		ids = append(ids, l.OwnerTypeID.String())
	}
	return DocumentTypeSnapshot{
		SchemaVersion:           snapshotSchemaVersion,
		Name:                    dt.Name,
		AllowsMultipleDocuments: dt.AllowsMultipleDocuments,
		OwnerTypeIDs:            ids,
	}
}

// OwnerSnapshot estado auditável de um dono.
type OwnerSnapshot struct {
	SchemaVersion int      `json:"schema_version"`
	FriendlyName  string   `json:"friendly_name"`
	OwnerTypeID   string   `json:"owner_type_id"`
	DocumentIDs   []string `json:"document_ids"`
}

// Snapshot captura o estado auditável do dono, incluindo os documentos
// vinculados carregados.
func (o *Owner) Snapshot() OwnerSnapshot {
	ids := make([]string, 0, len(o.links))
	for _, l := range o.links {
		ids = append(ids, l.DocumentID.String())
	}
	return OwnerSnapshot{
		SchemaVersion: snapshotSchemaVersion,
		FriendlyName:  o.FriendlyName,
		OwnerTypeID:   o.OwnerTypeID.String(),
		DocumentIDs:   ids,
	}
}

// DocumentSnapshot estado auditável de um documento.
type DocumentSnapshot struct {
	SchemaVersion  int       `json:"schema_version"`
	FileName       string    `json:"file_name"`
	StorageKey     string    `json:"storage_key"`
	UploadedAt     time.Time `json:"uploaded_at"`
	SizeBytes      int64     `json:"size_bytes"`
	FileKind       string    `json:"file_kind"`
	Version        int       `json:"version"`
	Status         string    `json:"status"`
	DocumentTypeID string    `json:"document_type_id"`
	OwnerIDs       []string  `json:"owner_ids"`
}

// Snapshot captura o estado auditável do documento, incluindo os donos
// vinculados carregados.
func (d *Document) Snapshot() DocumentSnapshot {
	ids := make([]string, 0, len(d.links))
	for _, l := range d.links {
		ids = append(ids, l.OwnerID.String())
	}
	return DocumentSnapshot{
		SchemaVersion:  snapshotSchemaVersion,
		FileName:       d.FileName,
		StorageKey:     d.StorageKey,
		UploadedAt:     d.UploadedAt,
		SizeBytes:      d.SizeBytes,
		FileKind:       d.FileKind,
		Version:        d.Version,
		Status:         string(d.Status),
		DocumentTypeID: d.DocumentTypeID.String(),
		OwnerIDs:       ids,
	}
}
