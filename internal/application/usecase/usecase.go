// Package usecase implementa os serviços de aplicação: carregam agregados
// via repositórios com escopo de organização, invocam os métodos de mutação
// do domínio e confirmam mutação + registro de auditoria na mesma unidade de
// trabalho. Nenhum erro é logado ou engolido aqui; tudo sobe ao caller.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/application/dto"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/entity"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/repository"
)

// encodeSnapshot serializa um snapshot explícito para o payload opaco da
// trilha de auditoria.
func encodeSnapshot(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("serializar snapshot: %w", err)
	}
	return string(b), nil
}

// parseActor valida o ator da mutação.
func parseActor(a dto.Actor) (identifier.UserID, error) {
	return identifier.ParseUserID(a.UserID)
}

// appendAudit anexa um registro de auditoria dentro da transação corrente.
func appendAudit(ctx context.Context, r repository.Repos, tenantID identifier.TenantID, actorID identifier.UserID, a dto.Actor, kind, entityID string, op entity.AuditOperation, before, after string, now time.Time) error {
	e, err := entity.NewAuditEntry(tenantID, actorID, kind, entityID, op, a.ClientIP, before, after, a.UserAgent, now)
	if err != nil {
		return err
	}
	return r.Audit.Append(ctx, e)
}
