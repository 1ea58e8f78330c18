package main

import (
	"context"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/application/dto"
	"github.com/tiagosilvacosta/gestao-documentos/internal/application/usecase"
	"github.com/tiagosilvacosta/gestao-documentos/internal/domain/identifier"
	"github.com/tiagosilvacosta/gestao-documentos/internal/infrastructure/postgres"
	"github.com/tiagosilvacosta/gestao-documentos/pkg/config"
	"github.com/tiagosilvacosta/gestao-documentos/pkg/logger"
)

// Seed idempotente: cria a organização inicial e seu administrador se ainda
// não existirem. Roda pelos serviços de aplicação reais, então a trilha de
// auditoria registra a criação como qualquer outra.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	if cfg.Seed.AdminPassword == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD é obrigatória")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	uow := postgres.NewUnitOfWork(pool)
	repos := postgres.NewRepos(pool)
	tenantUC := usecase.NewTenantUseCase(uow, repos.Tenants)
	userUC := usecase.NewUserUseCase(uow, repos.Users)

	// Ator de bootstrap: antes do primeiro usuário existir, as criações são
	// atribuídas a um ID sintético do processo de seed.
	actor := dto.Actor{
		UserID:   identifier.NewUserID().String(),
		ClientIP: "127.0.0.1",
	}

	tenantID := ""
	existing, err := repos.Tenants.GetBySlug(ctx, cfg.Seed.TenantSlug)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar organização inicial")
	}
	if existing != nil {
		tenantID = existing.ID.String()
		log.Info().Str("slug", cfg.Seed.TenantSlug).Msg("organização inicial já existe")
	} else {
		created, err := tenantUC.Register(ctx, dto.RegisterTenantRequest{
			Name:  cfg.Seed.TenantName,
			Slug:  cfg.Seed.TenantSlug,
			Actor: actor,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("criar organização inicial")
		}
		tenantID = created.ID
		log.Info().Str("tenant_id", tenantID).Str("slug", created.Slug).Msg("organização inicial criada")
	}

	tid, err := identifier.ParseTenantID(tenantID)
	if err != nil {
		log.Fatal().Err(err).Msg("id da organização inválido")
	}
	hasAdmin, err := repos.Users.ExistsByLogin(ctx, tid, cfg.Seed.AdminLogin)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar administrador inicial")
	}
	if hasAdmin {
		log.Info().Str("login", cfg.Seed.AdminLogin).Msg("administrador inicial já existe")
		return
	}

	admin, err := userUC.Create(ctx, dto.CreateUserRequest{
		TenantID: tenantID,
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Login:    cfg.Seed.AdminLogin,
		Password: cfg.Seed.AdminPassword,
		Role:     "admin",
		Actor:    actor,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("criar administrador inicial")
	}
	log.Info().Str("user_id", admin.ID).Str("login", admin.Login).Msg("administrador inicial criado")
}
