package main

import (
	"context"
	"flag"
	"time"

	"github.com/tiagosilvacosta/gestao-documentos/internal/infrastructure/postgres"
	"github.com/tiagosilvacosta/gestao-documentos/pkg/config"
	"github.com/tiagosilvacosta/gestao-documentos/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "reverte a última migração em vez de aplicar")
	status := flag.Bool("status", false, "mostra a versão corrente do schema e sai")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := cfg.DB.ConnectionString()

	switch {
	case *status:
		version, err := postgres.MigrationStatus(ctx, dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("consultar versão do schema")
		}
		log.Info().Int64("version", version).Msg("versão corrente do schema")
	case *down:
		if err := postgres.RollbackMigration(ctx, dsn); err != nil {
			log.Fatal().Err(err).Msg("reverter migração")
		}
		log.Info().Msg("última migração revertida")
	default:
		if err := postgres.RunMigrations(ctx, dsn); err != nil {
			log.Fatal().Err(err).Msg("aplicar migrações")
		}
		log.Info().Msg("migrações aplicadas")
	}
}
