// Package seed loads the fixed reference data the application expects at
// startup. Seeding is idempotent: rows are inserted with upsert-by-name
// semantics and re-running the seed creates no duplicates.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appRepos "github.com/senadev/guias-backend/internal/app/repositories"
)

// defaultRegionals is the fixed list of regional offices.
var defaultRegionals = []string{
	"Cauca", "Huila", "Antioquia", "Valle", "Nariño", "Cundinamarca",
	"Atlántico", "Santander", "Boyacá", "Risaralda",
}

// defaultPrograms is the fixed list of training programs.
var defaultPrograms = []string{
	"Desarrollo de Software", "Multimedia", "Inteligencia Artificial",
	"Analítica de Datos", "Construcción", "Contabilidad", "Diseño Gráfico",
	"Electrónica", "Mecánica Industrial",
}

// CreateDefaultData seeds regionals and training programs that are not
// present yet. Individual failures are collected so one bad row does not
// block the rest of the seed.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	regionalRepo := appRepos.NewRegionalRepository(dbPool)
	programRepo := appRepos.NewProgramRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Regionals/Training Programs)...")
	var finalErr error

	for _, name := range defaultRegionals {
		if err := regionalRepo.EnsureByName(ctx, name); err != nil {
			lgr.Error().Err(err).Str("regional", name).Msg("Error seeding regional")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, name := range defaultPrograms {
		if err := programRepo.EnsureByName(ctx, name); err != nil {
			lgr.Error().Err(err).Str("program", name).Msg("Error seeding training program")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
