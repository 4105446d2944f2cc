// Command migrate applies the schema and optionally seeds sample listings
// for local development. Run with -seed on an empty database.
package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/jatinm79/Real-Estate-App/internal/adapters/observability"
	"github.com/jatinm79/Real-Estate-App/internal/domain"
	"github.com/jatinm79/Real-Estate-App/internal/shared"
	"github.com/jatinm79/Real-Estate-App/internal/storage/postgres"
)

func main() {
	seed := flag.Bool("seed", false, "insert sample listings after migrating")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}
	log.Info().Msg("schema up to date")

	if !*seed {
		return
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&count); err != nil {
		log.Fatal().Err(err).Msg("count properties failed")
	}
	if count > 0 {
		log.Info().Int("existing", count).Msg("database not empty, skipping seed")
		return
	}

	repo := postgres.NewPropertyRepo(db)
	for _, np := range sampleProperties() {
		p, err := repo.Create(ctx, np)
		if err != nil {
			log.Fatal().Err(err).Str("project", np.ProjectName).Msg("seed insert failed")
		}
		log.Info().Int64("id", p.ID).Str("project", p.ProjectName).Msg("seeded property")
	}
}

func sampleProperties() []domain.NewProperty {
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	return []domain.NewProperty{
		{
			ProjectName:  "Skyline Residency",
			BuilderName:  "Horizon Developers",
			Location:     "Sector 62, Noida, Uttar Pradesh",
			Price:        8500000,
			Description:  str("Spacious 3BHK apartments with clubhouse, gym and landscaped gardens."),
			Bedrooms:     num(3),
			Bathrooms:    num(3),
			Area:         num(1650),
			PropertyType: str("apartment"),
			YearBuilt:    num(2022),
			Parking:      num(2),
			Floors:       num(14),
		},
		{
			ProjectName:  "Green Valley Villas",
			BuilderName:  "Evergreen Estates",
			Location:     "Whitefield, Bengaluru, Karnataka",
			Price:        21500000,
			Description:  str("Independent villas with private gardens in a gated community."),
			Bedrooms:     num(4),
			Bathrooms:    num(5),
			Area:         num(3200),
			PropertyType: str("villa"),
			YearBuilt:    num(2021),
			Parking:      num(3),
			Floors:       num(2),
		},
		{
			ProjectName:  "Marina Heights",
			BuilderName:  "Coastal Builders",
			Location:     "Marine Drive, Kochi, Kerala",
			Price:        12750000,
			Description:  str("Sea-facing 2BHK flats with infinity pool and rooftop lounge."),
			Bedrooms:     num(2),
			Bathrooms:    num(2),
			Area:         num(1280),
			PropertyType: str("apartment"),
			YearBuilt:    num(2023),
			Parking:      num(1),
			Floors:       num(22),
		},
		{
			ProjectName:  "Heritage Enclave",
			BuilderName:  "Sterling Constructions",
			Location:     "Banjara Hills, Hyderabad, Telangana",
			Price:        45000000,
			Description:  str("Premium penthouse with terrace garden and home-automation fit-out."),
			Bedrooms:     num(5),
			Bathrooms:    num(6),
			Area:         num(5400),
			PropertyType: str("penthouse"),
			YearBuilt:    num(2020),
			Parking:      num(4),
			Floors:       num(2),
		},
	}
}
