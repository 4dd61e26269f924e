// Command importer bulk loads the species catalog from a JSON array of
// pokemon entries.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"pokecard_backend/internal/app/config"
	"pokecard_backend/internal/app/di"
	catalogadapters "pokecard_backend/internal/feature/catalog/adapters"
	"pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/feature/catalog/transport/http/dto"
	catalogusecase "pokecard_backend/internal/feature/catalog/usecase"
	"pokecard_backend/internal/platform/cache"
	"pokecard_backend/internal/platform/db"
	infraredis "pokecard_backend/internal/platform/redis"
	"pokecard_backend/internal/shared/ratelimiter"
)

func main() {
	file := flag.String("file", "pokemons.json", "path to the catalog JSON array")
	replace := flag.Bool("replace", false, "delete every catalog entry before importing")
	batch := flag.Int("batch", catalogusecase.DefaultImportBatchSize, "entries written per batch")
	perSecond := flag.Int("rate", 5, "batches written per second; 0 disables throttling")
	flag.Parse()

	config.LoadDotEnv(".env")

	if err := run(*file, *replace, *batch, *perSecond); err != nil {
		log.Fatal(err)
	}
}

func run(file string, replace bool, batch, perSecond int) error {
	species, err := readCatalog(file)
	if err != nil {
		return err
	}

	gdb, err := db.Open(db.LoadConfigFromEnv(), &catalogadapters.SpeciesModel{})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Redis が使えるときはキャッシュ経由で書き込み、古いエントリを残さない
	var rdb *redisv9.Client
	if redisCfg := infraredis.LoadConfigFromEnv(); redisCfg.Enabled() {
		if rdb, err = infraredis.NewRedisClient(ctx, redisCfg); err != nil {
			slog.Warn("Redis unavailable, cached catalog entries expire on their own", "error", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	repo := di.NewSpeciesRepository(rdb, gdb, cache.DefaultTTL)
	uc := catalogusecase.NewImportUsecase(repo, ratelimiter.NewRateLimiter(perSecond, time.Second), batch)

	n, err := uc.Import(ctx, species, replace)
	if err != nil {
		return fmt.Errorf("import failed after %d entries: %w", n, err)
	}
	slog.Info("import ok", "file", file, "entries", n, "replace", replace)
	return nil
}

func readCatalog(path string) ([]entity.Species, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return decodeCatalog(f)
}

// decodeCatalog reads the same entry shape the HTTP API serves.
func decodeCatalog(r io.Reader) ([]entity.Species, error) {
	var entries []dto.PokemonDTO
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	out := make([]entity.Species, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ToEntity())
	}
	return out, nil
}
