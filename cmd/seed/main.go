package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"herohome/internal/cache"
	"herohome/internal/config"
	"herohome/internal/db"
	apperrors "herohome/internal/errors"
	"herohome/internal/logger"
	"herohome/internal/model"
	"herohome/internal/repository"
	"herohome/internal/service"
)

// roleCache is the part of the cache the seed touches: a promoted admin must
// not keep a previously cached "user" role.
type roleCache interface {
	Delete(ctx context.Context, key string) error
}

func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, true)
	log.Info().Str("file", cfg.SeedFile).Msg("starting seed")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo client")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := db.Ping(ctx, client); err != nil {
		log.Fatal().Err(err).Msg("mongo ping")
	}
	database := client.Database(cfg.DBName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	services, err := loadServices(cfg.SeedFile, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("load seed file")
	}

	serviceRepo := repository.NewServiceRepository(database)
	created, skipped := 0, 0
	for _, svc := range services {
		title := svc.Extra.String("title")
		exists, err := serviceRepo.ExistsWithTitle(ctx, title)
		if err != nil {
			log.Fatal().Err(err).Str("title", title).Msg("lookup service")
		}
		if exists {
			skipped++
			continue
		}
		if _, err := serviceRepo.Create(ctx, svc); err != nil {
			log.Fatal().Err(err).Str("title", title).Msg("insert service")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("services seeded")

	if cfg.SeedAdminEmail != "" {
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
		defer cacheClient.Close()

		userRepo := repository.NewUserRepository(database)
		if err := seedAdmin(ctx, userRepo, cacheClient, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			log.Fatal().Err(err).Msg("seed admin")
		}
		log.Info().Str("email", cfg.SeedAdminEmail).Msg("admin ready")
	}
}

// loadServices reads a JSON array of service documents. Embedded reviews are
// kept and the aggregates computed from them.
func loadServices(path string, now time.Time) ([]*model.Service, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var docs []model.Fields
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	services := make([]*model.Service, 0, len(docs))
	for i, doc := range docs {
		if doc.String("title") == "" {
			return nil, fmt.Errorf("service %d has no title", i)
		}
		svc := model.NewService(doc, now)
		svc.Reviews = seedReviews(doc["reviews"], now)
		svc.AverageRating, svc.ReviewCount = model.RatingStats(svc.Reviews)
		services = append(services, svc)
	}
	return services, nil
}

func seedReviews(v interface{}, now time.Time) []model.Review {
	items, _ := v.([]interface{})
	reviews := make([]model.Review, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		doc := model.Fields(m)
		rating, ok := doc["rating"].(float64)
		if !ok {
			continue
		}
		date, ok := model.ParseTime(doc["date"])
		if !ok {
			date = now
		}
		reviews = append(reviews, model.Review{
			Rating: int(rating),
			Date:   date,
			Extra:  doc.Without("rating", "date"),
		})
	}
	return reviews
}

// seedAdmin creates the admin account, or promotes it when the email is
// already registered. Any cached role for the email is dropped either way.
func seedAdmin(ctx context.Context, users repository.UserRepository, roles roleCache, email, password string) error {
	if err := ensureAdmin(ctx, users, email, password); err != nil {
		return err
	}
	return roles.Delete(ctx, service.RoleCacheKey(email))
}

func ensureAdmin(ctx context.Context, users repository.UserRepository, email, password string) error {
	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == model.RoleAdmin {
			return nil
		}
		_, err = users.UpdateRole(ctx, existing.ID, model.RoleAdmin)
		return err
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return err
	}

	admin := model.NewUser(model.Fields{"email": email, "name": "Administrator"}, time.Now().UTC())
	admin.Role = model.RoleAdmin
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = string(hash)
	}
	_, err = users.Create(ctx, admin)
	return err
}
