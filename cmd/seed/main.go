// Seeds the database with an admin account and a small demo catalog.
// Safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skyriting/skyriting/internal/auth"
	"github.com/skyriting/skyriting/internal/config"
	"github.com/skyriting/skyriting/internal/database"
	"github.com/skyriting/skyriting/internal/domain"
	postgresrepo "github.com/skyriting/skyriting/internal/repository/postgres"
	"github.com/skyriting/skyriting/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, cfg); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	userRepo := postgresrepo.NewUserRepo(pool)
	brandRepo := postgresrepo.NewBrandRepo(pool)
	productRepo := postgresrepo.NewProductRepo(pool)

	adminEmail := "admin@skyriting.com"
	existing, err := userRepo.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.WithError(err).Fatal("admin lookup failed")
	}
	if existing == nil {
		hash, err := auth.HashPassword("Admin123")
		if err != nil {
			log.WithError(err).Fatal("hashing admin password failed")
		}
		bio := "System Administrator"
		now := time.Now()
		admin := &domain.User{
			ID:               uuid.New(),
			Email:            adminEmail,
			Name:             "Admin User",
			PasswordHash:     hash,
			Bio:              &bio,
			Interests:        []string{},
			StylePreferences: []string{},
			Role:             domain.RoleAdmin,
			IsVerified:       true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.WithError(err).Fatal("creating admin failed")
		}
		log.WithField("email", adminEmail).Info("admin user created")
	} else {
		log.Info("admin user already exists")
	}

	count, err := brandRepo.CountByStatus(ctx, domain.BrandApproved)
	if err != nil {
		log.WithError(err).Fatal("brand count failed")
	}
	if count > 0 {
		log.Info("brands already seeded")
		return
	}

	type brandSeed struct {
		name, description, category string
	}
	brandSeeds := []brandSeed{
		{"Urban Style", "Contemporary urban fashion", "Streetwear"},
		{"Elegant Collection", "Sophisticated and elegant designs", "Formal"},
		{"Sport Plus", "Athletic and comfortable sportswear", "Sports"},
	}

	now := time.Now()
	brandIDs := make([]uuid.UUID, 0, len(brandSeeds))
	for _, b := range brandSeeds {
		brand := &domain.Brand{
			ID:          uuid.New(),
			Name:        b.name,
			Description: b.description,
			Category:    b.category,
			Status:      domain.BrandApproved,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := brandRepo.Create(ctx, brand); err != nil {
			log.WithError(err).Fatal("creating brand failed")
		}
		brandIDs = append(brandIDs, brand.ID)
	}
	log.WithField("count", len(brandIDs)).Info("sample brands created")

	type productSeed struct {
		name, description string
		price             float64
		category          string
	}
	productSeeds := []productSeed{
		{"Classic White Tee", "Essential white t-shirt for everyday wear", 29.99, "Casual"},
		{"Denim Jacket", "Vintage denim jacket with modern fit", 89.99, "Outerwear"},
		{"Running Shoes", "Lightweight running shoes for optimal performance", 119.99, "Footwear"},
		{"Casual Sneakers", "Comfortable sneakers for daily activities", 79.99, "Footwear"},
		{"Hoodie Premium", "Soft premium cotton hoodie", 59.99, "Casual"},
		{"Slim Fit Jeans", "Classic slim fit denim jeans", 69.99, "Pants"},
	}

	created := 0
	for idx, p := range productSeeds {
		brandID := brandIDs[idx%len(brandIDs)]
		for _, gender := range []string{"men", "women"} {
			g := gender
			product := &domain.Product{
				ID:          uuid.New(),
				BrandID:     brandID,
				Name:        fmt.Sprintf("%s - %s", p.name, gender),
				Description: p.description,
				Price:       p.price,
				Stock:       50,
				Category:    p.category,
				Colors:      []string{"Black", "White", "Navy"},
				Sizes:       []string{"S", "M", "L", "XL"},
				Images:      []string{},
				Gender:      &g,
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := productRepo.Create(ctx, product); err != nil {
				log.WithError(err).Fatal("creating product failed")
			}
			created++
		}
	}
	log.WithField("count", created).Info("sample products created")
}
