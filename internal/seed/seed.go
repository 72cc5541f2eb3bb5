package seed

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/omerfq/stitchline-backend/pkg/config"
	"github.com/omerfq/stitchline-backend/pkg/db/models"
	"github.com/omerfq/stitchline-backend/pkg/logger"
	"github.com/omerfq/stitchline-backend/pkg/security"
)

// Seeder loads the sample catalog and a default admin user. Every step is
// idempotent: rows are matched by their natural key and only created when
// missing, so the seeder can run against a populated database.
type Seeder struct {
	conn        *gorm.DB
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

func New(conn *gorm.DB, passwordCfg config.PasswordConfig, logg *logger.Logger) *Seeder {
	return &Seeder{conn: conn, passwordCfg: passwordCfg, logg: logg}
}

// Run seeds everything, aggregating per-step failures so one bad row does not
// hide the rest.
func (s *Seeder) Run(ctx context.Context) error {
	var errs error

	categories, err := s.seedCategories(ctx)
	errs = multierr.Append(errs, err)

	brands, err := s.seedBrands(ctx)
	errs = multierr.Append(errs, err)

	errs = multierr.Append(errs, s.seedProducts(ctx, categories, brands))
	errs = multierr.Append(errs, s.seedAdminUser(ctx))

	if errs == nil && s.logg != nil {
		s.logg.Info(ctx, "seed completed")
	}
	return errs
}

func (s *Seeder) seedCategories(ctx context.Context) (map[string]*models.Category, error) {
	seeds := []models.Category{
		{Name: "Lawn", Description: "Printed and embroidered lawn for the summer season"},
		{Name: "Formal", Description: "Formal and semi-formal wear"},
		{Name: "Pret", Description: "Ready-to-wear stitched collections"},
		{Name: "Unstitched", Description: "Unstitched fabric suits"},
	}

	var errs error
	out := map[string]*models.Category{}
	for i := range seeds {
		category := seeds[i]
		err := s.conn.WithContext(ctx).
			Where(models.Category{Name: category.Name}).
			FirstOrCreate(&category).Error
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seeding category %q: %w", category.Name, err))
			continue
		}
		out[category.Name] = &category
	}
	return out, errs
}

func (s *Seeder) seedBrands(ctx context.Context) (map[string]*models.Brand, error) {
	seeds := []models.Brand{
		{Name: "Khaadi", Description: "Handwoven heritage wear"},
		{Name: "Alkaram", Description: "Classic Pakistani textile house"},
		{Name: "Sapphire", Description: "Contemporary prints and pret"},
	}

	var errs error
	out := map[string]*models.Brand{}
	for i := range seeds {
		brand := seeds[i]
		err := s.conn.WithContext(ctx).
			Where(models.Brand{Name: brand.Name}).
			FirstOrCreate(&brand).Error
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seeding brand %q: %w", brand.Name, err))
			continue
		}
		out[brand.Name] = &brand
	}
	return out, errs
}

type productSeed struct {
	name        string
	description string
	price       int64
	salePrice   *int64
	category    string
	brand       string
	tags        []string
	featured    bool
	sizes       []string
	colors      []string
	imageURL    string
}

func intPtr(v int64) *int64 { return &v }

func (s *Seeder) seedProducts(ctx context.Context, categories map[string]*models.Category, brands map[string]*models.Brand) error {
	seeds := []productSeed{
		{
			name:        "Summer Breeze Lawn Suit",
			description: "Three-piece printed lawn suit with chiffon dupatta",
			price:       4500, salePrice: intPtr(3800),
			category: "Lawn", brand: "Khaadi",
			tags: []string{"lawn", "summer", "3-piece"}, featured: true,
			sizes: []string{"S", "M", "L"}, colors: []string{"Blue", "Peach"},
			imageURL: "https://img.stitchline.pk/products/summer-breeze.jpg",
		},
		{
			name:        "Midnight Formal Gown",
			description: "Embellished chiffon gown for evening wear",
			price:       12500,
			category:    "Formal", brand: "Sapphire",
			tags:  []string{"formal", "evening"},
			sizes: []string{"M", "L"}, colors: []string{"Black"},
			imageURL: "https://img.stitchline.pk/products/midnight-gown.jpg",
		},
		{
			name:        "Everyday Pret Kurta",
			description: "Soft cambric kurta with straight trousers",
			price:       2800,
			category:    "Pret", brand: "Alkaram",
			tags: []string{"pret", "kurta", "daily"}, featured: true,
			sizes: []string{"S", "M", "L", "XL"}, colors: []string{"White", "Olive"},
			imageURL: "https://img.stitchline.pk/products/everyday-kurta.jpg",
		},
		{
			name:        "Classic Unstitched Suit",
			description: "Premium unstitched three-piece with printed shawl",
			price:       5200, salePrice: intPtr(4680),
			category: "Unstitched", brand: "Alkaram",
			tags:     []string{"unstitched", "winter"},
			imageURL: "https://img.stitchline.pk/products/classic-unstitched.jpg",
		},
	}

	var errs error
	for _, seed := range seeds {
		category, ok := categories[seed.category]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("seeding product %q: category %q missing", seed.name, seed.category))
			continue
		}

		var count int64
		err := s.conn.WithContext(ctx).
			Model(&models.Product{}).
			Where("name = ?", seed.name).
			Count(&count).Error
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seeding product %q: %w", seed.name, err))
			continue
		}
		if count > 0 {
			continue
		}

		product := models.Product{
			Name:        seed.name,
			Description: seed.description,
			Price:       seed.price,
			SalePrice:   seed.salePrice,
			CategoryID:  category.ID,
			ImageURL:    seed.imageURL,
			Tags:        seed.tags,
			InStock:     true,
			Featured:    seed.featured,
		}
		if brand, ok := brands[seed.brand]; ok {
			product.BrandID = &brand.ID
		}
		for _, size := range seed.sizes {
			for _, color := range seed.colors {
				product.Variants = append(product.Variants, models.ProductVariant{
					Name:    fmt.Sprintf("%s %s", size, color),
					Size:    size,
					Color:   color,
					InStock: true,
				})
			}
		}
		if seed.imageURL != "" {
			product.Images = append(product.Images, models.ProductImage{URL: seed.imageURL, IsPrimary: true})
		}

		if err := s.conn.WithContext(ctx).Create(&product).Error; err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seeding product %q: %w", seed.name, err))
		}
	}
	return errs
}

const (
	defaultAdminEmail    = "admin@stitchline.pk"
	defaultAdminPassword = "changeme-on-first-login"
)

func (s *Seeder) seedAdminUser(ctx context.Context) error {
	var count int64
	err := s.conn.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("email = ?", defaultAdminEmail).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(defaultAdminPassword, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	user := models.AdminUser{
		Email:        defaultAdminEmail,
		PasswordHash: hash,
		DisplayName:  "Store Admin",
	}
	if err := s.conn.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	return nil
}
