package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jamizoram/storefront/internal/config"
	"github.com/jamizoram/storefront/internal/domain"
	"github.com/jamizoram/storefront/internal/repository/postgres"
)

var standardSizes = []string{"S", "M", "L", "XL", "XXL"}

func seedProducts() []*domain.Product {
	return []*domain.Product{
		{
			Name:        "Manchester United Home Jersey 24/25",
			Team:        "Manchester United",
			Price:       1200,
			Image:       "/static/man-utd-home.jpg",
			Description: "Classic red home kit with authentic club crest and breathable fabric.",
			Stock:       40,
			Status:      domain.ProductStatusAvailable,
			Category:    domain.CategoryPremierLeague,
			Sizes:       standardSizes,
		},
		{
			Name:        "Liverpool Home Jersey 24/25",
			Team:        "Liverpool",
			Price:       1200,
			Image:       "/static/liverpool-home.jpg",
			Description: "The famous red of Anfield, cut for both the pitch and the street.",
			Stock:       35,
			Status:      domain.ProductStatusAvailable,
			Category:    domain.CategoryPremierLeague,
			Sizes:       standardSizes,
		},
		{
			Name:        "Real Madrid Home Jersey 24/25",
			Team:        "Real Madrid",
			Price:       1350,
			Image:       "/static/real-madrid-home.jpg",
			Description: "All-white royal kit with moisture-wicking technology.",
			Stock:       30,
			Status:      domain.ProductStatusOnSale,
			Category:    domain.CategoryLaLiga,
			Sizes:       standardSizes,
		},
		{
			Name:        "Barcelona Home Jersey 24/25",
			Team:        "Barcelona",
			Price:       1350,
			Image:       "/static/barcelona-home.jpg",
			Description: "Blaugrana stripes in premium knit fabric.",
			Stock:       25,
			Status:      domain.ProductStatusAvailable,
			Category:    domain.CategoryLaLiga,
			Sizes:       standardSizes,
		},
		{
			Name:        "AC Milan Home Jersey 24/25",
			Team:        "AC Milan",
			Price:       1250,
			Image:       "/static/ac-milan-home.jpg",
			Description: "Rossoneri stripes with an embroidered crest.",
			Stock:       20,
			Status:      domain.ProductStatusAvailable,
			Category:    domain.CategorySerieA,
			Sizes:       standardSizes,
		},
		{
			Name:        "India National Team Jersey",
			Team:        "India",
			Price:       1100,
			Image:       "/static/india-home.jpg",
			Description: "Blue Tigers home kit, lightweight and fan-ready.",
			Stock:       50,
			Status:      domain.ProductStatusAvailable,
			Category:    domain.CategoryInternational,
			Sizes:       standardSizes,
		},
	}
}

func seedHeroSlides() []*domain.HeroSlide {
	return []*domain.HeroSlide{
		{
			Badge:        "New Season",
			Title:        "24/25 Kits Have Landed",
			Description:  "Authentic jerseys from the biggest clubs in world football, delivered across Mizoram.",
			ButtonText:   "Shop Now",
			AccentColor:  "#e11d48",
			DisplayOrder: 1,
		},
		{
			Badge:        "Local Pride",
			Title:        "Wear It In Aizawl",
			Description:  "From the pitch to the street - premium fabric built for match day and every day.",
			ButtonText:   "Browse Collection",
			AccentColor:  "#2563eb",
			DisplayOrder: 2,
		},
	}
}

func seedSettings() *domain.SiteSettings {
	return &domain.SiteSettings{
		AboutUs:         "Jersey Apparel Mizoram brings authentic football kits to fans across the state.",
		InstagramHandle: "@jerseyapparel.mizoram",
		WhatsappNumber:  "+91 90000 00000",
		FooterTagline:   "For the love of the game.",
	}
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	ctx := context.Background()

	// Seeding is additive; it does not wipe existing rows
	for _, p := range seedProducts() {
		if err := repos.Product.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed product %q: %v\n", p.Name, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded product: %s\n", p.Name)
	}

	for _, s := range seedHeroSlides() {
		if err := repos.HeroSlide.Create(ctx, s); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to seed hero slide %q: %v\n", s.Title, err)
			os.Exit(1)
		}
		fmt.Printf("Seeded hero slide: %s\n", s.Title)
	}

	if err := repos.Settings.Upsert(ctx, seedSettings()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Seeded site settings")

	fmt.Println("\nSeed complete.")
}
