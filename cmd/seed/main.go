package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/yash77492562/E-commerce-sub000/config"
	"github.com/yash77492562/E-commerce-sub000/models"
	"github.com/yash77492562/E-commerce-sub000/services"
	"github.com/yash77492562/E-commerce-sub000/utils"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// main migrates the catalog schema and seeds a small demo catalog.
// Usage: go run cmd/seed/main.go
// This is a standalone CLI tool, not part of the main application
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("GALLERY CATALOG - Schema Migration + Demo Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	// Initialize database connections
	config.InitDB()
	log.Println("✓ Connected to databases")

	db := config.CatalogGorm

	// Migrate catalog tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.HomeSection{},
		&models.AboutSection{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Image rows share one struct across three tables
	for _, set := range []services.ImageSet{services.ProductImages, services.HomeImages, services.AboutImages} {
		if err := db.Table(set.Table).AutoMigrate(&models.Image{}); err != nil {
			log.Fatalf("Migration of %s failed: %v", set.Table, err)
		}
	}
	log.Println("✓ Schema migrated")

	// Seed demo products (idempotent: skipped when the catalog has rows)
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if count > 0 {
		log.Printf("✓ Catalog already has %d products, skipping demo seed", count)
		return
	}

	ceramics := "Ceramics"
	prints := "Prints"
	bowls := "bowls"
	def := models.SubCategoryDefault

	seed := []models.Product{
		{Title: "Glazed Stoneware Bowl", Price: 4200, Category: &ceramics, SubCategory: &bowls, Tags: models.TagsList{"handmade", "stoneware"}},
		{Title: "Raku Tea Cup", Price: 2800, Category: &ceramics, SubCategory: &def, Tags: models.TagsList{"raku"}},
		{Title: "Linocut Harbour Print", Price: 1500, Category: &prints, Tags: models.TagsList{"linocut", "limited"}},
	}

	for i := range seed {
		slug, err := utils.UniqueSlug(db, "products", seed[i].Title)
		if err != nil {
			log.Fatalf("Slug generation failed: %v", err)
		}
		seed[i].Slug = slug
		if err := db.Create(&seed[i]).Error; err != nil {
			log.Fatalf("Failed to seed product %q: %v", seed[i].Title, err)
		}
	}

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Demo Catalog Seeded Successfully!")
	fmt.Println("════════════════════════════════════════════════════════════")
	for _, p := range seed {
		fmt.Printf("%-28s %s\n", p.Title, p.ID)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Browse products at GET /api/v1/catalog/products")
	fmt.Println("3. Upload images via POST /api/v1/catalog/products/:id/images")
	fmt.Println()
}
