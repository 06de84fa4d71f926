package bootstrap

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"categories-api/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Category{})
}

// SeedCategories inserts the development fixtures. It only runs against an
// empty table, so existing data is never touched.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("categories already present, skipping seed")
		return nil
	}

	fixtures := DevCategories()
	for i := range fixtures {
		if err := db.Create(&fixtures[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("seeded %d categories", len(fixtures))
	return nil
}

// DevCategories returns the canonical fixture rows. The list-endpoint tests
// lean on these exact values: the е/ё pairs in name/description and the
// created dates drive the search and ordering cases.
func DevCategories() []entity.Category {
	return []entity.Category{
		{
			ID:          uuid.MustParse("41d36d01-3d06-48ec-90ea-735d95d8a1f2"),
			Slug:        "first",
			Name:        "Мед",
			Description: strPtr("мЁд"),
			Active:      true,
			CreatedDate: time.Date(2024, time.March, 6, 13, 58, 26, 778000000, time.UTC),
		},
		{
			ID:          uuid.MustParse("5bbfbdec-f2a9-4d36-8cad-3579c1d8de3b"),
			Slug:        "second",
			Name:        "мёд",
			Active:      true,
			CreatedDate: time.Date(2024, time.April, 6, 13, 58, 26, 778000000, time.UTC),
		},
		{
			ID:          uuid.MustParse("86713e06-5de0-4ac3-ba09-9ad13592cc17"),
			Slug:        "third",
			Name:        "прогоол!",
			Description: strPtr("Мед"),
			Active:      false,
			CreatedDate: time.Date(2024, time.April, 2, 13, 58, 26, 778000000, time.UTC),
		},
		{
			ID:          uuid.MustParse("179d9fb4-1b89-49c8-918e-e99d67285144"),
			Slug:        "fourth",
			Name:        "афобазол",
			Description: strPtr("парам пам пам"),
			Active:      false,
			CreatedDate: time.Date(2024, time.December, 6, 13, 58, 26, 778000000, time.UTC),
		},
	}
}

func strPtr(s string) *string {
	return &s
}
