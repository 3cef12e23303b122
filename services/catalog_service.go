package services

import (
	"backend/models"

	"gorm.io/gorm"
)

const (
	DefaultMaxProducts    = 100
	DefaultMaxMeals       = 100
	DefaultMaxMealsUpdate = 200
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) CreateProduct(p *models.Product) error {
	return s.db.Create(p).Error
}

func (s *CatalogService) CreateMeal(m *models.Meal) error {
	return s.db.Create(m).Error
}

func (s *CatalogService) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Order("id ASC").Find(&products).Error
	return products, err
}

func (s *CatalogService) ListMeals() ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.Order("id ASC").Find(&meals).Error
	return meals, err
}

// Snapshot copies up to maxProducts products and maxMeals meals into a prompt
// payload, ordered by id ascending so the same catalog always serializes the
// same way.
func (s *CatalogService) Snapshot(maxProducts, maxMeals int) (*CatalogPayload, error) {
	if maxProducts <= 0 {
		maxProducts = DefaultMaxProducts
	}
	if maxMeals <= 0 {
		maxMeals = DefaultMaxMeals
	}

	var products []models.Product
	if err := s.db.Order("id ASC").Limit(maxProducts).Find(&products).Error; err != nil {
		return nil, err
	}
	var meals []models.Meal
	if err := s.db.Order("id ASC").Limit(maxMeals).Find(&meals).Error; err != nil {
		return nil, err
	}

	catalog := &CatalogPayload{
		Products: make([]CatalogProduct, 0, len(products)),
		Meals:    make([]CatalogMeal, 0, len(meals)),
	}
	for _, p := range products {
		catalog.Products = append(catalog.Products, CatalogProduct{
			ID:            p.ID,
			Name:          p.Name,
			Calories:      p.Calories,
			Proteins:      p.Proteins,
			Carbohydrates: p.Carbohydrates,
			Fats:          p.Fats,
			Type:          p.Type,
		})
	}
	for _, m := range meals {
		catalog.Meals = append(catalog.Meals, CatalogMeal{
			ID:            m.ID,
			Name:          m.Name,
			Calories:      m.Calories,
			Proteins:      m.Proteins,
			Carbohydrates: m.Carbohydrates,
			Fats:          m.Fats,
			Type:          m.Type,
			Recipe:        m.Recipe,
		})
	}
	return catalog, nil
}
