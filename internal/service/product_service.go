package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/stuffshop/backend/internal/domain"
	"github.com/stuffshop/backend/internal/problem"
	"github.com/stuffshop/backend/internal/repository"
)

const productCacheTTL = time.Hour

// ProductCache is the read-through cache in front of product lookups.
// *persistence.Redis satisfies it.
type ProductCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ProductService manages the shop catalog.
type ProductService struct {
	products repository.ProductRepository
	cache    ProductCache
	logger   *zap.Logger
}

// NewProductService builds the service. cache may be nil, which disables
// caching.
func NewProductService(products repository.ProductRepository, cache ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, cache: cache, logger: logger}
}

// Create stores a new product.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	return s.products.Create(ctx, product)
}

// Get resolves a product by id, reading through the cache.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	key := cacheKey(id)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var product domain.Product
			if err := json.Unmarshal([]byte(cached), &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, problem.NewNotFound("product", fmt.Sprintf("product with id %d not found", id))
		}
		return nil, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(product); err == nil {
			if err := s.cache.Set(ctx, key, string(encoded), productCacheTTL); err != nil {
				s.logger.Warn("product cache write failed", zap.Int64("id", id), zap.Error(err))
			}
		}
	}

	return product, nil
}

// List returns the whole catalog.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// Search returns products whose name matches the query.
func (s *ProductService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.products.Search(ctx, query)
}

// AttachImage records an uploaded image filename on the product and drops
// the stale cache entry.
func (s *ProductService) AttachImage(ctx context.Context, id int64, filename string) error {
	if err := s.products.UpdateImage(ctx, id, filename); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return problem.NewNotFound("product", fmt.Sprintf("product with id %d not found", id))
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey(id)); err != nil {
			s.logger.Warn("product cache invalidation failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	return nil
}

func cacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}
