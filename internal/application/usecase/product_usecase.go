package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/domain"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Quantity solo cambia vía movimientos
// después de la creación; el listado paginado vive en report.Reporter.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto con su saldo inicial. Sin umbral explícito se usa DefaultLowStockThreshold.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	threshold := int64(entity.DefaultLowStockThreshold)
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}
	product := &entity.Product{
		Name:              name,
		Price:             in.Price,
		Quantity:          in.Quantity,
		CategoryID:        in.CategoryID,
		LowStockThreshold: threshold,
		ImageURL:          in.ImageURL,
	}
	if err := uc.resolveCategory(ctx, product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// GetByID obtiene un producto vigente. ErrProductNotFound si no existe o fue borrado.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Update aplica solo los campos presentes.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.CategoryID != nil {
		product.CategoryID = in.CategoryID
		if err := uc.resolveCategory(ctx, product); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Delete borrado lógico; el historial de movimientos del producto se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}
	return nil
}

func (uc *ProductUseCase) resolveCategory(ctx context.Context, p *entity.Product) error {
	if p.CategoryID == nil {
		p.CategoryName = ""
		return nil
	}
	cat, err := uc.categories.GetByID(ctx, *p.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrCategoryNotFound
	}
	p.CategoryName = cat.Name
	return nil
}
