package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"product-catalog/internal/data/entity"
	"product-catalog/internal/data/repository"
	"product-catalog/internal/dto/request"
	"product-catalog/internal/dto/response"
	"product-catalog/pkg/apperror"
	"product-catalog/pkg/messaging"
	"product-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductPage = response.PaginatedResponse[response.ProductResponse]

type ProductService interface {
	FindAll(ctx context.Context, page request.PaginatedRequest) (*ProductPage, error)
	Search(ctx context.Context, name string, page request.PaginatedRequest) (*ProductPage, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page request.PaginatedRequest) (*ProductPage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	Create(ctx context.Context, ownerID uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error)
	Update(ctx context.Context, id, callerID uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error)
	Delete(ctx context.Context, id, callerID uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
	events      eventEmitter
	now         func() time.Time
	log         *zap.Logger
}

func NewProductService(productRepo repository.ProductRepository, publisher messaging.Publisher, log *zap.Logger) ProductService {
	log = log.With(zap.String("service", "product"))
	return &productService{
		productRepo: productRepo,
		events:      eventEmitter{publisher: publisher, log: log},
		now:         time.Now,
		log:         log,
	}
}

func (s *productService) FindAll(ctx context.Context, page request.PaginatedRequest) (*ProductPage, error) {
	return s.list(ctx, repository.ProductFilter{}, page)
}

func (s *productService) Search(ctx context.Context, name string, page request.PaginatedRequest) (*ProductPage, error) {
	return s.list(ctx, repository.ProductFilter{NameContains: strings.TrimSpace(name)}, page)
}

func (s *productService) FindByOwner(ctx context.Context, ownerID uuid.UUID, page request.PaginatedRequest) (*ProductPage, error) {
	return s.list(ctx, repository.ProductFilter{OwnerID: &ownerID}, page)
}

func (s *productService) list(ctx context.Context, filter repository.ProductFilter, page request.PaginatedRequest) (*ProductPage, error) {
	// 1. Validate paging and sort
	if errs := utils.ValidateStruct(page); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}
	sort, err := request.ParseSort(page.Sort, repository.ProductSortColumns)
	if err != nil {
		return nil, apperror.Validation(map[string]string{"sort": err.Error()})
	}

	// 2. Query page and total
	products, err := s.productRepo.FindAll(ctx, repository.ProductQuery{
		Filter:    filter,
		SortField: sort.Field,
		Desc:      sort.Desc,
		Limit:     page.Limit(),
		Offset:    page.Offset(),
	})
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	return response.NewPaginatedResponse(response.ProductsToResponse(products), page.Page, page.Limit(), total), nil
}

func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Create(ctx context.Context, ownerID uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation(errs)
	}

	// 2. Build entity
	now := s.now().UTC()
	product := &entity.Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ShippingFee:  req.ShippingFee,
		RegisteredAt: now,
		UserID:       ownerID,
	}
	product.Touch(now)

	// 3. Save
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, apperror.Unexpected(err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("user_id", ownerID.String()),
	)
	s.events.emit(ctx, messaging.EventProductCreated, product.ID, nil, ownerID)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Update(ctx context.Context, id, callerID uuid.UUID, req *request.ProductRequest) (*response.ProductResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	// 2. Load and check ownership
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(product.UserID, callerID); err != nil {
		s.log.Warn("Product update denied",
			zap.String("product_id", id.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, err
	}

	// 3. Apply and save
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ShippingFee = req.ShippingFee
	product.UpdatedAt = s.now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Product", id.String())
		}
		return nil, apperror.Unexpected(err)
	}

	s.events.emit(ctx, messaging.EventProductUpdated, product.ID, nil, product.UserID)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	product, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := RequireOwner(product.UserID, callerID); err != nil {
		s.log.Warn("Product delete denied",
			zap.String("product_id", id.String()),
			zap.String("caller_id", callerID.String()),
		)
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Product", id.String())
		}
		return apperror.Unexpected(err)
	}

	s.events.emit(ctx, messaging.EventProductDeleted, id, nil, product.UserID)
	return nil
}

func (s *productService) load(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if product == nil {
		return nil, apperror.NotFound("Product", id.String())
	}
	return product, nil
}
