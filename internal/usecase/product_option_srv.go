package usecase

import (
	"context"
	"errors"
	"fmt"
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

type ProductOptionService interface {
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]response.ProductOptionResponse, error)
	FindByID(ctx context.Context, productID, id uuid.UUID) (*response.ProductOptionResponse, error)
	Create(ctx context.Context, productID, callerID uuid.UUID, req *request.ProductOptionRequest) (*response.ProductOptionResponse, error)
	Update(ctx context.Context, productID, id, callerID uuid.UUID, req *request.ProductOptionRequest) (*response.ProductOptionResponse, error)
	Delete(ctx context.Context, productID, id, callerID uuid.UUID) error
}

type productOptionService struct {
	productRepo repository.ProductRepository
	optionRepo  repository.ProductOptionRepository
	events      eventEmitter
	now         func() time.Time
	log         *zap.Logger
}

func NewProductOptionService(
	productRepo repository.ProductRepository,
	optionRepo repository.ProductOptionRepository,
	publisher messaging.Publisher,
	log *zap.Logger,
) ProductOptionService {
	log = log.With(zap.String("service", "product_option"))
	return &productOptionService{
		productRepo: productRepo,
		optionRepo:  optionRepo,
		events:      eventEmitter{publisher: publisher, log: log},
		now:         time.Now,
		log:         log,
	}
}

func errOptionLimit() *apperror.Error {
	return apperror.DomainState(fmt.Sprintf("A product can have at most %d options", entity.MaxOptionsPerProduct))
}

func (s *productOptionService) FindByProductID(ctx context.Context, productID uuid.UUID) ([]response.ProductOptionResponse, error) {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return nil, err
	}

	options, err := s.optionRepo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}

	return response.OptionsToResponse(options), nil
}

func (s *productOptionService) FindByID(ctx context.Context, productID, id uuid.UUID) (*response.ProductOptionResponse, error) {
	option, err := s.loadOption(ctx, productID, id)
	if err != nil {
		return nil, err
	}

	resp := response.OptionToResponse(option)
	return &resp, nil
}

func (s *productOptionService) Create(ctx context.Context, productID, callerID uuid.UUID, req *request.ProductOptionRequest) (*response.ProductOptionResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create option validation failed", zap.String("errors", utils.FormatValidationErrors(errs)))
		return nil, apperror.Validation(errs)
	}

	// 2. Product must exist and belong to the caller
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(product.UserID, callerID); err != nil {
		s.log.Warn("Option create denied",
			zap.String("product_id", productID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, err
	}

	// 3. Enforce the option cap before touching anything
	count, err := s.optionRepo.CountByProductID(ctx, productID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if count >= entity.MaxOptionsPerProduct {
		s.log.Warn("Option limit reached", zap.String("product_id", productID.String()))
		return nil, errOptionLimit()
	}

	// 4. Build option and its values
	now := s.now().UTC()
	option := &entity.ProductOption{
		ID:              uuid.New(),
		Name:            req.Name,
		Type:            entity.OptionType(req.Type),
		AdditionalPrice: req.AdditionalPrice,
		ProductID:       productID,
	}
	option.Touch(now)
	option.Values = s.buildValues(option, req.OptionValues, now)

	// 5. Save; the repository re-checks the cap under a row lock
	if err := s.optionRepo.Create(ctx, option); err != nil {
		switch {
		case errors.Is(err, repository.ErrOptionLimitReached):
			return nil, errOptionLimit()
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("Product", productID.String())
		default:
			return nil, apperror.Unexpected(err)
		}
	}

	s.log.Info("Option created",
		zap.String("option_id", option.ID.String()),
		zap.String("product_id", productID.String()),
		zap.Int("values", len(option.Values)),
	)
	s.events.emit(ctx, messaging.EventOptionCreated, productID, &option.ID, product.UserID)

	resp := response.OptionToResponse(option)
	return &resp, nil
}

func (s *productOptionService) Update(ctx context.Context, productID, id, callerID uuid.UUID, req *request.ProductOptionRequest) (*response.ProductOptionResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation(errs)
	}

	// 2. Product must exist and belong to the caller
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwner(product.UserID, callerID); err != nil {
		s.log.Warn("Option update denied",
			zap.String("product_id", productID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, err
	}

	// 3. Load option
	option, err := s.loadOption(ctx, productID, id)
	if err != nil {
		return nil, err
	}

	// 4. Apply; values are always replaced wholesale
	now := s.now().UTC()
	option.Name = req.Name
	option.Type = entity.OptionType(req.Type)
	option.AdditionalPrice = req.AdditionalPrice
	option.UpdatedAt = now
	option.Values = s.buildValues(option, req.OptionValues, now)

	if err := s.optionRepo.Update(ctx, option); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Product option", id.String())
		}
		return nil, apperror.Unexpected(err)
	}

	s.events.emit(ctx, messaging.EventOptionUpdated, productID, &option.ID, product.UserID)

	resp := response.OptionToResponse(option)
	return &resp, nil
}

func (s *productOptionService) Delete(ctx context.Context, productID, id, callerID uuid.UUID) error {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := RequireOwner(product.UserID, callerID); err != nil {
		s.log.Warn("Option delete denied",
			zap.String("product_id", productID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return err
	}

	if _, err := s.loadOption(ctx, productID, id); err != nil {
		return err
	}

	if err := s.optionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Product option", id.String())
		}
		return apperror.Unexpected(err)
	}

	s.events.emit(ctx, messaging.EventOptionDeleted, productID, &id, product.UserID)
	return nil
}

// buildValues returns nil for INPUT options.
func (s *productOptionService) buildValues(option *entity.ProductOption, raw []string, now time.Time) []*entity.OptionValue {
	if option.Type != entity.OptionTypeSelect {
		return nil
	}

	values := make([]*entity.OptionValue, 0, len(raw))
	for i, v := range raw {
		value := &entity.OptionValue{
			ID:       uuid.New(),
			Value:    v,
			Position: i,
			OptionID: option.ID,
		}
		value.Touch(now)
		values = append(values, value)
	}
	return values
}

func (s *productOptionService) loadProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if product == nil {
		return nil, apperror.NotFound("Product", id.String())
	}
	return product, nil
}

func (s *productOptionService) loadOption(ctx context.Context, productID, id uuid.UUID) (*entity.ProductOption, error) {
	option, err := s.optionRepo.FindByIDAndProductID(ctx, id, productID)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	if option == nil {
		return nil, apperror.NotFound("Product option", id.String())
	}
	return option, nil
}
