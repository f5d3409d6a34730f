package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Inventory=MockInventoryService

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/internal/domains/inventory/model"
	"hotelier/internal/domains/inventory/model/dto"
	"hotelier/internal/domains/inventory/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"slices"

	"github.com/rs/zerolog/log"
)

const (
	reasonNoItem            = "no matching inventory item"
	reasonInsufficientStock = "insufficient stock"

	errDuplicateItem = "an inventory item with this category, sub category and brand already exists"
)

type Inventory interface {
	CreateItem(ctx context.Context, req dto.CreateItemRequest) (dto.ItemResponse, error)
	GetItems(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetItemsResponse, error)
	GetItem(ctx context.Context, id string) (dto.ItemResponse, error)
	UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (dto.ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error
	CreateRule(ctx context.Context, req dto.CreateRuleRequest) (dto.RuleResponse, error)
	GetRules(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRulesResponse, error)
	DeleteRule(ctx context.Context, id string) error
	ConsumeForCheckin(ctx context.Context, bookingNumber string, roomIDs []string) (dto.ConsumeResponse, error)
}

type serviceImpl struct {
	repo            repository.Item
	ruleRepo        repository.Rule
	consumptionRepo repository.Consumption
	otel            otel.Otel
}

func New(repo repository.Item, ruleRepo repository.Rule, consumptionRepo repository.Consumption, otel otel.Otel) Inventory {
	return &serviceImpl{
		repo:            repo,
		ruleRepo:        ruleRepo,
		consumptionRepo: consumptionRepo,
		otel:            otel,
	}
}

func itemByID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	item := req.ToModel(user)

	if err = s.repo.Insert(ctx, item); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict(errDuplicateItem) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create inventory item")

		return res, fmt.Errorf("failed to create inventory item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) GetItems(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItems")
	defer scope.End()
	defer scope.TraceIfError(err)

	items, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory items")

		return res, fmt.Errorf("failed to get inventory items: %w", err)
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inventory items")

		return res, fmt.Errorf("failed to count inventory items: %w", err)
	}

	res.FromModels(items, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) getItem(ctx context.Context, id string) (model.Item, error) {
	item, err := s.repo.Get(ctx, itemByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory item")

		return item, fmt.Errorf("failed to get inventory item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFound("inventory item not found") // nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) GetItem(ctx context.Context, id string) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	item, err := s.getItem(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(item)

	return res, nil
}

// UpdateItem rewrites the whole row so the stored status always matches the stored quantity.
func (s *serviceImpl) UpdateItem(ctx context.Context, id string, req dto.UpdateItemRequest) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	item, err := s.getItem(ctx, id)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	req.Apply(&item)

	if err = s.repo.Update(ctx, dto.ItemFields(user, item), itemByID(id)); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict(errDuplicateItem) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update inventory item")

		return res, fmt.Errorf("failed to update inventory item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getItem(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, itemByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to delete inventory item")

		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}

func (s *serviceImpl) CreateRule(ctx context.Context, req dto.CreateRuleRequest) (res dto.RuleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRule")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	rule := req.ToModel(user)

	if err = s.ruleRepo.Insert(ctx, rule); err != nil {
		log.Error().Err(err).Msg("failed to create complementary rule")

		return res, fmt.Errorf("failed to create complementary rule: %w", err)
	}

	res.FromModel(rule)

	return res, nil
}

func (s *serviceImpl) GetRules(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRules")
	defer scope.End()
	defer scope.TraceIfError(err)

	rules, err := s.ruleRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get complementary rules")

		return res, fmt.Errorf("failed to get complementary rules: %w", err)
	}

	total, err := s.ruleRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count complementary rules")

		return res, fmt.Errorf("failed to count complementary rules: %w", err)
	}

	res.FromModels(rules, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) DeleteRule(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteRule")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.RuleTableName)

	exist, err := s.ruleRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if complementary rule exists")

		return fmt.Errorf("failed to check if complementary rule exists: %w", err)
	}

	if !exist {
		return failure.NotFound("complementary rule not found") // nolint:wrapcheck
	}

	if err = s.ruleRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete complementary rule")

		return fmt.Errorf("failed to delete complementary rule: %w", err)
	}

	return nil
}

// ConsumeForCheckin applies the complementary rules of every room line once per line. Items that are
// missing or short on stock are recorded as skipped; only a failure to load the rules is returned.
func (s *serviceImpl) ConsumeForCheckin(ctx context.Context, bookingNumber string, roomIDs []string) (res dto.ConsumeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConsumeForCheckin")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.BookingNumber = bookingNumber
	res.Consumptions = []dto.ConsumptionResponse{}

	distinct := slices.Compact(slices.Sorted(slices.Values(roomIDs)))
	if len(distinct) == 0 {
		return res, nil
	}

	rules, err := s.ruleRepo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc},
		shared.FilterByFields(model.RuleTableName, gDto.Filter{Field: model.FieldRuleRoomID, Value: distinct, Operator: gDto.FilterOperatorIn}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get complementary rules")

		return res, fmt.Errorf("failed to get complementary rules: %w", err)
	}

	byRoom := make(map[string][]model.Rule, len(distinct))
	for _, rule := range rules {
		byRoom[rule.RoomID] = append(byRoom[rule.RoomID], rule)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	consumptions := make([]model.Consumption, 0, len(rules))

	for _, roomID := range roomIDs {
		for _, rule := range byRoom[roomID] {
			consumption := s.consume(ctx, user, bookingNumber, rule)
			consumptions = append(consumptions, consumption)
			res.Add(consumption)
		}
	}

	if len(consumptions) == 0 {
		return res, nil
	}

	if err := s.consumptionRepo.InsertBulk(ctx, consumptions); err != nil {
		log.Warn().Err(err).Str("bookingNumber", bookingNumber).Msg("failed to record inventory consumption")
	}

	return res, nil
}

func (s *serviceImpl) consume(ctx context.Context, user, bookingNumber string, rule model.Rule) model.Consumption {
	item, err := s.repo.Get(ctx, shared.FilterByFields(model.TableName,
		gDto.Filter{Field: model.FieldCategory, Value: rule.Category},
		gDto.Filter{Field: model.FieldSubCategory, Value: rule.SubCategory},
		gDto.Filter{Field: model.FieldBrand, Value: rule.Brand},
	))
	if err != nil {
		log.Warn().Err(err).Str("ruleID", rule.ID).Msg("failed to find inventory item for rule")

		return dto.NewConsumption(user, bookingNumber, rule, nil, model.ConsumptionSkipped, err.Error())
	}

	if item.ID == constant.Empty {
		return dto.NewConsumption(user, bookingNumber, rule, nil, model.ConsumptionSkipped, reasonNoItem)
	}

	if item.QuantityInStock < rule.Quantity {
		return dto.NewConsumption(user, bookingNumber, rule, &item.ID, model.ConsumptionSkipped, reasonInsufficientStock)
	}

	remaining, ok, err := s.repo.DecrementStock(ctx, item.ID, rule.Quantity, user)
	if err != nil {
		log.Warn().Err(err).Str("itemID", item.ID).Msg("failed to decrement stock")

		return dto.NewConsumption(user, bookingNumber, rule, &item.ID, model.ConsumptionSkipped, err.Error())
	}

	if !ok {
		return dto.NewConsumption(user, bookingNumber, rule, &item.ID, model.ConsumptionSkipped, reasonInsufficientStock)
	}

	log.Info().Str("itemID", item.ID).Int("remaining", remaining).Str("bookingNumber", bookingNumber).Msg("inventory consumed")

	return dto.NewConsumption(user, bookingNumber, rule, &item.ID, model.ConsumptionCompleted, constant.Empty)
}
