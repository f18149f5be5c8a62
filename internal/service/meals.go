package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daily-diet-api/internal/model"
	"daily-diet-api/internal/store"
)

type MealRepository interface {
	CreateMeal(ctx context.Context, meal model.Meal) error
	ListMeals(ctx context.Context, userID string) ([]model.Meal, error)
	GetMeal(ctx context.Context, userID, mealID string) (model.Meal, error)
	UpdateMeal(ctx context.Context, userID, mealID string, patch model.MealPatch) (model.Meal, error)
	DeleteMeal(ctx context.Context, userID, mealID string) (model.Meal, error)
}

type MealEventType string

const (
	MealCreated MealEventType = "meal.created"
	MealUpdated MealEventType = "meal.updated"
	MealDeleted MealEventType = "meal.deleted"
)

type MealEvent struct {
	Type MealEventType `json:"type"`
	Meal model.Meal    `json:"meal"`
}

// Notifier receives an event after every successful meal mutation.
type Notifier interface {
	Publish(userID string, event MealEvent)
}

// Meals implements the owner-scoped meal operations. Every call takes the
// authenticated account and never touches another account's rows.
type Meals struct {
	Repo     MealRepository
	Notifier Notifier
	NewID    func() string
}

func NewMeals(repo MealRepository, notifier Notifier) *Meals {
	return &Meals{Repo: repo, Notifier: notifier, NewID: uuid.NewString}
}

func (s *Meals) Create(ctx context.Context, owner model.Account, in CreateMealInput) (model.Meal, error) {
	if err := in.Validate(); err != nil {
		return model.Meal{}, err
	}

	meal := model.Meal{
		ID:          s.NewID(),
		UserID:      owner.ID,
		Name:        *in.Name,
		Description: *in.Description,
		Date:        *in.Date,
		Hour:        *in.Hour,
		IsOnDiet:    *in.IsOnDiet,
	}
	if err := s.Repo.CreateMeal(ctx, meal); err != nil {
		return model.Meal{}, fmt.Errorf("create meal: %w", err)
	}
	s.publish(owner.ID, MealCreated, meal)
	return meal, nil
}

func (s *Meals) List(ctx context.Context, owner model.Account) ([]model.Meal, error) {
	meals, err := s.Repo.ListMeals(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *Meals) Get(ctx context.Context, owner model.Account, rawID string) (model.Meal, error) {
	mealID, err := ParseMealID(rawID)
	if err != nil {
		return model.Meal{}, err
	}

	meal, err := s.Repo.GetMeal(ctx, owner.ID, mealID)
	if err != nil {
		return model.Meal{}, mealError("get meal", err)
	}
	return meal, nil
}

func (s *Meals) Update(ctx context.Context, owner model.Account, rawID string, in UpdateMealInput) (model.Meal, error) {
	patch, err := in.Patch()
	if err != nil {
		return model.Meal{}, err
	}
	mealID, err := ParseMealID(rawID)
	if err != nil {
		return model.Meal{}, err
	}

	meal, err := s.Repo.UpdateMeal(ctx, owner.ID, mealID, patch)
	if err != nil {
		return model.Meal{}, mealError("update meal", err)
	}
	s.publish(owner.ID, MealUpdated, meal)
	return meal, nil
}

func (s *Meals) Delete(ctx context.Context, owner model.Account, rawID string) error {
	mealID, err := ParseMealID(rawID)
	if err != nil {
		return err
	}

	meal, err := s.Repo.DeleteMeal(ctx, owner.ID, mealID)
	if err != nil {
		return mealError("delete meal", err)
	}
	s.publish(owner.ID, MealDeleted, meal)
	return nil
}

func (s *Meals) Metrics(ctx context.Context, owner model.Account) (model.Metrics, error) {
	meals, err := s.Repo.ListMeals(ctx, owner.ID)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("meal metrics: %w", err)
	}
	return ComputeMetrics(meals), nil
}

func (s *Meals) publish(userID string, kind MealEventType, meal model.Meal) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.Publish(userID, MealEvent{Type: kind, Meal: meal})
}

func mealError(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrMealNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
