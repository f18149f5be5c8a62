package store

import (
	"context"
	"fmt"

	"daily-diet-api/internal/model"
)

const mealColumns = `id, user_id, name, description, date, hour, is_on_diet`

func (s *Store) CreateMeal(ctx context.Context, meal model.Meal) error {
	query := `INSERT INTO meals (id, user_id, name, description, date, hour, is_on_diet)
		VALUES (:id, :user_id, :name, :description, :date, :hour, :is_on_diet)`
	if _, err := s.db.NamedExecContext(ctx, query, meal); err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}
	return nil
}

// ListMeals returns the owner's meals in insertion order.
func (s *Store) ListMeals(ctx context.Context, userID string) ([]model.Meal, error) {
	meals := []model.Meal{}
	query := `SELECT ` + mealColumns + ` FROM meals WHERE user_id = $1 ORDER BY seq`
	if err := s.db.SelectContext(ctx, &meals, query, userID); err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *Store) GetMeal(ctx context.Context, userID, mealID string) (model.Meal, error) {
	var meal model.Meal
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1 AND user_id = $2`
	if err := s.db.GetContext(ctx, &meal, query, mealID, userID); err != nil {
		return model.Meal{}, fmt.Errorf("get meal: %w", notFound(err))
	}
	return meal, nil
}

// UpdateMeal merges patch over the stored meal inside a transaction that
// holds the row lock, and returns the merged row.
func (s *Store) UpdateMeal(ctx context.Context, userID, mealID string, patch model.MealPatch) (model.Meal, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Meal{}, fmt.Errorf("begin update meal: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var meal model.Meal
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1 AND user_id = $2 FOR UPDATE`
	if err := tx.GetContext(ctx, &meal, query, mealID, userID); err != nil {
		return model.Meal{}, fmt.Errorf("load meal for update: %w", notFound(err))
	}

	patch.Apply(&meal)

	update := `UPDATE meals SET name = $1, description = $2, date = $3, hour = $4, is_on_diet = $5
		WHERE id = $6 AND user_id = $7`
	if _, err := tx.ExecContext(ctx, update, meal.Name, meal.Description, meal.Date, meal.Hour, meal.IsOnDiet, meal.ID, meal.UserID); err != nil {
		return model.Meal{}, fmt.Errorf("update meal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Meal{}, fmt.Errorf("commit update meal: %w", err)
	}
	return meal, nil
}

// DeleteMeal removes the meal and returns the deleted row.
func (s *Store) DeleteMeal(ctx context.Context, userID, mealID string) (model.Meal, error) {
	var meal model.Meal
	query := `DELETE FROM meals WHERE id = $1 AND user_id = $2 RETURNING ` + mealColumns
	if err := s.db.GetContext(ctx, &meal, query, mealID, userID); err != nil {
		return model.Meal{}, fmt.Errorf("delete meal: %w", notFound(err))
	}
	return meal, nil
}
