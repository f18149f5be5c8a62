// Package memstore is an in-memory implementation of the service
// repositories for tests. It mirrors the persistence gateway's contract:
// owner-scoped meal access, insertion-ordered listing, store.ErrNotFound for
// missing rows and store.ErrDuplicate for unique violations.
package memstore

import (
	"context"
	"sync"

	"daily-diet-api/internal/model"
	"daily-diet-api/internal/store"
)

type Store struct {
	mu sync.RWMutex

	accountsByID map[string]model.Account
	meals        []model.Meal

	// Err, when set, is returned by every call.
	Err error
}

func New() *Store {
	return &Store{accountsByID: make(map[string]model.Account)}
}

func (s *Store) CreateAccount(_ context.Context, account model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	for _, existing := range s.accountsByID {
		if existing.ID == account.ID || existing.Username == account.Username || existing.SessionID == account.SessionID {
			return store.ErrDuplicate
		}
	}
	s.accountsByID[account.ID] = account
	return nil
}

func (s *Store) AccountByUsername(_ context.Context, username string) (model.Account, error) {
	return s.findAccount(func(a model.Account) bool { return a.Username == username })
}

func (s *Store) AccountBySession(_ context.Context, sessionID string) (model.Account, error) {
	return s.findAccount(func(a model.Account) bool { return a.SessionID == sessionID })
}

func (s *Store) findAccount(match func(model.Account) bool) (model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return model.Account{}, s.Err
	}

	for _, a := range s.accountsByID {
		if match(a) {
			return a, nil
		}
	}
	return model.Account{}, store.ErrNotFound
}

func (s *Store) CreateMeal(_ context.Context, meal model.Meal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	s.meals = append(s.meals, meal)
	return nil
}

func (s *Store) ListMeals(_ context.Context, userID string) ([]model.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}

	result := []model.Meal{}
	for _, m := range s.meals {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *Store) GetMeal(_ context.Context, userID, mealID string) (model.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return model.Meal{}, s.Err
	}

	i := s.indexLocked(userID, mealID)
	if i < 0 {
		return model.Meal{}, store.ErrNotFound
	}
	return s.meals[i], nil
}

func (s *Store) UpdateMeal(_ context.Context, userID, mealID string, patch model.MealPatch) (model.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.Meal{}, s.Err
	}

	i := s.indexLocked(userID, mealID)
	if i < 0 {
		return model.Meal{}, store.ErrNotFound
	}
	patch.Apply(&s.meals[i])
	return s.meals[i], nil
}

func (s *Store) DeleteMeal(_ context.Context, userID, mealID string) (model.Meal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return model.Meal{}, s.Err
	}

	i := s.indexLocked(userID, mealID)
	if i < 0 {
		return model.Meal{}, store.ErrNotFound
	}
	deleted := s.meals[i]
	s.meals = append(s.meals[:i], s.meals[i+1:]...)
	return deleted, nil
}

func (s *Store) Ping(context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Err
}

func (s *Store) indexLocked(userID, mealID string) int {
	for i, m := range s.meals {
		if m.ID == mealID && m.UserID == userID {
			return i
		}
	}
	return -1
}
