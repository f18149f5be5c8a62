package store

import (
	"context"
	"fmt"

	"daily-diet-api/internal/model"
)

const accountColumns = `id, session_id, username`

// CreateAccount inserts a new account. A username or session id that already
// exists yields ErrDuplicate.
func (s *Store) CreateAccount(ctx context.Context, account model.Account) error {
	query := `INSERT INTO users (id, session_id, username) VALUES (:id, :session_id, :username)`
	if _, err := s.db.NamedExecContext(ctx, query, account); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *Store) AccountByUsername(ctx context.Context, username string) (model.Account, error) {
	var account model.Account
	query := `SELECT ` + accountColumns + ` FROM users WHERE username = $1`
	if err := s.db.GetContext(ctx, &account, query, username); err != nil {
		return model.Account{}, fmt.Errorf("account by username: %w", notFound(err))
	}
	return account, nil
}

func (s *Store) AccountBySession(ctx context.Context, sessionID string) (model.Account, error) {
	var account model.Account
	query := `SELECT ` + accountColumns + ` FROM users WHERE session_id = $1`
	if err := s.db.GetContext(ctx, &account, query, sessionID); err != nil {
		return model.Account{}, fmt.Errorf("account by session: %w", notFound(err))
	}
	return account, nil
}
