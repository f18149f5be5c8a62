package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"daily-diet-api/internal/model"
	"daily-diet-api/internal/store"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, account model.Account) error
	AccountByUsername(ctx context.Context, username string) (model.Account, error)
	AccountBySession(ctx context.Context, sessionID string) (model.Account, error)
}

// Accounts registers accounts, logs them in and resolves session ids.
type Accounts struct {
	Repo  AccountRepository
	NewID func() string
}

func NewAccounts(repo AccountRepository) *Accounts {
	return &Accounts{Repo: repo, NewID: uuid.NewString}
}

func (a *Accounts) Register(ctx context.Context, in UsernameInput) (model.Account, error) {
	username, err := in.Validate()
	if err != nil {
		return model.Account{}, err
	}

	_, err = a.Repo.AccountByUsername(ctx, username)
	switch {
	case err == nil:
		return model.Account{}, ErrUsernameTaken
	case !errors.Is(err, store.ErrNotFound):
		return model.Account{}, fmt.Errorf("register: %w", err)
	}

	account := model.Account{ID: a.NewID(), SessionID: a.NewID(), Username: username}
	if err := a.Repo.CreateAccount(ctx, account); err != nil {
		// Lost a race with a concurrent registration of the same name.
		if errors.Is(err, store.ErrDuplicate) {
			return model.Account{}, ErrUsernameTaken
		}
		return model.Account{}, fmt.Errorf("register: %w", err)
	}
	return account, nil
}

func (a *Accounts) Login(ctx context.Context, in UsernameInput) (model.Account, error) {
	username, err := in.Validate()
	if err != nil {
		return model.Account{}, err
	}

	account, err := a.Repo.AccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("login: %w", err)
	}
	return account, nil
}

// Authenticate resolves a session id to its account.
func (a *Accounts) Authenticate(ctx context.Context, sessionID string) (model.Account, error) {
	if sessionID == "" {
		return model.Account{}, ErrUnauthenticated
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return model.Account{}, ErrUnauthenticated
	}

	account, err := a.Repo.AccountBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Account{}, ErrUnauthenticated
		}
		return model.Account{}, fmt.Errorf("authenticate: %w", err)
	}
	return account, nil
}
