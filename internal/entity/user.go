package entity

import (
	"context"
	"errors"
)

var ErrUserNotFound = errors.New("usuário não encontrado")

// User é a projeção somente leitura usada pelo sync. É montada a cada chamada a partir do banco.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Job            string `json:"job"`
	IsSubscribed   bool   `json:"is_subscribed"`
	HasBankAccount bool   `json:"has_bank_account"`
}

type UserRepositoryInterface interface {
	// FindByID devolve ErrUserNotFound quando o usuário não existe.
	FindByID(ctx context.Context, userID string) (*User, error)
	CountBankAccounts(ctx context.Context, userID string) (int64, error)
}
