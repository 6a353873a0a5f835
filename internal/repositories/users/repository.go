// Package users persists credential records keyed by username.
package users

import (
	"context"

	"github.com/dmitrijs2005/credkeeper/internal/models"
)

// Repository is the user store. Create fails with common.ErrorAlreadyExists
// when the username is taken; the check and the insert are one atomic
// statement. GetUserByLogin reports absence with common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	List(ctx context.Context) ([]models.UserInfo, error)
}
