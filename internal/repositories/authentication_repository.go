package repositories

import (
	"errors"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"gorm.io/gorm"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(user *models.User) (*models.User, []error) {
	var errors []error
	result := ar.db.Create(user)
	if result.Error != nil {
		errors = append(errors, result.Error)
		return nil, errors
	}
	if result.RowsAffected == 0 {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	return user, nil
}

// GetUserByLogin returns the user including blocked ones.
func (ar *AuthenticationRepository) GetUserByLogin(login string) (*models.User, error) {
	var user models.User
	if err := ar.db.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetActiveUserByLogin is GetUserByLogin restricted to users that are not blocked.
func (ar *AuthenticationRepository) GetActiveUserByLogin(login string) (*models.User, error) {
	user, err := ar.GetUserByLogin(login)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, errs.ErrUserBlocked
	}
	return user, nil
}

// GetActiveUsersByLogins silently skips unknown and blocked logins.
func (ar *AuthenticationRepository) GetActiveUsersByLogins(logins []string) ([]models.User, error) {
	var users []models.User
	if len(logins) == 0 {
		return users, nil
	}
	err := ar.db.Where("login IN ? AND is_blocked = ?", logins, false).Find(&users).Error
	return users, err
}
