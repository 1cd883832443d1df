package services

import (
	"log"
	"mgMessenger/configs"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/utils"
	"mgMessenger/internal/validators"
	"strings"
	"time"
)

type userStore interface {
	GetUserByLogin(login string) (*models.User, error)
	GetActiveUserByLogin(login string) (*models.User, error)
}

type AuthenticationService struct {
	authRepo  userStore
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthenticationService(authRepo userStore, config *configs.Config) *AuthenticationService {
	return &AuthenticationService{
		authRepo:  authRepo,
		jwtSecret: []byte(config.Viper.GetString("jwt.secret")),
		jwtTTL:    time.Duration(config.Viper.GetInt("jwt.expiration_time")) * time.Second,
	}
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	if validationErrs := validators.ValidateStruct(loginData); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	user, err := as.authRepo.GetUserByLogin(strings.TrimSpace(loginData.Login))
	if err != nil || user.IsBlocked {
		return nil, []error{errs.ErrWrongCredentials}
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, loginData.Password); err != nil {
		return nil, []error{errs.ErrWrongCredentials}
	}

	token, err := utils.CreateJwtToken(user.Login, as.jwtSecret, time.Now().Add(as.jwtTTL))
	if err != nil {
		return nil, []error{err}
	}

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.ToProfileResponse(),
	}, nil
}

// ResolveIdentity turns a bearer token into the login of an existing,
// non-blocked user.
func (as *AuthenticationService) ResolveIdentity(token string) (string, error) {
	user, err := as.Authenticate(token)
	if err != nil {
		return "", err
	}
	return user.Login, nil
}

func (as *AuthenticationService) Authenticate(token string) (*models.User, error) {
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	claims, err := utils.VerifyToken(token, as.jwtSecret)
	if err != nil {
		return nil, err
	}
	user, err := as.authRepo.GetActiveUserByLogin(claims.Login())
	if err != nil {
		log.Printf("Token for %v rejected: %v", claims.Login(), err)
		return nil, err
	}
	return user, nil
}
