package services

import (
	"errors"
	"mgMessenger/configs"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/utils"
	"testing"
	"time"

	"github.com/spf13/viper"
)

const testSecret = "services-test-secret"

func newTestAuthService(t *testing.T, users ...*models.User) *AuthenticationService {
	t.Helper()
	v := viper.New()
	v.Set("jwt.secret", testSecret)
	v.Set("jwt.expiration_time", 3600)
	return NewAuthenticationService(newFakeUserStore(users...), &configs.Config{Viper: v})
}

func TestResolveIdentity(t *testing.T) {
	alice, mallory := newUser("alice"), newUser("mallory")
	mallory.IsBlocked = true
	service := newTestAuthService(t, alice, mallory)

	token := func(login string) string {
		signed, err := utils.CreateJwtToken(login, []byte(testSecret), time.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("CreateJwtToken: %v", err)
		}
		return signed
	}

	identity, err := service.ResolveIdentity(token("alice"))
	if err != nil || identity != "alice" {
		t.Errorf("alice: got %q, %v", identity, err)
	}

	if _, err := service.ResolveIdentity(""); !errors.Is(err, errs.ErrUnauthorized) {
		t.Errorf("empty token: got %v", err)
	}
	if _, err := service.ResolveIdentity(token("mallory")); !errors.Is(err, errs.ErrUserBlocked) {
		t.Errorf("blocked user: got %v", err)
	}
	if _, err := service.ResolveIdentity(token("ghost")); !errors.Is(err, errs.ErrUserNotFound) {
		t.Errorf("unknown user: got %v", err)
	}
	if _, err := service.ResolveIdentity("garbage"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestLogin(t *testing.T) {
	alice, mallory := newUser("alice"), newUser("mallory")
	hash, err := utils.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	alice.PasswordHash, mallory.PasswordHash = hash, hash
	mallory.IsBlocked = true
	service := newTestAuthService(t, alice, mallory)

	response, loginErrs := service.Login(&models.LoginRequestBody{Login: " alice ", Password: "secret"})
	if len(loginErrs) > 0 {
		t.Fatalf("Login: %v", loginErrs)
	}
	if response.TokenType != "bearer" || response.User.Login != "alice" {
		t.Errorf("response: %+v", response)
	}
	if identity, err := service.ResolveIdentity(response.AccessToken); err != nil || identity != "alice" {
		t.Errorf("issued token resolves to %q, %v", identity, err)
	}

	for _, body := range []models.LoginRequestBody{
		{Login: "alice", Password: "wrong"},
		{Login: "mallory", Password: "secret"},
		{Login: "ghost", Password: "secret"},
	} {
		if _, loginErrs := service.Login(&body); len(loginErrs) == 0 || !errors.Is(loginErrs[0], errs.ErrWrongCredentials) {
			t.Errorf("login %v: got %v, want ErrWrongCredentials", body.Login, loginErrs)
		}
	}
}
