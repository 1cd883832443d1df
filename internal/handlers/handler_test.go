package handlers

import (
	"fmt"
	"mgMessenger/configs"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/realtime"
	"mgMessenger/internal/services"
	"mgMessenger/internal/utils"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const testSecret = "handlers-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	users map[string]*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*models.User)}
	for _, user := range users {
		f.users[user.Login] = user
	}
	return f
}

func (f *fakeUsers) GetUserByLogin(login string) (*models.User, error) {
	user, ok := f.users[login]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetActiveUserByLogin(login string) (*models.User, error) {
	user, err := f.GetUserByLogin(login)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, errs.ErrUserBlocked
	}
	return user, nil
}

func newUser(login string) *models.User {
	return &models.User{ID: uuid.New(), Login: login, FirstName: login}
}

func testConfig() *configs.Config {
	v := viper.New()
	v.Set("jwt.secret", testSecret)
	v.Set("jwt.expiration_time", 3600)
	return &configs.Config{Viper: v}
}

func tokenFor(t *testing.T, login string) string {
	t.Helper()
	token, err := utils.CreateJwtToken(login, []byte(testSecret), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateJwtToken: %v", err)
	}
	return token
}

func newTestAuthService(users *fakeUsers) *services.AuthenticationService {
	return services.NewAuthenticationService(users, testConfig())
}

// recordingConn is a realtime.Conn that keeps what it was sent.
type recordingConn struct {
	id string

	mu   sync.Mutex
	sent []string
}

func (c *recordingConn) ID() string {
	return c.id
}

func (c *recordingConn) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, string(msg))
	return nil
}

func (c *recordingConn) frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// waitFor polls cond until it holds or a second has passed.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %v", what)
}

func statsString(hub *realtime.Hub) string {
	return fmt.Sprintf("%+v", hub.Stats())
}
