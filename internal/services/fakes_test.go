package services

import (
	"context"
	"io"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/repositories"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type notification struct {
	identities []string
	payload    any
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (n *recordingNotifier) NotifyUsers(identities []string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sorted := append([]string(nil), identities...)
	sort.Strings(sorted)
	n.calls = append(n.calls, notification{identities: sorted, payload: payload})
}

func (n *recordingNotifier) last() notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return notification{}
	}
	return n.calls[len(n.calls)-1]
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type fakeUserStore struct {
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, user := range users {
		s.users[user.Login] = user
	}
	return s
}

func (s *fakeUserStore) GetUserByLogin(login string) (*models.User, error) {
	user, ok := s.users[login]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetActiveUserByLogin(login string) (*models.User, error) {
	user, err := s.GetUserByLogin(login)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, errs.ErrUserBlocked
	}
	return user, nil
}

func (s *fakeUserStore) GetActiveUsersByLogins(logins []string) ([]models.User, error) {
	var users []models.User
	for _, login := range logins {
		if user, err := s.GetActiveUserByLogin(login); err == nil {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (s *fakeUserStore) byID(id uuid.UUID) *models.User {
	for _, user := range s.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (s *fakeUserStore) loginOf(id uuid.UUID) string {
	if user := s.byID(id); user != nil {
		return user.Login
	}
	return ""
}

func newUser(login string) *models.User {
	return &models.User{ID: uuid.New(), Login: login, FirstName: login}
}

// fakeChatStore keeps messages and group memberships in memory.
type fakeChatStore struct {
	users    *fakeUserStore
	messages map[uuid.UUID]*models.Message
	groups   map[uuid.UUID][]uuid.UUID

	// deletedBeforeParticipants is set when DeleteMessage ran before the
	// participants of that message were looked up.
	deletedBeforeParticipants bool
	privateChats              []repositories.PrivateChatSummary
}

func newFakeChatStore(users *fakeUserStore) *fakeChatStore {
	return &fakeChatStore{
		users:    users,
		messages: make(map[uuid.UUID]*models.Message),
		groups:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (s *fakeChatStore) SaveMessage(message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	stored := *message
	s.messages[message.ID] = &stored
	return nil
}

func (s *fakeChatStore) GetMessageByID(id uuid.UUID) (*models.Message, error) {
	message, ok := s.messages[id]
	if !ok {
		return nil, errs.ErrMessageNotFound
	}
	copied := *message
	if sender := s.users.byID(message.SenderID); sender != nil {
		copied.Sender = *sender
	}
	return &copied, nil
}

func (s *fakeChatStore) UpdateMessageText(message *models.Message) error {
	s.messages[message.ID].Text = message.Text
	return nil
}

func (s *fakeChatStore) DeleteMessage(message *models.Message) error {
	delete(s.messages, message.ID)
	return nil
}

func (s *fakeChatStore) IsGroupMember(groupID, userID uuid.UUID) bool {
	for _, member := range s.groups[groupID] {
		if member == userID {
			return true
		}
	}
	return false
}

func (s *fakeChatStore) GroupMemberLogins(groupID uuid.UUID) ([]string, error) {
	var logins []string
	for _, member := range s.groups[groupID] {
		logins = append(logins, s.users.loginOf(member))
	}
	return logins, nil
}

func (s *fakeChatStore) MessageParticipantLogins(message *models.Message) ([]string, error) {
	if _, ok := s.messages[message.ID]; !ok {
		s.deletedBeforeParticipants = true
	}
	if message.GroupID != nil {
		return s.GroupMemberLogins(*message.GroupID)
	}
	logins := []string{s.users.loginOf(message.SenderID)}
	if message.ReceiverUserID != nil {
		logins = append(logins, s.users.loginOf(*message.ReceiverUserID))
	}
	return logins, nil
}

func (s *fakeChatStore) PrivateHistory(readerID, partnerID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, message := range s.messages {
		if message.GroupID == nil {
			out = append(out, *message)
		}
	}
	return out, nil
}

func (s *fakeChatStore) GroupHistory(readerID, groupID uuid.UUID) ([]models.Message, error) {
	var out []models.Message
	for _, message := range s.messages {
		if message.GroupID != nil && *message.GroupID == groupID {
			out = append(out, *message)
		}
	}
	return out, nil
}

func (s *fakeChatStore) PrivateChats(userID uuid.UUID) ([]repositories.PrivateChatSummary, error) {
	return s.privateChats, nil
}

func (s *fakeChatStore) GroupChats(userID uuid.UUID) ([]repositories.GroupChatSummary, error) {
	return nil, nil
}

type fakeUploader struct {
	uploaded []string
}

func (u *fakeUploader) UploadAttachment(ctx context.Context, originalName string, file io.Reader, fileSize int64, contentType string) (string, string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", err
	}
	u.uploaded = append(u.uploaded, string(data))
	return "http://files/" + originalName, contentType, nil
}

type fakePresenceReader map[string]bool

func (p fakePresenceReader) IsOnline(login string) bool {
	return p[login]
}
