package services

import (
	"fmt"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	"mgMessenger/internal/utils"
	"mgMessenger/internal/validators"
	"strings"

	"github.com/google/uuid"
)

type userDirectory interface {
	SearchableUsers(excludeID uuid.UUID) ([]models.User, error)
	UpdateProfile(user *models.User) error
	UpdatePasswordHash(user *models.User) error
	GetUserNote(ownerID, targetID uuid.UUID) (string, error)
	SaveUserNote(ownerID, targetID uuid.UUID, text string) error
	DeleteUserNote(ownerID, targetID uuid.UUID) error
}

// UserService covers the user directory: search, profiles and private notes.
type UserService struct {
	users     userStore
	directory userDirectory
}

func NewUserService(users userStore, directory userDirectory) *UserService {
	return &UserService{
		users:     users,
		directory: directory,
	}
}

// Search matches query against name, phone, email and login of every visible
// user except the searcher. An empty query lists them all.
func (us *UserService) Search(searcher *models.User, query string) ([]models.UserShortResponse, []error) {
	users, err := us.directory.SearchableUsers(searcher.ID)
	if err != nil {
		return nil, []error{err}
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	result := make([]models.UserShortResponse, 0, len(users))
	for i := range users {
		user := &users[i]
		if normalized != "" && !strings.Contains(searchHaystack(user), normalized) {
			continue
		}
		result = append(result, user.ToUserShortResponse())
	}
	return result, nil
}

func searchHaystack(user *models.User) string {
	return strings.ToLower(fmt.Sprintf("%v %v %v %v %v", user.DisplayName(), user.MiddleName, user.Phone, user.Email, user.Login))
}

// GetUserInfo returns the public card of login together with the reader's
// note about them.
func (us *UserService) GetUserInfo(reader *models.User, login string) (*models.UserInfoResponse, []error) {
	user, err := us.users.GetActiveUserByLogin(login)
	if err != nil {
		return nil, []error{errs.ErrUserNotFound}
	}
	note, err := us.directory.GetUserNote(reader.ID, user.ID)
	if err != nil {
		return nil, []error{err}
	}
	return &models.UserInfoResponse{
		UserShortResponse: user.ToUserShortResponse(),
		Note:              note,
	}, nil
}

// SetUserNote stores the note, or removes it when the trimmed text is empty.
func (us *UserService) SetUserNote(owner *models.User, login string, request *models.UserNoteRequest) (*models.UserNoteResponse, []error) {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return nil, validationErrs
	}
	target, err := us.users.GetActiveUserByLogin(login)
	if err != nil {
		return nil, []error{errs.ErrUserNotFound}
	}
	if target.ID == owner.ID {
		return nil, []error{errs.ErrNoteAboutYourself}
	}

	note := strings.TrimSpace(request.Note)
	if note == "" {
		err = us.directory.DeleteUserNote(owner.ID, target.ID)
	} else {
		err = us.directory.SaveUserNote(owner.ID, target.ID, note)
	}
	if err != nil {
		return nil, []error{err}
	}
	return &models.UserNoteResponse{Note: note}, nil
}

func (us *UserService) UpdateProfile(user *models.User, request *models.ProfileUpdateRequest) (*models.ProfileResponse, []error) {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return nil, validationErrs
	}
	user.ApplyProfile(request)
	if err := us.directory.UpdateProfile(user); err != nil {
		return nil, []error{err}
	}
	return user.ToProfileResponse(), nil
}

func (us *UserService) ChangePassword(user *models.User, request *models.ChangePasswordRequest) []error {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return validationErrs
	}
	hash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return []error{err}
	}
	user.PasswordHash = hash
	if err := us.directory.UpdatePasswordHash(user); err != nil {
		return []error{err}
	}
	return nil
}
