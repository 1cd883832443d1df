package services

import (
	"log"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/interfaces"
	"mgMessenger/internal/models"
	socketModels "mgMessenger/internal/models/socket"
	"mgMessenger/internal/utils"
	"mgMessenger/internal/validators"
	"strings"

	"github.com/google/uuid"
)

type groupStore interface {
	CreateGroup(group *models.ChatGroup, memberIDs []uuid.UUID) error
	GetGroupByID(id uuid.UUID) (*models.ChatGroup, error)
	UpdateGroup(group *models.ChatGroup, memberIDs []uuid.UUID) error
	DeleteGroup(group *models.ChatGroup) error
	MemberLogins(groupID uuid.UUID) ([]string, error)
}

type memberLookup interface {
	GetActiveUserByLogin(login string) (*models.User, error)
	GetActiveUsersByLogins(logins []string) ([]models.User, error)
}

type GroupService struct {
	users     memberLookup
	groupRepo groupStore
	notifier  interfaces.Notifier
}

func NewGroupService(users memberLookup, groupRepo groupStore, notifier interfaces.Notifier) *GroupService {
	return &GroupService{
		users:     users,
		groupRepo: groupRepo,
		notifier:  notifier,
	}
}

// CreateGroup makes owner a member and the owner of a new group. Unknown and
// blocked logins are skipped.
func (gs *GroupService) CreateGroup(owner *models.User, request *models.GroupCreateRequest) (*models.GroupResponse, []error) {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	members, err := gs.resolveMembers(owner, request.MemberLogins)
	if err != nil {
		return nil, []error{err}
	}

	group := &models.ChatGroup{
		Name:    strings.TrimSpace(request.Name),
		OwnerID: owner.ID,
	}
	if err := gs.groupRepo.CreateGroup(group, userIDs(members)); err != nil {
		return nil, []error{err}
	}

	logins := userLogins(members)
	gs.notifier.NotifyUsers(logins, socketModels.NewChatUpdateEvent())
	return groupResponse(group, owner.Login, logins), nil
}

// UpdateGroup renames the group and, when member logins are given, replaces
// its members. Both the former and the current members get chat:update.
func (gs *GroupService) UpdateGroup(user *models.User, groupID uuid.UUID, request *models.GroupUpdateRequest) (*models.GroupResponse, []error) {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	group, err := gs.ownedGroup(user, groupID)
	if err != nil {
		return nil, []error{err}
	}
	before, err := gs.groupRepo.MemberLogins(group.ID)
	if err != nil {
		return nil, []error{err}
	}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, []error{errs.ErrInvalidParams}
		}
		group.Name = name
	}

	var memberIDs []uuid.UUID
	if request.MemberLogins != nil {
		members, err := gs.resolveMembers(user, request.MemberLogins)
		if err != nil {
			return nil, []error{err}
		}
		memberIDs = userIDs(members)
	}
	if err := gs.groupRepo.UpdateGroup(group, memberIDs); err != nil {
		return nil, []error{err}
	}

	after, err := gs.groupRepo.MemberLogins(group.ID)
	if err != nil {
		return nil, []error{err}
	}
	gs.notifier.NotifyUsers(utils.Dedupe(append(before, after...)), socketModels.NewChatUpdateEvent())
	return groupResponse(group, user.Login, after), nil
}

func (gs *GroupService) TransferOwner(user *models.User, groupID uuid.UUID, request *models.GroupOwnerTransferRequest) (*models.GroupResponse, []error) {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return nil, validationErrs
	}

	group, err := gs.ownedGroup(user, groupID)
	if err != nil {
		return nil, []error{err}
	}
	newOwner, err := gs.users.GetActiveUserByLogin(request.NewOwnerLogin)
	if err != nil {
		return nil, []error{errs.ErrUserNotFound}
	}
	members, err := gs.groupRepo.MemberLogins(group.ID)
	if err != nil {
		return nil, []error{err}
	}
	if !contains(members, newOwner.Login) {
		return nil, []error{errs.ErrNotGroupMember}
	}

	group.OwnerID = newOwner.ID
	if err := gs.groupRepo.UpdateGroup(group, nil); err != nil {
		return nil, []error{err}
	}

	gs.notifier.NotifyUsers(members, socketModels.NewChatUpdateEvent())
	return groupResponse(group, newOwner.Login, members), nil
}

// DeleteGroup removes the group with its messages. Members are captured
// before the delete so they can still be notified.
func (gs *GroupService) DeleteGroup(user *models.User, groupID uuid.UUID) []error {
	group, err := gs.ownedGroup(user, groupID)
	if err != nil {
		return []error{err}
	}
	members, err := gs.groupRepo.MemberLogins(group.ID)
	if err != nil {
		return []error{err}
	}
	if err := gs.groupRepo.DeleteGroup(group); err != nil {
		return []error{err}
	}

	log.Printf("Group %v deleted by %v", group.ID, user.Login)
	gs.notifier.NotifyUsers(members, socketModels.NewChatUpdateEvent())
	return nil
}

func (gs *GroupService) ownedGroup(user *models.User, groupID uuid.UUID) (*models.ChatGroup, error) {
	group, err := gs.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != user.ID {
		return nil, errs.ErrNotGroupOwner
	}
	return group, nil
}

func (gs *GroupService) resolveMembers(owner *models.User, logins []string) ([]models.User, error) {
	members, err := gs.users.GetActiveUsersByLogins(utils.Dedupe(append([]string{owner.Login}, logins...)))
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, errs.ErrUserNotFound
	}
	return members, nil
}

func groupResponse(group *models.ChatGroup, ownerLogin string, memberLogins []string) *models.GroupResponse {
	return &models.GroupResponse{
		ID:           group.ID.String(),
		Name:         group.Name,
		AvatarURL:    group.AvatarURL,
		OwnerLogin:   ownerLogin,
		MemberLogins: memberLogins,
	}
}

func userIDs(users []models.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	return ids
}

func userLogins(users []models.User) []string {
	logins := make([]string, 0, len(users))
	for _, user := range users {
		logins = append(logins, user.Login)
	}
	return logins
}

func contains(items []string, item string) bool {
	for _, candidate := range items {
		if candidate == item {
			return true
		}
	}
	return false
}
