package services

import (
	"mgMessenger/internal/enums"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/interfaces"
	"mgMessenger/internal/models"
	socketModels "mgMessenger/internal/models/socket"
	"mgMessenger/internal/validators"
)

type CallService struct {
	users    userStore
	notifier interfaces.Notifier
}

func NewCallService(users userStore, notifier interfaces.Notifier) *CallService {
	return &CallService{
		users:    users,
		notifier: notifier,
	}
}

// Invite rings every live connection of the target with call:invite.
func (cs *CallService) Invite(caller *models.User, request *models.CallInviteRequest) []error {
	if validationErrs := validators.ValidateStruct(request); len(validationErrs) > 0 {
		return validationErrs
	}

	target, err := cs.users.GetActiveUserByLogin(request.TargetLogin)
	if err != nil {
		return []error{errs.ErrUserNotFound}
	}
	if target.ID == caller.ID {
		return []error{errs.ErrCallYourself}
	}

	cs.notifier.NotifyUsers([]string{target.Login}, socketModels.CallInviteEvent{
		Type:      enums.SOCKET_EVENT_CALL_INVITE,
		FromLogin: caller.Login,
		FromName:  caller.DisplayName(),
	})
	return nil
}
