package services

import (
	"errors"
	"mgMessenger/internal/enums"
	"mgMessenger/internal/errs"
	"mgMessenger/internal/models"
	socketModels "mgMessenger/internal/models/socket"
	"reflect"
	"testing"
)

func TestInvite(t *testing.T) {
	alice, bob, eve := newUser("alice"), newUser("bob"), newUser("eve")
	alice.LastName = "Smith"
	eve.IsBlocked = true
	notifier := &recordingNotifier{}
	service := NewCallService(newFakeUserStore(alice, bob, eve), notifier)

	if inviteErrs := service.Invite(alice, &models.CallInviteRequest{TargetLogin: "bob"}); len(inviteErrs) > 0 {
		t.Fatalf("Invite: %v", inviteErrs)
	}
	call := notifier.last()
	if !reflect.DeepEqual(call.identities, []string{"bob"}) {
		t.Errorf("notified %v, want only bob", call.identities)
	}
	want := socketModels.CallInviteEvent{Type: enums.SOCKET_EVENT_CALL_INVITE, FromLogin: "alice", FromName: "Smith alice"}
	if call.payload != want {
		t.Errorf("payload: got %+v, want %+v", call.payload, want)
	}

	tests := []struct {
		target string
		want   error
	}{
		{"alice", errs.ErrCallYourself},
		{"ghost", errs.ErrUserNotFound},
		{"eve", errs.ErrUserNotFound},
	}
	for _, tt := range tests {
		inviteErrs := service.Invite(alice, &models.CallInviteRequest{TargetLogin: tt.target})
		if len(inviteErrs) == 0 || !errors.Is(inviteErrs[0], tt.want) {
			t.Errorf("invite %v: got %v, want %v", tt.target, inviteErrs, tt.want)
		}
	}
	if notifier.count() != 1 {
		t.Errorf("notified %d times, want 1", notifier.count())
	}
}
