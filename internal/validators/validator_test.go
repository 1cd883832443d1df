package validators

import (
	"mgMessenger/internal/models"
	"testing"
)

func TestValidateStruct_LoginRequest(t *testing.T) {
	if errs := ValidateStruct(&models.LoginRequestBody{Login: "alice", Password: "secret"}); len(errs) != 0 {
		t.Errorf("valid request: got %v", errs)
	}
	errs := ValidateStruct(&models.LoginRequestBody{})
	if len(errs) != 2 {
		t.Fatalf("empty request: got %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].Error() != "login failed on required" {
		t.Errorf("first error: got %q", errs[0].Error())
	}
}

func TestValidateStruct_SendMessageChatType(t *testing.T) {
	ok := &models.SendMessageRequest{ChatType: "group", Target: "x"}
	if errs := ValidateStruct(ok); len(errs) != 0 {
		t.Errorf("group: got %v", errs)
	}
	bad := &models.SendMessageRequest{ChatType: "channel", Target: "x"}
	if errs := ValidateStruct(bad); len(errs) != 1 {
		t.Errorf("channel: got %v, want one error", errs)
	}
}

func TestValidateStruct_GroupMembers(t *testing.T) {
	req := &models.GroupCreateRequest{Name: "team", MemberLogins: []string{"bob", ""}}
	if errs := ValidateStruct(req); len(errs) != 1 {
		t.Errorf("empty member login: got %v, want one error", errs)
	}
}
