package rbac

import "testing"

func TestCheckerWildcard(t *testing.T) {
	c := NewChecker(nil)
	if !c.Has("coordinator", "records:import") {
		t.Error("coordinator should match records:* for records:import")
	}
	if !c.Has("admin", "anything:at_all") {
		t.Error("admin * should match everything")
	}
	if c.Has("student", "records:import") {
		t.Error("student must not import records")
	}
	if c.Has("nobody", "records:view") {
		t.Error("unknown role must have nothing")
	}
}

func TestCheckerAny(t *testing.T) {
	c := NewChecker(nil)
	if !c.Any("student", "attempt:view-own", "attempt:view-all") {
		t.Error("student has attempt:view-own")
	}
	if c.Any("coordinator", "quiz:create", "users:list") {
		t.Error("coordinator has neither quiz nor roster perms")
	}
}
