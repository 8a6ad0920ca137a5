package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoleAllowed(t *testing.T) {
	assert.True(t, RoleAllowed(RoleAdmin, []string{RolePoster, RoleAdmin}))
	assert.False(t, RoleAllowed(RoleViewer, []string{RolePoster, RoleAdmin}))
	assert.True(t, RoleAllowed(RoleViewer, nil), "empty accepted set admits any valid role")
	assert.False(t, RoleAllowed("superuser", nil), "unknown roles never pass")
	assert.False(t, RoleAllowed("", []string{RoleAdmin}))
}

func TestUserLevel(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{250, 3},
	}
	for _, tc := range cases {
		u := User{XP: tc.xp}
		assert.Equal(t, tc.level, u.Level(), "xp=%d", tc.xp)
	}
}

func TestUserName(t *testing.T) {
	u := User{Username: "alice"}
	assert.Equal(t, "alice", u.Name())
	u.DisplayName = "Alice L."
	assert.Equal(t, "Alice L.", u.Name())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)), "the deadline itself counts as expired")
	assert.True(t, s.Expired(now.Add(2*time.Minute)))
}

func TestValidContactStatus(t *testing.T) {
	assert.True(t, ValidContactStatus(ContactStatusPending))
	assert.True(t, ValidContactStatus(ContactStatusRead))
	assert.True(t, ValidContactStatus(ContactStatusReplied))
	assert.False(t, ValidContactStatus("archived"))
	assert.False(t, ValidContactStatus(""))
}
