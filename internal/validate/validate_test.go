package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUser(t *testing.T) {
	for _, d := range []struct {
		name string
		m    map[string]any
		ok   bool
	}{
		{"local", map[string]any{"username": "alice", "password": "secret1"}, true},
		{"pryv", map[string]any{"pryvUsername": "alice.pryv.me"}, true},
		{"both", map[string]any{"username": "alice", "pryvUsername": "alice.pryv.me", "pryvToken": "ck3s0m2n1o"}, true},
		{"empty", map[string]any{}, false},
		{"unknown_field", map[string]any{"username": "alice", "yolo": "hi"}, false},
		{"bad_username_caps", map[string]any{"username": "Alice"}, false},
		{"bad_username_short", map[string]any{"username": "al"}, false},
		{"bad_username_type", map[string]any{"username": 42}, false},
		{"short_password", map[string]any{"username": "alice", "password": "abc"}, false},
		{"short_pryv_token", map[string]any{"pryvUsername": "alice.pryv.me", "pryvToken": "short"}, false},
	} {
		t.Run(d.name, func(t *testing.T) {
			err := User(d.m)

			if d.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestAuth(t *testing.T) {
	require.NoError(t, Auth(map[string]any{"username": "alice", "password": "secret1"}))
	require.Error(t, Auth(map[string]any{"username": "alice"}))
	require.Error(t, Auth(map[string]any{"password": "secret1"}))
	require.Error(t, Auth(map[string]any{"yolo": "hi"}))
}

func TestLink(t *testing.T) {
	require.NoError(t, Link(map[string]any{"pryvUsername": "alice.pryv.me", "pryvToken": "ck3s0m2n1o"}))
	require.Error(t, Link(map[string]any{"pryvUsername": "alice.pryv.me"}))
	require.Error(t, Link(map[string]any{"badField": "yolo"}))
}

func TestCampaign(t *testing.T) {
	valid := map[string]any{
		"title":       "heart rate study",
		"pryvAppId":   "app-heart",
		"description": "share your heart rate",
		"permissions": []any{
			map[string]any{"streamId": "heart", "level": "read", "defaultName": "Heart"},
		},
	}

	require.NoError(t, Campaign(valid))

	require.Error(t, Campaign(map[string]any{"title": "t"}))
	require.Error(t, Campaign(map[string]any{
		"title": "t", "pryvAppId": "a", "description": "d",
		"permissions": []any{},
	}))
	require.Error(t, Campaign(map[string]any{
		"title": "t", "pryvAppId": "a", "description": "d",
		"permissions": []any{map[string]any{"streamId": "heart"}},
	}))
}

func TestInvitation(t *testing.T) {
	require.NoError(t, Invitation(map[string]any{
		"campaign":  map[string]any{"id": "c1"},
		"requester": map[string]any{"username": "alice"},
		"requestee": map[string]any{"username": "bob"},
	}))

	require.NoError(t, Invitation(map[string]any{
		"campaign":  map[string]any{"id": "c1"},
		"requester": map[string]any{"username": "alice"},
		"requestee": map[string]any{"pryvUsername": "bob.pryv.me"},
	}))

	require.Error(t, Invitation(map[string]any{"invalidKey": "blopblopblop"}))

	require.Error(t, Invitation(map[string]any{
		"campaign":  map[string]any{"id": "c1"},
		"requester": map[string]any{"username": "alice"},
		"requestee": map[string]any{},
	}))
}

func TestInvitationUpdate(t *testing.T) {
	require.NoError(t, InvitationUpdate(map[string]any{"id": "i1", "status": "accepted"}))
	require.Error(t, InvitationUpdate(map[string]any{"status": "accepted"}))
	require.Error(t, InvitationUpdate(map[string]any{"id": "i1", "status": "accepted", "extra": 1}))
}
