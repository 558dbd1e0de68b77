package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/model"
)

func getTestManager() *DatabaseManager {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	mm := New(db)

	if err := mm.Migrate(); err != nil {
		panic(err)
	}

	return mm
}

func addUser(t *testing.T, mm *DatabaseManager, username, pryvUsername string) *model.User {
	t.Helper()

	u, err := mm.CreateUser(&model.User{Username: username, PryvUsername: pryvUsername})
	require.NoError(t, err)

	return u
}

func addCampaign(t *testing.T, mm *DatabaseManager, owner *model.User) *model.Campaign {
	t.Helper()

	c, err := mm.CreateCampaign(owner, &model.Campaign{
		Title:       "heart rate study",
		PryvAppID:   "app-heart",
		Description: "share your heart rate",
		Permissions: []*model.Permission{{StreamID: "heart", Level: "read", DefaultName: "Heart"}},
	})
	require.NoError(t, err)

	return c
}

func TestCreateUser_LocalOnly(t *testing.T) {
	mm := getTestManager()

	u := addUser(t, mm, "alice", "")

	require.NotEmpty(t, u.ID)
	require.Empty(t, u.PryvID)
	require.Empty(t, u.PryvUsername)

	stored := mm.UserQuery().Username("alice").One()
	require.NotNil(t, stored)
	require.Equal(t, u.ID, stored.ID)
}

func TestCreateUser_PryvOnly(t *testing.T) {
	mm := getTestManager()

	u := addUser(t, mm, "", "alice.pryv.me")

	require.NotEmpty(t, u.ID)
	require.NotEmpty(t, u.PryvID)
	require.Empty(t, u.Username)

	stored := mm.UserQuery().PryvUsername("alice.pryv.me").One()
	require.NotNil(t, stored)
	require.Equal(t, u.PryvID, stored.PryvID)
}

func TestCreateUser_Duplicates(t *testing.T) {
	mm := getTestManager()

	addUser(t, mm, "alice", "")
	addUser(t, mm, "", "bob.pryv.me")

	_, err := mm.CreateUser(&model.User{Username: "alice"})
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = mm.CreateUser(&model.User{PryvUsername: "bob.pryv.me"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateUser_SeveralPartial(t *testing.T) {
	mm := getTestManager()

	// empty usernames must not collide on the unique indexes
	addUser(t, mm, "user1", "")
	addUser(t, mm, "user2", "")
	addUser(t, mm, "", "u1.pryv.me")
	addUser(t, mm, "", "u2.pryv.me")

	require.EqualValues(t, 4, mm.UserQuery().Count())
}

func TestCreateInvitation(t *testing.T) {
	mm := getTestManager()

	requester := addUser(t, mm, "alice", "")
	requestee := addUser(t, mm, "", "bob.pryv.me")
	campaign := addCampaign(t, mm, requester)

	inv, err := mm.CreateInvitation(campaign.ID, requester.ID, requestee.ID)
	require.NoError(t, err)

	require.NotEmpty(t, inv.ID)
	require.NotEmpty(t, inv.AccessToken)
	require.Equal(t, model.StatusPending, inv.Status)
	require.Equal(t, inv.Created, inv.Modified)
	require.Equal(t, campaign.ID, inv.Campaign.ID)
	require.Equal(t, requester.ID, inv.Requester.ID)
	require.Equal(t, requestee.ID, inv.Requestee.ID)
}

func TestCreateInvitation_Conflict(t *testing.T) {
	mm := getTestManager()

	requester := addUser(t, mm, "alice", "")
	requestee := addUser(t, mm, "bob", "")
	campaign := addCampaign(t, mm, requester)

	_, err := mm.CreateInvitation(campaign.ID, requester.ID, requestee.ID)
	require.NoError(t, err)

	_, err = mm.CreateInvitation(campaign.ID, requester.ID, requestee.ID)
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateInvitation_NotFound(t *testing.T) {
	mm := getTestManager()

	requester := addUser(t, mm, "alice", "")
	requestee := addUser(t, mm, "bob", "")
	campaign := addCampaign(t, mm, requester)

	_, err := mm.CreateInvitation("nosuchcampaign", requester.ID, requestee.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = mm.CreateInvitation(campaign.ID, "nosuchuser", requestee.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = mm.CreateInvitation(campaign.ID, requester.ID, "nosuchuser")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInvitationQuery_User(t *testing.T) {
	mm := getTestManager()

	alice := addUser(t, mm, "alice", "")
	bob := addUser(t, mm, "bob", "")
	carol := addUser(t, mm, "carol", "")

	c1 := addCampaign(t, mm, alice)
	c2 := addCampaign(t, mm, bob)

	_, err := mm.CreateInvitation(c1.ID, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = mm.CreateInvitation(c2.ID, bob.ID, carol.ID)
	require.NoError(t, err)

	require.Len(t, mm.InvitationQuery().User(alice.ID).Get(), 1)
	require.Len(t, mm.InvitationQuery().User(bob.ID).Get(), 2)
	require.Len(t, mm.InvitationQuery().User(carol.ID).Get(), 1)
}

func TestUpdateInvitationStatus(t *testing.T) {
	mm := getTestManager()

	requester := addUser(t, mm, "alice", "")
	requestee := addUser(t, mm, "bob", "")
	campaign := addCampaign(t, mm, requester)

	inv, err := mm.CreateInvitation(campaign.ID, requester.ID, requestee.ID)
	require.NoError(t, err)

	updated, err := mm.UpdateInvitationStatus(inv.ID, model.StatusAccepted)
	require.NoError(t, err)
	require.Equal(t, model.StatusAccepted, updated.Status)
	require.True(t, updated.Modified.After(updated.Created) || updated.Modified.Equal(updated.Created))

	_, err = mm.UpdateInvitationStatus("nosuchid", model.StatusRefused)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = mm.UpdateInvitationStatus(inv.ID, "bogus")
	require.Error(t, err)
}

func TestUpdateUserLink_FreshLink(t *testing.T) {
	mm := getTestManager()

	addUser(t, mm, "alice", "")

	linked, err := mm.UpdateUserLink("alice", "alice.pryv.me", "ck3s0m2n1o3i4n5a6d")
	require.NoError(t, err)

	require.Equal(t, "alice.pryv.me", linked.PryvUsername)
	require.Equal(t, "ck3s0m2n1o3i4n5a6d", linked.PryvToken)
	require.NotEmpty(t, linked.PryvID)

	require.EqualValues(t, 1, mm.UserQuery().Count())
}

func TestUpdateUserLink_AlreadyLinked(t *testing.T) {
	mm := getTestManager()

	addUser(t, mm, "alice", "")

	first, err := mm.UpdateUserLink("alice", "alice.pryv.me", "ck3s0m2n1o3i4n5a6d")
	require.NoError(t, err)

	second, err := mm.UpdateUserLink("alice", "alice.pryv.me", "cnewtoken12345")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.PryvID, second.PryvID)
	require.Equal(t, first.PryvUsername, second.PryvUsername)
	require.Equal(t, "cnewtoken12345", second.PryvToken)

	require.EqualValues(t, 1, mm.UserQuery().Count())
}

func TestUpdateUserLink_Merge(t *testing.T) {
	mm := getTestManager()

	local := addUser(t, mm, "alice", "")
	pryv := addUser(t, mm, "", "alice.pryv.me")
	owner := addUser(t, mm, "bob", "")

	campaign := addCampaign(t, mm, owner)

	inv, err := mm.CreateInvitation(campaign.ID, owner.ID, pryv.ID)
	require.NoError(t, err)

	linked, err := mm.UpdateUserLink("alice", "alice.pryv.me", "cmergedtoken123")
	require.NoError(t, err)

	require.Equal(t, local.ID, linked.ID)
	require.Equal(t, pryv.PryvID, linked.PryvID)
	require.Equal(t, "alice.pryv.me", linked.PryvUsername)
	require.Equal(t, "cmergedtoken123", linked.PryvToken)

	// the orphan record is gone
	require.Nil(t, mm.UserQuery().Id(pryv.ID).One())

	// the invitation now points at the merged account
	updated := mm.InvitationQuery().Id(inv.ID).One()
	require.NotNil(t, updated)
	require.Equal(t, local.ID, updated.RequesteeID)
	require.Equal(t, inv.AccessToken, updated.AccessToken)
	require.Equal(t, inv.Status, updated.Status)
}

func TestUpdateUserLink_NotFound(t *testing.T) {
	mm := getTestManager()

	_, err := mm.UpdateUserLink("nosuchuser", "alice.pryv.me", "ck3s0m2n1o3i4n5a6d")
	require.ErrorIs(t, err, ErrNotFound)
}
