package router_test

import (
	"net/http"
	"testing"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowCreatesNotification(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")

	rec := s.do(t, http.MethodPost, "/follow/bob/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You are now following bob", decode(t, rec)["message"])

	var notifications []models.Notification
	require.NoError(t, s.db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.VerbStartedFollowing, notifications[0].Verb)
	assert.Equal(t, models.TargetUser, notifications[0].Target.Kind)
	assert.False(t, notifications[0].IsRead)

	rec = s.do(t, http.MethodPost, "/follow/bob/", alice, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You already follow bob", decode(t, rec)["message"])

	var count int64
	require.NoError(t, s.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	rec = s.do(t, http.MethodGet, "/notifications/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := results(t, rec)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "alice", item["actor"])
	assert.Equal(t, "started following you", item["verb"])
	assert.Equal(t, false, item["read"])
	target := item["target"].(map[string]interface{})
	assert.Equal(t, "user", target["kind"])
	assert.Equal(t, "bob", target["display"])

	rec = s.do(t, http.MethodGet, "/notifications/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, results(t, rec))
}

func TestFollowRejections(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	s.signup(t, "bob")

	rec := s.do(t, http.MethodPost, "/follow/alice/", alice, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot follow yourself", decode(t, rec)["message"])

	rec = s.do(t, http.MethodPost, "/follow/nobody/", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/unfollow/nobody/", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/unfollow/bob/", alice, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You are not following bob", decode(t, rec)["message"])
}

func TestUnfollowRestoresState(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/bob/", alice, nil).Code)

	rec := s.do(t, http.MethodGet, "/following/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	following := results(t, rec)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].(map[string]interface{})["username"])

	rec = s.do(t, http.MethodGet, "/followers/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	followers := results(t, rec)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].(map[string]interface{})["username"])

	rec = s.do(t, http.MethodPost, "/unfollow/bob/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You have unfollowed bob", decode(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/following/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, results(t, rec))

	var count int64
	require.NoError(t, s.db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)

	// following again works and notifies again
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/bob/", alice, nil).Code)
	require.NoError(t, s.db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUsersByPopularity(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")
	carol := s.signup(t, "carol")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/carol/", alice, nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/carol/", bob, nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/bob/", carol, nil).Code)

	rec := s.do(t, http.MethodGet, "/follow/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(3), body["count"])
	assert.Equal(t, []interface{}{"carol", "bob", "alice"}, body["results"])

	rec = s.do(t, http.MethodGet, "/follow/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")
	carol := s.signup(t, "carol")

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/bob/", alice, nil).Code)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/follow/bob/", carol, nil).Code)

	var n models.Notification
	require.NoError(t, s.db.Order("id ASC").First(&n).Error)
	path := "/notifications/" + itoa(n.ID) + "/read/"

	rec := s.do(t, http.MethodGet, "/notifications/unread-count/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decode(t, rec)["count"])

	// someone else's notification is invisible
	rec = s.do(t, http.MethodPost, path, alice, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", decode(t, rec)["detail"])

	rec = s.do(t, http.MethodPost, path, bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Notification marked as read.", decode(t, rec)["detail"])

	rec = s.do(t, http.MethodPost, path, bob, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Notification is already read.", decode(t, rec)["detail"])

	rec = s.do(t, http.MethodGet, "/notifications/?unread=true", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	unread := results(t, rec)
	require.Len(t, unread, 1)
	assert.Equal(t, "carol", unread[0].(map[string]interface{})["actor"])

	rec = s.do(t, http.MethodPost, "/notifications/read-all/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec)["updated"])

	rec = s.do(t, http.MethodGet, "/notifications/unread-count/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	rec = s.do(t, http.MethodPost, "/notifications/9999/read/", bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
