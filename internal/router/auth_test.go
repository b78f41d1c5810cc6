package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/recipe-hub/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndDuplicateUsername(t *testing.T) {
	s := newTestServer(t)

	body := map[string]string{
		"username":  "alice",
		"email":     "alice@x.com",
		"password":  "p1",
		"password2": "p1",
	}
	rec := s.do(t, http.MethodPost, "/register/", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "User alice has been created successfully", decode(t, rec)["message"])

	body["email"] = "other@x.com"
	rec = s.do(t, http.MethodPost, "/register/", "", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"A user with that username already exists."}, fieldErrors(t, rec, "username"))

	var count int64
	require.NoError(t, s.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	s.signup(t, "alice")

	tests := []struct {
		name  string
		body  map[string]string
		field string
		want  string
	}{
		{
			name:  "passwords differ",
			body:  map[string]string{"username": "bob", "email": "bob@x.com", "password": "p1", "password2": "p2"},
			field: "password",
			want:  "Passwords must match",
		},
		{
			name:  "malformed email",
			body:  map[string]string{"username": "bob", "email": "not-an-email", "password": "p1", "password2": "p1"},
			field: "email",
			want:  "Enter a valid email address.",
		},
		{
			name:  "email taken",
			body:  map[string]string{"username": "bob", "email": "alice@x.com", "password": "p1", "password2": "p1"},
			field: "email",
			want:  "A user with that email already exists.",
		},
		{
			name:  "missing password2",
			body:  map[string]string{"username": "bob", "email": "bob@x.com", "password": "p1"},
			field: "password2",
			want:  "This field is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/register/", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, fieldErrors(t, rec, tt.field), tt.want)
		})
	}
}

func TestRegisterPasswordMismatchBody(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/register/", "", map[string]string{
		"username": "bob", "email": "bob@x.com", "password": "p1", "password2": "p2",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"password":["Passwords must match"]}`, rec.Body.String())
}

func TestRegisterWithProfilePicture(t *testing.T) {
	s := newTestServer(t)

	fields := map[string]string{
		"username":  "alice",
		"email":     "alice@x.com",
		"password":  "p1",
		"password2": "p1",
	}
	rec := s.upload(t, http.MethodPost, "/register/", "", fields, "profile_picture", "me.gif", []byte("GIF89a"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Only PNG, JPG and JPEG images are allowed."}, fieldErrors(t, rec, "profile_picture"))

	rec = s.upload(t, http.MethodPost, "/register/", "", fields, "profile_picture", "me.JPG", []byte("jpeg bytes"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	token := s.login(t, "alice", "p1")
	rec = s.do(t, http.MethodGet, "/profile/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	picture, _ := decode(t, rec)["profile_picture"].(string)
	assert.True(t, strings.HasPrefix(picture, "/media/profile_pictures/"), picture)
	assert.True(t, strings.HasSuffix(picture, ".jpg"), picture)
}

func TestLoginReusesLiveToken(t *testing.T) {
	s := newTestServer(t)
	first := s.signup(t, "alice")
	second := s.login(t, "alice", "p1")
	assert.Equal(t, first, second)

	rec := s.do(t, http.MethodPost, "/login/", "", map[string]string{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid username or password", decode(t, rec)["message"])

	rec = s.do(t, http.MethodPost, "/login/", "", map[string]string{"username": "nobody", "password": "p1"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid username or password", decode(t, rec)["message"])
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")

	rec := s.do(t, http.MethodGet, "/profile/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/logout/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "You have successfully logged out", decode(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/profile/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	fresh := s.login(t, "alice", "p1")
	assert.NotEqual(t, token, fresh)
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/profile/", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication credentials were not provided.", decode(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/profile/", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/recipes/", "", recipePayload("Pie"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTrailingSlashIsOptional(t *testing.T) {
	s := newTestServer(t)
	token := s.signup(t, "alice")

	rec := s.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode(t, rec)["username"])
}

func TestProfileUpdateAndAccountDeletion(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")
	bob := s.signup(t, "bob")

	rec := s.do(t, http.MethodPost, "/follow/alice/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/profile/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode(t, rec)
	assert.Equal(t, "alice", profile["username"])
	assert.Nil(t, profile["profile_picture"])
	assert.Equal(t, float64(1), profile["followers_count"])

	rec = s.do(t, http.MethodPatch, "/profile/", alice, map[string]string{"username": "bob"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"A user with that username already exists."}, fieldErrors(t, rec, "username"))

	rec = s.do(t, http.MethodPatch, "/profile/", alice, map[string]string{"username": "alicia"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alicia", decode(t, rec)["username"])

	recipeID := s.createRecipe(t, alice, "Pie")
	rec = s.do(t, http.MethodPost, "/recipes/"+itoa(recipeID)+"/favorite/", bob, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodGet, "/delete_account/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alicia", decode(t, rec)["username"])

	rec = s.do(t, http.MethodDelete, "/delete_account/", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Account deleted successfully", decode(t, rec)["message"])

	rec = s.do(t, http.MethodGet, "/recipes/"+itoa(recipeID)+"/", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/recipes/FavoriteFeedView/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, results(t, rec))

	rec = s.do(t, http.MethodGet, "/following/", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, results(t, rec))

	rec = s.do(t, http.MethodGet, "/profile/", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountDeletionRemovesStoredPictures(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup(t, "alice")

	fields := map[string]string{
		"title":            "Pie",
		"ingredients":      `["apples"]`,
		"instructions":     "Bake.",
		"category":         "dessert",
		"preparation_time": "15",
		"servings":         "4",
	}
	rec := s.upload(t, http.MethodPost, "/recipes/", alice, fields, "picture", "pie.png", []byte("png bytes"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	picture := decode(t, rec)["data"].(map[string]interface{})["picture"].(string)

	served := httptest.NewRecorder()
	s.e.ServeHTTP(served, httptest.NewRequest(http.MethodGet, picture, nil))
	require.Equal(t, http.StatusOK, served.Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/delete_account/", alice, nil).Code)

	gone := httptest.NewRecorder()
	s.e.ServeHTTP(gone, httptest.NewRequest(http.MethodGet, picture, nil))
	assert.Equal(t, http.StatusNotFound, gone.Code)
}
