package api

import (
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"critvue/internal/models"
)

func newProfileTestApp(store Store, user *models.User) *fiber.App {
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		if user != nil {
			c.Locals("user", user)
		}
		return c.Next()
	})

	h := NewProfileHandler(store)
	app.Get("/api/users/me", h.Me)
	app.Put("/api/users/me", h.UpdateMe)
	return app
}

func TestProfileMe(t *testing.T) {
	user := testUser()
	store := new(MockStore)

	app := newProfileTestApp(store, user)
	status, resp := doJSON(t, app, "GET", "/api/users/me", nil)

	require.Equal(t, fiber.StatusOK, status)
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, user.Email, data["email"])
}

func TestUpdateProfile_Specialties(t *testing.T) {
	user := testUser()
	specialties := []string{"photography", "ux"}

	store := new(MockStore)
	store.On("UpdateUserSpecialties", mock.Anything, user.ID, specialties).Return(nil)
	store.On("GetUserByID", mock.Anything, user.ID).
		Return(&models.User{ID: user.ID, Email: user.Email, Specialties: specialties}, nil)

	app := newProfileTestApp(store, user)
	status, resp := doJSON(t, app, "PUT", "/api/users/me",
		map[string]any{"specialties": specialties})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", resp["status"])
	store.AssertExpectations(t)
}

func TestUpdateProfile_InvalidSpecialties(t *testing.T) {
	user := testUser()

	tooMany := make([]string, 11)
	for i := range tooMany {
		tooMany[i] = "specialty"
	}

	tests := []struct {
		name string
		body map[string]any
	}{
		{"blank entry", map[string]any{"specialties": []string{"photography", "  "}}},
		{"too many", map[string]any{"specialties": tooMany}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			app := newProfileTestApp(store, user)

			status, _ := doJSON(t, app, "PUT", "/api/users/me", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			store.AssertNotCalled(t, "UpdateUserSpecialties", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
