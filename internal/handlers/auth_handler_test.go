package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvakart/backend/internal/models"
)

func TestRegister(t *testing.T) {
	r, db := newTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"username":         "ravi",
		"email":            "ravi@example.com",
		"password":         "secret123",
		"password_confirm": "secret123",
		"first_name":       "Ravi",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "User registered successfully", resp["message"])

	var count int64
	db.Model(&models.User{}).Where("username = ?", "ravi").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"username":         "ravi",
		"email":            "ravi@example.com",
		"password":         "secret123",
		"password_confirm": "different",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password fields didn't match.")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, db := newTestRouter(t)
	createTestUser(t, db, "existing", "taken@example.com", "secret123", false)

	w := postJSON(t, r, "/api/auth/register", gin.H{
		"username":         "newuser",
		"email":            "taken@example.com",
		"password":         "secret123",
		"password_confirm": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestLoginWithUsernameAndEmail(t *testing.T) {
	r, db := newTestRouter(t)
	createTestUser(t, db, "priya", "priya@example.com", "secret123", false)

	for _, identity := range []string{"priya", "priya@example.com"} {
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"username_or_email": identity,
			"password":          "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code, "login with %q", identity)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r, db := newTestRouter(t)
	createTestUser(t, db, "priya", "priya@example.com", "secret123", false)

	tests := []struct {
		name     string
		identity string
		password string
	}{
		{"unknown user", "nobody@example.com", "secret123"},
		{"wrong password", "priya", "wrongpass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/auth/login", gin.H{
				"username_or_email": tt.identity,
				"password":          tt.password,
			})

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid credentials")
		})
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	r, db := newTestRouter(t)
	user := createTestUser(t, db, "gone", "gone@example.com", "secret123", false)
	db.Model(user).Update("is_active", false)

	w := postJSON(t, r, "/api/auth/login", gin.H{
		"username_or_email": "gone",
		"password":          "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User account is disabled")
}

func TestPasswordResetRequest(t *testing.T) {
	r, db := newTestRouter(t)
	user := createTestUser(t, db, "priya", "priya@example.com", "secret123", false)

	// SMTP is not configured, the send fails silently and the endpoint
	// still reports success.
	w := postJSON(t, r, "/api/auth/password-reset", gin.H{"email": "priya@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Password reset link sent")

	var token models.PasswordResetToken
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&token).Error)
	assert.Len(t, token.Token, 100)
	assert.False(t, token.IsUsed)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	// A second request refreshes the same row rather than creating another.
	first := token.Token
	w = postJSON(t, r, "/api/auth/password-reset", gin.H{"email": "priya@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Where("user_id = ?", user.ID).First(&token).Error)
	assert.Equal(t, first, token.Token)
}

func TestPasswordResetRequestUnknownEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/auth/password-reset", gin.H{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No user found with this email address.")
}

func TestPasswordResetConfirm(t *testing.T) {
	r, db := newTestRouter(t)
	user := createTestUser(t, db, "priya", "priya@example.com", "oldsecret", false)

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&resetToken).Error)

	w := postJSON(t, r, "/api/auth/password-reset-confirm", gin.H{
		"token":                resetToken.Token,
		"new_password":         "newsecret",
		"new_password_confirm": "newsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Old password no longer works, new one does.
	w = postJSON(t, r, "/api/auth/login", gin.H{
		"username_or_email": "priya",
		"password":          "oldsecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/auth/login", gin.H{
		"username_or_email": "priya",
		"password":          "newsecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// The token is single use.
	w = postJSON(t, r, "/api/auth/password-reset-confirm", gin.H{
		"token":                resetToken.Token,
		"new_password":         "anothersecret",
		"new_password_confirm": "anothersecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token.")
}

func TestPasswordResetConfirmExpiredToken(t *testing.T) {
	r, db := newTestRouter(t)
	user := createTestUser(t, db, "priya", "priya@example.com", "oldsecret", false)

	resetToken := models.PasswordResetToken{
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&resetToken).Error)

	w := postJSON(t, r, "/api/auth/password-reset-confirm", gin.H{
		"token":                resetToken.Token,
		"new_password":         "newsecret",
		"new_password_confirm": "newsecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token.")
}

func TestGetProfileRequiresAuth(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile(t *testing.T) {
	r, db := newTestRouter(t)
	user := createTestUser(t, db, "priya", "priya@example.com", "secret123", false)

	w := doJSON(t, r, http.MethodPut, "/api/auth/profile", gin.H{
		"first_name": "Priya",
		"phone":      "9876543210",
	}, authHeader(t, user))

	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
	assert.Equal(t, "Priya", updated.FirstName)
	assert.Equal(t, "9876543210", updated.Phone)
	assert.Equal(t, "priya@example.com", updated.Email)
}
