package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobscouts/troop-api/internal/config"
	"github.com/tobscouts/troop-api/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.IdentityConfig{
		BaseURL:        srv.URL,
		AnonKey:        "anon-key",
		ServiceRoleKey: "service-key",
	})
}

func TestClient_CreateUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/users", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))

		var params CreateUserParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "new@example.com", params.Email)
		assert.True(t, params.EmailConfirm)
		assert.NotEmpty(t, params.Password)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Account{
			ID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Email: params.Email,
		})
	})

	account, err := client.CreateUser(context.Background(), CreateUserParams{
		Email:        "new@example.com",
		Password:     GenerateRandomPassword(),
		EmailConfirm: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", account.ID)
	assert.Equal(t, "new@example.com", account.Email)
}

func TestClient_CreateUser_Duplicate(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "modern error_code shape",
			status: http.StatusUnprocessableEntity,
			body:   `{"code":422,"error_code":"email_exists","msg":"A user with this email address has already been registered"}`,
		},
		{
			name:   "legacy msg shape",
			status: http.StatusBadRequest,
			body:   `{"msg":"A user with this email address has already been registered"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.CreateUser(context.Background(), CreateUserParams{Email: "dup@example.com"})

			assert.ErrorIs(t, err, ErrDuplicateAccount)
		})
	}
}

func TestClient_SignIn(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Session{
			AccessToken:  "jwt-token",
			TokenType:    "bearer",
			ExpiresIn:    3600,
			RefreshToken: "refresh-token",
			User:         domain.Account{Email: "leader@example.com"},
		})
	})

	session, err := client.SignIn(context.Background(), "leader@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.AccessToken)
	assert.Equal(t, "leader@example.com", session.User.Email)
}

func TestClient_SignIn_WrongPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignIn(context.Background(), "leader@example.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestClient_GetUser_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"User not found"}`))
	})

	_, err := client.GetUser(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7")

	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestClient_UserFromToken_Expired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"JWT expired"}`))
	})

	_, err := client.UserFromToken(context.Background(), "expired-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClient_Recover(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recover", r.URL.Path)
		assert.Equal(t, "https://troop.example.com/update-password", r.URL.Query().Get("redirect_to"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "scout@example.com", body["email"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Recover(context.Background(), "scout@example.com", "https://troop.example.com/update-password")

	assert.NoError(t, err)
}

func TestClient_UpdateUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/users/7c9e6679-7425-40de-944b-e07fc1f90ae7", r.URL.Path)

		var params UpdateUserParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		require.NotNil(t, params.Email)
		assert.Equal(t, "renamed@example.com", *params.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domain.Account{
			ID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Email: *params.Email,
		})
	})

	email := "renamed@example.com"
	account, err := client.UpdateUser(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7", UpdateUserParams{
		Email: &email,
	})

	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", account.Email)
}

func TestClient_DeleteUser(t *testing.T) {
	var called bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/users/7c9e6679-7425-40de-944b-e07fc1f90ae7", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.DeleteUser(context.Background(), "7c9e6679-7425-40de-944b-e07fc1f90ae7")

	require.NoError(t, err)
	assert.True(t, called)
}

func TestClient_UnmappedError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream unavailable`))
	})

	_, err := client.ListUsers(context.Background())

	var provErr *Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusBadGateway, provErr.StatusCode)
	assert.Contains(t, provErr.Msg, "upstream unavailable")
}
