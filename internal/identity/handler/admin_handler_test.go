package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OasisOfCleanCode/identity-service/internal/identity/domain"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/dto"
	"github.com/OasisOfCleanCode/identity-service/internal/identity/handler"
)

func adminAccount() *domain.Account {
	email := "admin@example.com"
	return &domain.Account{
		ID:    9,
		Email: &email,
		Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin},
	}
}

func TestBanUserEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})
		f.accounts.EXPECT().UpdateBan(gomock.Any(), int64(5), true, gomock.Any()).Return(nil)
		f.tokens.EXPECT().BanAll(gomock.Any(), int64(5)).Return(nil)

		req := jsonRequest(t, http.MethodPost, "/api/v1/admin/user/5/ban", dto.BanInput{Minutes: 60})
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, handler.CodeAdminActionCompleted, resp.Header.Get(handler.HeaderSuccessCode))
	})

	t.Run("invalid account id", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})

		req := jsonRequest(t, http.MethodPost, "/api/v1/admin/user/abc/ban", dto.BanInput{Minutes: 60})
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})

		req := jsonRequest(t, http.MethodPost, "/api/v1/admin/user/5/ban", dto.BanInput{Minutes: 0})
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUnbanUserEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})
	f.accounts.EXPECT().UpdateBan(gomock.Any(), int64(5), false, nil).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/user/5/ban", nil)
	req.Header.Set("Authorization", "Bearer admin-token")

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, handler.CodeAdminActionCompleted, resp.Header.Get(handler.HeaderSuccessCode))
}

func TestForceLogoutEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	// SYSADMIN is also admitted by the admin group gate.
	f.expectGatePass("sysadmin-token", adminAccount(), []string{"SYSADMIN"})
	f.tokens.EXPECT().BanAll(gomock.Any(), int64(5)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/user/5/sessions", nil)
	req.Header.Set("Authorization", "Bearer sysadmin-token")

	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, handler.CodeAdminActionCompleted, resp.Header.Get(handler.HeaderSuccessCode))
}

func TestListRolesEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})
		f.accounts.EXPECT().FindByID(gomock.Any(), int64(5)).Return(&domain.Account{
			ID:    5,
			Roles: []domain.Role{domain.RoleUser, domain.RoleModerator},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/user/5/role", nil)
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			ID    int64    `json:"id"`
			Roles []string `json:"roles"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, int64(5), body.ID)
		assert.Equal(t, []string{"USER", "MODERATOR"}, body.Roles)
	})

	t.Run("account missing", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})
		f.accounts.EXPECT().FindByID(gomock.Any(), int64(5)).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/user/5/role", nil)
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGrantRoleEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})
		f.accounts.EXPECT().GrantRole(gomock.Any(), int64(5), domain.RoleModerator).Return(nil)

		req := jsonRequest(t, http.MethodPost, "/api/v1/admin/user/5/role", dto.RoleInput{Role: "MODERATOR"})
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown role", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})

		req := jsonRequest(t, http.MethodPost, "/api/v1/admin/user/5/role", dto.RoleInput{Role: "OVERLORD"})
		req.Header.Set("Authorization", "Bearer admin-token")

		resp, err := f.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestRevokeRoleEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	f.expectGatePass("admin-token", adminAccount(), []string{"ADMIN"})
	f.accounts.EXPECT().RevokeRole(gomock.Any(), int64(5), domain.RoleModerator).Return(nil)

	req := jsonRequest(t, http.MethodDelete, "/api/v1/admin/user/5/role", dto.RoleInput{Role: "MODERATOR"})
	req.Header.Set("Authorization", "Bearer admin-token")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
