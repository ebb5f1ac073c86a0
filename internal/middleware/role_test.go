package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperr "raone/internal/errors"
	"raone/internal/model"
)

func runRoleGate(t *testing.T, user *model.User, roles ...model.Role) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if user != nil {
		c.Set(ContextUserKey, user)
	}

	return RequireRole(roles...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		user       *model.User
		allowed    []model.Role
		wantStatus int
	}{
		{
			name:    "allowed role passes",
			user:    &model.User{ID: 1, Role: model.RoleAdmin},
			allowed: []model.Role{model.RoleAdmin},
		},
		{
			name:    "any of several roles passes",
			user:    &model.User{ID: 1, Role: model.RoleVendor},
			allowed: []model.Role{model.RoleVendor, model.RoleAdmin},
		},
		{
			name:       "wrong role is forbidden",
			user:       &model.User{ID: 1, Role: model.RoleCustomer},
			allowed:    []model.Role{model.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no identity is unauthorized",
			user:       nil,
			allowed:    []model.Role{model.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runRoleGate(t, tt.user, tt.allowed...)
			if tt.wantStatus == 0 {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperr.AsAPIError(err).Status)
			}
		})
	}
}
