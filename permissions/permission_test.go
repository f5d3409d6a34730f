package permissions_test

import (
	"hotelier/permissions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{
			name:     "public booking create",
			path:     "/v1/bookings/addbooking",
			method:   http.MethodPost,
			wantSkip: true,
		},
		{
			name:     "public room list without trailing slash",
			path:     "/v1/rooms",
			method:   http.MethodGet,
			wantSkip: true,
		},
		{
			name:      "booking delete is admin only",
			path:      "/v1/bookings/{bookingNumber}",
			method:    http.MethodDelete,
			wantRoles: []string{"superadmin", "admin"},
		},
		{
			name:      "staff can list bookings",
			path:      "/v1/bookings/",
			method:    http.MethodGet,
			wantRoles: []string{"superadmin", "admin", "staff"},
		},
		{
			name:      "staff can read the crm directory",
			path:      "/v1/crm/{guestId}",
			method:    http.MethodGet,
			wantRoles: []string{"superadmin", "admin", "staff"},
		},
		{
			name:      "shift changes are admin only",
			path:      "/v1/settings/employeeManagement/shifts/{id}",
			method:    http.MethodPut,
			wantRoles: []string{"superadmin", "admin"},
		},
		{
			name:      "expense categories are admin managed",
			path:      "/v1/settings/finance/expenses",
			method:    http.MethodPost,
			wantRoles: []string{"superadmin", "admin"},
		},
		{
			name:   "unknown route",
			path:   "/v1/unknown",
			method: http.MethodGet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.ElementsMatch(t, tt.wantRoles, permission.Permissions)
		})
	}
}
