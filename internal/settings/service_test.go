package settings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/internal/gateway/gatewaytest"
	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/models"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = models.Actor{ID: 1, Username: "adam", Role: "admin"}

func TestPasswordChangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		change  PasswordChange
		field   string
		wantErr bool
	}{
		{"empty current", PasswordChange{NewPassword: "secret1", ConfirmPassword: "secret1"}, "currentPassword", true},
		{"mismatch", PasswordChange{CurrentPassword: "old", NewPassword: "secret1", ConfirmPassword: "secret2"}, "confirmPassword", true},
		{"too short", PasswordChange{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abc"}, "newPassword", true},
		{"exactly six", PasswordChange{CurrentPassword: "old", NewPassword: "abcdef", ConfirmPassword: "abcdef"}, "", false},
		{"multibyte counts runes", PasswordChange{CurrentPassword: "old", NewPassword: "zażółć", ConfirmPassword: "zażółć"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *custom_error.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field())
		})
	}
}

func TestChangePasswordValidatesBeforeCallingBackend(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	s := NewSettingsService(gw, nil, nil)

	err := s.ChangePassword(context.Background(), admin, PasswordChange{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abc"})

	assert.True(t, custom_error.IsValidation(err))
	gw.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePassword(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointSettings, "change_password", map[string]any{
		"user_id":          1,
		"current_password": "old-pass",
		"new_password":     "new-pass",
	}).Return(gatewaytest.Rejected("Current password is incorrect")).Once()

	s := NewSettingsService(gw, nil, nil)
	err := s.ChangePassword(context.Background(), admin, PasswordChange{CurrentPassword: "old-pass", NewPassword: "new-pass", ConfirmPassword: "new-pass"})

	assert.True(t, custom_error.IsBackendRejection(err))
	assert.Equal(t, "Current password is incorrect", custom_error.UserMessage(err))
	gw.AssertExpectations(t)
}

func TestSaveUpdatesLocalCopyOnlyOnSuccess(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointSettings, "get_settings", map[string]any(nil)).
		Return(gatewaytest.Success(Settings{StoreName: "Main", Currency: "PLN"})).Once()
	gw.On("Call", gateway.EndpointSettings, "save_settings", mock.MatchedBy(func(params map[string]any) bool {
		return params["storeName"] == "Rejected"
	})).Return(gatewaytest.Rejected("Store name taken")).Once()
	gw.On("Call", gateway.EndpointSettings, "save_settings", mock.MatchedBy(func(params map[string]any) bool {
		return params["storeName"] == "Annex" && params["user_id"] == 1
	})).Return(gatewaytest.Success(nil)).Once()

	s := NewSettingsService(gw, nil, nil)

	current, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Main", current.StoreName)

	err = s.Save(context.Background(), admin, Settings{StoreName: "Rejected"})
	assert.True(t, custom_error.IsBackendRejection(err))
	current, _ = s.Get(context.Background())
	assert.Equal(t, "Main", current.StoreName)

	require.NoError(t, s.Save(context.Background(), admin, Settings{StoreName: "Annex", Currency: "EUR"}))
	current, _ = s.Get(context.Background())
	assert.Equal(t, "Annex", current.StoreName)
	gw.AssertExpectations(t)
}

func TestSaveRequiresActor(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	s := NewSettingsService(gw, nil, nil)

	err := s.Save(context.Background(), models.Actor{}, Settings{StoreName: "Main"})

	assert.True(t, custom_error.IsValidation(err))
	gw.AssertNotCalled(t, "Call", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("settings-test")

	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointSettings, "save_settings", mock.Anything).Return(gatewaytest.Success(nil)).Once()
	gw.On("Call", gateway.EndpointSettings, "change_password", mock.Anything).Return(gatewaytest.Success(nil)).Once()

	router := gin.New()
	api := router.Group("/api", security.JWTMiddleware(secret))
	NewSettingsHandler(NewSettingsService(gw, nil, nil)).RegisterRoutes(api, func(c *gin.Context) { c.Next() })

	tests := []struct {
		name           string
		method         string
		path           string
		role           string
		body           string
		expectedStatus int
	}{
		{"staff cannot save", http.MethodPut, "/api/settings", "staff", `{"storeName":"Main"}`, http.StatusForbidden},
		{"missing store name", http.MethodPut, "/api/settings", "admin", `{"currency":"PLN"}`, http.StatusBadRequest},
		{"bad currency", http.MethodPut, "/api/settings", "admin", `{"storeName":"Main","currency":"ZLOTY"}`, http.StatusBadRequest},
		{"saves", http.MethodPut, "/api/settings", "admin", `{"storeName":"Main","currency":"PLN","lowStockThreshold":5}`, http.StatusOK},
		{"password mismatch", http.MethodPost, "/api/settings/password", "viewer", `{"currentPassword":"old","newPassword":"secret1","confirmPassword":"secret2"}`, http.StatusBadRequest},
		{"password changed", http.MethodPost, "/api/settings/password", "viewer", `{"currentPassword":"old","newPassword":"secret1","confirmPassword":"secret1"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := security.GenerateJWT(secret, 1, tt.role, "adam", time.Hour)
			require.NoError(t, err)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer "+tok)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	gw.AssertExpectations(t)
}
