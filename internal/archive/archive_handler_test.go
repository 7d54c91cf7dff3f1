package archive

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/internal/gateway/gatewaytest"
	"warehouse-dashboard/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var handlerSecret = []byte("archive-test")

func setupRouter(t *testing.T, gw *gatewaytest.MockCaller) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewArchiveHandler(NewArchiveService(gw, nil, nil), 2)
	h.now = func() time.Time { return fixedNow }

	router := gin.New()
	api := router.Group("/api", security.JWTMiddleware(handlerSecret))
	h.RegisterRoutes(api, func(c *gin.Context) { c.Next() })
	return router
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := security.GenerateJWT(handlerSecret, 3, role, "anna", time.Hour)
	require.NoError(t, err)
	return tok
}

func serve(router *gin.Engine, method, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetArchive(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointInventory, "get_archived_items", mock.Anything).
		Return(gatewaytest.Success(sampleItems())).Once()
	router := setupRouter(t, gw)

	w := serve(router, http.MethodGet, "/api/archive?type=product&range=month&page=1", token(t, "viewer"))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    View `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Summary.TotalArchived)
	assert.Equal(t, []int{1}, ids(body.Data.Page.Items))

	// Second request is served from the loaded collection.
	w = serve(router, http.MethodGet, "/api/archive", token(t, "viewer"))
	assert.Equal(t, http.StatusOK, w.Code)
	gw.AssertExpectations(t)
}

func TestGetArchiveInvalidFilter(t *testing.T) {
	router := setupRouter(t, new(gatewaytest.MockCaller))

	w := serve(router, http.MethodGet, "/api/archive?range=year", token(t, "viewer"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetArchiveBackendDown(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointInventory, "get_archived_items", mock.Anything).
		Return(gatewaytest.Unreachable("connection refused")).Once()
	router := setupRouter(t, gw)

	w := serve(router, http.MethodGet, "/api/archive", token(t, "viewer"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_ERROR")
}

func TestRestoreItemRoute(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointInventory, "get_archived_items", mock.Anything).
		Return(gatewaytest.Success(sampleItems())).Once()
	gw.On("Call", gateway.EndpointInventory, "restore_item", mock.Anything).
		Return(gatewaytest.Success(nil)).Once()
	router := setupRouter(t, gw)

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/archive", token(t, "staff")).Code)

	tests := []struct {
		name           string
		path           string
		role           string
		expectedStatus int
	}{
		{"viewer is forbidden", "/api/archive/1/restore", "viewer", http.StatusForbidden},
		{"invalid id", "/api/archive/abc/restore", "staff", http.StatusBadRequest},
		{"unknown id", "/api/archive/99/restore", "staff", http.StatusNotFound},
		{"restores", "/api/archive/1/restore", "staff", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, tt.path, token(t, tt.role))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	gw.AssertExpectations(t)
}

func TestMarkInactiveRejected(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointInventory, "get_archived_items", mock.Anything).
		Return(gatewaytest.Success(sampleItems())).Once()
	gw.On("Call", gateway.EndpointInventory, "mark_inactive", mock.Anything).
		Return(gatewaytest.Rejected("Already inactive")).Once()
	router := setupRouter(t, gw)

	serve(router, http.MethodGet, "/api/archive", token(t, "staff"))
	w := serve(router, http.MethodPost, "/api/archive/2/inactivate", token(t, "staff"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Already inactive")
}

func TestExportArchive(t *testing.T) {
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointInventory, "get_archived_items", mock.Anything).
		Return(gatewaytest.Success(sampleItems())).Once()
	router := setupRouter(t, gw)

	w := serve(router, http.MethodGet, "/api/archive/export?range=week", token(t, "viewer"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "archive-2024-03-15.xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Aspirin", rows[1][1])
	assert.Equal(t, "Shelf", rows[2][1])
}

func TestExportArchiveBuildFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gw := new(gatewaytest.MockCaller)
	gw.On("Call", gateway.EndpointInventory, "get_archived_items", mock.Anything).
		Return(gatewaytest.Success(sampleItems())).Once()

	h := NewArchiveHandler(NewArchiveService(gw, nil, nil), 2)
	h.now = func() time.Time { return fixedNow }
	h.export = func(io.Writer, []ArchivedItem) error { return errors.New("disk full") }

	router := gin.New()
	api := router.Group("/api", security.JWTMiddleware(handlerSecret))
	h.RegisterRoutes(api, func(c *gin.Context) { c.Next() })

	w := serve(router, http.MethodGet, "/api/archive/export", token(t, "viewer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "disk full")
}
