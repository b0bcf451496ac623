package client_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/Bhavesh2823/Empora/internal/client"
	clienterrors "github.com/Bhavesh2823/Empora/internal/client/errors"
	clientMock "github.com/Bhavesh2823/Empora/internal/client/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := clientMock.NewMockService(ctrl)
	handler := client.NewHandler(mockService)
	router := setupRouter()
	router.POST("/clients", handler.Register)

	t.Run("Success", func(t *testing.T) {
		reqBody := client.RegisterClientRequest{
			CompanyName: "Acme Corp",
			Email:       "admin@acme.example",
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Register(gomock.Any(), reqBody).
			Return(client.RegisterClientResponse{ID: 7, DBName: "tenant_store_7"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "tenant_store_7")
	})

	t.Run("Duplicate", func(t *testing.T) {
		reqBody := client.RegisterClientRequest{
			CompanyName: "Acme Corp",
			Email:       "admin@acme.example",
		}
		body, _ := json.Marshal(reqBody)

		mockService.EXPECT().
			Register(gomock.Any(), reqBody).
			Return(client.RegisterClientResponse{}, clienterrors.ErrClientExists)

		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Missing Company Name", func(t *testing.T) {
		body := []byte(`{"email":"admin@acme.example"}`)

		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := clientMock.NewMockService(ctrl)
	handler := client.NewHandler(mockService)
	router := setupRouter()
	router.GET("/clients/:id", handler.GetByID)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().
			GetByID(gomock.Any(), int64(7)).
			Return(&client.ClientResponse{ID: 7, CompanyName: "Acme Corp"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/clients/7", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Acme Corp")
	})

	t.Run("Not Found", func(t *testing.T) {
		mockService.EXPECT().
			GetByID(gomock.Any(), int64(99)).
			Return(nil, clienterrors.ErrClientNotFound)

		req := httptest.NewRequest(http.MethodGet, "/clients/99", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Bad ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/clients/abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Repair(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := clientMock.NewMockService(ctrl)
	handler := client.NewHandler(mockService)
	router := setupRouter()
	router.POST("/clients/:id/repair", handler.Repair)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().
			Repair(gomock.Any(), int64(7)).
			Return(nil)

		req := httptest.NewRequest(http.MethodPost, "/clients/7/repair", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Already Active", func(t *testing.T) {
		mockService.EXPECT().
			Repair(gomock.Any(), int64(7)).
			Return(clienterrors.ErrNotRepairable)

		req := httptest.NewRequest(http.MethodPost, "/clients/7/repair", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
