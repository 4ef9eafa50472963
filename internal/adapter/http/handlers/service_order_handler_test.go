package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"os_escolpi/internal/adapter/http/handlers/mocks"
	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/domain/storeerr"
	"os_escolpi/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestServiceOrderHandler_CreateServiceOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/service-orders", h.CreateServiceOrder)

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation errors returned per field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/service-orders", h.CreateServiceOrder)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.ServiceOrder{}, usecase.ValidationErrors{
			"client_name": "O nome do cliente é obrigatório.",
		})

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString(`{"client_name":""}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body struct {
			Fields map[string]string `json:"fields"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Fields["client_name"] == "" {
			t.Fatalf("expected per-field message, got %s", w.Body.String())
		}
	})

	t.Run("permission denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/service-orders", h.CreateServiceOrder)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.ServiceOrder{},
			&storeerr.PermissionError{Operation: storeerr.OpCreate, Path: "service_orders/public"})

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString(`{"client_name":"Padaria Central"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/service-orders", h.CreateServiceOrder)

		created := entities.ServiceOrder{
			ID:         "os-1",
			ClientName: "Padaria Central",
			Status:     entities.ServiceOrderStatusPendente,
			CreatedAt:  time.Now().UTC(),
		}
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, form entities.ServiceOrderForm) (entities.ServiceOrder, error) {
				if form.ClientName != "Padaria Central" {
					t.Fatalf("expected client name in form, got %q", form.ClientName)
				}
				return created, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/service-orders", bytes.NewBufferString(`{"client_name":"Padaria Central"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["id"] != "os-1" {
			t.Fatalf("expected id os-1, got %v", body["id"])
		}
	})
}

func TestServiceOrderHandler_UpdateServiceOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.PUT("/v1/service-orders/:id", h.UpdateServiceOrder)

		uc.EXPECT().GetByID(gomock.Any(), "os-gone").Return(entities.ServiceOrder{}, usecase.ErrServiceOrderNotFound)

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/os-gone", bytes.NewBufferString(`{"client_name":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.PUT("/v1/service-orders/:id", h.UpdateServiceOrder)

		existing := entities.ServiceOrder{ID: "os-1", ClientName: "Padaria Central", Status: entities.ServiceOrderStatusEmProcesso}
		uc.EXPECT().GetByID(gomock.Any(), "os-1").Return(existing, nil)
		uc.EXPECT().Update(gomock.Any(), "os-1", gomock.Any()).Return(
			entities.ServiceOrder{ID: "os-1", ClientName: "Padaria Central Ltda", Status: entities.ServiceOrderStatusEmProcesso}, nil)

		req := httptest.NewRequest(http.MethodPut, "/v1/service-orders/os-1", bytes.NewBufferString(`{"client_name":"Padaria Central Ltda"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_UpdateServiceOrderStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/service-orders/:id/status", h.UpdateServiceOrderStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/status", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid status value", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/service-orders/:id/status", h.UpdateServiceOrderStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), "os-1", entities.ServiceOrderStatus("Arquivado")).Return(usecase.ErrInvalidStatus)

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/status", bytes.NewBufferString(`{"status":"Arquivado"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/service-orders/:id/status", h.UpdateServiceOrderStatus)

		uc.EXPECT().UpdateStatus(gomock.Any(), "os-1", entities.ServiceOrderStatusTrello).Return(nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/service-orders/os-1/status", bytes.NewBufferString(`{"status":"Trello"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_DeleteServiceOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.DELETE("/v1/service-orders/:id", h.DeleteServiceOrder)

		uc.EXPECT().Remove(gomock.Any(), "os-1").Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/service-orders/os-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
	})

	t.Run("internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.DELETE("/v1/service-orders/:id", h.DeleteServiceOrder)

		uc.EXPECT().Remove(gomock.Any(), "os-1").Return(errors.New("dynamodb exploded"))

		req := httptest.NewRequest(http.MethodDelete, "/v1/service-orders/os-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestServiceOrderHandler_ListServiceOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success newest first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.GET("/v1/service-orders", h.ListServiceOrders)

		now := time.Now().UTC()
		uc.EXPECT().List(gomock.Any()).Return([]entities.ServiceOrder{
			{ID: "os-2", ClientName: "Mercadinho", CreatedAt: now},
			{ID: "os-1", ClientName: "Padaria Central", CreatedAt: now.Add(-time.Hour)},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/service-orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if len(body) != 2 || body[0]["id"] != "os-2" {
			t.Fatalf("expected newest-first list, got %s", w.Body.String())
		}
	})

	t.Run("empty list serializes as array", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceOrderUseCase(ctrl)
		h := NewServiceOrderHandler(uc, nil)

		r := gin.New()
		r.GET("/v1/service-orders", h.ListServiceOrders)

		uc.EXPECT().List(gomock.Any()).Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/service-orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %s", w.Body.String())
		}
	})
}
