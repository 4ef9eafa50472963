package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	mock_interfaces "os_escolpi/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestSuggestionHandler_SuggestDLLName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing client name", func(t *testing.T) {
		h := NewSuggestionHandler(nil)

		r := gin.New()
		r.POST("/v1/suggestions/dll-name", h.SuggestDLLName)

		req := httptest.NewRequest(http.MethodPost, "/v1/suggestions/dll-name", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["code"] != "INVALID_SUGGESTION_INPUT" {
			t.Fatalf("expected suggestion-scoped error code, got %s", w.Body.String())
		}
	})

	t.Run("no gateway configured returns notice", func(t *testing.T) {
		h := NewSuggestionHandler(nil)

		r := gin.New()
		r.POST("/v1/suggestions/dll-name", h.SuggestDLLName)

		req := httptest.NewRequest(http.MethodPost, "/v1/suggestions/dll-name", bytes.NewBufferString(`{"client_name":"Pastelaria do Zé"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("suggestion failures must not surface as errors, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["notice"] == "" {
			t.Fatalf("expected a notice, got %s", w.Body.String())
		}
	})

	t.Run("gateway failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISuggestionGateway(ctrl)
		h := NewSuggestionHandler(gateway)

		r := gin.New()
		r.POST("/v1/suggestions/dll-name", h.SuggestDLLName)

		gateway.EXPECT().SuggestDLLName(gomock.Any(), "Pastelaria do Zé").Return("", errors.New("upstream down"))

		req := httptest.NewRequest(http.MethodPost, "/v1/suggestions/dll-name", bytes.NewBufferString(`{"client_name":"Pastelaria do Zé"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 with notice, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISuggestionGateway(ctrl)
		h := NewSuggestionHandler(gateway)

		r := gin.New()
		r.POST("/v1/suggestions/dll-name", h.SuggestDLLName)

		gateway.EXPECT().SuggestDLLName(gomock.Any(), "Pastelaria do Zé").Return("PastelariaDoZe.dll", nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/suggestions/dll-name", bytes.NewBufferString(`{"client_name":"Pastelaria do Zé"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["suggested_dll_name"] != "PastelariaDoZe.dll" {
			t.Fatalf("expected suggestion, got %s", w.Body.String())
		}
	})
}

func TestSuggestionHandler_SuggestClientName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISuggestionGateway(ctrl)
		h := NewSuggestionHandler(gateway)

		r := gin.New()
		r.POST("/v1/suggestions/client-name", h.SuggestClientName)

		gateway.EXPECT().SuggestClientNames(gomock.Any(), "Pada", []string{"Padaria Central"}).
			Return([]string{"Padaria Central Ltda", "Padaria Central ME"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/suggestions/client-name",
			bytes.NewBufferString(`{"partial_client_name":"Pada","existing_client_names":["Padaria Central"]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if len(body.Suggestions) != 2 {
			t.Fatalf("expected 2 suggestions, got %s", w.Body.String())
		}
	})

	t.Run("gateway failure returns empty list with notice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gateway := mock_interfaces.NewMockISuggestionGateway(ctrl)
		h := NewSuggestionHandler(gateway)

		r := gin.New()
		r.POST("/v1/suggestions/client-name", h.SuggestClientName)

		gateway.EXPECT().SuggestClientNames(gomock.Any(), "Pada", gomock.Any()).Return(nil, errors.New("upstream down"))

		req := httptest.NewRequest(http.MethodPost, "/v1/suggestions/client-name",
			bytes.NewBufferString(`{"partial_client_name":"Pada"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Suggestions []string `json:"suggestions"`
			Notice      string   `json:"notice"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body.Notice == "" || len(body.Suggestions) != 0 {
			t.Fatalf("expected notice with empty suggestions, got %s", w.Body.String())
		}
	})
}
