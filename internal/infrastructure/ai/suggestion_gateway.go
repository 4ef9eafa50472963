package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"os_escolpi/internal/usecase/interfaces"
)

var ErrMissingSuggestionAPIURL = errors.New("missing SUGGESTION_API_URL")

const maxClientNameSuggestions = 5

// SuggestionGateway calls the external AI suggestion service. Suggestions
// are advisory only: callers treat any error here as a non-fatal notice.
//
// Env vars:
//   - SUGGESTION_API_URL / SUGGESTION_API_KEY
//   - SUGGESTION_GATEWAY_MOCK / AI_MOCK: deterministic local suggestions
type SuggestionGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	mockMode   bool
}

var _ interfaces.ISuggestionGateway = (*SuggestionGateway)(nil)

func NewSuggestionGateway(baseURL, apiKey string) (*SuggestionGateway, error) {
	if isSuggestionGatewayMockEnabled() {
		log.Printf("[ai][gateway] mock mode enabled")
		return &SuggestionGateway{mockMode: true}, nil
	}

	if baseURL == "" {
		log.Printf("[ai][gateway] missing SUGGESTION_API_URL")
		return nil, ErrMissingSuggestionAPIURL
	}

	log.Printf("[ai][gateway] suggestion client initialized url=%s", baseURL)
	return &SuggestionGateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (g *SuggestionGateway) SuggestDLLName(ctx context.Context, clientName string) (string, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return "", errors.New("client name is empty")
	}

	if g.mockMode {
		name := mockDLLName(clientName)
		log.Printf("[ai][gateway] mock dll suggestion client=%q dll=%s", clientName, name)
		return name, nil
	}

	var out struct {
		SuggestedDLLName string `json:"suggested_dll_name"`
	}
	err := g.post(ctx, "/v1/suggest/dll-name", map[string]any{"client_name": clientName}, &out)
	if err != nil {
		return "", err
	}
	if out.SuggestedDLLName == "" {
		return "", errors.New("suggestion service returned no dll name")
	}
	return out.SuggestedDLLName, nil
}

func (g *SuggestionGateway) SuggestClientNames(ctx context.Context, partialName string, existingNames []string) ([]string, error) {
	partialName = strings.TrimSpace(partialName)
	if partialName == "" {
		return nil, errors.New("partial name is empty")
	}

	if g.mockMode {
		return mockClientNames(partialName, existingNames), nil
	}

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	err := g.post(ctx, "/v1/suggest/client-name", map[string]any{
		"partial_client_name":   partialName,
		"existing_client_names": existingNames,
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Suggestions) > maxClientNameSuggestions {
		out.Suggestions = out.Suggestions[:maxClientNameSuggestions]
	}
	return out.Suggestions, nil
}

func (g *SuggestionGateway) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[ai][gateway] request failed path=%s err=%v", path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[ai][gateway] unexpected status path=%s status=%d body=%s", path, resp.StatusCode, raw)
		return fmt.Errorf("suggestion service returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// mockDLLName derives a deterministic dll name: "Pastelaria do Zé" ->
// "PastelariaDoZe.dll".
func mockDLLName(clientName string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range clientName {
		switch {
		case r == ' ' || r == '-' || r == '_':
			upperNext = true
		case r >= 'a' && r <= 'z':
			if upperNext {
				r = r - 'a' + 'A'
			}
			b.WriteRune(r)
			upperNext = false
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			upperNext = false
		default:
			if folded, ok := foldAccent(r); ok {
				if upperNext {
					folded = folded - 'a' + 'A'
				}
				b.WriteRune(folded)
				upperNext = false
			}
		}
	}
	if b.Len() == 0 {
		return "Cliente.dll"
	}
	return b.String() + ".dll"
}

func foldAccent(r rune) (rune, bool) {
	switch r {
	case 'á', 'à', 'â', 'ã', 'Á', 'À', 'Â', 'Ã':
		return 'a', true
	case 'é', 'ê', 'É', 'Ê':
		return 'e', true
	case 'í', 'Í':
		return 'i', true
	case 'ó', 'ô', 'õ', 'Ó', 'Ô', 'Õ':
		return 'o', true
	case 'ú', 'Ú':
		return 'u', true
	case 'ç', 'Ç':
		return 'c', true
	}
	return r, false
}

// mockClientNames proposes variations on the partial name, skipping names
// already in use, capped at five.
func mockClientNames(partialName string, existingNames []string) []string {
	taken := make(map[string]struct{}, len(existingNames))
	for _, n := range existingNames {
		taken[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}

	suffixes := []string{"", " Ltda", " ME", " Comércio", " Serviços", " & Cia"}
	suggestions := make([]string, 0, maxClientNameSuggestions)
	for _, suffix := range suffixes {
		candidate := partialName + suffix
		if _, ok := taken[strings.ToLower(candidate)]; ok {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) == maxClientNameSuggestions {
			break
		}
	}
	return suggestions
}

func isSuggestionGatewayMockEnabled() bool {
	for _, key := range []string{"SUGGESTION_GATEWAY_MOCK", "AI_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
