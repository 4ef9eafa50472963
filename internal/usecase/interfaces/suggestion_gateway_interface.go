package interfaces

import "context"

//go:generate mockgen -source=suggestion_gateway_interface.go -destination=mocks/mock_suggestion_gateway.go -package=mocks

// ISuggestionGateway abstracts the external AI text-suggestion service.
//
// Suggestions are purely advisory: callers must never let a gateway failure
// block or gate a submit.
type ISuggestionGateway interface {
	SuggestDLLName(ctx context.Context, clientName string) (string, error)
	SuggestClientNames(ctx context.Context, partialName string, existingNames []string) ([]string, error)
}
