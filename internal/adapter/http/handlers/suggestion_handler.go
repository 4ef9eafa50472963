package handlers

import (
	"log"
	"net/http"

	request "os_escolpi/internal/adapter/http/dto/request"
	response "os_escolpi/internal/adapter/http/dto/response"
	"os_escolpi/internal/usecase/interfaces"
	"os_escolpi/pkg"

	"github.com/gin-gonic/gin"
)

// suggestionUnavailableNotice is the non-fatal notice clients show when the
// AI service fails; suggestions never block anything.
const suggestionUnavailableNotice = "Não foi possível gerar sugestão no momento."

var errInvalidSuggestionPayload = pkg.NewDomainErrorSimple("INVALID_SUGGESTION_INPUT", "Invalid suggestion payload", http.StatusBadRequest)

type SuggestionHandler struct {
	gateway interfaces.ISuggestionGateway
}

func NewSuggestionHandler(gateway interfaces.ISuggestionGateway) *SuggestionHandler {
	return &SuggestionHandler{gateway: gateway}
}

// SuggestDLLName godoc
// @Summary  Suggest a DLL name for a client
// @Tags     suggestions
// @Accept   json
// @Produce  json
// @Param    input body request.SuggestDLLNameRequest true "Client name"
// @Success  200 {object} response.SuggestDLLNameResponse
// @Router   /suggestions/dll-name [post]
func (h *SuggestionHandler) SuggestDLLName(c *gin.Context) {
	var payload request.SuggestDLLNameRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSuggestionPayload.HTTPStatus, errInvalidSuggestionPayload.ToHTTPError())
		return
	}

	if h.gateway == nil {
		c.JSON(http.StatusOK, response.SuggestDLLNameResponse{Notice: suggestionUnavailableNotice})
		return
	}

	name, err := h.gateway.SuggestDLLName(c.Request.Context(), payload.ClientName)
	if err != nil {
		log.Printf("[suggestion][handler] dll suggestion failed err=%v", err)
		c.JSON(http.StatusOK, response.SuggestDLLNameResponse{Notice: suggestionUnavailableNotice})
		return
	}

	c.JSON(http.StatusOK, response.SuggestDLLNameResponse{SuggestedDLLName: name})
}

// SuggestClientName godoc
// @Summary  Suggest client names from a partial name
// @Tags     suggestions
// @Accept   json
// @Produce  json
// @Param    input body request.SuggestClientNameRequest true "Partial name plus existing names"
// @Success  200 {object} response.SuggestClientNameResponse
// @Router   /suggestions/client-name [post]
func (h *SuggestionHandler) SuggestClientName(c *gin.Context) {
	var payload request.SuggestClientNameRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidSuggestionPayload.HTTPStatus, errInvalidSuggestionPayload.ToHTTPError())
		return
	}

	if h.gateway == nil {
		c.JSON(http.StatusOK, response.SuggestClientNameResponse{Suggestions: []string{}, Notice: suggestionUnavailableNotice})
		return
	}

	suggestions, err := h.gateway.SuggestClientNames(c.Request.Context(), payload.PartialClientName, payload.ExistingClientNames)
	if err != nil {
		log.Printf("[suggestion][handler] client name suggestion failed err=%v", err)
		c.JSON(http.StatusOK, response.SuggestClientNameResponse{Suggestions: []string{}, Notice: suggestionUnavailableNotice})
		return
	}

	c.JSON(http.StatusOK, response.SuggestClientNameResponse{Suggestions: suggestions})
}
