package usecase

import (
	"net/mail"
	"strings"

	"os_escolpi/internal/domain/entities"
)

// ValidationErrors maps field names to user-facing messages. It never leaves
// the edit boundary as anything other than inline per-field feedback.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// ValidateForm checks the submit payload. Returns nil when the form is
// valid; no store call may be made otherwise.
func ValidateForm(f entities.ServiceOrderForm) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(f.ClientName) == "" {
		errs["client_name"] = "O nome do cliente é obrigatório."
	}

	if f.IfoodIntegration == entities.Sim {
		email := strings.TrimSpace(f.IfoodEmail)
		if email == "" {
			errs["ifood_email"] = "Email do iFood é obrigatório para integração."
		} else if _, err := mail.ParseAddress(email); err != nil {
			errs["ifood_email"] = "Email inválido."
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
