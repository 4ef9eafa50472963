package request

import (
	"strings"

	"os_escolpi/internal/domain/entities"
)

type IfoodCredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DigitalCertificateRequest struct {
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content"`
}

// ServiceOrderRequest is the submit payload for both create and edit.
// Field-level validation happens in the usecase so the client gets per-field
// messages instead of a generic bind error.
type ServiceOrderRequest struct {
	ClientName         string                     `json:"client_name"`
	CpfCnpj            string                     `json:"cpf_cnpj"`
	Contact            string                     `json:"contact"`
	City               string                     `json:"city"`
	State              string                     `json:"state"`
	PedidoAgora        string                     `json:"pedido_agora"`
	Mobile             string                     `json:"mobile"`
	IfoodIntegration   string                     `json:"ifood_integration"`
	IfoodEmail         string                     `json:"ifood_email"`
	IfoodPassword      string                     `json:"ifood_password"`
	DLL                string                     `json:"dll"`
	DigitalCertificate *DigitalCertificateRequest `json:"digital_certificate"`
	RemoteAccessPhoto  string                     `json:"remote_access_photo"`
	RemoteAccessCode   string                     `json:"remote_access_code"`
	CreatedBy          string                     `json:"created_by"`
}

func (r ServiceOrderRequest) ToForm() entities.ServiceOrderForm {
	f := entities.ServiceOrderForm{
		ClientName:        strings.TrimSpace(r.ClientName),
		CpfCnpj:           r.CpfCnpj,
		Contact:           r.Contact,
		City:              r.City,
		State:             r.State,
		PedidoAgora:       entities.SimNao(r.PedidoAgora).OrDefault(),
		Mobile:            entities.SimNao(r.Mobile).OrDefault(),
		IfoodIntegration:  entities.SimNao(r.IfoodIntegration).OrDefault(),
		IfoodEmail:        strings.TrimSpace(r.IfoodEmail),
		IfoodPassword:     r.IfoodPassword,
		DLL:               r.DLL,
		RemoteAccessPhoto: r.RemoteAccessPhoto,
		RemoteAccessCode:  r.RemoteAccessCode,
		CreatedBy:         r.CreatedBy,
	}
	if r.DigitalCertificate != nil && r.DigitalCertificate.FileName != "" {
		f.DigitalCertificate = &entities.DigitalCertificate{
			FileName:    r.DigitalCertificate.FileName,
			FileContent: r.DigitalCertificate.FileContent,
		}
	}
	return f
}

// StatusRequest is the narrow status transition payload.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SuggestDLLNameRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

type SuggestClientNameRequest struct {
	PartialClientName   string   `json:"partial_client_name" binding:"required"`
	ExistingClientNames []string `json:"existing_client_names"`
}
