package entities

import "time"

// ServiceOrderStatus represents the lifecycle of a service order (O.S.).
//
// Domain notes:
//   - Every order starts as "Pendente"; the status is the only field mutated
//     independently of a full edit.
//   - "Trello" means the order was handed off to the external board.

type ServiceOrderStatus string

const (
	ServiceOrderStatusPendente   ServiceOrderStatus = "Pendente"
	ServiceOrderStatusEmProcesso ServiceOrderStatus = "Em Processo"
	ServiceOrderStatusTrello     ServiceOrderStatus = "Trello"
)

func (s ServiceOrderStatus) Valid() bool {
	switch s {
	case ServiceOrderStatusPendente, ServiceOrderStatusEmProcesso, ServiceOrderStatusTrello:
		return true
	}
	return false
}

// SimNao is the Sim/Não flag used across the order form.
type SimNao string

const (
	Sim SimNao = "Sim"
	Nao SimNao = "Não"
)

// OrDefault normalizes an empty flag to "Não".
func (s SimNao) OrDefault() SimNao {
	if s == Sim {
		return Sim
	}
	return Nao
}

// IfoodCredentials holds the client's iFood portal login. Present only when
// the order has iFood integration enabled.
type IfoodCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// DigitalCertificate carries the metadata of an attached .pfx certificate.
// FileContent is base64 and opaque to this service.
type DigitalCertificate struct {
	FileName    string `json:"file_name"`
	FileContent string `json:"file_content,omitempty"`
}

// ServiceOrder is the persisted service order document.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (scope-index): scope, sorted by created_at
//
// CreatedAt is stamped by the store adapter at write-commit time, never by
// the submitting client.
type ServiceOrder struct {
	ID                 string              `json:"id"`
	ClientName         string              `json:"client_name"`
	CpfCnpj            string              `json:"cpf_cnpj"`
	Contact            string              `json:"contact"`
	City               string              `json:"city"`
	State              string              `json:"state"`
	PedidoAgora        SimNao              `json:"pedido_agora"`
	Mobile             SimNao              `json:"mobile"`
	IfoodIntegration   SimNao              `json:"ifood_integration"`
	IfoodCredentials   *IfoodCredentials   `json:"ifood_credentials,omitempty"`
	DLL                string              `json:"dll"`
	DigitalCertificate *DigitalCertificate `json:"digital_certificate,omitempty"`
	RemoteAccessPhoto  string              `json:"remote_access_photo,omitempty"`
	RemoteAccessCode   string              `json:"remote_access_code,omitempty"`
	CreatedBy          string              `json:"created_by,omitempty"`
	Status             ServiceOrderStatus  `json:"status"`
	CreatedAt          time.Time           `json:"created_at"`
}

// Clone returns a deep copy. Editing a clone never mutates the list snapshot
// the order came from.
func (o ServiceOrder) Clone() ServiceOrder {
	out := o
	if o.IfoodCredentials != nil {
		creds := *o.IfoodCredentials
		out.IfoodCredentials = &creds
	}
	if o.DigitalCertificate != nil {
		cert := *o.DigitalCertificate
		out.DigitalCertificate = &cert
	}
	return out
}

// FormValues flattens the order into the submit payload shape, used to
// prefill the form when an edit begins.
func (o ServiceOrder) FormValues() ServiceOrderForm {
	f := ServiceOrderForm{
		ClientName:        o.ClientName,
		CpfCnpj:           o.CpfCnpj,
		Contact:           o.Contact,
		City:              o.City,
		State:             o.State,
		PedidoAgora:       o.PedidoAgora,
		Mobile:            o.Mobile,
		IfoodIntegration:  o.IfoodIntegration,
		DLL:               o.DLL,
		RemoteAccessPhoto: o.RemoteAccessPhoto,
		RemoteAccessCode:  o.RemoteAccessCode,
		CreatedBy:         o.CreatedBy,
	}
	if o.IfoodCredentials != nil {
		f.IfoodEmail = o.IfoodCredentials.Email
		f.IfoodPassword = o.IfoodCredentials.Password
	}
	if o.DigitalCertificate != nil {
		cert := *o.DigitalCertificate
		f.DigitalCertificate = &cert
	}
	return f
}

// ServiceOrderForm is the full-field submit payload. It never carries id,
// status or created_at: ids and timestamps are store-assigned and status only
// changes through the narrow status transition.
type ServiceOrderForm struct {
	ClientName         string
	CpfCnpj            string
	Contact            string
	City               string
	State              string
	PedidoAgora        SimNao
	Mobile             SimNao
	IfoodIntegration   SimNao
	IfoodEmail         string
	IfoodPassword      string
	DLL                string
	DigitalCertificate *DigitalCertificate
	RemoteAccessPhoto  string
	RemoteAccessCode   string
	CreatedBy          string
}

// Credentials materializes the iFood credential block, nil unless the
// integration flag is set.
func (f ServiceOrderForm) Credentials() *IfoodCredentials {
	if f.IfoodIntegration != Sim {
		return nil
	}
	return &IfoodCredentials{Email: f.IfoodEmail, Password: f.IfoodPassword}
}

// ToServiceOrder builds the persisted document from the form. Status and
// store-assigned fields are left for the caller/adapter.
func (f ServiceOrderForm) ToServiceOrder() ServiceOrder {
	return ServiceOrder{
		ClientName:         f.ClientName,
		CpfCnpj:            f.CpfCnpj,
		Contact:            f.Contact,
		City:               f.City,
		State:              f.State,
		PedidoAgora:        f.PedidoAgora.OrDefault(),
		Mobile:             f.Mobile.OrDefault(),
		IfoodIntegration:   f.IfoodIntegration.OrDefault(),
		IfoodCredentials:   f.Credentials(),
		DLL:                f.DLL,
		DigitalCertificate: f.DigitalCertificate,
		RemoteAccessPhoto:  f.RemoteAccessPhoto,
		RemoteAccessCode:   f.RemoteAccessCode,
		CreatedBy:          f.CreatedBy,
	}
}
