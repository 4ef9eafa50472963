package response

import (
	"time"

	"os_escolpi/internal/domain/entities"
	"os_escolpi/internal/realtime"
)

type IfoodCredentialsResponse struct {
	Email string `json:"email"`
	// The portal password is never echoed back to clients.
}

type DigitalCertificateResponse struct {
	FileName string `json:"file_name"`
}

type ServiceOrderResponse struct {
	ID                 string                      `json:"id"`
	ClientName         string                      `json:"client_name"`
	CpfCnpj            string                      `json:"cpf_cnpj"`
	Contact            string                      `json:"contact"`
	City               string                      `json:"city"`
	State              string                      `json:"state"`
	PedidoAgora        string                      `json:"pedido_agora"`
	Mobile             string                      `json:"mobile"`
	IfoodIntegration   string                      `json:"ifood_integration"`
	IfoodCredentials   *IfoodCredentialsResponse   `json:"ifood_credentials,omitempty"`
	DLL                string                      `json:"dll"`
	DigitalCertificate *DigitalCertificateResponse `json:"digital_certificate,omitempty"`
	RemoteAccessPhoto  string                      `json:"remote_access_photo,omitempty"`
	RemoteAccessCode   string                      `json:"remote_access_code,omitempty"`
	CreatedBy          string                      `json:"created_by,omitempty"`
	Status             string                      `json:"status"`
	CreatedAt          time.Time                   `json:"created_at"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	resp := ServiceOrderResponse{
		ID:                o.ID,
		ClientName:        o.ClientName,
		CpfCnpj:           o.CpfCnpj,
		Contact:           o.Contact,
		City:              o.City,
		State:             o.State,
		PedidoAgora:       string(o.PedidoAgora),
		Mobile:            string(o.Mobile),
		IfoodIntegration:  string(o.IfoodIntegration),
		DLL:               o.DLL,
		RemoteAccessPhoto: o.RemoteAccessPhoto,
		RemoteAccessCode:  o.RemoteAccessCode,
		CreatedBy:         o.CreatedBy,
		Status:            string(o.Status),
		CreatedAt:         o.CreatedAt,
	}
	if o.IfoodCredentials != nil {
		resp.IfoodCredentials = &IfoodCredentialsResponse{Email: o.IfoodCredentials.Email}
	}
	if o.DigitalCertificate != nil {
		resp.DigitalCertificate = &DigitalCertificateResponse{FileName: o.DigitalCertificate.FileName}
	}
	return resp
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromServiceOrder(o))
	}
	return out
}

// SnapshotResponse is one SSE "snapshot" event: the full current list, the
// loading flag and a transient error message, mirroring the live-query
// triple clients consume.
type SnapshotResponse struct {
	Orders  []ServiceOrderResponse `json:"orders"`
	Loading bool                   `json:"loading"`
	Error   string                 `json:"error,omitempty"`
}

func FromSnapshot(snap realtime.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Orders:  FromServiceOrders(snap.Orders),
		Loading: snap.Loading,
	}
	if snap.Err != nil {
		resp.Error = snap.Err.Error()
	}
	return resp
}

type SuggestDLLNameResponse struct {
	SuggestedDLLName string `json:"suggested_dll_name,omitempty"`
	Notice           string `json:"notice,omitempty"`
}

type SuggestClientNameResponse struct {
	Suggestions []string `json:"suggestions"`
	Notice      string   `json:"notice,omitempty"`
}
