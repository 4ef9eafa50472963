package request

import (
	"testing"

	"os_escolpi/internal/domain/entities"
)

func TestServiceOrderRequest_ToForm(t *testing.T) {
	t.Run("trims and defaults flags", func(t *testing.T) {
		r := ServiceOrderRequest{
			ClientName: "  Padaria Central  ",
			IfoodEmail: " ze@example.com ",
		}

		f := r.ToForm()
		if f.ClientName != "Padaria Central" {
			t.Fatalf("expected trimmed client name, got %q", f.ClientName)
		}
		if f.IfoodEmail != "ze@example.com" {
			t.Fatalf("expected trimmed email, got %q", f.IfoodEmail)
		}
		if f.PedidoAgora != entities.Nao || f.Mobile != entities.Nao || f.IfoodIntegration != entities.Nao {
			t.Fatalf("expected Nao defaults, got %q/%q/%q", f.PedidoAgora, f.Mobile, f.IfoodIntegration)
		}
	})

	t.Run("certificate requires a file name", func(t *testing.T) {
		r := ServiceOrderRequest{
			ClientName:         "Padaria Central",
			DigitalCertificate: &DigitalCertificateRequest{FileContent: "YmFzZTY0"},
		}
		if f := r.ToForm(); f.DigitalCertificate != nil {
			t.Fatalf("expected no certificate without a file name, got %+v", f.DigitalCertificate)
		}

		r.DigitalCertificate.FileName = "certificado.pfx"
		f := r.ToForm()
		if f.DigitalCertificate == nil || f.DigitalCertificate.FileName != "certificado.pfx" {
			t.Fatalf("expected certificate carried over, got %+v", f.DigitalCertificate)
		}
	})

	t.Run("sim flags pass through", func(t *testing.T) {
		r := ServiceOrderRequest{
			ClientName:       "Padaria Central",
			PedidoAgora:      "Sim",
			IfoodIntegration: "Sim",
			IfoodEmail:       "ze@example.com",
			IfoodPassword:    "s3cr3t",
		}

		f := r.ToForm()
		if f.PedidoAgora != entities.Sim || f.IfoodIntegration != entities.Sim {
			t.Fatalf("expected Sim flags, got %q/%q", f.PedidoAgora, f.IfoodIntegration)
		}

		creds := f.Credentials()
		if creds == nil || creds.Email != "ze@example.com" || creds.Password != "s3cr3t" {
			t.Fatalf("expected credentials materialized, got %+v", creds)
		}
	})
}
