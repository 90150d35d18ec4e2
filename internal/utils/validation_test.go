package utils

import (
	"reflect"
	"testing"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

func TestMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		military models.Military
		want     []string
	}{
		{
			name: "cadastro completo",
			military: models.Military{
				FullName: "Maria Silva",
				Rank:     "Sargento",
				Unit:     "1ª Companhia",
			},
			want: nil,
		},
		{
			name:     "tudo ausente",
			military: models.Military{},
			want:     []string{"full_name", "rank", "unit"},
		},
		{
			name: "espaços não contam como preenchido",
			military: models.Military{
				FullName: "   ",
				Rank:     "Cabo",
				Unit:     "2ª Companhia",
			},
			want: []string{"full_name"},
		},
		{
			name: "unidade fora da lista",
			military: models.Military{
				FullName: "João Pereira",
				Rank:     "Cabo",
				Unit:     "Companhia Fantasma",
			},
			want: []string{"unit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MissingRequiredFields(&tt.military)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("esperava %v, veio %v", tt.want, got)
			}
		})
	}
}

func TestFirstMissingCredentialFieldOrder(t *testing.T) {
	// Com mais de um campo ausente, a cobrança segue a ordem fixa:
	// nome, depois posto, depois unidade.
	military := models.Military{}
	if got := FirstMissingCredentialField(&military); got != "full_name" {
		t.Fatalf("esperava full_name, veio %q", got)
	}

	military.FullName = "Maria Silva"
	if got := FirstMissingCredentialField(&military); got != "rank" {
		t.Fatalf("esperava rank, veio %q", got)
	}

	military.Rank = "Sargento"
	if got := FirstMissingCredentialField(&military); got != "unit" {
		t.Fatalf("esperava unit, veio %q", got)
	}

	military.Unit = "1ª Companhia"
	if got := FirstMissingCredentialField(&military); got != "" {
		t.Fatalf("cadastro completo deveria liberar a emissão, veio %q", got)
	}
}

func TestFirstMissingCredentialFieldRejectsUnknownUnit(t *testing.T) {
	// Registro gravado direto no banco pode carregar unidade fora da
	// lista; a emissão bloqueia do mesmo jeito que o cadastro.
	military := models.Military{
		FullName: "Carlos Andrade",
		Rank:     "Tenente",
		Unit:     "Companhia Fantasma",
	}
	if got := FirstMissingCredentialField(&military); got != "unit" {
		t.Fatalf("unidade desconhecida deveria bloquear a emissão, veio %q", got)
	}
}
