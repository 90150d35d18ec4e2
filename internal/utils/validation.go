package utils

import (
	"strings"

	"github.com/LACC-DEVLINK/checkin-exercito-web/internal/models"
)

// Regras de preenchimento compartilhadas entre o cadastro e a emissão de
// credencial. As três telas antigas do painel validavam cada uma do seu
// jeito; aqui a regra existe uma vez só.

type fieldRule struct {
	name  string
	check func(m *models.Military) bool
}

// Ordem fixa de cobrança: é a ordem em que a emissão aponta o primeiro
// campo faltante.
var credentialFieldRules = []fieldRule{
	{"full_name", func(m *models.Military) bool { return strings.TrimSpace(m.FullName) != "" }},
	{"rank", func(m *models.Military) bool { return strings.TrimSpace(m.Rank) != "" }},
	{"unit", func(m *models.Military) bool { return strings.TrimSpace(m.Unit) != "" }},
}

// MissingRequiredFields devolve todos os campos obrigatórios ausentes, não
// só o primeiro. Inclui a checagem de unidade válida quando preenchida.
func MissingRequiredFields(m *models.Military) []string {
	var missing []string
	for _, rule := range credentialFieldRules {
		if !rule.check(m) {
			missing = append(missing, rule.name)
		}
	}
	if strings.TrimSpace(m.Unit) != "" && !models.ValidUnit(m.Unit) {
		missing = append(missing, "unit")
	}
	return missing
}

// FirstMissingCredentialField devolve o primeiro campo que bloqueia a
// emissão, ou "" quando todos estão preenchidos. Aplica a mesma checagem
// de unidade válida do cadastro: registro gravado fora do fluxo normal
// não passa pela emissão com unidade desconhecida.
func FirstMissingCredentialField(m *models.Military) string {
	for _, rule := range credentialFieldRules {
		if !rule.check(m) {
			return rule.name
		}
	}
	if !models.ValidUnit(m.Unit) {
		return "unit"
	}
	return ""
}
