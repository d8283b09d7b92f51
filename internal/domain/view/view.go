// Package view nomeia as telas do painel. O mesmo vocabulário é usado pelo
// resultado das mutações (próxima tela sugerida) e pelos links de
// compartilhamento (tela semeada na entrada de convidado).
package view

// Nomes das telas.
const (
	Home                 = "home"
	GeneralDashboard     = "generalDashboard"
	StretchDashboard     = "dashboard"
	History              = "history"
	PalletsDashboard     = "palletsDashboard"
	PalletHistory        = "palletHistory"
	OcorrenciasDashboard = "ocorrenciasDashboard"
	OcorrenciaHistory    = "ocorrenciaHistory"
)

// guestVisible telas permitidas numa sessão de convidado (somente leitura).
var guestVisible = map[string]bool{
	Home:                 true,
	GeneralDashboard:     true,
	StretchDashboard:     true,
	History:              true,
	PalletsDashboard:     true,
	PalletHistory:        true,
	OcorrenciasDashboard: true,
	OcorrenciaHistory:    true,
}

// GuestVisible informa se a tela pode ser exibida numa sessão de convidado.
// Nomes desconhecidos não são visíveis.
func GuestVisible(name string) bool {
	return guestVisible[name]
}
