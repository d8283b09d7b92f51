package entity

import "github.com/shopspring/decimal"

// Tipos de operação de movimentação de paletes.
const (
	PalletOperationEntrada   = "ENTRADA"
	PalletOperationSaida     = "SAÍDA"
	PalletOperationDevolucao = "DEVOLUÇÃO"
	PalletOperationAjuste    = "AJUSTE"
)

// Perfis de cliente de uma movimentação de paletes.
const (
	PalletProfileAtacado   = "ATACADO"
	PalletProfileVarejo    = "VAREJO"
	PalletProfileCross     = "CROSS"
	PalletProfileDevolucao = "DEVOLUÇÃO"
)

// PalletOperationTypes lista fechada das operações de paletes.
var PalletOperationTypes = []string{
	PalletOperationEntrada, PalletOperationSaida, PalletOperationDevolucao, PalletOperationAjuste,
}

// PalletProfiles lista fechada dos perfis.
var PalletProfiles = []string{
	PalletProfileAtacado, PalletProfileVarejo, PalletProfileCross, PalletProfileDevolucao,
}

// PalletTransaction é uma movimentação de paletes (PBR, CHEP e one-way em
// contadores separados).
//
// Month e Duration são derivados uma única vez na criação (rótulo de mês pt-BR
// e diferença EndTime-StartTime em "H:MM") e gravados; a edição de um registro
// não os regenera. Não há saldo corrente por registro: os saldos agregados são
// sempre recomputados sob demanda sobre a coleção inteira (pacote pallet).
type PalletTransaction struct {
	ID           string          `json:"id"`
	Month        string          `json:"month"`
	Date         string          `json:"date"`
	Invoice      string          `json:"invoice"`
	PbrInput     decimal.Decimal `json:"pbrInput"`
	OneWay       decimal.Decimal `json:"oneWay"`
	PbrBroken    decimal.Decimal `json:"pbrBroken"`
	ChepInput    decimal.Decimal `json:"chepInput"`
	ChepBroken   decimal.Decimal `json:"chepBroken"`
	Origin       string          `json:"origin"`
	Plate        string          `json:"plate"`
	Driver       string          `json:"driver"`
	Client       string          `json:"client"`
	Profile      string          `json:"profile"`
	CTE          string          `json:"cte"`
	Operation    string          `json:"operation"`
	Checker      string          `json:"checker"`
	StartTime    string          `json:"startTime"` // "HH:mm"
	EndTime      string          `json:"endTime"`   // "HH:mm"
	Duration     string          `json:"duration"`  // "H:mm"
	Output       decimal.Decimal `json:"output"`
	Returned     decimal.Decimal `json:"returned"`
	Bonus        string          `json:"bonus"`
	BonusID      string          `json:"bonusId"`
	Observations string          `json:"observations"`
}

// ValidPalletOperation informa se op pertence ao conjunto fechado de operações.
func ValidPalletOperation(op string) bool {
	for _, o := range PalletOperationTypes {
		if o == op {
			return true
		}
	}
	return false
}

// ValidPalletProfile informa se p pertence ao conjunto fechado de perfis.
func ValidPalletProfile(p string) bool {
	for _, pr := range PalletProfiles {
		if pr == p {
			return true
		}
	}
	return false
}
