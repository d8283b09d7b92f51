package entity

import "github.com/shopspring/decimal"

// Tipos de operação de movimentação de filme stretch.
const (
	OperationEntrada   = "ENTRADA"
	OperationSaida     = "SAÍDA"
	OperationAjuste    = "AJUSTE"
	OperationDevolucao = "DEVOLUÇÃO"
)

// OperationTypes lista fechada das operações de filme stretch.
var OperationTypes = []string{OperationEntrada, OperationSaida, OperationAjuste, OperationDevolucao}

// Transaction é uma movimentação de filme stretch.
//
// Input/Output são kg; exatamente um deles é semanticamente ativo conforme a
// operação (ENTRADA/AJUSTE usam Input, SAÍDA/DEVOLUÇÃO usam Output). Em AJUSTE
// o Input é assinado: positivo aumenta o estoque, negativo reduz.
//
// UnitKg e Balance são derivados: o motor de razão (pacote ledger) os recalcula
// integralmente a cada mutação; os valores gravados servem apenas à carga inicial.
type Transaction struct {
	ID           string          `json:"id"`
	Date         string          `json:"date"` // YYYY-MM-DD, sem componente de hora
	Output       decimal.Decimal `json:"output"`
	Input        decimal.Decimal `json:"input"`
	Invoice      string          `json:"invoice"`
	Value        decimal.Decimal `json:"value"`
	UnitKg       decimal.Decimal `json:"unitKg"`
	Operation    string          `json:"operation"`
	Balance      decimal.Decimal `json:"balance"`
	Observations string          `json:"observations"`
	Conferente   string          `json:"conferente"`
}

// ValidOperation informa se op pertence ao conjunto fechado de operações.
func ValidOperation(op string) bool {
	for _, o := range OperationTypes {
		if o == op {
			return true
		}
	}
	return false
}
