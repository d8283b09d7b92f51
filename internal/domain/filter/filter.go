// Package filter define os filtros dos históricos. Presença/ausência de cada
// campo é significativa: vazio ou "ALL" significa sem restrição. A mesma
// convenção vale para parâmetros de query e de link de compartilhamento.
package filter

import (
	"strings"

	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
)

// All valor curinga dos campos de enumeração.
const All = "ALL"

// TransactionFilters filtros do histórico de filme stretch.
type TransactionFilters struct {
	StartDate  string `json:"startDate" query:"startDate"`
	EndDate    string `json:"endDate" query:"endDate"`
	Operation  string `json:"operation" query:"operation"`
	Conferente string `json:"conferente" query:"conferente"`
}

// IsZero informa se nenhum filtro está ativo.
func (f TransactionFilters) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" &&
		(f.Operation == "" || f.Operation == All) && f.Conferente == ""
}

// Match aplica o filtro a uma movimentação.
func (f TransactionFilters) Match(t entity.Transaction) bool {
	return inDateRange(t.Date, f.StartDate, f.EndDate) &&
		matchEnum(t.Operation, f.Operation) &&
		containsFold(t.Conferente, f.Conferente)
}

// Apply devolve as movimentações que passam no filtro, na ordem recebida.
func (f TransactionFilters) Apply(list []entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// PalletFilters filtros do histórico de paletes.
type PalletFilters struct {
	StartDate string `json:"startDate" query:"startDate"`
	EndDate   string `json:"endDate" query:"endDate"`
	Operation string `json:"operation" query:"operation"`
	Client    string `json:"client" query:"client"`
	Profile   string `json:"profile" query:"profile"`
}

// IsZero informa se nenhum filtro está ativo.
func (f PalletFilters) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" &&
		(f.Operation == "" || f.Operation == All) &&
		f.Client == "" && (f.Profile == "" || f.Profile == All)
}

// Match aplica o filtro a uma movimentação de paletes.
func (f PalletFilters) Match(t entity.PalletTransaction) bool {
	return inDateRange(t.Date, f.StartDate, f.EndDate) &&
		matchEnum(t.Operation, f.Operation) &&
		matchEnum(t.Profile, f.Profile) &&
		containsFold(t.Client, f.Client)
}

// Apply devolve as movimentações que passam no filtro, na ordem recebida.
func (f PalletFilters) Apply(list []entity.PalletTransaction) []entity.PalletTransaction {
	out := make([]entity.PalletTransaction, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// OcorrenciaFilters filtros do histórico de ocorrências.
// Responsibility é busca textual (contains), não enumeração.
type OcorrenciaFilters struct {
	StartDate      string `json:"startDate" query:"startDate"`
	EndDate        string `json:"endDate" query:"endDate"`
	Client         string `json:"client" query:"client"`
	Plate          string `json:"plate" query:"plate"`
	Driver         string `json:"driver" query:"driver"`
	Operation      string `json:"operation" query:"operation"`
	Responsibility string `json:"responsibility" query:"responsibility"`
	Status         string `json:"status" query:"status"`
}

// Match aplica o filtro a uma ocorrência.
func (f OcorrenciaFilters) Match(o entity.Ocorrencia) bool {
	return inDateRange(o.Date, f.StartDate, f.EndDate) &&
		matchEnum(o.Operation, f.Operation) &&
		matchEnum(o.Status, f.Status) &&
		containsFold(o.Client, f.Client) &&
		containsFold(o.Plate, f.Plate) &&
		containsFold(o.Driver, f.Driver) &&
		containsFold(o.Responsibility, f.Responsibility)
}

// Apply devolve as ocorrências que passam no filtro, na ordem recebida.
func (f OcorrenciaFilters) Apply(list []entity.Ocorrencia) []entity.Ocorrencia {
	out := make([]entity.Ocorrencia, 0, len(list))
	for _, o := range list {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// inDateRange intervalo inclusivo; limites vazios não restringem.
func inDateRange(date, start, end string) bool {
	d := ledger.ParseDate(date)
	if start != "" && d.Before(ledger.ParseDate(start)) {
		return false
	}
	if end != "" && d.After(ledger.ParseDate(end)) {
		return false
	}
	return true
}

// matchEnum igualdade exata, com vazio e "ALL" como curingas.
func matchEnum(value, want string) bool {
	return want == "" || want == All || value == want
}

// containsFold contains case-insensitive; termo vazio não restringe.
func containsFold(value, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(term))
}
