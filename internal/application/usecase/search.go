// Package usecase reúne casos de uso transversais do painel.
package usecase

import (
	"strings"

	"github.com/logmam/logmam-api/internal/domain/entity"
)

// maxResultsPerGroup limite de resultados por coleção na busca global.
const maxResultsPerGroup = 5

// SearchDataSource acesso de leitura às coleções pesquisáveis.
type SearchDataSource interface {
	Transactions() []entity.Transaction
	Pallets() []entity.PalletTransaction
	Ocorrencias() []entity.Ocorrencia
}

// SearchResults resultados da busca global, agrupados por coleção.
type SearchResults struct {
	Transactions []entity.Transaction       `json:"transactions"`
	Pallets      []entity.PalletTransaction `json:"pallets"`
	Ocorrencias  []entity.Ocorrencia        `json:"ocorrencias"`
}

// Search busca global case-insensitive nos campos textuais das três coleções
// de movimento, com até 5 resultados por grupo. Termo vazio devolve grupos
// vazios, nunca a coleção inteira.
func Search(data SearchDataSource, term string) SearchResults {
	res := SearchResults{
		Transactions: []entity.Transaction{},
		Pallets:      []entity.PalletTransaction{},
		Ocorrencias:  []entity.Ocorrencia{},
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return res
	}

	for _, t := range data.Transactions() {
		if len(res.Transactions) == maxResultsPerGroup {
			break
		}
		if anyContains(term, t.Invoice, t.Conferente, t.Observations, t.Operation, t.Date) {
			res.Transactions = append(res.Transactions, t)
		}
	}
	for _, t := range data.Pallets() {
		if len(res.Pallets) == maxResultsPerGroup {
			break
		}
		if anyContains(term, t.Invoice, t.CTE, t.Client, t.Driver, t.Plate, t.Origin, t.Checker, t.Observations, t.Operation, t.Date) {
			res.Pallets = append(res.Pallets, t)
		}
	}
	for _, o := range data.Ocorrencias() {
		if len(res.Ocorrencias) == maxResultsPerGroup {
			break
		}
		fields := []string{o.Client, o.Driver, o.Plate, o.Receiver, o.Responsibility,
			o.MonitoringReason, o.WarehouseReason, o.Operation, o.Status, o.Date}
		fields = append(fields, o.CTE...)
		fields = append(fields, o.Invoice...)
		fields = append(fields, o.DevolutionInvoice...)
		if anyContains(term, fields...) {
			res.Ocorrencias = append(res.Ocorrencias, o)
		}
	}
	return res
}

func anyContains(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
