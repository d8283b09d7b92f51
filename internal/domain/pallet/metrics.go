// Package pallet contém os agregados de paletes. Diferente do filme stretch,
// não há razão sequencial por registro: os saldos (PBR em circulação, saldo
// CHEP, quebras) são sempre derivados sob demanda sobre a coleção inteira.
package pallet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
)

// PbrMetrics saldos derivados de paletes PBR.
type PbrMetrics struct {
	Balance       decimal.Decimal `json:"balance"`       // entradas - saídas - quebrados + retornados
	InCirculation decimal.Decimal `json:"inCirculation"` // saídas - retornados
	Broken        decimal.Decimal `json:"broken"`
}

// ComputePbrMetrics deriva os saldos PBR da coleção inteira.
// Entradas contam apenas em operações ENTRADA; saídas apenas em SAÍDA;
// quebrados e retornados contam em qualquer operação.
func ComputePbrMetrics(list []entity.PalletTransaction) PbrMetrics {
	var inputs, outputs, broken, returned decimal.Decimal
	for _, t := range list {
		if t.Operation == entity.PalletOperationEntrada {
			inputs = inputs.Add(t.PbrInput)
		}
		if t.Operation == entity.PalletOperationSaida {
			outputs = outputs.Add(t.Output)
		}
		broken = broken.Add(t.PbrBroken)
		returned = returned.Add(t.Returned)
	}
	return PbrMetrics{
		Balance:       inputs.Sub(outputs).Sub(broken).Add(returned),
		InCirculation: outputs.Sub(returned),
		Broken:        broken,
	}
}

// ChepMetrics saldos derivados de paletes CHEP.
type ChepMetrics struct {
	Balance decimal.Decimal `json:"balance"` // entradas - quebrados
	Broken  decimal.Decimal `json:"broken"`
}

// ComputeChepMetrics deriva o saldo CHEP (entradas menos quebrados, qualquer operação).
func ComputeChepMetrics(list []entity.PalletTransaction) ChepMetrics {
	var inputs, broken decimal.Decimal
	for _, t := range list {
		inputs = inputs.Add(t.ChepInput)
		broken = broken.Add(t.ChepBroken)
	}
	return ChepMetrics{Balance: inputs.Sub(broken), Broken: broken}
}

// BrokenMonth quebras de um mês, por esquema de palete.
type BrokenMonth struct {
	Month string          `json:"month"`
	Pbr   decimal.Decimal `json:"pbr"`
	Chep  decimal.Decimal `json:"chep"`
}

// BrokenByMonth série mensal de quebras em ordem cronológica (chave ano-mês
// derivada da data, não o rótulo).
func BrokenByMonth(list []entity.PalletTransaction) []BrokenMonth {
	type bucket struct {
		key int
		bm  BrokenMonth
	}
	buckets := map[int]*bucket{}
	for _, t := range list {
		d := ledger.ParseDate(t.Date)
		key := d.Year()*12 + int(d.Month()) - 1
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, bm: BrokenMonth{Month: ledger.MonthShortLabel(d)}}
			buckets[key] = b
		}
		b.bm.Pbr = b.bm.Pbr.Add(t.PbrBroken)
		b.bm.Chep = b.bm.Chep.Add(t.ChepBroken)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]BrokenMonth, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.bm)
	}
	return out
}

// PbrFlowMonth fluxo PBR de um mês.
type PbrFlowMonth struct {
	Month      string          `json:"month"`
	Entradas   decimal.Decimal `json:"entradas"`
	Saidas     decimal.Decimal `json:"saidas"`
	Devolucoes decimal.Decimal `json:"devolucoes"`
}

// MonthlyPbrFlow série mensal do fluxo de paletes PBR, em ordem cronológica.
// ENTRADA soma pbrInput às entradas; SAÍDA soma output às saídas; DEVOLUÇÃO
// soma returned às devoluções. Demais operações não contribuem.
func MonthlyPbrFlow(list []entity.PalletTransaction) []PbrFlowMonth {
	type bucket struct {
		key  int
		flow PbrFlowMonth
	}
	buckets := map[int]*bucket{}
	for _, t := range list {
		d := ledger.ParseDate(t.Date)
		key := d.Year()*12 + int(d.Month()) - 1
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, flow: PbrFlowMonth{Month: ledger.MonthShortLabel(d)}}
			buckets[key] = b
		}
		switch t.Operation {
		case entity.PalletOperationEntrada:
			b.flow.Entradas = b.flow.Entradas.Add(t.PbrInput)
		case entity.PalletOperationSaida:
			b.flow.Saidas = b.flow.Saidas.Add(t.Output)
		case entity.PalletOperationDevolucao:
			b.flow.Devolucoes = b.flow.Devolucoes.Add(t.Returned)
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]PbrFlowMonth, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.flow)
	}
	return out
}

// AvgOperationTime média "H:MM" das durações (EndTime - StartTime) da coleção.
// Registros sem horários ou com horários malformados não contribuem.
func AvgOperationTime(list []entity.PalletTransaction) string {
	total := 0
	for _, t := range list {
		start, okS := parseTimeOfDay(t.StartTime)
		end, okE := parseTimeOfDay(t.EndTime)
		if !okS || !okE {
			continue
		}
		total += end - start
	}
	if len(list) == 0 {
		return "0:00"
	}
	avg := total / len(list)
	if avg < 0 {
		avg = 0
	}
	return formatMinutes(avg)
}

// BonusCount número de movimentações com bônus vinculado (bonusId preenchido).
func BonusCount(list []entity.PalletTransaction) int {
	n := 0
	for _, t := range list {
		if t.BonusID != "" {
			n++
		}
	}
	return n
}

// ProfileCount contagem de movimentações de um perfil de cliente.
type ProfileCount struct {
	Profile string `json:"name"`
	Count   int    `json:"value"`
}

// ProfileDistribution contagem por perfil, em ordem fixa dos perfis válidos.
func ProfileDistribution(list []entity.PalletTransaction) []ProfileCount {
	counts := map[string]int{}
	for _, t := range list {
		counts[t.Profile]++
	}
	out := make([]ProfileCount, 0, len(counts))
	for _, p := range entity.PalletProfiles {
		if n := counts[p]; n > 0 {
			out = append(out, ProfileCount{Profile: p, Count: n})
		}
	}
	return out
}

// ClientCirculation paletes em circulação com um cliente (saídas - retornos).
type ClientCirculation struct {
	Client        string          `json:"client"`
	InCirculation decimal.Decimal `json:"emCirculacao"`
}

// CirculationByClient top 10 clientes com circulação positiva, em ordem
// decrescente; clientes sem nome são ignorados.
func CirculationByClient(list []entity.PalletTransaction) []ClientCirculation {
	type flows struct{ output, returned decimal.Decimal }
	byClient := map[string]*flows{}
	for _, t := range list {
		if t.Client == "" {
			continue
		}
		f, ok := byClient[t.Client]
		if !ok {
			f = &flows{}
			byClient[t.Client] = f
		}
		f.output = f.output.Add(t.Output)
		f.returned = f.returned.Add(t.Returned)
	}

	out := make([]ClientCirculation, 0, len(byClient))
	for client, f := range byClient {
		circ := f.output.Sub(f.returned)
		if circ.IsPositive() {
			out = append(out, ClientCirculation{Client: client, InCirculation: circ})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].InCirculation.Equal(out[j].InCirculation) {
			return out[i].InCirculation.GreaterThan(out[j].InCirculation)
		}
		return out[i].Client < out[j].Client
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// ptLongMonths nomes completos pt-BR.
var ptLongMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var ptTitle = cases.Title(language.BrazilianPortuguese)

// MonthLabel rótulo "Outubro de 2025" derivado na criação da movimentação.
// Data malformada produz rótulo vazio.
func MonthLabel(date string) string {
	d := ledger.ParseDate(date)
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s de %d", ptTitle.String(ptLongMonths[d.Month()-1]), d.Year())
}

// Duration diferença EndTime-StartTime em "H:MM". Horários malformados ou
// intervalo negativo normalizam para "0:00".
func Duration(startTime, endTime string) string {
	start, okS := parseTimeOfDay(startTime)
	end, okE := parseTimeOfDay(endTime)
	if !okS || !okE || end < start {
		return "0:00"
	}
	return formatMinutes(end - start)
}

// parseTimeOfDay converte "HH:mm" em minutos do dia.
func parseTimeOfDay(s string) (int, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatMinutes(total int) string {
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
