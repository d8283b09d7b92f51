// Package ledger implementa o motor de razão do filme stretch: a partir da
// coleção desordenada de movimentações produz a sequência cronológica com
// saldo corrente e custo unitário preenchidos, além das visões agregadas
// (valor de estoque, fluxo mensal, atividade por conferente) consumidas pelos
// dashboards.
//
// Todas as funções são puras e totais sobre entrada bem formada: não lançam
// erro nem pânico; datas malformadas ordenam por comparação best-effort
// (tempo zero) e campos numéricos ausentes valem zero decimal.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logmam/logmam-api/internal/domain/entity"
)

// Recompute ordena as movimentações por data ascendente (estável: empates
// preservam a ordem relativa de entrada) e refaz o fold esquerda→direita do
// saldo corrente, partindo de 0:
//
//	ENTRADA  → +input
//	AJUSTE   → +input (input assinado: negativo reduz o estoque)
//	SAÍDA    → -output
//	DEVOLUÇÃO→ -output
//
// O custo unitário de cada registro deriva apenas do próprio registro:
// round(value/input, 2) quando input>0 e value>0, senão 0.
//
// O resultado substitui a coleção inteira a cada mutação: o saldo de qualquer
// registro depende de todos os anteriores. A função é idempotente: aplicá-la
// sobre a própria saída produz o mesmo resultado.
func Recompute(list []entity.Transaction) []entity.Transaction {
	sorted := make([]entity.Transaction, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ParseDate(sorted[i].Date).Before(ParseDate(sorted[j].Date))
	})

	balance := decimal.Zero
	out := make([]entity.Transaction, 0, len(sorted))
	for _, t := range sorted {
		t.UnitKg = unitCost(t.Value, t.Input)
		balance = balance.Add(balanceDelta(t))
		t.Balance = balance
		out = append(out, t)
	}
	return out
}

// CurrentBalance devolve o saldo do registro cronologicamente mais recente,
// ou 0 se a coleção estiver vazia. ledger deve estar em ordem de data
// ascendente (saída de Recompute); nunca usar ordem de inserção.
func CurrentBalance(ledger []entity.Transaction) decimal.Decimal {
	if len(ledger) == 0 {
		return decimal.Zero
	}
	return ledger[len(ledger)-1].Balance
}

// StockValuePoint um ponto da série de valor de estoque.
type StockValuePoint struct {
	Label string          `json:"date"`
	Value decimal.Decimal `json:"valor"`
}

// StockValueSeries simula a valorização do estoque em ordem cronológica.
// Mantém valor total, kg de entrada e custo de entrada acumulados; o custo
// médio corrente é custoAcumulado/kgAcumulado (0 sem entradas).
//
//	ENTRADA  → soma value ao valor e input/value aos acumulados de custo.
//	SAÍDA e DEVOLUÇÃO → subtraem output × custo médio (ambas são baixas de
//	  estoque neutras em custo; ignorar DEVOLUÇÃO seria um defeito).
//	AJUSTE   → soma input × custo médio ao valor e input aos kg acumulados,
//	  sem alterar a base de custo.
//
// O valor exibido é truncado em zero por baixo; um ponto por registro.
func StockValueSeries(ledger []entity.Transaction) []StockValuePoint {
	runningValue := decimal.Zero
	runningInputKg := decimal.Zero
	runningInputCost := decimal.Zero

	points := make([]StockValuePoint, 0, len(ledger))
	for _, t := range ledger {
		avgCost := decimal.Zero
		if runningInputKg.IsPositive() {
			avgCost = runningInputCost.Div(runningInputKg)
		}
		switch t.Operation {
		case entity.OperationEntrada:
			runningValue = runningValue.Add(t.Value)
			runningInputKg = runningInputKg.Add(t.Input)
			runningInputCost = runningInputCost.Add(t.Value)
		case entity.OperationSaida, entity.OperationDevolucao:
			runningValue = runningValue.Sub(t.Output.Mul(avgCost))
		case entity.OperationAjuste:
			runningValue = runningValue.Add(t.Input.Mul(avgCost))
			runningInputKg = runningInputKg.Add(t.Input)
		}
		display := runningValue
		if display.IsNegative() {
			display = decimal.Zero
		}
		points = append(points, StockValuePoint{
			Label: dayLabel(ParseDate(t.Date)),
			Value: display,
		})
	}
	return points
}

// MonthFlow entradas e saídas (kg) de um mês.
type MonthFlow struct {
	Month    string          `json:"month"` // rótulo "out/25"
	Entradas decimal.Decimal `json:"entradas"`
	Saidas   decimal.Decimal `json:"saidas"`
}

// MonthlyFlow agrupa o razão por mês. ENTRADA contribui para entradas; SAÍDA e
// DEVOLUÇÃO para saídas; AJUSTE segue o sinal do input (valor absoluto quando
// negativo). Os meses saem em ordem cronológica: a ordenação usa a chave
// ano-mês derivada da data, nunca o rótulo localizado ("dez/24" < "jan/25"
// apesar da ordem lexical contrária).
func MonthlyFlow(ledger []entity.Transaction) []MonthFlow {
	type bucket struct {
		key  int // ano*12 + mês
		flow MonthFlow
	}
	buckets := map[int]*bucket{}

	for _, t := range ledger {
		d := ParseDate(t.Date)
		key := d.Year()*12 + int(d.Month()) - 1
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, flow: MonthFlow{Month: MonthShortLabel(d)}}
			buckets[key] = b
		}
		switch t.Operation {
		case entity.OperationEntrada:
			b.flow.Entradas = b.flow.Entradas.Add(t.Input)
		case entity.OperationSaida, entity.OperationDevolucao:
			b.flow.Saidas = b.flow.Saidas.Add(t.Output)
		case entity.OperationAjuste:
			if t.Input.IsNegative() {
				b.flow.Saidas = b.flow.Saidas.Add(t.Input.Neg())
			} else {
				b.flow.Entradas = b.flow.Entradas.Add(t.Input)
			}
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]MonthFlow, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.flow)
	}
	return out
}

// MonthConsumption consumo (kg de SAÍDA) de um mês.
type MonthConsumption struct {
	Month   string          `json:"month"`
	Consumo decimal.Decimal `json:"consumo"`
}

// ConsumptionByMonth agrupa os kg de SAÍDA por mês, em ordem cronológica.
// Apenas SAÍDA conta como consumo: devoluções e ajustes são baixas de outra
// natureza e ficam de fora.
func ConsumptionByMonth(list []entity.Transaction) []MonthConsumption {
	type bucket struct {
		key int
		mc  MonthConsumption
	}
	buckets := map[int]*bucket{}

	for _, t := range list {
		if t.Operation != entity.OperationSaida {
			continue
		}
		d := ParseDate(t.Date)
		key := d.Year()*12 + int(d.Month()) - 1
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, mc: MonthConsumption{Month: MonthShortLabel(d)}}
			buckets[key] = b
		}
		b.mc.Consumo = b.mc.Consumo.Add(t.Output)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })

	out := make([]MonthConsumption, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.mc)
	}
	return out
}

// ConsumptionInMonth soma os kg de SAÍDA cujo mês coincide com ref.
func ConsumptionInMonth(list []entity.Transaction, ref time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range list {
		if t.Operation != entity.OperationSaida {
			continue
		}
		d := ParseDate(t.Date)
		if d.Year() == ref.Year() && d.Month() == ref.Month() {
			total = total.Add(t.Output)
		}
	}
	return total
}

// AvgEntryUnitCost média simples do custo unitário das ENTRADAs precificadas
// (unitKg > 0); 0 sem entradas precificadas. É a média dos custos por registro,
// não a média ponderada por kg.
func AvgEntryUnitCost(list []entity.Transaction) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, t := range list {
		if t.Operation == entity.OperationEntrada && t.UnitKg.IsPositive() {
			sum = sum.Add(t.UnitKg)
			count++
		}
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// OperatorCount contagem de movimentações de um conferente.
type OperatorCount struct {
	Conferente string `json:"conferente"`
	Count      int    `json:"count"`
}

// OperatorActivity conta movimentações por conferente (independente de ordem),
// em ordem decrescente de contagem; empates por nome para determinismo.
func OperatorActivity(list []entity.Transaction) []OperatorCount {
	counts := map[string]int{}
	for _, t := range list {
		counts[t.Conferente]++
	}
	out := make([]OperatorCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, OperatorCount{Conferente: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Conferente < out[j].Conferente
	})
	return out
}

// unitCost devolve round(value/input, 2) quando input>0 e value>0, senão 0.
func unitCost(value, input decimal.Decimal) decimal.Decimal {
	if input.IsPositive() && value.IsPositive() {
		return value.Div(input).Round(2)
	}
	return decimal.Zero
}

// balanceDelta contribuição assinada de uma movimentação para o saldo.
func balanceDelta(t entity.Transaction) decimal.Decimal {
	switch t.Operation {
	case entity.OperationEntrada, entity.OperationAjuste:
		return t.Input
	case entity.OperationSaida, entity.OperationDevolucao:
		return t.Output.Neg()
	}
	return decimal.Zero
}

// ParseDate interpreta uma data "YYYY-MM-DD" (com tolerância a timestamps
// RFC3339). Datas malformadas comparam como tempo zero, ordenando primeiro.
func ParseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// ptShortMonths abreviações pt-BR usadas nos rótulos de eixo.
var ptShortMonths = [...]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MonthShortLabel rótulo "out/25" de uma data.
func MonthShortLabel(t time.Time) string {
	return fmt.Sprintf("%s/%02d", ptShortMonths[t.Month()-1], t.Year()%100)
}

// dayLabel rótulo "22 out" de uma data.
func dayLabel(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), ptShortMonths[t.Month()-1])
}
