package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func mov(id, date, op string, input, output, value int64) entity.Transaction {
	return entity.Transaction{
		ID:        id,
		Date:      date,
		Operation: op,
		Input:     decimal.NewFromInt(input),
		Output:    decimal.NewFromInt(output),
		Value:     decimal.NewFromInt(value),
	}
}

// strip remove os campos derivados, simulando um registro recém-vindo do formulário.
func strip(list []entity.Transaction) []entity.Transaction {
	out := make([]entity.Transaction, len(list))
	copy(out, list)
	for i := range out {
		out[i].UnitKg = decimal.Zero
		out[i].Balance = decimal.Zero
	}
	return out
}

func balances(list []entity.Transaction) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Balance.String()
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Recompute: saldo e custo unitário
// ──────────────────────────────────────────────────────────────────────────────

// Duas ENTRADAs precificadas e uma SAÍDA em três datas →
// saldos 100, 150, 120 e custos 2.00, 2.00, 0.
func TestRecompute_EntradasESaida(t *testing.T) {
	list := []entity.Transaction{
		mov("a", "2025-01-10", entity.OperationEntrada, 100, 0, 200),
		mov("b", "2025-01-11", entity.OperationEntrada, 50, 0, 100),
		mov("c", "2025-01-12", entity.OperationSaida, 0, 30, 0),
	}

	got := ledger.Recompute(list)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"100", "150", "120"}, balances(got))
	assert.True(t, got[0].UnitKg.Equal(decimal.RequireFromString("2")), "custo unitário da primeira entrada")
	assert.True(t, got[1].UnitKg.Equal(decimal.RequireFromString("2")))
	assert.True(t, got[2].UnitKg.IsZero(), "saída sem input não tem custo unitário")
}

// Propriedade 3: balance[i] = balance[i-1] + delta(registro[i]), com saldo
// inicial 0 antes do primeiro registro.
func TestRecompute_SaldoEhSomaCorrente(t *testing.T) {
	list := []entity.Transaction{
		mov("a", "2025-02-01", entity.OperationEntrada, 40, 0, 80),
		mov("b", "2025-02-02", entity.OperationSaida, 0, 15, 0),
		mov("c", "2025-02-03", entity.OperationDevolucao, 0, 5, 0),
		mov("d", "2025-02-04", entity.OperationAjuste, 10, 0, 0),
	}

	got := ledger.Recompute(list)
	require.Len(t, got, 4)

	prev := decimal.Zero
	deltas := []int64{40, -15, -5, 10}
	for i, tr := range got {
		want := prev.Add(decimal.NewFromInt(deltas[i]))
		assert.True(t, tr.Balance.Equal(want), "saldo no índice %d: quer %s, veio %s", i, want, tr.Balance)
		prev = tr.Balance
	}
}

// AJUSTE com input negativo sobre razão vazio → saldo -20 (sinal passa direto).
func TestRecompute_AjusteNegativo(t *testing.T) {
	list := []entity.Transaction{mov("a", "2025-03-01", entity.OperationAjuste, -20, 0, 0)}

	got := ledger.Recompute(list)
	require.Len(t, got, 1)
	assert.Equal(t, "-20", got[0].Balance.String())
}

// DEVOLUÇÃO após SAÍDA sobre saldo 50 → ambas baixam o saldo (50-10-10=30).
func TestRecompute_DevolucaoTambemEhSaida(t *testing.T) {
	list := []entity.Transaction{
		mov("a", "2025-04-01", entity.OperationEntrada, 50, 0, 100),
		mov("b", "2025-04-02", entity.OperationSaida, 0, 10, 0),
		mov("c", "2025-04-03", entity.OperationDevolucao, 0, 10, 0),
	}

	got := ledger.Recompute(list)
	assert.Equal(t, "30", got[len(got)-1].Balance.String())
}

// Propriedade 4: unitKg = round(value/input, 2) nos dois ramos, incluindo o
// arredondamento de dízima (10/3 → 3.33).
func TestRecompute_CustoUnitario(t *testing.T) {
	list := []entity.Transaction{
		mov("a", "2025-05-01", entity.OperationEntrada, 3, 0, 10),  // 3.33
		mov("b", "2025-05-02", entity.OperationEntrada, 30, 0, 0),  // sem valor → 0
		mov("c", "2025-05-03", entity.OperationSaida, 0, 5, 100),   // sem input → 0
	}

	got := ledger.Recompute(list)
	assert.Equal(t, "3.33", got[0].UnitKg.String())
	assert.True(t, got[1].UnitKg.IsZero())
	assert.True(t, got[2].UnitKg.IsZero())
}

// Propriedade 1: qualquer permutação do mesmo conjunto produz o mesmo saldo
// final e a mesma sequência de saldos.
func TestRecompute_DeterministicoSobPermutacao(t *testing.T) {
	base := []entity.Transaction{
		mov("a", "2025-01-05", entity.OperationEntrada, 100, 0, 200),
		mov("b", "2025-01-08", entity.OperationSaida, 0, 30, 0),
		mov("c", "2025-02-01", entity.OperationAjuste, -10, 0, 0),
		mov("d", "2025-02-10", entity.OperationDevolucao, 0, 5, 0),
		mov("e", "2025-03-02", entity.OperationEntrada, 20, 0, 44),
	}
	want := balances(ledger.Recompute(base))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		perm := make([]entity.Transaction, len(base))
		copy(perm, base)
		rng.Shuffle(len(perm), func(a, b int) { perm[a], perm[b] = perm[b], perm[a] })

		assert.Equal(t, want, balances(ledger.Recompute(perm)), "permutação %d", i)
	}
}

// Propriedade 2: Recompute(strip(Recompute(X))) ≡ Recompute(X).
func TestRecompute_Idempotente(t *testing.T) {
	list := []entity.Transaction{
		mov("a", "2025-06-01", entity.OperationEntrada, 30, 0, 1920),
		mov("b", "2025-06-01", entity.OperationSaida, 0, 6, 0),
		mov("c", "2025-06-02", entity.OperationDevolucao, 0, 1, 0),
		mov("d", "2025-06-03", entity.OperationAjuste, -3, 0, 0),
	}

	once := ledger.Recompute(list)
	twice := ledger.Recompute(strip(once))

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].ID, twice[i].ID)
		assert.True(t, once[i].Balance.Equal(twice[i].Balance))
		assert.True(t, once[i].UnitKg.Equal(twice[i].UnitKg))
	}
}

// Empates de data preservam a ordem relativa de entrada (sort estável).
func TestRecompute_OrdenacaoEstavelNaMesmaData(t *testing.T) {
	list := []entity.Transaction{
		mov("primeiro", "2025-07-01", entity.OperationEntrada, 10, 0, 20),
		mov("segundo", "2025-07-01", entity.OperationSaida, 0, 4, 0),
		mov("terceiro", "2025-07-01", entity.OperationSaida, 0, 1, 0),
	}

	got := ledger.Recompute(list)
	assert.Equal(t, "primeiro", got[0].ID)
	assert.Equal(t, "segundo", got[1].ID)
	assert.Equal(t, "terceiro", got[2].ID)
	assert.Equal(t, "5", got[2].Balance.String())
}

// Data malformada não derruba o recálculo: ordena primeiro (tempo zero).
func TestRecompute_DataMalformada(t *testing.T) {
	list := []entity.Transaction{
		mov("ok", "2025-07-02", entity.OperationEntrada, 10, 0, 0),
		mov("ruim", "data-invalida", entity.OperationSaida, 0, 2, 0),
	}

	got := ledger.Recompute(list)
	require.Len(t, got, 2)
	assert.Equal(t, "ruim", got[0].ID)
	assert.Equal(t, "8", got[1].Balance.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// CurrentBalance
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentBalance(t *testing.T) {
	assert.True(t, ledger.CurrentBalance(nil).IsZero(), "coleção vazia → 0")

	got := ledger.Recompute([]entity.Transaction{
		mov("a", "2025-01-02", entity.OperationEntrada, 10, 0, 0),
		mov("b", "2025-01-01", entity.OperationEntrada, 5, 0, 0),
	})
	// O último cronológico é "a" (dia 2), não o último inserido.
	assert.Equal(t, "15", ledger.CurrentBalance(got).String())
}

// ──────────────────────────────────────────────────────────────────────────────
// StockValueSeries
// ──────────────────────────────────────────────────────────────────────────────

func TestStockValueSeries_CaminhaComCustoMedio(t *testing.T) {
	got := ledger.StockValueSeries(ledger.Recompute([]entity.Transaction{
		mov("a", "2025-01-01", entity.OperationEntrada, 100, 0, 200), // valor 200, custo médio 2
		mov("b", "2025-01-02", entity.OperationSaida, 0, 30, 0),      // -60 → 140
		mov("c", "2025-01-03", entity.OperationDevolucao, 0, 20, 0),  // -40 → 100
		mov("d", "2025-01-04", entity.OperationAjuste, 10, 0, 0),     // +10*2 → 120
	}))

	require.Len(t, got, 4)
	assert.Equal(t, "200", got[0].Value.String())
	assert.Equal(t, "140", got[1].Value.String())
	assert.Equal(t, "100", got[2].Value.String())
	assert.Equal(t, "120", got[3].Value.String())
}

// Propriedade 5: nenhum ponto exibido é negativo, mesmo com saídas além do estoque.
func TestStockValueSeries_NuncaNegativa(t *testing.T) {
	got := ledger.StockValueSeries(ledger.Recompute([]entity.Transaction{
		mov("a", "2025-01-01", entity.OperationEntrada, 10, 0, 50),
		mov("b", "2025-01-02", entity.OperationSaida, 0, 100, 0),
		mov("c", "2025-01-03", entity.OperationSaida, 0, 100, 0),
	}))

	for i, p := range got {
		assert.False(t, p.Value.IsNegative(), "ponto %d negativo: %s", i, p.Value)
	}
}

// DEVOLUÇÃO precisa baixar o valor; tratá-la como no-op é defeito.
func TestStockValueSeries_DevolucaoBaixaValor(t *testing.T) {
	got := ledger.StockValueSeries(ledger.Recompute([]entity.Transaction{
		mov("a", "2025-01-01", entity.OperationEntrada, 10, 0, 100),
		mov("b", "2025-01-02", entity.OperationDevolucao, 0, 5, 0),
	}))

	require.Len(t, got, 2)
	assert.Equal(t, "50", got[1].Value.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlyFlow
// ──────────────────────────────────────────────────────────────────────────────

// Propriedade 10: dezembro/24 sai antes de janeiro/25 apesar da ordem lexical.
func TestMonthlyFlow_OrdemCronologicaDosMeses(t *testing.T) {
	got := ledger.MonthlyFlow(ledger.Recompute([]entity.Transaction{
		mov("b", "2025-01-15", entity.OperationEntrada, 20, 0, 0),
		mov("a", "2024-12-10", entity.OperationEntrada, 10, 0, 0),
	}))

	require.Len(t, got, 2)
	assert.Equal(t, "dez/24", got[0].Month)
	assert.Equal(t, "jan/25", got[1].Month)
}

func TestMonthlyFlow_ClassificacaoPorOperacao(t *testing.T) {
	got := ledger.MonthlyFlow(ledger.Recompute([]entity.Transaction{
		mov("a", "2025-05-01", entity.OperationEntrada, 100, 0, 0),
		mov("b", "2025-05-02", entity.OperationSaida, 0, 30, 0),
		mov("c", "2025-05-03", entity.OperationDevolucao, 0, 10, 0),
		mov("d", "2025-05-04", entity.OperationAjuste, 5, 0, 0),
		mov("e", "2025-05-05", entity.OperationAjuste, -8, 0, 0),
	}))

	require.Len(t, got, 1)
	assert.Equal(t, "105", got[0].Entradas.String(), "ENTRADA + AJUSTE positivo")
	assert.Equal(t, "48", got[0].Saidas.String(), "SAÍDA + DEVOLUÇÃO + |AJUSTE negativo|")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo e custo médio de entrada
// ──────────────────────────────────────────────────────────────────────────────

// Só SAÍDA conta como consumo; DEVOLUÇÃO e AJUSTE ficam de fora.
func TestConsumptionByMonth(t *testing.T) {
	got := ledger.ConsumptionByMonth([]entity.Transaction{
		mov("a", "2025-01-15", entity.OperationSaida, 0, 30, 0),
		mov("b", "2024-12-10", entity.OperationSaida, 0, 20, 0),
		mov("c", "2025-01-20", entity.OperationDevolucao, 0, 99, 0),
		mov("d", "2025-01-21", entity.OperationAjuste, -99, 0, 0),
		mov("e", "2025-01-25", entity.OperationSaida, 0, 12, 0),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "dez/24", got[0].Month)
	assert.Equal(t, "20", got[0].Consumo.String())
	assert.Equal(t, "jan/25", got[1].Month)
	assert.Equal(t, "42", got[1].Consumo.String())
}

func TestConsumptionInMonth(t *testing.T) {
	list := []entity.Transaction{
		mov("a", "2025-01-15", entity.OperationSaida, 0, 30, 0),
		mov("b", "2025-02-01", entity.OperationSaida, 0, 50, 0),
		mov("c", "2025-01-20", entity.OperationDevolucao, 0, 99, 0),
	}

	ref := ledger.ParseDate("2025-01-31")
	assert.Equal(t, "30", ledger.ConsumptionInMonth(list, ref).String())
	assert.True(t, ledger.ConsumptionInMonth(list, ledger.ParseDate("2024-01-01")).IsZero())
}

// Média simples dos custos unitários das ENTRADAs precificadas, não ponderada
// por kg: 2.00 e 4.00 dão 3.
func TestAvgEntryUnitCost(t *testing.T) {
	ledg := ledger.Recompute([]entity.Transaction{
		mov("a", "2025-01-10", entity.OperationEntrada, 100, 0, 200),
		mov("b", "2025-01-11", entity.OperationEntrada, 50, 0, 200),
		mov("c", "2025-01-12", entity.OperationEntrada, 30, 0, 0), // sem preço, fora da média
		mov("d", "2025-01-13", entity.OperationSaida, 0, 30, 0),
	})

	assert.Equal(t, "3", ledger.AvgEntryUnitCost(ledg).String())
	assert.True(t, ledger.AvgEntryUnitCost(nil).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// OperatorActivity
// ──────────────────────────────────────────────────────────────────────────────

func TestOperatorActivity_ContagemOrdenada(t *testing.T) {
	mk := func(conf string) entity.Transaction {
		tr := mov("x", "2025-01-01", entity.OperationSaida, 0, 1, 0)
		tr.Conferente = conf
		return tr
	}
	got := ledger.OperatorActivity([]entity.Transaction{
		mk("CRISTIANO"), mk("ALEX"), mk("CRISTIANO"), mk("EDUARDO"), mk("CRISTIANO"), mk("ALEX"),
	})

	require.Len(t, got, 3)
	assert.Equal(t, ledger.OperatorCount{Conferente: "CRISTIANO", Count: 3}, got[0])
	assert.Equal(t, ledger.OperatorCount{Conferente: "ALEX", Count: 2}, got[1])
	assert.Equal(t, ledger.OperatorCount{Conferente: "EDUARDO", Count: 1}, got[2])
}
