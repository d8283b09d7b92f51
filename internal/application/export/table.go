// Package export materializa os históricos como tabelas exportáveis
// (CSV para Excel, XML e relatório PDF). As colunas e a formatação de
// célula reproduzem as tabelas exibidas no painel: datas dd/mm/aaaa,
// moeda em R$, listas anexas unidas por vírgula.
package export

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/ledger"
)

// Column uma coluna exportada: Key vira o nome do elemento XML, Label o
// cabeçalho de CSV e PDF.
type Column struct {
	Key   string
	Label string
}

// Table tabela pronta para serialização, com células já formatadas.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// TransactionTable monta a tabela do histórico de filme stretch.
func TransactionTable(list []entity.Transaction) Table {
	t := Table{
		Name: "movimentacoes_stretch",
		Columns: []Column{
			{Key: "date", Label: "Data"},
			{Key: "operation", Label: "Operação"},
			{Key: "input", Label: "Entrada (kg)"},
			{Key: "output", Label: "Saída (kg)"},
			{Key: "conferente", Label: "Conferente"},
			{Key: "invoice", Label: "NF"},
			{Key: "value", Label: "Valor (R$)"},
			{Key: "balance", Label: "Saldo (kg)"},
			{Key: "observations", Label: "OBS"},
		},
	}
	for _, tx := range list {
		t.Rows = append(t.Rows, []string{
			formatDate(tx.Date),
			tx.Operation,
			tx.Input.String(),
			tx.Output.String(),
			tx.Conferente,
			tx.Invoice,
			formatBRL(tx.Value),
			tx.Balance.String(),
			tx.Observations,
		})
	}
	return t
}

// PalletTable monta a tabela do histórico de paletes.
func PalletTable(list []entity.PalletTransaction) Table {
	t := Table{
		Name: "movimentacoes_paletes",
		Columns: []Column{
			{Key: "month", Label: "Mês"},
			{Key: "date", Label: "Data"},
			{Key: "operation", Label: "Operação"},
			{Key: "invoice", Label: "NF"},
			{Key: "client", Label: "Cliente"},
			{Key: "profile", Label: "Perfil"},
			{Key: "origin", Label: "Origem/Destino"},
			{Key: "driver", Label: "Motorista"},
			{Key: "plate", Label: "Placa"},
			{Key: "cte", Label: "CTE"},
			{Key: "pbrInput", Label: "Entrada PBR"},
			{Key: "output", Label: "Saída"},
			{Key: "returned", Label: "Retorno"},
			{Key: "pbrBroken", Label: "PBR Queb."},
			{Key: "chepInput", Label: "Entrada CHEP"},
			{Key: "chepBroken", Label: "CHEP Queb."},
			{Key: "oneWay", Label: "One Way"},
			{Key: "checker", Label: "Conferente"},
			{Key: "startTime", Label: "Início"},
			{Key: "endTime", Label: "Fim"},
			{Key: "duration", Label: "Temp."},
			{Key: "bonus", Label: "Bônus"},
			{Key: "bonusId", Label: "ID Bônus"},
			{Key: "observations", Label: "OBS"},
		},
	}
	for _, p := range list {
		t.Rows = append(t.Rows, []string{
			p.Month,
			formatDate(p.Date),
			p.Operation,
			p.Invoice,
			p.Client,
			p.Profile,
			p.Origin,
			p.Driver,
			p.Plate,
			p.CTE,
			p.PbrInput.String(),
			p.Output.String(),
			p.Returned.String(),
			p.PbrBroken.String(),
			p.ChepInput.String(),
			p.ChepBroken.String(),
			p.OneWay.String(),
			p.Checker,
			p.StartTime,
			p.EndTime,
			p.Duration,
			p.Bonus,
			p.BonusID,
			p.Observations,
		})
	}
	return t
}

// OcorrenciaTable monta a tabela do histórico de ocorrências.
// Fotos ficam de fora: são referências opacas sem valor em planilha.
func OcorrenciaTable(list []entity.Ocorrencia) Table {
	t := Table{
		Name: "ocorrencias",
		Columns: []Column{
			{Key: "date", Label: "Data"},
			{Key: "status", Label: "Status"},
			{Key: "client", Label: "Cliente"},
			{Key: "plate", Label: "Placa"},
			{Key: "driver", Label: "Motorista"},
			{Key: "operation", Label: "Operação"},
			{Key: "responsibility", Label: "Responsabilidade"},
			{Key: "monitoringReason", Label: "Motivo Monitoramento"},
			{Key: "warehouseReason", Label: "Motivo Armazém"},
			{Key: "warehouseAnalysis", Label: "Análise Armazém"},
			{Key: "quantity", Label: "Qtd"},
			{Key: "invoice", Label: "NF"},
			{Key: "devolutionInvoice", Label: "NF Devolução"},
			{Key: "cte", Label: "CTE"},
			{Key: "receiver", Label: "Recebedor"},
		},
	}
	for _, o := range list {
		t.Rows = append(t.Rows, []string{
			formatDate(o.Date),
			o.Status,
			o.Client,
			o.Plate,
			o.Driver,
			o.Operation,
			o.Responsibility,
			o.MonitoringReason,
			o.WarehouseReason,
			o.WarehouseAnalysis,
			strings.TrimSpace(o.Quantity.String() + " " + o.VolumeType),
			strings.Join(o.Invoice, ", "),
			strings.Join(o.DevolutionInvoice, ", "),
			strings.Join(o.CTE, ", "),
			o.Receiver,
		})
	}
	return t
}

// formatDate converte "YYYY-MM-DD" em "dd/mm/aaaa"; datas malformadas passam
// como vieram.
func formatDate(s string) string {
	d := ledger.ParseDate(s)
	if d.IsZero() {
		return s
	}
	return d.Format("02/01/2006")
}

// formatBRL formata moeda pt-BR ("R$ 1.234,56"); zero ou negativo vira "-",
// como na tabela original.
func formatBRL(v decimal.Decimal) string {
	if !v.IsPositive() {
		return "-"
	}
	s := v.StringFixed(2) // ex.: 1234.56
	parts := strings.SplitN(s, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("R$ %s,%s", b.String(), fracPart)
}
