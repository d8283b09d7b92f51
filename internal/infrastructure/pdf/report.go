// Package pdf gera o relatório imprimível dos históricos usando Maroto v2.
// Substitui a impressão via navegador do painel: mesma tabela, paisagem A4,
// cabeçalho repetido a cada página.
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/logmam/logmam-api/internal/application/export"
)

var (
	colorPrimary = &props.Color{Red: 15, Green: 76, Blue: 129}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxPDFColumns o grid do Maroto tem 12 colunas; tabelas mais largas (paletes)
// são truncadas nas primeiras 12.
const maxPDFColumns = 12

// ReportGenerator gera relatórios PDF de tabelas exportadas.
type ReportGenerator struct{}

// NewReportGenerator constrói o gerador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

// Generate produz o PDF da tabela e devolve seus bytes.
func (g *ReportGenerator) Generate(_ context.Context, t export.Table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Relatório LogMam", true).
		Build()

	m := maroto.New(cfg)

	columns := t.Columns
	if len(columns) > maxPDFColumns {
		columns = columns[:maxPDFColumns]
	}

	m.AddRows(titleRow(t.Name, len(t.Rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(columns))
	for _, r := range t.Rows {
		m.AddRows(dataRow(r, len(columns)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// titleRow título do relatório derivado do nome da tabela.
func titleRow(name string, total int) core.Row {
	title := "Relatório - " + strings.ReplaceAll(name, "_", " ")
	return row.New(10).Add(
		col.New(9).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
		})),
		col.New(3).Add(text.New(fmt.Sprintf("%d registros", total), props.Text{
			Size: 8, Top: 3, Color: colorGray,
		})),
	)
}

// headerRow uma célula de cabeçalho por coluna, distribuídas no grid de 12.
func headerRow(columns []export.Column) core.Row {
	width := maxPDFColumns / len(columns)
	if width < 1 {
		width = 1
	}
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(width).Add(text.New(c.Label, props.Text{
			Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func dataRow(cells []string, n int) core.Row {
	width := maxPDFColumns / n
	if width < 1 {
		width = 1
	}
	cols := make([]core.Col, 0, n)
	for i := 0; i < n; i++ {
		cols = append(cols, col.New(width).Add(text.New(cells[i], props.Text{
			Size: 7, Top: 1,
		})))
	}
	return row.New(5).Add(cols...)
}
