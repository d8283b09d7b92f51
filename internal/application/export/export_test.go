package export_test

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logmam/logmam-api/internal/application/export"
	"github.com/logmam/logmam-api/internal/domain/entity"
)

func sampleTransactions() []entity.Transaction {
	return []entity.Transaction{
		{
			Date:       "2025-10-22",
			Operation:  entity.OperationEntrada,
			Input:      decimal.NewFromInt(100),
			Value:      decimal.NewFromFloat(1234.5),
			Invoice:    "NF-1",
			Conferente: "Eduardo",
			Balance:    decimal.NewFromInt(100),
		},
		{
			Date:         "2025-10-23",
			Operation:    entity.OperationSaida,
			Output:       decimal.NewFromInt(40),
			Conferente:   "Maria",
			Balance:      decimal.NewFromInt(60),
			Observations: "palete, avariado",
		},
	}
}

func TestTransactionTable_Formatacao(t *testing.T) {
	table := export.TransactionTable(sampleTransactions())
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "22/10/2025", table.Rows[0][0])
	assert.Equal(t, "R$ 1.234,50", table.Rows[0][6])
	// Valor zero aparece como traço, como na tabela do painel.
	assert.Equal(t, "-", table.Rows[1][6])
}

func TestCSV(t *testing.T) {
	raw, err := export.CSV(export.TransactionTable(sampleTransactions()))
	require.NoError(t, err)

	// BOM UTF-8 para o Excel.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])

	content := string(raw[3:])
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Data,Operação,"))
	// Célula com vírgula sai entre aspas.
	assert.Contains(t, lines[2], `"palete, avariado"`)
}

func TestXML(t *testing.T) {
	raw, err := export.XML(export.TransactionTable(sampleTransactions()))
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))

	records := doc.FindElements("//records/record")
	require.Len(t, records, 2)
	assert.Equal(t, "22/10/2025", records[0].SelectElement("date").Text())
	assert.Equal(t, "ENTRADA", records[0].SelectElement("operation").Text())
	assert.Equal(t, "palete, avariado", records[1].SelectElement("observations").Text())
}

func TestOcorrenciaTable_ListasUnidas(t *testing.T) {
	table := export.OcorrenciaTable([]entity.Ocorrencia{{
		Date:       "2025-01-05",
		Status:     entity.OcorrenciaStatusAberta,
		Operation:  entity.OcorrenciaOpEntrega,
		Quantity:   decimal.NewFromInt(3),
		VolumeType: "CAIXAS",
		Invoice:    []string{"NF-1", "NF-2"},
		CTE:        []string{"CTE-9"},
	}})
	require.Len(t, table.Rows, 1)
	row := table.Rows[0]
	assert.Equal(t, "3 CAIXAS", row[10])
	assert.Equal(t, "NF-1, NF-2", row[11])
	assert.Equal(t, "CTE-9", row[13])
}

func TestPalletTable_Colunas(t *testing.T) {
	table := export.PalletTable([]entity.PalletTransaction{{
		Month:     "Outubro de 2025",
		Date:      "2025-10-22",
		Operation: entity.PalletOperationSaida,
		Duration:  "1:30",
		PbrInput:  decimal.NewFromInt(10),
	}})
	require.Len(t, table.Columns, 24)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Outubro de 2025", table.Rows[0][0])
	assert.Equal(t, "1:30", table.Rows[0][20])
}
