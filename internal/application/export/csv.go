package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM prefixo exigido para o Excel reconhecer UTF-8 em arquivos CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV serializa a tabela como CSV separado por vírgula, com BOM UTF-8 e a
// linha de cabeçalho com os rótulos das colunas.
func CSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Label
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: cabeçalho: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("csv: linha: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
