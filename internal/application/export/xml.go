package export

import (
	"fmt"

	"github.com/beevik/etree"
)

// XML serializa a tabela como <records><record><chave>valor</chave>...
// usando as chaves das colunas como nomes de elemento.
func XML(t Table) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	records := doc.CreateElement("records")
	for _, row := range t.Rows {
		record := records.CreateElement("record")
		for i, c := range t.Columns {
			record.CreateElement(c.Key).SetText(row[i])
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}
