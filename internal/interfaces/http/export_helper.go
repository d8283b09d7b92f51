package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/logmam/logmam-api/internal/application/dto"
	"github.com/logmam/logmam-api/internal/application/export"
	"github.com/logmam/logmam-api/internal/infrastructure/pdf"
)

// sendTable serializa a tabela no formato pedido (?format=csv|xml|pdf,
// default csv) e responde como download.
func sendTable(c *fiber.Ctx, gen *pdf.ReportGenerator, t export.Table) error {
	format := c.Query("format", "csv")

	var (
		raw         []byte
		err         error
		contentType string
	)
	switch format {
	case "csv":
		raw, err = export.CSV(t)
		contentType = "text/csv; charset=utf-8"
	case "xml":
		raw, err = export.XML(t)
		contentType = "application/xml; charset=utf-8"
	case "pdf":
		raw, err = gen.Generate(c.Context(), t)
		contentType = "application/pdf"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format deve ser csv, xml ou pdf"})
	}
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, t.Name, format))
	return c.Send(raw)
}
