package entity

import "github.com/shopspring/decimal"

// Tipos de operação de uma ocorrência de entrega.
const (
	OcorrenciaOpEntrega       = "ENTREGA"
	OcorrenciaOpColeta        = "COLETA"
	OcorrenciaOpDevolucao     = "DEVOLUÇÃO"
	OcorrenciaOpTransferencia = "TRANSFERÊNCIA"
	OcorrenciaOpRetrabalho    = "RETRABALHO"
)

// Status de uma ocorrência.
const (
	OcorrenciaStatusAberta    = "ABERTA"
	OcorrenciaStatusEmAnalise = "EM ANÁLISE"
	OcorrenciaStatusConcluida = "CONCLUÍDA"
	OcorrenciaStatusFechada   = "FECHADA"
)

// OcorrenciaOperations lista fechada das operações.
var OcorrenciaOperations = []string{
	OcorrenciaOpEntrega, OcorrenciaOpColeta, OcorrenciaOpDevolucao,
	OcorrenciaOpTransferencia, OcorrenciaOpRetrabalho,
}

// OcorrenciaStatuses lista fechada dos status.
var OcorrenciaStatuses = []string{
	OcorrenciaStatusAberta, OcorrenciaStatusEmAnalise,
	OcorrenciaStatusConcluida, OcorrenciaStatusFechada,
}

// Limites das listas anexas de uma ocorrência.
const (
	MaxOcorrenciaDocs   = 15 // CTEs, notas fiscais e notas de devolução, cada
	MaxOcorrenciaPhotos = 20
)

// Ocorrencia é um registro de incidente/exceção de entrega (avaria, divergência,
// devolução). Armazenamento puro: sem campos derivados; filtragem e agregação
// acontecem nos casos de uso de dashboard e histórico.
type Ocorrencia struct {
	ID                string          `json:"id"`
	Date              string          `json:"date"`
	Plate             string          `json:"plate"`
	Driver            string          `json:"driver"`
	Client            string          `json:"client"`
	CTE               []string        `json:"cte"`
	Invoice           []string        `json:"invoice"`
	DevolutionInvoice []string        `json:"devolutionInvoice"`
	Quantity          decimal.Decimal `json:"quantity"`
	VolumeType        string          `json:"volumeType"`
	MonitoringReason  string          `json:"monitoringReason"`
	WarehouseReason   string          `json:"warehouseReason"`
	WarehouseAnalysis string          `json:"warehouseAnalysis"`
	Receiver          string          `json:"receiver"`
	Responsibility    string          `json:"responsibility"` // texto livre, não enum
	Operation         string          `json:"operation"`
	Status            string          `json:"status"`
	Photos            []string        `json:"photos"` // referências opacas (data URLs)
}

// ValidOcorrenciaOperation informa se op pertence ao conjunto fechado.
func ValidOcorrenciaOperation(op string) bool {
	for _, o := range OcorrenciaOperations {
		if o == op {
			return true
		}
	}
	return false
}

// ValidOcorrenciaStatus informa se s pertence ao conjunto fechado.
func ValidOcorrenciaStatus(s string) bool {
	for _, st := range OcorrenciaStatuses {
		if st == s {
			return true
		}
	}
	return false
}
