// Package analytics monta os payloads dos dashboards. Tudo aqui é leitura:
// as visões são derivadas sob demanda das coleções em memória, com os filtros
// ativos aplicados antes de qualquer agregação.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logmam/logmam-api/internal/domain/entity"
	"github.com/logmam/logmam-api/internal/domain/filter"
	"github.com/logmam/logmam-api/internal/domain/ledger"
	"github.com/logmam/logmam-api/internal/domain/pallet"
)

// rollWeightKg peso nominal de um rolo de filme stretch, para a conversão
// kg → rolos da tela inicial.
const rollWeightKg = 3

// DataSource acesso de leitura às coleções (implementado pelo serviço de mutação).
type DataSource interface {
	Transactions() []entity.Transaction
	Pallets() []entity.PalletTransaction
	Ocorrencias() []entity.Ocorrencia
	Users() []entity.User
}

// Service casos de uso de dashboard.
type Service struct {
	data DataSource
	now  func() time.Time
}

// NewService constrói o serviço de analytics.
func NewService(data DataSource) *Service {
	return &Service{data: data, now: time.Now}
}

// StretchDashboard visão do estoque de filme stretch.
type StretchDashboard struct {
	Balance               decimal.Decimal           `json:"balance"`
	BalanceRolls          int64                     `json:"balanceRolls"`
	TotalEntradas         decimal.Decimal           `json:"totalEntradas"`
	TotalSaidas           decimal.Decimal           `json:"totalSaidas"`
	AvgUnitCost           decimal.Decimal           `json:"avgUnitCost"`
	MonthlyConsumption    decimal.Decimal           `json:"monthlyConsumption"`
	OperationDistribution []OperationCount          `json:"operationDistribution"`
	ConsumptionByMonth    []ledger.MonthConsumption `json:"consumptionByMonth"`
	StockValue            []ledger.StockValuePoint  `json:"stockValue"`
	MonthlyFlow           []ledger.MonthFlow        `json:"monthlyFlow"`
	OperatorActivity      []ledger.OperatorCount    `json:"operatorActivity"`
}

// Stretch agrega o razão filtrado. O filtro restringe a janela exibida, mas o
// saldo corrente de cada registro continua vindo do razão completo: filtrar a
// tela não reescreve a história.
func (s *Service) Stretch(f filter.TransactionFilters) StretchDashboard {
	ledg := f.Apply(s.data.Transactions())

	var entradas, saidas decimal.Decimal
	byOp := map[string]int{}
	for _, t := range ledg {
		byOp[t.Operation]++
		switch t.Operation {
		case entity.OperationEntrada:
			entradas = entradas.Add(t.Input)
		case entity.OperationSaida, entity.OperationDevolucao:
			saidas = saidas.Add(t.Output)
		case entity.OperationAjuste:
			if t.Input.IsNegative() {
				saidas = saidas.Add(t.Input.Neg())
			} else {
				entradas = entradas.Add(t.Input)
			}
		}
	}

	var opDist []OperationCount
	for _, op := range entity.OperationTypes {
		if n := byOp[op]; n > 0 {
			opDist = append(opDist, OperationCount{Operation: op, Count: n})
		}
	}

	balance := ledger.CurrentBalance(ledg)
	return StretchDashboard{
		Balance:               balance,
		BalanceRolls:          balanceInRolls(balance),
		TotalEntradas:         entradas,
		TotalSaidas:           saidas,
		AvgUnitCost:           ledger.AvgEntryUnitCost(ledg),
		MonthlyConsumption:    ledger.ConsumptionInMonth(ledg, s.now()),
		OperationDistribution: opDist,
		ConsumptionByMonth:    ledger.ConsumptionByMonth(ledg),
		StockValue:            ledger.StockValueSeries(ledg),
		MonthlyFlow:           ledger.MonthlyFlow(ledg),
		OperatorActivity:      ledger.OperatorActivity(ledg),
	}
}

// PalletDashboard visão consolidada de paletes.
type PalletDashboard struct {
	Pbr              pallet.PbrMetrics          `json:"pbr"`
	Chep             pallet.ChepMetrics         `json:"chep"`
	BrokenByMonth    []pallet.BrokenMonth       `json:"brokenByMonth"`
	MonthlyPbrFlow   []pallet.PbrFlowMonth      `json:"monthlyPbrFlow"`
	AvgOperationTime string                     `json:"avgOperationTime"`
	BonusCount       int                        `json:"bonusCount"`
	Profiles         []pallet.ProfileCount      `json:"profiles"`
	TopClients       []pallet.ClientCirculation `json:"topClients"`
}

// Pallets agrega as movimentações de paletes filtradas.
func (s *Service) Pallets(f filter.PalletFilters) PalletDashboard {
	list := f.Apply(s.data.Pallets())
	return PalletDashboard{
		Pbr:              pallet.ComputePbrMetrics(list),
		Chep:             pallet.ComputeChepMetrics(list),
		BrokenByMonth:    pallet.BrokenByMonth(list),
		MonthlyPbrFlow:   pallet.MonthlyPbrFlow(list),
		AvgOperationTime: pallet.AvgOperationTime(list),
		BonusCount:       pallet.BonusCount(list),
		Profiles:         pallet.ProfileDistribution(list),
		TopClients:       pallet.CirculationByClient(list),
	}
}

// StatusCount contagem de ocorrências por status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// OperationCount contagem de registros por operação.
type OperationCount struct {
	Operation string `json:"operation"`
	Count     int    `json:"count"`
}

// MonthCount contagem de ocorrências por mês, em ordem cronológica.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ResponsibilityCount contagem de ocorrências por responsabilidade atribuída.
type ResponsibilityCount struct {
	Responsibility string `json:"responsibility"`
	Count          int    `json:"count"`
}

// ClientCount contagem de ocorrências de um cliente.
type ClientCount struct {
	Client string `json:"client"`
	Count  int    `json:"count"`
}

// OcorrenciaDashboard visão das ocorrências de entrega.
type OcorrenciaDashboard struct {
	Total             int                   `json:"total"`
	Abertas           int                   `json:"abertas"`
	ConcluidasEsteMes int                   `json:"concluidasEsteMes"`
	ArmazemShare      string                `json:"responsabilidadeArmazem"`
	ByStatus          []StatusCount         `json:"byStatus"`
	ByOperation       []OperationCount      `json:"byOperation"`
	ByResponsibility  []ResponsibilityCount `json:"byResponsibility"`
	ByMonth           []MonthCount          `json:"byMonth"`
	TopClients        []ClientCount         `json:"topClients"`
}

// Ocorrencias agrega as ocorrências filtradas. As contagens por status e
// operação saem na ordem fixa dos conjuntos válidos; responsabilidades e
// clientes em ordem decrescente de contagem; meses em ordem cronológica pela
// chave ano-mês.
func (s *Service) Ocorrencias(f filter.OcorrenciaFilters) OcorrenciaDashboard {
	list := f.Apply(s.data.Ocorrencias())
	now := s.now()

	byStatus := map[string]int{}
	byOp := map[string]int{}
	byResp := map[string]int{}
	byClient := map[string]int{}
	type monthBucket struct {
		key   int
		label string
		count int
	}
	months := map[int]*monthBucket{}
	abertas := 0
	concluidasMes := 0
	armazem := 0

	for _, o := range list {
		byStatus[o.Status]++
		byOp[o.Operation]++
		resp := o.Responsibility
		if resp == "" {
			resp = "Indefinido"
		}
		byResp[resp]++
		if strings.EqualFold(o.Responsibility, "ARMAZÉM") {
			armazem++
		}
		if o.Client != "" {
			byClient[o.Client]++
		}
		if o.Status == entity.OcorrenciaStatusAberta || o.Status == entity.OcorrenciaStatusEmAnalise {
			abertas++
		}
		d := ledger.ParseDate(o.Date)
		if (o.Status == entity.OcorrenciaStatusConcluida || o.Status == entity.OcorrenciaStatusFechada) &&
			d.Year() == now.Year() && d.Month() == now.Month() {
			concluidasMes++
		}
		key := d.Year()*12 + int(d.Month()) - 1
		b, ok := months[key]
		if !ok {
			b = &monthBucket{key: key, label: ledger.MonthShortLabel(d)}
			months[key] = b
		}
		b.count++
	}

	dash := OcorrenciaDashboard{
		Total:             len(list),
		Abertas:           abertas,
		ConcluidasEsteMes: concluidasMes,
		ArmazemShare:      percentShare(armazem, len(list)),
	}
	for _, st := range entity.OcorrenciaStatuses {
		if n := byStatus[st]; n > 0 {
			dash.ByStatus = append(dash.ByStatus, StatusCount{Status: st, Count: n})
		}
	}
	for _, op := range entity.OcorrenciaOperations {
		if n := byOp[op]; n > 0 {
			dash.ByOperation = append(dash.ByOperation, OperationCount{Operation: op, Count: n})
		}
	}
	for resp, n := range byResp {
		dash.ByResponsibility = append(dash.ByResponsibility, ResponsibilityCount{Responsibility: resp, Count: n})
	}
	sort.Slice(dash.ByResponsibility, func(i, j int) bool {
		if dash.ByResponsibility[i].Count != dash.ByResponsibility[j].Count {
			return dash.ByResponsibility[i].Count > dash.ByResponsibility[j].Count
		}
		return dash.ByResponsibility[i].Responsibility < dash.ByResponsibility[j].Responsibility
	})
	for client, n := range byClient {
		dash.TopClients = append(dash.TopClients, ClientCount{Client: client, Count: n})
	}
	sort.Slice(dash.TopClients, func(i, j int) bool {
		if dash.TopClients[i].Count != dash.TopClients[j].Count {
			return dash.TopClients[i].Count > dash.TopClients[j].Count
		}
		return dash.TopClients[i].Client < dash.TopClients[j].Client
	})
	if len(dash.TopClients) > 10 {
		dash.TopClients = dash.TopClients[:10]
	}

	ordered := make([]*monthBucket, 0, len(months))
	for _, b := range months {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key < ordered[j].key })
	for _, b := range ordered {
		dash.ByMonth = append(dash.ByMonth, MonthCount{Month: b.label, Count: b.count})
	}
	return dash
}

// DayActivity movimentações registradas num dia, por domínio.
type DayActivity struct {
	Date    string `json:"date"` // dd/mm/aaaa
	Film    int    `json:"film"`
	Pallets int    `json:"pallets"`
}

// GeneralDashboard visão resumida da tela inicial.
type GeneralDashboard struct {
	StretchBalance       decimal.Decimal `json:"stretchBalance"`
	StretchBalanceRolls  int64           `json:"stretchBalanceRolls"`
	StockValue           decimal.Decimal `json:"stockValue"`
	PbrBalance           decimal.Decimal `json:"pbrBalance"`
	PalletsInCirculation decimal.Decimal `json:"palletsInCirculation"`
	ChepBalance          decimal.Decimal `json:"chepBalance"`
	OcorrenciasAbertas   int             `json:"ocorrenciasAbertas"`
	TotalUsers           int             `json:"totalUsers"`
	DailyActivity        []DayActivity   `json:"dailyActivity"`
}

// General combina os saldos principais das três áreas com a atividade diária
// combinada (últimos 30 dias com registro, em ordem cronológica).
func (s *Service) General() GeneralDashboard {
	ledg := s.data.Transactions()
	pallets := s.data.Pallets()

	abertas := 0
	for _, o := range s.data.Ocorrencias() {
		if o.Status == entity.OcorrenciaStatusAberta || o.Status == entity.OcorrenciaStatusEmAnalise {
			abertas++
		}
	}

	pbr := pallet.ComputePbrMetrics(pallets)
	balance := ledger.CurrentBalance(ledg)

	return GeneralDashboard{
		StretchBalance:       balance,
		StretchBalanceRolls:  balanceInRolls(balance),
		StockValue:           currentStockValue(ledg),
		PbrBalance:           pbr.Balance,
		PalletsInCirculation: pbr.InCirculation,
		ChepBalance:          pallet.ComputeChepMetrics(pallets).Balance,
		OcorrenciasAbertas:   abertas,
		TotalUsers:           len(s.data.Users()),
		DailyActivity:        dailyActivity(ledg, pallets),
	}
}

// balanceInRolls converte o saldo em kg para rolos inteiros (piso).
func balanceInRolls(balanceKg decimal.Decimal) int64 {
	return balanceKg.Div(decimal.NewFromInt(rollWeightKg)).Floor().IntPart()
}

// currentStockValue valor corrente do estoque: o último ponto da série de
// valorização (já truncado em zero), ou 0 com razão vazio.
func currentStockValue(ledg []entity.Transaction) decimal.Decimal {
	series := ledger.StockValueSeries(ledg)
	if len(series) == 0 {
		return decimal.Zero
	}
	return series[len(series)-1].Value
}

// percentShare fração em percentual com uma casa ("53.8%"); "0%" sem total.
func percentShare(part, total int) string {
	if total == 0 {
		return "0%"
	}
	share := decimal.NewFromInt(int64(part) * 100).Div(decimal.NewFromInt(int64(total)))
	return share.StringFixed(1) + "%"
}

// dailyActivity conta registros de filme e de paletes por dia, em ordem
// cronológica, limitado aos 30 dias mais recentes com atividade.
func dailyActivity(ledg []entity.Transaction, pallets []entity.PalletTransaction) []DayActivity {
	type bucket struct {
		day      time.Time
		activity DayActivity
	}
	buckets := map[string]*bucket{}
	get := func(date string) *bucket {
		d := ledger.ParseDate(date)
		label := d.Format("02/01/2006")
		b, ok := buckets[label]
		if !ok {
			b = &bucket{day: d, activity: DayActivity{Date: label}}
			buckets[label] = b
		}
		return b
	}

	for _, t := range ledg {
		get(t.Date).activity.Film++
	}
	for _, p := range pallets {
		get(p.Date).activity.Pallets++
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].day.Before(ordered[j].day) })
	if len(ordered) > 30 {
		ordered = ordered[len(ordered)-30:]
	}

	out := make([]DayActivity, 0, len(ordered))
	for _, b := range ordered {
		out = append(out, b.activity)
	}
	return out
}
