package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/application/ports"
	"github.com/logmam/logmam-api/internal/domain/entity"
)

// assistantOperator nome gravado como conferente nas movimentações criadas
// por voz/texto.
const assistantOperator = "Verônica AI"

// toolDeclarations as ferramentas expostas ao modelo. Os esquemas espelham os
// formulários do painel; campos omitidos recebem defaults na execução.
func toolDeclarations() []ports.Tool {
	str := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	num := func(desc string) map[string]any {
		return map[string]any{"type": "number", "description": desc}
	}

	return []ports.Tool{
		{
			Name: "createStretchFilmMovement",
			Description: "Cria uma nova movimentação de filme stretch no sistema de logística. " +
				"Use para entradas, saídas, ajustes ou devoluções de material.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"operation":    str("Tipo de operação (ENTRADA, SAÍDA, AJUSTE, DEVOLUÇÃO)."),
					"quantity":     num("A quantidade de material em kg para a movimentação."),
					"invoice":      str("Número da nota fiscal, se aplicável."),
					"observations": str("Quaisquer observações adicionais sobre a movimentação."),
				},
				"required": []string{"operation", "quantity"},
			},
		},
		{
			Name: "deleteStretchFilmMovement",
			Description: "Apaga uma movimentação de filme stretch existente. É necessário o número " +
				"da nota fiscal ou uma data e tipo de operação para identificar a movimentação.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"invoice":   str("Número da nota fiscal da movimentação a ser apagada."),
					"date":      str("Data da movimentação a ser apagada, no formato YYYY-MM-DD."),
					"operation": str("Tipo de operação (ENTRADA, SAÍDA, AJUSTE, DEVOLUÇÃO) da movimentação."),
				},
			},
		},
		{
			Name: "clearAllStretchFilmData",
			Description: "Apaga todas as movimentações de filme stretch registradas no histórico. " +
				"Deve ser usado com cautela, pois limpará todos os dados.",
		},
		{
			Name:        "createPalletMovement",
			Description: "Cria uma nova movimentação de palete no sistema de logística.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"operation":    str("Tipo de operação (ENTRADA, SAÍDA, DEVOLUÇÃO, AJUSTE)."),
					"date":         str("Data da movimentação no formato YYYY-MM-DD."),
					"invoice":      str("Número da nota fiscal, se aplicável."),
					"pbrInput":     num("Quantidade de paletes PBR de entrada."),
					"oneWay":       num("Quantidade de paletes One Way."),
					"pbrBroken":    num("Quantidade de paletes PBR quebrados."),
					"chepInput":    num("Quantidade de paletes CHEP de entrada."),
					"chepBroken":   num("Quantidade de paletes CHEP quebrados."),
					"output":       num("Quantidade de paletes de saída."),
					"returned":     num("Quantidade de paletes retornados."),
					"origin":       str("Origem ou destino da movimentação."),
					"plate":        str("Placa do veículo."),
					"driver":       str("Nome do motorista."),
					"client":       str("Nome do cliente."),
					"profile":      str("Perfil da movimentação (ATACADO, VAREJO, CROSS, DEVOLUÇÃO)."),
					"cte":          str("Número do CTE."),
					"checker":      str("Nome do conferente."),
					"startTime":    str("Hora de início da operação (HH:mm)."),
					"endTime":      str("Hora de fim da operação (HH:mm)."),
					"bonus":        str("Informação de bônus."),
					"observations": str("Observações adicionais."),
				},
				"required": []string{"operation"},
			},
		},
		{
			Name: "deletePalletMovement",
			Description: "Apaga uma movimentação de palete existente. É necessário o número da nota " +
				"fiscal ou uma data e tipo de operação para identificar a movimentação.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"invoice":   str("Número da nota fiscal da movimentação de palete a ser apagada."),
					"date":      str("Data da movimentação a ser apagada, no formato YYYY-MM-DD."),
					"operation": str("Tipo de operação (ENTRADA, SAÍDA, DEVOLUÇÃO, AJUSTE) da movimentação."),
				},
			},
		},
		{
			Name: "clearAllPalletData",
			Description: "Apaga todas as movimentações de paletes registradas no histórico. " +
				"Deve ser usado com cautela, pois limpará todos os dados.",
		},
		{
			Name: "generateCreativeText",
			Description: "Gera conteúdo textual criativo como introduções de filmes, letras de músicas, " +
				"histórias, piadas, poemas, roteiros ou textos gerais sobre um tópico específico.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt":    str("O tópico ou tema para o qual gerar o texto."),
					"type":      str("O tipo de conteúdo criativo a ser gerado."),
					"wordLimit": num("Limite de palavras para o texto gerado."),
				},
				"required": []string{"prompt", "type"},
			},
		},
		{
			Name:        "addUser",
			Description: "Adiciona um novo usuário ao sistema com nome, perfil e senha.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":     str("O nome completo do novo usuário."),
					"role":     str("O perfil do usuário (ex: Admin, Operador, Visualizador)."),
					"password": str("A senha para o novo usuário."),
				},
				"required": []string{"name", "role", "password"},
			},
		},
		{
			Name:        "deleteUser",
			Description: "Apaga um usuário existente do sistema. É necessário o nome do usuário para identificá-lo.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"userName": str("O nome completo do usuário a ser apagado."),
				},
				"required": []string{"userName"},
			},
		},
	}
}

// execute despacha uma invocação do modelo para o caso de uso correspondente.
// O retorno é sempre texto pt-BR devolvido ao modelo como functionResponse.
func (s *Service) execute(ctx context.Context, actor mutation.Actor, call ports.FunctionCall) string {
	switch call.Name {
	case "createStretchFilmMovement":
		return s.createStretch(ctx, actor, call.Args)
	case "deleteStretchFilmMovement":
		return s.deleteStretch(ctx, actor, call.Args)
	case "clearAllStretchFilmData":
		if _, err := s.mutations.ClearTransactions(ctx, actor, true); err != nil {
			return "Erro ao apagar o histórico de filme stretch: " + err.Error()
		}
		return "Todos os dados do histórico de filme stretch foram apagados conforme solicitado."
	case "createPalletMovement":
		return s.createPallet(ctx, actor, call.Args)
	case "deletePalletMovement":
		return s.deletePallet(ctx, actor, call.Args)
	case "clearAllPalletData":
		if _, err := s.mutations.ClearPallets(ctx, actor, true); err != nil {
			return "Erro ao apagar o histórico de paletes: " + err.Error()
		}
		return "Todos os dados do histórico de paletes foram apagados conforme solicitado."
	case "generateCreativeText":
		return s.creativeText(ctx, call.Args)
	case "addUser":
		return s.addUser(ctx, actor, call.Args)
	case "deleteUser":
		return s.deleteUser(ctx, actor, call.Args)
	}
	return fmt.Sprintf("Função %s não reconhecida.", call.Name)
}

func (s *Service) createStretch(ctx context.Context, actor mutation.Actor, args map[string]any) string {
	operation := argString(args, "operation")
	quantity := argDecimal(args, "quantity")

	t := entity.Transaction{
		Date:         time.Now().Format("2006-01-02"),
		Operation:    operation,
		Invoice:      argString(args, "invoice"),
		Observations: argString(args, "observations"),
		Conferente:   assistantOperator,
	}
	switch operation {
	case entity.OperationEntrada, entity.OperationAjuste:
		t.Input = quantity
	case entity.OperationSaida, entity.OperationDevolucao:
		t.Output = quantity
	}

	if _, _, err := s.mutations.CreateTransaction(ctx, actor, t); err != nil {
		return "Erro ao registrar a movimentação: " + err.Error()
	}
	return fmt.Sprintf("Movimentação de %s de %s kg de filme stretch registrada com sucesso.",
		operation, quantity.String())
}

func (s *Service) deleteStretch(ctx context.Context, actor mutation.Actor, args map[string]any) string {
	invoice := argString(args, "invoice")
	date := argString(args, "date")
	operation := argString(args, "operation")
	if invoice == "" && (date == "" || operation == "") {
		return "Por favor, forneça o número da nota fiscal ou a data e o tipo de operação " +
			"para apagar uma movimentação de filme stretch."
	}

	t, ok := s.mutations.FindTransactionByRef(invoice, date, operation)
	if !ok {
		return "Nenhuma movimentação de filme stretch encontrada com esses dados."
	}
	if _, err := s.mutations.DeleteTransaction(ctx, actor, t.ID, true); err != nil {
		return "Erro ao apagar a movimentação: " + err.Error()
	}
	return fmt.Sprintf("Movimentação de %s em %s apagada com sucesso.", t.Operation, t.Date)
}

func (s *Service) createPallet(ctx context.Context, actor mutation.Actor, args map[string]any) string {
	t := entity.PalletTransaction{
		Date:         argStringDefault(args, "date", time.Now().Format("2006-01-02")),
		Operation:    argStringDefault(args, "operation", entity.PalletOperationEntrada),
		Invoice:      argString(args, "invoice"),
		PbrInput:     argDecimal(args, "pbrInput"),
		OneWay:       argDecimal(args, "oneWay"),
		PbrBroken:    argDecimal(args, "pbrBroken"),
		ChepInput:    argDecimal(args, "chepInput"),
		ChepBroken:   argDecimal(args, "chepBroken"),
		Output:       argDecimal(args, "output"),
		Returned:     argDecimal(args, "returned"),
		Origin:       argString(args, "origin"),
		Plate:        argStringDefault(args, "plate", "N/A"),
		Driver:       argStringDefault(args, "driver", "Desconhecido"),
		Client:       argStringDefault(args, "client", "Desconhecido"),
		Profile:      argStringDefault(args, "profile", entity.PalletProfileAtacado),
		CTE:          argString(args, "cte"),
		Checker:      argStringDefault(args, "checker", assistantOperator),
		StartTime:    argStringDefault(args, "startTime", "08:00"),
		EndTime:      argStringDefault(args, "endTime", "09:00"),
		Bonus:        argString(args, "bonus"),
		Observations: argString(args, "observations"),
	}

	total := t.PbrInput.Add(t.OneWay).Add(t.PbrBroken).Add(t.ChepInput).
		Add(t.ChepBroken).Add(t.Output).Add(t.Returned)
	if !total.IsPositive() {
		return "Nenhuma quantidade de palete especificada para a movimentação. Por favor, forneça as quantidades."
	}

	if _, _, err := s.mutations.CreatePallet(ctx, actor, t); err != nil {
		return "Erro ao registrar a movimentação de palete: " + err.Error()
	}
	return fmt.Sprintf("Movimentação de palete de %s registrada com sucesso.", t.Operation)
}

func (s *Service) deletePallet(ctx context.Context, actor mutation.Actor, args map[string]any) string {
	invoice := argString(args, "invoice")
	date := argString(args, "date")
	operation := argString(args, "operation")
	if invoice == "" && (date == "" || operation == "") {
		return "Por favor, forneça o número da nota fiscal ou a data e o tipo de operação " +
			"para apagar uma movimentação de palete."
	}

	t, ok := s.mutations.FindPalletByRef("", invoice, date, operation)
	if !ok {
		return "Nenhuma movimentação de palete encontrada com esses dados."
	}
	if _, err := s.mutations.DeletePallet(ctx, actor, t.ID, true); err != nil {
		return "Erro ao apagar a movimentação de palete: " + err.Error()
	}
	return fmt.Sprintf("Movimentação de palete de %s em %s apagada com sucesso.", t.Operation, t.Date)
}

func (s *Service) creativeText(ctx context.Context, args map[string]any) string {
	prompt := argString(args, "prompt")
	kind := argString(args, "type")
	full := fmt.Sprintf("Gere %s em português sobre: %s", kind, prompt)
	if limit := argDecimal(args, "wordLimit"); limit.IsPositive() {
		full += fmt.Sprintf(" (máximo de %s palavras)", limit.String())
	}

	text, err := s.llm.GenerateText(ctx, full)
	if err != nil {
		return "Erro ao gerar o texto: " + err.Error()
	}
	return text
}

func (s *Service) addUser(ctx context.Context, actor mutation.Actor, args map[string]any) string {
	name := argString(args, "name")
	role := argString(args, "role")
	password := argString(args, "password")
	if password == "" {
		return "Por favor, forneça uma senha para o novo usuário."
	}

	picture := "https://i.pravatar.cc/40?u=" + strings.ReplaceAll(name, " ", "")
	u, _, err := s.mutations.AddUser(ctx, actor, name, role, password, picture)
	if err != nil {
		return "Erro ao adicionar o usuário: " + err.Error()
	}
	return fmt.Sprintf("Usuário %s com perfil %s adicionado com sucesso.", u.Name, u.Role)
}

func (s *Service) deleteUser(ctx context.Context, actor mutation.Actor, args map[string]any) string {
	userName := argString(args, "userName")
	u, ok := s.mutations.FindUserByName(userName)
	if !ok {
		return fmt.Sprintf("Usuário %q não encontrado. Por favor, verifique o nome.", userName)
	}
	if _, err := s.mutations.DeleteUser(ctx, actor, u.ID, true); err != nil {
		return "Erro ao apagar o usuário: " + err.Error()
	}
	return fmt.Sprintf("Usuário %s apagado com sucesso.", u.Name)
}

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argStringDefault(args map[string]any, key, def string) string {
	if v := argString(args, key); v != "" {
		return v
	}
	return def
}

// argDecimal converte argumento numérico do modelo (float64 no JSON) para
// decimal; strings numéricas também são aceitas.
func argDecimal(args map[string]any, key string) decimal.Decimal {
	switch v := args[key].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.Zero
}
