// Package assistant implementa a Verônica, a assistente de voz/texto do
// painel. O modelo conversa em pt-BR e opera o sistema por function calling;
// cada ferramenta executa exatamente o mesmo caso de uso de mutação da API,
// com o mesmo ator e as mesmas validações.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/logmam/logmam-api/internal/application/mutation"
	"github.com/logmam/logmam-api/internal/application/ports"
	"github.com/logmam/logmam-api/internal/domain"
	"github.com/logmam/logmam-api/pkg/logger"
)

const systemPrompt = `Você é a Verônica, uma assistente de IA amigável, calma, espontânea e humana, ` +
	`especializada em gerenciamento de logística (filme stretch e paletes) e criação de conteúdo. ` +
	`Converse em português de forma natural e prestativa. Você pode adicionar e apagar movimentações ` +
	`específicas, apagar todos os dados de filme stretch e de paletes, cadastrar e excluir usuários, ` +
	`preenchendo automaticamente detalhes com base nas instruções. Seja concisa e direta, mas sempre ` +
	`mantenha um tom natural e prestativo.`

// chatTimeout limite da conversa inteira, incluindo execução de ferramentas.
const chatTimeout = 10 * time.Second

// maxToolRounds limite de idas e voltas de function calling por mensagem.
const maxToolRounds = 4

// Answer resposta da assistente: texto final e o rastro das ferramentas
// executadas nesta mensagem.
type Answer struct {
	Reply   string   `json:"reply"`
	Actions []string `json:"actions,omitempty"`
}

// Service orquestra a conversa com o modelo e a execução das ferramentas.
type Service struct {
	mutations *mutation.Service
	llm       ports.LLMService
	log       *logger.Logger
}

// NewService constrói a assistente.
func NewService(mutations *mutation.Service, llm ports.LLMService, log *logger.Logger) *Service {
	return &Service{mutations: mutations, llm: llm, log: log}
}

// Chat processa uma mensagem do usuário. Convidados não conversam com a
// assistente: toda ferramenta dela é uma escrita em potencial.
func (s *Service) Chat(ctx context.Context, actor mutation.Actor, message string) (Answer, error) {
	if actor.Guest {
		return Answer{}, domain.ErrGuestReadOnly
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	history := []ports.Message{{Role: "user", Text: message}}
	var actions []string

	for round := 0; round <= maxToolRounds; round++ {
		reply, err := s.llm.Chat(ctx, ports.ChatRequest{
			System:   systemPrompt,
			Messages: history,
			Tools:    toolDeclarations(),
		})
		if err != nil {
			return Answer{}, fmt.Errorf("assistente: %w", err)
		}

		if len(reply.Calls) == 0 {
			return Answer{Reply: reply.Text, Actions: actions}, nil
		}

		for _, call := range reply.Calls {
			result := s.execute(ctx, actor, call)
			s.log.Info().
				Str("ferramenta", call.Name).
				Str("resultado", result).
				Msg("assistente executou ferramenta")
			actions = append(actions, result)

			call := call
			history = append(history,
				ports.Message{Role: "model", Call: &call},
				ports.Message{Role: "tool", Response: &ports.FunctionResult{Name: call.Name, Result: result}},
			)
		}
	}

	// O modelo não concluiu dentro do limite de rodadas; devolve o rastro.
	return Answer{
		Reply:   "Executei as ações solicitadas.",
		Actions: actions,
	}, nil
}
