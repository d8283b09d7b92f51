// Package ports define os ports de saída da camada de aplicação.
package ports

import "context"

// Tool declaração de função exposta ao modelo (esquema no formato
// OpenAPI-like aceito pelo Gemini).
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// FunctionCall invocação de ferramenta pedida pelo modelo.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// FunctionResult resultado de uma ferramenta executada, devolvido ao modelo.
type FunctionResult struct {
	Name   string `json:"name"`
	Result string `json:"result"`
}

// Message um turno da conversa. Role é "user", "model" ou "tool"; turnos de
// modelo podem carregar uma invocação de ferramenta e turnos "tool" carregam
// o resultado correspondente.
type Message struct {
	Role     string
	Text     string
	Call     *FunctionCall
	Response *FunctionResult
}

// ChatRequest conversa completa enviada ao modelo.
type ChatRequest struct {
	System   string
	Messages []Message
	Tools    []Tool
}

// ChatReply resposta do modelo: texto livre e/ou invocações de ferramenta.
type ChatReply struct {
	Text  string
	Calls []FunctionCall
}

// LLMService port de saída para o modelo de linguagem. Qualquer adaptador
// (Gemini, mock de teste) implementa este contrato; a aplicação só conhece a
// interface. O contexto deve carregar timeout: chamadas externas não podem
// segurar o ciclo de conversa.
type LLMService interface {
	// Chat envia a conversa com as ferramentas disponíveis e devolve o
	// próximo turno do modelo.
	Chat(ctx context.Context, req ChatRequest) (*ChatReply, error)

	// GenerateText geração de texto livre sem ferramentas (conteúdo criativo).
	GenerateText(ctx context.Context, prompt string) (string, error)
}
