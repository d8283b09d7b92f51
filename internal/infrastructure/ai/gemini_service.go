// Package ai implementa o port LLMService chamando a API REST do Google
// Gemini com function calling. Usa apenas net/http: sem SDK externo.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/logmam/logmam-api/internal/application/ports"
)

var _ ports.LLMService = (*GeminiService)(nil)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

// GeminiService adaptador REST do Gemini.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService constrói o adaptador. model costuma ser "gemini-2.0-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de rede; o caller também limita via ctx
		},
	}
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	Tools             []geminiTools   `json:"tools,omitempty"`
	GenerationConfig  *genConfig      `json:"generationConfig,omitempty"`
}

type geminiTools struct {
	FunctionDeclarations []ports.Tool `json:"functionDeclarations"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *geminiFnCall     `json:"functionCall,omitempty"`
	FunctionResponse *geminiFnResponse `json:"functionResponse,omitempty"`
}

type geminiFnCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type geminiFnResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

type genConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Chat envia a conversa com ferramentas e devolve texto e/ou invocações.
func (s *GeminiService) Chat(ctx context.Context, req ports.ChatRequest) (*ports.ChatReply, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY não configurado")
	}

	payload := geminiRequest{
		Contents: toContents(req.Messages),
		GenerationConfig: &genConfig{
			Temperature:     0.4,
			MaxOutputTokens: 1024,
		},
	}
	if req.System != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	if len(req.Tools) > 0 {
		payload.Tools = []geminiTools{{FunctionDeclarations: req.Tools}}
	}

	gemResp, err := s.call(ctx, payload)
	if err != nil {
		return nil, err
	}
	if len(gemResp.Candidates) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolveu resposta vazia")
	}

	reply := &ports.ChatReply{}
	for _, part := range gemResp.Candidates[0].Content.Parts {
		if part.Text != "" {
			reply.Text += part.Text
		}
		if part.FunctionCall != nil {
			reply.Calls = append(reply.Calls, ports.FunctionCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}
	reply.Text = strings.TrimSpace(reply.Text)
	return reply, nil
}

// GenerateText geração de texto livre, sem ferramentas.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY não configurado")
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &genConfig{
			Temperature:     0.9, // conteúdo criativo pede variação
			MaxOutputTokens: 2048,
		},
	}
	gemResp, err := s.call(ctx, payload)
	if err != nil {
		return "", err
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("AI: Gemini devolveu resposta vazia")
	}
	return strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text), nil
}

func (s *GeminiService) call(ctx context.Context, payload geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: criar HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout ou cancelamento: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: chamada HTTP falhou: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini erro %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar resposta Gemini: %w", err)
	}
	return &gemResp, nil
}

// toContents converte os turnos neutros da aplicação para o formato Gemini.
// Resultados de ferramenta viajam como functionResponse em turno "user".
func toContents(messages []ports.Message) []geminiContent {
	contents := make([]geminiContent, 0, len(messages))
	for _, m := range messages {
		switch {
		case m.Response != nil:
			contents = append(contents, geminiContent{
				Role: "user",
				Parts: []geminiPart{{FunctionResponse: &geminiFnResponse{
					Name:     m.Response.Name,
					Response: map[string]any{"result": m.Response.Result},
				}}},
			})
		case m.Call != nil:
			contents = append(contents, geminiContent{
				Role: "model",
				Parts: []geminiPart{{FunctionCall: &geminiFnCall{
					Name: m.Call.Name,
					Args: m.Call.Args,
				}}},
			})
		default:
			role := m.Role
			if role == "" {
				role = "user"
			}
			contents = append(contents, geminiContent{
				Role:  role,
				Parts: []geminiPart{{Text: m.Text}},
			})
		}
	}
	return contents
}
