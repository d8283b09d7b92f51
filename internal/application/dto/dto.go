// Package dto define os contratos de entrada e saída da API HTTP.
// Os registros de movimento (transações, paletes, ocorrências) trafegam com o
// mesmo formato JSON das entidades, que já é o formato de armazenamento; os
// DTOs aqui cobrem o restante da superfície.
package dto

import "github.com/logmam/logmam-api/internal/domain/entity"

// ErrorResponse resposta padronizada de erro.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// LoginRequest credenciais de login (nome case-insensitive).
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// SessionResponse sessão autenticada (login ou entrada por compartilhamento).
type SessionResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// ShareEnterRequest entrada no modo de visualização por link. Carrega os
// parâmetros do próprio link: tela de destino e filtros das telas de histórico.
type ShareEnterRequest struct {
	ShareID    string `json:"share_id"`
	View       string `json:"view"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Operation  string `json:"operation"`
	Conferente string `json:"conferente"`
	Client     string `json:"client"`
	Profile    string `json:"profile"`
}

// ShareLinkResponse link de compartilhamento montado.
type ShareLinkResponse struct {
	URL string `json:"url"`
}

// UserRequest criação/edição de conta. Password vazio em edição mantém a
// senha atual.
type UserRequest struct {
	Name           string `json:"name"`
	Role           string `json:"role"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profilePicture"`
}

// ChatRequest mensagem para a assistente.
type ChatRequest struct {
	Message string `json:"message"`
}

// NotificationsResponse ticker de notificações recentes.
type NotificationsResponse struct {
	Notifications []string `json:"notifications"`
}
