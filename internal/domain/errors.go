package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound        = errors.New("recurso não encontrado")
	ErrUserNotFound    = errors.New("usuário não encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("não autorizado")
	ErrForbidden       = errors.New("acesso negado")
	ErrGuestReadOnly   = errors.New("acesso de convidado é somente leitura")
	ErrConfirmRequired = errors.New("operação destrutiva requer confirmação")
	ErrInvalidShare    = errors.New("token de compartilhamento inválido")
)
