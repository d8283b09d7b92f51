package entity

// User é um operador/conta do sistema. Name é a chave de login
// (comparação case-insensitive). PasswordHash guarda bcrypt; a senha em claro
// nunca é persistida.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"` // texto livre (ex.: Admin, Operador)
	PasswordHash   string `json:"passwordHash"`
	ProfilePicture string `json:"profilePicture"`
}

// GuestUserID identificador fixo do usuário sintético de compartilhamento.
const GuestUserID = "guest"

// GuestUser devolve o usuário de visualização criado por link de
// compartilhamento. Não é persistido e não possui senha.
func GuestUser() User {
	return User{
		ID:             GuestUserID,
		Name:           "Convidado",
		Role:           "Visualização",
		ProfilePicture: "https://i.pravatar.cc/40?u=guest",
	}
}
