package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarUsuarioRequest struct {
	Nome   string `json:"nome"   validate:"required"`
	Email  string `json:"email"  validate:"required,email"`
	Senha  string `json:"senha"  validate:"required"`
	Funcao string `json:"funcao" validate:"required,oneof=admin moderator employee"`
}

// AtualizarUsuarioRequest applies only the supplied fields. A blank Senha
// leaves the stored credential untouched.
type AtualizarUsuarioRequest struct {
	Nome   *string `json:"nome"`
	Email  *string `json:"email"  validate:"omitempty,email"`
	Senha  *string `json:"senha"`
	Funcao *string `json:"funcao" validate:"omitempty,oneof=admin moderator employee"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// UsuarioResponse never carries the stored credential.
type UsuarioResponse struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Funcao    string `json:"funcao"`
	CreatedAt string `json:"created_at"`
}
