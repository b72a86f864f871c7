package service

import "errors"

// Sentinel errors shared by every service. Handlers translate them into HTTP
// status codes with errors.Is; the wrapped message is what the client sees.
var (
	// ErrNaoEncontrado maps to 404.
	ErrNaoEncontrado = errors.New("não encontrado")
	// ErrSemPermissao maps to 403.
	ErrSemPermissao = errors.New("sem permissão para esta operação")
	// ErrConflito maps to 409 (referential guards, duplicate email).
	ErrConflito = errors.New("conflito")
	// ErrInvalido maps to 400 (domain validation beyond struct tags).
	ErrInvalido = errors.New("dados inválidos")
)
