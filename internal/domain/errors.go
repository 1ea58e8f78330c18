package domain

import "errors"

// Erros de domínio (sem dependências externas). As camadas superiores
// classificam com errors.Is; a camada de persistência traduz violações de
// constraint para os sentinelas de duplicidade correspondentes.
var (
	ErrValidation              = errors.New("entrada inválida")
	ErrCrossTenant             = errors.New("entidades pertencem a organizações diferentes")
	ErrIncompatibleType        = errors.New("tipo de dono não pode receber este tipo de documento")
	ErrDuplicateActiveDocument = errors.New("dono já possui documento ativo deste tipo")
	ErrDuplicateSlug           = errors.New("slug já registrado")
	ErrDuplicateEmail          = errors.New("email já registrado na organização")
	ErrDuplicateLogin          = errors.New("login já registrado na organização")
	ErrDuplicateName           = errors.New("nome já registrado na organização")
	ErrDuplicateStorageKey     = errors.New("chave de armazenamento já registrada na organização")
	ErrNotFound                = errors.New("recurso não encontrado")
	ErrConcurrency             = errors.New("conflito de concorrência: recarregue e tente novamente")
)
