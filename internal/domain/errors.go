package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound       = errors.New("recurso não encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("não autorizado")
	ErrForbidden      = errors.New("acesso negado")
	ErrConflict       = errors.New("conflito com o estado atual")
	ErrProductDeleted = errors.New("produto excluído")
)

// DateParseError indica uma data de movimentação que não pôde ser interpretada.
// O registro é rejeitado na ingestão e o erro vai para o log de auditoria;
// não existe fallback para "agora".
type DateParseError struct {
	Raw string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("data de movimentação inválida: %q", e.Raw)
}
