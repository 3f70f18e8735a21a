package stock

import "errors"

// Taxonomia de erros do ledger. Os handlers HTTP convertem via errors.Is:
// validação -> 400, produto inexistente -> 404, restrição do banco -> 409.
var (
	ErrValidation      = errors.New("dados de estoque inválidos")
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrConstraint      = errors.New("violação de restrição no estoque")
)
