package service

import "errors"

// Erros de no-op lógico: a operação é recusada antes de qualquer escrita.
// Todos são recuperáveis pelo chamador corrigindo a entrada.
var (
	ErrTransactionNotFound = errors.New("lançamento não encontrado")
	ErrInsufficientVault   = errors.New("saldo do cofre insuficiente")
	ErrNoCreditCard        = errors.New("nenhum cartão configurado")
	ErrRecurringNotFound   = errors.New("conta recorrente não encontrada")
	ErrRecurringPaid       = errors.New("conta recorrente já lançada neste mês")
	ErrAmountRequired      = errors.New("valor obrigatório para conta variável")
)
