package model

// TransactionType separa lançamentos de entrada e saída.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Category é o conjunto fechado de categorias de despesa e receita.
type Category string

const (
	// Despesas
	CategoryFixedBills      Category = "fixed_bills"
	CategoryFood            Category = "food"
	CategoryTransport       Category = "transport"
	CategoryHealth          Category = "health"
	CategoryLifestyle       Category = "lifestyle"
	CategoryVaultWithdrawal Category = "vault_withdrawal"

	// Receitas
	CategorySalary           Category = "salary"
	CategoryExtra            Category = "extra"
	CategoryExtraValues      Category = "extra_values"
	CategoryFoodVoucher      Category = "food_voucher"
	CategoryTransportVoucher Category = "transport_voucher"
)

// PaymentType determina qual sub-saldo uma despesa debita.
type PaymentType string

const (
	PaymentDebit            PaymentType = "debit"
	PaymentCredit           PaymentType = "credit"
	PaymentFoodVoucher      PaymentType = "food_voucher"
	PaymentTransportVoucher PaymentType = "transport_voucher"
)

// DestinationType controla se uma retirada do cofre volta a contar como
// receita do mês ou é usada diretamente.
type DestinationType string

const (
	DestinationIncomeTransfer DestinationType = "INCOME_TRANSFER"
	DestinationDirectUse      DestinationType = "DIRECT_USE"
)

var expenseCategories = map[Category]bool{
	CategoryFixedBills:      true,
	CategoryFood:            true,
	CategoryTransport:       true,
	CategoryHealth:          true,
	CategoryLifestyle:       true,
	CategoryVaultWithdrawal: true,
}

var incomeCategories = map[Category]bool{
	CategorySalary:           true,
	CategoryExtra:            true,
	CategoryExtraValues:      true,
	CategoryFoodVoucher:      true,
	CategoryTransportVoucher: true,
}

var paymentTypes = map[PaymentType]bool{
	PaymentDebit:            true,
	PaymentCredit:           true,
	PaymentFoodVoucher:      true,
	PaymentTransportVoucher: true,
}

// ValidFor informa se a categoria pertence ao tipo de lançamento dado.
func (c Category) ValidFor(t TransactionType) bool {
	switch t {
	case TypeIncome:
		return incomeCategories[c]
	case TypeExpense:
		return expenseCategories[c]
	default:
		return false
	}
}

// Label retorna o rótulo de exibição da categoria.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

var categoryLabels = map[Category]string{
	CategoryFixedBills:       "💡 Contas Fixas",
	CategoryFood:             "🍽️ Alimentação",
	CategoryTransport:        "🚗 Transporte",
	CategoryHealth:           "🏥 Saúde",
	CategoryLifestyle:        "🎮 Lazer / Estilo de Vida",
	CategoryVaultWithdrawal:  "🔓 Retirada do Cofre",
	CategorySalary:           "💰 Salário",
	CategoryExtra:            "💵 Ganhos Extras",
	CategoryExtraValues:      "➕ Valores Extras",
	CategoryFoodVoucher:      "🍴 Ticket Alimentação",
	CategoryTransportVoucher: "🚌 Ticket Mobilidade",
}

// Label retorna o rótulo de exibição da forma de pagamento.
func (p PaymentType) Label() string {
	switch p {
	case PaymentDebit:
		return "Débito"
	case PaymentCredit:
		return "Cartão de Crédito"
	case PaymentFoodVoucher:
		return "Ticket Alimentação"
	case PaymentTransportVoucher:
		return "Ticket Mobilidade"
	default:
		return string(p)
	}
}
