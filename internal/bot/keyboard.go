package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("💰 Nova Entrada"),
			tgbotapi.NewKeyboardButton("💸 Nova Saída"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📊 Resumo do Mês"),
			tgbotapi.NewKeyboardButton("📋 Contas Fixas"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("🔒 Cofre"),
			tgbotapi.NewKeyboardButton("💳 Cartão"),
		),
	)
}

var expenseCategoryButtons = []model.Category{
	model.CategoryFixedBills,
	model.CategoryFood,
	model.CategoryTransport,
	model.CategoryHealth,
	model.CategoryLifestyle,
}

var incomeCategoryButtons = []model.Category{
	model.CategorySalary,
	model.CategoryExtraValues,
	model.CategoryFoodVoucher,
	model.CategoryTransportVoucher,
}

func (b *Bot) getCategoriesKeyboard(transactionType model.TransactionType) tgbotapi.InlineKeyboardMarkup {
	categories := expenseCategoryButtons
	if transactionType == model.TypeIncome {
		categories = incomeCategoryButtons
	}

	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, category := range categories {
		buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				category.Label(),
				"category_"+string(category),
			),
		})
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) getPaymentTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💵 Débito", "payment_debit"),
			tgbotapi.NewInlineKeyboardButtonData("💳 Crédito", "payment_credit"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍴 Ticket Alimentação", "payment_food_voucher"),
			tgbotapi.NewInlineKeyboardButtonData("🚌 Ticket Mobilidade", "payment_transport_voucher"),
		),
	)
}

func (b *Bot) getRecurringKeyboard(statuses []service.RecurringStatus) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, status := range statuses {
		if status.Paid {
			continue
		}
		buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				"Lançar "+status.Expense.Name,
				"recurring_"+status.Expense.ID,
			),
		})
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) getInvoiceKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Pagar com Salário", "invoice_salary"),
			tgbotapi.NewInlineKeyboardButtonData("🔒 Pagar com Cofre", "invoice_vault"),
		),
	)
}
