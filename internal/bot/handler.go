package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/SirArucard/pocket-hug-finance/internal/model"
	"github.com/SirArucard/pocket-hug-finance/internal/service"
)

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "resumo":
		b.handleOverview(message)
	case "extrato":
		b.handleStatement(message)
	case "contas":
		b.handleRecurring(message)
	case "cofre":
		b.handleVault(message)
	case "cartao":
		b.handleCard(message)
	case "depositar":
		b.handleDeposit(message)
	case "retirar":
		b.handleWithdraw(message, model.DestinationDirectUse)
	case "resgatar":
		b.handleWithdraw(message, model.DestinationIncomeTransfer)
	case "reserva":
		b.handleReserve(message)
	case "remover":
		b.handleRemove(message)
	}

	return nil
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	// Garante o cartão padrão no primeiro acesso
	if err := b.service.EnsureDefaultCard(context.Background(), message.From.ID); err != nil {
		b.sendErrorMessage(message.Chat.ID, "Erro ao preparar sua conta")
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID,
		"Bem-vindo ao Meu Financeiro! 💰\n\n"+
			"Eu acompanho seu orçamento do mês: entradas, saídas, fatura do cartão, "+
			"cofre de reserva e tickets de benefício.\n\n"+
			"Comandos úteis:\n"+
			"/resumo — retrato do mês\n"+
			"/extrato — últimos lançamentos\n"+
			"/contas — contas fixas do mês\n"+
			"/cofre — saldo da reserva\n"+
			"/cartao — fatura e limite\n"+
			"/reserva 10 — percentual da reserva\n\n"+
			"Escolha uma ação:")
	msg.ReplyMarkup = b.getMainKeyboard()
	b.api.Send(msg)
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	switch message.Text {
	case "💰 Nova Entrada":
		b.beginTransaction(message, model.TypeIncome)
		return nil
	case "💸 Nova Saída":
		b.beginTransaction(message, model.TypeExpense)
		return nil
	case "📊 Resumo do Mês":
		b.handleOverview(message)
		return nil
	case "📋 Contas Fixas":
		b.handleRecurring(message)
		return nil
	case "🔒 Cofre":
		b.handleVault(message)
		return nil
	case "💳 Cartão":
		b.handleCard(message)
		return nil
	}

	state := b.state(message.From.ID)
	switch {
	case state.AwaitingAction == "amount":
		b.finishTransaction(message, state)
	case strings.HasPrefix(state.AwaitingAction, "recurring_"):
		b.finishRecurring(message, strings.TrimPrefix(state.AwaitingAction, "recurring_"))
	}

	return nil
}

func (b *Bot) beginTransaction(message *tgbotapi.Message, transactionType model.TransactionType) {
	b.resetState(message.From.ID)
	state := b.state(message.From.ID)
	state.TransactionType = transactionType

	msg := tgbotapi.NewMessage(message.Chat.ID, "Escolha a categoria:")
	msg.ReplyMarkup = b.getCategoriesKeyboard(transactionType)
	b.api.Send(msg)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID
	state := b.state(userID)

	switch {
	case strings.HasPrefix(callback.Data, "category_"):
		state.SelectedCategory = model.Category(strings.TrimPrefix(callback.Data, "category_"))
		if state.TransactionType == model.TypeExpense {
			msg := tgbotapi.NewMessage(chatID, "Como vai pagar?")
			msg.ReplyMarkup = b.getPaymentTypeKeyboard()
			b.api.Send(msg)
		} else {
			state.AwaitingAction = "amount"
			b.send(chatID, "Informe valor e descrição:\n1500 Salário de agosto")
		}

	case strings.HasPrefix(callback.Data, "payment_"):
		state.PaymentType = model.PaymentType(strings.TrimPrefix(callback.Data, "payment_"))
		state.AwaitingAction = "amount"
		hint := "Informe valor e descrição:\n89,90 Mercado"
		if state.PaymentType == model.PaymentCredit {
			hint += "\n\nPara parcelar, termine com xN:\n1200 Fone de ouvido x3"
		}
		b.send(chatID, hint)

	case strings.HasPrefix(callback.Data, "recurring_"):
		b.payRecurringCallback(callback, strings.TrimPrefix(callback.Data, "recurring_"))

	case strings.HasPrefix(callback.Data, "remove_"):
		id := strings.TrimPrefix(callback.Data, "remove_")
		removed, err := b.service.RemoveTransaction(context.Background(), userID, id)
		if err != nil {
			b.sendErrorMessage(chatID, describeError(err))
			break
		}
		if removed > 1 {
			b.send(chatID, fmt.Sprintf("🗑 Removido o grupo de %d parcelas", removed))
		} else {
			b.send(chatID, "🗑 Lançamento removido")
		}

	case callback.Data == "invoice_salary":
		b.payInvoiceCallback(callback, service.InvoiceFromSalary)
	case callback.Data == "invoice_vault":
		b.payInvoiceCallback(callback, service.InvoiceFromVault)
	}

	b.api.Send(tgbotapi.NewCallback(callback.ID, ""))
	return nil
}

// finishTransaction fecha o fluxo de lançamento: "valor descrição [xN]".
func (b *Bot) finishTransaction(message *tgbotapi.Message, state *UserState) {
	amount, name, installments, ok := parseAmountLine(message.Text)
	if !ok {
		b.send(message.Chat.ID, "Não entendi. Use: valor descrição\n89,90 Mercado")
		return
	}

	transaction := model.Transaction{
		Name:        name,
		Amount:      amount,
		Category:    state.SelectedCategory,
		Type:        state.TransactionType,
		PaymentType: state.PaymentType,
		Date:        message.Time().Format("2006-01-02"),
	}

	created, err := b.service.AddTransaction(context.Background(), message.From.ID, transaction, installments)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, describeError(err))
		return
	}
	b.resetState(message.From.ID)

	if len(created) > 1 {
		b.send(message.Chat.ID, fmt.Sprintf("Lançado em %d parcelas! ✅", len(created)))
		return
	}
	b.send(message.Chat.ID, "Lançamento salvo! ✅")
}

func (b *Bot) handleOverview(message *tgbotapi.Message) {
	overview, err := b.service.GetOverview(context.Background(), message.From.ID, "")
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Erro ao montar o resumo")
		return
	}

	b.send(message.Chat.ID, formatOverview(overview))

	if b.charts != nil {
		if png, err := b.charts.GenerateOverviewChart(overview); err == nil && png != nil {
			photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{Name: "resumo.png", Bytes: png})
			b.api.Send(photo)
		}
		if png, err := b.charts.GenerateDailySpendChart(overview); err == nil && png != nil {
			photo := tgbotapi.NewPhoto(message.Chat.ID, tgbotapi.FileBytes{Name: "saidas.png", Bytes: png})
			b.api.Send(photo)
		}
	}
}

func (b *Bot) handleStatement(message *tgbotapi.Message) {
	transactions, err := b.service.GetRecentTransactions(context.Background(), message.From.ID, 10)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Erro ao buscar o extrato")
		return
	}
	if len(transactions) == 0 {
		b.send(message.Chat.ID, "Nenhum lançamento ainda.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Últimos lançamentos:\n\n")
	var buttons [][]tgbotapi.InlineKeyboardButton
	for _, t := range transactions {
		sign := "+"
		if t.Type == model.TypeExpense {
			sign = "-"
		}
		sb.WriteString(fmt.Sprintf("%s %s%s  %s (%s)\n", t.Date, sign, formatCurrency(t.Amount), t.Name, t.Category.Label()))
		buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🗑 "+t.Name, "remove_"+t.ID),
		})
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, sb.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons...)
	b.api.Send(msg)
}

func (b *Bot) handleRecurring(message *tgbotapi.Message) {
	statuses, err := b.service.GetRecurringStatus(context.Background(), message.From.ID, "")
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Erro ao buscar as contas fixas")
		return
	}
	if len(statuses) == 0 {
		b.send(message.Chat.ID, "Nenhuma conta recorrente cadastrada.")
		return
	}

	paid := 0
	var sb strings.Builder
	sb.WriteString("📋 Contas Fixas do Mês\n\n")
	for _, status := range statuses {
		mark := "⭕"
		if status.Paid {
			mark = "✅"
			paid++
		}
		value := formatCurrency(status.Expense.BaseAmount)
		if status.Expense.IsVariable {
			value = "valor variável"
		}
		sb.WriteString(fmt.Sprintf("%s %s — %s\n", mark, status.Expense.Name, value))
	}
	sb.WriteString(fmt.Sprintf("\n%d/%d pagas", paid, len(statuses)))

	msg := tgbotapi.NewMessage(message.Chat.ID, sb.String())
	if keyboard := b.getRecurringKeyboard(statuses); len(keyboard.InlineKeyboard) > 0 {
		msg.ReplyMarkup = keyboard
	}
	b.api.Send(msg)
}

func (b *Bot) payRecurringCallback(callback *tgbotapi.CallbackQuery, recurringID string) {
	_, err := b.service.PayRecurring(context.Background(), callback.From.ID, recurringID, 0)
	if errors.Is(err, service.ErrAmountRequired) {
		state := b.state(callback.From.ID)
		state.AwaitingAction = "recurring_" + recurringID
		b.send(callback.Message.Chat.ID, "Qual o valor da conta este mês?")
		return
	}
	if err != nil {
		b.sendErrorMessage(callback.Message.Chat.ID, describeError(err))
		return
	}
	b.send(callback.Message.Chat.ID, "Conta lançada! ✅")
}

func (b *Bot) finishRecurring(message *tgbotapi.Message, recurringID string) {
	amount, ok := parseAmount(strings.TrimSpace(message.Text))
	if !ok {
		b.send(message.Chat.ID, "Não entendi o valor. Tente de novo:\n149,90")
		return
	}

	if _, err := b.service.PayRecurring(context.Background(), message.From.ID, recurringID, amount); err != nil {
		b.sendErrorMessage(message.Chat.ID, describeError(err))
		return
	}
	b.resetState(message.From.ID)
	b.send(message.Chat.ID, "Conta lançada! ✅")
}

func (b *Bot) handleVault(message *tgbotapi.Message) {
	overview, err := b.service.GetOverview(context.Background(), message.From.ID, "")
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Erro ao consultar o cofre")
		return
	}

	b.send(message.Chat.ID, fmt.Sprintf(
		"🔒 Cofre\n\n"+
			"Saldo total: %s\n"+
			"Depósitos no mês: +%s\n"+
			"Retiradas no mês: -%s\n\n"+
			"Use /depositar valor para guardar,\n"+
			"/retirar valor motivo para uso direto,\n"+
			"/resgatar valor motivo para voltar como renda do mês.",
		formatCurrency(overview.VaultBalance),
		formatCurrency(overview.Totals.VaultDeposits),
		formatCurrency(overview.Totals.VaultWithdrawals),
	))
}

func (b *Bot) handleDeposit(message *tgbotapi.Message) {
	amount, ok := parseAmount(strings.TrimSpace(message.CommandArguments()))
	if !ok {
		b.send(message.Chat.ID, "Use: /depositar 200")
		return
	}
	if _, err := b.service.TransferToVault(context.Background(), message.From.ID, amount); err != nil {
		b.sendErrorMessage(message.Chat.ID, describeError(err))
		return
	}
	b.send(message.Chat.ID, "Valor guardado no cofre! 🔒")
}

func (b *Bot) handleWithdraw(message *tgbotapi.Message, destination model.DestinationType) {
	parts := strings.SplitN(strings.TrimSpace(message.CommandArguments()), " ", 2)
	if len(parts) != 2 {
		b.send(message.Chat.ID, "Use: /retirar 200 conserto do carro")
		return
	}
	amount, ok := parseAmount(parts[0])
	if !ok {
		b.send(message.Chat.ID, "Valor inválido.")
		return
	}

	if _, err := b.service.WithdrawFromVault(context.Background(), message.From.ID, amount, parts[1], destination); err != nil {
		b.sendErrorMessage(message.Chat.ID, describeError(err))
		return
	}
	if destination == model.DestinationIncomeTransfer {
		b.send(message.Chat.ID, "Resgate feito: o valor entra na renda do mês. 💰")
		return
	}
	b.send(message.Chat.ID, "Retirada do cofre registrada. 🔓")
}

func (b *Bot) handleCard(message *tgbotapi.Message) {
	overview, err := b.service.GetOverview(context.Background(), message.From.ID, "")
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, "Erro ao consultar o cartão")
		return
	}
	card := overview.Card
	if card == nil {
		b.send(message.Chat.ID, "Nenhum cartão configurado. Use /start.")
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, fmt.Sprintf(
		"💳 %s\n\n"+
			"Fatura do mês: %s\n"+
			"Limite usado: %s de %s\n"+
			"Fechamento dia %d, vencimento dia %d\n"+
			"Compras a partir do dia %d caem na próxima fatura.",
		card.Name,
		formatCurrency(overview.Totals.InvoiceTotal),
		formatCurrency(card.UsedLimit),
		formatCurrency(card.Limit),
		card.ClosingDay,
		card.DueDay,
		card.BestBuyDay,
	))
	if overview.Totals.InvoiceTotal > 0 {
		msg.ReplyMarkup = b.getInvoiceKeyboard()
	}
	b.api.Send(msg)
}

func (b *Bot) payInvoiceCallback(callback *tgbotapi.CallbackQuery, source service.InvoiceSource) {
	userID := callback.From.ID
	chatID := callback.Message.Chat.ID

	overview, err := b.service.GetOverview(context.Background(), userID, "")
	if err != nil {
		b.sendErrorMessage(chatID, "Erro ao consultar a fatura")
		return
	}
	if overview.Totals.InvoiceTotal <= 0 {
		b.send(chatID, "Nada a pagar na fatura deste mês.")
		return
	}

	if _, err := b.service.PayInvoice(context.Background(), userID, overview.Totals.InvoiceTotal, source); err != nil {
		b.sendErrorMessage(chatID, describeError(err))
		return
	}
	b.send(chatID, fmt.Sprintf("Fatura de %s paga! ✅", formatCurrency(overview.Totals.InvoiceTotal)))
}

func (b *Bot) handleReserve(message *tgbotapi.Message) {
	percentage, err := strconv.ParseFloat(strings.TrimSpace(message.CommandArguments()), 64)
	if err != nil {
		b.send(message.Chat.ID, "Use: /reserva 10")
		return
	}
	if err := b.service.SetReservePercentage(context.Background(), message.From.ID, percentage); err != nil {
		b.sendErrorMessage(message.Chat.ID, describeError(err))
		return
	}
	b.send(message.Chat.ID, fmt.Sprintf("Reserva ajustada para %.0f%% do salário. ✅", percentage))
}

func (b *Bot) handleRemove(message *tgbotapi.Message) {
	id := strings.TrimSpace(message.CommandArguments())
	if id == "" {
		b.send(message.Chat.ID, "Use: /remover id (veja os ids no /extrato)")
		return
	}
	removed, err := b.service.RemoveTransaction(context.Background(), message.From.ID, id)
	if err != nil {
		b.sendErrorMessage(message.Chat.ID, describeError(err))
		return
	}
	b.send(message.Chat.ID, fmt.Sprintf("🗑 %d lançamento(s) removido(s)", removed))
}
