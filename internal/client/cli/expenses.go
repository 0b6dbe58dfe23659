package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pvilks/wayfarer/internal/client/models"
)

func (a *App) listExpenses(ctx context.Context, args []string) {
	var (
		expenses []models.Expense
		err      error
	)
	if len(args) > 0 {
		expenses, err = a.store.Expenses.GetByTripID(ctx, args[0])
	} else {
		expenses, err = a.store.Expenses.GetAll(ctx)
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(expenses) == 0 {
		fmt.Println("No expenses recorded.")
		return
	}
	for _, e := range expenses {
		fmt.Printf("%s  %s  %.2f  %-12s %s\n",
			e.ID, e.Date.Format(dateLayout), e.Amount, e.Category, e.Description)
	}
}

func (a *App) addExpense(ctx context.Context) {
	tripID, err := GetSimpleText(a.reader, "Trip id", os.Stdout)
	if err != nil || tripID == "" {
		fmt.Println("Trip id is required")
		return
	}
	amount, err := GetAmount(a.reader, "Amount", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	category, err := GetSimpleText(a.reader, "Category", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	date, err := GetDate(a.reader, "Date", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	e := &models.Expense{
		TripID:      tripID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := a.writer.Create(ctx, e); err != nil {
		fmt.Println("Could not save expense:", err)
		return
	}
	fmt.Println("Saved expense", e.ID)
}

func (a *App) rmExpense(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: rmexpense <id>")
		return
	}
	if err := a.writer.Delete(ctx, models.TableExpenses, args[0]); err != nil {
		fmt.Println("Could not delete expense:", err)
		return
	}
	fmt.Println("Deleted expense", args[0])
}
