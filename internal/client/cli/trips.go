package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pvilks/wayfarer/internal/client/models"
)

func (a *App) listTrips(ctx context.Context) {
	trips, err := a.store.Trips.GetAll(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(trips) == 0 {
		fmt.Println("No trips yet. Try 'addtrip'.")
		return
	}
	for _, t := range trips {
		synced := " "
		if !t.IsSynced {
			synced = "*"
		}
		fmt.Printf("%s %s  %s  %s - %s  budget %.2f\n",
			synced, t.ID, t.Destination,
			t.StartDate.Format(dateLayout), t.EndDate.Format(dateLayout), t.Budget)
	}
}

func (a *App) addTrip(ctx context.Context) {
	destination, err := GetSimpleText(a.reader, "Destination", os.Stdout)
	if err != nil || destination == "" {
		fmt.Println("Destination is required")
		return
	}
	start, err := GetDate(a.reader, "Start date", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	end, err := GetDate(a.reader, "End date", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	budget, err := GetAmount(a.reader, "Budget", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	cover, err := GetSimpleText(a.reader, "Cover image path (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	trip := &models.Trip{
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      budget,
		CoverImage:  cover,
	}
	if err := a.writer.Create(ctx, trip); err != nil {
		fmt.Println("Could not save trip:", err)
		return
	}
	fmt.Println("Saved trip", trip.ID)
}

func (a *App) rmTrip(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: rmtrip <id>")
		return
	}
	if err := a.writer.Delete(ctx, models.TableTrips, args[0]); err != nil {
		fmt.Println("Could not delete trip:", err)
		return
	}
	fmt.Println("Deleted trip", args[0], "(expenses and memories removed with it)")
}
