package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pvilks/wayfarer/internal/client/models"
)

func (a *App) listMemories(ctx context.Context, args []string) {
	var (
		memories []models.Memory
		err      error
	)
	if len(args) > 0 {
		memories, err = a.store.Memories.GetByTripID(ctx, args[0])
	} else {
		memories, err = a.store.Memories.GetAll(ctx)
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if len(memories) == 0 {
		fmt.Println("No memories yet.")
		return
	}
	for _, m := range memories {
		pending := ""
		if models.IsLocalRef(m.ImageURL) {
			pending = " (upload pending)"
		}
		fmt.Printf("%s  %s  %s%s\n", m.ID, m.TakenAt.Format(dateLayout), m.Caption, pending)
	}
}

func (a *App) addMemory(ctx context.Context) {
	tripID, err := GetSimpleText(a.reader, "Trip id", os.Stdout)
	if err != nil || tripID == "" {
		fmt.Println("Trip id is required")
		return
	}
	image, err := GetSimpleText(a.reader, "Image path", os.Stdout)
	if err != nil || image == "" {
		fmt.Println("Image path is required")
		return
	}
	caption, err := GetSimpleText(a.reader, "Caption (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	m := &models.Memory{
		TripID:   tripID,
		ImageURL: image,
		Caption:  caption,
		TakenAt:  time.Now(),
	}
	if err := a.writer.Create(ctx, m); err != nil {
		fmt.Println("Could not save memory:", err)
		return
	}
	fmt.Println("Saved memory", m.ID, "- the photo uploads on the next sync")
}

func (a *App) rmMemory(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: rmmemory <id>")
		return
	}
	if err := a.writer.Delete(ctx, models.TableMemories, args[0]); err != nil {
		fmt.Println("Could not delete memory:", err)
		return
	}
	fmt.Println("Deleted memory", args[0])
}
