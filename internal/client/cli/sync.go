package cli

import (
	"context"
	"fmt"
)

// sync runs one push-then-pull cycle synchronously, so the user sees the
// outcome before the next prompt.
func (a *App) sync(ctx context.Context) {
	if err := a.syncer.Sync(ctx); err != nil {
		fmt.Println("Sync failed:", err)
		return
	}
	fmt.Println("Sync finished")
}

// resync resets every watermark and pulls everything again. Recovery hatch
// for a suspected local/remote divergence.
func (a *App) resync(ctx context.Context) {
	if err := a.syncer.ForceFullResync(ctx); err != nil {
		fmt.Println("Full resync failed:", err)
		return
	}
	fmt.Println("Full resync finished")
}

func (a *App) status(ctx context.Context) {
	n, err := a.store.Mutations.CountPending(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("connectivity: %s\npending mutations: %d\n", a.monitor.Mode(), n)
}
