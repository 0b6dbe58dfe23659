package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	return fmt.Sprintf("(%s %s)", a.sess.UserID(), a.monitor.Mode())
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Wayfarer CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("wf %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: trips, addtrip, rmtrip, expenses, addexpense, rmexpense,")
			fmt.Println("  memories, addmemory, rmmemory, profile, setprofile, sync, resync, status, exit")

		case "trips":
			a.listTrips(ctx)
		case "addtrip":
			a.addTrip(ctx)
		case "rmtrip":
			a.rmTrip(ctx, args)

		case "expenses":
			a.listExpenses(ctx, args)
		case "addexpense":
			a.addExpense(ctx)
		case "rmexpense":
			a.rmExpense(ctx, args)

		case "memories":
			a.listMemories(ctx, args)
		case "addmemory":
			a.addMemory(ctx)
		case "rmmemory":
			a.rmMemory(ctx, args)

		case "profile":
			a.showProfile(ctx)
		case "setprofile":
			a.setProfile(ctx)

		case "sync":
			a.sync(ctx)
		case "resync":
			a.resync(ctx)
		case "status":
			a.status(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
