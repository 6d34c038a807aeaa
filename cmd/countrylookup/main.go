package main

import (
	"context"

	"countrylookup/cmd/countrylookup/commands"
	"countrylookup/internal/serviceutil"
)

func main() {
	ctx, stop := serviceutil.SignalContext(context.Background())
	defer stop()

	commands.ExecuteContext(ctx)
}
