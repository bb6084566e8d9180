package main

import (
	"log/slog"
	"os"

	"coraldex/cmd/coraldex-cli/commands"
	"coraldex/lib/serviceutil"
	"coraldex/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()

	err := telemetry.SetupFromEnv(ctx, "coraldex-cli")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("telemetry setup failed", "err", err)
	}
	defer telemetry.Shutdown(ctx)
	telemetry.InitSlog(true)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
