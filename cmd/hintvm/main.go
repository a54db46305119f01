package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/hintvm/cmds"
	"github.com/reusee/hintvm/debugs"
	"github.com/reusee/hintvm/dumps"
	"github.com/reusee/hintvm/logs"
	"github.com/reusee/hintvm/modes"
	"github.com/reusee/hintvm/vms"
)

var (
	programFlag = cmds.Var[string]("-program")
	tapFlag     = cmds.Switch("-tap")
)

func main() {
	cmds.Execute(os.Args[1:])

	if *programFlag == "" {
		fmt.Fprintln(os.Stderr, "Error: program is required (use '-program path/to/program.json')")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	modeModule, err := modes.ForEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	dscope.New(
		new(Module),
		modeModule,
	).Call(func(
		newRunner vms.NewRunner,
		send dumps.Send,
		tap debugs.Tap,
		logger logs.Logger,
	) {
		if err := run(ctx, newRunner, send, tap, logger); err != nil {
			logger.ErrorContext(ctx, "run failed", "error", err)
			stop()
			os.Exit(1)
		}
	})
}

func run(
	ctx context.Context,
	newRunner vms.NewRunner,
	send dumps.Send,
	tap debugs.Tap,
	logger logs.Logger,
) error {
	program, err := vms.LoadProgram(*programFlag)
	if err != nil {
		return err
	}
	runner, err := newRunner(program)
	if err != nil {
		return err
	}

	runErr := runner.Run(ctx)
	if *tapFlag {
		tap(ctx, "runner", runner.Snapshot(runErr))
	}
	if runErr != nil {
		return runErr
	}

	for _, addrs := range runner.SegmentAddresses() {
		stop := "-"
		if addrs.StopPtr != nil {
			stop = fmt.Sprint(*addrs.StopPtr)
		}
		fmt.Printf("%s\tbase %d\tstop %s\n", addrs.Name, addrs.Base, stop)
	}

	cells, err := runner.Relocated()
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "run ended",
		"steps", runner.VM.CurrentStep,
		"cells", len(cells),
	)
	return send(ctx, cells)
}
