package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dirmirror/dirmirror/pkg/clock"
	"github.com/dirmirror/dirmirror/pkg/configuration"
	"github.com/dirmirror/dirmirror/pkg/core"
	"github.com/dirmirror/dirmirror/pkg/daemonlock"
	"github.com/dirmirror/dirmirror/pkg/logging"
	"github.com/dirmirror/dirmirror/pkg/process"
	"github.com/dirmirror/dirmirror/pkg/statusreport"
	"github.com/dirmirror/dirmirror/pkg/watch"
)

// statusInterval is how often the running daemon refreshes its status file,
// independent of event or alarm activity.
const statusInterval = 10 * time.Second

func runMain(command *cobra.Command, arguments []string) error {
	if len(arguments) != 0 {
		return errArgs("run")
	}

	lock, err := daemonlock.Acquire(rootConfiguration.lockPath, nil)
	if err != nil {
		return err
	}
	defer lock.Release()

	doc, settings, err := configuration.Parse(rootConfiguration.configPath)
	if err != nil {
		return err
	}

	level := logging.LevelNormal
	if settings.LogLevel != "" {
		if parsed, ok := logging.NameToLevel(settings.LogLevel); ok {
			level = parsed
		}
	}
	logger := logging.New(level)

	completions := make(chan process.Completion, 16)
	registry, err := configuration.Build(doc, settings, rootConfiguration.envPath, logger, completions)
	if err != nil {
		return err
	}

	watcher, err := watch.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	clk := clock.New()
	runtime := core.NewRuntime(registry, watcher, clk, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runtime.Initialize(ctx); err != nil {
		return err
	}

	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, terminationSignals...)

	statusTicker := time.NewTicker(statusInterval)
	defer statusTicker.Stop()

	var alarmTimer *time.Timer
	resetAlarm := func() {
		if alarmTimer != nil {
			clock.StopAndDrainTimer(alarmTimer)
		}
		if deadline, ok := runtime.EarliestAlarm(); ok {
			delay := deadline.Sub(clk.Now())
			if delay < 0 {
				delay = 0
			}
			alarmTimer = time.NewTimer(delay)
		} else {
			alarmTimer = time.NewTimer(time.Hour)
		}
	}
	resetAlarm()
	defer clock.StopAndDrainTimer(alarmTimer)

	writeStatus := func() {
		if settings.StatusFile == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(settings.StatusFile), 0700); err != nil {
			logger.Errorf("unable to create status directory: %v", err)
			return
		}
		file, err := os.Create(settings.StatusFile)
		if err != nil {
			logger.Errorf("unable to write status file: %v", err)
			return
		}
		defer file.Close()
		if err := statusreport.Write(file, registry, clk.Now()); err != nil {
			logger.Errorf("unable to render status: %v", err)
		}
	}

	for {
		select {
		case sig := <-signalTermination:
			logger.Normalf("terminating on signal %s", sig)
			return nil
		case event := <-watcher.Events():
			runtime.OnEvent(event)
			resetAlarm()
		case watchErr := <-watcher.Errors():
			logger.Errorf("watch error: %v", watchErr)
		case completion := <-completions:
			runtime.CollectProcess(completion.PID, completion.ExitCode)
			resetAlarm()
		case <-alarmTimer.C:
			runtime.OnAlarm(ctx, clk.Now())
			resetAlarm()
		case <-statusTicker.C:
			writeStatus()
		}
	}
}

var runCommand = &cobra.Command{
	Use:    "run",
	Short:  "Run the dirmirror daemon in the foreground",
	Run:    mainify(runMain),
	Hidden: true,
}
