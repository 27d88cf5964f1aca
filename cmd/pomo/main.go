package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/daemon"
	"github.com/mstead/pomo/internal/event"
	"github.com/mstead/pomo/internal/shutdown"
	"github.com/mstead/pomo/internal/sound"
	"github.com/mstead/pomo/internal/store"
	"github.com/mstead/pomo/internal/timer"
	"github.com/mstead/pomo/internal/tui"
)

var version = "dev"

// getDaemonClient creates a daemon client. An explicit --socket-path wins;
// otherwise daemon.json in the project is consulted; finally the default
// socket path resolved against the project root is tried.
func getDaemonClient() (*daemon.Client, error) {
	if sock := viper.GetString(FlagSocketPath); sock != "" {
		return daemon.NewClient(sock), nil
	}

	if info, err := daemon.FindDaemonInfo(""); err == nil {
		return daemon.NewClient(info.SocketPath), nil
	}

	projectRoot := daemon.FindProjectRoot("")
	paths, err := daemon.ResolvePaths(config.Default().Paths, projectRoot)
	if err != nil {
		return nil, fmt.Errorf("daemon not running: %w", err)
	}
	return daemon.NewClient(paths.Socket), nil
}

// printState prints the acked timer state in one line.
func printState(st *daemon.StateResponse) {
	status := "paused"
	if st.Running {
		status = "running"
	}
	fmt.Printf("%s %s remaining, %s (iteration %d, %d sessions done)\n",
		st.Phase, st.Remaining, status, st.Iteration, st.SessionsCompleted)
}

// startExistingDaemon sends the start command to a live daemon, so
// `pomo start` doubles as the control verb when the process is already up.
func startExistingDaemon(client *daemon.Client) error {
	st, err := client.Start()
	if err != nil {
		return err
	}
	printState(st)
	return nil
}

// runControl sends one RPC to the daemon and prints the acked state.
func runControl(fn func(*daemon.Client) (*daemon.StateResponse, error)) error {
	client, err := getDaemonClient()
	if err != nil {
		return err
	}

	st, err := fn(client)
	if err != nil {
		return err
	}

	printState(st)
	return nil
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	viper.SetEnvPrefix("POMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "pomo",
		Short: "A pomodoro timer daemon",
		Long: `pomo is a pomodoro timer that runs as a long-lived process, advances
work/break phases on a wall-clock poll loop, renders each tick to a PNG
frame for external displays, and accepts control commands over a Unix
socket.`,
		SilenceUsage: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .pomo/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Log file path")
	rootCmd.PersistentFlags().String(FlagStateFile, "", "State file path")
	rootCmd.PersistentFlags().String(FlagSocketPath, "", "Unix socket path for daemon control")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pomo %s\n", version)
		},
	}

	// Start command
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the timer, launching the process if needed",
		Long: `Start the timer process. It polls wall-clock time, advances phases,
renders a frame each tick, and listens for control commands on a Unix
socket. When a timer process is already running, start sends it the
start command instead of launching a second one.

Use --daemon to run in the background, --tui for an interactive
terminal preview.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			daemonMode := viper.GetBool(FlagDaemon)

			// Determine TUI mode: explicit flag > auto-detect from TTY
			tuiEnabled := viper.GetBool(FlagTUI)
			if !cmd.Flags().Changed(FlagTUI) && !daemonMode {
				tuiEnabled = term.IsTerminal(int(os.Stdout.Fd()))
			}

			if tuiEnabled && daemonMode {
				return fmt.Errorf("--tui and --daemon flags are incompatible")
			}

			if viper.GetBool(FlagVerbose) {
				logLevel.Set(slog.LevelDebug)
				logger.Debug("verbose logging enabled")
			}

			// Load config from files with defaults
			cfg, err := config.LoadConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			// Apply CLI flag overrides (only if explicitly set)
			if cmd.Flags().Changed(FlagLogFile) {
				cfg.Paths.Log = viper.GetString(FlagLogFile)
			}
			if cmd.Flags().Changed(FlagStateFile) {
				cfg.Paths.State = viper.GetString(FlagStateFile)
			}
			if cmd.Flags().Changed(FlagSocketPath) {
				cfg.Paths.Socket = viper.GetString(FlagSocketPath)
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			// Find project root for path resolution
			projectRoot := daemon.FindProjectRoot("")

			cfg.Paths, err = daemon.ResolvePaths(cfg.Paths, projectRoot)
			if err != nil {
				return fmt.Errorf("resolve paths: %w", err)
			}

			// A process already owns the socket: act as the control verb
			// and set its timer running instead of failing.
			client := daemon.NewClient(cfg.Paths.Socket)
			if client.IsRunning() {
				return startExistingDaemon(client)
			}

			if daemonMode {
				shouldExit, _, err := daemon.Daemonize(cfg)
				if err != nil {
					return fmt.Errorf("daemonize: %w", err)
				}
				if shouldExit {
					return nil // Parent exits cleanly
				}
				// Child continues below
			}

			// Ensure .pomo directory exists
			infoPath := daemon.DaemonInfoPath(projectRoot)
			if err := os.MkdirAll(infoPath[:len(infoPath)-len("/daemon.json")], 0755); err != nil {
				return fmt.Errorf("create .pomo directory: %w", err)
			}

			// Daemon and TUI modes log to a rotating file so the terminal
			// (or the background) never sees raw log lines.
			var fileLog *FileLoggerResult
			if daemonMode || tuiEnabled {
				fileLog, err = SetupFileLogger(cfg.Paths.Log, logLevel, cfg.LogRotation)
				if err != nil {
					return err
				}
				defer func() { _ = fileLog.Close() }()
				logger = fileLog.Logger
				slog.SetDefault(logger)
			}

			logger.Info("pomo starting",
				"version", version,
				"state_file", cfg.Paths.State,
				"socket", cfg.Paths.Socket,
				"daemon_mode", daemonMode,
				"tui", tuiEnabled,
			)

			// Stale PID/socket cleanup, then claim the PID file.
			pidFile := daemon.NewPIDFile(cfg.Paths.PID)
			pidFile.CleanupStale(cfg.Paths.Socket)
			if err := pidFile.Write(); err != nil {
				return fmt.Errorf("write pid file: %w", err)
			}
			defer func() { _ = pidFile.Remove() }()

			// Write daemon info for CLI discovery
			daemonInfo := &daemon.DaemonInfo{
				SocketPath: cfg.Paths.Socket,
				PIDPath:    cfg.Paths.PID,
				LogPath:    cfg.Paths.Log,
				FramePath:  cfg.Paths.Frame,
				StartTime:  time.Now(),
				PID:        os.Getpid(),
			}
			if err := daemon.WriteDaemonInfo(infoPath, daemonInfo); err != nil {
				logger.Warn("failed to write daemon info", "error", err)
			}
			defer func() { _ = daemon.RemoveDaemonInfo(infoPath) }()

			// Seed the engine from the persisted snapshot. Persisted
			// durations win over config so a set_time survives restarts.
			st := store.New(cfg.Paths.State, logger)
			initial := st.Load(timer.State{
				Phase: timer.Work,
				Durations: timer.Durations{
					Work:       cfg.Timer.WorkDuration(),
					ShortBreak: cfg.Timer.ShortBreakDuration(),
					LongBreak:  cfg.Timer.LongBreakDuration(),
				},
			})

			engine := timer.New(initial,
				timer.WithStore(st),
				timer.WithAutoStart(cfg.Timer.AutoStartWork, cfg.Timer.AutoStartBreak),
				timer.WithLogger(logger),
			)

			renderCfg, err := buildRenderConfig(cfg, logger)
			if err != nil {
				return err
			}

			// Event fan-out: transitions go to the sound notifier.
			router := event.NewRouter(event.DefaultBufferSize)
			defer router.Close()

			ctx := cmd.Context()
			dispatchCtx, dispatchCancel := context.WithCancel(ctx)
			defer dispatchCancel()

			if cfg.Sounds.WorkComplete != "" || cfg.Sounds.BreakComplete != "" {
				player := sound.NewPlayer(logger)
				notifier := sound.NewNotifier(player, cfg.Sounds.WorkComplete, cfg.Sounds.BreakComplete, logger)
				dispatcher := event.NewDispatcher(router, logger, notifier)
				go dispatcher.Run(dispatchCtx)
			}

			dmn := daemon.New(cfg, engine, router, renderCfg, logger)

			// runProcess runs the socket server and the poll loop until the
			// context is cancelled or a shutdown RPC arrives.
			runProcess := func(runCtx context.Context) error {
				loopDone := make(chan struct{})
				go func() {
					dmn.RunLoop(runCtx)
					close(loopDone)
				}()
				err := dmn.Start(runCtx)
				<-loopDone
				return err
			}

			// TUI mode: timer process in background, preview in foreground.
			if tuiEnabled {
				tuiCtx, tuiCancel := context.WithCancel(ctx)
				procDone := make(chan error, 1)
				go func() {
					procDone <- runProcess(tuiCtx)
				}()

				preview := tui.New(engine.Snapshot,
					tui.WithOnToggle(func() { _, _ = dmn.Apply(timer.Command{Op: timer.Toggle}) }),
					tui.WithOnSkip(func() { _, _ = dmn.Apply(timer.Command{Op: timer.Skip}) }),
					tui.WithOnReset(func() { _, _ = dmn.Apply(timer.Command{Op: timer.Reset}) }),
				)

				tuiErr := preview.Run()

				tuiCancel()
				if err := <-procDone; err != nil {
					logger.Error("timer process error", "error", err)
				}

				return tuiErr
			}

			// Foreground/daemon mode: block with graceful signal handling.
			return shutdown.RunWithGracefulShutdown(
				ctx,
				logger,
				10*time.Second,
				runProcess,
				func(shutdownCtx context.Context) error {
					return dmn.Stop()
				},
			)
		},
	}

	startCmd.Flags().Bool(FlagDaemon, false, "Run as a background daemon")
	startCmd.Flags().Bool(FlagTUI, false, "Enable terminal UI")
	startCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// Toggle command
	toggleCmd := &cobra.Command{
		Use:   "toggle",
		Short: "Start the timer if paused, pause it if running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl((*daemon.Client).Toggle)
		},
	}

	// Stop command
	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Pause the timer without losing progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl((*daemon.Client).Stop)
		},
	}

	// Reset command
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Return to a fresh, stopped work phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl((*daemon.Client).Reset)
		},
	}

	// Skip command
	skipCmd := &cobra.Command{
		Use:   "skip",
		Short: "Force the next phase transition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl((*daemon.Client).Skip)
		},
	}

	// Set-time command
	setTimeCmd := &cobra.Command{
		Use:   "set-time <phase> <seconds>",
		Short: "Change a phase duration",
		Long: `Change the duration of a phase (work, short_break, or long_break) in
seconds. If the phase is currently active, elapsed time is clamped to the
new duration.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("seconds must be an integer: %q", args[1])
			}
			return runControl(func(c *daemon.Client) (*daemon.StateResponse, error) {
				return c.SetTime(args[0], seconds)
			})
		},
	}

	// Status command
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show timer and daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getDaemonClient()
			if err != nil {
				return err
			}

			status, err := client.Status()
			if err != nil {
				return err
			}

			if viper.GetBool(FlagJSON) {
				data, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal status: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			// Human-readable output
			running := "paused"
			if status.Timer.Running {
				running = "running"
			}
			fmt.Printf("Phase: %s (%s)\n", status.Timer.Phase, running)
			fmt.Printf("Remaining: %s\n", status.Timer.Remaining)
			fmt.Printf("Progress: %.0f%%\n", status.Timer.Progress*100)
			fmt.Printf("Iteration: %d\n", status.Timer.Iteration)
			fmt.Printf("Sessions completed: %d\n", status.Timer.SessionsCompleted)
			fmt.Printf("Uptime: %s\n", status.Uptime)
			fmt.Printf("Started: %s\n", status.StartTime)
			return nil
		},
	}
	statusCmd.Flags().Bool(FlagJSON, false, "Output status as JSON")
	_ = viper.BindPFlag(FlagJSON, statusCmd.Flags().Lookup(FlagJSON))

	// Shutdown command
	shutdownCmd := &cobra.Command{
		Use:   "shutdown",
		Short: "Stop the timer process",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := getDaemonClient()
			if err != nil {
				return err
			}

			if err := client.Shutdown(); err != nil {
				return err
			}

			fmt.Println("Shutdown requested")
			return nil
		},
	}

	// Register all commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(setTimeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(shutdownCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
