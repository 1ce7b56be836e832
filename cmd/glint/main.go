package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glintapp/glint/pkg/alarm"
	"github.com/glintapp/glint/pkg/config"
	"github.com/glintapp/glint/pkg/logging"
	"github.com/glintapp/glint/pkg/sound"
	"github.com/glintapp/glint/pkg/store"
	"github.com/glintapp/glint/pkg/task"
	"github.com/glintapp/glint/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(getDirFlag())
	if err != nil {
		return err
	}

	// The log file lives inside the data directory, so it must exist
	// before the logger opens its sink.
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	log, err := logging.New(cfg.DataDir, cfg.Debug)
	if err != nil {
		return err
	}
	defer logging.Sync(log)

	s, err := store.NewStore(cfg.DataDir, log)
	if err != nil {
		return err
	}

	reg := alarm.NewRegistry(s, log)
	reg.ReconcileOnLoad(time.Now())

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	args = removeFlagValue(args, "--dir")

	if len(args) == 0 {
		return runTUI(cfg, s, reg, log)
	}

	switch args[0] {
	case "remind":
		return cmdRemind(reg, args[1:], jsonOutput)
	case "alarms":
		return cmdAlarms(reg, jsonOutput)
	case "history":
		date := ""
		if len(args) >= 2 {
			date = args[1]
		}
		return cmdHistory(s, date, jsonOutput)
	case "complete":
		yes := hasFlag(args, "--yes")
		rest := removeFlag(args[1:], "--yes")
		if len(rest) == 0 {
			return fmt.Errorf("usage: glint complete <text> [--yes]")
		}
		return cmdComplete(reg, s, log, strings.Join(rest, " "), yes, jsonOutput)
	case "watch":
		return cmdWatch(cfg, reg, log)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: glint [remind|alarms|history|complete|watch]", args[0])
	}
}

// getDirFlag returns the --dir flag value, if present. GLINT_DIR and the
// OS default are handled by config.Load.
func getDirFlag() string {
	for i, a := range os.Args {
		if a == "--dir" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}
	return ""
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

func removeFlagValue(args []string, flag string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag && i+1 < len(args) {
			i++
			continue
		}
		result = append(result, args[i])
	}
	return result
}

// flagValue extracts "--flag value" from args, returning the value and the
// remaining args.
func flagValue(args []string, flag string) (string, []string) {
	for i := 0; i < len(args); i++ {
		if args[i] == flag && i+1 < len(args) {
			value := args[i+1]
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return value, rest
		}
	}
	return "", args
}

func runTUI(cfg config.Config, s *store.Store, reg *alarm.Registry, log *zap.Logger) error {
	player := sound.NewPlayer(cfg.SoundPath, log)
	m := tui.NewModel(cfg, s, reg, player, log)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Start file watcher
	cleanup, err := tui.StartWatcher(s.Root, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// CLI Commands

func cmdRemind(reg *alarm.Registry, args []string, jsonOut bool) error {
	at, args := flagValue(args, "--at")
	prio, args := flagValue(args, "--priority")
	if len(args) == 0 || at == "" {
		return fmt.Errorf(`usage: glint remind <text> --at "2006-01-02 15:04" [--priority normal|medium|high|info]`)
	}

	text := strings.Join(args, " ")
	parts := strings.SplitN(at, " ", 2)
	if len(parts) != 2 {
		return fmt.Errorf(`invalid --at %q: use "2006-01-02 15:04"`, at)
	}
	due, err := task.ParseReminderInput(parts[0], parts[1])
	if err != nil {
		return fmt.Errorf(`invalid --at %q: use "2006-01-02 15:04"`, at)
	}
	now := time.Now()
	if due.Before(now) {
		return fmt.Errorf("reminder time %s is in the past", at)
	}

	a := store.NewPendingAlarm(text, store.ParsePriority(prio), due, now)
	reg.Enqueue(a)

	if jsonOut {
		return outputJSON(a)
	}
	fmt.Printf("Scheduled %q for %s\n", text, due.Format("Mon Jan 2 15:04"))
	return nil
}

func cmdAlarms(reg *alarm.Registry, jsonOut bool) error {
	pending := reg.Pending()

	if jsonOut {
		return outputJSON(pending)
	}

	if len(pending) == 0 {
		fmt.Println("No pending alarms.")
		return nil
	}

	for i, a := range pending {
		when := a.ReminderTime
		if due, err := a.DueAt(); err == nil {
			when = due.Format("Mon Jan 2 15:04")
		}
		fmt.Printf("%d. %s %s — %s\n", i+1, a.Priority().Label(), a.Text, when)
	}
	return nil
}

func cmdHistory(s *store.Store, date string, jsonOut bool) error {
	history := s.LoadHistory()
	if date != "" {
		filtered := map[string][]store.HistoryEntry{}
		if entries, ok := history[date]; ok {
			filtered[date] = entries
		}
		history = filtered
	}

	if jsonOut {
		return outputJSON(history)
	}

	if len(history) == 0 {
		fmt.Println("No completed tasks.")
		return nil
	}

	for _, day := range tui.BuildHistoryDays(history) {
		fmt.Println(day.Date)
		for _, e := range day.Entries {
			when := ""
			if t, err := store.ParseTime(e.Completed); err == nil {
				when = " at " + t.Format("15:04")
			}
			fmt.Printf("  ✓ %s %s%s\n", e.Priority().Label(), e.Text, when)
		}
	}
	return nil
}

func cmdComplete(reg *alarm.Registry, s *store.Store, log *zap.Logger, text string, yes bool, jsonOut bool) error {
	var match store.PendingAlarm
	found := false
	for _, a := range reg.Pending() {
		if a.Text == text {
			match = a
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no pending alarm matches %q", text)
	}

	confirmer := task.ConfirmFunc(func(t *task.Task) bool {
		if yes {
			return true
		}
		fmt.Printf("Mark %q as completed? [y/N] ", t.Text)
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})

	controller := task.NewController(reg, s, task.NopPresenter{}, confirmer, log)
	if !controller.CompleteAlarm(match) {
		fmt.Println("Left unchanged.")
		return nil
	}

	if jsonOut {
		return outputJSON(map[string]string{"completed": text})
	}
	fmt.Printf("Completed: %s\n", text)
	return nil
}

func cmdWatch(cfg config.Config, reg *alarm.Registry, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := sound.NewPlayer(cfg.SoundPath, log)
	fire := func(a store.PendingAlarm) {
		fmt.Printf("\a[%s] %s %s\n", time.Now().Format("15:04:05"), a.Priority().Label(), a.Text)
		player.Play()
	}

	fmt.Printf("Watching %d pending alarm(s). Ctrl+C to stop.\n", reg.Len())
	clock := alarm.NewClock(reg, cfg.PollInterval, fire, log)
	clock.Run(ctx)
	return nil
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
