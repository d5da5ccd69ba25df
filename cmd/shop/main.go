package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"shopkeep/internal/api"
	cl "shopkeep/internal/cli"
	"shopkeep/internal/config"
	"shopkeep/internal/shop"
	"shopkeep/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "shop",
		Short:        "Xiaoyu's Shop, a tiny idle shop sim",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "shop API base URL")

	root.AddCommand(
		newPlayCmd(cfg),
		newOpenCmd(&apiBase),
		newStatusCmd(&apiBase),
		newRoleCmd(&apiBase),
		newSpinCmd(&apiBase),
		newHireCmd(&apiBase),
		newTickCmd(&apiBase),
		newLogCmd(&apiBase),
		newCloseCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

// current loads the remembered session and a client pointed at the server
// that owns it.
func current(apiBase *string) (cl.Session, *cl.Client, error) {
	sess, err := cl.LoadSession()
	if err != nil {
		return cl.Session{}, nil, err
	}
	base := *apiBase
	if sess.BaseURL != "" {
		base = sess.BaseURL
	}
	return sess, newClient(&base), nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

// forgetIfGone drops the local session when the server no longer knows it.
func forgetIfGone(err error) error {
	if cl.IsStatus(err, http.StatusNotFound) {
		_ = cl.ClearSession()
		return fmt.Errorf("%w (the shop was closed on the server; run `shop open`)", err)
	}
	return err
}

// blockedHint turns a refused action into advice that points at the command
// which unblocks it.
func blockedHint(err error) (string, bool) {
	switch {
	case cl.IsCode(err, api.CodeExhausted):
		return "Too exhausted to keep working. Spin the lunch roulette first (`shop spin`).", true
	case cl.IsCode(err, api.CodePersonaRequired):
		return "No manager on duty. Pick a persona first (`shop role scholar|social|hardcore`).", true
	}
	return "", false
}

func newPlayCmd(cfg config.CLIConfig) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the shop interactively in this terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("play needs an interactive terminal; use the open/spin/tick commands instead")
			}
			presets, err := config.LoadPresets(cfg.PresetsFile)
			if err != nil {
				return err
			}
			preset, err := presets.Get(cfg.Preset)
			if err != nil {
				return err
			}
			opts := []shop.Option{
				shop.WithPreset(preset),
				shop.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
			}
			if seed != 0 {
				opts = append(opts, shop.WithSource(shop.NewSource(seed)))
			}
			model := tui.New(shop.NewSession(opts...), shop.DefaultLogWindow)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "fixed random seed (0 picks one from the clock)")
	return cmd
}

func newOpenCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "open [persona]",
		Short: "Open a new shop on the server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			client := newClient(apiBase)

			persona := ""
			if len(args) > 0 {
				persona = args[0]
			} else {
				cat, err := client.Catalog(ctx)
				if err != nil {
					return err
				}
				renderPersonas(cat)
				options := make([]string, 0, len(cat.Personas))
				for _, p := range cat.Personas {
					options = append(options, string(p.Persona))
				}
				persona, err = promptChoice("Persona", options, options[0])
				if err != nil {
					return err
				}
			}

			v, err := client.Open(ctx, persona)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{ID: v.ID, BaseURL: client.BaseURL}); err != nil {
				return err
			}
			printSuccess("Shop is open for business.")
			renderStatus(v)
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the shop's counters, staff and recent log",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			v, err := client.Status(ctx, sess.ID)
			if err != nil {
				return forgetIfGone(err)
			}
			renderStatus(v)
			return nil
		},
	}
}

func newRoleCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "role <persona>",
		Short: "Pick the manager persona (only once per shop)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			v, err := client.SetRole(ctx, sess.ID, args[0])
			if err != nil {
				return forgetIfGone(err)
			}
			printSuccess("You are now the " + v.RoleTitle + ".")
			return nil
		},
	}
}

func newSpinCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "spin",
		Short: "Spin the lunch roulette",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := client.Spin(ctx, sess.ID)
			if hint, ok := blockedHint(err); ok {
				printWarn(hint)
				return nil
			}
			if err != nil {
				return forgetIfGone(err)
			}
			printSuccess(out.Result.Narration)
			renderCounters(out.Session)
			return nil
		},
	}
}

func newHireCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "hire [role]",
		Short: "Hire a staff member",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()

			role := ""
			if len(args) > 0 {
				role = args[0]
			} else {
				v, err := client.Status(ctx, sess.ID)
				if err != nil {
					return forgetIfGone(err)
				}
				if len(v.Hireable) == 0 {
					printInfo("Everyone is already on the payroll.")
					return nil
				}
				renderHireable(v)
				options := make([]string, 0, len(v.Hireable))
				for _, h := range v.Hireable {
					options = append(options, string(h.Role))
				}
				role, err = promptChoice("Role", options, options[0])
				if err != nil {
					return err
				}
			}

			out, err := client.Hire(ctx, sess.ID, role)
			if hint, ok := blockedHint(err); ok {
				printWarn(hint)
				return nil
			}
			if err != nil {
				return forgetIfGone(err)
			}
			if !out.Result.Hired {
				printWarn(fmt.Sprintf("Could not hire %s (already on staff or ¥%s is more than the till holds).",
					out.Result.Role.Title(), out.Result.Cost.StringFixed(0)))
				return nil
			}
			printSuccess("Hired a new " + out.Result.Role.Title() + "!")
			renderCounters(out.Session)
			return nil
		},
	}
}

func newTickCmd(apiBase *string) *cobra.Command {
	var times int
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Let time pass and see who walks in",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			if times < 1 {
				times = 1
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			for i := 0; i < times; i++ {
				out, err := client.Tick(ctx, sess.ID)
				if hint, ok := blockedHint(err); ok {
					printWarn(hint)
					return nil
				}
				if err != nil {
					return forgetIfGone(err)
				}
				renderOutcome(out.Outcome)
				if i == times-1 {
					renderCounters(out.Session)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&times, "times", "n", 1, "number of time steps")
	return cmd
}

func newLogCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "Show the newest log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			v, err := client.Status(ctx, sess.ID)
			if err != nil {
				return forgetIfGone(err)
			}
			renderLog(v.Log)
			return nil
		},
	}
}

func newCloseCmd(apiBase *string) *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close the shop and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := current(apiBase)
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if keep {
				v, err := client.Reset(ctx, sess.ID)
				if err != nil {
					return forgetIfGone(err)
				}
				printSuccess("Shop closed and reopened from scratch.")
				renderStatus(v)
				return nil
			}
			if err := client.Close(ctx, sess.ID); err != nil && !cl.IsStatus(err, http.StatusNotFound) {
				return err
			}
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Shop closed. Run `shop open` to start again.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "reopen", false, "reset the shop but keep the same session")
	return cmd
}
