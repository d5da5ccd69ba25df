package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"shopkeep/internal/sessions"
	"shopkeep/internal/shop"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgCyan, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
	celebrate   = color.New(color.FgBlack, color.BgHiYellow, color.Bold)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptChoice(label string, options []string, defaultValue string) (string, error) {
	normalized := make(map[string]struct{}, len(options))
	for _, opt := range options {
		normalized[strings.ToLower(strings.TrimSpace(opt))] = struct{}{}
	}
	for {
		fmt.Printf("%s (%s) [%s]: ", label, strings.Join(options, "/"), defaultValue)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.ToLower(strings.TrimSpace(text))
		if text == "" {
			text = strings.ToLower(strings.TrimSpace(defaultValue))
		}
		if _, ok := normalized[text]; ok {
			return text, nil
		}
		printWarn("Invalid option. Please pick one of the listed values.")
	}
}

func renderPersonas(cat sessions.Catalog) {
	accent.Println("\n== WHO IS MINDING THE SHOP? ==")
	for _, p := range cat.Personas {
		fmt.Printf("  %-10s %-20s %s\n", p.Persona, p.Title, p.Blurb)
	}
	fmt.Println()
}

func renderStatus(v sessions.View) {
	accent.Println("\n== XIAOYU'S SHOP ==")
	role := v.RoleTitle
	if role == "" {
		role = "(not chosen, run `shop role <persona>`)"
	}
	fmt.Printf("Manager:     %s\n", role)
	renderCounters(v)

	staff := make([]string, 0, len(v.Staff))
	for _, r := range v.Staff {
		staff = append(staff, r.Title())
	}
	fmt.Printf("Staff:       %s\n", strings.Join(staff, ", "))
	fmt.Printf("Last lunch:  %s\n", v.LastLunch)

	if len(v.Hireable) > 0 {
		fmt.Println()
		renderHireable(v)
	}
	fmt.Println()
	renderLog(v.Log)
}

func renderCounters(v sessions.View) {
	fmt.Printf("Cash:        %s\n", colorizeCurrency(v.Currency))
	fmt.Printf("Energy:      %s\n", colorizeEnergy(v.Energy))
	fmt.Printf("Reputation:  %d\n", v.Reputation)
	if v.Energy <= 0 {
		printWarn("Too exhausted to work. Spin the lunch roulette (`shop spin`).")
	}
	if v.Bankrupt {
		printError("The till is empty. `shop close --reopen` starts over.")
	}
}

func renderHireable(v sessions.View) {
	accent.Println("Hiring")
	for _, h := range v.Hireable {
		cost := "¥" + h.Cost.StringFixed(0)
		if h.Affordable {
			cost = success.Sprint(cost)
		} else {
			cost = danger.Sprint(cost)
		}
		fmt.Printf("  %-11s %-26s %s\n", h.Role, h.Title, cost)
	}
}

func renderOutcome(out shop.EventOutcome) {
	line := fmt.Sprintf("%s %s", out.Severity.Icon(), out.Narration)
	switch {
	case out.Celebrate:
		fmt.Println(celebrate.Sprint(" " + line + " "))
	case out.Severity == shop.SeverityDanger:
		printError(line)
	case out.Severity == shop.SeverityWarning:
		printWarn(line)
	case out.Severity == shop.SeveritySuccess:
		printSuccess(line)
	default:
		printInfo(line)
	}
}

func renderLog(entries []shop.LogEntry) {
	accent.Println("Log")
	if len(entries) == 0 {
		printInfo("Nothing has happened yet.")
		return
	}
	for _, e := range entries {
		switch e.Severity {
		case shop.SeverityDanger:
			printError(e.String())
		case shop.SeverityWarning:
			printWarn(e.String())
		case shop.SeveritySuccess:
			printSuccess(e.String())
		default:
			printInfo(e.String())
		}
	}
}

func colorizeCurrency(v decimal.Decimal) string {
	text := "¥" + v.StringFixed(0)
	switch {
	case v.IsPositive():
		return success.Sprint(text)
	case v.IsNegative():
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizeEnergy(v int) string {
	text := fmt.Sprint(v)
	switch {
	case v <= 0:
		return danger.Sprint(text)
	case v < 30:
		return warn.Sprint(text)
	default:
		return success.Sprint(text)
	}
}
