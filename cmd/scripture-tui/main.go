package main

import (
	"fmt"
	"os"
	"strings"

	"scripture-tui/internal/api"
	"scripture-tui/internal/cache"
	"scripture-tui/internal/config"
	"scripture-tui/internal/highlight"
	"scripture-tui/internal/logging"
	"scripture-tui/internal/settings"
	"scripture-tui/internal/ui"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
)

var cli struct {
	EnvFile string   `name:"env-file" short:"e" help:"Dotenv file with ESV_API_KEY and friends (default .env)." type:"path"`
	Theme   string   `name:"theme" help:"Color theme (dark or light)."`
	NoCache bool     `name:"no-cache" help:"Do not read or write the response cache."`
	Query   []string `arg:"" optional:"" help:"Initial reference or search text."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("scripture-tui"),
		kong.Description("Read, search and highlight scripture in the terminal."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.EnvFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logging.Init(logFile, logging.ParseLevel(cfg.Log.Level))

	client := api.NewClient(cfg.ESV.BaseURL, cfg.ESV.APIKey, cfg.ESV.Timeout)
	if !cfg.Cache.Disabled && !cli.NoCache {
		c, err := cache.NewCache(cfg.Cache.TTL)
		if err != nil {
			logging.Warn("response cache unavailable", "error", err)
		} else {
			client.SetCache(c)
		}
	}

	prefs, err := settings.Load()
	if err != nil {
		logging.Warn("could not read settings, using defaults", "error", err)
	}
	if cli.Theme != "" {
		prefs.Theme = cli.Theme
	}

	model := ui.NewModel(ui.Options{
		Fetcher:      client,
		Session:      highlight.NewSession(),
		Settings:     prefs,
		InitialQuery: strings.Join(cli.Query, " "),
		Save:         settings.Save,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logging.Info("starting")
	if _, err := p.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
