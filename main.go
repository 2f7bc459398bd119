package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"QobuzPlayer/internal/settings"
)

// windowTitle is the main window's title, used to find it natively.
var windowTitle = defaultTitle

func main() {
	var minimized, minimizedToTray, maximized, debug bool
	flag.BoolVar(&minimized, "minimized", false, "start minimized")
	flag.BoolVar(&minimizedToTray, "minimized-to-tray", false, "start hidden in the tray")
	flag.BoolVar(&maximized, "maximized", false, "start maximized")
	flag.BoolVar(&debug, "debug", false, "log at debug level")
	flag.Parse()

	cfg := LoadConfig()
	windowTitle = cfg.Title

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	if logFile, err := InitLogger(level); err != nil {
		fmt.Fprintf(os.Stderr, "log file unavailable: %v\n", err)
	} else {
		defer logFile.Close()
	}

	release := ensureSingleInstance()
	defer release()

	settingsPath, err := settings.DefaultPath()
	if err != nil {
		settingsPath = DataPath("settings.json")
	}
	store := settings.NewStore(settingsPath, nil, Log.With("component", "settings"))
	prefs := store.Load()

	mode := settings.LaunchModeFromFlags(minimized, minimizedToTray, maximized)
	Log.Info("starting", "url", cfg.URL, "launchMode", mode, "closeToTray", prefs.CloseToTray, "minimizeToTray", prefs.MinimizeToTray)

	app := NewDesktopApp(cfg, store)

	err = wails.Run(&options.App{
		Title:            cfg.Title,
		Width:            cfg.WindowWidth,
		Height:           cfg.WindowHeight,
		MinWidth:         800,
		MinHeight:        600,
		StartHidden:      mode == settings.LaunchMinimizedToTray,
		WindowStartState: startState(mode),
		AssetServer: &assetserver.Options{
			Handler: app.AssetHandler(),
		},
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 255},
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
	})
	if err != nil {
		Log.Error("wails exited with error", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func startState(mode settings.LaunchMode) options.WindowStartState {
	switch mode {
	case settings.LaunchMinimized:
		return options.Minimised
	case settings.LaunchMaximized:
		return options.Maximised
	}
	return options.Normal
}
