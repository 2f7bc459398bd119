package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/beeep"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"QobuzPlayer/internal/native"
	"QobuzPlayer/internal/settings"
)

// DesktopApp is the Wails application binding struct.
// Methods on this struct are exposed to the frontend via window.go.main.DesktopApp.
type DesktopApp struct {
	ctx   context.Context
	cfg   *AppConfig
	store *settings.Store
	svc   *native.Service

	navigated  atomic.Bool
	quitting   atomic.Bool
	noticeOnce sync.Once
}

// NewDesktopApp creates a new DesktopApp instance.
func NewDesktopApp(cfg *AppConfig, store *settings.Store) *DesktopApp {
	a := &DesktopApp{cfg: cfg, store: store}

	var dispatcher native.Dispatcher
	if cfg.ThumbClickPolicy == thumbClickMediaKey {
		dispatcher = native.NewMediaKeyDispatcher()
	} else {
		dispatcher = native.NewScriptDispatcher(a.execJS)
	}
	// OnHiddenToTray is called from the window procedure.
	a.svc = native.NewService(native.Options{
		Dispatcher:     dispatcher,
		Policy:         store,
		Logger:         Log.With("component", "native"),
		OnThumbClick:   a.emitThumbClick,
		OnHiddenToTray: func() { go a.hiddenToTray() },
	})
	return a
}

// AssetHandler serves the local start page. Once it has loaded, domReady
// navigates the webview to the configured URL.
func (a *DesktopApp) AssetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(startPage))
	})
}

const startPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>html,body{margin:0;height:100%;background:#000}</style></head>
<body></body></html>`

// startup is called when the Wails app starts.
func (a *DesktopApp) startup(ctx context.Context) {
	a.ctx = ctx
	beeep.AppName = a.cfg.Title
	a.initSystray()
	Log.Debug("Wails OnStartup", "url", a.cfg.URL, "thumbClickPolicy", a.cfg.ThumbClickPolicy)
}

// domReady runs for the local start page only; the hosted page never
// reports back. The window exists by now, so this is where the native
// integration is attached.
func (a *DesktopApp) domReady(ctx context.Context) {
	if !a.navigated.CompareAndSwap(false, true) {
		return
	}
	a.attachNative()

	target, _ := json.Marshal(a.cfg.URL)
	wailsRuntime.WindowExecJS(ctx, "window.location.replace("+string(target)+");")
}

// beforeClose applies close-to-tray. Returning true keeps the app running.
func (a *DesktopApp) beforeClose(ctx context.Context) bool {
	if a.quitting.Load() {
		a.svc.Cleanup()
		return false
	}
	if a.svc.HandleCloseRequest() {
		wailsRuntime.WindowHide(ctx)
		a.hiddenToTray()
		return true
	}
	return false
}

// shutdown is called when the Wails app is closing.
func (a *DesktopApp) shutdown(ctx context.Context) {
	a.svc.Cleanup()

	w, h := wailsRuntime.WindowGetSize(ctx)
	if w > 0 && h > 0 && (w != a.cfg.WindowWidth || h != a.cfg.WindowHeight) {
		a.cfg.WindowWidth = w
		a.cfg.WindowHeight = h
		if err := SaveConfig(a.cfg); err != nil {
			Log.Error("saving config failed", "error", err)
		}
	}

	quitSystray()
}

// attachNative registers the current window handle and publishes the thumb
// buttons. Failures only cost the buttons, so they are logged.
func (a *DesktopApp) attachNative() {
	h := findMainHwnd()
	if h == 0 {
		Log.Warn("main window handle not found")
		return
	}
	if err := a.svc.Refresh(h); err != nil {
		Log.Warn("attaching thumb buttons failed", "hwnd", h, "error", err)
		return
	}
	Log.Debug("thumb buttons attached", "hwnd", h)
}

// showWindow brings the application window back from the tray or taskbar.
// The handle is re-acquired since a hidden window may come back as a new one.
func (a *DesktopApp) showWindow() {
	wailsRuntime.WindowUnminimise(a.ctx)
	wailsRuntime.WindowShow(a.ctx)
	wailsRuntime.Show(a.ctx)
	a.attachNative()
	if h, ok := a.svc.Handle(); ok {
		focusWindow(h)
	}
}

// quit exits through beforeClose without the close-to-tray policy.
func (a *DesktopApp) quit() {
	a.quitting.Store(true)
	wailsRuntime.Quit(a.ctx)
}

func (a *DesktopApp) execJS(js string) {
	if a.ctx == nil {
		return
	}
	wailsRuntime.WindowExecJS(a.ctx, js)
}

// hiddenToTray runs whenever the window went to the tray, from close or
// from minimize. The first time it tells the user where the app went.
func (a *DesktopApp) hiddenToTray() {
	a.emitHiddenToTray()
	if !a.cfg.IsTrayNotice() {
		return
	}
	a.noticeOnce.Do(func() {
		go func() {
			if err := beeep.Notify(a.cfg.Title, a.cfg.Title+" is still running in the tray.", ""); err != nil {
				Log.Debug("tray notice failed", "error", err)
			}
		}()
	})
}

// GetSettings returns the current user settings.
func (a *DesktopApp) GetSettings() settings.Settings {
	return a.store.Get()
}

// SaveSettings persists s and updates the autostart entry.
func (a *DesktopApp) SaveSettings(s settings.Settings) error {
	if err := a.store.Save(s); err != nil {
		Log.Error("saving settings failed", "error", err)
		return err
	}
	a.emitSettingsChanged()
	return nil
}

// AddThumbButtons re-acquires the window handle and publishes the buttons.
func (a *DesktopApp) AddThumbButtons() error {
	if h := findMainHwnd(); h != 0 {
		a.svc.SetHandle(h)
	}
	return a.svc.AddThumbButtons()
}

// RemoveThumbButtons hides the buttons and detaches the message hooks.
func (a *DesktopApp) RemoveThumbButtons() error {
	return a.svc.RemoveThumbButtons()
}

// GetLogLevel returns the current log level.
func (a *DesktopApp) GetLogLevel() string {
	return GetLogLevel()
}

// SetLogLevel changes the log level and remembers it in config.json.
func (a *DesktopApp) SetLogLevel(level string) error {
	SetLogLevel(level)
	a.cfg.LogLevel = GetLogLevel()
	return SaveConfig(a.cfg)
}
