package main

import (
	"github.com/ra1phdd/systray-on-wails"
)

// initSystray sets up the system tray icon and menu.
// Right-click: context menu with "Show" and "Quit".
// Left-click: restore the window.
func (a *DesktopApp) initSystray() {
	systray.Register(func() {
		systray.SetIcon(trayIcon())
		systray.SetTooltip(a.cfg.Title)

		mShow := systray.AddMenuItem("Show", "Show "+a.cfg.Title)
		mQuit := systray.AddMenuItem("Quit", "Quit "+a.cfg.Title)

		subclassSystray(func() { go a.showWindow() })

		go func() {
			for {
				select {
				case <-mShow.ClickedCh:
					a.showWindow()
				case <-mQuit.ClickedCh:
					a.quit()
					return
				}
			}
		}()
	}, nil)
}

func quitSystray() {
	systray.Quit()
}
