//go:build !windows

package main

import (
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
)

// platformOptions asks WebKitGTK for a translucent window. Ignored on macOS.
func platformOptions(app *options.App) {
	app.Linux = &linux.Options{
		WindowIsTranslucent: true,
	}
}
