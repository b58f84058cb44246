//go:build windows

package main

import (
	"github.com/wailsapp/wails/v2/pkg/options"
	wailswindows "github.com/wailsapp/wails/v2/pkg/options/windows"
)

// platformOptions makes the WebView2 window see-through so only the page
// content is visible.
func platformOptions(app *options.App) {
	app.Windows = &wailswindows.Options{
		WebviewIsTransparent: true,
		WindowIsTranslucent:  true,
		DisableWindowIcon:    true,
	}
}
