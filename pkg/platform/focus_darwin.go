//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

void activateApp() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// ActivateApp brings the planner to the front even when another
// application currently has focus. Showing a Fyne window alone does not
// steal activation on macOS.
func ActivateApp() {
	C.activateApp()
}
