//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

int isAppActive() {
    return [NSApp isActive] ? 1 : 0;
}

void activateApp() {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"

// IsAppActive reports whether the race board is the frontmost application.
// Warnings raised while it is not are sent as OS notifications.
func IsAppActive() bool {
	return C.isAppActive() == 1
}

// ActivateApp brings the application forward so a warning window is seen.
func ActivateApp() {
	C.activateApp()
}
