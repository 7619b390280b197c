// Package platform wraps the few OS window-manager calls the tray needs.
package platform
