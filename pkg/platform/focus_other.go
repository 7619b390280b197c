//go:build !darwin

package platform

// IsAppActive always reports true off macOS, so warnings open in-app.
func IsAppActive() bool {
	return true
}

// ActivateApp is a no-op off macOS.
func ActivateApp() {}

// SetActivationPolicy is a no-op off macOS.
func SetActivationPolicy() {}
