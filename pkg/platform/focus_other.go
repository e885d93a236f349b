//go:build !darwin

package platform

// ActivateApp is a no-op outside macOS, where showing and focusing the
// window is enough to bring it forward
func ActivateApp() {
}
