//go:build !windows

package native

func sendMediaKey(vk uint16) error {
	return ErrUnsupported
}
