//go:build windows

package native

const keyEventFExtendedKey = 0x0001

// sendMediaKey presses and releases vk.
func sendMediaKey(vk uint16) error {
	if err := pKeybdEvent.Find(); err != nil {
		return err
	}
	pKeybdEvent.Call(uintptr(vk), 0, keyEventFExtendedKey, 0)
	pKeybdEvent.Call(uintptr(vk), 0, keyEventFExtendedKey|keyEventFKeyUp, 0)
	return nil
}
