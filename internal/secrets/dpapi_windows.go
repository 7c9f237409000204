//go:build windows

package secrets

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Unprotect decrypts a DPAPI-protected blob in the current user's scope.
func Unprotect(data []byte) ([]byte, error) {
	in := windows.DataBlob{}
	if len(data) > 0 {
		in.Size = uint32(len(data))
		in.Data = &data[0]
	}
	var out windows.DataBlob
	if err := windows.CryptUnprotectData(&in, nil, nil, 0, nil, 0, &out); err != nil {
		return nil, err
	}
	defer windows.LocalFree(windows.Handle(unsafe.Pointer(out.Data)))

	plain := make([]byte, out.Size)
	copy(plain, unsafe.Slice(out.Data, out.Size))
	return plain, nil
}
