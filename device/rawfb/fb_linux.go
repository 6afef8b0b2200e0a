// SPDX-License-Identifier: Unlicense OR MIT

package rawfb

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Framebuffer ioctls from linux/fb.h.
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type fbFile struct {
	fd int
}

func openDevice(path string) (framebuffer, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &fbFile{fd: fd}, nil
}

func (f *fbFile) ioctl(req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(f.fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func (f *fbFile) varInfo() (varScreeninfo, error) {
	var v varScreeninfo
	err := f.ioctl(fbioGetVScreenInfo, unsafe.Pointer(&v))
	return v, err
}

func (f *fbFile) fixInfo() (fixScreeninfo, error) {
	var v fixScreeninfo
	err := f.ioctl(fbioGetFScreenInfo, unsafe.Pointer(&v))
	return v, err
}

func (f *fbFile) mmap(size int) ([]byte, error) {
	return unix.Mmap(f.fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func (f *fbFile) munmap(mem []byte) error {
	return unix.Munmap(mem)
}

func (f *fbFile) close() error {
	return unix.Close(f.fd)
}
