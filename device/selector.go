// SPDX-License-Identifier: Unlicense OR MIT

package device

import (
	"errors"
	"fmt"
)

// Selector owns the single device a process renders with. It is the only
// place that decides which backend exists.
//
// The zero Selector holds no device and is ready to use.
type Selector struct {
	dev Device
}

// SetDevice replaces the held device with a new, uninitialized backend of
// type t. The previous device is released first, so its full teardown
// has completed before the replacement claims the hardware.
//
// When t is not compiled in, or its constructor fails, the error is
// logged and the selector holds no device.
func (s *Selector) SetDevice(t Type, cfg Config) error {
	s.Release()
	b, ok := lookup(t)
	if !ok {
		err := fmt.Errorf("%w: %v", ErrNotCompiled, t)
		Logger().Error("no such display device", "type", t, "err", err)
		return err
	}
	d, err := b.New(cfg)
	if err != nil {
		Logger().Error("display device construction failed", "type", t, "err", err)
		return fmt.Errorf("device: new %v: %w", t, err)
	}
	s.dev = d
	Logger().Info("display device selected", "type", t)
	return nil
}

// SetDefault selects the first present backend in priority order
// EGL, RawFB, DirectFB, X11.
func (s *Selector) SetDefault(cfg Config) (Type, error) {
	found := Probe()
	if len(found) == 0 {
		s.Release()
		err := errors.New("device: no display devices found by probing")
		Logger().Error(err.Error())
		return NoDevice, err
	}
	var err error
	for _, t := range found {
		if err = s.SetDevice(t, cfg); err == nil {
			return t, nil
		}
	}
	return NoDevice, err
}

// Device returns the held device, or nil.
func (s *Selector) Device() Device {
	return s.dev
}

// Type returns the held device's type, or NoDevice.
func (s *Selector) Type() Type {
	if s.dev == nil {
		return NoDevice
	}
	return s.dev.Type()
}

// Release tears down the held device, if any.
func (s *Selector) Release() {
	if s.dev == nil {
		return
	}
	t := s.dev.Type()
	s.dev.Release()
	s.dev = nil
	Logger().Info("display device released", "type", t)
}
