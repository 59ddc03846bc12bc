package ble

import (
	"context"

	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
	"github.com/pkg/errors"

	"github.com/guidecane/firmware/pkg/util"
)

// coreMethods abstracts the ble stack so the transport can be exercised
// without an hci device present.
type coreMethods interface {
	SetDefaultDevice() error
	AddService(*ble.Service) error
	AdvertiseNameAndServices(context.Context, string, ...ble.UUID) error
	Stop() error
}

type realCoreMethods struct{}

func (bc *realCoreMethods) SetDefaultDevice() error {
	device, err := linux.NewDevice()
	if err != nil {
		return errors.Wrap(err, "linux.NewDevice issue")
	}
	ble.SetDefaultDevice(device)
	return nil
}

func (bc *realCoreMethods) AddService(s *ble.Service) error {
	return util.CatchErrs(func() error {
		return ble.AddService(s)
	})
}

func (bc *realCoreMethods) AdvertiseNameAndServices(ctx context.Context, name string, uuids ...ble.UUID) error {
	return util.CatchErrs(func() error {
		return ble.AdvertiseNameAndServices(ctx, name, uuids...)
	})
}

func (bc *realCoreMethods) Stop() error {
	return util.CatchErrs(func() error {
		return ble.Stop()
	})
}
