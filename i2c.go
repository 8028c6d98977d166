package soc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// i2cSlave is the Linux I2C_SLAVE ioctl request from <uapi/linux/i2c-dev.h>;
// x/sys/unix does not export it for linux.
const i2cSlave = 0x0703

// I2CDev is a codec register transport over a Linux I2C character device
// (e.g. /dev/i2c-1). Register writes are synchronous bus transactions bounded
// by the adapter's own timeout.
type I2CDev struct {
	file *os.File
	addr uint8
}

// I2COpen opens the I2C bus and binds the slave address for register writes.
func I2COpen(bus int, addr uint8) (*I2CDev, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C device %s: %w", path, err)
	}

	if err := unix.IoctlSetInt(int(file.Fd()), i2cSlave, int(addr)); err != nil {
		_ = file.Close()

		return nil, fmt.Errorf("ioctl I2C_SLAVE failed for address %#02x: %w", addr, err)
	}

	return &I2CDev{file: file, addr: addr}, nil
}

// IsReady checks if the device handle is valid.
func (d *I2CDev) IsReady() bool {
	return d != nil && d.file != nil
}

// WriteRegister writes a single byte to a register on the bound slave.
func (d *I2CDev) WriteRegister(reg uint8, val uint8) error {
	if !d.IsReady() {
		return fmt.Errorf("I2C device handle is not valid")
	}

	n, err := d.file.Write([]byte{reg, val})
	if err != nil {
		return fmt.Errorf("i2c write reg %#02x failed: %w", reg, err)
	}

	if n != 2 {
		return fmt.Errorf("i2c short write for reg %#02x: wrote %d bytes, want 2", reg, n)
	}

	return nil
}

// Close closes the device handle.
func (d *I2CDev) Close() error {
	if !d.IsReady() {
		return nil
	}

	err := d.file.Close()
	d.file = nil

	return err
}

// I2CProvider resolves board-description nodes to live device handles for
// boards whose codec sits on an I2C bus. Clock requests are checked against
// the fixed master clock routing; a missing I2C adapter defers the probe.
type I2CProvider struct {
	devs []*I2CDev
}

// Clock returns the clock-set primitive for a node. Both the CPU interface
// and the codec have their master clock pre-routed at MclkRate on this board.
func (p *I2CProvider) Clock(node *Node) (ClockSetter, error) {
	return FixedClock(MclkRate), nil
}

// CodecRegisters opens the codec's I2C register transport. A node without an
// I2C address yields no writer: the card attaches with a degraded audio path.
func (p *I2CProvider) CodecRegisters(node *Node) (RegisterWriter, error) {
	if node.Reg == 0 {
		return nil, nil
	}

	dev, err := I2COpen(node.I2CBus, node.Reg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrProbeDefer, err)
		}

		return nil, err
	}

	p.devs = append(p.devs, dev)

	return dev, nil
}

// Close releases every device handle the provider has opened.
func (p *I2CProvider) Close() error {
	var firstErr error
	for _, dev := range p.devs {
		if err := dev.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.devs = nil

	return firstErr
}
