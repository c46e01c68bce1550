package hardware

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
)

const gpioRoot = "/sys/class/gpio"

// GPIOBolt drives a relay-controlled bolt through the Linux sysfs GPIO
// interface. Writing "1" to the value file engages the bolt, "0"
// releases it.
type GPIOBolt struct {
	pin    int
	root   string
	logger *logger.Logger
}

// NewGPIOBolt exports the given BCM pin and configures it as an output.
func NewGPIOBolt(pin int, log *logger.Logger) (*GPIOBolt, error) {
	bolt := &GPIOBolt{pin: pin, root: gpioRoot, logger: log}

	if err := bolt.export(); err != nil {
		return nil, err
	}

	log.Info().Int("pin", pin).Msg("gpio bolt initialised")
	return bolt, nil
}

// Engage implements [Bolt].
func (b *GPIOBolt) Engage(ctx context.Context) error {
	return b.write(ctx, "1")
}

// Release implements [Bolt].
func (b *GPIOBolt) Release(ctx context.Context) error {
	return b.write(ctx, "0")
}

func (b *GPIOBolt) write(ctx context.Context, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	valuePath := filepath.Join(b.root, fmt.Sprintf("gpio%d", b.pin), "value")
	if err := os.WriteFile(valuePath, []byte(value), 0o644); err != nil {
		b.logger.Err(err).Int("pin", b.pin).Str("value", value).Msg("gpio write failed")
		return fmt.Errorf("%w: writing gpio value: %w", ErrHardwareFault, err)
	}

	return nil
}

func (b *GPIOBolt) export() error {
	pinDir := filepath.Join(b.root, fmt.Sprintf("gpio%d", b.pin))
	if _, err := os.Stat(pinDir); err == nil {
		return b.setDirection(pinDir)
	}

	exportPath := filepath.Join(b.root, "export")
	if err := os.WriteFile(exportPath, []byte(strconv.Itoa(b.pin)), 0o644); err != nil {
		return fmt.Errorf("%w: exporting gpio pin %d: %w", ErrHardwareFault, b.pin, err)
	}

	return b.setDirection(pinDir)
}

func (b *GPIOBolt) setDirection(pinDir string) error {
	directionPath := filepath.Join(pinDir, "direction")
	if err := os.WriteFile(directionPath, []byte("out"), 0o644); err != nil {
		return fmt.Errorf("%w: setting gpio direction: %w", ErrHardwareFault, err)
	}
	return nil
}
