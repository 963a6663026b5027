package utils

import (
	"fmt"

	"github.com/gpupipe/cuboidbench/device"
)

// CreateTestDevice selects a device for testing, preferring parallel
// backends and falling back to Serial.
func CreateTestDevice() *device.Device {
	dev, err := device.Select(device.ClassAny)
	if err != nil {
		// Should not reach here: Serial always opens on a working install
		panic(fmt.Sprintf("failed to create any device: %v", err))
	}
	fmt.Printf("Created %s device\n", dev.Platform().Name)
	return dev
}
