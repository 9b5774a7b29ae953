package fastboot

import (
	"context"
	"strings"

	dagerrors "github.com/irixaligned/swat/internal/errors"
)

// Device is one line of `fastboot devices` output.
type Device struct {
	Serial string `json:"serial"`
	State  string `json:"state"`
}

// DeviceStatus summarises whether a connected device can be flashed.
type DeviceStatus struct {
	Devices   []Device `json:"devices"`
	CanFlash  bool     `json:"can_flash"`
	Fastbootd bool     `json:"fastbootd"`
}

// Devices runs `fastboot devices` and interprets its stdout. A device is
// flashable when something is listed and none of it reports "no permissions".
// Warnings on stderr never count as a listed device.
func Devices(ctx context.Context, r Runner) (*DeviceStatus, error) {
	res := r.Run(ctx, "devices")
	if res.Failed() {
		return nil, dagerrors.NewExternalToolError("checking fastboot devices", res.Output, res.Err)
	}
	return ParseDevices(res.Stdout), nil
}

// ParseDevices interprets the text printed by `fastboot devices`.
func ParseDevices(output string) *DeviceStatus {
	lower := strings.ToLower(output)
	status := &DeviceStatus{
		CanFlash:  strings.TrimSpace(output) != "" && !strings.Contains(lower, "no permissions"),
		Fastbootd: strings.Contains(lower, "fastbootd"),
	}

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		status.Devices = append(status.Devices, Device{
			Serial: fields[0],
			State:  strings.Join(fields[1:], " "),
		})
	}
	return status
}

// Reboot asks the device to boot normally.
func Reboot(ctx context.Context, r Runner) error {
	res := r.Run(ctx, "reboot")
	if res.Failed() {
		return dagerrors.NewExternalToolError("rebooting device", res.Output, res.Err)
	}
	return nil
}
