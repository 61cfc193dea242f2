package transcriber

import (
	"context"
	"runtime"
)

// Device is the compute device the recognizer runs on.
type Device string

const (
	DeviceGPU Device = "gpu"
	DeviceCPU Device = "cpu"
)

// selectDevice resolves whisper.device once per batch. "auto" picks the GPU
// on Apple Silicon (Metal) or when an NVIDIA driver is installed.
func (t *implTranscriber) selectDevice(ctx context.Context) Device {
	switch t.cfg.Whisper.Device {
	case "gpu":
		return DeviceGPU
	case "cpu":
		return DeviceCPU
	}

	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return DeviceGPU
	}
	if _, err := t.executor.LookPath("nvidia-smi"); err == nil {
		return DeviceGPU
	}
	return DeviceCPU
}
