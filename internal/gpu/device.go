//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/lyon"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// gpuTimeout bounds every fence wait.
const gpuTimeout = 5 * time.Second

// Device bundles the HAL handles the renderers work with. Open creates
// an owned device; FromProvider borrows one from a host application,
// in which case Close leaves the underlying handles alive.
type Device struct {
	instance hal.Instance
	Handle   hal.Device
	Queue    hal.Queue
	external bool
}

// Open initializes the Vulkan backend and opens a device on the best
// available adapter, preferring discrete and integrated GPUs over
// software implementations.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: no adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}
	lyon.Logger().Info("gpu device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		Handle:   openDev.Device,
		Queue:    openDev.Queue,
	}, nil
}

// FromProvider borrows a device from a host application. The provider
// must expose HalDevice() any and HalQueue() any returning hal.Device
// and hal.Queue, the shape gogpu's context provider has.
func FromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("gpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("gpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("gpu: provider HalQueue is not hal.Queue")
	}
	lyon.Logger().Info("gpu device borrowed from host")
	return &Device{Handle: device, Queue: queue, external: true}, nil
}

// SurfaceView converts the per-frame view handle a host application
// exposes into the HAL view the renderers draw to.
func SurfaceView(v any) (hal.TextureView, error) {
	view, ok := v.(hal.TextureView)
	if !ok || view == nil {
		return nil, fmt.Errorf("gpu: surface view is not a hal.TextureView")
	}
	return view, nil
}

// Close destroys owned handles. For borrowed devices only the
// references are dropped.
func (d *Device) Close() {
	if !d.external {
		if d.Handle != nil {
			d.Handle.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.Handle = nil
	d.Queue = nil
	d.instance = nil
	d.external = false
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
// The usage must include CopyDst for the write to be valid.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// submitAndWait submits one command buffer and blocks until the fence
// signals. The command buffer is freed in all cases. Rendering to a
// surface view also goes through here: the host presents after the
// frame call returns, so the wait must happen before presentation.
func submitAndWait(device hal.Device, queue hal.Queue, cmdBuf hal.CommandBuffer) error {
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}
