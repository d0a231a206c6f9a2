// Package ble connects to GoCube smart cubes over Bluetooth Low Energy.
package ble

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"tinygo.org/x/bluetooth"

	"github.com/SeamusWaldron/thecube/internal/protocol"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
	ErrServiceNotFound  = errors.New("ble: GoCube service not found")
)

// DefaultConnectTimeout bounds the scan that precedes Connect.
const DefaultConnectTimeout = 10 * time.Second

var (
	serviceUUID = mustParseUUID(protocol.ServiceUUID)
	txCharUUID  = mustParseUUID(protocol.TxCharUUID)
	rxCharUUID  = mustParseUUID(protocol.RxCharUUID)
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// ScanResult represents a discovered GoCube device.
type ScanResult struct {
	Name    string
	Address string
	RSSI    int16
	address bluetooth.Address
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// Client manages the BLE connection to one GoCube.
type Client struct {
	adapter *bluetooth.Adapter
	device  bluetooth.Device
	rxChar  bluetooth.DeviceCharacteristic
	log     zerolog.Logger

	mu         sync.RWMutex
	connected  bool
	deviceName string
	battery    int

	onFrame func(protocol.Frame)
}

// NewClient enables the default adapter.
func NewClient(opts ...Option) (*Client, error) {
	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable BLE adapter: %w", err)
	}

	c := &Client{adapter: adapter, battery: -1, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetFrameCallback sets the callback for decoded notifications. It runs on
// the BLE goroutine.
func (c *Client) SetFrameCallback(cb func(protocol.Frame)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFrame = cb
}

// Scan lists GoCube devices seen before timeout or ctx ends.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	if c.IsConnected() {
		return nil, ErrAlreadyConnected
	}

	var (
		mu      sync.Mutex
		results []ScanResult
		seen    = make(map[string]bool)
		done    = make(chan error, 1)
	)

	go func() {
		done <- c.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			name := r.LocalName()
			addr := r.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] || !strings.HasPrefix(strings.ToLower(name), "gocube") {
				return
			}
			seen[addr] = true
			results = append(results, ScanResult{Name: name, Address: addr, RSSI: r.RSSI, address: r.Address})
		})
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}
	c.adapter.StopScan()
	if err := <-done; err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	c.log.Debug().Int("found", len(results)).Msg("scan finished")
	return results, nil
}

// Connect scans for the device at address and connects to it.
func (c *Client) Connect(ctx context.Context, address string) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}

	found := make(chan ScanResult, 1)
	go func() {
		c.adapter.Scan(func(a *bluetooth.Adapter, r bluetooth.ScanResult) {
			if r.Address.String() != address {
				return
			}
			select {
			case found <- ScanResult{Name: r.LocalName(), Address: address, RSSI: r.RSSI, address: r.Address}:
				a.StopScan()
			default:
			}
		})
	}()

	select {
	case r := <-found:
		return c.ConnectResult(ctx, r)
	case <-time.After(DefaultConnectTimeout):
		c.adapter.StopScan()
		return ErrDeviceNotFound
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}
}

// ConnectResult connects to a device returned by Scan.
func (c *Client) ConnectResult(ctx context.Context, r ScanResult) error {
	if c.IsConnected() {
		return ErrAlreadyConnected
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	device, err := c.adapter.Connect(r.address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover services: %w", err)
	}
	if len(services) == 0 {
		device.Disconnect()
		return ErrServiceNotFound
	}

	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{txCharUUID, rxCharUUID})
	if err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to discover characteristics: %w", err)
	}

	var txChar, rxChar bluetooth.DeviceCharacteristic
	for _, ch := range chars {
		switch ch.UUID() {
		case txCharUUID:
			txChar = ch
		case rxCharUUID:
			rxChar = ch
		}
	}

	if err := txChar.EnableNotifications(c.handleNotification); err != nil {
		device.Disconnect()
		return fmt.Errorf("failed to enable notifications: %w", err)
	}

	c.mu.Lock()
	c.device = device
	c.rxChar = rxChar
	c.connected = true
	c.deviceName = r.Name
	c.mu.Unlock()

	c.log.Info().Str("device", r.Name).Str("address", r.Address).Msg("connected")
	if err := c.RequestBattery(); err != nil {
		c.log.Warn().Err(err).Msg("battery request failed")
	}
	return nil
}

// Disconnect disconnects from the current device.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}
	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""
	c.battery = -1
	return err
}

// IsConnected returns true if connected to a device.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Battery returns the last known battery level (-1 if unknown).
func (c *Client) Battery() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.battery
}

// SendCommand writes a command to the cube.
func (c *Client) SendCommand(cmd protocol.Command) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ErrNotConnected
	}
	data := protocol.BuildCommand(cmd)
	if _, err := c.rxChar.WriteWithoutResponse(data); err != nil {
		if _, err := c.rxChar.Write(data); err != nil {
			return fmt.Errorf("failed to send command 0x%02X: %w", byte(cmd), err)
		}
	}
	return nil
}

// RequestBattery requests the battery level.
func (c *Client) RequestBattery() error {
	return c.SendCommand(protocol.CmdRequestBattery)
}

// ResetSolved tells the cube its current state is solved.
func (c *Client) ResetSolved() error {
	return c.SendCommand(protocol.CmdResetSolved)
}

// FlashBacklight flashes the cube backlight.
func (c *Client) FlashBacklight() error {
	return c.SendCommand(protocol.CmdFlashBacklight)
}

func (c *Client) handleNotification(data []byte) {
	f, err := protocol.Parse(data)
	if err != nil {
		c.log.Debug().Err(err).Hex("data", data).Msg("dropped notification")
		return
	}

	if f.Type == protocol.MsgBattery {
		if level, err := protocol.DecodeBattery(f.Payload); err == nil {
			c.mu.Lock()
			c.battery = level
			c.mu.Unlock()
		}
	}

	c.mu.RLock()
	cb := c.onFrame
	c.mu.RUnlock()
	if cb != nil {
		cb(f)
	}
}
