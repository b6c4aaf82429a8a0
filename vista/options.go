package vista

import (
	"encoding/binary"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultGraphSize is the graph size assumed for graph objects written
// without an "nnodes" attribute by older versions of the format.
const DefaultGraphSize = 1024

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	order            binary.ByteOrder
	logger           *log.Logger
	defaultGraphSize int
}

func defaultRegistryOptions() *registryOptions {
	return &registryOptions{
		order:            binary.NativeEndian,
		logger:           log.New(io.Discard),
		defaultGraphSize: DefaultGraphSize,
	}
}

// WithHostOrder sets the byte order of decoded values held in memory.
// It defaults to the machine's native order; setting it explicitly
// simulates a host of the other endianness.
func WithHostOrder(order binary.ByteOrder) RegistryOption {
	return func(o *registryOptions) {
		if order != nil {
			o.order = order
		}
	}
}

// WithLogger sets the logger that receives warnings about bad attribute
// values and compatibility defaults.
func WithLogger(l *log.Logger) RegistryOption {
	return func(o *registryOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefaultGraphSize sets the size assumed for graphs lacking "nnodes".
func WithDefaultGraphSize(n int) RegistryOption {
	return func(o *registryOptions) {
		if n > 0 {
			o.defaultGraphSize = n
		}
	}
}

// ReadOption configures ReadFile.
type ReadOption func(*readOptions)

type readOptions struct {
	decode     bool
	headerOnly bool
}

func defaultReadOptions() *readOptions {
	return &readOptions{decode: true}
}

// WithoutDecode leaves every object as a *Bundle holding its raw data,
// even when its type is registered.
func WithoutDecode() ReadOption {
	return func(o *readOptions) {
		o.decode = false
	}
}

// HeaderOnly stops after the textual header. Bundles keep their length
// but no data, and no object is decoded.
func HeaderOnly() ReadOption {
	return func(o *readOptions) {
		o.headerOnly = true
		o.decode = false
	}
}
