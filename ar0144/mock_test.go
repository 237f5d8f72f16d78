package ar0144

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of camera.I2CBus using testify/mock.
// It tracks concurrent bus operations so tests can assert that driver
// sequences never interleave.
type MockI2CBus struct {
	mock.Mock
	concurrentOps int64
	maxConcurrent int64
	mu            sync.Mutex
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	m.mu.Lock()
	concurrent := atomic.AddInt64(&m.concurrentOps, 1)
	if concurrent > atomic.LoadInt64(&m.maxConcurrent) {
		atomic.StoreInt64(&m.maxConcurrent, concurrent)
	}
	m.mu.Unlock()

	// keep a copy; callers may reuse their buffers
	cp := make([]byte, len(buffer))
	copy(cp, buffer)
	args := m.Called(ctx, address, cp)

	m.mu.Lock()
	atomic.AddInt64(&m.concurrentOps, -1)
	m.mu.Unlock()

	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	m.mu.Lock()
	concurrent := atomic.AddInt64(&m.concurrentOps, 1)
	if concurrent > atomic.LoadInt64(&m.maxConcurrent) {
		atomic.StoreInt64(&m.maxConcurrent, concurrent)
	}
	m.mu.Unlock()

	args := m.Called(ctx, address, buffer)
	if args.Get(0) != nil {
		if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
			copy(buffer, data)
		}
	}

	m.mu.Lock()
	atomic.AddInt64(&m.concurrentOps, -1)
	m.mu.Unlock()

	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// regWrites extracts the 16-bit register writes issued through the bus, in
// order. Two-byte transactions (read address phases) are skipped.
func regWrites(bus *MockI2CBus) [][2]uint16 {
	var out [][2]uint16
	for _, call := range bus.Calls {
		if call.Method != "WriteToAddr" {
			continue
		}
		buf := call.Arguments.Get(2).([]byte)
		if len(buf) != 4 {
			continue
		}
		out = append(out, [2]uint16{
			binary.BigEndian.Uint16(buf[0:2]),
			binary.BigEndian.Uint16(buf[2:4]),
		})
	}
	return out
}

// writeCount counts every write transaction, including read address phases.
func writeCount(bus *MockI2CBus) int {
	n := 0
	for _, call := range bus.Calls {
		if call.Method == "WriteToAddr" {
			n++
		}
	}
	return n
}

func idResponse(val uint16) []byte {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, val)
	return buf
}
