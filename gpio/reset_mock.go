package gpio

import (
	"context"
	"sync"

	"github.com/mklimuk/camera"
)

var _ camera.ResetLine = &MockResetLine{}

// MockResetLine records reset transitions so sequencing can be verified in
// tests or exercised off-target.
type MockResetLine struct {
	mx          sync.Mutex
	asserted    bool
	transitions []bool
}

func NewMockResetLine() *MockResetLine {
	return &MockResetLine{}
}

func (m *MockResetLine) Assert(ctx context.Context) error {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.asserted = true
	m.transitions = append(m.transitions, true)
	return nil
}

func (m *MockResetLine) Deassert(ctx context.Context) error {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.asserted = false
	m.transitions = append(m.transitions, false)
	return nil
}

// Asserted reports whether the line currently holds the device in reset.
func (m *MockResetLine) Asserted() bool {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.asserted
}

// Transitions returns the recorded sequence of states, true for assert.
func (m *MockResetLine) Transitions() []bool {
	m.mx.Lock()
	defer m.mx.Unlock()
	out := make([]bool, len(m.transitions))
	copy(out, m.transitions)
	return out
}
