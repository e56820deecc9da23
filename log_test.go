package alloc

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolationMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want string
	}{
		{"bare", "dynamic: use of empty box", nil, "alloc: dynamic: use of empty box"},
		{"pairs", "malloc: unsupported alignment", []any{"align", 64, "max", 16}, "alloc: malloc: unsupported alignment align=64 max=16"},
		{"dangling key", "x", []any{"a", 1, "b"}, "alloc: x a=1 b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, violationMessage(tt.msg, tt.args))
		})
	}
}

func TestViolationPanicsWithKeyValues(t *testing.T) {
	var out bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&out, nil)))
	defer SetLogger(nil)

	m := NewMalloc()
	defer m.Close()

	want := fmt.Sprintf("alloc: malloc: unsupported alignment align=%d max=%d", MallocMaxAlign*4, MallocMaxAlign)
	assert.PanicsWithValue(t, want, func() { _, _ = m.AllocAlign(8, MallocMaxAlign*4) })
	assert.Contains(t, out.String(), "contract violation: malloc: unsupported alignment")
	assert.Contains(t, out.String(), fmt.Sprintf("align=%d", MallocMaxAlign*4))
}
