package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/pavanmanishd/alloc"
)

// opKind is one step of an allocation script.
type opKind int

const (
	opAlloc opKind = iota
	opFree
	opReset
)

type op struct {
	kind  opKind
	size  uintptr
	align uintptr // 0 means the allocator's default
	index int     // opFree: which earlier allocation
}

// parseOp parses "alloc:N", "alloc:N:A", "free:I" or "reset".
func parseOp(s string) (op, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch strings.ToLower(parts[0]) {
	case "alloc":
		if len(parts) < 2 || len(parts) > 3 {
			return op{}, fmt.Errorf("op %q: want alloc:SIZE[:ALIGN]", s)
		}
		size, err := strconv.ParseUint(parts[1], 0, 64)
		if err != nil {
			return op{}, fmt.Errorf("op %q: size: %w", s, err)
		}
		o := op{kind: opAlloc, size: uintptr(size)}
		if len(parts) == 3 {
			align, err := strconv.ParseUint(parts[2], 0, 64)
			if err != nil {
				return op{}, fmt.Errorf("op %q: align: %w", s, err)
			}
			if align == 0 || align&(align-1) != 0 {
				return op{}, fmt.Errorf("op %q: align must be a power of two", s)
			}
			o.align = uintptr(align)
		}
		return o, nil
	case "free":
		if len(parts) != 2 {
			return op{}, fmt.Errorf("op %q: want free:INDEX", s)
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 {
			return op{}, fmt.Errorf("op %q: bad index", s)
		}
		return op{kind: opFree, index: idx}, nil
	case "reset":
		if len(parts) != 1 {
			return op{}, fmt.Errorf("op %q: reset takes no arguments", s)
		}
		return op{kind: opReset}, nil
	default:
		return op{}, fmt.Errorf("unknown op %q", s)
	}
}

// step is the outcome of one op.
type step struct {
	Op     string  `json:"op"`
	Offset *uint64 `json:"offset,omitempty"`
	Error  string  `json:"error,omitempty"`
	Used   uint64  `json:"used"`
	Remain uint64  `json:"remain"`
}

type block struct {
	p     unsafe.Pointer
	size  uintptr
	align uintptr
	freed bool
}

// runScript applies ops to a and records a step per op. Exhaustion is
// recorded in the step; other failures stop the script.
func runScript(a alloc.Allocator, raw []string) ([]step, error) {
	ops := make([]op, 0, len(raw))
	for _, s := range raw {
		o, err := parseOp(s)
		if err != nil {
			return nil, err
		}
		ops = append(ops, o)
	}

	var blocks []block
	steps := make([]step, 0, len(ops))
	for i, o := range ops {
		st := step{Op: raw[i]}
		switch o.kind {
		case opAlloc:
			var p unsafe.Pointer
			var err error
			if o.align == 0 {
				p, err = a.Alloc(o.size)
			} else {
				p, err = a.AllocAlign(o.size, o.align)
			}
			if errors.Is(err, alloc.ErrExhausted) {
				st.Error = err.Error()
				break
			}
			if err != nil {
				return steps, err
			}
			off := uint64(a.Offset(p))
			st.Offset = &off
			blocks = append(blocks, block{p: p, size: o.size, align: o.align})
		case opFree:
			if o.index >= len(blocks) || blocks[o.index].freed {
				return steps, fmt.Errorf("op %q: no live allocation #%d", raw[i], o.index)
			}
			b := &blocks[o.index]
			if b.align == 0 {
				a.Free(b.p, b.size)
			} else {
				a.FreeAlign(b.p, b.size, b.align)
			}
			b.freed = true
		case opReset:
			a.Reset()
			for j := range blocks {
				blocks[j].freed = true
			}
		}
		st.Used = uint64(a.Used())
		st.Remain = uint64(a.Remain())
		steps = append(steps, st)
	}
	return steps, nil
}
