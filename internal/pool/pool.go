// Package pool provides reusable buffers for the render path.
package pool

import (
	"strings"
	"sync"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}

var lineSlicePool = sync.Pool{
	New: func() any {
		s := make([]string, 0, 64)
		return &s
	},
}

// GetLineSlice returns an empty slice of screen lines.
func GetLineSlice() *[]string {
	return lineSlicePool.Get().(*[]string)
}

// PutLineSlice clears lines and returns it to the pool.
func PutLineSlice(lines *[]string) {
	clear(*lines)
	*lines = (*lines)[:0]
	lineSlicePool.Put(lines)
}
