package ui

import "sync/atomic"

type Stats struct {
	Downloaded  atomic.Int64
	Failed      atomic.Int64
	Unsupported atomic.Int64
	TotalBytes  atomic.Int64
}
