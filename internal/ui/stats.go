package ui

import "sync/atomic"

type Stats struct {
	TotalEpisodes atomic.Int64
	TotalBatches  atomic.Int64
	TotalBytes    atomic.Int64
	Degraded      atomic.Int64
}
