package service

import (
	submissionqueue "github.com/mirall/archetype/internal/adapters/mq/queue"
)

// ErrBackpressure is the queue's rejection sentinel, re-exported so
// callers of Submit need not import the queue adapter.
var ErrBackpressure = submissionqueue.ErrBackpressure
