package queue

import "errors"

// ErrBackpressure signals a rejected enqueue: the queue is full or
// closed. The submission was not accepted and may be retried.
var ErrBackpressure = errors.New("submission queue backpressure")
