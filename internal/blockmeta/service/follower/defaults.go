package follower

import "time"

const (
	defaultWindow       = 50
	defaultWorkerCount  = 8
	defaultPollInterval = 10 * time.Second
	defaultRetryInitial = time.Second
	defaultRetryMax     = time.Minute
)
