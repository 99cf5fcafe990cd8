package scheduler

// Config sizes a constructed scheduler.
type Config struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

// NewConfig clamps non-positive sizes to the defaults.
func NewConfig(bufferSize, numWorkers int) Config {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return Config{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}
