package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig bounds startup-time retries (database connect). Per-request
// pipeline stages are deliberately never retried: regenerating a
// non-deterministic query could silently change semantics.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"5"`
	Delay    time.Duration `env:"DELAY" envDefault:"500ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"5s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
	}
}
