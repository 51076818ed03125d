package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("RYUS_TEST_MODE") == "" {
			_ = os.Setenv("RYUS_TEST_MODE", "1")
		}
	})
}
