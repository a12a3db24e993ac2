// Package budget caps expensive operations per calendar day. Counts persist
// as date-stamped files under the OS temp directory, so they survive restarts
// but reset naturally at midnight.
package budget

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Counter struct {
	name  string
	limit int
	dir   string

	mu sync.Mutex
}

func NewCounter(name string, limit int) *Counter {
	return &Counter{name: name, limit: limit, dir: os.TempDir()}
}

// WithDir overrides the counter directory. Test hook.
func (c *Counter) WithDir(dir string) *Counter {
	c.dir = dir
	return c
}

// Allow reports whether today's count is still under the limit.
func (c *Counter) Allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readToday() < c.limit
}

// Increment adds one to today's count.
func (c *Counter) Increment() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := c.readToday() + 1
	return os.WriteFile(c.path(), []byte(strconv.Itoa(count)), 0o644)
}

func (c *Counter) readToday() int {
	raw, err := os.ReadFile(c.path())
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0
	}
	return count
}

func (c *Counter) path() string {
	today := time.Now().Format("2006-01-02")
	return filepath.Join(c.dir, fmt.Sprintf("%s_%s.count", c.name, today))
}
