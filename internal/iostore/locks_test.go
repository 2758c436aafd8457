package iostore

import (
	"sync"
	"testing"

	"github.com/cardlab/cardlab/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestLocker(t *testing.T) {
	l := newLocker()
	var counter int
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock(schema.KindCard, 1)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Zero(t, l.size())

	unlockA := l.lock(schema.KindCard, 1)
	unlockB := l.lock(schema.KindPassive, 1)
	assert.Equal(t, 2, l.size())
	unlockA()
	unlockB()
	assert.Zero(t, l.size())
}
