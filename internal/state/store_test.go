package state

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitialState(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "Products", Select(s, SelectHeaderTitle))
}

func TestDispatchUpdateHeaderTitle(t *testing.T) {
	s := NewStore()

	s.Dispatch(UpdateHeaderTitle{Title: "Add Product"})
	assert.Equal(t, "Add Product", Select(s, SelectHeaderTitle))

	s.Dispatch(UpdateHeaderTitle{Title: "Edit Product"})
	assert.Equal(t, "Edit Product", s.State().Title)
}

type unknownAction struct{}

func (unknownAction) Type() string { return "[Test] Unknown" }

func TestReducerIgnoresUnknownActions(t *testing.T) {
	s := NewStore()
	s.Dispatch(UpdateHeaderTitle{Title: "Edit Product"})
	s.Dispatch(unknownAction{})
	assert.Equal(t, "Edit Product", s.State().Title)
}

func TestSubscribe(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())

	ch := s.Subscribe(ctx)
	assert.Equal(t, "Products", (<-ch).Title)

	s.Dispatch(UpdateHeaderTitle{Title: "Add Product"})
	assert.Equal(t, "Add Product", (<-ch).Title)

	cancel()
	for range ch {
	}
}

func TestSubscribeKeepsLatestValue(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Subscribe(ctx)
	s.Dispatch(UpdateHeaderTitle{Title: "Add Product"})
	s.Dispatch(UpdateHeaderTitle{Title: "Edit Product"})

	select {
	case st := <-ch:
		assert.Equal(t, "Edit Product", st.Title)
	case <-time.After(time.Second):
		t.Fatal("no value delivered")
	}
}

func TestConcurrentSubscribersObserveSameValue(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const n = 8
	chans := make([]<-chan HeaderState, n)
	for i := range chans {
		chans[i] = s.Subscribe(ctx)
		<-chans[i]
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(UpdateHeaderTitle{Title: "Products"})
		}()
	}
	wg.Wait()
	s.Dispatch(UpdateHeaderTitle{Title: "Final"})

	for _, ch := range chans {
		require.Equal(t, "Final", (<-ch).Title)
	}
}
