package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/logs"
	"github.com/fsdevblog/golinks/internal/models"
)

func okLinks(names ...string) linkclient.Result[[]models.ListedLink] {
	links := make([]models.ListedLink, 0, len(names))
	for _, n := range names {
		links = append(links, models.ListedLink{Link: models.Link{Name: n, URL: "https://" + n + ".com"}})
	}
	return linkclient.Ok(links)
}

func failedLinks(message string) linkclient.Result[[]models.ListedLink] {
	return linkclient.Err(make([]models.ListedLink, 0), linkclient.FailureStatus, 500, message)
}

func TestCoordinator(t *testing.T) {
	t.Run("touch notifies subscribers", func(t *testing.T) {
		c := NewCoordinator()
		assert.Equal(t, Token(0), c.Token())

		var got []Token
		unsubscribe := c.Subscribe(func(token Token) {
			got = append(got, token)
		})

		assert.Equal(t, Token(1), c.Touch())
		assert.Equal(t, Token(2), c.Touch())
		unsubscribe()
		c.Touch()

		assert.Equal(t, []Token{1, 2}, got)
		assert.Equal(t, Token(3), c.Token())
	})

	t.Run("commit touches only on success", func(t *testing.T) {
		c := NewCoordinator()

		failed := linkclient.Err(linkclient.Done{}, linkclient.FailureStatus, 409, "link already exists")
		res := Commit(c, failed)
		assert.Equal(t, failed, res)
		assert.Equal(t, Token(0), c.Token())

		Commit(c, linkclient.Ok(linkclient.Done{}))
		assert.Equal(t, Token(1), c.Token())
	})

	t.Run("commit without coordinator", func(t *testing.T) {
		ok := linkclient.Ok(linkclient.Done{})
		assert.NotPanics(t, func() {
			assert.Equal(t, ok, Commit(nil, ok))
		})
	})

	t.Run("subscriber may read token", func(t *testing.T) {
		c := NewCoordinator()
		var seen Token
		c.Subscribe(func(Token) {
			seen = c.Token()
		})
		c.Touch()
		assert.Equal(t, Token(1), seen)
	})

	t.Run("concurrent touches", func(t *testing.T) {
		c := NewCoordinator()
		var calls atomic.Int64
		c.Subscribe(func(Token) { calls.Add(1) })

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.Touch()
			}()
		}
		wg.Wait()
		assert.Equal(t, Token(50), c.Token())
		assert.Equal(t, int64(50), calls.Load())
	})
}

type SurfaceSuite struct {
	suite.Suite
	calls       atomic.Int64
	next        linkclient.Result[[]models.ListedLink]
	transitions []State
	surface     *ListSurface
}

func TestSurfaceSuite(t *testing.T) {
	suite.Run(t, new(SurfaceSuite))
}

func (s *SurfaceSuite) SetupTest() {
	s.calls.Store(0)
	s.next = okLinks("ex")
	s.transitions = nil
	s.surface = NewListSurface("Popular", func(context.Context) linkclient.Result[[]models.ListedLink] {
		s.calls.Add(1)
		return s.next
	}, func(o *SurfaceOptions) {
		o.Logger = logs.Discard()
		o.OnChange = func(snap Snapshot) {
			s.transitions = append(s.transitions, snap.State)
		}
	})
}

func (s *SurfaceSuite) TestInitialState() {
	snap := s.surface.Snapshot()
	s.Equal(StateIdle, snap.State)
	s.Empty(snap.Links)
	s.Equal("Popular", snap.Title)
	s.Zero(s.calls.Load())
}

func (s *SurfaceSuite) TestMountFetchesOnce() {
	s.surface.Mount(context.Background(), 0)

	snap := s.surface.Snapshot()
	s.Equal(StatePopulated, snap.State)
	s.Len(snap.Links, 1)
	s.Equal(int64(1), s.calls.Load())
	s.Equal([]State{StateFetching, StatePopulated}, s.transitions)
}

func (s *SurfaceSuite) TestObserveOncePerToken() {
	ctx := context.Background()

	s.surface.Observe(ctx, 1)
	s.Zero(s.calls.Load(), "not mounted surface must not fetch")

	s.surface.Mount(ctx, 1)
	s.surface.Observe(ctx, 1)
	s.Equal(int64(1), s.calls.Load(), "same token must not refetch")

	s.surface.Observe(ctx, 2)
	s.surface.Observe(ctx, 2)
	s.Equal(int64(2), s.calls.Load())

	s.surface.Observe(ctx, 1)
	s.Equal(int64(2), s.calls.Load(), "older token is ignored")
	s.Equal(Token(2), s.surface.Snapshot().Token)
}

func (s *SurfaceSuite) TestFailedKeepsMessage() {
	s.next = failedLinks("internal server error")
	s.surface.Mount(context.Background(), 0)

	snap := s.surface.Snapshot()
	s.Equal(StateFailed, snap.State)
	s.Equal("internal server error", snap.Message)
	s.NotNil(snap.Links)
	s.Empty(snap.Links)

	s.next = okLinks("a", "b")
	s.surface.Observe(context.Background(), 1)
	snap = s.surface.Snapshot()
	s.Equal(StatePopulated, snap.State)
	s.Empty(snap.Message)
	s.Len(snap.Links, 2)
}

func (s *SurfaceSuite) TestBindRefetchesAfterCommit() {
	c := NewCoordinator()
	unbind := s.surface.Bind(context.Background(), c)
	s.Equal(int64(1), s.calls.Load())

	Commit(c, linkclient.Err(linkclient.Done{}, linkclient.FailureTransport, 0, linkclient.MessageTransport))
	s.Equal(int64(1), s.calls.Load(), "failed mutation must not trigger refetch")

	s.next = okLinks("ex", "new")
	Commit(c, linkclient.Ok(linkclient.Done{}))
	s.Equal(int64(2), s.calls.Load())
	s.Len(s.surface.Snapshot().Links, 2)

	unbind()
	c.Touch()
	s.Equal(int64(2), s.calls.Load())
}

func (s *SurfaceSuite) TestSnapshotIsCopy() {
	s.surface.Mount(context.Background(), 0)
	snap := s.surface.Snapshot()
	snap.Links[0].Name = "changed"
	s.Equal("ex", s.surface.Snapshot().Links[0].Name)
}

func TestSurfaceDropsStaleResults(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int64

	surface := NewListSurface("Recent", func(context.Context) linkclient.Result[[]models.ListedLink] {
		n := calls.Add(1)
		if n == 2 {
			close(started)
			<-release
			return okLinks("stale")
		}
		return okLinks("fresh")
	}, func(o *SurfaceOptions) {
		o.Logger = logs.Discard()
	})

	ctx := context.Background()
	surface.Mount(ctx, 0)

	done := make(chan struct{})
	go func() {
		surface.Observe(ctx, 1)
		close(done)
	}()
	<-started

	surface.Observe(ctx, 2)
	close(release)
	<-done

	snap := surface.Snapshot()
	require.Equal(t, StatePopulated, snap.State)
	require.Len(t, snap.Links, 1)
	assert.Equal(t, "fresh", snap.Links[0].Name)
	assert.Equal(t, Token(2), snap.Token)
}

func TestSurfaceUnmountDiscardsLateResult(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	surface := NewListSurface("Owned", func(context.Context) linkclient.Result[[]models.ListedLink] {
		close(started)
		<-release
		return okLinks("late")
	}, func(o *SurfaceOptions) {
		o.Logger = logs.Discard()
	})

	done := make(chan struct{})
	go func() {
		surface.Mount(context.Background(), 0)
		close(done)
	}()
	<-started
	surface.Unmount()
	close(release)
	<-done

	snap := surface.Snapshot()
	assert.Equal(t, StateFetching, snap.State)
	assert.Empty(t, snap.Links)
}
