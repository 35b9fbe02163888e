package sql

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/golinks/internal/db"
	"github.com/fsdevblog/golinks/internal/logs"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/repositories"
)

type SnapshotRepoSuite struct {
	suite.Suite
	repo *SnapshotRepo
}

func TestSnapshotRepoSuite(t *testing.T) {
	suite.Run(t, new(SnapshotRepoSuite))
}

func (s *SnapshotRepoSuite) SetupTest() {
	conn, err := db.NewSnapshotDB(filepath.Join(s.T().TempDir(), "snapshots.db"))
	s.Require().NoError(err)
	s.repo = NewSnapshotRepo(conn, logs.Discard())
}

func entries(takenAt time.Time, kind models.ListKind, names ...string) []models.SnapshotEntry {
	out := make([]models.SnapshotEntry, len(names))
	for i, name := range names {
		out[i] = models.SnapshotEntry{
			TakenAt:  takenAt,
			Kind:     kind,
			Position: i,
			Name:     name,
			URL:      "https://example.com/" + name,
			Views:    len(names) - i,
		}
	}
	return out
}

func (s *SnapshotRepoSuite) TestLatest() {
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	s.Require().NoError(s.repo.SaveAll(ctx, entries(first, models.ListKindPopular, "old")))
	s.Require().NoError(s.repo.SaveAll(ctx, append(
		entries(second, models.ListKindPopular, "a", "b", "c"),
		entries(second, models.ListKindRecent, "z")...,
	)))

	got, err := s.repo.Latest(ctx, models.ListKindPopular)
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Equal("a", got[0].Name)
	s.Equal("c", got[2].Name)
	s.True(second.Equal(got[0].TakenAt))

	recent, err := s.repo.Latest(ctx, models.ListKindRecent)
	s.Require().NoError(err)
	s.Len(recent, 1)
}

func (s *SnapshotRepoSuite) TestLatestMissing() {
	_, err := s.repo.Latest(context.Background(), models.ListKindOwned)
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *SnapshotRepoSuite) TestSaveEmpty() {
	s.NoError(s.repo.SaveAll(context.Background(), nil))
}
