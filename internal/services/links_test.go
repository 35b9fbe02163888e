package services

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/golinks/internal/db/memory"
	"github.com/fsdevblog/golinks/internal/logs"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/repositories/memstore"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "Docs", want: "docs"},
		{raw: "/team/On-Call/", want: "team/on-call"},
		{raw: "a1-b2", want: "a1-b2"},
		{raw: "", wantErr: ErrInvalidName},
		{raw: "/", wantErr: ErrInvalidName},
		{raw: "-docs", wantErr: ErrInvalidName},
		{raw: "docs-", wantErr: ErrInvalidName},
		{raw: "do cs", wantErr: ErrInvalidName},
		{raw: "docs?x", wantErr: ErrInvalidName},
		{raw: "static", wantErr: ErrReservedName},
		{raw: "static/app.js", wantErr: ErrInvalidName},
		{raw: "static/js", wantErr: ErrReservedName},
		{raw: "/api/", wantErr: ErrReservedName},
		{raw: "API/popular", wantErr: ErrReservedName},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := CleanName(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type LinkServiceSuite struct {
	suite.Suite
	service *LinkService
}

func TestLinkServiceSuite(t *testing.T) {
	suite.Run(t, new(LinkServiceSuite))
}

func (s *LinkServiceSuite) SetupTest() {
	repo := memstore.NewLinkRepo(memory.NewMemStorage())
	s.service = NewLinkService(repo, 2, logs.Discard())
}

func (s *LinkServiceSuite) link() models.Link {
	return models.Link{URL: gofakeit.URL(), Description: gofakeit.Sentence(3)}
}

func (s *LinkServiceSuite) TestCreate() {
	ctx := context.Background()

	rec, err := s.service.Create(ctx, "/Docs", models.Link{Name: "ignored", URL: " https://docs.example.com ", Description: "Docs"}, "")
	s.Require().NoError(err)
	s.Equal("docs", rec.Name)
	s.Equal("https://docs.example.com", rec.URL)
	s.Equal(AnonymousOwner, rec.CreatedBy)

	_, err = s.service.Create(ctx, "docs", s.link(), "me@example.com")
	s.ErrorIs(err, ErrLinkExists)

	_, err = s.service.Create(ctx, "bad name", s.link(), "")
	s.ErrorIs(err, ErrInvalidName)

	_, err = s.service.Create(ctx, "empty", models.Link{Description: "no url"}, "")
	s.ErrorIs(err, ErrInvalidPayload)
}

func (s *LinkServiceSuite) TestResolveAndLists() {
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.service.Create(ctx, name, s.link(), "me@example.com")
		s.Require().NoError(err)
	}

	rec, err := s.service.Resolve(ctx, "B")
	s.Require().NoError(err)
	s.Equal(1, rec.Views)
	_, err = s.service.Resolve(ctx, "c")
	s.Require().NoError(err)
	_, err = s.service.Resolve(ctx, "c")
	s.Require().NoError(err)

	popular, err := s.service.Popular(ctx)
	s.Require().NoError(err)
	s.Require().Len(popular, 2)
	s.Equal("c", popular[0].Name)
	s.Equal(2, popular[0].Views)
	s.Equal("b", popular[1].Name)

	recent, err := s.service.Recent(ctx)
	s.Require().NoError(err)
	s.Len(recent, 2)

	owned, err := s.service.Owned(ctx, "me@example.com")
	s.Require().NoError(err)
	s.Len(owned, 2)

	_, err = s.service.Resolve(ctx, "missing")
	s.ErrorIs(err, ErrRecordNotFound)
}

func (s *LinkServiceSuite) TestDisable() {
	ctx := context.Background()
	_, err := s.service.Create(ctx, "gone", s.link(), "")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Disable(ctx, "/gone/"))
	s.NoError(s.service.Disable(ctx, "never-existed"))
	s.ErrorIs(s.service.Disable(ctx, "-bad"), ErrInvalidName)

	_, err = s.service.Resolve(ctx, "gone")
	s.ErrorIs(err, ErrRecordNotFound)

	found, err := s.service.Query(ctx, "")
	s.Require().NoError(err)
	s.Empty(found)
}
