package app

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/golinks/internal/bmeta"
	"github.com/fsdevblog/golinks/internal/config"
	"github.com/fsdevblog/golinks/internal/db"
	"github.com/fsdevblog/golinks/internal/linkclient"
	"github.com/fsdevblog/golinks/internal/linkclient/lcmocks"
	"github.com/fsdevblog/golinks/internal/logs"
	"github.com/fsdevblog/golinks/internal/models"
	"github.com/fsdevblog/golinks/internal/repositories/sql"
	"github.com/fsdevblog/golinks/internal/tokens"
	"github.com/fsdevblog/golinks/internal/ui"
)

var docs = models.Link{URL: "https://docs.example.com", Name: "docs", Description: "Team docs"}

func links(l ...models.Link) linkclient.Result[[]models.ListedLink] {
	out := make([]models.ListedLink, 0, len(l))
	for i, link := range l {
		out = append(out, models.ListedLink{Link: link, Views: 100 - i})
	}
	return linkclient.Ok(out)
}

func failedLinks(status int, message string) linkclient.Result[[]models.ListedLink] {
	return linkclient.Err(make([]models.ListedLink, 0), linkclient.FailureStatus, status, message)
}

type AppSuite struct {
	suite.Suite
	api *lcmocks.APIMock
	out *bytes.Buffer
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}

func (s *AppSuite) SetupTest() {
	s.api = new(lcmocks.APIMock)
	s.out = new(bytes.Buffer)
}

func (s *AppSuite) newApp(input io.Reader, conf config.ClientConfig) *App {
	return Must(New(conf, func(o *Options) {
		o.API = s.api
		o.In = input
		o.Out = s.out
		o.Logger = logs.Discard()
		o.Build = bmeta.Info{Version: "v1.0.0"}
	}))
}

func (s *AppSuite) run(input string, args ...string) error {
	return s.newApp(strings.NewReader(input), config.ClientConfig{}).Run(context.Background(), args)
}

func (s *AppSuite) TestNewValidatesConfig() {
	_, err := New(config.ClientConfig{Timeout: config.DefaultTimeout}, func(o *Options) {
		o.Logger = logs.Discard()
	})
	s.Error(err)
}

func (s *AppSuite) TestUsage() {
	s.ErrorIs(s.run(""), ErrUsage)
	s.Contains(s.out.String(), "Usage: golinks")

	s.out.Reset()
	s.ErrorIs(s.run("", "rename"), ErrUsage)
	s.Contains(s.out.String(), "Unknown command `rename`")

	s.ErrorIs(s.run("", "create", "-unknown"), ErrUsage)
}

func (s *AppSuite) TestCreate() {
	s.api.On("Create", mock.Anything, docs).Return(linkclient.Ok(linkclient.Done{})).Once()

	err := s.run("", "create", "-name", "docs", "-url", "https://docs.example.com", "-description", "Team docs")
	s.Require().NoError(err)
	s.Equal("Link go/docs created successfully!\n", s.out.String())
	s.api.AssertExpectations(s.T())
}

func (s *AppSuite) TestCreateFailure() {
	s.api.On("Create", mock.Anything, docs).
		Return(linkclient.Err(linkclient.Done{}, linkclient.FailureStatus, http.StatusConflict, "link already exists")).
		Once()

	err := s.run("", "create", "-name", "docs", "-url", "https://docs.example.com", "-description", "Team docs")
	s.ErrorIs(err, ErrCommandFailed)
	s.Equal("Error: link already exists\n", s.out.String())
}

func (s *AppSuite) TestCreateValidation() {
	err := s.run("", "create", "-name", "docs", "-url", "docs.example.com", "-description", "Team docs")

	var validationErr *ui.ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal("url", validationErr.Field)
	s.api.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *AppSuite) TestDisable() {
	tests := []struct {
		name     string
		input    string
		args     []string
		called   bool
		expected string
	}{
		{
			name:     "confirmed",
			input:    "y\n",
			args:     []string{"disable", "-name", "docs"},
			called:   true,
			expected: "Disable go/docs? [y/N]: Link go/docs disabled\n",
		},
		{
			name:     "declined",
			input:    "\n",
			args:     []string{"disable", "-name", "docs"},
			expected: "Disable go/docs? [y/N]: Canceled\n",
		},
		{
			name:     "end of input",
			input:    "",
			args:     []string{"disable", "docs"},
			expected: "Disable go/docs? [y/N]: \nCanceled\n",
		},
		{
			name:     "yes flag",
			args:     []string{"disable", "-yes", "-name", "docs"},
			called:   true,
			expected: "Link go/docs disabled\n",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			if tt.called {
				s.api.On("Disable", mock.Anything, "docs").Return(linkclient.Ok(linkclient.Done{})).Once()
			}

			s.Require().NoError(s.run(tt.input, tt.args...))
			s.Equal(tt.expected, s.out.String())
			if tt.called {
				s.api.AssertExpectations(s.T())
			} else {
				s.api.AssertNotCalled(s.T(), "Disable", mock.Anything, mock.Anything)
			}
		})
	}
}

func (s *AppSuite) TestDisableRequiresName() {
	var validationErr *ui.ValidationError
	s.ErrorAs(s.run("", "disable", "-yes"), &validationErr)
}

func (s *AppSuite) TestLists() {
	s.api.On("ListPopular", mock.Anything).Return(links(docs)).Once()
	s.api.On("ListRecent", mock.Anything).Return(links()).Once()
	s.api.On("ListOwned", mock.Anything).
		Return(failedLinks(http.StatusUnauthorized, "missing authentication token")).Once()

	s.Require().NoError(s.run("", "popular"))
	s.Contains(s.out.String(), "== Popular ==\n")
	s.Contains(s.out.String(), "go/docs  https://docs.example.com  Team docs  100 views")

	s.out.Reset()
	s.Require().NoError(s.run("", "recent"))
	s.Equal("== Recent ==\n"+ui.TextNoLinks+"\n", s.out.String())

	s.out.Reset()
	s.ErrorIs(s.run("", "owned"), ErrCommandFailed)
	s.Equal("== My Links ==\nError: missing authentication token\n", s.out.String())
	s.api.AssertExpectations(s.T())
}

func (s *AppSuite) TestQuery() {
	s.api.On("Query", mock.Anything, "team docs").Return(links(docs)).Once()

	s.Require().NoError(s.run("", "query", "team", "docs"))
	s.Contains(s.out.String(), "== Results for \"team docs\" ==\n")
	s.Contains(s.out.String(), "go/docs")

	var validationErr *ui.ValidationError
	s.ErrorAs(s.run("", "query"), &validationErr)
	s.api.AssertNumberOfCalls(s.T(), "Query", 1)
}

func (s *AppSuite) TestQueryFailure() {
	s.api.On("Query", mock.Anything, "docs").
		Return(linkclient.Err(make([]models.ListedLink, 0), linkclient.FailureTransport, 0, linkclient.MessageTransport)).
		Once()

	s.ErrorIs(s.run("", "query", "docs"), ErrCommandFailed)
	s.Contains(s.out.String(), "Error: "+linkclient.MessageTransport)
}

func (s *AppSuite) TestWhoami() {
	token, err := tokens.GenerateOwnerJWT("me@example.com", time.Hour, []byte("secret"))
	s.Require().NoError(err)

	a := s.newApp(strings.NewReader(""), config.ClientConfig{AuthToken: token})
	s.Require().NoError(a.Run(context.Background(), []string{"whoami"}))
	s.Contains(s.out.String(), "Signed in as me@example.com\nToken expires at ")

	s.ErrorIs(s.run("", "whoami"), ErrNoToken)

	broken := s.newApp(strings.NewReader(""), config.ClientConfig{AuthToken: "not-a-token"})
	s.Error(broken.Run(context.Background(), []string{"whoami"}))
}

func (s *AppSuite) TestSnapshot() {
	s.api.On("ListPopular", mock.Anything).Return(links(docs)).Once()
	s.api.On("ListRecent", mock.Anything).Return(failedLinks(http.StatusInternalServerError, "internal error")).Once()

	dsn := filepath.Join(s.T().TempDir(), "snapshots.db")
	s.Require().NoError(s.run("", "snapshot", "-dsn", dsn, "-kinds", "Popular, recent"))
	s.Contains(s.out.String(), "popular: 1 saved\nrecent: skipped (internal error)\n")
	s.api.AssertNotCalled(s.T(), "ListOwned", mock.Anything)

	conn, err := db.NewSnapshotDB(dsn)
	s.Require().NoError(err)
	saved, err := sql.NewSnapshotRepo(conn, logs.Discard()).Latest(context.Background(), models.ListKindPopular)
	s.Require().NoError(err)
	s.Require().Len(saved, 1)
	s.Equal("docs", saved[0].Name)
}

func (s *AppSuite) TestSnapshotRequiresDSN() {
	s.ErrorIs(s.run("", "snapshot"), ErrNoSnapshotDSN)
	s.Error(s.run("", "snapshot", "-dsn", filepath.Join(s.T().TempDir(), "x.db"), "-kinds", "weekly"))
}

func (s *AppSuite) TestVersion() {
	s.Require().NoError(s.run("", "version"))
	s.Equal("Build version: v1.0.0\nBuild date: N/A\nBuild commit: N/A\n", s.out.String())
}

func (s *AppSuite) TestShellRefreshesVisibleTab() {
	s.api.On("ListPopular", mock.Anything).Return(links()).Once()
	s.api.On("ListPopular", mock.Anything).Return(links(docs)).Once()
	s.api.On("Create", mock.Anything, docs).Return(linkclient.Ok(linkclient.Done{})).Once()
	s.api.On("ListRecent", mock.Anything).Return(links(docs)).Once()

	input := "create docs https://docs.example.com Team docs\ntab recent\nexit\n"
	s.Require().NoError(s.run(input, "shell"))

	out := s.out.String()
	s.Contains(out, "Internal URL shortener")
	s.Equal(2, strings.Count(out, "== Popular =="))
	s.Contains(out, "Link go/docs created successfully!")
	s.Contains(out, "== Recent ==")
	s.Less(strings.Index(out, ui.TextNoLinks), strings.Index(out, "go/docs  "))
	s.api.AssertExpectations(s.T())
}

func (s *AppSuite) TestShellDisableAsksConfirmation() {
	s.api.On("ListPopular", mock.Anything).Return(links(docs)).Once()
	s.api.On("ListPopular", mock.Anything).Return(links()).Once()
	s.api.On("Disable", mock.Anything, "docs").Return(linkclient.Ok(linkclient.Done{})).Once()

	s.Require().NoError(s.run("disable docs\nyes\n", "shell"))

	out := s.out.String()
	s.Contains(out, "Disable go/docs? [y/N]: ")
	s.Contains(out, "Link go/docs disabled")
	s.api.AssertExpectations(s.T())
}

func (s *AppSuite) TestShellFailedMutationKeepsTab() {
	s.api.On("ListPopular", mock.Anything).Return(links(docs)).Once()
	s.api.On("Create", mock.Anything, docs).
		Return(linkclient.Err(linkclient.Done{}, linkclient.FailureStatus, http.StatusConflict, "link already exists")).
		Once()

	input := "create docs https://docs.example.com Team docs\ncreate docs\ntab weekly\nfly\n"
	s.Require().NoError(s.run(input, "shell"))

	out := s.out.String()
	s.Contains(out, "Error: link already exists")
	s.Contains(out, "Usage: create NAME URL DESCRIPTION...")
	s.Contains(out, "Error: unknown tab `weekly`")
	s.Contains(out, "Unknown command `fly`")
	s.api.AssertNumberOfCalls(s.T(), "ListPopular", 1)
}

func (s *AppSuite) TestShellStopsOnCancel() {
	s.api.On("ListPopular", mock.Anything).Return(links()).Maybe()

	reader, writer := io.Pipe()
	defer func() { _ = writer.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	a := s.newApp(reader, config.ClientConfig{})

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, []string{"shell"}) }()
	cancel()

	select {
	case err := <-done:
		s.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		s.Fail("shell did not stop")
	}
}
