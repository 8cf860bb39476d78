package gitcode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/enrich"
	pkgErrors "forgekit/pkg/errors"
)

var repoPath = api.RepoPath{Owner: "kernel", Name: "linux"}

// newFake API、网页与网页接口共用同一个测试服务
func newFake(t *testing.T, token string, routes map[string]http.HandlerFunc) (*Provider, *atomic.Int32) {
	t.Helper()
	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	p, err := NewProvider(api.ProviderConfig{
		Token:     token,
		APIURL:    srv.URL,
		BaseURL:   srv.URL,
		WebAPIURL: srv.URL,
	}, base.Options{Avatars: enrich.NewAvatarCache(16)})
	require.NoError(t, err)
	return p, hits
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func profile(avatars map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		avatar := avatars[r.URL.Query().Get("username")]
		reply(`{"avatar":"` + avatar + `"}`)(w, r)
	}
}

func TestRestRequiresToken(t *testing.T) {
	p, hits := newFake(t, "", nil)
	ctx := context.Background()

	calls := map[string]func() error{
		"user info":    func() error { _, err := p.User().Info(ctx, "alice"); return err },
		"user repos":   func() error { _, err := p.User().RepoList(ctx, "alice", nil); return err },
		"repo info":    func() error { _, err := p.Repo().Info(ctx, repoPath); return err },
		"commit info":  func() error { _, err := p.Commit().Info(ctx, repoPath, ""); return err },
		"commit list":  func() error { _, err := p.Commit().List(ctx, repoPath, nil); return err },
		"issue info":   func() error { _, err := p.Issue().Info(ctx, repoPath, "1"); return err },
		"issue list":   func() error { _, err := p.Issue().List(ctx, repoPath, nil); return err },
		"release info": func() error { _, err := p.Release().Info(ctx, repoPath, ""); return err },
		"release list": func() error { _, err := p.Release().List(ctx, repoPath); return err },
		"avatar self":  func() error { _, err := p.User().AvatarURL(ctx, ""); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), pkgErrors.ErrCredentialMissing)
		})
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestCommitInfoEndToEnd(t *testing.T) {
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"GET /repos/kernel/linux/commits/abc123": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
			reply(`{
				"sha": "abc123",
				"commit": {
					"author": {"name": "alice", "email": "alice@example.com", "date": "2024-05-01T10:00:00+08:00"},
					"committer": {"name": "bob", "email": "", "date": "2024-05-01T11:00:00+08:00"},
					"message": "initial commit"
				},
				"stats": {"total": 5, "additions": 4, "deletions": 1},
				"parents": []
			}`)(w, r)
		},
		"GET /uc/api/v1/user/setting/profile": profile(map[string]string{
			"alice": "https://cdn/alice.png",
		}),
	})

	c, err := p.Commit().Info(context.Background(), repoPath, "abc123")
	require.NoError(t, err)

	assert.Equal(t, "abc123", c.Sha)
	assert.Equal(t, "https://cdn/alice.png", c.Commit.Author.AvatarURL)
	assert.Equal(t, DefaultAvatar, c.Commit.Committer.AvatarURL)
	assert.Equal(t, "alice@example.com", *c.Commit.Author.Email)
	assert.Nil(t, c.Commit.Committer.Email)
	assert.Equal(t, "initial commit", c.Commit.Message)
	assert.Equal(t, uint64(5), c.Stats.Total)
	assert.NotNil(t, c.Files)
	assert.Empty(t, c.Files)
}

func TestCommitInfoComparesWithParent(t *testing.T) {
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"GET /repos/kernel/linux/commits/HEAD": reply(`{
			"sha": "def456",
			"commit": {
				"author": {"name": "alice", "date": "2024-05-01T10:00:00Z"},
				"committer": {"name": "alice", "date": "2024-05-01T10:00:00Z"},
				"message": "fix"
			},
			"parents": [{"sha": "abc123"}]
		}`),
		"GET /repos/kernel/linux/compare/abc123...def456": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("straight"))
			reply(`{"files": [
				{"filename": "main.c", "status": "modified", "additions": 2, "deletions": 1, "changes": 3},
				{"new_path": "README", "status": "added", "additions": 1, "deletions": 0, "changes": 1}
			]}`)(w, r)
		},
		"GET /uc/api/v1/user/setting/profile": profile(nil),
	})

	c, err := p.Commit().Info(context.Background(), repoPath, "")
	require.NoError(t, err)
	require.Len(t, c.Files, 2)
	assert.Equal(t, "main.c", c.Files[0].FileName)
	assert.Equal(t, api.FileModified, c.Files[0].Status)
	assert.Equal(t, "README", c.Files[1].FileName)
	assert.Equal(t, api.FileAdded, c.Files[1].Status)
}

func TestCommitListKeepsOrder(t *testing.T) {
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"GET /repos/kernel/linux/commits": reply(`[
			{"sha": "1", "commit": {"author": {"name": "alice", "date": "2024-05-01T10:00:00Z"}, "committer": {"name": "alice", "date": "2024-05-01T10:00:00Z"}, "message": "a"}},
			{"sha": "2", "commit": {"author": {"name": "bob", "date": "2024-05-01T10:00:00Z"}, "committer": {"name": "carol", "date": "2024-05-01T10:00:00Z"}, "message": "b"}},
			{"sha": "3", "commit": {"author": {"name": "carol", "date": "2024-05-01T10:00:00Z"}, "committer": {"name": "alice", "date": "2024-05-01T10:00:00Z"}, "message": "c"}}
		]`),
		"GET /uc/api/v1/user/setting/profile": profile(map[string]string{
			"alice": "https://cdn/alice.png",
			"carol": "https://cdn/carol.png",
		}),
	})

	list, err := p.Commit().List(context.Background(), repoPath, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].Sha, list[1].Sha, list[2].Sha})
	assert.Equal(t, DefaultAvatar, list[1].Commit.Author.AvatarURL)
	assert.Equal(t, "https://cdn/carol.png", list[1].Commit.Committer.AvatarURL)
	assert.Equal(t, "https://cdn/carol.png", list[2].Commit.Author.AvatarURL)
}

func TestUserInfoRepoCount(t *testing.T) {
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"GET /user": reply(`{"username": "alice", "name": "Alice", "avatar_url": "https://cdn/alice.png", "followers": 2, "following": 3}`),
		"GET /api/v2/projects/profile/alice": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "created", r.URL.Query().Get("repo_query_type"))
			reply(`{"total": 17, "content": []}`)(w, r)
		},
	})
	u, err := p.User().Info(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Login)
	assert.Equal(t, uint64(17), u.PublicRepoCount)
}

func TestUserAvatarMissing(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /uc/api/v1/user/setting/profile": profile(nil),
	})
	_, err := p.User().AvatarURL(context.Background(), "ghost")
	assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err))
}

func TestContribution(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /uc/api/v1/events/alice/contributions": reply(`{"2024-01-08": 2, "2024-01-06": 1, "2024-01-07": 4}`),
	})
	result, err := p.User().Contribution(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), result.Total)
	require.Len(t, result.Contributions, 2)
	assert.Len(t, result.Contributions[0], 2)
}

func TestOrgInfoFallsBackToGroupAvatar(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /orgs/openeuler": reply(`{"login": "openeuler", "name": "openEuler", "avatar_url": "", "followers": 9}`),
		"GET /api/v2/groups/openeuler": func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("Referer"))
			reply(`{"avatar": "https://cdn/openeuler.png"}`)(w, r)
		},
	})
	org, err := p.Org().Info(context.Background(), "openeuler")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/openeuler.png", org.AvatarURL)
	assert.Equal(t, uint64(9), org.FollowCount)
}

func TestAddCollaboratorEmptyBody(t *testing.T) {
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"PUT /repos/kernel/linux/collaborators/bob": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
		"GET /uc/api/v1/user/setting/profile": profile(map[string]string{"bob": "https://cdn/bob.png"}),
	})
	res, err := p.Repo().AddCollaborator(context.Background(), repoPath, "bob", api.PermissionPush)
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Login)
	assert.Equal(t, "https://cdn/bob.png", res.AvatarURL)
}

func TestRepoVisibility(t *testing.T) {
	tests := []struct {
		name string
		json string
		want api.Visibility
	}{
		{"public flag", `{"path": "linux", "owner": {"login": "kernel"}, "public": true, "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}`, api.VisibilityPublic},
		{"private flag", `{"path": "linux", "owner": {"login": "kernel"}, "public": false, "visibility": "public", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}`, api.VisibilityPrivate},
		{"visibility level", `{"path": "linux", "owner": {"login": "kernel"}, "visibility_level": "public", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}`, api.VisibilityPublic},
		{"private level", `{"path": "linux", "owner": {"login": "kernel"}, "visibility_level": "private", "visibility": "public", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}`, api.VisibilityPrivate},
		{"visibility string", `{"path": "linux", "owner": {"login": "kernel"}, "visibility": "Public", "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}`, api.VisibilityPublic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
				"GET /repos/kernel/linux": reply(tt.json),
			})
			repo, err := p.Repo().Info(context.Background(), repoPath)
			require.NoError(t, err)
			assert.Equal(t, tt.want, repo.Visibility)
			assert.Equal(t, repo.UpdatedAt, repo.PushedAt)
		})
	}
}
