package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/base"
	"forgekit/internal/pkg/git/enrich"
	pkgErrors "forgekit/pkg/errors"
)

var repoPath = api.RepoPath{Owner: "octo", Name: "hello"}

// fakeGitHub 同时充当 API 与网页端, 按 "METHOD path" 分发
type fakeGitHub struct {
	hits   atomic.Int32
	routes map[string]http.HandlerFunc
}

func newFake(t *testing.T, token string, routes map[string]http.HandlerFunc) (*Provider, *fakeGitHub) {
	t.Helper()
	f := &fakeGitHub{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		h, ok := f.routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	p, err := NewProvider(api.ProviderConfig{Token: token, APIURL: srv.URL, BaseURL: srv.URL}, base.Options{
		Avatars: enrich.NewAvatarCache(16),
	})
	require.NoError(t, err)
	return p, f
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

const repoJSON = `{
	"name": "hello",
	"owner": {"login": "octo"},
	"description": "",
	"visibility": "public",
	"fork": false,
	"forks_count": 3,
	"language": "Go",
	"stargazers_count": 9,
	"default_branch": "main",
	"created_at": "2020-01-01T00:00:00Z",
	"updated_at": "2024-01-01T00:00:00Z"
}`

func TestRepoInfo(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /repos/octo/hello": reply(repoJSON),
	})
	repo, err := p.Repo().Info(context.Background(), repoPath)
	require.NoError(t, err)

	assert.Equal(t, "octo/hello", repo.FullName)
	assert.Nil(t, repo.Description)
	assert.Equal(t, api.VisibilityPublic, repo.Visibility)
	assert.Equal(t, uint64(3), repo.ForkCount)
	assert.Equal(t, uint64(9), repo.StarCount)
	assert.Equal(t, "Go", *repo.Language)
	assert.Equal(t, repo.UpdatedAt, repo.PushedAt)
}

func TestUserInfoSendsAuthHeaders(t *testing.T) {
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"GET /user": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
			assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
			assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))
			reply(`{"login":"octo","name":"Octo","email":null,"avatar_url":"https://a/1","followers":5,"following":1,"public_repos":7}`)(w, r)
		},
	})
	u, err := p.User().Info(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "octo", u.Login)
	assert.Equal(t, "Octo", *u.Name)
	assert.Nil(t, u.Email)
	assert.Equal(t, uint64(7), u.PublicRepoCount)
}

func TestCredentialPreconditions(t *testing.T) {
	p, f := newFake(t, "", nil)
	ctx := context.Background()

	calls := map[string]func() error{
		"user info":        func() error { _, err := p.User().Info(ctx, ""); return err },
		"user avatar":      func() error { _, err := p.User().AvatarURL(ctx, ""); return err },
		"contribution":     func() error { _, err := p.User().Contribution(ctx, ""); return err },
		"own repos":        func() error { _, err := p.User().RepoList(ctx, "", nil); return err },
		"add collaborator": func() error { _, err := p.Repo().AddCollaborator(ctx, repoPath, "bob", api.PermissionPush); return err },
		"issue create":     func() error { _, err := p.Issue().Create(ctx, repoPath, "t", "b", nil); return err },
		"issue update":     func() error { _, err := p.Issue().Update(ctx, repoPath, "1", nil); return err },
		"release create":   func() error { _, err := p.Release().Create(ctx, repoPath, "v1", nil); return err },
		"release update":   func() error { _, err := p.Release().Update(ctx, repoPath, "v1", api.ReleaseUpdateOptions{}); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, call(), pkgErrors.ErrCredentialMissing)
		})
	}
	assert.Equal(t, int32(0), f.hits.Load())
}

func TestSetTokenRejectsEmpty(t *testing.T) {
	p, _ := newFake(t, "", nil)
	assert.ErrorIs(t, p.SetToken("  "), pkgErrors.ErrCredentialMissing)
	require.NoError(t, p.SetToken("abc"))
	assert.Equal(t, "abc", p.Token())
}

func TestStatusMapping(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /orgs/private": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Must have admin rights"}`))
		},
		"GET /orgs/busy": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		},
	})
	ctx := context.Background()

	_, err := p.Org().Info(ctx, "missing")
	assert.ErrorIs(t, err, pkgErrors.ErrNotFound)

	_, err = p.Org().Info(ctx, "private")
	assert.Equal(t, pkgErrors.CodeForbidden, pkgErrors.Kind(err))
	assert.Contains(t, err.Error(), "Must have admin rights")

	_, err = p.Org().Info(ctx, "busy")
	assert.ErrorIs(t, err, pkgErrors.ErrRateLimit)
}

func TestUserAvatarScrapesAndCaches(t *testing.T) {
	p, f := newFake(t, "", map[string]http.HandlerFunc{
		"GET /octo": reply(`<html><head><meta name="octolytics-dimension-user_id" content="583231"></head></html>`),
	})
	for range 2 {
		avatar, err := p.User().AvatarURL(context.Background(), "octo")
		require.NoError(t, err)
		assert.Equal(t, "https://avatars.githubusercontent.com/u/583231?v=4", avatar)
	}
	assert.Equal(t, int32(1), f.hits.Load())
}

func TestOrgAvatar(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /github": reply(`<html><head><meta name="hovercard-subject-tag" content="organization:9919"></head></html>`),
	})
	avatar, err := p.Org().AvatarURL(context.Background(), "github")
	require.NoError(t, err)
	assert.Equal(t, "https://avatars.githubusercontent.com/u/9919?v=4", avatar)
}

func TestParseOrgIDMalformed(t *testing.T) {
	_, err := parseOrgID([]byte(`<meta name="hovercard-subject-tag" content="organization">`))
	assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err))

	_, err = parseUserID([]byte(`<html></html>`))
	assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err))
}

func TestParseContribution(t *testing.T) {
	page := `<table>
<tr>
<td class="ContributionCalendar-day" data-date="2024-01-06" id="c1"></td>
<td class="ContributionCalendar-day" data-date="2024-01-07" id="c2"></td>
<td class="ContributionCalendar-day" data-date="2024-01-08" id="c3"></td>
<td class="ContributionCalendar-day" data-date="bad" id="c4"></td>
</tr>
</table>
<tool-tip for="c1">No contributions on January 6th.</tool-tip>
<tool-tip for="c2">1,204 contributions on January 7th.</tool-tip>
<tool-tip for="c3">3 contributions on January 8th.</tool-tip>`

	result, err := parseContribution([]byte(page))
	require.NoError(t, err)
	assert.Equal(t, uint32(1207), result.Total)
	require.Len(t, result.Contributions, 2)
	assert.Equal(t, uint32(0), result.Contributions[0][0].Count)
	assert.Equal(t, uint32(1204), result.Contributions[0][1].Count)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), result.Contributions[1][0].Date)
}

func TestTipCount(t *testing.T) {
	assert.Equal(t, uint32(0), tipCount(""))
	assert.Equal(t, uint32(0), tipCount("No contributions on May 1st."))
	assert.Equal(t, uint32(12), tipCount("12 contributions on May 1st."))
	assert.Equal(t, uint32(1), tipCount("many contributions"))
}

func TestParseContributionWithoutCalendar(t *testing.T) {
	pages := []string{
		`<html><body><div class="login-wall">Sign in to view</div></body></html>`,
		`<table><tr><td class="ContributionCalendar-label">Mon</td></tr></table>`,
	}
	for _, page := range pages {
		_, err := parseContribution([]byte(page))
		assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err), page)
	}
}

func TestCommitInfoAvatars(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /repos/octo/hello/commits/HEAD": reply(`{
			"sha": "abc",
			"author": {"avatar_url": "https://a/alice.png"},
			"committer": null,
			"commit": {
				"author": {"name": "alice", "email": "a@x.io", "date": "2024-01-01T00:00:00Z"},
				"committer": {"name": "web flow", "email": "", "date": "2024-01-01T00:00:00Z"},
				"message": "init"
			},
			"stats": {"total": 3, "additions": 2, "deletions": 1},
			"files": [{"filename": "a.go", "status": "removed", "additions": 0, "deletions": 1, "changes": 1}]
		}`),
	})
	c, err := p.Commit().Info(context.Background(), repoPath, "")
	require.NoError(t, err)

	assert.Equal(t, "https://a/alice.png", c.Commit.Author.AvatarURL)
	assert.Equal(t, p.baseURL+"/identicons/web%20flow.png", c.Commit.Committer.AvatarURL)
	assert.Nil(t, c.Commit.Committer.Email)
	assert.Equal(t, uint64(3), c.Stats.Total)
	require.Len(t, c.Files, 1)
	assert.Equal(t, api.FileDeleted, c.Files[0].Status)
}

func TestCommitListHasEmptyFiles(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /repos/octo/hello/commits": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			assert.Equal(t, "alice", r.URL.Query().Get("author"))
			reply(`[{
				"sha": "abc",
				"author": null,
				"committer": null,
				"commit": {
					"author": {"name": "alice", "date": "2024-01-01T00:00:00Z"},
					"committer": {"name": "alice", "date": "2024-01-01T00:00:00Z"},
					"message": "init"
				}
			}]`)(w, r)
		},
	})
	list, err := p.Commit().List(context.Background(), repoPath, &api.CommitListOptions{
		ListOptions: api.ListOptions{PerPage: 1000},
		Author:      "alice",
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotNil(t, list[0].Files)
	assert.Empty(t, list[0].Files)
	assert.Equal(t, api.StatsInfo{}, list[0].Stats)
}

func TestAddCollaborator(t *testing.T) {
	var permission string
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"PUT /repos/octo/hello/collaborators/bob": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &body)
			permission = body["permission"]
			reply(`{"inviter": {"login": "octo", "avatar_url": "https://a/octo.png"}}`)(w, r)
		},
		"PUT /repos/octo/hello/collaborators/carol": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
		"GET /carol": reply(`<meta name="octolytics-dimension-user_id" content="42">`),
	})
	ctx := context.Background()

	res, err := p.Repo().AddCollaborator(ctx, repoPath, "bob", api.PermissionNone)
	require.NoError(t, err)
	assert.Equal(t, "pull", permission)
	assert.Equal(t, "octo", res.Login)

	res, err = p.Repo().AddCollaborator(ctx, repoPath, "carol", api.PermissionAdmin)
	require.NoError(t, err)
	assert.Equal(t, "carol", res.Login)
	assert.Equal(t, "https://avatars.githubusercontent.com/u/42?v=4", res.AvatarURL)
}

func TestIssueListAndLabels(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /repos/octo/hello/issues": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "open", q.Get("state"))
			assert.Equal(t, "bob", q.Get("creator"))
			reply(`[{
				"number": 7,
				"state": "open",
				"title": "bug",
				"body": null,
				"labels": [{"name": "bug", "color": "d73a4a"}],
				"user": {"login": "bob", "avatar_url": "https://a/bob.png"},
				"created_at": "2024-01-01T00:00:00Z",
				"updated_at": "2024-01-02T00:00:00Z",
				"closed_at": null
			}]`)(w, r)
		},
	})
	issues, err := p.Issue().List(context.Background(), repoPath, &api.IssueListOptions{State: api.StateOpened, Creator: "bob"})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "7", issues[0].Number)
	assert.Equal(t, api.StateOpened, issues[0].State)
	assert.Equal(t, "#d73a4a", issues[0].Labels[0].Color)
	assert.Equal(t, "bob", issues[0].User.Name)
	assert.Nil(t, issues[0].ClosedAt)
}

const releaseJSON = `{
	"id": 99,
	"tag_name": "v1.0.0",
	"target_commitish": "main",
	"prerelease": false,
	"name": null,
	"body": "notes",
	"author": {"login": "octo", "avatar_url": "https://a/octo.png"},
	"created_at": "2024-01-01T00:00:00Z",
	"assets": [{"name": "app.tar.gz", "browser_download_url": "https://dl/app.tar.gz"}]
}`

func TestReleaseInfoIsAnonymous(t *testing.T) {
	p, _ := newFake(t, "", map[string]http.HandlerFunc{
		"GET /repos/octo/hello/releases/latest": func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			reply(releaseJSON)(w, r)
		},
	})
	rel, err := p.Release().Info(context.Background(), repoPath, "")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", rel.Name)
	assert.Equal(t, "https://dl/app.tar.gz", rel.Assets[0].URL)
}

func TestReleaseUpdateLooksUpID(t *testing.T) {
	var patched map[string]string
	p, _ := newFake(t, "tkn", map[string]http.HandlerFunc{
		"GET /repos/octo/hello/releases/tags/v1.0.0": reply(releaseJSON),
		"PATCH /repos/octo/hello/releases/99": func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(data, &patched)
			reply(releaseJSON)(w, r)
		},
	})
	_, err := p.Release().Update(context.Background(), repoPath, "v1.0.0", api.ReleaseUpdateOptions{Body: "new"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "v1.0.0", "body": "new"}, patched)
}
