package handler

import (
	"github.com/gin-gonic/gin"

	"forgekit/internal/dto"
	"forgekit/internal/pkg/git/api"
	"forgekit/internal/service"
	"forgekit/pkg/constants"
	pkgErrors "forgekit/pkg/errors"
	"forgekit/pkg/responses"
	"forgekit/pkg/utils"
)

// ForgeHandler 只读的平台查询接口
type ForgeHandler struct {
	service *service.ForgeService
}

func NewForgeHandler(service *service.ForgeService) *ForgeHandler {
	return &ForgeHandler{
		service: service,
	}
}

// client 读取 :platform 路由参数, 失败时已写入响应
func (h *ForgeHandler) client(c *gin.Context) (api.Client, bool) {
	client, err := h.service.Client(c.Param("platform"))
	if err != nil {
		responses.Error(c, err)
		return nil, false
	}
	return client, true
}

// userName @me 表示当前认证用户
func userName(c *gin.Context) string {
	name := c.Param("name")
	if name == constants.CurrentUser {
		return ""
	}
	return name
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		responses.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return false
	}
	return true
}

func repoPath(c *gin.Context) (api.RepoPath, bool) {
	var uri dto.RepoURI
	if err := c.ShouldBindUri(&uri); err != nil {
		responses.ErrorWithDetail(c, pkgErrors.CodeBadRequest, "请求参数错误", utils.FormatValidationError(err))
		return api.RepoPath{}, false
	}
	return uri.Path(), true
}

func reply[T any](c *gin.Context, data T, err error) {
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Success(c, data)
}

// UserInfo 获取用户信息
// @Router /api/v1/{platform}/users/{name} [get]
func (h *ForgeHandler) UserInfo(c *gin.Context) {
	client, ok := h.client(c)
	if !ok {
		return
	}
	info, err := client.User().Info(c.Request.Context(), userName(c))
	reply(c, info, err)
}

// UserAvatar 获取用户头像
func (h *ForgeHandler) UserAvatar(c *gin.Context) {
	client, ok := h.client(c)
	if !ok {
		return
	}
	avatar, err := client.User().AvatarURL(c.Request.Context(), userName(c))
	reply(c, dto.AvatarResponse{AvatarURL: avatar}, err)
}

// UserContribution 获取用户贡献日历
func (h *ForgeHandler) UserContribution(c *gin.Context) {
	client, ok := h.client(c)
	if !ok {
		return
	}
	result, err := client.User().Contribution(c.Request.Context(), userName(c))
	reply(c, result, err)
}

// UserRepos 获取用户仓库列表
// @Param page query int false "页码"
// @Param per_page query int false "每页数量"
func (h *ForgeHandler) UserRepos(c *gin.Context) {
	var query dto.ListQuery
	if !bindQuery(c, &query) {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	repos, err := client.User().RepoList(c.Request.Context(), userName(c), query.Options())
	reply(c, repos, err)
}

// OrgInfo 获取组织信息
func (h *ForgeHandler) OrgInfo(c *gin.Context) {
	client, ok := h.client(c)
	if !ok {
		return
	}
	info, err := client.Org().Info(c.Request.Context(), c.Param("org"))
	reply(c, info, err)
}

func (h *ForgeHandler) OrgRepos(c *gin.Context) {
	var query dto.ListQuery
	if !bindQuery(c, &query) {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	repos, err := client.Org().RepoList(c.Request.Context(), c.Param("org"), query.Options())
	reply(c, repos, err)
}

func (h *ForgeHandler) OrgAvatar(c *gin.Context) {
	client, ok := h.client(c)
	if !ok {
		return
	}
	avatar, err := client.Org().AvatarURL(c.Request.Context(), c.Param("org"))
	reply(c, dto.AvatarResponse{AvatarURL: avatar}, err)
}

// RepoInfo 获取仓库信息
// @Router /api/v1/{platform}/repos/{owner}/{repo} [get]
func (h *ForgeHandler) RepoInfo(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	info, err := client.Repo().Info(c.Request.Context(), path)
	reply(c, info, err)
}

// CommitList 获取提交列表
// @Param sha query string false "分支或起始提交"
// @Param since query string false "RFC3339 起始时间"
func (h *ForgeHandler) CommitList(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	var query dto.CommitListQuery
	if !bindQuery(c, &query) {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	commits, err := client.Commit().List(c.Request.Context(), path, query.Options())
	reply(c, commits, err)
}

func (h *ForgeHandler) CommitInfo(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	commit, err := client.Commit().Info(c.Request.Context(), path, c.Param("sha"))
	reply(c, commit, err)
}

// IssueList 获取 Issue 列表
// @Param state query string false "open/closed"
// @Param labels query string false "逗号分隔的标签"
func (h *ForgeHandler) IssueList(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	var query dto.IssueListQuery
	if !bindQuery(c, &query) {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	issues, err := client.Issue().List(c.Request.Context(), path, query.Options())
	reply(c, issues, err)
}

func (h *ForgeHandler) IssueInfo(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	issue, err := client.Issue().Info(c.Request.Context(), path, c.Param("number"))
	reply(c, issue, err)
}

func (h *ForgeHandler) ReleaseList(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	releases, err := client.Release().List(c.Request.Context(), path)
	reply(c, releases, err)
}

// ReleaseInfo 获取发布, 未指定 :tag 时为最新发布
func (h *ForgeHandler) ReleaseInfo(c *gin.Context) {
	path, ok := repoPath(c)
	if !ok {
		return
	}
	client, ok := h.client(c)
	if !ok {
		return
	}
	release, err := client.Release().Info(c.Request.Context(), path, c.Param("tag"))
	reply(c, release, err)
}
