package github

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/htmlx"
	pkgErrors "forgekit/pkg/errors"
)

// parseUserID 个人主页中的用户数字 id
func parseUserID(body []byte) (string, error) {
	return metaContent(body, "octolytics-dimension-user_id")
}

// parseOrgID 组织主页 hovercard 标记形如 organization:123
func parseOrgID(body []byte) (string, error) {
	content, err := metaContent(body, "hovercard-subject-tag")
	if err != nil {
		return "", err
	}
	_, id, ok := strings.Cut(content, ":")
	if !ok || id == "" {
		return "", pkgErrors.Malformed("组织主页: hovercard 标记格式错误: %s", content)
	}
	return id, nil
}

func metaContent(body []byte, name string) (string, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return "", pkgErrors.Malformed("主页解析失败: %v", err)
	}
	meta := htmlx.First(doc, htmlx.Element("meta", htmlx.AttrEq("name", name)))
	if meta == nil {
		return "", pkgErrors.Malformed("主页缺少 meta[name=%s]", name)
	}
	content, _ := htmlx.Attr(meta, "content")
	if content == "" {
		return "", pkgErrors.Malformed("meta[name=%s] 内容为空", name)
	}
	return content, nil
}

func avatarFromID(id string) string {
	return fmt.Sprintf(avatarTemplate, id)
}

// parseContribution 解析贡献日历片段
// 每个格子的次数来自 for 属性指向它的 tool-tip
func parseContribution(body []byte) (*api.ContributionResult, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, pkgErrors.Malformed("贡献日历解析失败: %v", err)
	}

	tips := make(map[string]string)
	for _, tip := range htmlx.FindAll(doc, htmlx.Element("tool-tip", htmlx.HasAttr("for"))) {
		id, _ := htmlx.Attr(tip, "for")
		tips[id] = htmlx.Text(tip)
	}

	cells := htmlx.FindAll(doc, htmlx.Element("td",
		htmlx.Class("ContributionCalendar-day"),
		htmlx.HasAttr("data-date", "id"),
	))
	if len(cells) == 0 {
		return nil, pkgErrors.Malformed("贡献日历缺少 td.ContributionCalendar-day")
	}
	days := make([]api.ContributionData, 0, len(cells))
	for _, cell := range cells {
		day, ok := cellDay(cell, tips)
		if ok {
			days = append(days, day)
		}
	}
	return api.NewContributionResult(days), nil
}

func cellDay(cell *html.Node, tips map[string]string) (api.ContributionData, bool) {
	raw, _ := htmlx.Attr(cell, "data-date")
	date, err := api.ParseDay(api.DateDashed, raw)
	if err != nil {
		return api.ContributionData{}, false
	}
	id, _ := htmlx.Attr(cell, "id")
	return api.ContributionData{Date: date, Count: tipCount(tips[id])}, true
}

// tipCount "No contributions on ..." 为 0, 否则取开头的数字
// 只有活跃的日期才有非零提示, 开头不是数字时按 1 计
func tipCount(text string) uint32 {
	if strings.TrimSpace(text) == "" || strings.Contains(text, "No contributions") {
		return 0
	}
	fields := strings.Fields(text)
	n, err := strconv.ParseUint(strings.ReplaceAll(fields[0], ",", ""), 10, 32)
	if err != nil {
		return 1
	}
	return uint32(n)
}
