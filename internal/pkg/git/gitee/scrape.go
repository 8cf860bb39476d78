package gitee

import (
	"strconv"
	"strings"

	"forgekit/internal/pkg/git/api"
	"forgekit/internal/pkg/git/htmlx"
	pkgErrors "forgekit/pkg/errors"
)

// parseContribution 解析个人主页的贡献方块
// data-content 形如 "2024-01-02: 3个贡献", date 为 YYYYMMDD
func parseContribution(body []byte) (*api.ContributionResult, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return nil, pkgErrors.Malformed("贡献日历解析失败: %v", err)
	}

	boxes := htmlx.FindIn(doc,
		htmlx.Element("div", htmlx.Class("right-side")),
		htmlx.Element("div", htmlx.Class("box"), htmlx.HasAttr("data-content", "date")),
	)
	if len(boxes) == 0 {
		return nil, pkgErrors.Malformed("贡献日历缺少 div.right-side div.box")
	}
	days := make([]api.ContributionData, 0, len(boxes))
	for _, box := range boxes {
		raw, _ := htmlx.Attr(box, "date")
		date, err := api.ParseDay(api.DateCompact, raw)
		if err != nil {
			continue
		}
		content, _ := htmlx.Attr(box, "data-content")
		days = append(days, api.ContributionData{Date: date, Count: boxCount(content)})
	}
	return api.NewContributionResult(days), nil
}

func boxCount(content string) uint32 {
	before, _, _ := strings.Cut(strings.ReplaceAll(content, "：", ":"), "个")
	if i := strings.LastIndex(before, ":"); i >= 0 {
		before = before[i+1:]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(before), 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// parseOrgAvatar 组织主页头像, 去掉 ! 之后的缩放参数
func parseOrgAvatar(body []byte) (string, error) {
	doc, err := htmlx.Parse(body)
	if err != nil {
		return "", pkgErrors.Malformed("组织主页解析失败: %v", err)
	}
	img := htmlx.First(doc, htmlx.Element("img", htmlx.Class("avatar", "current-group-avatar")))
	if img == nil {
		return "", pkgErrors.Malformed("组织主页缺少头像")
	}
	src, _ := htmlx.Attr(img, "src")
	src, _, _ = strings.Cut(src, "!")
	if src == "" {
		return "", pkgErrors.Malformed("组织头像地址为空")
	}
	return src, nil
}
