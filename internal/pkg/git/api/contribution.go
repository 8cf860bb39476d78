package api

import (
	"sort"
	"time"
)

// 贡献日历中使用的日期格式
const (
	DateCompact = "20060102"
	DateDashed  = "2006-01-02"
)

// ContributionResult 贡献日历
type ContributionResult struct {
	Total         uint32               `json:"total" yaml:"total"`
	Contributions [][]ContributionData `json:"contributions" yaml:"contributions"`
}

// ContributionData 单日贡献
type ContributionData struct {
	Date  time.Time `json:"date" yaml:"date"`
	Count uint32    `json:"count" yaml:"count"`
}

// ParseDay 按给定格式解析日期, 结果为 UTC 零点
func ParseDay(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, time.UTC)
}

// NewContributionResult 按日期升序排序后以周一为起点分周
// 同一天出现多次时合并计数
func NewContributionResult(days []ContributionData) *ContributionResult {
	merged := make(map[time.Time]uint32, len(days))
	for _, d := range days {
		day := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, time.UTC)
		merged[day] += d.Count
	}

	sorted := make([]ContributionData, 0, len(merged))
	for day, count := range merged {
		sorted = append(sorted, ContributionData{Date: day, Count: count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	result := &ContributionResult{Contributions: [][]ContributionData{}}
	var (
		week               []ContributionData
		lastYear, lastWeek int
	)
	for i, d := range sorted {
		year, w := d.Date.ISOWeek()
		if i > 0 && (year != lastYear || w != lastWeek) {
			result.Contributions = append(result.Contributions, week)
			week = nil
		}
		week = append(week, d)
		lastYear, lastWeek = year, w
		result.Total += d.Count
	}
	if len(week) > 0 {
		result.Contributions = append(result.Contributions, week)
	}

	return result
}
