// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import "golang.org/x/text/language"

// Labels holds the fixed wording of a rendered report.
type Labels struct {
	Title   string
	Engine  string
	Summary string
	Average string
}

var (
	englishLabels = Labels{
		Title:   "Translation Comparison",
		Engine:  "Engine",
		Summary: "Overall BLEU Summary",
		Average: "Average",
	}
	chineseLabels = Labels{
		Title:   "翻译结果比较",
		Engine:  "翻译引擎",
		Summary: "总体BLEU评分汇总",
		Average: "平均分",
	}
)

var labelMatcher = language.NewMatcher([]language.Tag{language.English, language.Chinese})

// LabelsFor returns the labels closest to locale. Unknown or empty locales
// get English.
func LabelsFor(locale string) Labels {
	tag, err := language.Parse(locale)
	if err != nil {
		return englishLabels
	}
	_, idx, conf := labelMatcher.Match(tag)
	if idx == 1 && conf != language.No {
		return chineseLabels
	}
	return englishLabels
}
