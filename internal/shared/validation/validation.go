// Package validation はチャート入力（銘柄・チャート種別・時系列・日付）の検証関数を提供します。
// すべての関数は副作用のない純粋関数で、不正な入力は常に false を返します。
package validation

import (
	"regexp"
	"time"
)

// DateLayout は受け付ける日付フォーマット（YYYY-MM-DD）です。
const DateLayout = "2006-01-02"

var (
	symbolPattern     = regexp.MustCompile(`^[A-Z]{1,7}$`)
	chartTypePattern  = regexp.MustCompile(`^[12]$`)
	timeSeriesPattern = regexp.MustCompile(`^[1-4]$`)
)

// IsValidSymbol は銘柄コードが1〜7文字の英大文字（A-Z）のみで構成されているかを判定します。
func IsValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// IsValidChartType はチャート種別が "1"（ライン）または "2"（バー）かを判定します。
func IsValidChartType(choice string) bool {
	return chartTypePattern.MatchString(choice)
}

// IsValidTimeSeries は時系列の選択が "1"〜"4"（日足・週足・月足・その他）かを判定します。
func IsValidTimeSeries(choice string) bool {
	return timeSeriesPattern.MatchString(choice)
}

// ParseDate は YYYY-MM-DD 形式の日付を厳密にパースします。
// 月・日は2桁必須で、存在しない日付（2月30日など）や前後の余分な文字は失敗になります。
// 西暦0年は暦日として扱いません。
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// IsValidDate は文字列が実在する YYYY-MM-DD の日付かを判定します。
func IsValidDate(date string) bool {
	_, ok := ParseDate(date)
	return ok
}

// IsValidDateRange は開始日・終了日がともに有効で、終了日が開始日以降であるかを判定します。
// 同日は有効な範囲として扱います。
func IsValidDateRange(start, end string) bool {
	s, ok := ParseDate(start)
	if !ok {
		return false
	}
	e, ok := ParseDate(end)
	if !ok {
		return false
	}
	return !e.Before(s)
}
