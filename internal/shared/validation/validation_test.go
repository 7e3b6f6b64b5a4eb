package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidSymbol は銘柄コードの受理・拒否パターンを検証します。
func TestIsValidSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"single letter", "A", true},
		{"four letters", "AAPL", true},
		{"seven letters", "ABCDEFG", true},
		{"lowercase", "aapl", false},
		{"mixed case", "AaPL", false},
		{"trailing digit", "AAPL1", false},
		{"eight letters", "ABCDEFGH", false},
		{"empty", "", false},
		{"suffix with dot", "7203.T", false},
		{"trailing newline", "AAPL\n", false},
		{"leading space", " AAPL", false},
		{"non ascii uppercase", "ÄPPL", false},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidSymbol(tt.input))
		})
	}
}

// TestIsValidSymbol_AllLengths は A-Z のみからなる1〜7文字の文字列がすべて受理され、それ以外の長さが拒否されることを検証します。
func TestIsValidSymbol_AllLengths(t *testing.T) {
	t.Parallel()

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for n := 0; n <= 9; n++ {
		for offset := 0; offset < len(alphabet); offset++ {
			var b strings.Builder
			for i := 0; i < n; i++ {
				b.WriteByte(alphabet[(offset+i*7)%len(alphabet)])
			}
			s := b.String()
			want := n >= 1 && n <= 7
			assert.Equal(t, want, IsValidSymbol(s), "symbol %q", s)
		}
	}
}

// TestIsValidChartType はチャート種別が "1" と "2" のみ受理されることを検証します。
func TestIsValidChartType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"2", true},
		{"0", false},
		{"3", false},
		{"line", false},
		{"", false},
		{"12", false},
		{"1 ", false},
	}

	for _, tt := range tests {

		tt := tt
		assert.Equal(t, tt.want, IsValidChartType(tt.input), "chart type %q", tt.input)
	}
}

// TestIsValidTimeSeries は時系列の選択が "1"〜"4" のみ受理されることを検証します。
func TestIsValidTimeSeries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"2", true},
		{"3", true},
		{"4", true},
		{"0", false},
		{"5", false},
		{"daily", false},
		{"", false},
		{"14", false},
	}

	for _, tt := range tests {

		tt := tt
		assert.Equal(t, tt.want, IsValidTimeSeries(tt.input), "time series %q", tt.input)
	}
}

// TestIsValidDate は日付フォーマットと暦の妥当性の両方を検証します。
func TestIsValidDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"new year", "2024-01-01", true},
		{"end of century", "1999-12-31", true},
		{"leap day", "2024-02-29", true},
		{"leap day divisible by 400", "2000-02-29", true},
		{"day first", "01-01-2024", false},
		{"slash separators", "2024/01/01", false},
		{"single digit month and day", "2024-1-1", false},
		{"empty", "", false},
		{"month 13", "2024-13-01", false},
		{"month 00", "2024-00-10", false},
		{"feb 30", "2024-02-30", false},
		{"feb 29 non leap year", "2023-02-29", false},
		{"feb 29 century non leap year", "1900-02-29", false},
		{"april 31", "2024-04-31", false},
		{"trailing time", "2024-01-01T00:00:00", false},
		{"trailing space", "2024-01-01 ", false},
		{"leading space", " 2024-01-01", false},
		{"not a date", "bad-date", false},
		{"year zero", "0000-01-01", false},
		{"first year", "0001-01-01", true},
		{"five digit year", "10000-01-01", false},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidDate(tt.input))
		})
	}
}

// TestIsValidDateRange は日付範囲の検証（同日を含む・逆順を拒否・不正な日付を拒否）を検証します。
func TestIsValidDateRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"ten days", "2024-01-01", "2024-01-10", true},
		{"same day", "2024-01-01", "2024-01-01", true},
		{"across years", "1999-12-31", "2000-01-01", true},
		{"reversed", "2024-01-10", "2024-01-01", false},
		{"bad start", "bad-date", "2024-01-10", false},
		{"bad end", "2024-01-01", "nope", false},
		{"impossible end", "2024-01-01", "2024-02-30", false},
		{"both empty", "", "", false},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidDateRange(tt.start, tt.end))
		})
	}
}

// TestParseDate はパース結果の日付がUTCの0時になることを検証します。
func TestParseDate(t *testing.T) {
	t.Parallel()

	got, ok := ParseDate("2024-03-15")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-15", got.Format(DateLayout))
	assert.Equal(t, 0, got.Hour())

	_, ok = ParseDate("2024-3-15")
	assert.False(t, ok)
}

// TestPredicates_Idempotent は同じ入力に対して何度呼んでも結果が変わらないことを検証します。
func TestPredicates_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"AAPL", "aapl", "1", "4", "5", "2024-02-29", "2023-02-29", ""}
	for _, in := range inputs {
		assert.Equal(t, IsValidSymbol(in), IsValidSymbol(in))
		assert.Equal(t, IsValidChartType(in), IsValidChartType(in))
		assert.Equal(t, IsValidTimeSeries(in), IsValidTimeSeries(in))
		assert.Equal(t, IsValidDate(in), IsValidDate(in))
		assert.Equal(t, IsValidDateRange(in, in), IsValidDateRange(in, in))
	}
}
