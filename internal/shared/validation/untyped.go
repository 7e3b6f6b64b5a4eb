package validation

// Text は型が不定の値（JSONデコード結果など）を文字列として取り出します。
// 文字列以外は変換を試みず ok=false を返します。
func Text(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// SymbolValue は IsValidSymbol の型不定版です。文字列以外は false。
func SymbolValue(v any) bool {
	s, ok := Text(v)
	return ok && IsValidSymbol(s)
}

// ChartTypeValue は IsValidChartType の型不定版です。
func ChartTypeValue(v any) bool {
	s, ok := Text(v)
	return ok && IsValidChartType(s)
}

// TimeSeriesValue は IsValidTimeSeries の型不定版です。
func TimeSeriesValue(v any) bool {
	s, ok := Text(v)
	return ok && IsValidTimeSeries(s)
}

// DateValue は IsValidDate の型不定版です。
func DateValue(v any) bool {
	s, ok := Text(v)
	return ok && IsValidDate(s)
}

// DateRangeValue は IsValidDateRange の型不定版です。
func DateRangeValue(start, end any) bool {
	s, ok := Text(start)
	if !ok {
		return false
	}
	e, ok := Text(end)
	if !ok {
		return false
	}
	return IsValidDateRange(s, e)
}
