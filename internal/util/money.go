package util

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount 把用户或表格里填的金额字符串解析成 float64。
// 先过 decimal 再转换，"1,234.50" 这类带千分位的写法也能解析。
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, _ := d.Float64()
	return f, nil
}

// FormatAmount 按两位小数输出金额字符串。
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// AmountsDiffer 判断两个金额的差值是否超过对账允许的误差（0.01 元）。
func AmountsDiffer(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.GreaterThan(decimal.NewFromFloat(0.01))
}
