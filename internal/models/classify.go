package models

import "strings"

// 现金流方向的规范值。新数据在入口统一成这两个值，
// 聚合时仍然兼容历史库和导入数据里的各种写法。
const (
	FlowIncome  = "income"
	FlowExpense = "expense"
)

// 历史数据里出现过的方向写法（中英文、大小写混杂），固定枚举，不做模糊匹配。
var (
	incomeVariants = map[string]struct{}{
		"收入": {}, "income": {}, "Income": {}, "INCOME": {},
	}
	expenseVariants = map[string]struct{}{
		"支出": {}, "expense": {}, "Expense": {}, "EXPENSE": {},
	}
)

// NormalizeFlowType 把任意写法归一为 income/expense，不认识的写法返回 false。
func NormalizeFlowType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, ok := incomeVariants[s]; ok {
		return FlowIncome, true
	}
	if _, ok := expenseVariants[s]; ok {
		return FlowExpense, true
	}
	return "", false
}

// IsIncomeType 判断 flow_type 是否属于收入的任一历史写法。
func IsIncomeType(s string) bool {
	_, ok := incomeVariants[s]
	return ok
}

// IsExpenseType 判断 flow_type 是否属于支出的任一历史写法。
func IsExpenseType(s string) bool {
	_, ok := expenseVariants[s]
	return ok
}

// ActionClass 理财操作的资金方向分类。
type ActionClass int

const (
	ActionUnknown ActionClass = iota
	ActionBuy                 // 资金流出：买入/申购/加仓
	ActionRedeem              // 资金回流：赎回/分红/卖出
)

var (
	buyKeywords    = []string{"买", "申购", "加仓", "购"}
	redeemKeywords = []string{"赎", "分红", "回款", "派息", "卖"}
	buyWords       = map[string]struct{}{"buy": {}, "purchase": {}}
	redeemWords    = map[string]struct{}{"redeem": {}, "sell": {}, "dividend": {}}
)

// ClassifyAction 按操作类型名称判断买入/赎回方向。
// 中文按关键字包含判断，英文按小写全词匹配；两边都不命中返回 ActionUnknown。
func ClassifyAction(name string) ActionClass {
	for _, kw := range buyKeywords {
		if strings.Contains(name, kw) {
			return ActionBuy
		}
	}
	for _, kw := range redeemKeywords {
		if strings.Contains(name, kw) {
			return ActionRedeem
		}
	}
	switch lower := strings.ToLower(strings.TrimSpace(name)); {
	case mapHas(buyWords, lower):
		return ActionBuy
	case mapHas(redeemWords, lower):
		return ActionRedeem
	}
	return ActionUnknown
}

func mapHas(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}
