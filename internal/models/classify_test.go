package models

import "testing"

func TestNormalizeFlowType(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"收入", FlowIncome, true},
		{"income", FlowIncome, true},
		{"INCOME", FlowIncome, true},
		{"支出", FlowExpense, true},
		{"Expense", FlowExpense, true},
		{" 收入 ", FlowIncome, true},
		{"转账", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeFlowType(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeFlowType(%q) = (%q, %v), want (%q, %v)",
				c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestClassifyAction(t *testing.T) {
	cases := []struct {
		name string
		want ActionClass
	}{
		{"买入", ActionBuy},
		{"申购", ActionBuy},
		{"加仓", ActionBuy},
		{"定投申购", ActionBuy},
		{"赎回", ActionRedeem},
		{"分红", ActionRedeem},
		{"派息", ActionRedeem},
		{"卖出", ActionRedeem},
		{"buy", ActionBuy},
		{"Purchase", ActionBuy},
		{"SELL", ActionRedeem},
		{"dividend", ActionRedeem},
		{"转换", ActionUnknown},
		{"buyer", ActionUnknown}, // 英文只做全词匹配
		{"", ActionUnknown},
	}
	for _, c := range cases {
		if got := ClassifyAction(c.name); got != c.want {
			t.Errorf("ClassifyAction(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
