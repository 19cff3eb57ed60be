package models

// Reference 描述一个事务表对主数据表的外键引用，用于影响分析和去重时的外键改写。
type Reference struct {
	Table  string
	Column string
}

// TableInfo 是主数据表的静态描述符。是否带 status 列在这里声明一次，
// 不在运行时探测。
type TableInfo struct {
	Key       string // 对外展示用的分组键，如 "accounts"
	Name      string // 数据库表名
	HasStatus bool
	Defaults  []string    // 初始化时种子名称
	Refs      []Reference // 指向本表的外键
}

// MasterTables 按固定顺序列出全部主数据表。
var MasterTables = []TableInfo{
	{
		Key:       "accounts",
		Name:      "dim_account",
		HasStatus: true,
		Defaults:  []string{"现金账户", "银行卡", "证券账户"},
		Refs: []Reference{
			{Table: "cash_flow", Column: "account_id"},
			{Table: "investment_log", Column: "channel_account_id"},
		},
	},
	{
		Key:       "categories",
		Name:      "dim_category",
		HasStatus: true,
		Defaults:  []string{"工资收入", "生活支出", "投资转出", "投资回流"},
		Refs: []Reference{
			{Table: "cash_flow", Column: "category_id"},
		},
	},
	{
		Key:       "source_types",
		Name:      "dim_source_type",
		HasStatus: true,
		Defaults:  []string{"工资", "理财", "其他"},
		Refs: []Reference{
			{Table: "cash_flow", Column: "source_type_id"},
		},
	},
	{
		Key:       "action_types",
		Name:      "dim_action_type",
		HasStatus: true,
		Defaults:  []string{"买入", "赎回", "分红"},
		Refs: []Reference{
			{Table: "investment_log", Column: "action_id"},
		},
	},
	{
		Key:       "product_types",
		Name:      "dim_product_type",
		HasStatus: true,
		Defaults:  []string{"货币基金", "股票基金", "债券"},
		Refs: []Reference{
			{Table: "product_master", Column: "type_id"},
		},
	},
	{
		Key:       "risk_levels",
		Name:      "dim_risk_level",
		HasStatus: true,
		Defaults:  []string{"低", "中", "高"},
		Refs: []Reference{
			{Table: "product_master", Column: "risk_level_id"},
		},
	},
	{
		Key:       "metrics",
		Name:      "dim_metric",
		HasStatus: true,
		Defaults:  []string{"净值", "收益率", "波动率"},
		Refs: []Reference{
			{Table: "product_metrics", Column: "metric_id"},
		},
	},
	{
		Key:       "investment_terms",
		Name:      "dim_investment_term",
		HasStatus: true,
		Defaults:  []string{"T+1", "T+7", "30天", "90天"},
		Refs: []Reference{
			{Table: "product_master", Column: "investment_term_id"},
		},
	},
}

// LookupMasterTable 按表名查描述符，未登记的表返回 false。
func LookupMasterTable(name string) (TableInfo, bool) {
	for _, info := range MasterTables {
		if info.Name == name {
			return info, true
		}
	}
	return TableInfo{}, false
}
