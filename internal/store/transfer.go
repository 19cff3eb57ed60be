package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/gzxsprite-cmd/PFIS/internal/util"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type colType int

const (
	colInt colType = iota
	colFloat
	colText
	colDate
	colDateTime
)

type column struct {
	name string
	typ  colType
}

// sheetDef 一张表对应一个工作表。linkColumn 是自引用或互引用列，
// 导入时先剥离，等两边行都落库后再补写，避免插入顺序上的环。
type sheetDef struct {
	name       string
	columns    []column
	linkColumn string
}

// 导出/导入时的工作表顺序：先主数据，再产品与流水。
var sheetDefs = []sheetDef{
	{name: "dim_account", columns: []column{
		{"id", colInt}, {"name", colText}, {"status", colText},
		{"created_at", colDateTime}, {"last_used", colDateTime},
	}},
	{name: "dim_category", columns: []column{
		{"id", colInt}, {"name", colText}, {"parent_id", colInt}, {"status", colText},
	}, linkColumn: "parent_id"},
	{name: "dim_source_type", columns: []column{
		{"id", colInt}, {"name", colText}, {"status", colText},
	}},
	{name: "dim_action_type", columns: []column{
		{"id", colInt}, {"name", colText}, {"status", colText},
	}},
	{name: "dim_product_type", columns: []column{
		{"id", colInt}, {"name", colText}, {"status", colText},
	}},
	{name: "dim_risk_level", columns: []column{
		{"id", colInt}, {"name", colText}, {"description", colText}, {"status", colText},
	}},
	{name: "dim_metric", columns: []column{
		{"id", colInt}, {"name", colText}, {"unit", colText},
		{"description", colText}, {"status", colText},
	}},
	{name: "dim_investment_term", columns: []column{
		{"id", colInt}, {"name", colText}, {"status", colText},
	}},
	{name: "product_master", columns: []column{
		{"id", colInt}, {"name", colText}, {"type_id", colInt},
		{"risk_level_id", colInt}, {"investment_term_id", colInt},
		{"launch_date", colDate}, {"remark", colText}, {"status", colText},
	}},
	{name: "holding_status", columns: []column{
		{"id", colInt}, {"product_id", colInt}, {"total_invest", colFloat},
		{"est_profit", colFloat}, {"avg_yield", colFloat}, {"last_update", colDate},
	}},
	{name: "investment_log", columns: []column{
		{"id", colInt}, {"date", colDate}, {"product_id", colInt},
		{"action_id", colInt}, {"amount", colFloat}, {"channel_account_id", colInt},
		{"remark", colText}, {"status", colText}, {"cashflow_link_id", colInt},
	}, linkColumn: "cashflow_link_id"},
	{name: "cash_flow", columns: []column{
		{"id", colInt}, {"date", colDate}, {"account_id", colInt},
		{"category_id", colInt}, {"flow_type", colText}, {"amount", colFloat},
		{"source_type_id", colInt}, {"remark", colText}, {"status", colText},
		{"link_investment_id", colInt},
	}, linkColumn: "link_investment_id"},
	{name: "product_metrics", columns: []column{
		{"id", colInt}, {"product_id", colInt}, {"metric_id", colInt},
		{"record_date", colDate}, {"value", colFloat},
		{"source", colText}, {"remark", colText},
	}},
	{name: "ocr_pending", columns: []column{
		{"id", colInt}, {"module", colText}, {"image_path", colText},
		{"status", colText}, {"created_at", colDateTime}, {"remark", colText},
	}},
}

// replace 模式的清空顺序：子表在前，父表在后。
var replaceDeleteOrder = []string{
	"product_metrics",
	"investment_log",
	"cash_flow",
	"holding_status",
	"product_master",
	"ocr_pending",
	"dim_metric",
	"dim_action_type",
	"dim_source_type",
	"dim_category",
	"dim_account",
	"dim_product_type",
	"dim_risk_level",
	"dim_investment_term",
}

// ExportWorkbook 每张表导出一个工作表，按主键升序。空表也输出表头行。
func (s *Store) ExportWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	for _, sheet := range sheetDefs {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", sheet.name, err)
		}

		header := make([]interface{}, len(sheet.columns))
		for i, col := range sheet.columns {
			header[i] = col.name
		}
		if err := f.SetSheetRow(sheet.name, "A1", &header); err != nil {
			return nil, err
		}

		var rows []map[string]interface{}
		if err := s.db.Table(sheet.name).Order("id").Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", sheet.name, err)
		}

		for i, row := range rows {
			values := make([]interface{}, len(sheet.columns))
			for j, col := range sheet.columns {
				values[j] = exportCell(col, row[col.name])
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				return nil, err
			}
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func exportCell(col column, v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if col.typ == colDate {
			return val.Format("2006-01-02")
		}
		return val.Format("2006-01-02 15:04:05")
	case *time.Time:
		if val == nil {
			return nil
		}
		return exportCell(col, *val)
	case []byte:
		return string(val)
	default:
		return val
	}
}

// deferredLink 第二遍回填的关联列写操作。
type deferredLink struct {
	table   string
	pkValue interface{}
	column  string
	value   interface{}
}

// ImportWorkbook 按工作表逐张导入。mode 为 replace 时先按依赖顺序清空全部表。
// 每张表独立提交，单表失败计入摘要但不影响其余表；
// 自引用和互引用列统一延迟到第二遍回填。注意回填登记不随单表回滚撤销：
// 失败表里已处理行的关联列仍会在第二遍写入，残留的半截关联由对账报表检出。
func (s *Store) ImportWorkbook(f *excelize.File, mode string) map[string]string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode != "replace" && mode != "append" {
		mode = "replace"
	}

	summary := map[string]string{}
	var deferred []deferredLink

	if mode == "replace" {
		for _, table := range replaceDeleteOrder {
			if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
				summary[table] = fmt.Sprintf("清空失败：%v", err)
			}
		}
	}

	for _, sheet := range sheetDefs {
		rows, err := f.GetRows(sheet.name)
		if err != nil || len(rows) == 0 {
			summary[sheet.name] = "模板缺失"
			continue
		}

		colIndex, missing := headerIndex(sheet, rows[0])
		if len(missing) > 0 {
			summary[sheet.name] = "缺少列: " + strings.Join(missing, ", ")
			continue
		}

		processed := 0
		err = s.db.Transaction(func(tx *gorm.DB) error {
			for rowNum, raw := range rows[1:] {
				if isBlankRow(raw) {
					continue
				}
				values, err := coerceRow(sheet, colIndex, raw)
				if err != nil {
					return fmt.Errorf("第 %d 行：%w", rowNum+2, err)
				}

				var linkValue interface{}
				if sheet.linkColumn != "" {
					linkValue = values[sheet.linkColumn]
					delete(values, sheet.linkColumn)
				}

				pkValue, err := upsertRow(tx, sheet.name, values, mode)
				if err != nil {
					return fmt.Errorf("第 %d 行：%w", rowNum+2, err)
				}

				if sheet.linkColumn != "" && linkValue != nil && pkValue != nil {
					deferred = append(deferred, deferredLink{
						table:   sheet.name,
						pkValue: pkValue,
						column:  sheet.linkColumn,
						value:   linkValue,
					})
				}
				processed++
			}
			return nil
		})
		if err != nil {
			summary[sheet.name] = fmt.Sprintf("导入失败：%v", err)
			continue
		}
		summary[sheet.name] = fmt.Sprintf("导入成功：%d 条", processed)
	}

	if len(deferred) > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			for _, link := range deferred {
				if err := tx.Table(link.table).
					Where("id = ?", link.pkValue).
					Update(link.column, link.value).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			summary["关系同步"] = fmt.Sprintf("更新关联字段失败：%v", err)
		}
	}

	s.log.Info("workbook import finished",
		zap.String("mode", mode), zap.Int("sheets", len(sheetDefs)))
	return summary
}

// headerIndex 把声明列映射到表头里的下标，返回缺失的列名。
func headerIndex(sheet sheetDef, header []string) (map[string]int, []string) {
	position := make(map[string]int, len(header))
	for i, name := range header {
		position[strings.TrimSpace(name)] = i
	}
	index := make(map[string]int, len(sheet.columns))
	var missing []string
	for _, col := range sheet.columns {
		pos, ok := position[col.name]
		if !ok {
			missing = append(missing, col.name)
			continue
		}
		index[col.name] = pos
	}
	return index, missing
}

func isBlankRow(raw []string) bool {
	for _, cell := range raw {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func coerceRow(sheet sheetDef, colIndex map[string]int, raw []string) (map[string]interface{}, error) {
	values := make(map[string]interface{}, len(sheet.columns))
	for _, col := range sheet.columns {
		cell := ""
		if pos := colIndex[col.name]; pos < len(raw) {
			cell = raw[pos]
		}
		v, err := coerceCell(col, cell)
		if err != nil {
			return nil, fmt.Errorf("列 %s：%w", col.name, err)
		}
		values[col.name] = v
	}
	return values, nil
}

// coerceCell 把单元格文本转换成目标列类型，空白格转 NULL。
func coerceCell(col column, cell string) (interface{}, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	switch col.typ {
	case colInt:
		d, err := decimal.NewFromString(cell)
		if err != nil {
			return nil, fmt.Errorf("无法解析整数 %q", cell)
		}
		return d.IntPart(), nil
	case colFloat:
		v, err := util.ParseAmount(cell)
		if err != nil {
			return nil, fmt.Errorf("无法解析数值 %q", cell)
		}
		return v, nil
	case colDate, colDateTime:
		return coerceTime(cell)
	default:
		return cell, nil
	}
}

func coerceTime(cell string) (interface{}, error) {
	layouts := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05.999999999-07:00",
		"2006/01/02",
		"1/2/06 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}
	// Excel 可能把日期格存成序列号
	if serial, err := decimal.NewFromString(cell); err == nil {
		f, _ := serial.Float64()
		if t, err := excelize.ExcelDateToTime(f, false); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("无法解析日期 %q", cell)
}

// upsertRow 写入一行并返回主键值。append 模式下带主键的行原地更新，
// 没有主键的行新插入；replace 模式保留工作表里的主键，保证外键引用不漂移。
func upsertRow(tx *gorm.DB, table string, values map[string]interface{}, mode string) (interface{}, error) {
	pkValue := values["id"]

	if mode == "append" && pkValue != nil {
		var count int64
		if err := tx.Table(table).Where("id = ?", pkValue).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			updates := make(map[string]interface{}, len(values))
			for k, v := range values {
				if k != "id" {
					updates[k] = v
				}
			}
			if err := tx.Table(table).Where("id = ?", pkValue).Updates(updates).Error; err != nil {
				return nil, err
			}
			return pkValue, nil
		}
		// 主键不存在，按带主键的新行插入
	}

	if pkValue == nil {
		delete(values, "id")
	}
	if err := tx.Table(table).Create(&values).Error; err != nil {
		return nil, err
	}
	if pkValue != nil {
		return pkValue, nil
	}

	var newID int64
	if err := tx.Raw("SELECT last_insert_rowid()").Scan(&newID).Error; err != nil {
		return nil, err
	}
	return newID, nil
}
