package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/xuri/excelize/v2"
)

var resourceExportHeaders = []string{
	"ID", "名称", "类目", "类型", "状态", "提交人", "提交时间", "审核意见", "发布时间", "标签",
}

// ExportService 列表导出服务接口
type ExportService interface {
	Export(ctx context.Context, kind model.ResourceKind, scope listview.Scope, q listview.Query) (*excelize.File, string, error)
}

type exportService struct {
	resources ResourceService
	now       func() time.Time
}

// NewExportService 创建导出服务
func NewExportService(resources ResourceService) ExportService {
	return &exportService{resources: resources, now: time.Now}
}

// Export 按当前筛选条件导出列表，调用方负责 Close
func (s *exportService) Export(ctx context.Context, kind model.ResourceKind, scope listview.Scope, q listview.Query) (*excelize.File, string, error) {
	items, err := s.resources.Query(ctx, kind, scope, q)
	if err != nil {
		return nil, "", err
	}
	desc, _ := model.DescriptorOf(kind)

	f := excelize.NewFile()
	sheet := desc.Title
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, "", fmt.Errorf("设置工作表失败: %w", err)
	}

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := append(append([]string{}, resourceExportHeaders...), desc.Attributes...)
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, item := range items {
		row := rowIdx + 2
		values := []interface{}{
			item.ID,
			item.Name,
			item.Category,
			item.Type,
			item.Status.Label(),
			item.Submitter,
			formatTime(item.SubmitTime),
			item.ProcessResult,
			formatTime(item.PublishTime),
			strings.Join(item.Tags, ","),
		}
		for _, key := range desc.Attributes {
			values = append(values, item.Attribute(key))
		}
		for i, v := range values {
			col, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
		}
	}

	colWidths := []float64{14, 28, 12, 12, 10, 12, 20, 24, 20, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("%s_%s.xlsx", desc.Title, s.now().Format("20060102150405"))
	return f, filename, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
