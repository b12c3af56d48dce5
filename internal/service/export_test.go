package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pu-ac-cn/geo-console/internal/listview"
	"github.com/pu-ac-cn/geo-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService_Export(t *testing.T) {
	resources, _ := setupResourceService(t)
	svc := NewExportService(resources)

	f, filename, err := svc.Export(context.Background(), model.KindMap, listview.ScopeAll, listview.Query{Status: "全部状态"})
	require.NoError(t, err)
	defer f.Close()
	assert.True(t, strings.HasPrefix(filename, "地图资源_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	// 写出后重新读取
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	rf, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer rf.Close()

	rows, err := rf.GetRows("地图资源")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "名称", rows[0][1])
	assert.Equal(t, model.AttrCoordinateSystem, rows[0][len(resourceExportHeaders)])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "已通过", rows[1][4])
}

func TestExportService_ExportFiltered(t *testing.T) {
	resources, _ := setupResourceService(t)
	svc := NewExportService(resources)

	f, _, err := svc.Export(context.Background(), model.KindMap, listview.ScopeAll, listview.Query{Status: "已驳回"})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("地图资源")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "4", rows[1][0])
	assert.Contains(t, rows[1][7], "图例配置不规范")
}

func TestExportService_UnknownKind(t *testing.T) {
	resources, _ := setupResourceService(t)
	svc := NewExportService(resources)

	_, _, err := svc.Export(context.Background(), "satellite", listview.ScopeAll, listview.Query{})
	assert.ErrorIs(t, err, ErrKindNotFound)
}
