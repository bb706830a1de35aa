package api

import (
	"github.com/example/littlelemon/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.uber.org/zap"
)

var menuExportHeaders = []string{"ID", "Title", "Price", "Featured", "Category"}

// exportMenuItems godoc
// @Summary Download the catalog as a spreadsheet
// @Tags menu
// @Security Bearer
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 403 {object} errorResponse
// @Router /menu-items/export [get]
func (s *Server) exportMenuItems(c *gin.Context) {
	items, err := s.services.Catalog.All(c.Request.Context(), callerFrom(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	file, err := menuSpreadsheet(items)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=menu-items.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		s.logger.Error("Failed to write menu export", zap.Error(err))
	}
}

func menuSpreadsheet(items []models.MenuItem) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Menu")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range menuExportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetInt64(int64(item.ID))
		row.AddCell().SetValue(item.Title)
		row.AddCell().SetValue(item.Price.StringFixed(2))
		row.AddCell().SetBool(item.Featured)
		row.AddCell().SetValue(item.Category)
	}
	return file, nil
}
