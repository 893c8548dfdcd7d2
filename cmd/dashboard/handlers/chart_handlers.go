package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"post-dashboard/cmd/dashboard/apperr"
	"post-dashboard/cmd/dashboard/chart"
	"post-dashboard/cmd/dashboard/services"
	"post-dashboard/cmd/dashboard/workspace"
)

// parseOverrides 는 colors[<dataset>.<key>]=#RRGGBB, hover[<dataset>]=<시리즈> 쿼리를 읽는다.
func parseOverrides(c *gin.Context) (services.ChartOverrides, error) {
	var ov services.ChartOverrides
	for k, v := range c.QueryMap("colors") {
		ds, key, ok := strings.Cut(k, ".")
		if !ok || key == "" {
			return ov, apperr.NewValidation("colors", "colors 키는 <데이터셋>.<시리즈> 형식이어야 합니다.")
		}
		if ov.Colors == nil {
			ov.Colors = map[chart.Dataset]map[string]string{}
		}
		d := chart.Dataset(ds)
		if ov.Colors[d] == nil {
			ov.Colors[d] = map[string]string{}
		}
		ov.Colors[d][key] = v
	}
	for ds, series := range c.QueryMap("hover") {
		if ov.Hover == nil {
			ov.Hover = map[chart.Dataset]string{}
		}
		ov.Hover[chart.Dataset(ds)] = series
	}
	return ov, nil
}

// GetChartHandler godoc
// @Summary      차트 옵션
// @Description  차트 종류(bar, donut, stacked-bar, stacked-area, multi-line 또는 한글 이름)에 필요한 데이터만 불러와 ECharts 옵션을 돌려줍니다. 색상과 hover 는 세션에 유지됩니다.
// @Tags         charts
// @Produce      json
// @Param        type    path      string  true   "차트 종류"
// @Param        colors  query     object  false  "colors[<dataset>.<key>]=#RRGGBB"
// @Param        hover   query     object  false  "hover[<dataset>]=<그룹> - <지표>"
// @Success      200     {object}  chart.Panel
// @Failure      400     {object}  dto.ErrorResponseDTO
// @Failure      404     {object}  dto.ErrorResponseDTO
// @Failure      502     {object}  dto.ErrorResponseDTO
// @Failure      503     {object}  dto.ErrorResponseDTO
// @Router       /charts/{type} [get]
func GetChartHandler(svc *services.ChartService, reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := workspaceOf(c, reg)
		if err != nil {
			writeError(c, err)
			return
		}
		t, err := chart.ParseType(c.Param("type"))
		if err != nil {
			writeError(c, err)
			return
		}
		ov, err := parseOverrides(c)
		if err != nil {
			writeError(c, err)
			return
		}

		panel, err := svc.Render(c.Request.Context(), t, ws.Colors, ov)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, panel)
	}
}
