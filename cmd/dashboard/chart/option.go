package chart

// ECharts 옵션 중 대시보드가 쓰는 부분만 옮긴 구조체들이다.
// Data 는 값 또는 nil(null) 을 담는다.

type Option struct {
	Tooltip Tooltip  `json:"tooltip"`
	Legend  Legend   `json:"legend"`
	Grid    *Grid    `json:"grid,omitempty"`
	XAxis   *Axis    `json:"xAxis,omitempty"`
	YAxis   []Axis   `json:"yAxis,omitempty"`
	Series  []Series `json:"series"`
}

type Tooltip struct {
	Trigger     string `json:"trigger"`
	ValueSuffix string `json:"valueSuffix,omitempty"`
}

type Legend struct {
	Top  int    `json:"top"`
	Type string `json:"type,omitempty"`
}

type Grid struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`
}

type AxisLabel struct {
	Formatter string `json:"formatter,omitempty"`
}

type Axis struct {
	Type      string     `json:"type"`
	Name      string     `json:"name,omitempty"`
	Data      []any      `json:"data,omitempty"`
	Min       *float64   `json:"min,omitempty"`
	Max       *float64   `json:"max,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
}

type ItemStyle struct {
	Color string `json:"color,omitempty"`
}

type LineStyle struct {
	Type  string `json:"type,omitempty"`
	Width int    `json:"width,omitempty"`
}

type Emphasis struct {
	Focus string `json:"focus,omitempty"`
}

type AreaStyle struct{}

type Series struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Stack      string     `json:"stack,omitempty"`
	YAxisIndex int        `json:"yAxisIndex,omitempty"`
	Radius     []string   `json:"radius,omitempty"`
	BarWidth   string     `json:"barWidth,omitempty"`
	Symbol     string     `json:"symbol,omitempty"`
	SymbolSize int        `json:"symbolSize,omitempty"`
	Smooth     bool       `json:"smooth,omitempty"`
	AreaStyle  *AreaStyle `json:"areaStyle,omitempty"`
	ItemStyle  *ItemStyle `json:"itemStyle,omitempty"`
	LineStyle  *LineStyle `json:"lineStyle,omitempty"`
	Emphasis   *Emphasis  `json:"emphasis,omitempty"`
	Data       []any      `json:"data"`
}

// DataItem 은 파이 차트처럼 항목별 색을 갖는 데이터다.
type DataItem struct {
	Name      string     `json:"name"`
	Value     float64    `json:"value"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

func ptr(v float64) *float64 { return &v }

func itemColor(c string) *ItemStyle { return &ItemStyle{Color: c} }
