package dto

// CategoryRow is one line of the by-category efficiency summary
type CategoryRow struct {
	CategoryID       string   `json:"categoriaId"`
	CategoryName     string   `json:"categoriaNombre"`
	OrderedQty       float64  `json:"cantidadPedida"`
	InvoicedQty      float64  `json:"cantidadFacturada"`
	OrderedTotal     float64  `json:"totalPedido"`
	InvoicedTotal    float64  `json:"totalFacturado"`
	FillRate         float64  `json:"fillRate"`
	WeightedFillRate float64  `json:"fillRatePonderado"`
	AvgLeadTime      *float64 `json:"leadTimePromedio"`
}

// ClientRow is one line of the by-client efficiency summary
type ClientRow struct {
	Client           string   `json:"cliente"`
	OrderedQty       float64  `json:"cantidadPedida"`
	InvoicedQty      float64  `json:"cantidadFacturada"`
	OrderedTotal     float64  `json:"totalPedido"`
	InvoicedTotal    float64  `json:"totalFacturado"`
	FillRate         float64  `json:"fillRate"`
	WeightedFillRate float64  `json:"fillRatePonderado"`
	AvgLeadTime      *float64 `json:"leadTimePromedio"`
}

// ProductRow is one line of the catalog-wide by-product summary.
// WeightedFillRate is nil when the product has no ordered value.
type ProductRow struct {
	Product          string   `json:"producto"`
	ItemCode         string   `json:"codItem"`
	OrderedQty       float64  `json:"cantidadPedida"`
	InvoicedQty      float64  `json:"cantidadFacturada"`
	OrderedTotal     float64  `json:"totalPedido"`
	InvoicedTotal    float64  `json:"totalFacturado"`
	FillRate         float64  `json:"fillRate"`
	WeightedFillRate *float64 `json:"fillRatePonderado"`
	AvgLeadTime      *float64 `json:"leadTimePromedio"`
}

// MonthRow is one point of the monthly evolution, keyed by order month
type MonthRow struct {
	Month       string   `json:"mes"`
	Orders      int      `json:"pedidos"`
	OrderedQty  float64  `json:"cantidadPedida"`
	InvoicedQty float64  `json:"cantidadFacturada"`
	FillRate    float64  `json:"fillRate"`
	LeadTime    *float64 `json:"leadTime"`
}

// OrderDetail is the single-order detail with its per-line breakdown
type OrderDetail struct {
	Kind             string            `json:"tipo"`
	OrderID          string            `json:"pedidoId"`
	OrderNumber      string            `json:"nroPedido"`
	Date             string            `json:"fecha"`
	InvoiceDates     []string          `json:"fechasFacturas"`
	OrderedQty       float64           `json:"cantidadPedida"`
	InvoicedQty      float64           `json:"cantidadFacturada"`
	FillRate         float64           `json:"fillRate"`
	WeightedFillRate float64           `json:"fillRatePonderado"`
	LeadTimeDays     *int              `json:"leadTimeDias"`
	OrderedTotal     float64           `json:"totalPedido"`
	InvoicedTotal    float64           `json:"totalFacturado"`
	Lines            []OrderDetailLine `json:"productos"`
}

// OrderDetailLine is one order line inside an OrderDetail
type OrderDetailLine struct {
	ItemCode      string  `json:"codItem"`
	Description   string  `json:"descripcion"`
	OrderedQty    float64 `json:"cantidadPedida"`
	InvoicedQty   float64 `json:"cantidadFacturada"`
	FillRate      float64 `json:"fillRate"`
	UnitPrice     float64 `json:"precioUnitarioPedido"`
	InvoicedValue float64 `json:"valorFacturadoItem"`
	LeadTimeDays  *int    `json:"leadTimeItem"`
}

// OrderCategoryRow is one order in the order-grouped view with nested items
type OrderCategoryRow struct {
	OrderNumber      string              `json:"nroPedido"`
	OrderDate        string              `json:"fechaPedido"`
	InvoiceDates     []string            `json:"fechasFacturas"`
	OrderedQty       float64             `json:"cantidadPedida"`
	InvoicedQty      float64             `json:"cantidadFacturada"`
	OrderedTotal     float64             `json:"totalPedido"`
	InvoicedTotal    float64             `json:"totalFacturado"`
	FillRate         float64             `json:"fillRate"`
	WeightedFillRate float64             `json:"fillRatePonderado"`
	LeadTimeDays     *int                `json:"leadTimeDias"`
	Items            []OrderCategoryItem `json:"productos"`
}

// OrderCategoryItem is one item inside an OrderCategoryRow
type OrderCategoryItem struct {
	ItemCode    string  `json:"codItem"`
	Description string  `json:"descripcion"`
	OrderedQty  float64 `json:"cantidadPedida"`
	InvoicedQty float64 `json:"cantidadFacturada"`
	FillRate    float64 `json:"fillRate"`
}

// ProductOrderRow is one order in the single-product drill-down
type ProductOrderRow struct {
	OrderID          string   `json:"pedidoId"`
	OrderNumber      string   `json:"nroPedido"`
	Date             string   `json:"fecha"`
	ItemCode         string   `json:"codItem"`
	Description      string   `json:"descripcion"`
	OrderedQty       float64  `json:"cantidadPedida"`
	InvoicedQty      float64  `json:"cantidadFacturada"`
	OrderedTotal     float64  `json:"totalPedido"`
	InvoicedTotal    float64  `json:"totalFacturado"`
	FillRate         float64  `json:"fillRate"`
	WeightedFillRate float64  `json:"fillRatePonderado"`
	InvoiceDates     []string `json:"fechasFacturas"`
	LeadTimeDays     *int     `json:"leadTimeDias"`
}

// OutlierRow is one item in the worst fill rate ranking
type OutlierRow struct {
	ItemCode    string  `json:"codItem"`
	Description string  `json:"descripcion"`
	OrderedQty  float64 `json:"pedidas"`
	InvoicedQty float64 `json:"facturadas"`
	FillRate    float64 `json:"fillRate"`
}
