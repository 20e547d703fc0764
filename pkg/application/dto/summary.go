package dto

// ExecutiveSummary condenses the fulfillment of a period into headline figures
type ExecutiveSummary struct {
	TotalOrders         int              `json:"totalPedidos"`
	TotalInvoices       int              `json:"totalFacturas"`
	FillRate            float64          `json:"fillRateGeneral"`
	AvgLeadTimeDays     *float64         `json:"leadTimePromedioDias"`
	DelayedOrders       int              `json:"cantidadRetrasos"`
	HighFillRatePercent float64          `json:"porcentajePedidosAltosFillRate"`
	LowFillRatePercent  float64          `json:"porcentajePedidosBajosFillRate"`
	FillRateVariation   float64          `json:"variacionFillRate"`
	LeadTimeVariation   float64          `json:"variacionLeadTime"`
	TopClients          []ClientFillRate `json:"topClientesEficientes"`
	BottomClients       []ClientFillRate `json:"topClientesIneficientes"`
	ProblemProducts     []ProductBacklog `json:"topProductosProblema"`
}

// ClientFillRate is the mean per-order fill rate of one client
type ClientFillRate struct {
	Client   string  `json:"cliente"`
	FillRate float64 `json:"fillRate"`
}

// ProductBacklog is the quantity of one product left un-invoiced
type ProductBacklog struct {
	Product    string  `json:"producto"`
	Uninvoiced float64 `json:"sinFacturar"`
}
