package dto

import (
	"fmt"
	"strings"
	"time"
)

// ReportView names one of the efficiency views a report can contain
type ReportView string

const (
	ViewCategory      ReportView = "category"
	ViewClient        ReportView = "client"
	ViewProduct       ReportView = "product"
	ViewMonthly       ReportView = "monthly"
	ViewOrder         ReportView = "order"
	ViewOrders        ReportView = "orders"
	ViewOrderCategory ReportView = "order-category"
	ViewProductDetail ReportView = "product-detail"
	ViewOutliers      ReportView = "outliers"
)

// ViewAll selects every view that needs no extra argument
const ViewAll ReportView = "all"

// StandaloneViews are the views that run over a selection without an order
// id or item code
var StandaloneViews = []ReportView{
	ViewCategory,
	ViewClient,
	ViewProduct,
	ViewMonthly,
	ViewOrders,
	ViewOrderCategory,
	ViewOutliers,
}

// ParseReportViews expands a view name, or "all", into the views to run
func ParseReportViews(name string) ([]ReportView, error) {
	view := ReportView(strings.ToLower(strings.TrimSpace(name)))
	switch view {
	case ViewAll:
		return append([]ReportView(nil), StandaloneViews...), nil
	case ViewCategory, ViewClient, ViewProduct, ViewMonthly, ViewOrder,
		ViewOrders, ViewOrderCategory, ViewProductDetail, ViewOutliers:
		return []ReportView{view}, nil
	default:
		return nil, fmt.Errorf("unknown report view %q", name)
	}
}

// Report collects the rows of every view computed in one run. Views lists
// the computed views in run order; the other fields are empty for views
// that were not requested.
type Report struct {
	RunID           string             `json:"runId"`
	GeneratedAt     time.Time          `json:"generatedAt"`
	From            string             `json:"desde,omitempty"`
	To              string             `json:"hasta,omitempty"`
	Views           []ReportView       `json:"views"`
	Categories      []CategoryRow      `json:"porCategoria,omitempty"`
	Clients         []ClientRow        `json:"porCliente,omitempty"`
	Products        []ProductRow       `json:"porProducto,omitempty"`
	Months          []MonthRow         `json:"evolucionMensual,omitempty"`
	Order           *OrderDetail       `json:"pedido,omitempty"`
	Orders          []OrderDetail      `json:"porPedido,omitempty"`
	OrderCategories []OrderCategoryRow `json:"porPedidoCategoria,omitempty"`
	ProductOrders   []ProductOrderRow  `json:"detalleProducto,omitempty"`
	Outliers        []OutlierRow       `json:"outliers,omitempty"`
}
