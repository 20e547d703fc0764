package output

import (
	"strconv"
	"strings"

	"github.com/vsinha/fulfillment/pkg/application/dto"
)

// table is one flat view of a report, shared by the tabular renderers.
// Cells hold string, float64, int or nil for an absent value.
type table struct {
	name   string
	title  string
	header []string
	rows   [][]any
}

func optFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// cellText renders a cell for text and CSV output; missing renders absent cells
func cellText(v any, missing string) string {
	switch c := v.(type) {
	case nil:
		return missing
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case []string:
		return strings.Join(c, " ")
	default:
		return ""
	}
}

// reportTables flattens every computed view of the report in run order
func reportTables(report *dto.Report) []table {
	var tables []table
	for _, view := range report.Views {
		switch view {
		case dto.ViewCategory:
			tables = append(tables, categoryTable(report.Categories))
		case dto.ViewClient:
			tables = append(tables, clientTable(report.Clients))
		case dto.ViewProduct:
			tables = append(tables, productTable(report.Products))
		case dto.ViewMonthly:
			tables = append(tables, monthlyTable(report.Months))
		case dto.ViewOrder:
			if report.Order != nil {
				tables = append(tables, orderTables(report.Order)...)
			}
		case dto.ViewOrders:
			tables = append(tables, ordersTables(report.Orders)...)
		case dto.ViewOrderCategory:
			tables = append(tables, orderCategoryTables(report.OrderCategories)...)
		case dto.ViewProductDetail:
			tables = append(tables, productDetailTable(report.ProductOrders))
		case dto.ViewOutliers:
			tables = append(tables, outlierTable(report.Outliers))
		}
	}
	return tables
}

var rateHeader = []string{"cantidadPedida", "cantidadFacturada", "totalPedido", "totalFacturado", "fillRate", "fillRatePonderado"}

func categoryTable(rows []dto.CategoryRow) table {
	t := table{
		name:   "categorias",
		title:  "Eficiencia por categoría",
		header: append(append([]string{"categoriaId", "categoriaNombre"}, rateHeader...), "leadTimePromedio"),
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.CategoryID, r.CategoryName, r.OrderedQty, r.InvoicedQty, r.OrderedTotal, r.InvoicedTotal,
			r.FillRate, r.WeightedFillRate, optFloat(r.AvgLeadTime),
		})
	}
	return t
}

func clientTable(rows []dto.ClientRow) table {
	t := table{
		name:   "clientes",
		title:  "Eficiencia por cliente",
		header: append(append([]string{"cliente"}, rateHeader...), "leadTimePromedio"),
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.Client, r.OrderedQty, r.InvoicedQty, r.OrderedTotal, r.InvoicedTotal,
			r.FillRate, r.WeightedFillRate, optFloat(r.AvgLeadTime),
		})
	}
	return t
}

func productTable(rows []dto.ProductRow) table {
	t := table{
		name:   "productos",
		title:  "Eficiencia por producto",
		header: append(append([]string{"codItem", "producto"}, rateHeader...), "leadTimePromedio"),
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.ItemCode, r.Product, r.OrderedQty, r.InvoicedQty, r.OrderedTotal, r.InvoicedTotal,
			r.FillRate, optFloat(r.WeightedFillRate), optFloat(r.AvgLeadTime),
		})
	}
	return t
}

func monthlyTable(rows []dto.MonthRow) table {
	t := table{
		name:   "mensual",
		title:  "Evolución mensual",
		header: []string{"mes", "pedidos", "cantidadPedida", "cantidadFacturada", "fillRate", "leadTime"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Month, r.Orders, r.OrderedQty, r.InvoicedQty, r.FillRate, optFloat(r.LeadTime)})
	}
	return t
}

func orderTables(d *dto.OrderDetail) []table {
	head := table{
		name:  "pedido",
		title: "Pedido " + d.OrderNumber,
		header: []string{
			"pedidoId", "nroPedido", "fecha", "fechasFacturas", "cantidadPedida", "cantidadFacturada",
			"totalPedido", "totalFacturado", "fillRate", "fillRatePonderado", "leadTimeDias",
		},
		rows: [][]any{{
			d.OrderID, d.OrderNumber, d.Date, d.InvoiceDates, d.OrderedQty, d.InvoicedQty,
			d.OrderedTotal, d.InvoicedTotal, d.FillRate, d.WeightedFillRate, optInt(d.LeadTimeDays),
		}},
	}
	lines := table{
		name:  "pedido_productos",
		title: "Productos del pedido " + d.OrderNumber,
		header: []string{
			"codItem", "descripcion", "cantidadPedida", "cantidadFacturada", "fillRate",
			"precioUnitarioPedido", "valorFacturadoItem", "leadTimeItem",
		},
	}
	for _, l := range d.Lines {
		lines.rows = append(lines.rows, []any{
			l.ItemCode, l.Description, l.OrderedQty, l.InvoicedQty, l.FillRate,
			l.UnitPrice, l.InvoicedValue, optInt(l.LeadTimeDays),
		})
	}
	return []table{head, lines}
}

// ordersTables lists many order details as one head table plus one lines
// table keyed by order number
func ordersTables(details []dto.OrderDetail) []table {
	heads := table{
		name:  "detalle_pedidos",
		title: "Detalle por pedido",
		header: []string{
			"pedidoId", "nroPedido", "fecha", "fechasFacturas", "cantidadPedida", "cantidadFacturada",
			"totalPedido", "totalFacturado", "fillRate", "fillRatePonderado", "leadTimeDias",
		},
	}
	lines := table{
		name:  "detalle_pedidos_productos",
		title: "Productos por pedido",
		header: []string{
			"nroPedido", "codItem", "descripcion", "cantidadPedida", "cantidadFacturada", "fillRate",
			"precioUnitarioPedido", "valorFacturadoItem", "leadTimeItem",
		},
	}
	for _, d := range details {
		heads.rows = append(heads.rows, []any{
			d.OrderID, d.OrderNumber, d.Date, d.InvoiceDates, d.OrderedQty, d.InvoicedQty,
			d.OrderedTotal, d.InvoicedTotal, d.FillRate, d.WeightedFillRate, optInt(d.LeadTimeDays),
		})
		for _, l := range d.Lines {
			lines.rows = append(lines.rows, []any{
				d.OrderNumber, l.ItemCode, l.Description, l.OrderedQty, l.InvoicedQty, l.FillRate,
				l.UnitPrice, l.InvoicedValue, optInt(l.LeadTimeDays),
			})
		}
	}
	return []table{heads, lines}
}

func orderCategoryTables(rows []dto.OrderCategoryRow) []table {
	orders := table{
		name:  "pedidos",
		title: "Pedidos por categoría",
		header: append(append([]string{"nroPedido", "fechaPedido", "fechasFacturas"}, rateHeader...),
			"leadTimeDias", "productos"),
	}
	items := table{
		name:   "pedidos_productos",
		title:  "Productos por pedido",
		header: []string{"nroPedido", "codItem", "descripcion", "cantidadPedida", "cantidadFacturada", "fillRate"},
	}
	for _, r := range rows {
		orders.rows = append(orders.rows, []any{
			r.OrderNumber, r.OrderDate, r.InvoiceDates, r.OrderedQty, r.InvoicedQty, r.OrderedTotal,
			r.InvoicedTotal, r.FillRate, r.WeightedFillRate, optInt(r.LeadTimeDays), len(r.Items),
		})
		for _, item := range r.Items {
			items.rows = append(items.rows, []any{
				r.OrderNumber, item.ItemCode, item.Description, item.OrderedQty, item.InvoicedQty, item.FillRate,
			})
		}
	}
	return []table{orders, items}
}

func productDetailTable(rows []dto.ProductOrderRow) table {
	t := table{
		name:  "detalle_producto",
		title: "Detalle de producto",
		header: append(append([]string{"pedidoId", "nroPedido", "fecha", "codItem", "descripcion"}, rateHeader...),
			"fechasFacturas", "leadTimeDias"),
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.OrderID, r.OrderNumber, r.Date, r.ItemCode, r.Description, r.OrderedQty, r.InvoicedQty,
			r.OrderedTotal, r.InvoicedTotal, r.FillRate, r.WeightedFillRate, r.InvoiceDates, optInt(r.LeadTimeDays),
		})
	}
	return t
}

func outlierTable(rows []dto.OutlierRow) table {
	t := table{
		name:   "outliers",
		title:  "Productos con peor fill rate",
		header: []string{"codItem", "descripcion", "pedidas", "facturadas", "fillRate"},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.ItemCode, r.Description, r.OrderedQty, r.InvoicedQty, r.FillRate})
	}
	return t
}

func summaryTables(s *dto.ExecutiveSummary) []table {
	overview := table{
		name:   "resumen",
		title:  "Resumen ejecutivo",
		header: []string{"indicador", "valor"},
		rows: [][]any{
			{"totalPedidos", s.TotalOrders},
			{"totalFacturas", s.TotalInvoices},
			{"fillRateGeneral", s.FillRate},
			{"leadTimePromedioDias", optFloat(s.AvgLeadTimeDays)},
			{"cantidadRetrasos", s.DelayedOrders},
			{"porcentajePedidosAltosFillRate", s.HighFillRatePercent},
			{"porcentajePedidosBajosFillRate", s.LowFillRatePercent},
			{"variacionFillRate", s.FillRateVariation},
			{"variacionLeadTime", s.LeadTimeVariation},
		},
	}
	top := table{name: "clientes_eficientes", title: "Clientes más eficientes", header: []string{"cliente", "fillRate"}}
	for _, c := range s.TopClients {
		top.rows = append(top.rows, []any{c.Client, c.FillRate})
	}
	bottom := table{name: "clientes_ineficientes", title: "Clientes menos eficientes", header: []string{"cliente", "fillRate"}}
	for _, c := range s.BottomClients {
		bottom.rows = append(bottom.rows, []any{c.Client, c.FillRate})
	}
	products := table{name: "productos_problema", title: "Productos con más pendiente", header: []string{"producto", "sinFacturar"}}
	for _, p := range s.ProblemProducts {
		products.rows = append(products.rows, []any{p.Product, p.Uninvoiced})
	}
	return []table{overview, top, bottom, products}
}
