package sales

import (
	"bytes"
	"context"
	"html/template"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/sales"
	"github.com/matiaspautasso/ERP-LosHermanos/internal/domain/shared"
)

// ReceiptRenderer turns receipt HTML into PDF bytes. Satisfied by the
// Chrome-backed renderer in infrastructure.
type ReceiptRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ReceiptDocument is a rendered sale receipt ready to stream.
type ReceiptDocument struct {
	Number int64
	PDF    []byte
}

// receiptTemplate lays out the 80mm ticket. All values come frozen
// from the sale aggregate so the receipt reprints identically even
// after the customer is renamed or prices move.
const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: "Courier New", monospace; font-size: 11px; margin: 0; }
  .center { text-align: center; }
  .right { text-align: right; }
  hr { border: none; border-top: 1px dashed #000; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 1px 0; vertical-align: top; }
  .total { font-size: 13px; font-weight: bold; }
</style>
</head>
<body>
<div class="center">
  <strong>LOS HERMANOS</strong><br>
  Comprobante de venta<br>
  N&ordm; {{printf "%08d" .Number}}
</div>
<hr>
<table>
  <tr><td>Fecha</td><td class="right">{{.CreatedAt.Format "02/01/2006 15:04"}}</td></tr>
  <tr><td>Cliente</td><td class="right">{{.CustomerName}}</td></tr>
  <tr><td>Tipo</td><td class="right">{{.Tier}}</td></tr>
  <tr><td>Pago</td><td class="right">{{.PaymentMethod}}</td></tr>
</table>
<hr>
<table>
{{range .Lines}}  <tr><td colspan="2">{{.ProductName}}</td></tr>
  <tr>
    <td>{{.Quantity}} {{.Unit}} x ${{.UnitPrice}}</td>
    <td class="right">${{.LineTotal}}</td>
  </tr>
{{end}}</table>
<hr>
<table>
  <tr><td>Subtotal</td><td class="right">${{.Subtotal}}</td></tr>
{{if not .DiscountAmount.IsZero}}  <tr><td>Descuento ({{.DiscountPct}}%)</td><td class="right">-${{.DiscountAmount}}</td></tr>
{{end}}  <tr class="total"><td class="total">TOTAL</td><td class="total right">${{.Total}}</td></tr>
</table>
<hr>
<div class="center">&iexcl;Gracias por su compra!</div>
</body>
</html>
`

var receiptTmpl = template.Must(template.New("receipt").Parse(receiptTemplate))

// Receipt renders the printable ticket for a registered sale.
func (s *SaleService) Receipt(ctx context.Context, id uuid.UUID) (*ReceiptDocument, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("PRINTING_UNAVAILABLE",
			"La impresión de comprobantes no está habilitada")
	}

	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	html, err := buildReceiptHTML(sale)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.RenderPDF(ctx, html)
	if err != nil {
		s.logger.Error("receipt render failed",
			zap.String("sale_id", id.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("RECEIPT_RENDER_FAILED",
			"No se pudo generar el comprobante")
	}

	return &ReceiptDocument{Number: sale.Number, PDF: pdf}, nil
}

func buildReceiptHTML(sale *sales.Sale) (string, error) {
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, sale); err != nil {
		return "", err
	}
	return buf.String(), nil
}
