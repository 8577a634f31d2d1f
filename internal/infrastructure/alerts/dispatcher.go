package alerts

import (
	"context"

	"github.com/jhoicas/eduledger-api/pkg/logger"
)

// LogDispatcher implementación de ledger.AlertDispatcher que registra la
// alerta en el log estructurado. La entrega real (push/SMS/in-app) corre por
// cuenta de un servicio externo que consume estos eventos.
type LogDispatcher struct {
	log *logger.Logger
}

func NewLogDispatcher(log *logger.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) DispatchOverdueAlert(ctx context.Context, invoiceID, individualID string) error {
	d.log.Info().
		Str("invoice_id", invoiceID).
		Str("individual_id", individualID).
		Msg("alerta de factura vencida encolada")
	return nil
}
