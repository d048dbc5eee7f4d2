// Package email implementa el notificador de alertas de stock bajo vía SMTP.
package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/mnsts/ims-api/internal/application/ledger"
	"github.com/mnsts/ims-api/pkg/config"
	"github.com/mnsts/ims-api/pkg/logger"
)

var _ ledger.Notifier = (*GomailSender)(nil)

// GomailSender envía el correo de alertas de stock bajo con gomail.
// Sin SMTP_HOST o sin destinatarios queda deshabilitado: cada envío se loguea
// y se descarta sin error, manteniendo el contrato best-effort del motor.
type GomailSender struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewGomailSender construye el notificador.
func NewGomailSender(cfg config.SMTPConfig, log *logger.Logger) *GomailSender {
	return &GomailSender{cfg: cfg, log: log}
}

func (s *GomailSender) enabled() bool {
	return s.cfg.Host != "" && s.cfg.AlertTo != ""
}

// SendLowStockAlert envía un correo HTML con la tabla de artículos bajos.
func (s *GomailSender) SendLowStockAlert(ctx context.Context, items []ledger.LowStockItem) error {
	if !s.enabled() {
		if s.log != nil {
			s.log.Debug().Int("items", len(items)).Msg("alertas por correo deshabilitadas; se omite el envío")
		}
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", recipients(s.cfg.AlertTo)...)
	m.SetHeader("Subject", fmt.Sprintf("Low stock alert: %d item(s) need restocking", len(items)))
	m.SetBody("text/html", buildAlertHTML(items, time.Now()))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar alerta de stock bajo: %w", err)
	}
	if s.log != nil {
		s.log.Info().Int("items", len(items)).Msg("alerta de stock bajo enviada")
	}
	return nil
}

func recipients(alertTo string) []string {
	parts := strings.Split(alertTo, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// buildAlertHTML arma la tabla del correo. HTML inline simple: los clientes de
// correo no cargan hojas de estilo externas.
func buildAlertHTML(items []ledger.LowStockItem, now time.Time) string {
	var b strings.Builder
	b.WriteString(`<h2>Low Stock Alert</h2>`)
	fmt.Fprintf(&b, `<p>%d item(s) are at or below their minimum stock level as of %s.</p>`,
		len(items), now.Format("2006-01-02 15:04"))
	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Item</th><th>SKU</th><th>Category</th><th>Current</th><th>Minimum</th><th>Shortage</th></tr>`)
	for _, it := range items {
		fmt.Fprintf(&b, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
			htmlEscape(it.Name), htmlEscape(it.SKU), htmlEscape(it.Category),
			it.CurrentStock, it.MinStock, it.Shortage)
	}
	b.WriteString(`</table>`)
	b.WriteString(`<p>Please restock these items as soon as possible.</p>`)
	return b.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
