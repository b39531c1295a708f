package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
)

// messageKind names the customer-facing message templates.
type messageKind int

const (
	messageOrderConfirmation messageKind = iota + 1
	messageInProductionNotice
	messageShippedNotice
	messageDeliveredNotice
)

// transition is an ordered (previous, new) status pair.
type transition struct {
	from order.Status
	to   order.Status
}

// exactRoutes maps specific transitions to a message. Checked before the
// wildcard table, so a pair listed here wins over its wildcard entry.
var exactRoutes = map[transition]messageKind{
	{order.PendingPayment, order.PaidAwaitingBAT}: messageOrderConfirmation,
}

// wildcardRoutes maps "entering this status from anywhere" to a message.
var wildcardRoutes = map[order.Status]messageKind{
	order.InProduction: messageInProductionNotice,
	order.InDelivery:   messageShippedNotice,
	order.Delivered:    messageDeliveredNotice,
}

// NotificationStage maps a status transition to at most one customer message
// and attempts delivery through the email transport. Transitions absent from
// both route tables produce no delivery attempt.
//
// The stage fires only on updates that changed the status, never on creation,
// and is independent of the document generators: a failed document stage does
// not stop the notification from being attempted.
type NotificationStage struct {
	transport ports.EmailTransport
}

// NewNotificationStage creates the customer notification stage.
func NewNotificationStage(transport ports.EmailTransport) *NotificationStage {
	return &NotificationStage{transport: transport}
}

// Name identifies the stage in logs.
func (s *NotificationStage) Name() string {
	return "notification_dispatcher"
}

// Apply renders and sends the message mapped to the (previous, new) status
// pair, if any.
func (s *NotificationStage) Apply(ctx context.Context, previous, persisted *order.Order) error {
	if previous == nil || previous.Status() == persisted.Status() {
		return nil
	}

	kind, ok := routeFor(previous.Status(), persisted.Status())
	if !ok {
		return nil
	}

	subject, body, err := renderMessage(kind, projectionOf(persisted))
	if err != nil {
		return err
	}

	return s.transport.Send(ctx, persisted.Customer().Email, subject, body)
}

func routeFor(from, to order.Status) (messageKind, bool) {
	if kind, ok := exactRoutes[transition{from, to}]; ok {
		return kind, true
	}
	kind, ok := wildcardRoutes[to]
	return kind, ok
}

// messageProjection is the slice of the order a message template may see.
type messageProjection struct {
	CustomerName   string
	OrderNumber    string
	Total          string
	ItemsSummary   string
	TrackingNumber string
}

func projectionOf(o *order.Order) messageProjection {
	items := o.Items()
	summaries := make([]string, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, fmt.Sprintf("%d x %s", item.Quantity, item.Name))
	}

	return messageProjection{
		CustomerName:   o.Customer().Name,
		OrderNumber:    o.Number(),
		Total:          formatCents(o.Totals().TotalCents),
		ItemsSummary:   strings.Join(summaries, ", "),
		TrackingNumber: o.TrackingNumber(),
	}
}

type messageTemplate struct {
	subject string
	body    *template.Template
}

var messageTemplates = map[messageKind]messageTemplate{
	messageOrderConfirmation: {
		subject: "Your order %s is confirmed",
		body: template.Must(template.New("confirmation").Parse(
			`Hello {{.CustomerName}},

We have received your payment for order {{.OrderNumber}} ({{.ItemsSummary}}).
Total: {{.Total}}

We will send you the production proof for approval shortly.
`)),
	},
	messageInProductionNotice: {
		subject: "Your order %s is in production",
		body: template.Must(template.New("in_production").Parse(
			`Hello {{.CustomerName}},

Good news: order {{.OrderNumber}} ({{.ItemsSummary}}) has entered production.
`)),
	},
	messageShippedNotice: {
		subject: "Your order %s has shipped",
		body: template.Must(template.New("shipped").Parse(
			`Hello {{.CustomerName}},

Order {{.OrderNumber}} is on its way.{{if .TrackingNumber}}
Tracking number: {{.TrackingNumber}}{{end}}
`)),
	},
	messageDeliveredNotice: {
		subject: "Your order %s was delivered",
		body: template.Must(template.New("delivered").Parse(
			`Hello {{.CustomerName}},

Order {{.OrderNumber}} has been delivered. Enjoy!
`)),
	},
}

func renderMessage(kind messageKind, projection messageProjection) (subject, body string, err error) {
	tmpl, ok := messageTemplates[kind]
	if !ok {
		return "", "", fmt.Errorf("no template registered for message kind %d", kind)
	}

	var buf bytes.Buffer
	if err = tmpl.body.Execute(&buf, projection); err != nil {
		return "", "", fmt.Errorf("render message: %w", err)
	}

	return fmt.Sprintf(tmpl.subject, projection.OrderNumber), buf.String(), nil
}
