package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// StorefrontMetrics counts domain events: orders, notifications and cart mutations.
type StorefrontMetrics struct {
	orders        prometheus.Counter
	notifications *prometheus.CounterVec
	cartOps       *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	orders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Orders persisted by checkout.",
	})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_notifications_total",
		Help: "Contact notification dispatch attempts by outcome.",
	}, []string{"outcome"})
	cartOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_operations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	reg.MustRegister(orders, notifications, cartOps)
	return &StorefrontMetrics{
		orders:        orders,
		notifications: notifications,
		cartOps:       cartOps,
	}
}

// IncOrderCreated counts a persisted order.
func (m *StorefrontMetrics) IncOrderCreated() {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.Inc()
}

// IncNotification counts a dispatch attempt with the given outcome.
func (m *StorefrontMetrics) IncNotification(outcome string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCartOperation counts a cart mutation.
func (m *StorefrontMetrics) IncCartOperation(op string) {
	if m == nil || m.cartOps == nil {
		return
	}
	m.cartOps.WithLabelValues(normalizeLabel(op)).Inc()
}
