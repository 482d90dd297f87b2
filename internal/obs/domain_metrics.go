package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// SalesCreatedTotal counts committed sales by payment method.
	SalesCreatedTotal *prometheus.CounterVec
	// PurchasesCreatedTotal counts committed stock-in purchases.
	PurchasesCreatedTotal prometheus.Counter
	// POSCheckoutTotal counts POS checkout attempts by outcome.
	POSCheckoutTotal *prometheus.CounterVec
	// POSStockLimitTotal counts cart mutations rejected for exceeding stock.
	POSStockLimitTotal prometheus.Counter
	// POSActiveSessions reports live POS sessions held by the registry.
	POSActiveSessions prometheus.Gauge
	// LowStockAlertsTotal counts products reported below the low stock threshold.
	LowStockAlertsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		SalesCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_created_total",
			Help:      "Count of committed sales by payment method.",
		}, []string{"payment_method"})
		PurchasesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_created_total",
			Help:      "Count of committed purchases.",
		})
		POSCheckoutTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pos_checkout_total",
			Help:      "Count of POS checkout attempts by result.",
		}, []string{"result"})
		POSStockLimitTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pos_stock_limit_total",
			Help:      "Count of cart mutations rejected by the stock limit.",
		})
		POSActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pos_active_sessions",
			Help:      "Number of live POS sessions.",
		})
		LowStockAlertsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "low_stock_alerts_total",
			Help:      "Count of low stock alerts raised after sales.",
		})

		mustRegisterCollector(reg, SalesCreatedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				SalesCreatedTotal = v
			}
		})
		mustRegisterCollector(reg, PurchasesCreatedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				PurchasesCreatedTotal = v
			}
		})
		mustRegisterCollector(reg, POSCheckoutTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				POSCheckoutTotal = v
			}
		})
		mustRegisterCollector(reg, POSStockLimitTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				POSStockLimitTotal = v
			}
		})
		mustRegisterCollector(reg, POSActiveSessions, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Gauge); ok {
				POSActiveSessions = v
			}
		})
		mustRegisterCollector(reg, LowStockAlertsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				LowStockAlertsTotal = v
			}
		})
	})
}

// IncSaleCreated records a committed sale. Safe to call before registration.
func IncSaleCreated(paymentMethod string) {
	if SalesCreatedTotal != nil {
		SalesCreatedTotal.WithLabelValues(paymentMethod).Inc()
	}
}

// IncPurchaseCreated records a committed purchase.
func IncPurchaseCreated() {
	if PurchasesCreatedTotal != nil {
		PurchasesCreatedTotal.Inc()
	}
}

// IncCheckout records a POS checkout outcome (success, failed, empty, busy).
func IncCheckout(result string) {
	if POSCheckoutTotal != nil {
		POSCheckoutTotal.WithLabelValues(result).Inc()
	}
}

// IncStockLimit records a stock limit rejection.
func IncStockLimit() {
	if POSStockLimitTotal != nil {
		POSStockLimitTotal.Inc()
	}
}

// SetActiveSessions publishes the live session count.
func SetActiveSessions(n int) {
	if POSActiveSessions != nil {
		POSActiveSessions.Set(float64(n))
	}
}

// AddLowStockAlerts records n low stock products.
func AddLowStockAlerts(n int) {
	if LowStockAlertsTotal != nil && n > 0 {
		LowStockAlertsTotal.Add(float64(n))
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
