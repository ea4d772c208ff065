package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"cardlink/internal/db"
	"cardlink/internal/logging"
)

var (
	cardViewsDesc = prometheus.NewDesc(
		"cardlink_card_views_total",
		"Total public views per card",
		[]string{"slug"},
		nil,
	)

	assemblies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardlink_card_assemblies_total",
			Help: "Public card assemblies by outcome",
		},
		[]string{"outcome"},
	)
)

// collectTimeout bounds the database query behind one scrape.
const collectTimeout = 5 * time.Second

// ViewCountSource provides the per-card view counters.
type ViewCountSource interface {
	GetCardViewCounts(ctx context.Context) ([]db.CardViewCount, error)
}

// CardViewCollector is a custom Prometheus collector that reads card view
// counters from the database on each scrape.
type CardViewCollector struct {
	source ViewCountSource
}

// NewCardViewCollector creates a collector over source.
func NewCardViewCollector(source ViewCountSource) *CardViewCollector {
	return &CardViewCollector{source: source}
}

// Describe sends the metric descriptor to the channel.
func (c *CardViewCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cardViewsDesc
}

// Collect queries the view counters and emits them as counters.
func (c *CardViewCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	counts, err := c.source.GetCardViewCounts(ctx)
	if err != nil {
		logging.Log.Error("failed to collect card view metrics", zap.Error(err))
		return
	}
	for _, v := range counts {
		ch <- prometheus.MustNewConstMetric(
			cardViewsDesc,
			prometheus.CounterValue,
			float64(v.Views),
			v.Slug,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(source ViewCountSource) {
	initOnce.Do(func() {
		Register(prometheus.DefaultRegisterer, source)
	})
}

// Register registers the collectors with reg.
func Register(reg prometheus.Registerer, source ViewCountSource) {
	reg.MustRegister(NewCardViewCollector(source), assemblies)
}

// RecordAssembly counts one card assembly outcome.
func RecordAssembly(outcome string) {
	assemblies.WithLabelValues(outcome).Inc()
}
