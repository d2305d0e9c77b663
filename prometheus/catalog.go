package prometheus

import (
	"github.com/fwojciec/vipbot"
	"github.com/prometheus/client_golang/prometheus"
)

// Ensure CatalogCollector implements prometheus.Collector at compile time.
var _ prometheus.Collector = (*CatalogCollector)(nil)

// CatalogCollector reports the size of the current snapshot on every scrape.
type CatalogCollector struct {
	catalog vipbot.Catalog

	products   *prometheus.Desc
	faq        *prometheus.Desc
	categories *prometheus.Desc
	inStock    *prometheus.Desc
}

// NewCatalogCollector creates a collector reading from catalog.
func NewCatalogCollector(catalog vipbot.Catalog) *CatalogCollector {
	return &CatalogCollector{
		catalog: catalog,
		products: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "catalog", "products"),
			"Number of products in the current snapshot.", nil, nil),
		faq: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "catalog", "faq"),
			"Number of FAQ items in the current snapshot.", nil, nil),
		categories: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "catalog", "categories"),
			"Number of product categories in the current snapshot.", nil, nil),
		inStock: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "catalog", "in_stock"),
			"Number of in-stock products in the current snapshot.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *CatalogCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.products
	ch <- c.faq
	ch <- c.categories
	ch <- c.inStock
}

// Collect implements prometheus.Collector.
func (c *CatalogCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.catalog.Snapshot()
	ch <- prometheus.MustNewConstMetric(c.products, prometheus.GaugeValue, float64(len(snap.Products)))
	ch <- prometheus.MustNewConstMetric(c.faq, prometheus.GaugeValue, float64(len(snap.FAQ)))
	ch <- prometheus.MustNewConstMetric(c.categories, prometheus.GaugeValue, float64(len(snap.Categories)))
	ch <- prometheus.MustNewConstMetric(c.inStock, prometheus.GaugeValue, float64(snap.Available()))
}
