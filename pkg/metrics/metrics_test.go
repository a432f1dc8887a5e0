package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

// gathered reads the current value of a counter or gauge series from the
// custom registry.
func gathered(name string, labels map[string]string) float64 {
	families, err := GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metrics:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return 0
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it registers its collectors on that registry", func() {
				So(manager, ShouldNotBeNil)
				manager.valuationsTotal.WithLabelValues("single").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)

				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["test_unit_valuations_total"], ShouldBeTrue)
				So(names["test_catalog_entries"], ShouldBeTrue)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording valuations", func() {
			before := gathered("networth_valuation_valuations_total", map[string]string{"mode": "batch"})
			RecordValuation("batch", 0.02)
			RecordValuation("batch", 0.03)

			Convey("Then the counter advances per call", func() {
				after := gathered("networth_valuation_valuations_total", map[string]string{"mode": "batch"})
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When recording handler activity", func() {
			before := gathered("networth_valuation_handler_applied_total", map[string]string{"handler": "reforge"})
			RecordHandlerApplied("reforge")
			RecordHandlerRecovered("rune")

			Convey("Then each handler has its own series", func() {
				So(gathered("networth_valuation_handler_applied_total", map[string]string{"handler": "reforge"})-before, ShouldEqual, 1)
				So(gathered("networth_valuation_handler_recovered_total", map[string]string{"handler": "rune"}), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When updating the catalog gauges", func() {
			UpdateCatalog(1234, 7)

			Convey("Then size and generation are published", func() {
				So(gathered("networth_catalog_entries", nil), ShouldEqual, 1234)
				So(gathered("networth_catalog_generation", nil), ShouldEqual, 7)
			})
		})

		Convey("When recording the remaining series", func() {
			So(func() {
				RecordCatalogRefresh(12.5, 1_700_000_000)
				RecordCatalogRefreshError("redis")
				RecordBatch(10, 3.2)
				UpdateWorkerCount(4)
				IncWorkerActive()
				DecWorkerActive()
				UpdateQueueSize(3)
				UpdateQueueCapacity(64)
				RecordQueueRejected("full")
				RecordResultCacheHit()
				RecordResultCacheMiss()
				RecordHTTPRequest("/networth", "POST", "200")
				RecordHTTPRequestDuration("/networth", "POST", "200", 1.5)
				RecordErrorByComponent("pricestore", "source_load")
			}, ShouldNotPanic)
			So(gathered("networth_batch_worker_count", nil), ShouldEqual, 4)
			So(gathered("networth_queue_capacity", nil), ShouldEqual, 64)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
