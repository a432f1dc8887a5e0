package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	service "github.com/skyforge/networth/internal/app"
	"github.com/skyforge/networth/internal/adapters/pricestore"
	"github.com/skyforge/networth/internal/domain/model"
	"github.com/skyforge/networth/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var prices = pricestore.MapSource{ //nolint:gochecknoglobals // shared fixture
	"HYPERION":                1000,
	"WITHER_BLOOD":            200,
	"HYPERION_SKINNED_SHADOW": 1500,
	"ENCHANTMENT_SHARPNESS_6": 100,
	"ENCHANTMENT_CRITICAL_6":  100,
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Load(context.Context) (map[string]float64, error) {
	return nil, errors.New("unreachable")
}

func withered(uuid string) *model.Item {
	return &model.Item{
		SkyblockID: "HYPERION",
		UUID:       uuid,
		Count:      1,
		Attributes: model.Attributes{Extra: map[string]any{"modifier": "withered"}},
	}
}

func started(opts ...service.Option) *service.Service {
	opts = append([]service.Option{service.WithPriceSource(prices), service.WithLogger(logger.Nop())}, opts...)
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report defaults before start", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["maxBatchSize"], ShouldEqual, 1000)
		})

		Convey("Then starting without a price source fails", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrNoPriceSource), ShouldBeTrue)
		})
	})

	Convey("Given a service whose price source fails", t, func() {
		svc := service.New(service.WithPriceSource(failingSource{}), service.WithLogger(logger.Nop()))

		Convey("Then start reports the load failure", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, pricestore.ErrSourceLoad), ShouldBeTrue)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started(service.WithWorkerCount(3))

		Convey("Then stats describe the running components", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["workerCount"], ShouldEqual, 3)
			So(stats["catalogEntries"], ShouldEqual, len(prices))
			So(stats["priceSource"], ShouldEqual, "static")
			So(stats["handlers"], ShouldNotBeEmpty)
		})

		Convey("Then a second start is a no-op", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
		})

		Convey("When stopping the service", func() {
			svc.Stop()
			svc.Stop()

			Convey("Then it should be marked as stopped and refuse work", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				_, err := svc.Value(context.Background(), withered(""))
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				_, err = svc.ValueBatch(context.Background(), []*model.Item{withered("")})
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
				So(errors.Is(svc.RefreshPrices(context.Background()), service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Reset(svc.Stop)
	})
}

func TestService_Value(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := started()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When valuing a reforged item stack", func() {
			item := withered("")
			item.Count = 2
			v, err := svc.Value(ctx, item)

			Convey("Then the stone is added and the stack total reported", func() {
				So(err, ShouldBeNil)
				So(v.BasePrice, ShouldEqual, 1000)
				So(v.Price, ShouldEqual, 1200)
				So(v.Total, ShouldEqual, 2400)
				So(v.Generation, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When valuing an unknown item", func() {
			v, err := svc.Value(ctx, &model.Item{SkyblockID: "NOT_AN_ITEM", Count: 1})

			Convey("Then it is worth nothing", func() {
				So(err, ShouldBeNil)
				So(v.Price, ShouldEqual, 0)
				So(v.Calculation, ShouldBeEmpty)
			})
		})

		Convey("When listing catalog keys", func() {
			keys, err := svc.CatalogKeys("ENCHANTMENT_")
			So(err, ShouldBeNil)
			So(keys, ShouldResemble, []string{"ENCHANTMENT_CRITICAL_6", "ENCHANTMENT_SHARPNESS_6"})
		})
	})
}

func TestService_ValueBatch(t *testing.T) {
	Convey("Given a started service with a small batch limit", t, func() {
		svc := started(service.WithWorkerCount(4), service.WithQueueSize(8), service.WithMaxBatchSize(50))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When valuing a batch", func() {
			items := make([]*model.Item, 50)
			for i := range items {
				if i%2 == 0 {
					items[i] = withered(fmt.Sprintf("u-%d", i))
				} else {
					items[i] = &model.Item{SkyblockID: "HYPERION", Count: i}
				}
			}
			res, err := svc.ValueBatch(ctx, items)

			Convey("Then results keep input order", func() {
				So(err, ShouldBeNil)
				So(res.ID, ShouldNotBeEmpty)
				So(res.Results, ShouldHaveLength, 50)
				for i, r := range res.Results {
					if i%2 == 0 {
						So(r.Price, ShouldEqual, 1200)
					} else {
						So(r.Price, ShouldEqual, 1000)
						So(r.Count, ShouldEqual, i)
					}
				}
			})
		})

		Convey("When the batch exceeds the limit", func() {
			_, err := svc.ValueBatch(ctx, make([]*model.Item, 51))
			So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
		})
	})
}

func TestService_Cosmetics(t *testing.T) {
	skinned := func() *model.Item {
		return &model.Item{
			SkyblockID: "HYPERION",
			Count:      1,
			Attributes: model.Attributes{Extra: map[string]any{"skin": "shadow"}},
		}
	}

	Convey("Given a service that keeps cosmetic value", t, func() {
		svc := started()
		defer svc.Stop()

		v, err := svc.Value(context.Background(), skinned())

		Convey("Then the skin premium is included and flagged", func() {
			So(err, ShouldBeNil)
			So(v.Price, ShouldEqual, 1500)
			So(v.CosmeticValue, ShouldEqual, 500)
			So(v.NonCosmeticPrice(), ShouldEqual, 1000)
		})
	})

	Convey("Given a service that excludes cosmetic value", t, func() {
		svc := started(service.WithExcludeCosmetic(true))
		defer svc.Stop()

		v, err := svc.Value(context.Background(), skinned())

		Convey("Then the skin entry and its value are dropped", func() {
			So(err, ShouldBeNil)
			So(v.Price, ShouldEqual, 1000)
			So(v.CosmeticValue, ShouldEqual, 0)
			for _, c := range v.Calculation {
				So(c.IsCosmetic, ShouldBeFalse)
			}
		})
	})
}

func TestService_ResultCache(t *testing.T) {
	Convey("Given a service with the result cache enabled", t, func() {
		svc := started(service.WithResultCacheTTL(time.Minute))
		defer svc.Stop()
		ctx := context.Background()

		first, err := svc.Value(ctx, withered("cached-uuid"))
		So(err, ShouldBeNil)
		So(first.Price, ShouldEqual, 1200)

		Convey("When an identical item is valued again in the same generation", func() {
			again, err := svc.Value(ctx, withered("cached-uuid"))

			Convey("Then the cached result is served", func() {
				So(err, ShouldBeNil)
				So(again.Price, ShouldEqual, 1200)
				So(again.Calculation, ShouldResemble, first.Calculation)
				So(svc.GetStats()["resultCacheItems"], ShouldEqual, 1)
			})
		})

		Convey("When the item changes but keeps its uuid", func() {
			plain := withered("cached-uuid")
			plain.Attributes = model.Attributes{}
			changed, err := svc.Value(ctx, plain)

			Convey("Then it is valued again from its new content", func() {
				So(err, ShouldBeNil)
				So(changed.Price, ShouldEqual, 1000)
				So(changed.Calculation, ShouldBeEmpty)
				So(svc.GetStats()["resultCacheItems"], ShouldEqual, 2)
			})

			Convey("And the original content still hits its own entry", func() {
				again, err := svc.Value(ctx, withered("cached-uuid"))
				So(err, ShouldBeNil)
				So(again.Price, ShouldEqual, 1200)
				So(svc.GetStats()["resultCacheItems"], ShouldEqual, 2)
			})
		})

		Convey("When prices are refreshed", func() {
			So(svc.RefreshPrices(ctx), ShouldBeNil)
			plain := withered("cached-uuid")
			plain.Attributes = model.Attributes{}
			again, err := svc.Value(ctx, plain)

			Convey("Then the item is valued against the new generation", func() {
				So(err, ShouldBeNil)
				So(again.Price, ShouldEqual, 1000)
				So(again.Generation, ShouldBeGreaterThan, first.Generation)
			})
		})

		Convey("When an item has no uuid", func() {
			_, _ = svc.Value(ctx, withered(""))

			Convey("Then it is not cached", func() {
				So(svc.GetStats()["resultCacheItems"], ShouldEqual, 1)
			})
		})
	})
}
