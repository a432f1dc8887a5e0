package pricestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	. "github.com/smartystreets/goconvey/convey"
)

// sequenceSource returns a different table on every load and fails when
// fail is set.
type sequenceSource struct {
	loads atomic.Int64
	fail  atomic.Bool
}

func (s *sequenceSource) Name() string { return "sequence" }

func (s *sequenceSource) Load(_ context.Context) (map[string]float64, error) {
	n := s.loads.Add(1)
	if s.fail.Load() {
		return nil, errors.New("upstream down")
	}
	return map[string]float64{"HYPERION": float64(n * 1000)}, nil
}

type fakeHash struct {
	values map[string]string
	err    error
}

func (f fakeHash) HGetAll(_ context.Context, _ string) *redis.StringStringMapCmd {
	return redis.NewStringStringMapResult(f.values, f.err)
}

func TestStore(t *testing.T) {
	Convey("Given a price store over a static source", t, func() {
		ctx := context.Background()
		store, err := New(ctx, MapSource{"hyperion": 1000, "BAD": -1})
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("Then the initial snapshot is published with normalized keys", func() {
			snap, err := store.Snapshot()
			So(err, ShouldBeNil)
			p, ok := snap.TryGetPrice("HYPERION")
			So(ok, ShouldBeTrue)
			So(p, ShouldEqual, 1000)
			_, ok = snap.TryGetPrice("BAD")
			So(ok, ShouldBeFalse)
		})

		Convey("When publishing a new table", func() {
			before, _ := store.Snapshot()
			after := store.Publish(map[string]float64{"TERMINATOR": 5})

			Convey("Then readers see the new generation", func() {
				So(after.Generation(), ShouldBeGreaterThan, before.Generation())
				_, ok := store.Prices().TryGetPrice("HYPERION")
				So(ok, ShouldBeFalse)
				p, ok := store.Prices().TryGetPrice("TERMINATOR")
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 5)
			})

			Convey("And the previously read snapshot is unchanged", func() {
				p, ok := before.TryGetPrice("HYPERION")
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 1000)
			})
		})
	})

	Convey("Given a source that fails on the first load", t, func() {
		src := &sequenceSource{}
		src.fail.Store(true)
		_, err := New(context.Background(), src)

		Convey("Then construction fails with ErrSourceLoad", func() {
			So(errors.Is(err, ErrSourceLoad), ShouldBeTrue)
		})
	})

	Convey("Given a nil source", t, func() {
		_, err := New(context.Background(), nil)
		So(errors.Is(err, ErrSourceLoad), ShouldBeTrue)
	})

	Convey("Given a refreshing store", t, func() {
		src := &sequenceSource{}
		store, err := New(context.Background(), src)
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("When a reload fails", func() {
			src.fail.Store(true)
			err := store.Refresh(context.Background())

			Convey("Then the previous snapshot is kept", func() {
				So(errors.Is(err, ErrSourceLoad), ShouldBeTrue)
				p, ok := store.Prices().TryGetPrice("HYPERION")
				So(ok, ShouldBeTrue)
				So(p, ShouldEqual, 1000)
			})
		})

		Convey("When a reload succeeds", func() {
			So(store.Refresh(context.Background()), ShouldBeNil)
			p, _ := store.Prices().TryGetPrice("HYPERION")
			So(p, ShouldEqual, 2000)
		})
	})

	Convey("Given a store with a background refresh interval", t, func() {
		src := &sequenceSource{}
		store, err := New(context.Background(), src, WithRefreshInterval(10*time.Millisecond))
		So(err, ShouldBeNil)

		Convey("Then the snapshot advances on its own and Close stops the loop", func() {
			deadline := time.Now().Add(2 * time.Second)
			for src.loads.Load() < 3 && time.Now().Before(deadline) {
				time.Sleep(5 * time.Millisecond)
			}
			So(src.loads.Load(), ShouldBeGreaterThanOrEqualTo, 3)
			So(store.Close(), ShouldBeNil)
			So(store.Close(), ShouldBeNil)

			loads := src.loads.Load()
			time.Sleep(30 * time.Millisecond)
			So(src.loads.Load(), ShouldEqual, loads)
		})
	})
}

func TestFileSource(t *testing.T) {
	Convey("Given price files on disk", t, func() {
		dir := t.TempDir()
		write := func(name, body string) string {
			path := filepath.Join(dir, name)
			So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
			return path
		}

		Convey("When the file is a flat table", func() {
			path := write("flat.json", `{"HYPERION": 850000000, "WITHER_BLOOD": {"price": 20000}, "ODD": {"lowestBin": 3}, "SKIP": "n/a"}`)
			prices, err := NewFileSource(path).Load(context.Background())

			Convey("Then numbers and price objects are read", func() {
				So(err, ShouldBeNil)
				So(prices, ShouldResemble, map[string]float64{"HYPERION": 850000000, "WITHER_BLOOD": 20000, "ODD": 3})
			})
		})

		Convey("When the file is a bazaar dump", func() {
			path := write("bazaar.json", `{"success": true, "lastUpdated": 1, "products": {
				"ENCHANTED_DIAMOND": {"product_id": "ENCHANTED_DIAMOND", "quick_status": {"buyPrice": 180.5, "sellPrice": 170}},
				"RARE_THING": {"quick_status": {"buyPrice": 0, "sellPrice": 99}},
				"DEAD": {"quick_status": {"buyPrice": 0, "sellPrice": 0}}
			}}`)
			prices, err := NewFileSource(path).Load(context.Background())

			Convey("Then buy prices are used with sell price as fallback", func() {
				So(err, ShouldBeNil)
				So(prices, ShouldResemble, map[string]float64{"ENCHANTED_DIAMOND": 180.5, "RARE_THING": 99})
			})
		})

		Convey("When the file is malformed", func() {
			path := write("broken.json", `{"HYPERION": `)
			_, err := NewFileSource(path).Load(context.Background())
			So(errors.Is(err, ErrInvalidData), ShouldBeTrue)
		})

		Convey("When the file is not an object", func() {
			_, err := ParsePrices([]byte(`[1, 2]`))
			So(errors.Is(err, ErrInvalidData), ShouldBeTrue)
		})

		Convey("When the file is missing", func() {
			_, err := NewFileSource(filepath.Join(dir, "missing.json")).Load(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRedisSource(t *testing.T) {
	Convey("Given a redis price hash", t, func() {
		Convey("When the hash holds numeric strings", func() {
			src := &RedisSource{client: fakeHash{values: map[string]string{"HYPERION": "850000000", "JUNK": "abc"}}, key: "prices"}
			prices, err := src.Load(context.Background())

			Convey("Then parsable fields are returned", func() {
				So(err, ShouldBeNil)
				So(prices, ShouldResemble, map[string]float64{"HYPERION": 850000000})
				So(src.Close(), ShouldBeNil)
			})
		})

		Convey("When redis fails", func() {
			src := &RedisSource{client: fakeHash{err: errors.New("connection refused")}, key: "prices"}
			_, err := src.Load(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMergedSource(t *testing.T) {
	Convey("Given several sources", t, func() {
		failing := &sequenceSource{}
		failing.fail.Store(true)

		Convey("When later sources override earlier ones", func() {
			src := MergedSource{MapSource{"A": 1, "B": 2}, failing, MapSource{"B": 3}}
			prices, err := src.Load(context.Background())

			Convey("Then keys are merged in order and failures are skipped", func() {
				So(err, ShouldBeNil)
				So(prices, ShouldResemble, map[string]float64{"A": 1, "B": 3})
				So(src.Name(), ShouldEqual, "static+sequence+static")
			})
		})

		Convey("When sources spell the same key in different cases", func() {
			src := MergedSource{MapSource{"hyperion": 1, "Wither_Blood": 5}, MapSource{"HYPERION": 2}}
			prices, err := src.Load(context.Background())

			Convey("Then the later source wins under the upper-cased key", func() {
				So(err, ShouldBeNil)
				So(prices, ShouldResemble, map[string]float64{"HYPERION": 2, "WITHER_BLOOD": 5})
			})

			Convey("Then reversing the order flips the winner", func() {
				prices, err := MergedSource{MapSource{"HYPERION": 2}, MapSource{"hyperion": 1}}.Load(context.Background())
				So(err, ShouldBeNil)
				So(prices["HYPERION"], ShouldEqual, 1)
			})
		})

		Convey("When every source fails", func() {
			_, err := MergedSource{failing}.Load(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
