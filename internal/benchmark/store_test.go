package benchmark_test

import (
	"testing"

	"solarverify/internal/benchmark"
	"solarverify/internal/models"
	"solarverify/internal/seed"

	"github.com/smartystreets/goconvey/convey"
)

func seededStore(t *testing.T) *benchmark.Store {
	t.Helper()
	cat, err := seed.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	comps, err := cat.Components()
	if err != nil {
		t.Fatalf("catalog components: %v", err)
	}
	for i := range comps {
		comps[i].ID = int64(i + 1)
	}
	pricing, err := cat.PricingBenchmarks()
	if err != nil {
		t.Fatalf("catalog pricing: %v", err)
	}
	return benchmark.New(comps, pricing, cat.InstallerBenchmarks())
}

func modelNames(cs []models.Component) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Model)
	}
	return out
}

func TestStore_FindComponents(t *testing.T) {
	convey.Convey("Given the seeded benchmark store", t, func() {
		store := seededStore(t)

		convey.Convey("When filtering panels by wattage", func() {
			got := store.FindComponents(models.ComponentPanel, benchmark.Filter{Wattage: 500})

			convey.Convey("Then panels within 50 W are returned in id order", func() {
				convey.So(modelNames(got), convey.ShouldResemble, []string{
					"LR5-72HIH-515M", "JAM72S30-545/MR", "TSM-NEG21C.20-550W", "CS3W-450MS", "JKM480M-7RL3-V",
				})
			})
		})

		convey.Convey("When filtering batteries by capacity", func() {
			got := store.FindComponents(models.ComponentBattery, benchmark.Filter{Capacity: 10})

			convey.Convey("Then batteries within 2 kWh are returned", func() {
				convey.So(modelNames(got), convey.ShouldResemble, []string{
					"Giv-Bat 9.5", "PureStorage II 10kWh", "EP10", "RESU10H",
				})
			})
		})

		convey.Convey("When filtering by manufacturer substring", func() {
			got := store.FindComponents(models.ComponentBattery, benchmark.Filter{Manufacturer: "fox"})
			convey.So(modelNames(got), convey.ShouldResemble, []string{"EP11", "EP10"})
		})

		convey.Convey("When filtering by tier and efficiency", func() {
			got := store.FindComponents(models.ComponentInverter, benchmark.Filter{Tier: models.TierPremium, MinEfficiency: 97.2})
			convey.So(modelNames(got), convey.ShouldResemble, []string{"SE5000H-RWS"})
		})

		convey.Convey("When nothing matches", func() {
			got := store.FindComponents(models.ComponentPanel, benchmark.Filter{Manufacturer: "acme"})

			convey.Convey("Then an empty, non-nil slice is returned", func() {
				convey.So(got, convey.ShouldNotBeNil)
				convey.So(got, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("Then counts reflect the catalogue", func() {
			counts := store.Counts()
			convey.So(counts["panels"], convey.ShouldEqual, 8)
			convey.So(counts["batteries"], convey.ShouldEqual, 8)
			convey.So(counts["inverters"], convey.ShouldEqual, 6)
			convey.So(counts["installers"], convey.ShouldEqual, 3)
		})
	})
}

func TestStore_Pricing(t *testing.T) {
	convey.Convey("Given the seeded benchmark store", t, func() {
		store := seededStore(t)

		convey.Convey("When looking up an exact region and band", func() {
			bm, ok := store.FindPricingBenchmark("UK South", "4kW")

			convey.Convey("Then the regional range is returned", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(bm.PriceLow, convey.ShouldEqual, 4000)
				convey.So(bm.PriceHigh, convey.ShouldEqual, 6000)
			})
		})

		convey.Convey("When the region is unknown", func() {
			_, ok := store.FindPricingBenchmark("Atlantis", "4kW")
			bm, fallback, found := store.PricingFor("Atlantis", "4kW")

			convey.Convey("Then exact lookup misses and PricingFor uses the national default", func() {
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(found, convey.ShouldBeTrue)
				convey.So(fallback, convey.ShouldBeTrue)
				convey.So(bm.Region, convey.ShouldEqual, benchmark.NationalRegion)
				convey.So(bm.SizeBand, convey.ShouldEqual, "4kW")
			})
		})

		convey.Convey("When the region lacks the band", func() {
			bm, fallback, found := store.PricingFor("Scotland", "8kW")
			convey.So(found, convey.ShouldBeTrue)
			convey.So(fallback, convey.ShouldBeTrue)
			convey.So(bm.Region, convey.ShouldEqual, "UK")
			convey.So(bm.PriceLow, convey.ShouldEqual, 7500)
		})

		convey.Convey("When listing with filters", func() {
			convey.So(store.PricingBenchmarks("uk-south", ""), convey.ShouldHaveLength, 4)
			convey.So(store.PricingBenchmarks("", "4kw"), convey.ShouldHaveLength, 5)
			convey.So(store.PricingBenchmarks("", ""), convey.ShouldHaveLength, 18)
		})

		convey.Convey("When the store has no pricing at all", func() {
			empty := benchmark.New(nil, nil, nil)
			_, _, found := empty.PricingFor("UK", "4kW")
			convey.So(found, convey.ShouldBeFalse)
		})
	})
}

func TestStore_InstallerBand(t *testing.T) {
	convey.Convey("Given the seeded installer benchmarks", t, func() {
		store := seededStore(t)

		cases := []struct {
			perKW  float64
			want   string
			within bool
		}{
			{1125, "Volume", false},
			{1500, "Volume", true},
			{2100, "Local", true},
			{2500, "Premium", true},
			{3000, "Premium", false},
		}
		for _, tc := range cases {
			band, within, ok := store.InstallerBand(tc.perKW)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(band.InstallerType, convey.ShouldEqual, tc.want)
			convey.So(within, convey.ShouldEqual, tc.within)
		}
	})
}

func TestSizeBand(t *testing.T) {
	convey.Convey("Given system sizes", t, func() {
		convey.So(benchmark.SizeBand(0.5), convey.ShouldEqual, "3kW")
		convey.So(benchmark.SizeBand(3.49), convey.ShouldEqual, "3kW")
		convey.So(benchmark.SizeBand(3.5), convey.ShouldEqual, "4kW")
		convey.So(benchmark.SizeBand(4), convey.ShouldEqual, "4kW")
		convey.So(benchmark.SizeBand(6.5), convey.ShouldEqual, "6kW")
		convey.So(benchmark.SizeBand(12), convey.ShouldEqual, "12kW+")
		convey.So(benchmark.SizeBand(40), convey.ShouldEqual, "12kW+")

		band, ok := benchmark.LookupBand("12 KW+")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(band.MinKW, convey.ShouldEqual, 12)
		_, ok = benchmark.LookupBand("7kW")
		convey.So(ok, convey.ShouldBeFalse)
	})
}
