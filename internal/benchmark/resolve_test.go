package benchmark_test

import (
	"testing"

	"solarverify/internal/models"

	"github.com/smartystreets/goconvey/convey"
)

func TestStore_Resolve(t *testing.T) {
	convey.Convey("Given the seeded benchmark store", t, func() {
		store := seededStore(t)

		resolved := []struct {
			claim models.ComponentClaim
			model string
		}{
			{models.ComponentClaim{Model: "LR5-72HIH-515M"}, "LR5-72HIH-515M"},
			{models.ComponentClaim{Model: "lr5 72hih 515m"}, "LR5-72HIH-515M"},
			{models.ComponentClaim{Model: "Longi 515W panel"}, "LR5-72HIH-515M"},
			{models.ComponentClaim{Model: "Longi panels"}, "LR5-72HIH-515M"},
			{models.ComponentClaim{Type: models.ComponentBattery, Model: "Fox ESS EP11"}, "EP11"},
			{models.ComponentClaim{Model: "Tesla Powerwall 3"}, "Powerwall 3"},
			{models.ComponentClaim{Model: "GivEnergy 9.5kWh battery"}, "Giv-Bat 9.5"},
			{models.ComponentClaim{Type: models.ComponentInverter, Model: "Enphase IQ8PLUS micro"}, "IQ8PLUS-72-2-US"},
			{models.ComponentClaim{Model: "Solis 6kW inverter"}, "S5-GR1P6K"},
		}
		for _, tc := range resolved {
			convey.Convey("When resolving "+tc.claim.Model, func() {
				c, ok := store.Resolve(tc.claim)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(c.Model, convey.ShouldEqual, tc.model)
			})
		}

		unresolved := []models.ComponentClaim{
			{Model: ""},
			{Model: "Acme 9000"},
			{Model: "Fox ESS"},
			{Type: models.ComponentBattery, Model: "Longi 515W"},
		}
		for _, claim := range unresolved {
			convey.Convey("When resolving unknown claim "+claim.Model, func() {
				_, ok := store.Resolve(claim)
				convey.So(ok, convey.ShouldBeFalse)
			})
		}
	})
}
