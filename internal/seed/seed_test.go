package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"solarverify/internal/database"
	"solarverify/internal/models"
	"solarverify/internal/repositories"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	comps, err := cat.Components()
	require.NoError(t, err)
	assert.Len(t, comps, 22)

	byType := map[models.ComponentType]int{}
	for _, c := range comps {
		byType[c.Type]++
		switch c.Type {
		case models.ComponentPanel:
			require.NotNil(t, c.Panel, c.Model)
			assert.Greater(t, c.Panel.WattageW, 0.0)
		case models.ComponentBattery:
			require.NotNil(t, c.Battery, c.Model)
			assert.LessOrEqual(t, c.Battery.UsableKWh, c.Battery.CapacityKWh)
		case models.ComponentInverter:
			require.NotNil(t, c.Inverter, c.Model)
		}
	}
	assert.Equal(t, 8, byType[models.ComponentPanel])
	assert.Equal(t, 8, byType[models.ComponentBattery])
	assert.Equal(t, 6, byType[models.ComponentInverter])

	pricing, err := cat.PricingBenchmarks()
	require.NoError(t, err)
	assert.Len(t, pricing, 18)
	assert.Len(t, cat.InstallerBenchmarks(), 3)
}

func TestCatalogRejectsBadData(t *testing.T) {
	cat, err := Parse([]byte(`
panels:
  - {manufacturer: Acme, model: X1, tier: Platinum, spec: {wattage: 400}}
`))
	require.NoError(t, err)
	_, err = cat.Components()
	assert.ErrorContains(t, err, "unknown tier")

	cat, err = Parse([]byte(`
pricing:
  - region: UK
    bands:
      - {band: 7kW, low: 1, high: 2}
`))
	require.NoError(t, err)
	_, err = cat.PricingBenchmarks()
	assert.ErrorContains(t, err, "unknown size band")

	_, err = Parse([]byte("panels: {"))
	assert.Error(t, err)
}

func TestApplyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:", 0)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db))

	repo := repositories.NewBenchmarkRepository(db)
	cat, err := Load()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		sum, err := Apply(ctx, repo, cat, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, Summary{Components: 22, Pricing: 18, Installers: 3}, sum)
	}

	comps, err := repo.ListComponents(ctx)
	require.NoError(t, err)
	assert.Len(t, comps, 22)
	pricing, err := repo.ListPricing(ctx)
	require.NoError(t, err)
	assert.Len(t, pricing, 18)
}
