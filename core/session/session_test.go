package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landed-cost/core/catalog/catalogtest"
	"landed-cost/core/engine"
	"landed-cost/core/session"
	"landed-cost/core/types"
)

var d = catalogtest.D

func newSession(t *testing.T) (*session.Session, *engine.Engine) {
	t.Helper()
	e := engine.New(catalogtest.DemoStore(), engine.DefaultOptions())
	s, err := session.New(e, types.ParameterSet{
		ScenarioDate: catalogtest.Baseline,
		AssemblySite: catalogtest.PlantCH,
	})
	require.NoError(t, err)
	return s, e
}

func TestNew_ComputesImmediately(t *testing.T) {
	s, _ := newSession(t)
	require.NotNil(t, s.Result())
	assert.Len(t, s.Result().Results, 2)
	assert.NotEqual(t, s.ID().String(), "")
}

func TestNew_RejectsInvalidParameters(t *testing.T) {
	e := engine.New(catalogtest.DemoStore(), engine.DefaultOptions())
	_, err := session.New(e, types.ParameterSet{ScenarioDate: catalogtest.Baseline})
	assert.Error(t, err)
}

func TestSessions_AreIndependent(t *testing.T) {
	a, e := newSession(t)
	b, err := session.New(e, a.Params())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	_, err = a.SetOverride("Motor", catalogtest.China, d("40"))
	require.NoError(t, err)

	assert.Len(t, a.Params().Overrides, 1)
	assert.Empty(t, b.Params().Overrides)
	assert.NotEqual(t, a.Result().Fingerprint, b.Result().Fingerprint)
}

func TestMutators_RecomputeEachTime(t *testing.T) {
	s, _ := newSession(t)
	start := s.Result().Fingerprint

	steps := []struct {
		name   string
		mutate func() (*engine.Result, error)
		check  func(t *testing.T, p types.ParameterSet)
	}{
		{"scenario", func() (*engine.Result, error) { return s.SetScenarioDate(catalogtest.TariffShock) },
			func(t *testing.T, p types.ParameterSet) { assert.Equal(t, catalogtest.TariffShock, p.ScenarioDate) }},
		{"site", func() (*engine.Result, error) { return s.SelectAssemblySite(catalogtest.PlantUS) },
			func(t *testing.T, p types.ParameterSet) { assert.Equal(t, catalogtest.PlantUS, p.AssemblySite) }},
		{"fees", func() (*engine.Result, error) { return s.SetIncludeFixedFees(true) },
			func(t *testing.T, p types.ParameterSet) { assert.True(t, p.IncludeFixedFees) }},
		{"route", func() (*engine.Result, error) { return s.SetRoute("MOTOR_01", catalogtest.SupplierDE) },
			func(t *testing.T, p types.ParameterSet) {
				assert.Equal(t, catalogtest.SupplierDE, p.Routing["MOTOR_01"])
			}},
		{"clear route", func() (*engine.Result, error) { return s.ClearRoute("MOTOR_01") },
			func(t *testing.T, p types.ParameterSet) { assert.Empty(t, p.Routing) }},
		{"override", func() (*engine.Result, error) { return s.SetOverride("Gearbox", catalogtest.Germany, d("30")) },
			func(t *testing.T, p types.ParameterSet) { assert.Len(t, p.Overrides, 1) }},
		{"clear override", func() (*engine.Result, error) { return s.ClearOverride("Gearbox", catalogtest.Germany) },
			func(t *testing.T, p types.ParameterSet) { assert.Empty(t, p.Overrides) }},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			res, err := step.mutate()
			require.NoError(t, err)
			assert.Same(t, res, s.Result())
			step.check(t, s.Params())
		})
	}
	assert.NotEqual(t, start, s.Result().Fingerprint)
}

func TestSetOverride_ChangesComponentTariff(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.SelectAssemblySite(catalogtest.PlantUS)
	require.NoError(t, err)

	res, err := s.SetOverride("Motor", catalogtest.China, d("5"))
	require.NoError(t, err)

	r, ok := res.Find(catalogtest.AX100)
	require.True(t, ok)
	assert.True(t, r.Breakdown.ComponentTariffs.Equal(d("1")), "tariffs %s", r.Breakdown.ComponentTariffs)
}

func TestResetOverrides_MatchesFreshSession(t *testing.T) {
	s, e := newSession(t)
	_, err := s.SetScenarioDate(catalogtest.TariffShock)
	require.NoError(t, err)
	_, err = s.SetIncludeFixedFees(true)
	require.NoError(t, err)

	fresh, err := session.New(e, s.Params())
	require.NoError(t, err)

	_, err = s.SetOverride("Motor", catalogtest.China, d("99"))
	require.NoError(t, err)
	_, err = s.SetOverride("Housing", catalogtest.Serbia, d("12"))
	require.NoError(t, err)

	res, err := s.ResetOverrides()
	require.NoError(t, err)

	assert.Equal(t, fresh.Result().Fingerprint, res.Fingerprint)
	assert.Equal(t, catalogtest.TariffShock, s.Params().ScenarioDate)
	assert.True(t, s.Params().IncludeFixedFees)
}

func TestRejectedChange_KeepsPreviousState(t *testing.T) {
	s, _ := newSession(t)
	before := s.Result()

	_, err := s.SetOverride("Motor", catalogtest.China, d("-3"))
	require.Error(t, err)
	assert.Empty(t, s.Params().Overrides)
	assert.Same(t, before, s.Result())

	_, err = s.SetScenarioDate("2030-12-31")
	require.Error(t, err)
	assert.Equal(t, catalogtest.Baseline, s.Params().ScenarioDate)
}

func TestParams_ReturnsCopy(t *testing.T) {
	s, _ := newSession(t)
	p := s.Params()
	p.Overrides[types.OverrideKey{Class: "Motor", Origin: catalogtest.China}] = d("1")
	p.AssemblySite = catalogtest.PlantMX

	assert.Empty(t, s.Params().Overrides)
	assert.Equal(t, catalogtest.PlantCH, s.Params().AssemblySite)
}
