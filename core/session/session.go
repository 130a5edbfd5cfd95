// Package session owns one analyst's parameter set.
// Every mutation re-runs the whole engine pipeline and keeps the fresh result;
// nothing is patched incrementally. A Session is not safe for concurrent use.
// Independent sessions may share one Engine and its read-only store.
package session

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"landed-cost/core/engine"
	"landed-cost/core/types"
	"landed-cost/internal/logging"
)

// Session is an analyst's working state
type Session struct {
	id     uuid.UUID
	engine *engine.Engine
	params types.ParameterSet
	result *engine.Result
}

// New copies the initial parameter set and computes once
func New(e *engine.Engine, initial types.ParameterSet) (*Session, error) {
	s := &Session{
		id:     uuid.New(),
		engine: e,
	}
	if _, err := s.apply(initial.Clone()); err != nil {
		return nil, err
	}
	logging.Debug("session started", zap.String("session", s.id.String()))
	return s, nil
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Params returns a deep copy of the current parameter set
func (s *Session) Params() types.ParameterSet {
	return s.params.Clone()
}

// Result returns the result of the last successful computation
func (s *Session) Result() *engine.Result {
	return s.result
}

// SetScenarioDate selects a tariff scenario
func (s *Session) SetScenarioDate(date types.ScenarioDate) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		p.ScenarioDate = date
	})
}

// SelectAssemblySite selects the final-assembly site
func (s *Session) SelectAssemblySite(site types.SiteID) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		p.AssemblySite = site
	})
}

// SetRoute ships a component from another origin site
func (s *Session) SetRoute(component types.ComponentID, origin types.SiteID) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		if p.Routing == nil {
			p.Routing = make(map[types.ComponentID]types.SiteID)
		}
		p.Routing[component] = origin
	})
}

// ClearRoute restores the catalog origin of a component
func (s *Session) ClearRoute(component types.ComponentID) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		delete(p.Routing, component)
	})
}

// SetIncludeFixedFees toggles fixed fee amortization
func (s *Session) SetIncludeFixedFees(include bool) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		p.IncludeFixedFees = include
	})
}

// SetOverride sets an analyst tariff rate in percent
func (s *Session) SetOverride(class types.ComponentClass, origin types.Country, ratePct decimal.Decimal) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		p.Overrides[types.OverrideKey{Class: class, Origin: origin}] = ratePct
	})
}

// ClearOverride removes one override
func (s *Session) ClearOverride(class types.ComponentClass, origin types.Country) (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		delete(p.Overrides, types.OverrideKey{Class: class, Origin: origin})
	})
}

// ResetOverrides clears every override and leaves all other parameters alone
func (s *Session) ResetOverrides() (*engine.Result, error) {
	return s.mutate(func(p *types.ParameterSet) {
		p.ResetOverrides()
	})
}

// mutate applies a change to a copy; a rejected change leaves the session untouched
func (s *Session) mutate(change func(*types.ParameterSet)) (*engine.Result, error) {
	p := s.params.Clone()
	change(&p)
	return s.apply(p)
}

func (s *Session) apply(p types.ParameterSet) (*engine.Result, error) {
	res, err := s.engine.Recompute(p)
	if err != nil {
		logging.Warn("parameter change rejected", zap.String("session", s.id.String()), zap.Error(err))
		return nil, err
	}
	s.params = p
	s.result = res
	return res, nil
}
