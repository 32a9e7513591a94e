// Package sim drives a layer stack through simulated days on a 24-hour
// grid, recording hourly snapshots.
package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/regolith-sim/regolith/internal/kepler"
	"github.com/regolith-sim/regolith/internal/physics"
	"github.com/regolith-sim/regolith/internal/planet"
	"github.com/regolith-sim/regolith/internal/solar"
	"github.com/regolith-sim/regolith/internal/storage"
	"github.com/regolith-sim/regolith/internal/thermal"
)

const hoursPerDay = 24

// Sink receives one snapshot per simulated hour.
type Sink interface {
	Record(s *storage.Snapshot)
}

// Model couples a planet, its layer stack and an output sink.
type Model struct {
	body  *planet.Body
	stack *thermal.Stack
	sink  Sink
	log   *zap.SugaredLogger
	ref   planet.Reference
}

func New(body *planet.Body, stack *thermal.Stack, sink Sink, log *zap.SugaredLogger, ref planet.Reference) *Model {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Model{body: body, stack: stack, sink: sink, log: log, ref: ref}
}

// Config sets the span of a run. Days are local solar days of the
// simulated planet; StepsPerHour subdivides each of the 24 local hours.
type Config struct {
	StartDay     int
	NumberOfDays int
	StepsPerHour int
}

func (c Config) validate() error {
	if c.StartDay < 0 {
		return fmt.Errorf("sim: start day %d must not be negative", c.StartDay)
	}
	if c.NumberOfDays <= 0 {
		return fmt.Errorf("sim: number of days %d must be positive", c.NumberOfDays)
	}
	if c.StepsPerHour <= 0 {
		return fmt.Errorf("sim: steps per hour %d must be positive", c.StepsPerHour)
	}
	return nil
}

// Run steps the stack from StartDay for NumberOfDays, recording one
// snapshot per hour at the hour's first substep. Cancellation is checked
// once per simulated day.
func (m *Model) Run(ctx context.Context, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	daysPerYear := m.body.DaysPerLocalYear(m.ref)
	stepSeconds := physics.SecondsPerDay / hoursPerDay / float64(cfg.StepsPerHour)
	stepHours := 1.0 / float64(cfg.StepsPerHour)

	m.log.Infow("run starting",
		"planet", m.body.Name,
		"start_day", cfg.StartDay,
		"days", cfg.NumberOfDays,
		"steps_per_hour", cfg.StepsPerHour,
		"layers", m.stack.NumLayers(),
	)

	for day := cfg.StartDay; day < cfg.StartDay+cfg.NumberOfDays; day++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for hour := 0; hour < hoursPerDay; hour++ {
			for sub := 0; sub < cfg.StepsPerHour; sub++ {
				localTime := float64(hour) + float64(sub)*stepHours
				elapsed := float64(day) + localTime/hoursPerDay
				trueLongitude := m.trueLongitude(elapsed / daysPerYear)

				var rec thermal.Recorder
				var snap *storage.Snapshot
				if sub == 0 {
					snap = storage.NewSnapshot(day, hour, trueLongitude)
					rec = snap
				}

				if _, err := m.stack.AdvanceOneStep(trueLongitude, localTime, stepSeconds, rec); err != nil {
					m.log.Errorw("run aborted",
						"day", day, "hour", hour, "substep", sub, "error", err)
					return fmt.Errorf("sim: day %d hour %d: %w", day, hour, err)
				}
				if snap != nil && m.sink != nil {
					m.sink.Record(snap)
				}
			}
		}
	}

	m.log.Infow("run finished",
		"surface_temperature", m.stack.Temperature(0),
		"condensate", m.stack.Condensate(),
	)
	return nil
}

// trueLongitude converts a fraction of the orbital period into the orbital
// phase angle, solving Kepler's equation for the elliptical motion.
func (m *Model) trueLongitude(orbitFraction float64) float64 {
	mean := kepler.MeanAnomaly(orbitFraction)
	eccentric := kepler.EccentricAnomaly(mean, m.body.Eccentricity)
	anomaly := kepler.TrueAnomaly(eccentric, m.body.Eccentricity)
	return kepler.TrueLongitude(anomaly, m.body.LongitudeOfPerihelion)
}

// StableTemperature estimates a start temperature: the gray-body
// equilibrium of the given proportion of the planet's orbit-averaged beam
// irradiance. A quarter is the usual choice for a rotating sphere.
func StableTemperature(sun *solar.Model, proportion float64) float64 {
	return physics.EquilibriumTemperature(proportion * sun.MeanBeamIrradiance())
}
