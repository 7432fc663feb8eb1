package admin

import (
	"sync"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
)

// ConfigStore holds the live analysis thresholds. Replace swaps the whole
// set atomically; Get hands out a copy so a pipeline run keeps one
// consistent snapshot even when an update lands mid-run.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg domain.AnalysisConfig
	log *zap.Logger
}

// NewConfigStore creates a store seeded with cfg.
func NewConfigStore(cfg domain.AnalysisConfig, log *zap.Logger) *ConfigStore {
	return &ConfigStore{
		cfg: cfg,
		log: log,
	}
}

// Get returns a copy of the current thresholds.
func (s *ConfigStore) Get() domain.AnalysisConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace installs a new threshold set wholesale.
func (s *ConfigStore) Replace(cfg domain.AnalysisConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	s.log.Info("Analysis configuration replaced",
		zap.Float64("energy_per_vehicle_benchmark", cfg.EnergyPerVehicleBenchmark),
		zap.Float64("paint_oven_idle_multiplier", cfg.PaintOvenIdleMultiplier),
		zap.Float64("air_leak_ratio_threshold", cfg.AirLeakRatioThreshold),
		zap.Float64("hvac_low_temp_threshold", cfg.HVACLowTempThreshold),
		zap.Float64("standby_energy_percent", cfg.StandbyEnergyPercent),
	)
}
