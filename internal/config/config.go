// Package config defines the simulator's configuration tree and its
// nominal Airbus-family defaults (spec.md section 6), loadable from a
// YAML file. Grounded on the teacher's BatteryConfig/MotorConfig idiom:
// a plain struct with yaml tags plus a Default constructor.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CircuitName identifies one of the three hydraulic circuits.
type CircuitName string

const (
	Green  CircuitName = "GREEN"
	Blue   CircuitName = "BLUE"
	Yellow CircuitName = "YELLOW"
)

// ReservoirConfig parameterizes one hydraulic reservoir.
type ReservoirConfig struct {
	MaxVolumeM3       float64 `yaml:"max_volume_m3"`
	UsableVolumeM3    float64 `yaml:"usable_volume_m3"`
	InitialVolumeM3   float64 `yaml:"initial_volume_m3"`
	AirPrechargePa    float64 `yaml:"air_precharge_pa"`
	LowLevelThreshold float64 `yaml:"low_level_threshold_m3"`
	LowAirThreshold   float64 `yaml:"low_air_threshold_pa"`
}

// AccumulatorConfig parameterizes a gas-spring fluid store.
type AccumulatorConfig struct {
	PrechargePa    float64 `yaml:"precharge_pa"`
	MaxFluidM3     float64 `yaml:"max_fluid_m3"`
	HasCheckValve  bool    `yaml:"has_check_valve"`
}

// PressureSwitchConfig is a hysteretic discrete threshold pair.
type PressureSwitchConfig struct {
	HighThresholdPa float64 `yaml:"high_threshold_pa"`
	LowThresholdPa  float64 `yaml:"low_threshold_pa"`
}

// PumpDisplacementPoint is one (pressure Pa, displacement m3/rad) sample.
type PumpDisplacementPoint struct {
	PressurePa          float64 `yaml:"pressure_pa"`
	DisplacementM3PerRad float64 `yaml:"displacement_m3_per_rad"`
}

// PumpConfig parameterizes an engine-driven, electric, or RAT pump.
type PumpConfig struct {
	DisplacementCurve []PumpDisplacementPoint `yaml:"displacement_curve"`
	OverheatThreshold float64                 `yaml:"overheat_duty_threshold"`
}

// CircuitConfig is one complete hydraulic circuit's static parameters.
type CircuitConfig struct {
	Name                  CircuitName           `yaml:"name"`
	TargetPressurePa      float64               `yaml:"target_pressure_pa"`
	MaxPressurePa         float64               `yaml:"max_pressure_pa"`
	Reservoir             ReservoirConfig       `yaml:"reservoir"`
	MainAccumulator       AccumulatorConfig     `yaml:"main_accumulator"`
	HasBrakeAccumulator   bool                  `yaml:"has_brake_accumulator"`
	BrakeAccumulator      AccumulatorConfig     `yaml:"brake_accumulator"`
	PriorityValveOpenPa   float64               `yaml:"priority_valve_open_pa"`
	PriorityValveClosePa  float64               `yaml:"priority_valve_close_pa"`
	SystemPressureSwitch  PressureSwitchConfig  `yaml:"system_pressure_switch"`
	PumpSidePressureSwitch PressureSwitchConfig `yaml:"pump_side_pressure_switch"`
	FluidStiffness        float64               `yaml:"fluid_stiffness_pa_per_m3"`
	Pump                  PumpConfig            `yaml:"pump"`
}

// PTUConfig parameterizes the Green<->Yellow power transfer unit.
type PTUConfig struct {
	ActivationDifferentialPa   float64 `yaml:"activation_differential_pa"`
	DeactivationDifferentialPa float64 `yaml:"deactivation_differential_pa"`
	EfficiencyMin              float64 `yaml:"efficiency_min"`
	EfficiencyMax              float64 `yaml:"efficiency_max"`
	AcousticThresholdPa        float64 `yaml:"acoustic_threshold_pa"`
	AcousticLatchSeconds       float64 `yaml:"acoustic_latch_seconds"`
	InhibitAfterDoorSeconds    float64 `yaml:"inhibit_after_door_seconds"`
}

// AutobrakeProfile is one piecewise-linear deceleration-target curve
// indexed by seconds-since-engaged.
type AutobrakeProfile struct {
	TimePoints []curvePoint `yaml:"curve"`
}

type curvePoint struct {
	TimeS              float64 `yaml:"t_s"`
	TargetDecelMPerSS  float64 `yaml:"decel_mps2"`
}

// AutobrakeConfig parameterizes the autobrake governor state machine.
type AutobrakeConfig struct {
	Low              AutobrakeProfile `yaml:"low"`
	Medium           AutobrakeProfile `yaml:"medium"`
	Max              AutobrakeProfile `yaml:"max"`
	MaxRejectDelayS  float64          `yaml:"max_reject_delay_s"`
	GovernorKp       float64          `yaml:"governor_kp"`
	GovernorKi       float64          `yaml:"governor_ki"`
}

// BrakeConfig parameterizes the pedal/pressure limits.
type BrakeConfig struct {
	PedalLimitPa     float64 `yaml:"pedal_limit_pa"`
	ParkingLimitPa   float64 `yaml:"parking_limit_pa"`
	AntiskidOffLimitPa float64 `yaml:"antiskid_off_limit_pa"`
}

// SteeringConfig parameterizes nosewheel angle shaping.
type SteeringConfig struct {
	MaxAngleDeg          float64 `yaml:"max_angle_deg"`
	PedalDisableKnots    float64 `yaml:"pedal_disable_knots"`
	PedalScaleStartKnots float64 `yaml:"pedal_scale_start_knots"`
	TillerDisableKnots   float64 `yaml:"tiller_disable_knots"`
	AutopilotLimitDeg    float64 `yaml:"autopilot_limit_deg"`
}

// RATConfig parameterizes the ram-air-turbine deploy pendulum.
type RATConfig struct {
	MaxRPM              float64 `yaml:"max_rpm"`
	SaturationKnots     float64 `yaml:"saturation_knots"`
	GeneratorNominalRPM float64 `yaml:"generator_nominal_rpm"`
	TimeConstantS       float64 `yaml:"time_constant_s"`
}

// ElectricalConfig parameterizes the electrical network.
type ElectricalConfig struct {
	Topology                  string  `yaml:"topology"` // "a320" or "a380"
	EmergencyGenSpinUpSeconds float64 `yaml:"emergency_gen_spinup_s"`
	StaticInverterInhibitS    float64 `yaml:"static_inverter_inhibit_s"`
	EmergencyElecAirspeedKt   float64 `yaml:"emergency_elec_airspeed_kt"`
}

// SimulatorConfig is the complete static configuration for one session.
type SimulatorConfig struct {
	Seed        int64                    `yaml:"seed"`
	SubStepS    float64                  `yaml:"sub_step_s"`
	LogLevel    string                   `yaml:"log_level"`
	Circuits    map[CircuitName]CircuitConfig `yaml:"circuits"`
	PTU         PTUConfig                `yaml:"ptu"`
	Autobrake   AutobrakeConfig          `yaml:"autobrake"`
	Brakes      BrakeConfig              `yaml:"brakes"`
	Steering    SteeringConfig           `yaml:"steering"`
	RAT         RATConfig                `yaml:"rat"`
	Electrical  ElectricalConfig         `yaml:"electrical"`
}

// Load reads a YAML config file, falling back to defaults for any zero
// value left unset (a config file is convenience, never required to run).
func Load(path string) (SimulatorConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
