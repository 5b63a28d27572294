package config

import "github.com/flightdeck/hydraulicsim/internal/units"

// Default returns the nominal Airbus-family configuration from spec.md
// section 6: 3000 psi target, the documented hysteresis bands, and the
// documented accumulator precharges.
func Default() SimulatorConfig {
	return SimulatorConfig{
		Seed:     1,
		SubStepS: 0.01, // 10 ms fast loop, spec.md section 5
		LogLevel: "info",
		Circuits: map[CircuitName]CircuitConfig{
			Green:  defaultCircuit(Green, false),
			Blue:   defaultCircuit(Blue, false),
			Yellow: defaultCircuit(Yellow, true),
		},
		PTU:        defaultPTU(),
		Autobrake:  defaultAutobrake(),
		Brakes:     defaultBrakes(),
		Steering:   defaultSteering(),
		RAT:        defaultRAT(),
		Electrical: defaultElectrical(),
	}
}

func defaultCircuit(name CircuitName, hasBrakeAcc bool) CircuitConfig {
	target := units.PSIToPa(3000)
	c := CircuitConfig{
		Name:             name,
		TargetPressurePa: target,
		MaxPressurePa:    target * 1.2,
		Reservoir: ReservoirConfig{
			MaxVolumeM3:       units.GallonToM3(5.0),
			UsableVolumeM3:    units.GallonToM3(4.5),
			InitialVolumeM3:   units.GallonToM3(4.3),
			AirPrechargePa:    units.PSIToPa(55),
			LowLevelThreshold: units.GallonToM3(1.0),
			LowAirThreshold:   units.PSIToPa(35),
		},
		MainAccumulator: AccumulatorConfig{
			PrechargePa:   units.PSIToPa(1885),
			MaxFluidM3:    units.GallonToM3(0.264),
			HasCheckValve: true,
		},
		HasBrakeAccumulator:  hasBrakeAcc,
		PriorityValveOpenPa:  units.PSIToPa(1750),
		PriorityValveClosePa: units.PSIToPa(1450),
		SystemPressureSwitch: PressureSwitchConfig{
			HighThresholdPa: units.PSIToPa(2200),
			LowThresholdPa:  units.PSIToPa(1740),
		},
		PumpSidePressureSwitch: PressureSwitchConfig{
			HighThresholdPa: units.PSIToPa(1750),
			LowThresholdPa:  units.PSIToPa(1450),
		},
		FluidStiffness: target / units.GallonToM3(0.08),
		Pump: PumpConfig{
			OverheatThreshold: 0.85,
			DisplacementCurve: []PumpDisplacementPoint{
				{PressurePa: 0, DisplacementM3PerRad: 4.0e-6},
				{PressurePa: units.PSIToPa(1000), DisplacementM3PerRad: 3.6e-6},
				{PressurePa: units.PSIToPa(2500), DisplacementM3PerRad: 1.8e-6},
				{PressurePa: target, DisplacementM3PerRad: 0.4e-6},
				{PressurePa: target * 1.1, DisplacementM3PerRad: 0.0},
			},
		},
	}
	if hasBrakeAcc {
		c.BrakeAccumulator = AccumulatorConfig{
			PrechargePa:   units.PSIToPa(1000),
			MaxFluidM3:    units.GallonToM3(1.0),
			HasCheckValve: true,
		}
	}
	return c
}

func defaultPTU() PTUConfig {
	return PTUConfig{
		ActivationDifferentialPa:   units.PSIToPa(500),
		DeactivationDifferentialPa: units.PSIToPa(200),
		EfficiencyMin:              0.5,
		EfficiencyMax:              0.9,
		AcousticThresholdPa:        units.PSIToPa(2400),
		AcousticLatchSeconds:       3.0,
		InhibitAfterDoorSeconds:    40.0,
	}
}

func defaultAutobrake() AutobrakeConfig {
	return AutobrakeConfig{
		Low: AutobrakeProfile{TimePoints: []curvePoint{
			{TimeS: 0, TargetDecelMPerSS: 0.5},
			{TimeS: 2, TargetDecelMPerSS: 1.2},
			{TimeS: 10, TargetDecelMPerSS: 1.2},
		}},
		Medium: AutobrakeProfile{TimePoints: []curvePoint{
			{TimeS: 0, TargetDecelMPerSS: 0.8},
			{TimeS: 2, TargetDecelMPerSS: 2.1},
			{TimeS: 10, TargetDecelMPerSS: 2.1},
		}},
		Max: AutobrakeProfile{TimePoints: []curvePoint{
			{TimeS: 0, TargetDecelMPerSS: 1.5},
			{TimeS: 2, TargetDecelMPerSS: 3.4},
			{TimeS: 10, TargetDecelMPerSS: 3.4},
		}},
		MaxRejectDelayS: 10.0,
		GovernorKp:      0.6,
		GovernorKi:      0.15,
	}
}

func defaultBrakes() BrakeConfig {
	return BrakeConfig{
		PedalLimitPa:       units.PSIToPa(2538),
		ParkingLimitPa:     units.PSIToPa(2103),
		AntiskidOffLimitPa: units.PSIToPa(1160),
	}
}

func defaultSteering() SteeringConfig {
	return SteeringConfig{
		MaxAngleDeg:          74.0,
		PedalDisableKnots:    130.0,
		PedalScaleStartKnots: 40.0,
		TillerDisableKnots:   70.0,
		AutopilotLimitDeg:    6.0,
	}
}

func defaultRAT() RATConfig {
	return RATConfig{
		MaxRPM:              12000,
		SaturationKnots:      100.0,
		GeneratorNominalRPM:  2000,
		TimeConstantS:        1.5,
	}
}

func defaultElectrical() ElectricalConfig {
	return ElectricalConfig{
		Topology:                  "a320",
		EmergencyGenSpinUpSeconds: 8.0,
		StaticInverterInhibitS:    0.25,
		EmergencyElecAirspeedKt:   100.0,
	}
}
