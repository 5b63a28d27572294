// Package sim implements the top-level Simulator: the per-tick
// orchestration of controllers, the fixed-step physics/hydraulics
// sub-loop, and the once-per-tick electrical network settlement
// (spec.md section 2 "System overview" data flow, section 5
// "Scheduling model"). No direct teacher equivalent exists for this
// orchestration shape (the teacher is goroutine/event driven); it is
// built from spec.md directly, following the same config+owned-
// sub-objects+single-entry-point shape used throughout
// internal/hydraulic and internal/electrical.
package sim

import (
	"github.com/flightdeck/hydraulicsim/internal/arena"
	"github.com/flightdeck/hydraulicsim/internal/brakes"
	"github.com/flightdeck/hydraulicsim/internal/config"
	"github.com/flightdeck/hydraulicsim/internal/controllers"
	"github.com/flightdeck/hydraulicsim/internal/dynamics"
	"github.com/flightdeck/hydraulicsim/internal/electrical"
	"github.com/flightdeck/hydraulicsim/internal/hydraulic"
	"github.com/flightdeck/hydraulicsim/internal/prng"
	"github.com/flightdeck/hydraulicsim/internal/rat"
	"github.com/flightdeck/hydraulicsim/internal/simloop"
	"github.com/flightdeck/hydraulicsim/internal/steering"
)

// assemblyID names the one representative HydraulicAssembly this core
// wires up end to end (a cargo door on Yellow, exercising scenario S5).
// Cyclic actuator<->body<->circuit references are avoided by looking
// assemblies up through this arena ID rather than holding pointers
// (spec.md section 9 "Cyclic references").
type assemblyID = arena.ID

// Simulator is the complete hydraulic/electrical network core for one
// session: three hydraulic circuits and their pumps, a PTU, the
// brake-steering computer and autobrake, the RAT and its emergency
// generator, the electrical network, and the fixed-step sub-loop tying
// them together.
type Simulator struct {
	cfg config.SimulatorConfig
	rng *prng.Source

	Green  *hydraulic.Circuit
	Blue   *hydraulic.Circuit
	Yellow *hydraulic.Circuit

	greenEDP   *hydraulic.Pump
	yellowEDP  *hydraulic.Pump
	blueElec   *hydraulic.Pump
	yellowElec *hydraulic.Pump
	blueRAT    *hydraulic.Pump

	ptu *hydraulic.PowerTransferUnit

	greenEDPCtl  controllers.EngineDrivenPumpController
	yellowEDPCtl controllers.EngineDrivenPumpController
	blueElecCtl  controllers.BlueElectricPumpController
	yellowElecCtl controllers.YellowElectricPumpController
	ptuCtl       controllers.PTUController
	ratCtl       controllers.RATController

	brakeSteering *controllers.BrakeSteeringComputer
	steeringAct   *steering.Actuator

	ratTurbine *rat.Turbine
	emerGen    *rat.EmergencyGenerator

	topology      *electrical.Topology
	emergencyElec *electrical.EmergencyElec
	galley        *electrical.GalleySupply

	assemblies  *arena.Arena[*dynamics.Assembly]
	cargoDoorID assemblyID

	loop *simloop.MaxStepLoop
}

// New builds a Simulator from its static configuration.
func New(cfg config.SimulatorConfig) *Simulator {
	rng := prng.New(cfg.Seed)

	s := &Simulator{
		cfg: cfg,
		rng: rng,

		Green:  hydraulic.NewCircuit(cfg.Circuits[config.Green], 1),
		Blue:   hydraulic.NewCircuit(cfg.Circuits[config.Blue], 2),
		Yellow: hydraulic.NewCircuit(cfg.Circuits[config.Yellow], 2),

		ptu: hydraulic.NewPowerTransferUnit(cfg.PTU, rng),

		brakeSteering: controllers.NewBrakeSteeringComputer(cfg.Brakes, cfg.Steering, cfg.Autobrake),
		steeringAct:   steering.NewActuator(40.0), // deg/s slew, representative nose-gear servo rate

		ratTurbine: rat.NewTurbine(cfg.RAT),
		emerGen:    rat.NewEmergencyGenerator(cfg.RAT),

		topology:      electrical.NewA320Topology(),
		emergencyElec: electrical.NewEmergencyElec(cfg.Electrical.EmergencyElecAirspeedKt),
		galley:        electrical.NewGalleySupply(cfg.Electrical.StaticInverterInhibitS),

		assemblies: arena.NewArena[*dynamics.Assembly](),

		loop: simloop.NewMaxStepLoop(cfg.SubStepS, 8),
	}
	if cfg.Electrical.Topology == "a380" {
		s.topology = electrical.NewA380Topology()
	}

	greenPumpCfg := cfg.Circuits[config.Green].Pump
	yellowPumpCfg := cfg.Circuits[config.Yellow].Pump
	bluePumpCfg := cfg.Circuits[config.Blue].Pump

	s.greenEDP = hydraulic.NewPump(hydraulic.KindEngineDriven, greenPumpCfg)
	s.yellowEDP = hydraulic.NewPump(hydraulic.KindEngineDriven, yellowPumpCfg)
	s.blueElec = hydraulic.NewPump(hydraulic.KindElectric, bluePumpCfg)
	s.yellowElec = hydraulic.NewPump(hydraulic.KindElectric, yellowPumpCfg)
	s.blueRAT = hydraulic.NewPump(hydraulic.KindRAT, bluePumpCfg)

	door := dynamics.NewRigidBodyOnHinge(dynamics.BodyConfig{
		MassKg:       35.0,
		InertiaKgM2:  4.0,
		CGArmM:       0.4,
		ActuatorArmM: 0.5,
		ThetaMinRad:  0,
		ThetaMaxRad:  1.65, // ~95 deg open
	})
	doorActuator := dynamics.NewLinearActuator(dynamics.ActuatorConfig{
		HeadAreaM2:        8.0e-4,
		RodAreaM2:         4.0e-4,
		StrokeM:           0.3,
		MaxFlowM3PerS:     3.0e-4,
		PositionKp:        8.0,
		PositionKi:        0.5,
		ForceFeedforward:  50.0,
		DampingNPerMPS:    400.0,
		LockedDampingNPerMPS: 4000.0,
		LossFactor:        0.02,
	})
	assembly := dynamics.NewAssembly(door, []*dynamics.LinearActuator{doorActuator})
	s.cargoDoorID = s.assemblies.Add(assembly)

	return s
}

// Tick advances the simulator by one host outer-tick of length dtOuter
// seconds, sampling in, running however many fixed 10 ms sub-steps have
// accumulated, settling the electrical network once, and returning the
// host I/O snapshot (spec.md section 2 data-flow steps 1-4).
func (s *Simulator) Tick(dtOuter float64, in Inputs) Outputs {
	s.applyControllers(in)

	var brakeIn controllers.BrakeSteeringComputerInputs
	steerIn := steering.Inputs{
		PedalRatio:         in.PedalLeft - in.PedalRight,
		TillerRatio:        in.TillerRatio,
		AutopilotDemandDeg: in.AutopilotSteeringDemandDeg,
		GroundSpeedKt:      in.IndicatedAirspeedKt,
		NoseGearCompressed: in.NoseGearCompressed,
		AntiskidOn:         in.AntiskidOn,
		EngineOilPressureLowBoth: in.EngineOneOilPressureLow && in.EngineTwoOilPressureLow,
	}

	ran := s.loop.Advance(dtOuter, func(dt float64) {
		s.subStep(dt, in, &brakeIn, steerIn)
	})

	s.settleElectrical(in, float64(ran)*s.loop.SubStepS())

	return s.snapshot()
}

func (s *Simulator) applyControllers(in Inputs) {
	edp1In := controllers.EngineDrivenPumpInputs{
		Pushbutton:             controllers.PushbuttonMode(in.Panel.GreenPumpPushbutton),
		FirePushbuttonReleased: in.Panel.EngineOneFirePushbuttonReleased,
		OnGround:               in.OnGround,
		EngineRunningNormally:  in.EngineOneRunningNormally,
		EngineOilPressureLow:   in.EngineOneOilPressureLow,
		PressureLowSensor:      !s.Green.SystemPressureSwitchClosed(),
		ControllerPowered:      s.topology.Net.Bus("DC BUS 1").Powered(),
	}
	s.greenEDPCtl.Update(edp1In)
	s.greenEDP.SetShouldPressurise(s.greenEDPCtl.ShouldPressurise(edp1In))
	if in.Panel.EngineOneFirePushbuttonReleased {
		s.Green.FireValve(0).Trip()
	}
	s.greenEDP.SetFireValve(s.Green.FireValve(0).Open())
	s.greenEDP.SetShaftSpeed(in.EngineOneShaftSpeedRadS)

	edp2In := controllers.EngineDrivenPumpInputs{
		Pushbutton:             controllers.PushbuttonMode(in.Panel.YellowPumpPushbutton),
		FirePushbuttonReleased: in.Panel.EngineTwoFirePushbuttonReleased,
		OnGround:               in.OnGround,
		EngineRunningNormally:  in.EngineTwoRunningNormally,
		EngineOilPressureLow:   in.EngineTwoOilPressureLow,
		PressureLowSensor:      !s.Yellow.SystemPressureSwitchClosed(),
		ControllerPowered:      s.topology.Net.Bus("DC BUS 2").Powered(),
	}
	s.yellowEDPCtl.Update(edp2In)
	s.yellowEDP.SetShouldPressurise(s.yellowEDPCtl.ShouldPressurise(edp2In))
	if in.Panel.EngineTwoFirePushbuttonReleased {
		s.Yellow.FireValve(0).Trip()
	}
	s.yellowEDP.SetFireValve(s.Yellow.FireValve(0).Open())
	s.yellowEDP.SetShaftSpeed(in.EngineTwoShaftSpeedRadS)

	blueIn := controllers.BlueElectricPumpInputs{
		Pushbutton:       controllers.PushbuttonMode(in.Panel.BluePumpPushbutton),
		AnyEngineRunning: in.EngineOneRunningNormally || in.EngineTwoRunningNormally,
		Airborne:         !in.WeightOnWheels,
		OverridePressed:  in.Panel.BlueOverridePressed,
		DCESSPowered:     in.Panel.DCESSPowered,
	}
	s.blueElecCtl.Update(blueIn)
	s.blueElec.SetElectricSpeed(157.0, s.blueElecCtl.ShouldRun(blueIn))
	s.blueElec.SetFireValve(true)

	yellowElecIn := controllers.YellowElectricPumpInputs{
		Pushbutton:                  controllers.PushbuttonMode(in.Panel.YellowPumpPushbutton),
		CargoDoorOperationRequested: in.CargoDoorOperationRequested,
		SecondsSinceLastDoorOpen:    in.SecondsSinceLastCargoDoorOp,
		MainBusPowered:              s.topology.Net.Bus("DC BUS 2").Powered(),
		SecondaryBusPowered:         s.topology.Net.Bus("DC HOT 2").Powered(),
	}
	s.yellowElec.SetElectricSpeed(157.0, s.yellowElecCtl.ShouldRun(yellowElecIn))
	s.yellowElec.SetFireValve(true)

	ptuIn := controllers.PTUControllerInputs{
		Pushbutton:              controllers.PushbuttonMode(in.Panel.PTUPushbutton),
		OnGround:                in.OnGround,
		NoseGearCompressed:      in.NoseGearCompressed,
		EngineOneMasterOn:       in.EngineOneMasterOn,
		EngineTwoMasterOn:       in.EngineTwoMasterOn,
		ParkBrakeOn:             in.ParkBrakeOn,
		PushbackTugAttached:     in.PushbackTugAttached,
		SecondsSinceCargoDoorOp: in.SecondsSinceLastCargoDoorOp,
		ControllerPowered:       s.topology.Net.Bus("DC BUS 1").Powered(),
	}
	s.ptu.SetShouldEnable(s.ptuCtl.ShouldEnable(ptuIn))

	ratIn := controllers.RATControllerInputs{
		ManualDeployPushed:   in.Panel.RATManualDeployPushed,
		EmergencyElecActive:  s.emergencyElec.Latched(),
		SolenoidOneEnergised: s.topology.Net.Bus("DC HOT 1").Powered(),
		SolenoidTwoEnergised: s.topology.Net.Bus("DC HOT 2").Powered(),
		SimReady:             in.SimReady,
	}
	s.ratCtl.Update(ratIn)
	if s.ratCtl.Deployed() {
		s.ratTurbine.Deploy()
	}

	s.topology.ApplyOverheadPanel(electrical.OverheadPanelInputs{
		ACESSFeedAltn:        in.Panel.ACESSFeedAltn,
		Gen1PushbuttonOn:     in.Panel.Gen1PushbuttonOn,
		Gen2PushbuttonOn:     in.Panel.Gen2PushbuttonOn,
		APUGenPushbuttonOn:   in.Panel.APUGenPushbuttonOn,
		ExtPowerPushbuttonOn: in.Panel.ExtPowerPushbuttonOn,
		BatteryPushbuttonsOn: in.Panel.BatteryPushbuttonsOn,
		EngineFirePushbuttonReleased: []bool{
			in.Panel.EngineOneFirePushbuttonReleased,
			in.Panel.EngineTwoFirePushbuttonReleased,
		},
	})
}

func (s *Simulator) subStep(dt float64, in Inputs, brakeIn *controllers.BrakeSteeringComputerInputs, steerIn steering.Inputs) {
	assembly := *s.assemblies.Get(s.cargoDoorID)
	cmd := dynamics.Command{Mode: dynamics.PositionControl, RequestedPosition: 0}
	if in.CargoDoorOperationRequested {
		cmd.RequestedPosition = 1.65
	}
	volumes := assembly.Tick([]dynamics.Command{cmd}, []float64{s.Yellow.SystemSectionPressure()}, dt)
	for _, v := range volumes {
		s.Yellow.AddActuatorVolume(v)
	}

	s.ptu.Update(s.Green, s.Yellow, dt)

	s.Green.Update([]*hydraulic.Pump{s.greenEDP}, dt)
	s.Blue.Update([]*hydraulic.Pump{s.blueElec, s.blueRAT}, dt)
	s.Yellow.Update([]*hydraulic.Pump{s.yellowEDP, s.yellowElec}, dt)

	s.ratTurbine.Tick(in.IndicatedAirspeedKt, dt)
	s.blueRAT.SetShaftSpeed(s.ratTurbine.ShaftSpeedRadS())
	s.emerGen.OutputWithinNormalParameters(s.ratTurbine)

	s.brakeSteering.Autobrake.Update(brakes.Inputs{
		ArmRequested:        in.Panel.AutobrakeArmRequested,
		ArmRequest:          brakes.State(in.Panel.AutobrakeArmRequest),
		GroundSpoilersOut:   in.GroundSpoilersOut,
		PedalLeft:           in.PedalLeft,
		PedalRight:          in.PedalRight,
		AntiskidOn:          in.AntiskidOn,
		SimReady:            in.SimReady,
		WeightOnWheels:      in.WeightOnWheels,
		ExternalDisarm:      in.Panel.ExternalDisarmEvent,
		MeasuredDecelMPerSS: in.MeasuredDecelMPerSS,
	}, dt)

	*brakeIn = controllers.BrakeSteeringComputerInputs{
		GreenAvailable:  s.Green.SystemPressureSwitchClosed(),
		AntiskidOn:      in.AntiskidOn,
		PedalLeft:       in.PedalLeft,
		PedalRight:      in.PedalRight,
		ParkingBrakeOn:  in.ParkBrakeOn,
		AutobrakeDemand: s.brakeSteering.Autobrake.Demand(),
		Steering:        steerIn,
	}
	s.brakeSteering.Update(*brakeIn, s.Green.SystemSectionPressure(), s.yellowAvailablePressure(), dt)
	s.steeringAct.Step(s.brakeSteering.SteeringDemandDeg(steerIn), dt)
}

func (s *Simulator) yellowAvailablePressure() float64 {
	if s.Yellow.SystemPressureSwitchClosed() {
		return s.Yellow.SystemSectionPressure()
	}
	if s.Yellow.BrakeAccumulator != nil {
		return s.Yellow.BrakeAccumulator.Pressure()
	}
	return 0
}

func (s *Simulator) settleElectrical(in Inputs, elapsedS float64) {
	s.topology.EngineGenerators[0].Update(in.EngineOneRunningNormally, false, elapsedS)
	s.topology.EngineGenerators[1].Update(in.EngineTwoRunningNormally, false, elapsedS)
	s.topology.APUGenerators[0].Update(false, in.APUAvailable, elapsedS)
	if len(s.topology.ExternalPowers) > 0 {
		s.topology.ExternalPowers[0].SetState(in.ExternalPowerConnected[0], in.ExternalPowerPushbuttonOn[0])
	}
	s.topology.EmergencyGen.SetExternallyReady(s.emerGen.IsAtNominalSpeed(s.ratTurbine))

	s.topology.StaticInverter.SetBatteryPowered(s.topology.Batteries["ESS"].ChargeAh() > 0)
	s.topology.StaticInverter.Tick(elapsedS)

	// The TR/DC layer depends on the AC layer that feeds it, but a TR's
	// Source.OutputWithinNormalParameters() only sees whatever was last
	// recorded via SetInputPowered — it cannot look at its own upstream
	// bus directly. Settle twice: the first pass resolves every AC bus
	// (which has no DC dependency), then each TR is told its AC input's
	// now-current state, and the second pass resolves the DC buses
	// correctly. Two passes converge because the dependency graph here
	// is AC-before-DC, never the reverse.
	s.topology.Net.Settle()
	s.setTransformerRectifierInputs()
	s.topology.Net.Settle()

	s.emergencyElec.Update(s.topology, in.IndicatedAirspeedKt)
	s.galley.Update(s.emergencyElec.Latched(), elapsedS)
}

func (s *Simulator) setTransformerRectifierInputs() {
	if tr, ok := s.topology.TRs["1"]; ok {
		tr.SetInputPowered(s.topology.Net.Bus("AC BUS 1").Powered())
	}
	if tr, ok := s.topology.TRs["2"]; ok {
		tr.SetInputPowered(s.topology.Net.Bus("AC BUS 2").Powered())
	}
	if tr, ok := s.topology.TRs["ESS"]; ok {
		tr.SetInputPowered(s.topology.Net.Bus("AC ESS").Powered())
	}
	// TR APU shares AC BUS 1 with TR1: it rectifies whichever source (an
	// engine generator or the APU generator) is currently feeding that bus.
	if tr, ok := s.topology.TRs["APU"]; ok {
		tr.SetInputPowered(s.topology.Net.Bus("AC BUS 1").Powered())
	}
}

// snapshot builds the host I/O output struct from the current settled
// state (spec.md section 2 data-flow step 4, "write host variable I/O").
func (s *Simulator) snapshot() Outputs {
	out := Outputs{
		GreenSystemPressurePa:  s.Green.SystemSectionPressure(),
		BlueSystemPressurePa:   s.Blue.SystemSectionPressure(),
		YellowSystemPressurePa: s.Yellow.SystemSectionPressure(),

		ReservoirVolumeM3: [3]float64{
			s.Green.Reservoir.Volume(),
			s.Blue.Reservoir.Volume(),
			s.Yellow.Reservoir.Volume(),
		},

		NoseWheelAngleDeg: s.steeringAct.AngleDeg(),

		AutobrakeArmedModeCode: int(s.brakeSteering.Autobrake.State()),

		PTUStateCode:      int(s.ptu.State()),
		PTUAcousticActive: s.ptu.AcousticActive(),

		RATStowRatio: s.ratTurbine.StowRatio(),
		RATRPM:       s.ratTurbine.RPM(),

		EmergencyElecLatched: s.emergencyElec.Latched(),
		GalleyTripShed:       s.galley.GalleyTripShed(),
		GalleyEmergencyShed:  s.galley.GalleyEmergencyShed(),

		BusPowered: make(map[string]bool),
		FaultLamps: make(map[string]bool),
	}

	if s.brakeSteering.UsingNormal() {
		out.BrakeForceLeft = s.brakeSteering.Normal.Pressure(brakes.Left)
		out.BrakeForceRight = s.brakeSteering.Normal.Pressure(brakes.Right)
	} else {
		out.BrakeForceLeft = s.brakeSteering.Alternate.Pressure(brakes.Left)
		out.BrakeForceRight = s.brakeSteering.Alternate.Pressure(brakes.Right)
	}

	for _, b := range s.topology.Net.Buses() {
		out.BusPowered[b.Name] = b.Powered()
	}

	lamps := electrical.ReadFaultLamps(s.topology, s.galley)
	out.FaultLamps["GEN1"] = lamps.Gen1Fault
	out.FaultLamps["GEN2"] = lamps.Gen2Fault
	out.FaultLamps["APU_GEN"] = lamps.APUGenFault
	out.FaultLamps["EMER_GEN_RUNNING"] = lamps.EmergencyGenRunning
	out.FaultLamps["GREEN_PUMP"] = s.greenEDPCtl.Fault()
	out.FaultLamps["YELLOW_PUMP"] = s.yellowEDPCtl.Fault()
	out.FaultLamps["YELLOW_ELEC_PUMP_OVERHEAT"] = s.yellowElec.IsOverheated()
	out.FaultLamps["BLUE_ELEC_PUMP_OVERHEAT"] = s.blueElec.IsOverheated()

	return out
}
