// Package faultmap maps diagnosed fault types onto the skills and spare
// parts a repair is expected to need. Lookups are exact, case-sensitive
// keys against a static table; unknown fault types fall back to a single
// default skill and no parts, never an error.
package faultmap

// DefaultSkill is returned for fault types not present in the table.
const DefaultSkill = "general_maintenance"

// Requirements lists what a fault type calls for.
type Requirements struct {
	Skills []string `yaml:"skills"`
	Parts  []string `yaml:"parts"`
}

// Map is the fault-type lookup table.
type Map map[string]Requirements

// Builtin returns the built-in table for the tire plant equipment catalog.
func Builtin() Map {
	return Map{
		"curing_temperature_excessive": {
			Skills: []string{"tire_curing_press", "temperature_control", "instrumentation"},
			Parts:  []string{"TCP-HTR-4KW", "GEN-TS-K400"},
		},
		"curing_pressure_low": {
			Skills: []string{"tire_curing_press", "hydraulics"},
			Parts:  []string{"TCP-SEAL-250", "HYD-PMP-30L"},
		},
		"extruder_motor_overload": {
			Skills: []string{"extrusion_line", "electrical", "motor_drives"},
			Parts:  []string{"EXT-MTR-75KW", "GEN-FUSE-100A"},
		},
		"extruder_die_temperature_drift": {
			Skills: []string{"extrusion_line", "temperature_control", "instrumentation"},
			Parts:  []string{"EXT-HTR-BAND", "GEN-TS-K400"},
		},
		"banbury_mixer_vibration": {
			Skills: []string{"banbury_mixer", "mechanical", "vibration_analysis"},
			Parts:  []string{"MIX-BRG-6320", "MIX-CPL-DISC"},
		},
		"conveyor_belt_misalignment": {
			Skills: []string{"conveyors", "mechanical"},
			Parts:  []string{"CNV-RLR-600", "CNV-BLT-CLMP"},
		},
		"hydraulic_pressure_loss": {
			Skills: []string{"hydraulics", "mechanical"},
			Parts:  []string{"HYD-PMP-30L", "HYD-HOSE-12", "HYD-SEAL-KIT"},
		},
		"cooling_water_flow_low": {
			Skills: []string{"utilities", "pumps"},
			Parts:  []string{"CWS-PMP-15K", "CWS-STR-MESH"},
		},
		"bead_wire_tension_drift": {
			Skills: []string{"bead_winding", "instrumentation"},
			Parts:  []string{"BDW-LC-5KN"},
		},
	}
}

// RequiredSkills returns the skill set for a fault type, or the default
// skill when the type is unknown. The returned slice is a copy.
func (m Map) RequiredSkills(faultType string) []string {
	req, ok := m[faultType]
	if !ok || len(req.Skills) == 0 {
		return []string{DefaultSkill}
	}
	out := make([]string, len(req.Skills))
	copy(out, req.Skills)
	return out
}

// RequiredParts returns the part numbers for a fault type, empty when the
// type is unknown. The returned slice is a copy.
func (m Map) RequiredParts(faultType string) []string {
	req, ok := m[faultType]
	if !ok || len(req.Parts) == 0 {
		return []string{}
	}
	out := make([]string, len(req.Parts))
	copy(out, req.Parts)
	return out
}
