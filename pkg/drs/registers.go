package drs

// RAMRegister identifies one entry of the volatile memory map. RAM is
// repopulated from EEPROM on every reboot.
type RAMRegister struct {
	Name     string
	Addr     byte
	Size     byte // value width in bytes, 1 or 2
	Writable bool
}

// EEPRegister identifies one entry of the permanent (EEPROM) memory
// map. Writes take effect after the next reboot.
type EEPRegister struct {
	Name     string
	Addr     byte
	Size     byte
	Writable bool
}

// TorqueControl register values.
const (
	TorqueFree  byte = 0x00
	TorqueBreak byte = 0x40
	TorqueOn    byte = 0x60
)

// AckPolicy controls which commands a servo acknowledges. Stored in
// the AckPolicy register (RAM and EEPROM).
type AckPolicy byte

const (
	AckNone AckPolicy = 0x00 // reply only to STAT
	AckRead AckPolicy = 0x01 // reply to reads and STAT
	AckAll  AckPolicy = 0x02 // reply to every command
)

// Volatile memory map, datasheet page 24.
var (
	RAMID                           = RAMRegister{"id", 0, 1, true}
	RAMAckPolicy                    = RAMRegister{"ack_policy", 1, 1, true}
	RAMAlarmLEDPolicy               = RAMRegister{"alarm_led_policy", 2, 1, true}
	RAMTorquePolicy                 = RAMRegister{"torque_policy", 3, 1, true}
	RAMMaxTemperature               = RAMRegister{"max_temperature", 5, 1, true}
	RAMMinVoltage                   = RAMRegister{"min_voltage", 6, 1, true}
	RAMMaxVoltage                   = RAMRegister{"max_voltage", 7, 1, true}
	RAMAccelerationRatio            = RAMRegister{"acceleration_ratio", 8, 1, true}
	RAMMaxAcceleration              = RAMRegister{"max_acceleration", 9, 1, true}
	RAMDeadZone                     = RAMRegister{"dead_zone", 10, 1, true}
	RAMSaturatorOffset              = RAMRegister{"saturator_offset", 11, 1, true}
	RAMSaturatorSlope               = RAMRegister{"saturator_slope", 12, 2, true}
	RAMPWMOffset                    = RAMRegister{"pwm_offset", 14, 1, true}
	RAMMinPWM                       = RAMRegister{"min_pwm", 15, 1, true}
	RAMMaxPWM                       = RAMRegister{"max_pwm", 16, 2, true}
	RAMOverloadPWMThreshold         = RAMRegister{"overload_pwm_threshold", 18, 2, true}
	RAMMinPosition                  = RAMRegister{"min_position", 20, 2, true}
	RAMMaxPosition                  = RAMRegister{"max_position", 22, 2, true}
	RAMPositionKp                   = RAMRegister{"position_kp", 24, 2, true}
	RAMPositionKd                   = RAMRegister{"position_kd", 26, 2, true}
	RAMPositionKi                   = RAMRegister{"position_ki", 28, 2, true}
	RAMPositionFFFirstGain          = RAMRegister{"position_ff_first_gain", 30, 2, true}
	RAMPositionFFSecondGain         = RAMRegister{"position_ff_second_gain", 32, 2, true}
	RAMLEDBlinkPeriod               = RAMRegister{"led_blink_period", 38, 1, true}
	RAMADCFaultDetectionPeriod      = RAMRegister{"adc_fault_detection_period", 39, 1, true}
	RAMPacketGarbageDetectionPeriod = RAMRegister{"packet_garbage_detection_period", 40, 1, true}
	RAMStopDetectionPeriod          = RAMRegister{"stop_detection_period", 41, 1, true}
	RAMOverloadDetectionPeriod      = RAMRegister{"overload_detection_period", 42, 1, true}
	RAMStopThreshold                = RAMRegister{"stop_threshold", 43, 1, true}
	RAMInpositionMargin             = RAMRegister{"inposition_margin", 44, 1, true}
	RAMCalibrationDifference        = RAMRegister{"calibration_difference", 47, 1, true}
	RAMStatusError                  = RAMRegister{"status_error", 48, 1, true}
	RAMStatusDetail                 = RAMRegister{"status_detail", 49, 1, true}
	RAMTorqueControl                = RAMRegister{"torque_control", 52, 1, true}
	RAMLEDControl                   = RAMRegister{"led_control", 53, 1, true}

	// Measurement registers, read-only.
	RAMVoltage                           = RAMRegister{"voltage", 54, 2, false}
	RAMTemperature                       = RAMRegister{"temperature", 55, 2, false}
	RAMCurrentControlMode                = RAMRegister{"current_control_mode", 56, 2, false}
	RAMTick                              = RAMRegister{"tick", 57, 2, false}
	RAMCalibratedPosition                = RAMRegister{"calibrated_position", 58, 2, false}
	RAMAbsolutePosition                  = RAMRegister{"absolute_position", 60, 2, false}
	RAMDifferentialPosition              = RAMRegister{"differential_position", 62, 2, false}
	RAMPWM                               = RAMRegister{"pwm", 64, 2, false}
	RAMAbsoluteGoalPosition              = RAMRegister{"absolute_goal_position", 68, 2, false}
	RAMAbsoluteDesiredTrajectoryPosition = RAMRegister{"absolute_desired_trajectory_position", 70, 2, false}
	RAMDesiredVelocity                   = RAMRegister{"desired_velocity", 72, 1, false}
)

// Permanent memory map, datasheet page 21.
var (
	EEPModelNo1 = EEPRegister{"model_no1", 0, 1, false}
	EEPModelNo2 = EEPRegister{"model_no2", 1, 1, false}
	EEPVersion1 = EEPRegister{"version1", 2, 1, false}
	EEPVersion2 = EEPRegister{"version2", 3, 1, false}

	EEPBaudRate                     = EEPRegister{"baud_rate", 4, 1, true}
	EEPID                           = EEPRegister{"id", 6, 1, true}
	EEPAckPolicy                    = EEPRegister{"ack_policy", 7, 1, true}
	EEPAlarmLEDPolicy               = EEPRegister{"alarm_led_policy", 8, 1, true}
	EEPTorquePolicy                 = EEPRegister{"torque_policy", 9, 1, true}
	EEPMaxTemperature               = EEPRegister{"max_temperature", 11, 1, true}
	EEPMinVoltage                   = EEPRegister{"min_voltage", 12, 1, true}
	EEPMaxVoltage                   = EEPRegister{"max_voltage", 13, 1, true}
	EEPAccelerationRatio            = EEPRegister{"acceleration_ratio", 14, 1, true}
	EEPMaxAccelerationTime          = EEPRegister{"max_acceleration_time", 15, 1, true}
	EEPDeadZone                     = EEPRegister{"dead_zone", 16, 1, true}
	EEPSaturatorOffset              = EEPRegister{"saturator_offset", 17, 1, true}
	EEPSaturatorSlope               = EEPRegister{"saturator_slope", 18, 2, true}
	EEPPWMOffset                    = EEPRegister{"pwm_offset", 20, 1, true}
	EEPMinPWM                       = EEPRegister{"min_pwm", 21, 1, true}
	EEPMaxPWM                       = EEPRegister{"max_pwm", 22, 2, true}
	EEPOverloadPWMThreshold         = EEPRegister{"overload_pwm_threshold", 24, 2, true}
	EEPMinPosition                  = EEPRegister{"min_position", 26, 2, true}
	EEPMaxPosition                  = EEPRegister{"max_position", 28, 2, true}
	EEPPositionKp                   = EEPRegister{"position_kp", 30, 2, true}
	EEPPositionKd                   = EEPRegister{"position_kd", 32, 2, true}
	EEPPositionKi                   = EEPRegister{"position_ki", 34, 2, true}
	EEPPositionFFFirstGain          = EEPRegister{"position_ff_first_gain", 36, 2, true}
	EEPPositionFFSecondGain         = EEPRegister{"position_ff_second_gain", 38, 2, true}
	EEPLEDBlinkPeriod               = EEPRegister{"led_blink_period", 44, 1, true}
	EEPADCFaultCheckPeriod          = EEPRegister{"adc_fault_check_period", 45, 1, true}
	EEPPacketGarbageDetectionPeriod = EEPRegister{"packet_garbage_detection_period", 46, 1, true}
	EEPStopDetectionPeriod          = EEPRegister{"stop_detection_period", 47, 1, true}
	EEPOverloadDetectionPeriod      = EEPRegister{"overload_detection_period", 48, 1, true}
	EEPStopThreshold                = EEPRegister{"stop_threshold", 49, 1, true}
	EEPInpositionMargin             = EEPRegister{"inposition_margin", 50, 1, true}
	EEPCalibrationDifference        = EEPRegister{"calibration_difference", 53, 1, true}
)

// AllRAMRegisters returns the RAM memory map in address order.
func AllRAMRegisters() []RAMRegister {
	return []RAMRegister{
		RAMID, RAMAckPolicy, RAMAlarmLEDPolicy, RAMTorquePolicy,
		RAMMaxTemperature, RAMMinVoltage, RAMMaxVoltage,
		RAMAccelerationRatio, RAMMaxAcceleration, RAMDeadZone,
		RAMSaturatorOffset, RAMSaturatorSlope, RAMPWMOffset, RAMMinPWM,
		RAMMaxPWM, RAMOverloadPWMThreshold, RAMMinPosition,
		RAMMaxPosition, RAMPositionKp, RAMPositionKd, RAMPositionKi,
		RAMPositionFFFirstGain, RAMPositionFFSecondGain,
		RAMLEDBlinkPeriod, RAMADCFaultDetectionPeriod,
		RAMPacketGarbageDetectionPeriod, RAMStopDetectionPeriod,
		RAMOverloadDetectionPeriod, RAMStopThreshold,
		RAMInpositionMargin, RAMCalibrationDifference, RAMStatusError,
		RAMStatusDetail, RAMTorqueControl, RAMLEDControl, RAMVoltage,
		RAMTemperature, RAMCurrentControlMode, RAMTick,
		RAMCalibratedPosition, RAMAbsolutePosition,
		RAMDifferentialPosition, RAMPWM, RAMAbsoluteGoalPosition,
		RAMAbsoluteDesiredTrajectoryPosition, RAMDesiredVelocity,
	}
}

// AllEEPRegisters returns the EEPROM memory map in address order.
func AllEEPRegisters() []EEPRegister {
	return []EEPRegister{
		EEPModelNo1, EEPModelNo2, EEPVersion1, EEPVersion2, EEPBaudRate,
		EEPID, EEPAckPolicy, EEPAlarmLEDPolicy, EEPTorquePolicy,
		EEPMaxTemperature, EEPMinVoltage, EEPMaxVoltage,
		EEPAccelerationRatio, EEPMaxAccelerationTime, EEPDeadZone,
		EEPSaturatorOffset, EEPSaturatorSlope, EEPPWMOffset, EEPMinPWM,
		EEPMaxPWM, EEPOverloadPWMThreshold, EEPMinPosition,
		EEPMaxPosition, EEPPositionKp, EEPPositionKd, EEPPositionKi,
		EEPPositionFFFirstGain, EEPPositionFFSecondGain,
		EEPLEDBlinkPeriod, EEPADCFaultCheckPeriod,
		EEPPacketGarbageDetectionPeriod, EEPStopDetectionPeriod,
		EEPOverloadDetectionPeriod, EEPStopThreshold,
		EEPInpositionMargin, EEPCalibrationDifference,
	}
}

var (
	ramByAddr = make(map[byte]RAMRegister)
	eepByAddr = make(map[byte]EEPRegister)
)

func init() {
	for _, r := range AllRAMRegisters() {
		ramByAddr[r.Addr] = r
	}
	for _, r := range AllEEPRegisters() {
		eepByAddr[r.Addr] = r
	}
}

// RAMRegisterAt looks up a RAM register by its byte offset.
func RAMRegisterAt(addr byte) (RAMRegister, bool) {
	r, ok := ramByAddr[addr]
	return r, ok
}

// EEPRegisterAt looks up an EEPROM register by its byte offset.
func EEPRegisterAt(addr byte) (EEPRegister, bool) {
	r, ok := eepByAddr[addr]
	return r, ok
}

// Word serializes a 16-bit register value in the protocol's
// little-endian order.
func Word(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

// ToWord assembles register bytes back into a value. One-byte values
// pass through unchanged.
func ToWord(b []byte) uint16 {
	switch len(b) {
	case 0:
		return 0
	case 1:
		return uint16(b[0])
	default:
		return uint16(b[0]) | uint16(b[1])<<8
	}
}
