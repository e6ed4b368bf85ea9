package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Допустимые значения выпадающих списков калькулятора.
var (
	FuelTypes    = []string{"Gasoline", "Diesel", "Electric", "Hybrid", "Other"}
	HeatingTypes = []string{"Electric", "Gas", "Oil", "Wood", "Other"}
	CommuteTypes = []string{"Personal Vehicle", "Public Transport", "Walking", "Cycling", "Other"}
)

// FormValue — сырое значение поля формы. В JSON допускается и строка, и число.
type FormValue string

// invalidMark помечает значение неподходящего JSON-типа.
const invalidMark = "\x00"

// UnmarshalJSON принимает строку, число или null.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*v = FormValue(invalidMark + string(data))
		return nil
	}
	*v = FormValue(n.String())
	return nil
}

func (v FormValue) text(field string) (string, error) {
	if strings.HasPrefix(string(v), invalidMark) {
		return "", &ValidationError{Field: field, Reason: "must be a string or a number"}
	}
	return strings.TrimSpace(string(v)), nil
}

// CalculatorForm — введённые пользователем данные калькулятора.
type CalculatorForm struct {
	DistanceTraveled           FormValue `json:"distanceTraveled"`
	FuelType                   FormValue `json:"fuelType"`
	VehicleEfficiency          FormValue `json:"vehicleEfficiency"`
	FrequencyOfTravel          FormValue `json:"frequencyOfTravel"`
	ElectricityUsage           FormValue `json:"electricityUsage"`
	HeatingFuelUsage           FormValue `json:"heatingFuelUsage"`
	ApplianceEfficiency        FormValue `json:"applianceEfficiency"`
	ModeOfTransportation       FormValue `json:"modeOfTransportation"`
	DistanceTraveledForCommute FormValue `json:"distanceTraveledForCommute"`
	FrequencyOfCommute         FormValue `json:"frequencyOfCommute"`
	TypeOfCommute              FormValue `json:"typeOfCommute"`
	TypeOfHeating              FormValue `json:"typeOfHeating"`
}

// CalculatorInput — проверенные и разобранные данные калькулятора.
type CalculatorInput struct {
	DistanceTraveled           float64 `json:"distanceTraveled"`
	FuelType                   string  `json:"fuelType"`
	VehicleEfficiency          float64 `json:"vehicleEfficiency"`
	FrequencyOfTravel          float64 `json:"frequencyOfTravel"`
	ElectricityUsage           float64 `json:"electricityUsage"`
	HeatingFuelUsage           float64 `json:"heatingFuelUsage"`
	ApplianceEfficiency        float64 `json:"applianceEfficiency"`
	ModeOfTransportation       string  `json:"modeOfTransportation"`
	DistanceTraveledForCommute float64 `json:"distanceTraveledForCommute"`
	FrequencyOfCommute         float64 `json:"frequencyOfCommute"`
	TypeOfCommute              string  `json:"typeOfCommute"`
	TypeOfHeating              string  `json:"typeOfHeating,omitempty"`
}

// Parse проверяет поля в фиксированном порядке и возвращает ValidationError
// для первого неверного поля.
func (f CalculatorForm) Parse() (CalculatorInput, error) {
	var in CalculatorInput
	steps := []func() error{
		func() (err error) { in.DistanceTraveled, err = parseNumber("distanceTraveled", f.DistanceTraveled); return },
		func() (err error) { in.FuelType, err = parseChoice("fuelType", f.FuelType, FuelTypes, true); return },
		func() (err error) { in.VehicleEfficiency, err = parseNumber("vehicleEfficiency", f.VehicleEfficiency); return },
		func() (err error) { in.FrequencyOfTravel, err = parseNumber("frequencyOfTravel", f.FrequencyOfTravel); return },
		func() (err error) { in.ElectricityUsage, err = parseNumber("electricityUsage", f.ElectricityUsage); return },
		func() (err error) { in.HeatingFuelUsage, err = parseNumber("heatingFuelUsage", f.HeatingFuelUsage); return },
		func() (err error) { in.ApplianceEfficiency, err = parseNumber("applianceEfficiency", f.ApplianceEfficiency); return },
		func() (err error) { in.ModeOfTransportation, err = parseText("modeOfTransportation", f.ModeOfTransportation); return },
		func() (err error) {
			in.DistanceTraveledForCommute, err = parseNumber("distanceTraveledForCommute", f.DistanceTraveledForCommute)
			return
		},
		func() (err error) { in.FrequencyOfCommute, err = parseNumber("frequencyOfCommute", f.FrequencyOfCommute); return },
		func() (err error) { in.TypeOfCommute, err = parseChoice("typeOfCommute", f.TypeOfCommute, CommuteTypes, true); return },
		func() (err error) { in.TypeOfHeating, err = parseChoice("typeOfHeating", f.TypeOfHeating, HeatingTypes, false); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return CalculatorInput{}, err
		}
	}
	if math.IsInf(in.Footprint(), 0) {
		return CalculatorInput{}, &ValidationError{Field: "footprint", Reason: "is too large"}
	}
	return in, nil
}

// Footprint сводит ввод к одному числу:
// distance*vehicleEfficiency*frequency + electricity + heating + appliances.
// Поля поездок на работу проверяются, но в формулу не входят.
func (in CalculatorInput) Footprint() float64 {
	return in.DistanceTraveled*in.VehicleEfficiency*in.FrequencyOfTravel +
		in.ElectricityUsage + in.HeatingFuelUsage + in.ApplianceEfficiency
}

func parseNumber(field string, raw FormValue) (float64, error) {
	s, err := raw.text(field)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, &ValidationError{Field: field, Reason: "must be finite"}
		}
		return 0, &ValidationError{Field: field, Reason: "must be a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ValidationError{Field: field, Reason: "must be finite"}
	}
	if v < 0 {
		return 0, &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return v, nil
}

func parseText(field string, raw FormValue) (string, error) {
	s, err := raw.text(field)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &ValidationError{Field: field, Reason: "is required"}
	}
	return s, nil
}

func parseChoice(field string, raw FormValue, options []string, required bool) (string, error) {
	s, err := raw.text(field)
	if err != nil {
		return "", err
	}
	if s == "" {
		if required {
			return "", &ValidationError{Field: field, Reason: "is required"}
		}
		return "", nil
	}
	for _, o := range options {
		if o == s {
			return s, nil
		}
	}
	return "", &ValidationError{Field: field, Reason: "must be one of: " + strings.Join(options, ", ")}
}
