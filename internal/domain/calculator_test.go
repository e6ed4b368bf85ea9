package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() CalculatorForm {
	return CalculatorForm{
		DistanceTraveled:           "10",
		FuelType:                   "Gasoline",
		VehicleEfficiency:          "2",
		FrequencyOfTravel:          "3",
		ElectricityUsage:           "4",
		HeatingFuelUsage:           "5",
		ApplianceEfficiency:        "6",
		ModeOfTransportation:       "Car",
		DistanceTraveledForCommute: "7",
		FrequencyOfCommute:         "8",
		TypeOfCommute:              "Public Transport",
		TypeOfHeating:              "Gas",
	}
}

func TestCalculatorForm_ParseAndReduce(t *testing.T) {
	in, err := validForm().Parse()
	require.NoError(t, err)

	// 10*2*3 + 4 + 5 + 6
	assert.Equal(t, 75.0, in.Footprint())
	assert.Equal(t, in.Footprint(), in.Footprint())
	assert.Equal(t, "Gas", in.TypeOfHeating)
}

func TestCalculatorForm_MissingFuelType(t *testing.T) {
	f := validForm()
	f.FuelType = ""

	_, err := f.Parse()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "fuelType", ve.Field)
	assert.Equal(t, "is required", ve.Reason)
}

func TestCalculatorForm_FirstOffendingFieldWins(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *CalculatorForm)
		field  string
		reason string
	}{
		{
			name: "distance before fuel",
			mutate: func(f *CalculatorForm) {
				f.DistanceTraveled = "far"
				f.FuelType = ""
			},
			field:  "distanceTraveled",
			reason: "must be a number",
		},
		{
			name:   "unknown fuel",
			mutate: func(f *CalculatorForm) { f.FuelType = "Coal" },
			field:  "fuelType",
			reason: "must be one of: Gasoline, Diesel, Electric, Hybrid, Other",
		},
		{
			name: "efficiency before electricity",
			mutate: func(f *CalculatorForm) {
				f.VehicleEfficiency = "NaN"
				f.ElectricityUsage = "x"
			},
			field:  "vehicleEfficiency",
			reason: "must be finite",
		},
		{
			name:   "negative heating",
			mutate: func(f *CalculatorForm) { f.HeatingFuelUsage = "-1" },
			field:  "heatingFuelUsage",
			reason: "must not be negative",
		},
		{
			name:   "empty mode",
			mutate: func(f *CalculatorForm) { f.ModeOfTransportation = "  " },
			field:  "modeOfTransportation",
			reason: "is required",
		},
		{
			name:   "commute type",
			mutate: func(f *CalculatorForm) { f.TypeOfCommute = "Teleport" },
			field:  "typeOfCommute",
		},
		{
			name:   "heating is checked last",
			mutate: func(f *CalculatorForm) { f.TypeOfHeating = "Coal" },
			field:  "typeOfHeating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			_, err := f.Parse()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			if tt.reason != "" {
				assert.Equal(t, tt.reason, ve.Reason)
			}
		})
	}
}

func TestCalculatorForm_HeatingOptional(t *testing.T) {
	f := validForm()
	f.TypeOfHeating = ""

	in, err := f.Parse()
	require.NoError(t, err)
	assert.Empty(t, in.TypeOfHeating)
}

func TestFormValue_UnmarshalJSON(t *testing.T) {
	var f CalculatorForm
	body := `{"distanceTraveled": 12.5, "fuelType": "Diesel", "vehicleEfficiency": "3", "frequencyOfTravel": null}`
	require.NoError(t, json.Unmarshal([]byte(body), &f))

	assert.Equal(t, FormValue("12.5"), f.DistanceTraveled)
	assert.Equal(t, FormValue("Diesel"), f.FuelType)
	assert.Equal(t, FormValue("3"), f.VehicleEfficiency)
	assert.Equal(t, FormValue(""), f.FrequencyOfTravel)

}

func TestCalculatorForm_WrongJSONTypeNamesField(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		field string
	}{
		{"bool number", `{"distanceTraveled": true}`, "distanceTraveled"},
		{"object choice", `{"fuelType": {"name": "Diesel"}}`, "fuelType"},
		{"array text", `{"modeOfTransportation": ["Car"]}`, "modeOfTransportation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			require.NoError(t, json.Unmarshal([]byte(tt.patch), &f))

			_, err := f.Parse()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, "must be a string or a number", ve.Reason)
		})
	}
}

func TestCalculatorForm_OverflowingFootprint(t *testing.T) {
	f := validForm()
	f.DistanceTraveled = "1e200"
	f.VehicleEfficiency = "1e200"

	_, err := f.Parse()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "footprint", ve.Field)
	assert.Equal(t, "is too large", ve.Reason)
}
