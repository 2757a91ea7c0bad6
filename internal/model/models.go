package model

// ColumnType is the declared type of a source column, decided once at load time
type ColumnType int

const (
	// ColumnInteger holds plain decimal literals only
	ColumnInteger ColumnType = iota
	// ColumnText holds at least one cell that needs repair
	ColumnText
)

func (t ColumnType) String() string {
	if t == ColumnInteger {
		return "integer"
	}
	return "text"
}

// Column names a source column and its declared type
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// RawTable is a vehicle table exactly as read from its source
type RawTable struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Header returns the column names in source order
func (t RawTable) Header() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column names shared by every source and sink
const (
	FieldVehicleID       = "vehicle_id"
	FieldEngineCapacity  = "engine_capacity"
	FieldFuelConsumption = "fuel_consumption"
	FieldMaximumLoad     = "maximum_load"
	FieldScore           = "score"
)

// VehicleFields lists the vehicle columns in output order
var VehicleFields = []string{FieldVehicleID, FieldEngineCapacity, FieldFuelConsumption, FieldMaximumLoad}

// Vehicle is one validated row of the fleet
type Vehicle struct {
	VehicleID       int `json:"vehicle_id" xml:"vehicle_id"`
	EngineCapacity  int `json:"engine_capacity" xml:"engine_capacity"`
	FuelConsumption int `json:"fuel_consumption" xml:"fuel_consumption"`
	MaximumLoad     int `json:"maximum_load" xml:"maximum_load"`
}

// Values returns the vehicle fields in VehicleFields order
func (v Vehicle) Values() []int {
	return []int{v.VehicleID, v.EngineCapacity, v.FuelConsumption, v.MaximumLoad}
}

// ScoredVehicle carries the transient route score alongside a vehicle
type ScoredVehicle struct {
	Vehicle
	Score int `json:"score"`
}

// Fleet is an ordered, validated vehicle table
type Fleet []Vehicle
