package model

import "time"

// Feature identifies one of the sensor channels the advisor consumes.
type Feature string

const (
	FeatureIndoorTemp  Feature = "indoor_temp"
	FeatureOutdoorTemp Feature = "outdoor_temp"
	FeatureCO2         Feature = "co2"
	FeatureLighting    Feature = "lighting"
)

// FeatureColumn maps our feature slugs to the SML2010 export column names.
var FeatureColumn = map[Feature]string{
	FeatureIndoorTemp:  "Temperature_Comedor_Sensor",
	FeatureOutdoorTemp: "Temperature_Exterior_Sensor",
	FeatureCO2:         "CO2_Comedor_Sensor",
	FeatureLighting:    "Lighting_Comedor_Sensor",
}

// ColumnFeature is the reverse of FeatureColumn.
var ColumnFeature map[string]Feature

func init() {
	ColumnFeature = make(map[string]Feature, len(FeatureColumn))
	for f, col := range FeatureColumn {
		ColumnFeature[col] = f
	}
}

// FeatureInfo holds display name and unit for a feature.
type FeatureInfo struct {
	Name string
	Unit string
}

// FeatureCatalog maps every feature to its display name and unit.
var FeatureCatalog = map[Feature]FeatureInfo{
	FeatureIndoorTemp:  {Name: "Indoor Temperature", Unit: "°C"},
	FeatureOutdoorTemp: {Name: "Outdoor Temperature", Unit: "°C"},
	FeatureCO2:         {Name: "CO2 Concentration", Unit: "ppm"},
	FeatureLighting:    {Name: "Lighting Level", Unit: ""},
}

// Sample is one sensor observation. Immutable once loaded.
type Sample struct {
	Timestamp   time.Time
	IndoorTemp  float64 // °C
	OutdoorTemp float64 // °C
	CO2         float64 // ppm
	Lighting    float64 // unitless
}

// Feature returns the named feature value of the sample.
func (s Sample) Feature(f Feature) float64 {
	switch f {
	case FeatureIndoorTemp:
		return s.IndoorTemp
	case FeatureOutdoorTemp:
		return s.OutdoorTemp
	case FeatureCO2:
		return s.CO2
	case FeatureLighting:
		return s.Lighting
	}
	return 0
}

// Row is a Sample plus the forecast targets derived by the dataset loader.
// TFuture15 is the indoor temperature one 15-minute step ahead.
type Row struct {
	Sample
	TFuture15 float64
	Delta15   float64 // TFuture15 - IndoorTemp
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}
