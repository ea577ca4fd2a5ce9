// dataset-stats prints the dataset extent and the calibrated universes the
// fuzzy models would be built on. Useful when re-tuning percentiles for a
// new building.
//
// Usage:
//
//	dataset-stats -data NEW-DATA-1.T15.txt
package main

import (
	"flag"
	"fmt"
	"os"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/fuzzy"
	"hvac_advisor/internal/hvac"
	"hvac_advisor/internal/model"
)

func main() {
	dataPath := flag.String("data", "NEW-DATA-1.T15.txt", "path to the sensor dataset")
	flag.Parse()

	table, err := dataset.LoadFile(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rows: %d\n", table.Len())
	if tr, ok := table.TimeRange(); ok {
		fmt.Printf("Range: %s to %s\n", tr.Start.Format("2006-01-02 15:04"), tr.End.Format("2006-01-02 15:04"))
	}

	cal := hvac.DefaultCalibration()
	train, test := table.Split(cal.TrainFraction)
	fmt.Printf("Split: %d calibration / %d held-out\n\n", len(train), len(test))

	fmt.Printf("%-22s  %10s  %10s\n", "Variable", "Lo", "Hi")
	fmt.Printf("%-22s  %10s  %10s\n", "----------------------", "----------", "----------")

	for _, f := range []model.Feature{
		model.FeatureCO2,
		model.FeatureLighting,
		model.FeatureIndoorTemp,
		model.FeatureOutdoorTemp,
	} {
		info := model.FeatureCatalog[f]
		label := info.Name
		if info.Unit != "" {
			label = fmt.Sprintf("%s (%s)", info.Name, info.Unit)
		}
		lo, hi := fuzzy.PctRange(table.Column(f), cal.InputLoPct, cal.InputHiPct, cal.InputPad)
		fmt.Printf("%-22s  %10.2f  %10.2f\n", label, lo, hi)
	}

	trainTable := dataset.NewTable(train)
	lo, hi := fuzzy.PctRange(trainTable.Deltas(), cal.DeltaLoPct, cal.DeltaHiPct, cal.DeltaPad)
	fmt.Printf("%-22s  %10.3f  %10.3f\n", "15-min delta (°C)", lo, hi)
}
