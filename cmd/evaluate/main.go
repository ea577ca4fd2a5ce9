// evaluate scores the 15-minute temperature forecast on the held-out tail
// of the dataset and compares it against a persistence baseline that
// predicts no change.
//
// Usage:
//
//	evaluate -data NEW-DATA-1.T15.txt
//	evaluate -data NEW-DATA-1.T15.txt -train-fraction 0.9
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/hvac"
	"hvac_advisor/internal/model"
)

type evalSummary struct {
	N         int
	FuzzyMAE  float64
	FuzzyRMSE float64
	BaseMAE   float64
	BaseRMSE  float64
	Fallbacks uint64
}

func main() {
	dataPath := flag.String("data", "NEW-DATA-1.T15.txt", "path to the sensor dataset")
	trainFraction := flag.Float64("train-fraction", hvac.DefaultCalibration().TrainFraction, "fraction of rows used for calibration")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(io.Discard)

	table, err := dataset.LoadFile(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	cal := hvac.DefaultCalibration()
	cal.TrainFraction = *trainFraction

	advisor, err := hvac.NewAdvisor(table, cal, hvac.DefaultPolicy(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building advisor: %v\n", err)
		os.Exit(1)
	}

	_, test := table.Split(cal.TrainFraction)
	if len(test) == 0 {
		fmt.Fprintln(os.Stderr, "No held-out rows to evaluate")
		os.Exit(1)
	}

	s := evaluate(advisor, test)

	fmt.Printf("Evaluated %d held-out samples (calibrated on %.0f%% of %d rows)\n\n",
		s.N, cal.TrainFraction*100, table.Len())
	fmt.Printf("%-24s  %8s  %8s\n", "Model", "MAE", "RMSE")
	fmt.Printf("%-24s  %8s  %8s\n", "------------------------", "--------", "--------")
	fmt.Printf("%-24s  %8.4f  %8.4f\n", "Fuzzy forecast", s.FuzzyMAE, s.FuzzyRMSE)
	fmt.Printf("%-24s  %8.4f  %8.4f\n", "Persistence baseline", s.BaseMAE, s.BaseRMSE)

	if s.Fallbacks > 0 {
		fmt.Printf("\nDefault forecasts used for %d samples outside rule coverage\n", s.Fallbacks)
	}
}

// evaluate runs each held-out row through the advisor and accumulates
// absolute and squared forecast errors against the recorded future
// temperature. Persistence predicts the indoor temperature unchanged.
func evaluate(advisor *hvac.Advisor, rows []model.Row) evalSummary {
	var absFuzzy, sqFuzzy, absBase, sqBase float64

	occBefore, deltaBefore := advisor.NoRuleFallbacks()

	for _, row := range rows {
		res := advisor.SingleStep(row.IndoorTemp, row.OutdoorTemp, row.CO2, row.Lighting)

		fuzzyErr := res.TFuture - row.TFuture15
		baseErr := row.IndoorTemp - row.TFuture15

		absFuzzy += math.Abs(fuzzyErr)
		sqFuzzy += fuzzyErr * fuzzyErr
		absBase += math.Abs(baseErr)
		sqBase += baseErr * baseErr
	}

	occAfter, deltaAfter := advisor.NoRuleFallbacks()

	n := float64(len(rows))
	return evalSummary{
		N:         len(rows),
		FuzzyMAE:  absFuzzy / n,
		FuzzyRMSE: math.Sqrt(sqFuzzy / n),
		BaseMAE:   absBase / n,
		BaseRMSE:  math.Sqrt(sqBase / n),
		Fallbacks: (occAfter - occBefore) + (deltaAfter - deltaBefore),
	}
}
