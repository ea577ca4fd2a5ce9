// advise runs a single sensor quadruple through the fuzzy models and
// prints the recommended HVAC action.
//
// Usage:
//
//	advise -data NEW-DATA-1.T15.txt -indoor 19.5 -outdoor 8 -co2 780 -light 65
//	advise -data NEW-DATA-1.T15.txt -indoor 19.5 -outdoor 8 -co2 780 -light 65 -json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"hvac_advisor/internal/dataset"
	"hvac_advisor/internal/hvac"
)

func main() {
	dataPath := flag.String("data", "NEW-DATA-1.T15.txt", "path to the sensor dataset")
	indoor := flag.Float64("indoor", 21, "indoor temperature in °C")
	outdoor := flag.Float64("outdoor", 12, "outdoor temperature in °C")
	co2 := flag.Float64("co2", 500, "CO2 concentration in ppm")
	light := flag.Float64("light", 50, "lighting level in lux")
	jsonOut := flag.Bool("json", false, "output as JSON")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(io.Discard)

	table, err := dataset.LoadFile(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	advisor, err := hvac.NewAdvisor(table, hvac.DefaultCalibration(), hvac.DefaultPolicy(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building advisor: %v\n", err)
		os.Exit(1)
	}

	res := advisor.SingleStep(*indoor, *outdoor, *co2, *light)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Inputs: indoor %.1f°C, outdoor %.1f°C, CO2 %.0f ppm, light %.0f lux\n\n",
		*indoor, *outdoor, *co2, *light)
	fmt.Printf("%-22s  %s\n", "Occupancy score", fmt.Sprintf("%.3f", res.Occupancy))
	fmt.Printf("%-22s  %v\n", "Occupied", res.Occupied)
	fmt.Printf("%-22s  %+.3f°C\n", "Temperature delta", res.DeltaT)
	fmt.Printf("%-22s  %.2f°C\n", "Forecast (15 min)", res.TFuture)
	fmt.Printf("%-22s  %s\n", "Action", res.Action)

	occFB, deltaFB := advisor.NoRuleFallbacks()
	if occFB > 0 || deltaFB > 0 {
		fmt.Printf("\nNote: inputs outside the rule coverage, defaults were used (occupancy %d, delta %d)\n",
			occFB, deltaFB)
	}
}
