package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/Agrid-Dev/hvacstandards/internal/staging"
)

// WriteStageTable writes one row per total capacity, from step to maxTotal in
// step increments, with the stage capacities and flows a heat pump of that
// size would get.
func WriteStageTable(filename string, maxTotal, step, refFlow float64) error {
	if step <= 0 || maxTotal < step {
		return fmt.Errorf("invalid range: max %g, step %g", maxTotal, step)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"TotalW", "Stages"}
	for i := 1; i <= staging.DefaultMaxStages; i++ {
		header = append(header, fmt.Sprintf("Capacity%d", i))
	}
	for i := 1; i <= staging.DefaultMaxStages; i++ {
		header = append(header, fmt.Sprintf("Flow%d", i))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for total := step; total <= maxTotal; total += step {
		caps, err := staging.Capacities(total, staging.DefaultMaxStages, staging.DefaultUnitStep)
		if err != nil {
			return fmt.Errorf("stages for %g W: %w", total, err)
		}
		row := []string{
			strconv.FormatFloat(total, 'f', 0, 64),
			strconv.Itoa(staging.StageCount(total, staging.DefaultMaxStages, staging.DefaultUnitStep)),
		}
		for _, c := range caps {
			row = append(row, fmt.Sprintf("%.1f", c))
		}
		for _, f := range staging.Flows(caps, total, refFlow) {
			row = append(row, fmt.Sprintf("%.4f", f))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}

func main() {
	if err := WriteStageTable("stages.csv", 400000, 10000, 1); err != nil {
		log.Fatal(err)
	}
}
