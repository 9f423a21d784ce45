package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	calc "github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/config"
	"github.com/rpgo/household-montecarlo/internal/output"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_trajectory <config-file> [seed] [trajectory-id]")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	seed := cfg.Seed
	if len(os.Args) > 2 {
		if seed, err = strconv.ParseInt(os.Args[2], 10, 64); err != nil {
			panic(err)
		}
	}
	if seed == 0 {
		seed = 1
	}
	id := 0
	if len(os.Args) > 3 {
		if id, err = strconv.Atoi(os.Args[3]); err != nil {
			panic(err)
		}
	}

	startYear := cfg.StartYear
	if startYear == 0 {
		startYear = time.Now().Year()
	}
	history, err := calc.DefaultHistoricalReturns()
	if err != nil {
		panic(err)
	}
	provider, err := calc.NewReturnModelProvider(cfg.ReturnModel, cfg.Returns, history)
	if err != nil {
		panic(err)
	}
	driver, err := calc.NewTrajectoryDriver(cfg, startYear, provider, calc.DefaultWaterfall)
	if err != nil {
		panic(err)
	}
	res, err := driver.Run(id, calc.NewTrajectoryRand(seed, id))
	if err != nil {
		panic(err)
	}

	w := csv.NewWriter(os.Stdout)
	_ = w.Write(output.DetailedColumns())
	for _, cf := range res.CashFlows {
		_ = w.Write(output.FlattenCashFlow(0, cf))
	}
	w.Flush()

	fmt.Printf("\nTrajectory %d (seed %d): final balance %s, success %t, year of depletion %d\n",
		res.SimulationID, seed, res.FinalBalance.StringFixed(2), res.Success, res.YearOfDepletion)
	if year, ok := res.FirstNegativeYear(); ok {
		fmt.Printf("First negative ending balance in %d\n", year)
	}
}
