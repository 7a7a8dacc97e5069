package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/dicecloud-sheet/internal/config"
	sheetmodel "github.com/KirkDiggler/dicecloud-sheet/internal/domain/sheet"
	"github.com/KirkDiggler/dicecloud-sheet/internal/racetable"
	"github.com/KirkDiggler/dicecloud-sheet/internal/services/sheet"
)

func main() {
	args := os.Args[1:]
	dumpJSON := false
	if len(args) > 0 && args[0] == "--json" {
		dumpJSON = true
		args = args[1:]
	}
	if len(args) < 1 {
		fmt.Println("Usage: debug-sheet [--json] <export.json> [export.json...]")
		os.Exit(1)
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	races, err := racetable.NewFileSource(cfg.Races.Path)
	if err != nil {
		log.Fatalf("Failed to load race table: %v", err)
	}

	svc, err := sheet.NewService(&sheet.ServiceConfig{
		Races:            races,
		Logger:           logger,
		BatchConcurrency: cfg.Resolver.BatchConcurrency,
	})
	if err != nil {
		log.Fatalf("Failed to create sheet service: %v", err)
	}

	exports := make([][]byte, 0, len(args))
	for _, path := range args {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Fatalf("Failed to read %s: %v", path, readErr)
		}
		exports = append(exports, data)
	}

	out, err := svc.ResolveBatch(context.Background(), &sheet.ResolveBatchInput{Exports: exports})
	if err != nil {
		log.Fatalf("Failed to resolve: %v", err)
	}

	for i, result := range out.Results {
		if dumpJSON {
			data, marshalErr := json.MarshalIndent(result.Character, "", "  ")
			if marshalErr != nil {
				log.Fatalf("Failed to encode %s: %v", args[i], marshalErr)
			}
			fmt.Println(string(data))
			continue
		}
		printSummary(args[i], result)
	}
}

func printSummary(path string, result *sheet.ResolveOutput) {
	c := result.Character

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Sheet ID: %s\n", result.SheetID)
	fmt.Printf("Name: %s (%s)\n", c.Name, c.Alignment)
	fmt.Printf("Race: %s\n", c.Race)
	fmt.Printf("Classes: %s\n", sheetmodel.ClassSummary(c.Classes))
	fmt.Printf("XP: %d\n", c.XP)
	fmt.Printf("AC %d  Speed %d  HP %d  Init %s  Prof %s\n",
		c.ArmorClass, c.Speed, c.HitPoints,
		sheetmodel.SignedBonus(c.Initiative), sheetmodel.SignedBonus(c.ProficiencyBonus))
	fmt.Printf("Passive Perception: %d\n", c.PassivePerception())
	fmt.Printf("Records: %d (skipped %d)\n", result.Records, result.Skipped)

	for _, a := range c.AbilityScores {
		fmt.Printf("  %-13s %s\n", a.Name, a)
	}

	for _, sk := range c.SortedSkills() {
		fmt.Printf("  %-16s %-4s %s\n", sk.Name, sheetmodel.SignedBonus(sk.Bonus), sk.Proficiency)
	}

	if attacks := sheetmodel.SelectAttacks(c.Attacks, 0); len(attacks) > 0 {
		fmt.Println("Attacks:")
		for _, a := range attacks {
			fmt.Printf("  %-24s %-6s %s\n", a.Name, a.Bonus, a.Damage)
		}
	}

	if actions := c.SortedActions(); len(actions) > 0 {
		fmt.Println("Actions:")
		for _, a := range actions {
			fmt.Printf("  %s\n", a)
		}
	}

	if resources := c.SortedResources(); len(resources) > 0 {
		fmt.Println("Resources:")
		for _, r := range resources {
			fmt.Printf("  %s\n", r)
		}
	}

	for _, m := range c.SortedDamageMults() {
		fmt.Printf("%s\n", m)
	}

	if items := c.SortedItems(); len(items) > 0 {
		fmt.Println("Items:")
		for _, item := range items {
			fmt.Printf("  %3d %s\n", item.Quantity, item.DisplayName())
		}
	}

	for _, list := range c.SortedSpellLists() {
		fmt.Printf("Spell list: %s (DC %d, %s, %d spells)\n",
			list.Name, list.SaveDC, sheetmodel.SignedBonus(list.AttackBonus), list.Count())
	}

	fmt.Printf("Coins: %dcp %dsp %dep %dgp %dpp\n",
		c.Coins.Copper(), c.Coins.Silver(), c.Coins.Electrum(), c.Coins.Gold(), c.Coins.Platinum())
	fmt.Println()
}
