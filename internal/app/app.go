package app

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"meal-board/internal/config"
	"meal-board/internal/export"
	"meal-board/internal/metrics"
	"meal-board/internal/planner"
	"meal-board/internal/receipt"
	"meal-board/internal/storage"
	"meal-board/internal/store"
	"meal-board/pkg/logger"
)

// App holds the application's dependencies.
type App struct {
	board        *planner.Board
	repo         *store.Repository
	metricsStore *metrics.Store
	archive      *storage.BackupArchive
	cfg          *config.Config
	log          *logger.Logger
}

// NewApp creates and initializes a new App instance.
func NewApp(
	board *planner.Board,
	repo *store.Repository,
	metricsStore *metrics.Store,
	archive *storage.BackupArchive,
	cfg *config.Config,
	log *logger.Logger,
) *App {
	return &App{
		board:        board,
		repo:         repo,
		metricsStore: metricsStore,
		archive:      archive,
		cfg:          cfg,
		log:          log,
	}
}

// Board exposes the board for persistence after a command finishes.
func (a *App) Board() *planner.Board {
	return a.board
}

// Run dispatches a single command and records its latency.
func (a *App) Run(ctx context.Context, command string, args []string) error {
	start := time.Now()
	err := a.dispatch(ctx, command, args)
	latency := time.Since(start).Milliseconds()

	if recErr := a.metricsStore.Record(ctx, metrics.CommandMetric{
		Command:   command,
		LatencyMS: latency,
	}); recErr != nil {
		a.log.Warnf("Failed to record command metric: %v", recErr)
	}

	return err
}

func (a *App) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "seed":
		return a.board.Apply(func(s *planner.State) error {
			s.SeedDemo()
			return nil
		})

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		week := fs.String("week", "", "week to display (YYYY-MM-DD, any day of the week)")
		fs.Parse(args)
		if *week != "" {
			target, err := time.ParseInLocation(planner.WeekKeyLayout, *week, time.UTC)
			if err != nil {
				return fmt.Errorf("bad -week value: %w", err)
			}
			a.board.Navigate(func(s *planner.State) {
				s.CurrentWeekStart = planner.WeekStart(target)
				s.EnsurePlan(s.CurrentWeekStart)
			})
		}
		printWeek(a.board.State())
		printInventory(a.board.State())
		return nil

	case "next-week", "prev-week":
		delta := 1
		if command == "prev-week" {
			delta = -1
		}
		a.board.Navigate(func(s *planner.State) { s.ShiftWeek(delta) })
		printWeek(a.board.State())
		return nil

	case "add-ingredient":
		fs := flag.NewFlagSet("add-ingredient", flag.ExitOnError)
		name := fs.String("name", "", "ingredient name")
		count := fs.Float64("count", 1, "stock count to add")
		category := fs.String("category", string(planner.CategoryOther), "category")
		servings := fs.Float64("servings-per-count", 0, "servings one stock unit yields")
		fs.Parse(args)
		if *name == "" {
			return fmt.Errorf("-name is required")
		}
		return a.board.Apply(func(s *planner.State) error {
			in := planner.IngredientInput{Name: *name, Count: *count}
			cat := planner.Category(*category)
			in.Category = &cat
			if *servings > 0 {
				in.ServingsPerCount = servings
			}
			s.MergeOrCreateIngredient(in)
			return nil
		})

	case "remove-ingredient":
		fs := flag.NewFlagSet("remove-ingredient", flag.ExitOnError)
		name := fs.String("name", "", "ingredient name")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			ing := s.FindIngredientByName(*name)
			if ing == nil {
				return fmt.Errorf("no ingredient named %q in the inventory", *name)
			}
			s.DeleteIngredient(ing.ID)
			return nil
		})

	case "adjust-count":
		fs := flag.NewFlagSet("adjust-count", flag.ExitOnError)
		name := fs.String("name", "", "ingredient name")
		delta := fs.Float64("delta", 0, "stock count change, negative to consume")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			ing := s.FindIngredientByName(*name)
			if ing == nil {
				return fmt.Errorf("no ingredient named %q in the inventory", *name)
			}
			s.AdjustIngredientCount(ing.ID, *delta)
			return nil
		})

	case "pin-ingredient":
		fs := flag.NewFlagSet("pin-ingredient", flag.ExitOnError)
		name := fs.String("name", "", "ingredient name")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			ing := s.FindIngredientByName(*name)
			if ing == nil {
				return fmt.Errorf("no ingredient named %q in the inventory", *name)
			}
			s.ToggleIngredientPinned(ing.ID)
			return nil
		})

	case "sort-inventory":
		fs := flag.NewFlagSet("sort-inventory", flag.ExitOnError)
		mode := fs.String("by", string(planner.SortByName), "sort mode: name|category|expiration|newest")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.SetInventorySort(planner.SortMode(*mode))
			return nil
		})

	case "clear-inventory":
		return a.board.Apply(func(s *planner.State) error {
			s.ClearInventory()
			return nil
		})

	case "drop-ingredient":
		fs := flag.NewFlagSet("drop-ingredient", flag.ExitOnError)
		name := fs.String("name", "", "ingredient name")
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			ing := s.FindIngredientByName(*name)
			if ing == nil {
				return fmt.Errorf("no ingredient named %q in the inventory", *name)
			}
			s.DropIngredient(addr(), ing.ID)
			return nil
		})

	case "drop-meal":
		fs := flag.NewFlagSet("drop-meal", flag.ExitOnError)
		name := fs.String("name", "", "meal template name")
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			for _, m := range s.Meals {
				if m.Name == *name {
					s.DropMeal(addr(), m.ID)
					return nil
				}
			}
			return fmt.Errorf("no meal named %q", *name)
		})

	case "move":
		fs := flag.NewFlagSet("move", flag.ExitOnError)
		from := addressFlags(fs)
		to := targetAddressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.MoveOrSwap(from(), to())
			return nil
		})

	case "duplicate":
		fs := flag.NewFlagSet("duplicate", flag.ExitOnError)
		from := addressFlags(fs)
		to := targetAddressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.DuplicateSlot(from(), to())
			return nil
		})

	case "clear-slot":
		fs := flag.NewFlagSet("clear-slot", flag.ExitOnError)
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.ClearSlot(addr())
			return nil
		})

	case "restock":
		fs := flag.NewFlagSet("restock", flag.ExitOnError)
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.RemoveToInventory(addr())
			return nil
		})

	case "leftovers":
		fs := flag.NewFlagSet("leftovers", flag.ExitOnError)
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.MakeLeftovers(addr())
			return nil
		})

	case "servings":
		fs := flag.NewFlagSet("servings", flag.ExitOnError)
		n := fs.Int("n", 1, "new serving count")
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			s.SetServings(addr(), *n)
			return nil
		})

	case "save-meal":
		fs := flag.NewFlagSet("save-meal", flag.ExitOnError)
		name := fs.String("name", "", "name for the new meal template")
		addr := addressFlags(fs)
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			if id := s.SaveSlotAsMeal(addr(), *name); id == "" {
				return fmt.Errorf("slot is empty or name missing")
			}
			return nil
		})

	case "remove-meal":
		fs := flag.NewFlagSet("remove-meal", flag.ExitOnError)
		name := fs.String("name", "", "meal template name")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			for _, m := range s.Meals {
				if m.Name == *name {
					s.DeleteMeal(m.ID)
					return nil
				}
			}
			return fmt.Errorf("no meal named %q", *name)
		})

	case "pin-meal":
		fs := flag.NewFlagSet("pin-meal", flag.ExitOnError)
		name := fs.String("name", "", "meal template name")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			for _, m := range s.Meals {
				if m.Name == *name {
					s.ToggleMealPinned(m.ID)
					return nil
				}
			}
			return fmt.Errorf("no meal named %q", *name)
		})

	case "add-profile":
		fs := flag.NewFlagSet("add-profile", flag.ExitOnError)
		name := fs.String("name", "", "profile name")
		color := fs.String("color", "#4f86c6", "display color")
		fs.Parse(args)
		if *name == "" {
			return fmt.Errorf("-name is required")
		}
		return a.board.Apply(func(s *planner.State) error {
			s.AddProfile(*name, *color)
			return nil
		})

	case "remove-profile":
		fs := flag.NewFlagSet("remove-profile", flag.ExitOnError)
		name := fs.String("name", "", "profile name")
		fs.Parse(args)
		return a.board.Apply(func(s *planner.State) error {
			for i := range s.Profiles {
				if s.Profiles[i].Name == *name {
					return s.DeleteProfile(s.Profiles[i].ID)
				}
			}
			return fmt.Errorf("no profile named %q", *name)
		})

	case "add-category":
		if len(args) < 1 {
			return fmt.Errorf("usage: add-category <name>")
		}
		return a.board.Apply(func(s *planner.State) error {
			s.AddCustomCategory(planner.Category(args[0]))
			return nil
		})

	case "remove-category":
		if len(args) < 1 {
			return fmt.Errorf("usage: remove-category <name>")
		}
		return a.board.Apply(func(s *planner.State) error {
			s.RemoveCustomCategory(planner.Category(args[0]))
			return nil
		})

	case "undo":
		if !a.board.Undo() {
			fmt.Println("Nothing to undo.")
		}
		return nil

	case "redo":
		if !a.board.Redo() {
			fmt.Println("Nothing to redo.")
		}
		return nil

	case "import-receipt":
		if len(args) < 1 {
			return fmt.Errorf("usage: import-receipt <file>")
		}
		source := receipt.NewFileDraftSource(args[0])
		items, err := source.Load(ctx)
		if err != nil {
			return err
		}
		if err := a.board.Apply(func(s *planner.State) error {
			s.ReconcileDrafts(items)
			return nil
		}); err != nil {
			return err
		}
		if err := a.repo.LogReceiptImport(ctx, items); err != nil {
			return err
		}
		fmt.Printf("Reconciled %d draft items.\n", len(items))
		return nil

	case "export":
		if len(args) < 1 {
			return fmt.Errorf("usage: export <file>")
		}
		data, err := planner.ExportBackup(a.board.State())
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0644)

	case "import":
		if len(args) < 1 {
			return fmt.Errorf("usage: import <file>")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		imported, err := planner.ImportBackup(data)
		if err != nil {
			return err
		}
		return a.board.Apply(func(s *planner.State) error {
			*s = *imported
			return nil
		})

	case "backup":
		fs := flag.NewFlagSet("backup", flag.ExitOnError)
		keep := fs.Int("keep", 10, "number of archived backups to retain")
		fs.Parse(args)
		path, err := a.archive.Save(a.board.State())
		if err != nil {
			return err
		}
		if err := a.archive.Prune(*keep); err != nil {
			return err
		}
		fmt.Printf("Backup written to %s\n", path)
		return nil

	case "restore":
		restored, err := a.archive.LoadLatest()
		if err != nil {
			return err
		}
		if restored == nil {
			return fmt.Errorf("no archived backups found")
		}
		return a.board.Apply(func(s *planner.State) error {
			*s = *restored
			return nil
		})

	case "image-payload":
		if len(args) < 1 {
			return fmt.Errorf("usage: image-payload <file>")
		}
		payload := export.BuildWeekPayload(a.board.State())
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(args[0], data, 0644)

	case "nutrition":
		fs := flag.NewFlagSet("nutrition", flag.ExitOnError)
		profile := fs.String("profile", "", "profile name (defaults to the first profile)")
		fs.Parse(args)
		s := a.board.State()
		target := &s.Profiles[0]
		if *profile != "" {
			target = nil
			for i := range s.Profiles {
				if s.Profiles[i].Name == *profile {
					target = &s.Profiles[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("no profile named %q", *profile)
			}
		}
		days := s.ProfileWeekNutrition(target.ID)
		fmt.Printf("Week of %s, %s\n", planner.WeekKey(s.CurrentWeekStart), target.Name)
		for _, d := range days {
			fmt.Printf("  day %d: %.0f kcal  %.1fg protein  %.1fg carbs  %.1fg fat\n",
				d.Day, d.Calories, d.Protein, d.Carbs, d.Fat)
		}
		return nil

	case "metrics":
		fs := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := fs.Int("days", 7, "number of days to report")
		fs.Parse(args)
		usage, err := a.metricsStore.GetDailyUsage(ctx, *days)
		if err != nil {
			return err
		}
		if len(usage) == 0 {
			fmt.Println("No command metrics recorded.")
			return nil
		}
		for _, u := range usage {
			fmt.Printf("  %s  %4d commands  avg %.1fms\n", u.Date, u.TotalCommands, u.AvgLatencyMS)
		}
		return nil

	case "metrics-cleanup":
		fs := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := fs.Int("days", 90, "delete metrics older than this many days")
		fs.Parse(args)
		deleted, err := a.metricsStore.Cleanup(ctx, *days)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d metric records.\n", deleted)
		return nil

	default:
		fmt.Printf("Unknown command: %s\n", command)
		PrintUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}
