package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethansmadjaa/FlashCards/internal/config"
	"github.com/ethansmadjaa/FlashCards/internal/deck"
	"github.com/ethansmadjaa/FlashCards/internal/stats"
	"github.com/ethansmadjaa/FlashCards/internal/store"
	"github.com/ethansmadjaa/FlashCards/internal/study"
	"github.com/ethansmadjaa/FlashCards/pkg/logger"
	"github.com/ethansmadjaa/FlashCards/pkg/models"
	"github.com/ethansmadjaa/FlashCards/pkg/updater"
	"github.com/ethansmadjaa/FlashCards/pkg/version"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dataDir := flag.String("data-dir", "", "directory holding the JSON collections (overrides config)")
	className := flag.String("class", "", "class to study (default: all classes)")
	sessionSize := flag.Int("cards", 0, "cards per session (overrides settings)")
	showStats := flag.Bool("stats", false, "print study statistics and exit")
	listClasses := flag.Bool("list-classes", false, "list available classes and exit")
	checkUpdates := flag.Bool("check-updates", false, "check for a newer release")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetDetailedVersionInfo())
		return
	}

	log := logger.New(logger.WithPrefix("[flashcards] "))
	log.SetVerbose(*verbose)

	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("Error loading config: %v", err)
		}
		cfg = config.Default()
	}

	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
		log.Fatal("Data directory does not exist: %s", cfg.DataDir)
	}

	st := store.New(cfg, log)
	st.EnsureFiles()

	repo := deck.NewRepository(st, log)
	aggregator := stats.NewAggregator(st, log)

	if *checkUpdates || cfg.CheckUpdates {
		reportUpdates(log)
	}

	if *listClasses {
		for _, class := range repo.AvailableClasses() {
			fmt.Println(class)
		}
		return
	}

	if *showStats {
		printOverallStats(aggregator)
		return
	}

	settings := st.LoadSettings()
	size := settings.CardsPerSession
	if *sessionSize > 0 {
		size = *sessionSize
	}

	engine := study.NewEngine(repo, aggregator, log)
	runStudyLoop(engine, aggregator, settings, *className, size)
}

func reportUpdates(log *logger.Logger) {
	info, err := updater.NewChecker(log).CheckForUpdates()
	if err != nil {
		log.Debug("Update check failed: %v", err)
		return
	}
	if info != nil && info.IsAvailable {
		fmt.Printf("A newer version is available: %s -> %s\n%s\n\n",
			info.CurrentVersion, info.LatestVersion, info.DownloadURL)
	}
}

func runStudyLoop(engine *study.Engine, aggregator *stats.Aggregator, settings models.Settings, className string, size int) {
	session := engine.Start(className, size)

	label := className
	if label == "" {
		label = "All Classes"
	}

	if session.State() == study.StateNoCards {
		fmt.Printf("No flashcards found for %s. Please add some flashcards first!\n", label)
		return
	}

	fmt.Printf("Studying: %s (%d cards)\n", label, session.Size())
	fmt.Println("Commands: [enter] show/hide answer, c correct, w wrong, d easy|medium|hard, q quit")

	scanner := bufio.NewScanner(os.Stdin)
	for session.State() == study.StateInProgress {
		printCard(session, settings)

		if !scanner.Scan() {
			session.QuitEarly()
			break
		}

		input := strings.Fields(strings.ToLower(strings.TrimSpace(scanner.Text())))
		switch {
		case len(input) == 0:
			session.ToggleAnswer()
		case input[0] == "c":
			if !session.Mark(true) {
				fmt.Println("Show the answer before marking the card.")
			}
		case input[0] == "w":
			if !session.Mark(false) {
				fmt.Println("Show the answer before marking the card.")
			}
		case input[0] == "d" && len(input) > 1:
			if err := session.SetCardDifficulty(models.Difficulty(input[1])); err != nil {
				fmt.Printf("Could not set difficulty: %v\n", err)
			}
		case input[0] == "q":
			session.QuitEarly()
		default:
			fmt.Println("Unknown command.")
		}
	}

	printSummary(session, aggregator, className)
}

func printCard(session *study.Session, settings models.Settings) {
	card, ok := session.Current()
	if !ok {
		return
	}

	pos, total := session.Position()
	fmt.Printf("\nCard %d of %d [%s]\n", pos, total, card.Difficulty)
	if settings.ShowProgress {
		fmt.Printf("Progress: %.1f%%\n", session.ProgressPct())
	}
	fmt.Printf("Question: %s\n", card.Question)
	if session.AnswerVisible() {
		fmt.Printf("Answer:   %s\n", card.Answer)
	}
	fmt.Print("> ")
}

func printSummary(session *study.Session, aggregator *stats.Aggregator, className string) {
	if session.Attempted() == 0 {
		fmt.Println("\nNo cards were studied in this session.")
		return
	}

	accuracy := session.Accuracy()
	grade, message := study.GradeInfo(accuracy)

	fmt.Println("\nStudy Session Complete!")
	fmt.Printf("Grade: %s\n", grade)
	fmt.Printf("Cards Studied: %d/%d\n", session.Attempted(), session.Size())
	fmt.Printf("Correct Answers: %d\n", session.CorrectCount())
	fmt.Printf("Accuracy: %.1f%%\n", accuracy)
	fmt.Println(message)

	key := className
	if key == "" {
		key = study.AllClasses
	}
	classStats := aggregator.ClassStats(key)
	fmt.Printf("\nClass Statistics\n")
	fmt.Printf("Total Sessions: %d\n", classStats.Sessions)
	fmt.Printf("Average Accuracy: %.1f%%\n", classStats.AvgAccuracy)
	fmt.Printf("Total Cards Studied: %d\n", classStats.TotalCards)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func printOverallStats(aggregator *stats.Aggregator) {
	grouped := aggregator.OverallStats()
	if len(grouped) == 0 {
		fmt.Println("No study sessions recorded yet.")
		return
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		group := grouped[key]
		grade, _ := study.GradeInfo(group.OverallAccuracy)
		fmt.Printf("%s\n", titleCase(key))
		fmt.Printf("  Grade: %s\n", grade)
		fmt.Printf("  Total Sessions: %d\n", group.TotalSessions)
		fmt.Printf("  Cards Studied: %d\n", group.TotalCards)
		fmt.Printf("  Overall Accuracy: %.1f%%\n", group.OverallAccuracy)
		fmt.Printf("  Related Classes: %d (%s)\n", group.RelatedClasses, strings.Join(group.ClassNames, ", "))
	}
}
