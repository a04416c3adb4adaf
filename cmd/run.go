package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/interview"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/mailer"
	"github.com/talentscout/screener/internal/secrets"
	"github.com/talentscout/screener/internal/session"
	"github.com/talentscout/screener/internal/storage"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	welcomeMessage = "Hi there! I'm your AI hiring assistant. " +
		"I'll be conducting your initial screening interview today. " +
		"Let's start with some basic information.\n\nPlease provide your full name."

	qaIntroFormat = "Great! Now I'll ask you a series of technical questions based on your profile. " +
		"Please answer each question thoroughly.\n\nLet's start:\n\n%s"

	nextStepsMessage = `Thank you for completing this technical screening interview. Here's what happens next:

1. Your responses will be evaluated by our team
2. If your profile matches our requirements, we'll contact you for the next round
3. You should hear back from us within 5 business days

If you have any questions, please contact our HR team at careers@example.com.

Best of luck with your application!`
)

var restartPrompt = promptui.Select{
	Label: "Start a new interview?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening interview",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("storage-path", "s", "", "file for the candidate record list (default is candidates.json)")

	viper.BindPFlag("storage.path", runCmd.Flags().Lookup("storage-path"))
}

// collaborators holds everything the interview loop needs beyond the session.
type collaborators struct {
	interviewer *interview.Interviewer
	scorer      ai.Scorer
	store       *storage.Store
	mail        *mailer.Client
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting talentscout", zap.String("version", version))

	deps := prepareCollaborators(ctx, config, logger)

	fmt.Println(welcomeMessage)

	input := promptui.Prompt{Label: "You"}

	for {
		answer, err := input.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return
		}

		if strings.TrimSpace(answer) == "" {
			fmt.Println("Please type a response to continue.")
			continue
		}

		done, err := handleInput(ctx, deps, answer, logger)
		if err != nil {
			logger.Fatal("handling input", zap.Error(err))
		}

		if done {
			return
		}
	}
}

// handleInput dispatches one line of candidate input to the stage handler.
// It returns true when the program should exit.
func handleInput(ctx context.Context, deps *collaborators, answer string, logger *zap.Logger) (bool, error) {
	iv := deps.interviewer
	sess := iv.Session()

	switch sess.Stage() {
	case session.StageGatheringInfo:
		outcome, err := iv.AdvanceProfile(ctx, answer)
		if err != nil {
			return false, err
		}

		if outcome.Kind == interview.ProfileRejected {
			fmt.Println(outcome.Message)
			return false, nil
		}

		if next, pending := sess.CurrentField(); pending {
			fmt.Printf("Got it! Now please provide your %s.\n", next.Label())
			return false, nil
		}

		fmt.Println("Generating interview questions...")
		first, err := sess.AdvanceToQA()
		if err != nil {
			return false, err
		}
		fmt.Printf(qaIntroFormat+"\n", first)
		return false, nil

	case session.StageQA:
		outcome, err := iv.AdvanceQA(ctx, answer)
		if err != nil {
			return false, err
		}

		fmt.Println(outcome.Followup)

		if !outcome.Concluded {
			fmt.Println("\n" + outcome.NextQuestion)
			return false, nil
		}

		conclude(ctx, deps, logger)
		return offerRestart(iv, logger), nil

	default:
		return true, fmt.Errorf("unexpected stage %s", sess.Stage())
	}
}

// conclude runs the terminal collaborators exactly once per interview:
// scoring, persistence, and the confirmation email. Each one degrades
// gracefully; none of them can abort the flow.
func conclude(ctx context.Context, deps *collaborators, logger *zap.Logger) {
	sess := deps.interviewer.Session()
	profile := sess.Profile()
	pairs := sess.Pairs()

	fmt.Println("\n" + nextStepsMessage)
	printProfileSummary(profile)

	evaluations := scoreTranscript(ctx, deps.scorer, pairs, logger)

	if err := deps.store.Append(storage.CandidateRecord{
		Profile:     profile,
		QAPairs:     pairs,
		Evaluations: evaluations,
	}); err != nil {
		logger.Warn("saving candidate record", zap.Error(err))
	}

	if deps.mail != nil && profile.Email != "" {
		if deps.mail.Notify(ctx, profile.Email, profile.FullName) {
			fmt.Printf("\nA confirmation email has been sent to %s\n", profile.Email)
		}
	}
}

func scoreTranscript(ctx context.Context, scorer ai.Scorer, pairs []session.QAPair, logger *zap.Logger) []ai.Evaluation {
	if scorer == nil || len(pairs) == 0 {
		return nil
	}

	questions := make([]string, 0, len(pairs))
	answers := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		questions = append(questions, pair.Question)
		answers = append(answers, pair.Answer)
	}

	fmt.Println("\nGenerating your interview report...")

	evaluations, raw, err := scorer.Score(ctx, questions, answers)
	if err != nil {
		logger.Warn("scoring answers", zap.Error(err))
		// Show the raw model output when it came back but did not parse.
		if raw != "" {
			fmt.Println("\nYour interview report:")
			fmt.Println(raw)
		}
		return nil
	}

	fmt.Println("\nYour interview report:")
	for i, eval := range evaluations {
		fmt.Printf("\nQ%d: %s\n", i+1, eval.Question)
		fmt.Printf("   Technical depth: %.0f/10  Clarity: %.0f/10  Relevance: %.0f/10  Overall: %.0f/10\n",
			eval.TechnicalDepth, eval.Clarity, eval.Relevance, eval.Overall)
		if eval.Feedback != "" {
			fmt.Printf("   Feedback: %s\n", eval.Feedback)
		}
	}

	return evaluations
}

func printProfileSummary(profile session.Profile) {
	fmt.Println("\nYour submitted information:")
	fmt.Printf("  Full name: %s\n", profile.FullName)
	fmt.Printf("  Email: %s\n", profile.Email)
	fmt.Printf("  Phone: %s\n", profile.Phone)
	fmt.Printf("  Experience years: %d\n", profile.ExperienceYears)
	fmt.Printf("  Desired positions: %s\n", profile.DesiredPositions)
	fmt.Printf("  Location: %s\n", profile.Location)
	fmt.Printf("  Tech stack: %s\n", strings.Join(profile.TechStack, ", "))
}

// offerRestart asks whether to screen another candidate. Returns true when
// the program should exit.
func offerRestart(iv *interview.Interviewer, logger *zap.Logger) bool {
	fmt.Println()

	_, action, err := restartPrompt.Run()
	if err != nil || action == PromptNo {
		logger.Info("exiting", zap.String("reason", "interview complete"))
		return true
	}

	iv.Reset()
	fmt.Println(welcomeMessage)
	return false
}

func prepareCollaborators(ctx context.Context, config *Config, logger *zap.Logger) *collaborators {
	interviewDeps := interview.Deps{Logger: logger}

	var scorer ai.Scorer
	generator, geminiCfg, err := prepareGenerator(ctx, config)
	if err != nil {
		logger.Warn("running without the Gemini judge, generator and scorer",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the ai.gemini.api-key-file configuration key"),
		)
	} else {
		maxLogLen := geminiCfg.MaxLogLength
		interviewDeps.Context = ai.NewContextClassifier(gemini.NewJudge(generator, logger, maxLogLen), logger)
		interviewDeps.Questions = gemini.NewQuestionSource(generator, logger, maxLogLen)
		scorer = gemini.NewScorer(generator, logger, maxLogLen)
	}

	return &collaborators{
		interviewer: interview.New(interviewDeps),
		scorer:      scorer,
		store:       storage.New(storagePath(config), logger),
		mail:        prepareMailer(config, logger),
	}
}

func prepareGenerator(ctx context.Context, config *Config) (*gemini.Generator, *GeminiConfig, error) {
	geminiCfg := &GeminiConfig{}
	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		geminiCfg = config.AI.Gemini
	}

	keyFile := geminiCfg.APIKeyFile
	if keyFile == "" {
		keyFile = viper.GetString("ai.gemini.api-key-file")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  keyFile,
		Value: os.Getenv("GEMINI_API_KEY"),
	})
	if err != nil {
		return nil, nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		return nil, nil, err
	}

	return generator, geminiCfg, nil
}

func prepareMailer(config *Config, logger *zap.Logger) *mailer.Client {
	if config == nil || config.Mail == nil || !config.Mail.Enabled {
		return nil
	}

	mailCfg := config.Mail

	apiKey, keyErr := secrets.Load(secrets.Source{
		Name:  "mailjet api key",
		File:  mailCfg.APIKeyFile,
		Value: os.Getenv("MAILJET_API_KEY"),
	})
	apiSecret, secretErr := secrets.Load(secrets.Source{
		Name:  "mailjet api secret",
		File:  mailCfg.SecretFile,
		Value: os.Getenv("MAILJET_API_SECRET"),
	})
	if err := errors.Join(keyErr, secretErr); err != nil {
		logger.Warn("running without email notifications", zap.Error(err))
		return nil
	}

	return mailer.New(apiKey, apiSecret, mailCfg.FromEmail, mailCfg.FromName, logger)
}

func storagePath(config *Config) string {
	if config != nil && config.Storage != nil && config.Storage.Path != "" {
		return config.Storage.Path
	}
	return viper.GetString("storage.path")
}
