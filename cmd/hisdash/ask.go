package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/hisdash/internal/assistant"
	"github.com/gyeh/hisdash/internal/exitcode"
	"github.com/gyeh/hisdash/internal/logging"
	"github.com/gyeh/hisdash/internal/resilience"
)

var (
	askMode         string
	askPrintContext bool
	askTimeout      time.Duration
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant about the current dashboard or for diagnostic suggestions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	addSourceFlags(askCmd)
	addFacetFlags(askCmd)
	f := askCmd.Flags()
	f.StringVar(&askMode, "mode", "analytics", "Assistant mode: analytics or diagnostic")
	f.BoolVar(&askPrintContext, "print-context", false, "Print the dashboard summary sent with the question")
	f.DurationVar(&askTimeout, "timeout", 90*time.Second, "Overall request timeout")
	f.StringVar(&cfg.GeminiModel, "model", "", "Model for analytics mode")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	mode, err := assistant.ParseMode(askMode)
	if err != nil {
		fatal(log, exitcode.UsageError, err, "invalid mode")
	}
	if err := cfg.Validate(); err != nil {
		fatal(log, exitcode.UsageError, err, "config validation failed")
	}
	question := strings.Join(args, " ")

	// Diagnostic questions do not depend on the billing data.
	var contextText string
	if mode == assistant.ModeAnalytics {
		now := currentTime()
		res := loadRecords(cmd.Context(), log, now)
		contextText = dashboardState(log, res.Records, now).Views().ContextText()
		if askPrintContext {
			fmt.Println(contextText)
			fmt.Println()
		}
	}

	client := assistant.NewGeminiClient(
		&http.Client{Timeout: 60 * time.Second},
		cfg.GeminiBaseURL,
		cfg.GeminiAPIKey,
		resilience.NewCircuitBreaker("gemini"),
		resilience.DefaultConfig,
	)
	svc := assistant.NewService(client, cfg.GeminiModel, cfg.DiagnosticModel, met, log)

	ctx, cancel := context.WithTimeout(cmd.Context(), askTimeout)
	defer cancel()
	ans, err := svc.Ask(ctx, mode, question, contextText)
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyQuestion) {
			fatal(log, exitcode.UsageError, err, "invalid question")
		}
		fatal(log, exitcode.AssistantError, err, "assistant failed")
	}

	fmt.Println(ans.Text)
	if ans.Fallback {
		log.Warn().Str("mode", string(mode)).Msg("assistant unavailable; printed fallback reply")
	}
	return nil
}
