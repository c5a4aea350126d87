package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vidushisingh23/AI-Powered-Clinical-Intelligence-Session-Management/internal/core/domain"
)

var (
	sessionPatient int64
	sessionSummary string

	sessionAnxiety    int
	sessionBurnout    int
	sessionDepression int
	sessionSelfHarm   int
	sessionWithRisk   bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage clinical sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a clinical session",
	Long: `Persists a clinical session with an encrypted summary, rebuilds the
retrieval index inline and notifies webhook subscribers. Risk scores
recorded alongside the session additionally fire an insight event.`,
	RunE: runSessionAdd,
}

func init() {
	sessionAddCmd.Flags().Int64Var(&sessionPatient, "patient", 0, "patient ID (required)")
	sessionAddCmd.Flags().StringVar(&sessionSummary, "summary", "", "session summary (required)")
	sessionAddCmd.Flags().IntVar(&sessionAnxiety, "anxiety", 0, "anxiety score 0-10")
	sessionAddCmd.Flags().IntVar(&sessionBurnout, "burnout", 0, "burnout risk score 0-10")
	sessionAddCmd.Flags().IntVar(&sessionDepression, "depression", 0, "depression risk score 0-10")
	sessionAddCmd.Flags().IntVar(&sessionSelfHarm, "self-harm", 0, "self harm risk score 0-10")
	sessionAddCmd.Flags().BoolVar(&sessionWithRisk, "with-risk", false, "record the risk scores as a risk log")
	_ = sessionAddCmd.MarkFlagRequired("patient")
	_ = sessionAddCmd.MarkFlagRequired("summary")

	sessionCmd.AddCommand(sessionAddCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionAdd(cmd *cobra.Command, _ []string) error {
	if clinicalStore == nil || textCipher == nil {
		return errors.New("storage not configured")
	}

	ctx := context.Background()

	encrypted, err := textCipher.Encrypt(sessionSummary)
	if err != nil {
		return fmt.Errorf("encrypt summary: %w", err)
	}

	sessionID, err := clinicalStore.SaveSession(ctx, domain.Session{
		PatientID: sessionPatient,
		Summary:   encrypted,
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	cmd.Println(color.GreenString("Session %d recorded.", sessionID))

	if eventDispatcher != nil {
		eventDispatcher.Dispatch(ctx, domain.EventSessionCreated, map[string]any{
			"session_id": sessionID,
			"patient_id": sessionPatient,
		})
	}

	if sessionWithRisk {
		logID, err := clinicalStore.SaveRiskLog(ctx, domain.RiskLog{
			PatientID:  sessionPatient,
			SessionID:  sessionID,
			Anxiety:    sessionAnxiety,
			Burnout:    sessionBurnout,
			Depression: sessionDepression,
			SelfHarm:   sessionSelfHarm,
		})
		if err != nil {
			return fmt.Errorf("save risk log: %w", err)
		}
		cmd.Println(color.GreenString("Risk log %d recorded.", logID))

		if eventDispatcher != nil {
			eventDispatcher.Dispatch(ctx, domain.EventInsightGenerated, map[string]any{
				"session_id":      sessionID,
				"patient_id":      sessionPatient,
				"anxiety":         sessionAnxiety,
				"burnout_risk":    sessionBurnout,
				"depression_risk": sessionDepression,
				"self_harm_risk":  sessionSelfHarm,
			})
		}
	}

	// Keep the index current so the session is immediately queryable
	if indexService != nil {
		result, err := indexService.Rebuild(ctx)
		if err != nil {
			cmd.Println(color.YellowString("Index rebuild failed: %v", err))
			return nil
		}
		cmd.Println(color.GreenString("Clinical index built: %d documents.", result.Indexed))
	}

	return nil
}
