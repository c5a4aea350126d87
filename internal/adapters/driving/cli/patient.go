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
	patientName   string
	patientEmail  string
	patientDoctor int64
)

var patientCmd = &cobra.Command{
	Use:   "patient",
	Short: "Manage patient records",
}

var patientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a patient",
	RunE:  runPatientAdd,
}

func init() {
	patientAddCmd.Flags().StringVar(&patientName, "name", "", "patient name (required)")
	patientAddCmd.Flags().StringVar(&patientEmail, "email", "", "patient email (required)")
	patientAddCmd.Flags().Int64Var(&patientDoctor, "doctor", 0, "assigned doctor ID")
	_ = patientAddCmd.MarkFlagRequired("name")
	_ = patientAddCmd.MarkFlagRequired("email")

	patientCmd.AddCommand(patientAddCmd)
	rootCmd.AddCommand(patientCmd)
}

func runPatientAdd(cmd *cobra.Command, _ []string) error {
	if clinicalStore == nil {
		return errors.New("storage not configured")
	}

	id, err := clinicalStore.SavePatient(context.Background(), domain.Patient{
		Name:     patientName,
		Email:    patientEmail,
		DoctorID: patientDoctor,
	})
	if err != nil {
		return fmt.Errorf("save patient: %w", err)
	}

	cmd.Println(color.GreenString("Patient %d registered.", id))
	return nil
}
