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
	doctorName  string
	doctorEmail string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Manage doctor records",
}

var doctorAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a doctor",
	RunE:  runDoctorAdd,
}

func init() {
	doctorAddCmd.Flags().StringVar(&doctorName, "name", "", "doctor name (required)")
	doctorAddCmd.Flags().StringVar(&doctorEmail, "email", "", "doctor email (required)")
	_ = doctorAddCmd.MarkFlagRequired("name")
	_ = doctorAddCmd.MarkFlagRequired("email")

	doctorCmd.AddCommand(doctorAddCmd)
	rootCmd.AddCommand(doctorCmd)
}

func runDoctorAdd(cmd *cobra.Command, _ []string) error {
	if clinicalStore == nil {
		return errors.New("storage not configured")
	}

	id, err := clinicalStore.SaveDoctor(context.Background(), domain.Doctor{
		Name:  doctorName,
		Email: doctorEmail,
	})
	if err != nil {
		return fmt.Errorf("save doctor: %w", err)
	}

	cmd.Println(color.GreenString("Doctor %d registered.", id))
	return nil
}
