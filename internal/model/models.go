package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationStatus classifies an application for display purposes.
// It is independent of pipeline position: rejected can occur at any stage.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusInReview  ApplicationStatus = "in_review"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
	StatusDisbursed ApplicationStatus = "disbursed"
	StatusCompleted ApplicationStatus = "completed"
)

// ApplicationStage is a position in the fixed application pipeline.
type ApplicationStage string

const (
	StageSubmitted    ApplicationStage = "submitted"
	StageVerification ApplicationStage = "verification"
	StageReview       ApplicationStage = "review"
	StageApproval     ApplicationStage = "approval"
	StageDisbursement ApplicationStage = "disbursement"
	StageCompleted    ApplicationStage = "completed"
)

// TrackerEntry is one tracked loan application.
// Progress is a stored display percentage; the write path derives it from
// the current stage so the two cannot drift.
type TrackerEntry struct {
	ID            uuid.UUID         `db:"id" json:"id"`
	UserID        uuid.UUID         `db:"user_id" json:"userId"`
	ApplicationID string            `db:"application_id" json:"applicationId"`
	LoanType      string            `db:"loan_type" json:"loanType"`
	Amount        decimal.Decimal   `db:"amount" json:"amount"`
	Status        ApplicationStatus `db:"status" json:"status"`
	CurrentStage  ApplicationStage  `db:"current_stage" json:"currentStage"`
	Progress      int               `db:"progress" json:"progress"`
	NextStep      *string           `db:"next_step" json:"nextStep,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updatedAt"`
}

// ExternalOffer is a record from the provider discovery feed. Rate and
// tenure are free text; everything else is passed through for display.
type ExternalOffer struct {
	Company       string   `json:"company"`
	LoanType      string   `json:"loanType"`
	MaxAmount     string   `json:"maxAmount"`
	InterestRate  string   `json:"interestRate"`
	Tenure        string   `json:"tenure"`
	ProcessingFee string   `json:"processingFee,omitempty"`
	EMI           string   `json:"emi,omitempty"`
	Confidence    string   `json:"confidence,omitempty"`
	Badges        []string `json:"badges,omitempty"`
	Documents     []string `json:"documents,omitempty"`
	ApprovalTime  string   `json:"approvalTime,omitempty"`
}

// Installment holds the derived figures for a loan scenario. They are
// always recomputed from principal, rate and term, never stored.
type Installment struct {
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// SuggestionCandidate is one alternative financing scenario.
type SuggestionCandidate struct {
	Label          string          `json:"label"`
	AnnualRate     decimal.Decimal `json:"annualRate"`
	TermMonths     int             `json:"termMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// OfferComparison recomputes an external offer's figures for the
// requested principal so offers can be compared like for like.
type OfferComparison struct {
	Offer          ExternalOffer   `json:"offer"`
	AnnualRate     decimal.Decimal `json:"annualRate"`
	TermMonths     int             `json:"termMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// StageStep is one row of the stage breakdown rendered for an entry.
// NextStep is only populated on the active stage.
type StageStep struct {
	Stage    ApplicationStage `json:"stage"`
	Label    string           `json:"label"`
	Complete bool             `json:"complete"`
	Current  bool             `json:"current"`
	NextStep *string          `json:"nextStep,omitempty"`
}
